// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The finview authors

package chartplot

import (
	"image/color"

	"finview/chartdata"
	"finview/widgets"
)

// Builder assembles a plot from subplots sharing one time axis. The first
// subplot added becomes the leader; every further subplot follows the
// leader's viewport. This replaces any notion of a process-wide "previous
// subplot": linkage is scoped to the builder.
type Builder struct {
	theme    *widgets.PlotTheme
	viewOpts ViewOptions
	gate     *RenderGate
	subs     []*SubPlot
	leader   *ViewBox
}

// NewBuilder creates a plot builder. The gate may be nil for plots without
// deferred rendering (e.g. tests).
func NewBuilder(theme *widgets.PlotTheme, viewOpts ViewOptions, gate *RenderGate) *Builder {
	return &Builder{
		theme:    theme,
		viewOpts: viewOpts,
		gate:     gate,
	}
}

func (b *Builder) newSubPlot() *SubPlot {
	v := NewViewBox(b.viewOpts)
	v.SetGate(b.gate)
	if b.leader == nil {
		b.leader = v
	} else {
		b.leader.AddRangeListener(func(r Rect) {
			v.LinkedViewChanged(r)
		})
	}
	sub := &SubPlot{
		Theme: b.theme,
		View:  v,
	}
	b.subs = append(b.subs, sub)
	return sub
}

// AddCandlesticks adds a price subplot. The painter is registered as a heavy
// item of the render gate.
func (b *Builder) AddCandlesticks(data *chartdata.Table) *SubPlot {
	sub := b.newSubPlot()
	p := NewCandlestickPainter(data, b.theme.CandleUpColor, b.theme.CandleDownColor)
	if b.gate != nil {
		b.gate.Register(p)
	}
	sub.AddPainter(p)
	sub.View.SetData(data)
	return sub
}

// AddVolume adds a volume bar subplot. The painter is registered as a heavy
// item of the render gate.
func (b *Builder) AddVolume(data *chartdata.Table) *SubPlot {
	sub := b.newSubPlot()
	p := NewVolumePainter(data, b.theme.BarUpColor, b.theme.BarDownColor)
	if b.gate != nil {
		b.gate.Register(p)
	}
	sub.AddPainter(p)
	sub.View.SetData(data)
	return sub
}

// AddLine adds a subplot with a plain Y series (e.g. an oscillator).
func (b *Builder) AddLine(data *chartdata.Table, c color.NRGBA) *SubPlot {
	sub := b.newSubPlot()
	sub.AddPainter(NewLinePainter(data, c))
	sub.View.SetData(data)
	return sub
}

// OverlayLine merges a line series into an existing subplot. The merged
// columns take part in the subplot's hi/lo scaling.
func (b *Builder) OverlayLine(sub *SubPlot, data *chartdata.Table, c color.NRGBA) {
	sub.AddPainter(NewLinePainter(data, c))
	sub.View.SetData(data)
}

// Build lays out the collected subplots. The first subplot is the most
// significant and gets three times the height of each remaining one.
func (b *Builder) Build() *Plot {
	weight := 0.0
	for i := range b.subs {
		if i == 0 {
			weight += 3
		} else {
			weight++
		}
	}
	for i, sub := range b.subs {
		if i == 0 {
			sub.pxSizeRatioY = 3 / weight
		} else {
			sub.pxSizeRatioY = 1 / weight
		}
	}
	return &Plot{
		Theme:  b.theme,
		Sub:    b.subs,
		gate:   b.gate,
		leader: b.leader,
	}
}
