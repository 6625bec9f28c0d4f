// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The finview authors

package chartplot

import (
	"image"
	"image/color"
	"math"
	"sync/atomic"

	"finview/chartdata"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/paint"

	// The builtin gio stroke has a lot of issues, one being that horizontal and vertical lines
	// may have different thickness, even if the same width is specified.
	// We use the "x/stroke" extension instead, it works like a charm.
	"gioui.org/x/stroke"
)

// Painter renders one chart item into the subplot area. The caller clips to
// the plot area before painting.
type Painter interface {
	Paint(gtx layout.Context, proj projection, clipRect image.Rectangle)
}

// CandlestickPainter draws a high-low wick and an open-close body per row,
// with a body half-width of a third of the data period. The bear/bull row
// snapshot is taken once and only replaced by an explicit Regenerate; the
// rendered geometry never changes with the viewport, only its projection.
type CandlestickPainter struct {
	visible   atomic.Bool
	bullColor color.NRGBA
	bearColor color.NRGBA
	halfWidth float64
	bearRows  [][]float64
	bullRows  [][]float64
	frame     struct {
		wickSegments []stroke.Segment
		bodySegments []stroke.Segment
	}
}

func NewCandlestickPainter(data *chartdata.Table, bullColor, bearColor color.NRGBA) *CandlestickPainter {
	p := &CandlestickPainter{
		bullColor: bullColor,
		bearColor: bearColor,
	}
	p.Regenerate(data)
	p.visible.Store(true)
	return p
}

// Regenerate snapshots the row partitions again. Call after the underlying
// table changed; viewport changes never require it.
func (p *CandlestickPainter) Regenerate(data *chartdata.Table) {
	p.bearRows = data.BearRows()
	p.bullRows = data.BullRows()
	p.halfWidth = data.Period() / 3
}

func (p *CandlestickPainter) SetVisible(visible bool) {
	p.visible.Store(visible)
}

func (p *CandlestickPainter) Visible() bool {
	return p.visible.Load()
}

func (p *CandlestickPainter) Paint(gtx layout.Context, proj projection, clipRect image.Rectangle) {
	if !p.visible.Load() {
		return
	}
	barWidth, lineWidth := getBarWidth(proj.mX, p.halfWidth, gtx.Dp(1))
	p.paintPartition(gtx, proj, clipRect, p.bearRows, p.bearColor, barWidth, lineWidth)
	p.paintPartition(gtx, proj, clipRect, p.bullRows, p.bullColor, barWidth, lineWidth)
}

// rows are (time, open, close, high, low) tuples.
func (p *CandlestickPainter) paintPartition(gtx layout.Context, proj projection, clipRect image.Rectangle,
	rows [][]float64, c color.NRGBA, barWidth, lineWidth float32) {
	wicks := p.frame.wickSegments[:0]
	bodies := p.frame.bodySegments[:0]
	for _, row := range rows {
		xPos := proj.getXpos(row[0])
		// Performance: skip entries entirely outside of the visible plot
		// range. Clipping would do this as well, but we avoid the paint
		// operations in case there is a lot of data.
		if int(xPos)+int(barWidth/2) < clipRect.Min.X || int(xPos)-int(barWidth/2) > clipRect.Max.X {
			continue
		}
		yLow := proj.getYpos(row[4])
		yHigh := proj.getYpos(row[3])
		if math.Round(yLow) == math.Round(yHigh) {
			yHigh++ // Stroke does not draw zero length lines, see https://github.com/andybalholm/stroke/issues/3
		}
		wicks = append(wicks,
			stroke.MoveTo(f32.Pt(float32(xPos), float32(yLow))),
			stroke.LineTo(f32.Pt(float32(xPos), float32(yHigh))))

		yOpen := proj.getYpos(row[1])
		yClose := proj.getYpos(row[2])
		if math.Round(yOpen) == math.Round(yClose) {
			yClose-- // Use a minimum body height of 1 px
		}
		// clip.Rect has integer resolution and makes candles jump during
		// scrolling, so bodies are drawn as thick lines with a flat cap.
		bodies = append(bodies,
			stroke.MoveTo(f32.Pt(float32(xPos), float32(yOpen))),
			stroke.LineTo(f32.Pt(float32(xPos), float32(yClose))))
	}
	p.frame.wickSegments = wicks
	p.frame.bodySegments = bodies
	strokeSegments(gtx, wicks, lineWidth, c)
	strokeSegments(gtx, bodies, barWidth, c)
}

// VolumePainter draws one bar from zero to the volume value per row, with a
// half-width of 0.35 periods, colored by the candle direction of the row.
type VolumePainter struct {
	visible   atomic.Bool
	bullColor color.NRGBA
	bearColor color.NRGBA
	halfWidth float64
	bearRows  [][]float64
	bullRows  [][]float64
	frame     struct {
		barSegments []stroke.Segment
	}
}

func NewVolumePainter(data *chartdata.Table, bullColor, bearColor color.NRGBA) *VolumePainter {
	p := &VolumePainter{
		bullColor: bullColor,
		bearColor: bearColor,
	}
	p.Regenerate(data)
	p.visible.Store(true)
	return p
}

func (p *VolumePainter) Regenerate(data *chartdata.Table) {
	p.bearRows = data.BearRows()
	p.bullRows = data.BullRows()
	p.halfWidth = data.Period() * 0.7 * 0.5
}

func (p *VolumePainter) SetVisible(visible bool) {
	p.visible.Store(visible)
}

func (p *VolumePainter) Visible() bool {
	return p.visible.Load()
}

func (p *VolumePainter) Paint(gtx layout.Context, proj projection, clipRect image.Rectangle) {
	if !p.visible.Load() {
		return
	}
	barWidth, _ := getBarWidth(proj.mX, p.halfWidth, gtx.Dp(1))
	p.paintPartition(gtx, proj, clipRect, p.bearRows, p.bearColor, barWidth)
	p.paintPartition(gtx, proj, clipRect, p.bullRows, p.bullColor, barWidth)
}

// rows are (time, open, close, volume) tuples.
func (p *VolumePainter) paintPartition(gtx layout.Context, proj projection, clipRect image.Rectangle,
	rows [][]float64, c color.NRGBA, barWidth float32) {
	// The base position is always the same, bars start at the X axis.
	yBase := proj.getYpos(0)
	bars := p.frame.barSegments[:0]
	for _, row := range rows {
		xPos := proj.getXpos(row[0])
		if int(xPos)+int(barWidth/2) < clipRect.Min.X || int(xPos)-int(barWidth/2) > clipRect.Max.X {
			continue
		}
		yTop := proj.getYpos(row[3])
		y2 := yBase
		if math.Round(yTop) == math.Round(y2) {
			y2++ // Use a minimum height of 1 px
		}
		// Y position minus one, so the bar is painted above the X axis,
		// not onto it.
		bars = append(bars,
			stroke.MoveTo(f32.Pt(float32(xPos), float32(yTop-1))),
			stroke.LineTo(f32.Pt(float32(xPos), float32(y2-1))))
	}
	p.frame.barSegments = bars
	strokeSegments(gtx, bars, barWidth, c)
}

// LinePainter draws a plain Y series as a polyline. Lines are cheap and are
// not registered with the render gate.
type LinePainter struct {
	color  color.NRGBA
	times  []float64
	values []float64
	frame  struct {
		lineSegments []stroke.Segment
	}
}

func NewLinePainter(data *chartdata.Table, c color.NRGBA) *LinePainter {
	return &LinePainter{
		color:  c,
		times:  data.Times(),
		values: data.Column(1),
	}
}

func (p *LinePainter) Paint(gtx layout.Context, proj projection, clipRect image.Rectangle) {
	if len(p.values) <= 1 {
		return
	}
	segments := p.frame.lineSegments[:0]
	prevX, prevY := -1, -1
	for i, t := range p.times {
		if i >= len(p.values) {
			break
		}
		v := p.values[i]
		if math.IsNaN(v) {
			continue
		}
		xPos := proj.getXpos(t)
		yPos := proj.getYpos(v)
		xPosI := int(xPos)
		yPosI := int(yPos)
		if len(segments) == 0 {
			segments = append(segments, stroke.MoveTo(f32.Pt(float32(xPos), float32(yPos))))
		} else if xPosI != prevX || yPosI != prevY {
			// Performance: only draw a line if we hit a different pixel,
			// and only if one end is within the visible plot range.
			if !((xPosI < clipRect.Min.X && prevX < clipRect.Min.X) || (xPosI > clipRect.Max.X && prevX > clipRect.Max.X) ||
				(yPosI < clipRect.Min.Y && prevY < clipRect.Min.Y) || (yPosI > clipRect.Max.Y && prevY > clipRect.Max.Y)) {
				segments = append(segments, stroke.LineTo(f32.Pt(float32(xPos), float32(yPos))))
			}
		}
		prevX = xPosI
		prevY = yPosI
	}
	p.frame.lineSegments = segments
	strokeSegments(gtx, segments, 1, p.color)
}

func strokeSegments(gtx layout.Context, seg []stroke.Segment, width float32, c color.NRGBA) {
	if len(seg) == 0 {
		return
	}
	var path stroke.Path
	path.Segments = seg
	paint.FillShape(
		gtx.Ops,
		c,
		stroke.Stroke{Path: path, Width: width, Cap: stroke.FlatCap}.Op(gtx.Ops),
	)
}
