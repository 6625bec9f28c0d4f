// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The finview authors

package chartplot

import (
	"math"

	"finview/chartdata"
)

type Point struct {
	X float64
	Y float64
}

// Rect is a viewport rectangle in data coordinates: time on X, value on Y.
type Rect struct {
	X0 float64
	Y0 float64
	X1 float64
	Y1 float64
}

func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

func (r Rect) Height() float64 {
	return r.Y1 - r.Y0
}

func (r Rect) Center() Point {
	return Point{X: (r.X0 + r.X1) / 2, Y: (r.Y0 + r.Y1) / 2}
}

type ViewOptions struct {
	// Number of samples of the initial window when data is bound.
	InitSteps int
	// Minimum number of rows a candidate window must contain before a
	// rescale is committed.
	MinScaleSamples int
	// Base and exponent scale of the wheel zoom factor.
	WheelZoomBase    float64
	WheelSensitivity float64
	// Fraction of the viewport width near each edge where the zoom center
	// snaps to that edge.
	EdgeSnapFraction float64
}

func DefaultViewOptions() ViewOptions {
	return ViewOptions{
		InitSteps:        300,
		MinScaleSamples:  20,
		WheelZoomBase:    1.02,
		WheelSensitivity: 0.125,
		EdgeSnapFraction: 0.2,
	}
}

func (o *ViewOptions) sanitize() {
	def := DefaultViewOptions()
	if o.InitSteps <= 0 {
		o.InitSteps = def.InitSteps
	}
	if o.MinScaleSamples <= 0 {
		o.MinScaleSamples = def.MinScaleSamples
	}
	if o.WheelZoomBase <= 1 {
		o.WheelZoomBase = def.WheelZoomBase
	}
	if o.WheelSensitivity == 0 {
		o.WheelSensitivity = def.WheelSensitivity
	}
	if o.EdgeSnapFraction <= 0 || o.EdgeSnapFraction >= 0.5 {
		o.EdgeSnapFraction = def.EdgeSnapFraction
	}
}

// ViewBox owns the visible rectangle of one subplot and rescales it from
// time window queries against its data table. All methods must be called
// from the event processing goroutine; the only concurrent collaborator is
// the render gate, which serializes itself.
type ViewBox struct {
	opts       ViewOptions
	data       *chartdata.Table
	rect       Rect
	hasRect    bool
	autoScaleY bool
	gate       *RenderGate
	listeners  []func(Rect)
}

func NewViewBox(opts ViewOptions) *ViewBox {
	opts.sanitize()
	return &ViewBox{
		opts:       opts,
		autoScaleY: true,
	}
}

// SetGate attaches the deferred render gate which is suppressed on every
// committed rescale.
func (v *ViewBox) SetGate(g *RenderGate) {
	v.gate = g
}

// AddRangeListener registers a callback invoked after every committed
// rectangle change. Linked viewports follow the leader this way.
func (v *ViewBox) AddRangeListener(f func(Rect)) {
	v.listeners = append(v.listeners, f)
}

func (v *ViewBox) Rect() (Rect, bool) {
	return v.rect, v.hasRect
}

func (v *ViewBox) Data() *chartdata.Table {
	return v.data
}

// SetData binds a data table, or merges its value columns into the already
// bound table (row alignment is the caller's responsibility). If no visible
// window has been committed yet, it is seeded from the last InitSteps
// samples, padded by half a period on each side. Seeding is skipped if the
// window holds fewer than MinScaleSamples rows.
func (v *ViewBox) SetData(data *chartdata.Table) {
	if data == nil {
		v.data = nil
		return
	}
	if v.data == nil {
		v.data = data
	} else if v.data != data {
		v.data.MergeColumns(data)
	}
	if v.hasRect {
		return
	}
	x0 := v.data.TimeAt(v.opts.InitSteps, -0.5)
	x1 := v.data.TimeAt(0, 0.5)
	r := v.data.HiLo(x0, x1)
	if r.Count >= v.opts.MinScaleSamples {
		v.commit(Rect{X0: r.T0, Y0: r.Lo, X1: r.T1, Y1: r.Hi})
	}
}

// Limits returns the full extent of the bound data padded by half a period.
// Pan stops at these bounds instead of sliding into empty space.
func (v *ViewBox) Limits() (x0, x1 float64, ok bool) {
	if v.data == nil || v.data.NumRows() == 0 {
		return 0, 0, false
	}
	x0 = v.data.TimeAt(v.data.NumRows(), -0.5)
	x1 = v.data.TimeAt(0, 0.5)
	return x0, x1, true
}

// Wheel applies an exponential zoom step. The cursor position is given in
// data coordinates; a cursor within the edge snap fraction of either side
// zooms all the way toward that edge, which is what you want when scanning
// to the end of history.
func (v *ViewBox) Wheel(delta float64, cursor Point) {
	if !v.hasRect {
		return
	}
	factor := math.Pow(v.opts.WheelZoomBase, delta*v.opts.WheelSensitivity)
	vr := v.rect
	w := vr.Width()
	if w <= 0 {
		return
	}
	center := cursor
	frac := (cursor.X - vr.X0) / w
	if frac < v.opts.EdgeSnapFraction {
		center.X = vr.X0
	} else if frac > 1-v.opts.EdgeSnapFraction {
		center.X = vr.X1
	}
	v.scaleRect(vr, factor, &center)
}

// LinkedViewChanged adopts the X range of a time-synchronized peer viewport.
func (v *ViewBox) LinkedViewChanged(peer Rect) {
	v.scaleRect(peer, 1.0, nil)
}

// Pan shifts the visible window by dx data units, clamped to Limits so the
// window never leaves the data extent.
func (v *ViewBox) Pan(dx float64) {
	if !v.hasRect {
		return
	}
	vr := v.rect
	vr.X0 += dx
	vr.X1 += dx
	if lo, hi, ok := v.Limits(); ok && vr.Width() <= hi-lo {
		if vr.X1 > hi {
			vr.X0 = hi - vr.Width()
			vr.X1 = hi
		}
		if vr.X0 < lo {
			vr.X1 = lo + vr.Width()
			vr.X0 = lo
		}
	}
	v.scaleRect(vr, 1.0, nil)
}

// SetYRange disables Y auto-scaling and clamps the Y bounds. Subsequent
// rescales only adjust the time axis.
func (v *ViewBox) SetYRange(yMin, yMax float64) {
	v.autoScaleY = false
	v.rect.Y0 = yMin
	v.rect.Y1 = yMax
	if v.hasRect {
		v.notify()
	}
}

func (v *ViewBox) AutoScaleY() bool {
	return v.autoScaleY
}

// SuggestPadding always reports zero: visual padding comes from the
// half-period window extension, not from a toolkit margin heuristic.
func (v *ViewBox) SuggestPadding() float64 {
	return 0
}

// scaleRect computes the candidate time window by scaling vr around center
// and rescales the viewport from the data inside that window. Windows with
// fewer than MinScaleSamples rows are rejected and leave the previous state
// untouched.
func (v *ViewBox) scaleRect(vr Rect, factor float64, center *Point) {
	if v.data == nil {
		return
	}
	c := vr.Center()
	if center != nil {
		c = *center
	}
	x0 := c.X + (vr.X0-c.X)*factor
	x1 := c.X + (vr.X1-c.X)*factor
	r := v.data.HiLo(x0, x1)
	if r.Count < v.opts.MinScaleSamples {
		return
	}
	next := Rect{
		X0: r.T0 - v.data.Period()*0.5,
		X1: r.T1 + v.data.Period()*0.5,
		Y0: r.Lo,
		Y1: r.Hi,
	}
	if !v.autoScaleY {
		next.Y0 = v.rect.Y0
		next.Y1 = v.rect.Y1
	}
	v.commit(next)
	if v.gate != nil {
		v.gate.Suppress()
	}
}

func (v *ViewBox) commit(r Rect) {
	v.rect = r
	v.hasRect = true
	v.notify()
}

func (v *ViewBox) notify() {
	for _, f := range v.listeners {
		f(v.rect)
	}
}
