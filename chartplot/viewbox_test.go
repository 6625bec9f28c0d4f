// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The finview authors

package chartplot

import (
	"testing"

	"finview/chartdata"

	"github.com/stretchr/testify/assert"
)

// newTestTable creates a candle-layout table with the given number of rows,
// period 60 starting at t=0, and mildly varying values.
func newTestTable(rows int) *chartdata.Table {
	times := make([]float64, rows)
	opens := make([]float64, rows)
	closes := make([]float64, rows)
	highs := make([]float64, rows)
	lows := make([]float64, rows)
	for i := 0; i < rows; i++ {
		times[i] = float64(i * 60)
		opens[i] = 50
		closes[i] = 51
		highs[i] = 55 + float64(i%7)
		lows[i] = 45 - float64(i%5)
	}
	t := chartdata.NewTable(times, opens, closes, highs, lows)
	t.SetScaleColSkip(3)
	return t
}

func newTestViewBox(rows int) *ViewBox {
	v := NewViewBox(DefaultViewOptions())
	v.SetData(newTestTable(rows))
	return v
}

func TestSetDataSeedsInitialWindow(t *testing.T) {
	v := newTestViewBox(100)

	rect, ok := v.Rect()
	assert.True(t, ok)
	assert.Equal(t, 0.0, rect.X0)
	assert.Equal(t, float64(99*60), rect.X1)
	r := v.Data().HiLo(rect.X0, rect.X1)
	assert.Equal(t, r.Lo, rect.Y0)
	assert.Equal(t, r.Hi, rect.Y1)
}

func TestSetDataRequiresMinimumSamples(t *testing.T) {
	v := newTestViewBox(19)

	_, ok := v.Rect()
	assert.False(t, ok)
}

func TestSetDataLimitsToLastInitSteps(t *testing.T) {
	v := newTestViewBox(400)

	rect, ok := v.Rect()
	assert.True(t, ok)
	// 400 rows, but the initial window only covers the last 300 samples.
	assert.Equal(t, float64((400-1-300)*60), rect.X0)
	assert.Equal(t, float64(399*60), rect.X1)
}

func TestRescaleRejectsBelowMinimum(t *testing.T) {
	v := newTestViewBox(100)
	before, _ := v.Rect()

	// 19 rows inside the candidate window: rejected, prior state retained.
	v.LinkedViewChanged(Rect{X0: 0, X1: 18 * 60, Y0: 0, Y1: 1})
	after, _ := v.Rect()
	assert.Equal(t, before, after)

	// 20 rows: committed.
	v.LinkedViewChanged(Rect{X0: 0, X1: 19 * 60, Y0: 0, Y1: 1})
	after, _ = v.Rect()
	assert.NotEqual(t, before, after)
	assert.Equal(t, -30.0, after.X0) // half a period of padding
	assert.Equal(t, 19*60+30.0, after.X1)
}

func TestRescaleSetsYToVisibleHiLo(t *testing.T) {
	v := newTestViewBox(100)

	v.LinkedViewChanged(Rect{X0: 0, X1: 30 * 60})
	rect, _ := v.Rect()
	r := v.Data().HiLo(0, 30*60)
	assert.Equal(t, r.Lo, rect.Y0)
	assert.Equal(t, r.Hi, rect.Y1)
}

func TestWheelEdgeSnapLeft(t *testing.T) {
	a := newTestViewBox(100)
	b := newTestViewBox(100)
	rect, _ := a.Rect()
	w := rect.Width()

	// A strong zoom-in step with the cursor at 10% and at 0% of the width
	// must produce the same rectangle: both snap to the left edge.
	a.Wheel(-160, Point{X: rect.X0 + 0.1*w})
	b.Wheel(-160, Point{X: rect.X0})

	ra, _ := a.Rect()
	rb, _ := b.Rect()
	assert.Equal(t, rb, ra)
	assert.Equal(t, rect.X0, ra.X0) // left edge kept
	assert.Less(t, ra.Width(), w)
}

func TestWheelEdgeSnapRight(t *testing.T) {
	a := newTestViewBox(100)
	b := newTestViewBox(100)
	rect, _ := a.Rect()
	w := rect.Width()

	a.Wheel(-160, Point{X: rect.X0 + 0.9*w})
	b.Wheel(-160, Point{X: rect.X1})

	ra, _ := a.Rect()
	rb, _ := b.Rect()
	assert.Equal(t, rb, ra)
	assert.Equal(t, rect.X1, ra.X1) // right edge kept
}

func TestWheelCenterZoomDiffersFromEdge(t *testing.T) {
	a := newTestViewBox(100)
	b := newTestViewBox(100)
	rect, _ := a.Rect()

	a.Wheel(-160, Point{X: rect.Center().X})
	b.Wheel(-160, Point{X: rect.X0})

	ra, _ := a.Rect()
	rb, _ := b.Rect()
	assert.NotEqual(t, rb, ra)
}

func TestWheelZoomOut(t *testing.T) {
	v := newTestViewBox(1000)
	v.LinkedViewChanged(Rect{X0: 300 * 60, X1: 400 * 60})
	rect, _ := v.Rect()

	v.Wheel(160, rect.Center())

	after, _ := v.Rect()
	assert.Greater(t, after.Width(), rect.Width())
}

func TestPan(t *testing.T) {
	v := newTestViewBox(1000)
	v.LinkedViewChanged(Rect{X0: 300 * 60, X1: 400 * 60})
	rect, _ := v.Rect()

	v.Pan(600)
	after, _ := v.Rect()
	assert.Equal(t, rect.X0+600, after.X0)
	assert.Equal(t, rect.X1+600, after.X1)

	// Panning far past either end of the data stops at the padded extent
	// and keeps the window width.
	width := after.Width()
	v.Pan(1e9)
	right, _ := v.Rect()
	assert.Equal(t, float64(999*60)+30, right.X1)
	assert.Equal(t, right.X1-width, right.X0)

	v.Pan(-1e9)
	left, _ := v.Rect()
	assert.Equal(t, -30.0, left.X0)
	assert.Equal(t, left.X0+width, left.X1)
}

func TestFixedYRange(t *testing.T) {
	v := newTestViewBox(100)
	v.SetYRange(0, 500)
	assert.False(t, v.AutoScaleY())

	v.LinkedViewChanged(Rect{X0: 0, X1: 30 * 60})
	rect, _ := v.Rect()
	assert.Equal(t, 0.0, rect.Y0)
	assert.Equal(t, 500.0, rect.Y1)
	// X still follows the candidate window.
	assert.Equal(t, -30.0, rect.X0)
}

func TestLinkedFollowerAdoptsLeaderRange(t *testing.T) {
	leader := newTestViewBox(100)
	follower := NewViewBox(DefaultViewOptions())
	follower.SetData(newTestTable(100))
	leader.AddRangeListener(func(r Rect) {
		follower.LinkedViewChanged(r)
	})

	leader.LinkedViewChanged(Rect{X0: 0, X1: 40 * 60})

	lr, _ := leader.Rect()
	fr, _ := follower.Rect()
	assert.Equal(t, lr.X0, fr.X0)
	assert.Equal(t, lr.X1, fr.X1)
}

func TestSuggestPadding(t *testing.T) {
	v := NewViewBox(DefaultViewOptions())
	assert.Equal(t, 0.0, v.SuggestPadding())
}

func TestRescaleSuppressesGate(t *testing.T) {
	gate := NewRenderGate(GateOptions{QuietTicks: 2, RegisterBlindTicks: 2}, nil)
	item := &fakeItem{}
	gate.Register(item)
	gate.Advance()
	gate.Advance()
	assert.True(t, item.visible)

	v := newTestViewBox(100)
	v.SetGate(gate)
	v.LinkedViewChanged(Rect{X0: 0, X1: 40 * 60})
	assert.False(t, item.visible)
}

func TestMergeDataKeepsScaleSkip(t *testing.T) {
	v := newTestViewBox(100)
	line := chartdata.NewLineTable(v.Data().Times(), make([]float64, 100))

	v.SetData(line)

	assert.Equal(t, 3, v.Data().ScaleColSkip())
	assert.Equal(t, 6, v.Data().NumCols())
}
