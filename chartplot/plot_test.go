// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The finview authors

package chartplot

import (
	"image"
	"math"
	"testing"

	"finview/chartdata"
	"finview/chartval"
	"finview/widgets"

	"gioui.org/layout"
	"gioui.org/op"
	"github.com/stretchr/testify/assert"
)

func newTestVolumeTable(rows int) *chartdata.Table {
	times := make([]float64, rows)
	opens := make([]float64, rows)
	closes := make([]float64, rows)
	volumes := make([]float64, rows)
	for i := 0; i < rows; i++ {
		times[i] = float64(i * 60)
		opens[i] = 50
		closes[i] = 51
		volumes[i] = 1000 + float64(i%10)*100
	}
	t := chartdata.NewTable(times, opens, closes, volumes)
	t.SetScaleColSkip(3)
	return t
}

func newTestPlot() *Plot {
	b := NewBuilder(widgets.NewDarkPlotTheme(), DefaultViewOptions(), nil)
	b.AddCandlesticks(newTestTable(100))
	b.AddVolume(newTestVolumeTable(100))
	return b.Build()
}

func initializeTestPlot(testPlot *Plot) {
	var ops op.Ops
	var gtx layout.Context
	gtx.Constraints.Max = image.Pt(800, 600)
	gtx.Ops = &ops
	testPlot.InitializeFrame(gtx)
}

func TestBuildHeightWeights(t *testing.T) {
	plot := newTestPlot()

	assert.Len(t, plot.Sub, 2)
	assert.Equal(t, 0.75, plot.Sub[0].pxSizeRatioY)
	assert.Equal(t, 0.25, plot.Sub[1].pxSizeRatioY)
}

func TestLinkedSubPlotsShareTimeAxis(t *testing.T) {
	plot := newTestPlot()

	plot.leader.LinkedViewChanged(Rect{X0: 0, X1: 40 * 60})

	r0, _ := plot.Sub[0].View.Rect()
	r1, _ := plot.Sub[1].View.Rect()
	assert.Equal(t, r0.X0, r1.X0)
	assert.Equal(t, r0.X1, r1.X1)
	// Y ranges stay independent.
	assert.NotEqual(t, r0.Y1, r1.Y1)
}

func TestInitializeFrameCreatesProjections(t *testing.T) {
	plot := newTestPlot()

	initializeTestPlot(plot)

	for _, sub := range plot.Sub {
		assert.True(t, sub.frame.hasProjection)
	}
	assert.Equal(t, image.Pt(800, 600), plot.frame.totalPxSize)
	assert.Equal(t, 450, plot.Sub[1].frame.basePos.Y)
}

func TestProjectionMapsViewportToPlotArea(t *testing.T) {
	plot := newTestPlot()
	initializeTestPlot(plot)

	sub := plot.Sub[0]
	rect, _ := sub.View.Rect()
	proj := sub.frame.projection

	assert.True(t, math.Abs(proj.getXpos(rect.X0)-float64(sub.frame.minPos.X)) < chartval.NearZero)
	assert.True(t, math.Abs(proj.getXpos(rect.X1)-float64(sub.frame.maxPos.X)) < chartval.NearZero)
	// Larger values are higher up on screen.
	assert.True(t, math.Abs(proj.getYpos(rect.Y1)-float64(sub.frame.minPos.Y)) < chartval.NearZero)
	assert.True(t, math.Abs(proj.getYpos(rect.Y0)-float64(sub.frame.maxPos.Y)) < chartval.NearZero)
}

func TestProjectionRoundTrip(t *testing.T) {
	plot := newTestPlot()
	initializeTestPlot(plot)

	proj := plot.Sub[0].frame.projection
	assert.True(t, math.Abs(proj.getXvalue(proj.getXpos(1234))-1234) < chartval.NearZero)
	assert.True(t, math.Abs(proj.getYvalue(proj.getYpos(56.78))-56.78) < chartval.NearZero)
}

func TestNiceStep(t *testing.T) {
	assert.Equal(t, 1.0, niceStep(0.7))
	assert.Equal(t, 2.0, niceStep(1.3))
	assert.Equal(t, 5.0, niceStep(3.3))
	assert.Equal(t, 10.0, niceStep(7.2))
	assert.Equal(t, 0.05, niceStep(0.03))
	assert.Equal(t, 2000.0, niceStep(1100))
	assert.Equal(t, 1.0, niceStep(0))
}

func TestLabelPrecision(t *testing.T) {
	assert.Equal(t, 0, labelPrecision(5))
	assert.Equal(t, 1, labelPrecision(0.1))
	assert.Equal(t, 2, labelPrecision(0.05))
	assert.Equal(t, 6, labelPrecision(0.0000001))
}

func TestFormatYlabelThousands(t *testing.T) {
	plot := newTestPlot()
	sub := plot.Sub[1]
	sub.frame.labelValues = []float64{1000, 2000, 3000}
	sub.frame.valueGridY = 1000

	sub.determineLabelPrintFormat()

	assert.Equal(t, printFormatThousands, sub.frame.printFormat)
	assert.Equal(t, "2k", sub.formatYlabel(2000))
}

func TestFormatYlabelMillions(t *testing.T) {
	plot := newTestPlot()
	sub := plot.Sub[1]
	sub.frame.labelValues = []float64{2000000, 4000000}
	sub.frame.valueGridY = 2000000

	sub.determineLabelPrintFormat()

	assert.Equal(t, printFormatMillions, sub.frame.printFormat)
	assert.Equal(t, "4m", sub.formatYlabel(4000000))
}

func TestFormatYlabelDefault(t *testing.T) {
	plot := newTestPlot()
	sub := plot.Sub[0]
	sub.frame.labelValues = []float64{99.5, 100, 100.5}
	sub.frame.valueGridY = 0.5

	sub.determineLabelPrintFormat()

	assert.Equal(t, printFormatDefault, sub.frame.printFormat)
	assert.Equal(t, "100.5", sub.formatYlabel(100.5))
}

func TestTimeFormatDependsOnPeriod(t *testing.T) {
	plot := newTestPlot()
	assert.Equal(t, "02 Jan 15:04", plot.timeFormat())

	daily := NewBuilder(widgets.NewDarkPlotTheme(), DefaultViewOptions(), nil)
	times := make([]float64, 30)
	values := make([]float64, 30)
	for i := range times {
		times[i] = float64(i * 86400)
		values[i] = float64(i)
	}
	daily.AddLine(chartdata.NewLineTable(times, values), widgets.NewDarkPlotTheme().AxesColor)
	assert.Equal(t, "02 Jan 06", daily.Build().timeFormat())
}

func TestGetBarWidth(t *testing.T) {
	barWidth, lineWidth := getBarWidth(2.0, 20, 1000)
	assert.Equal(t, float32(80), barWidth)
	assert.Equal(t, float32(5), lineWidth)

	// Far zoomed out, both stay at their one pixel minimum.
	barWidth, lineWidth = getBarWidth(0.001, 20, 1000)
	assert.Equal(t, float32(1), barWidth)
	assert.Equal(t, float32(1), lineWidth)
}
