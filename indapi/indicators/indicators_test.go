// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The finview authors

package indicators

import (
	"image/color"
	"testing"

	"finview/chartdata"
	"finview/indapi"

	"github.com/stretchr/testify/assert"
)

func newTestCandleTable(rows int) *chartdata.Table {
	times := make([]float64, rows)
	opens := make([]float64, rows)
	closes := make([]float64, rows)
	highs := make([]float64, rows)
	lows := make([]float64, rows)
	for i := 0; i < rows; i++ {
		times[i] = float64(i * 86400)
		opens[i] = 100 + float64(i)
		closes[i] = 101 + float64(i)
		highs[i] = 103 + float64(i)
		lows[i] = 99 + float64(i)
	}
	t := chartdata.NewTable(times, opens, closes, highs, lows)
	t.SetScaleColSkip(3)
	return t
}

func TestGetList(t *testing.T) {
	list := GetList()
	assert.Equal(t, indapi.IndicatorList{"bollinger", "rsi", "sma", "stochastics"}, list)
}

func TestCreateUnknownPanics(t *testing.T) {
	assert.Panics(t, func() {
		Create("unknown", nil, nil)
	})
}

func TestGetDefaultProperties(t *testing.T) {
	props := GetDefaultProperties("sma")
	assert.Equal(t, "9", props["Time Periods"])
}

func TestSmaIndicator(t *testing.T) {
	table := chartdata.NewTable(
		[]float64{0, 60, 120, 180},
		[]float64{0, 0, 0, 0},
		[]float64{2, 4, 6, 8},
		[]float64{0, 0, 0, 0},
		[]float64{0, 0, 0, 0},
	)
	ind := Create("sma", map[string]string{"Time Periods": "3"}, []color.NRGBA{{R: 255, A: 255}})

	ind.Update(table)

	assert.Equal(t, indapi.PlacementOverlay, ind.GetPlacement())
	series := ind.GetSeries()
	assert.Len(t, series, 1)
	assert.Equal(t, []float64{2, 3, 4, 6}, series[0].Data.Column(1))
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, series[0].Color)
}

func TestBollingerIndicator(t *testing.T) {
	table := newTestCandleTable(30)
	ind := Create("bollinger", map[string]string{"Time Units": "5"}, nil)

	ind.Update(table)

	series := ind.GetSeries()
	assert.Len(t, series, 3)
	top := series[0].Data.Column(1)
	mid := series[1].Data.Column(1)
	bottom := series[2].Data.Column(1)
	for i := range mid {
		assert.GreaterOrEqual(t, top[i], mid[i])
		assert.GreaterOrEqual(t, mid[i], bottom[i])
	}
	// A window of one sample has no deviation.
	assert.Equal(t, top[0], bottom[0])
}

func TestRsiIndicator(t *testing.T) {
	table := newTestCandleTable(30)
	ind := Create("rsi", nil, nil)

	ind.Update(table)

	assert.Equal(t, indapi.PlacementSubPlot, ind.GetPlacement())
	lo, hi, fixed := ind.GetYRange()
	assert.True(t, fixed)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 100.0, hi)
	series := ind.GetSeries()
	assert.Len(t, series, 1)
	values := series[0].Data.Column(1)
	assert.Len(t, values, 30)
	// Monotonically rising closes keep the index pinned high.
	assert.Greater(t, values[29], 50.0)
}

func TestStochasticsIndicator(t *testing.T) {
	table := newTestCandleTable(30)
	ind := Create("stochastics", nil, nil)

	ind.Update(table)

	assert.Equal(t, indapi.PlacementSubPlot, ind.GetPlacement())
	lo, hi, fixed := ind.GetYRange()
	assert.True(t, fixed)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 100.0, hi)
	series := ind.GetSeries()
	assert.Len(t, series, 2)
	for _, v := range series[0].Data.Column(1) {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 100.0)
	}
}
