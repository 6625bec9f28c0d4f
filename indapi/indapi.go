// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The finview authors

package indapi

import (
	"image/color"

	"finview/chartdata"
)

type IndicatorId string

// For sorting
type IndicatorList []IndicatorId

func (x IndicatorList) Len() int           { return len(x) }
func (x IndicatorList) Less(i, j int) bool { return x[i] < x[j] }
func (x IndicatorList) Swap(i, j int)      { x[i], x[j] = x[j], x[i] }

type Placement int

const (
	// Drawn on top of the price candles, sharing their scale.
	PlacementOverlay Placement = iota
	// Drawn in a separate subplot below the price.
	PlacementSubPlot
)

// Series is one drawable line of a computed indicator.
type Series struct {
	Data  *chartdata.Table
	Color color.NRGBA
}

type IndicatorData interface {
	GetId() IndicatorId
	GetProperties() map[string]string
	SetProperties(map[string]string)
	GetColors() []color.NRGBA
	SetColors([]color.NRGBA)
	GetPlacement() Placement
	// GetYRange reports a fixed value range, if the indicator has one.
	// Oscillators are bounded and do not auto-scale.
	GetYRange() (lo, hi float64, fixed bool)
	// Update recomputes all series from candle columns
	// (time, open, close, high, low).
	Update(source *chartdata.Table)
	GetSeries() []Series
}

func GetMinColors(c []color.NRGBA, numColors int) []color.NRGBA {
	for len(c) < numColors {
		c = append(c, color.NRGBA{})
	}
	return c
}

func GetNormalisedColors(c []color.NRGBA, def color.NRGBA) []color.NRGBA {
	for i := range c {
		if empty := (color.NRGBA{}); c[i] == empty {
			c[i] = def
		}
	}
	return c
}
