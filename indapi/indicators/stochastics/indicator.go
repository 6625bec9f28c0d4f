// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The finview authors

package stochastics

import (
	"image/color"
	"log"

	"finview/chartdata"
	"finview/indapi"

	"github.com/cinar/indicator"
)

type Indicator struct {
	k      *chartdata.Table
	dLine  *chartdata.Table
	colors []color.NRGBA
}

const Id = "stochastics"

func NewIndicator() indapi.IndicatorData {
	return &Indicator{}
}

func (d *Indicator) GetId() indapi.IndicatorId {
	return Id
}

func (d *Indicator) GetProperties() map[string]string {
	return map[string]string{}
}

func (d *Indicator) SetProperties(prop map[string]string) {
	for key := range prop {
		switch key {
		default:
			log.Printf("Unknown property %s was ignored.", key)
		}
	}
}

func (d *Indicator) GetColors() []color.NRGBA {
	return indapi.GetMinColors(d.colors, 2)
}

func (d *Indicator) SetColors(c []color.NRGBA) {
	d.colors = c
}

func (d *Indicator) GetPlacement() indapi.Placement {
	return indapi.PlacementSubPlot
}

func (d *Indicator) GetYRange() (lo, hi float64, fixed bool) {
	return 0, 100, true
}

func (d *Indicator) Update(source *chartdata.Table) {
	highPrices := source.Column(3)
	lowPrices := source.Column(4)
	closePrices := source.Column(2)
	k, dval := indicator.StochasticOscillator(highPrices, lowPrices, closePrices)
	d.k = chartdata.NewLineTable(source.Times(), k)
	d.dLine = chartdata.NewLineTable(source.Times(), dval)
}

func (d *Indicator) GetSeries() []indapi.Series {
	if d.k == nil {
		return nil
	}
	c := d.GetColors()
	return []indapi.Series{
		{Data: d.k, Color: c[0]},
		{Data: d.dLine, Color: c[1]},
	}
}
