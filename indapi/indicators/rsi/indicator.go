// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The finview authors

package rsi

import (
	"image/color"
	"log"

	"finview/chartdata"
	"finview/indapi"

	"github.com/cinar/indicator"
)

type Indicator struct {
	result *chartdata.Table
	colors []color.NRGBA
}

const Id = "rsi"

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
	return indapi.GetMinColors(d.colors, 1)
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
	closePrices := source.Column(2)
	_, rsi := indicator.Rsi(closePrices)
	d.result = chartdata.NewLineTable(source.Times(), rsi)
}

func (d *Indicator) GetSeries() []indapi.Series {
	if d.result == nil {
		return nil
	}
	return []indapi.Series{{Data: d.result, Color: d.GetColors()[0]}}
}
