// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The finview authors

package sma

import (
	"image/color"
	"log"
	"strconv"

	"finview/chartdata"
	"finview/indapi"
	"finview/indapi/properties"

	"github.com/cinar/indicator"
)

type Indicator struct {
	result     *chartdata.Table
	numPeriods int
	colors     []color.NRGBA
}

const Id = "sma"

func NewIndicator() indapi.IndicatorData {
	return &Indicator{numPeriods: 9}
}

func (d *Indicator) GetId() indapi.IndicatorId {
	return Id
}

func (d *Indicator) GetProperties() map[string]string {
	return map[string]string{
		"Time Periods": strconv.Itoa(d.numPeriods),
	}
}

func (d *Indicator) SetProperties(prop map[string]string) {
	for key, value := range prop {
		switch key {
		case "Time Periods":
			properties.SetPositiveValue(&d.numPeriods, value)
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
	return indapi.PlacementOverlay
}

func (d *Indicator) GetYRange() (lo, hi float64, fixed bool) {
	return 0, 0, false
}

func (d *Indicator) Update(source *chartdata.Table) {
	closePrices := source.Column(2)
	d.result = chartdata.NewLineTable(source.Times(), indicator.Sma(d.numPeriods, closePrices))
}

func (d *Indicator) GetSeries() []indapi.Series {
	if d.result == nil {
		return nil
	}
	return []indapi.Series{{Data: d.result, Color: d.GetColors()[0]}}
}
