// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The finview authors

package bollinger

import (
	"image/color"
	"log"
	"strconv"

	"finview/chartdata"
	"finview/chartval"
	"finview/indapi"
	"finview/indapi/calc"
	"finview/indapi/properties"

	"github.com/ericlagergren/decimal"
)

type Indicator struct {
	top       *chartdata.Table
	mid       *chartdata.Table
	bottom    *chartdata.Table
	timeUnits int
	bandWidth int
	colors    []color.NRGBA
}

const Id = "bollinger"

func NewIndicator() indapi.IndicatorData {
	return &Indicator{timeUnits: 20, bandWidth: 2}
}

func (d *Indicator) GetId() indapi.IndicatorId {
	return Id
}

func (d *Indicator) GetProperties() map[string]string {
	return map[string]string{
		"Width":      strconv.Itoa(d.bandWidth),
		"Time Units": strconv.Itoa(d.timeUnits),
	}
}

func (d *Indicator) SetProperties(prop map[string]string) {
	for key, value := range prop {
		switch key {
		case "Width":
			properties.SetPositiveValue(&d.bandWidth, value)
		case "Time Units":
			properties.SetPositiveValue(&d.timeUnits, value)
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

// Update calculates the bands using decimal math to avoid accumulating
// floating point errors over the moving window.
func (d *Indicator) Update(source *chartdata.Table) {
	closePrices := source.Column(2)
	closing := make([]*decimal.Big, len(closePrices))
	for i, v := range closePrices {
		closing[i] = chartval.ConvertFloatToDecimal(v)
	}
	top := make([]float64, len(closing))
	mid := make([]float64, len(closing))
	bottom := make([]float64, len(closing))
	for i := range closing {
		subSet := closing[calc.Max(0, i+1-d.timeUnits) : i+1]
		mean := calc.Mean(new(decimal.Big), subSet)
		stdDev := calc.StdDev(new(decimal.Big), subSet)
		stdDev.Mul(stdDev, decimal.New(int64(d.bandWidth), 0))
		m := chartval.ConvertDecimalToFloat(mean)
		dev := chartval.ConvertDecimalToFloat(stdDev)
		top[i] = m + dev
		mid[i] = m
		bottom[i] = m - dev
	}
	d.top = chartdata.NewLineTable(source.Times(), top)
	d.mid = chartdata.NewLineTable(source.Times(), mid)
	d.bottom = chartdata.NewLineTable(source.Times(), bottom)
}

func (d *Indicator) GetSeries() []indapi.Series {
	if d.mid == nil {
		return nil
	}
	c := d.GetColors()[0]
	return []indapi.Series{
		{Data: d.top, Color: c},
		{Data: d.mid, Color: c},
		{Data: d.bottom, Color: c},
	}
}
