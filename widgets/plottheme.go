// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The finview authors

package widgets

import (
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/unit"
)

type DpPoint struct {
	X unit.Dp
	Y unit.Dp
}

func (p *DpPoint) Dp(gtx layout.Context) image.Point {
	return image.Point{
		X: gtx.Dp(p.X),
		Y: gtx.Dp(p.Y),
	}
}

type PlotTheme struct {
	AxesMarginMin   DpPoint
	AxesMarginMax   DpPoint
	SubPlotMarginY  unit.Dp
	TextMargin      DpPoint
	AxesXfontSize   int
	AxesYfontSize   int
	DefaultPlotGrid DpPoint
	AxesColor       color.NRGBA
	GridColor       color.NRGBA
	CandleUpColor   color.NRGBA
	CandleDownColor color.NRGBA
	BarUpColor      color.NRGBA
	BarDownColor    color.NRGBA
	LineColors      []color.NRGBA
	AxesXtextColor  color.NRGBA
	AxesYtextColor  color.NRGBA
}

func NewDarkPlotTheme() *PlotTheme {
	return &PlotTheme{
		AxesMarginMin:   DpPoint{X: 10, Y: 1},
		AxesMarginMax:   DpPoint{X: 30, Y: 10},
		SubPlotMarginY:  0,
		TextMargin:      DpPoint{X: 7, Y: 7},
		AxesXfontSize:   17,
		AxesYfontSize:   17,
		DefaultPlotGrid: DpPoint{X: 150, Y: 100},
		AxesColor:       color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		GridColor:       color.NRGBA{R: 60, G: 60, B: 60, A: 255},
		CandleUpColor:   color.NRGBA{R: 0, G: 255, B: 0, A: 255},
		CandleDownColor: color.NRGBA{R: 255, G: 0, B: 0, A: 255},
		BarUpColor:      color.NRGBA{R: 0, G: 255, B: 0, A: 255},
		BarDownColor:    color.NRGBA{R: 255, G: 0, B: 0, A: 255},
		LineColors: []color.NRGBA{
			{R: 255, G: 255, B: 0, A: 255},
			{R: 0, G: 255, B: 255, A: 255},
			{R: 255, G: 0, B: 255, A: 255},
		},
		AxesXtextColor: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		AxesYtextColor: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

func NewLightPlotTheme() *PlotTheme {
	return &PlotTheme{
		AxesMarginMin:   DpPoint{X: 10, Y: 1},
		AxesMarginMax:   DpPoint{X: 30, Y: 10},
		SubPlotMarginY:  0,
		TextMargin:      DpPoint{X: 7, Y: 7},
		AxesXfontSize:   17,
		AxesYfontSize:   17,
		DefaultPlotGrid: DpPoint{X: 150, Y: 100},
		AxesColor:       color.NRGBA{R: 0, G: 0, B: 0, A: 255},
		GridColor:       color.NRGBA{R: 230, G: 230, B: 230, A: 255},
		CandleUpColor:   color.NRGBA{R: 0, G: 180, B: 0, A: 255},
		CandleDownColor: color.NRGBA{R: 220, G: 0, B: 0, A: 255},
		BarUpColor:      color.NRGBA{R: 0, G: 180, B: 0, A: 255},
		BarDownColor:    color.NRGBA{R: 220, G: 0, B: 0, A: 255},
		LineColors: []color.NRGBA{
			{R: 180, G: 140, B: 0, A: 255},
			{R: 0, G: 140, B: 180, A: 255},
			{R: 180, G: 0, B: 180, A: 255},
		},
		AxesXtextColor: color.NRGBA{R: 0, G: 0, B: 0, A: 255},
		AxesYtextColor: color.NRGBA{R: 0, G: 0, B: 0, A: 255},
	}
}

// LineColor cycles through the theme's line palette.
func (th *PlotTheme) LineColor(i int) color.NRGBA {
	return th.LineColors[i%len(th.LineColors)]
}
