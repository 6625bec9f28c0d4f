// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The finview authors

package chartapp

import (
	"context"
	"fmt"
	"image"
	"log"
	"os"
	"time"

	"finview/calendar"
	"finview/chartdata"
	"finview/chartplot"
	"finview/config"
	"finview/indapi"
	"finview/indapi/indicators"
	"finview/widgets"

	"gioui.org/app"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
)

const demoDays = 500
const demoStartPrice = 100

type ChartApp struct {
	config    config.Config
	matTheme  *material.Theme
	plotTheme *widgets.PlotTheme
	plot      *chartplot.Plot
	gate      *chartplot.RenderGate
	win       *app.Window
	winSizeDp image.Point
}

func NewChartApp(c config.Config) *ChartApp {
	return &ChartApp{config: c}
}

// Initialize loads the configuration and assembles the chart from it.
func (a *ChartApp) Initialize() error {
	appConfig, err := a.config.Copy()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %v", err)
	}
	if appConfig.LightTheme {
		a.matTheme = widgets.NewLightMaterialTheme()
		a.plotTheme = widgets.NewLightPlotTheme()
	} else {
		a.matTheme = widgets.NewDarkMaterialTheme()
		a.plotTheme = widgets.NewDarkPlotTheme()
	}

	cal := calendar.NewUSBankCalendar()
	from := time.Now().AddDate(-2, 0, 0)
	candles := GenerateDailyCandles(cal, from, demoDays, demoStartPrice, time.Now().UnixNano())
	candleTable := chartdata.NewCandleTable(candles)

	a.gate = chartplot.NewRenderGate(chartplot.GateOptions{
		QuietTicks:         appConfig.PlotConfig.QuietTicks,
		RegisterBlindTicks: appConfig.PlotConfig.RegisterBlindTicks,
		Interval:           time.Duration(appConfig.PlotConfig.GateIntervalMs) * time.Millisecond,
	}, a.Invalidate)

	b := chartplot.NewBuilder(a.plotTheme, chartplot.ViewOptions{
		InitSteps:        appConfig.PlotConfig.InitSteps,
		MinScaleSamples:  appConfig.PlotConfig.MinScaleSamples,
		WheelZoomBase:    appConfig.PlotConfig.WheelZoomBase,
		WheelSensitivity: appConfig.PlotConfig.WheelSensitivity,
		EdgeSnapFraction: appConfig.PlotConfig.EdgeSnapFraction,
	}, a.gate)

	colorIndex := 0
	for _, subConfig := range appConfig.PlotConfig.SubPlotConfig {
		switch subConfig.Type {
		case config.SubPlotTypePrice:
			sub := b.AddCandlesticks(candleTable)
			for _, indConfig := range subConfig.Indicators {
				ind := a.createIndicator(indConfig, &colorIndex)
				ind.Update(candleTable)
				for _, s := range ind.GetSeries() {
					b.OverlayLine(sub, s.Data, s.Color)
				}
			}
		case config.SubPlotTypeVolume:
			b.AddVolume(chartdata.NewVolumeTable(candles))
		case config.SubPlotTypeIndicator:
			for _, indConfig := range subConfig.Indicators {
				ind := a.createIndicator(indConfig, &colorIndex)
				ind.Update(candleTable)
				var sub *chartplot.SubPlot
				for _, s := range ind.GetSeries() {
					if sub == nil {
						sub = b.AddLine(s.Data, s.Color)
					} else {
						b.OverlayLine(sub, s.Data, s.Color)
					}
				}
				if lo, hi, fixed := ind.GetYRange(); fixed && sub != nil {
					sub.View.SetYRange(lo, hi)
				}
			}
		}
	}
	a.plot = b.Build()
	return nil
}

func (a *ChartApp) createIndicator(c config.IndicatorConfig, colorIndex *int) indapi.IndicatorData {
	colors := c.Colors
	if len(colors) == 0 {
		colors = append(colors, a.plotTheme.LineColor(*colorIndex))
		*colorIndex++
	}
	return indicators.Create(c.IndicatorId, c.Properties, colors)
}

func (a *ChartApp) Invalidate() {
	if a.win != nil {
		a.win.Invalidate()
	}
}

func (a *ChartApp) Run(ctx context.Context) {
	a.createWindow()
	a.gate.Start()
	err := a.handleEvents(ctx)
	if err != nil {
		log.Printf("terminating with error: %v", err)
	}
	a.plot.Close()
	a.saveWindowSize()
	os.Exit(0)
}

func (a *ChartApp) createWindow() {
	appConfig, err := a.config.Copy()
	if err != nil {
		log.Printf("failed to load window configuration: %v", err)
	}
	size := appConfig.WindowConfig.Size
	if size.X == 0 || size.Y == 0 {
		size.X = 1280
		size.Y = 1024
	}
	a.win = app.NewWindow(
		app.Title(a.config.GetAppName()),
		app.Size(unit.Dp(size.X), unit.Dp(size.Y)),
	)
}

func (a *ChartApp) handleEvents(ctx context.Context) error {
	var ops op.Ops
	for e := range a.win.Events() {
		switch e := e.(type) {
		case system.FrameEvent:
			gtx := layout.NewContext(&ops, e)
			a.winSizeDp = image.Point{
				X: int(float32(e.Size.X) / gtx.Metric.PxPerDp),
				Y: int(float32(e.Size.Y) / gtx.Metric.PxPerDp),
			}
			paint.Fill(gtx.Ops, a.matTheme.Bg)
			a.plot.InitializeFrame(gtx)
			a.plot.Layout(gtx, a.matTheme)
			e.Frame(gtx.Ops)
		case system.DestroyEvent:
			return e.Err
		}
	}
	return nil
}

func (a *ChartApp) saveWindowSize() {
	if a.winSizeDp.X == 0 || a.winSizeDp.Y == 0 {
		return
	}
	appConfig, err := a.config.Lock()
	if err != nil {
		log.Printf("failed to lock configuration: %v", err)
		return
	}
	appConfig.WindowConfig.Size = a.winSizeDp
	err = a.config.Unlock(appConfig)
	if err != nil {
		log.Printf("failed to store configuration: %v", err)
	}
}
