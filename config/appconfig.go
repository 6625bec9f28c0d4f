// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The finview authors

package config

import (
	"image"

	"github.com/barkimedes/go-deepcopy"
)

type AppConfig struct {
	LightTheme   bool `yaml:",omitempty"`
	WindowConfig WindowConfig
	PlotConfig   PlotConfig
}

type WindowConfig struct {
	Size image.Point `yaml:",omitempty"`
}

// PlotConfig holds the viewport and deferred rendering tuning of all plots.
type PlotConfig struct {
	InitSteps          int     `yaml:",omitempty"`
	MinScaleSamples    int     `yaml:",omitempty"`
	WheelZoomBase      float64 `yaml:",omitempty"`
	WheelSensitivity   float64 `yaml:",omitempty"`
	EdgeSnapFraction   float64 `yaml:",omitempty"`
	QuietTicks         int     `yaml:",omitempty"`
	RegisterBlindTicks int     `yaml:",omitempty"`
	GateIntervalMs     int     `yaml:",omitempty"`
	SubPlotConfig      []SubPlotConfig
}

func NewAppConfig() AppConfig {
	return AppConfig{
		PlotConfig: NewPlotConfig(),
	}
}

func NewPlotConfig() PlotConfig {
	return PlotConfig{
		InitSteps:          300,
		MinScaleSamples:    20,
		WheelZoomBase:      1.02,
		WheelSensitivity:   0.125,
		EdgeSnapFraction:   0.2,
		QuietTicks:         2,
		RegisterBlindTicks: 50,
		GateIntervalMs:     50,
		SubPlotConfig:      NewSubPlotConfig(),
	}
}

func (a *AppConfig) deepCopy() AppConfig {
	c, err := deepcopy.Anything(a)
	if err != nil {
		panic(err)
	}
	return *c.(*AppConfig)
}

func (a *AppConfig) Sanitize() {
	def := NewPlotConfig()
	p := &a.PlotConfig
	if p.InitSteps <= 0 {
		p.InitSteps = def.InitSteps
	}
	if p.MinScaleSamples <= 0 {
		p.MinScaleSamples = def.MinScaleSamples
	}
	if p.WheelZoomBase <= 1 {
		p.WheelZoomBase = def.WheelZoomBase
	}
	if p.WheelSensitivity == 0 {
		p.WheelSensitivity = def.WheelSensitivity
	}
	if p.EdgeSnapFraction <= 0 || p.EdgeSnapFraction >= 0.5 {
		p.EdgeSnapFraction = def.EdgeSnapFraction
	}
	if p.QuietTicks <= 0 {
		p.QuietTicks = def.QuietTicks
	}
	if p.RegisterBlindTicks <= 0 {
		p.RegisterBlindTicks = def.RegisterBlindTicks
	}
	if p.GateIntervalMs <= 0 {
		p.GateIntervalMs = def.GateIntervalMs
	}
	if len(p.SubPlotConfig) == 0 {
		p.SubPlotConfig = NewSubPlotConfig()
	}
}
