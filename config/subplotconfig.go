// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The finview authors

package config

type SubPlotType int

const (
	SubPlotTypePrice SubPlotType = iota
	SubPlotTypeVolume
	SubPlotTypeIndicator
)

type SubPlotConfig struct {
	Type       SubPlotType
	Indicators []IndicatorConfig
}

// Returns the default chart layout: price with a moving average on top,
// volume bars and a stochastics oscillator below.
func NewSubPlotConfig() []SubPlotConfig {
	return []SubPlotConfig{
		{
			Type: SubPlotTypePrice,
			Indicators: []IndicatorConfig{
				{IndicatorId: "sma", Properties: make(map[string]string)},
			},
		},
		{
			Type: SubPlotTypeVolume,
		},
		{
			Type: SubPlotTypeIndicator,
			Indicators: []IndicatorConfig{
				{IndicatorId: "stochastics", Properties: make(map[string]string)},
			},
		},
	}
}
