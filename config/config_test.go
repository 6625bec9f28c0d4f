// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The finview authors

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeRestoresDefaults(t *testing.T) {
	c := AppConfig{}
	c.Sanitize()

	def := NewPlotConfig()
	assert.Equal(t, def.InitSteps, c.PlotConfig.InitSteps)
	assert.Equal(t, def.MinScaleSamples, c.PlotConfig.MinScaleSamples)
	assert.Equal(t, def.WheelZoomBase, c.PlotConfig.WheelZoomBase)
	assert.Equal(t, def.QuietTicks, c.PlotConfig.QuietTicks)
	assert.Equal(t, def.GateIntervalMs, c.PlotConfig.GateIntervalMs)
	assert.Len(t, c.PlotConfig.SubPlotConfig, 3)
}

func TestSanitizeKeepsValidValues(t *testing.T) {
	c := NewAppConfig()
	c.PlotConfig.InitSteps = 100
	c.PlotConfig.EdgeSnapFraction = 0.3

	c.Sanitize()

	assert.Equal(t, 100, c.PlotConfig.InitSteps)
	assert.Equal(t, 0.3, c.PlotConfig.EdgeSnapFraction)
}

func TestSanitizeRejectsInvalidEdgeSnap(t *testing.T) {
	c := NewAppConfig()
	c.PlotConfig.EdgeSnapFraction = 0.7

	c.Sanitize()

	assert.Equal(t, 0.2, c.PlotConfig.EdgeSnapFraction)
}

func TestLockCopiesConfig(t *testing.T) {
	g := &GlobalConfig{appConfig: NewAppConfig(), loaded: true}

	c, err := g.Lock()
	assert.NoError(t, err)
	c.PlotConfig.InitSteps = 5000
	c.PlotConfig.SubPlotConfig[0].Indicators[0].Properties["Time Periods"] = "21"

	// The modified copy is independent until Unlock.
	assert.Equal(t, 300, g.appConfig.PlotConfig.InitSteps)
	assert.Empty(t, g.appConfig.PlotConfig.SubPlotConfig[0].Indicators[0].Properties)
	g.appConfigMutex.Unlock()
}

func TestTestConfigRoundTrip(t *testing.T) {
	cfg := NewTestConfig()

	c, err := cfg.Lock()
	assert.NoError(t, err)
	c.LightTheme = true
	assert.NoError(t, cfg.Unlock(c))

	copied, err := cfg.Copy()
	assert.NoError(t, err)
	assert.True(t, copied.LightTheme)
}
