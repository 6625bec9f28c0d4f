// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The finview authors

package config

import (
	"image/color"

	"finview/indapi"
)

type IndicatorConfig struct {
	IndicatorId indapi.IndicatorId
	Properties  map[string]string
	Colors      []color.NRGBA
}
