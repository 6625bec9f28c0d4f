// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The finview authors

package indicators

import (
	"image/color"
	"sort"

	"finview/indapi"
	"finview/indapi/indicators/bollinger"
	"finview/indapi/indicators/rsi"
	"finview/indapi/indicators/sma"
	"finview/indapi/indicators/stochastics"

	"golang.org/x/exp/maps"
)

const DefaultId = "sma"

var IndicatorRegistry map[indapi.IndicatorId]func() indapi.IndicatorData = make(map[indapi.IndicatorId]func() indapi.IndicatorData)

func init() {
	IndicatorRegistry[bollinger.Id] = bollinger.NewIndicator
	IndicatorRegistry[rsi.Id] = rsi.NewIndicator
	IndicatorRegistry[sma.Id] = sma.NewIndicator
	IndicatorRegistry[stochastics.Id] = stochastics.NewIndicator
}

func Create(id indapi.IndicatorId, properties map[string]string, colors []color.NRGBA) indapi.IndicatorData {
	d, ok := IndicatorRegistry[id]
	if !ok {
		panic("invalid indicator name")
	}
	ind := d()
	ind.SetProperties(properties)
	ind.SetColors(colors)
	return ind
}

func GetDefaultProperties(id indapi.IndicatorId) map[string]string {
	d, ok := IndicatorRegistry[id]
	if !ok {
		panic("invalid indicator name")
	}
	return d().GetProperties()
}

func GetList() indapi.IndicatorList {
	l := indapi.IndicatorList(maps.Keys(IndicatorRegistry))
	sort.Sort(l)
	return l
}
