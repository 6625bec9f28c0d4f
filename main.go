// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The finview authors

package main

import (
	"context"
	"log"

	"finview/chartapp"
	"finview/config"

	"gioui.org/app"
)

func main() {
	c := config.NewGlobalConfig()
	a := chartapp.NewChartApp(c)
	err := a.Initialize()
	if err != nil {
		log.Fatalf("failed to initialize: %v", err)
	}
	go a.Run(context.Background())
	app.Main()
}
