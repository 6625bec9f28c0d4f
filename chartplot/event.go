// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The finview authors

package chartplot

type EventArea int

const (
	EventAreaPlot EventArea = iota
	EventAreaXaxis
	EventAreaYaxis
)
