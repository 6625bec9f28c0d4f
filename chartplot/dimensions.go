// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The finview authors

package chartplot

import (
	"image"
	"math"
)

// projection maps data coordinates to pixel positions: f(v)=m*v+b.
// X values increase to the right, Y values decrease downwards.
type projection struct {
	mX float64
	mY float64
	bX float64
	bY float64
}

func newProjection(r Rect, minPos, maxPos image.Point) projection {
	var proj projection
	w := r.Width()
	h := r.Height()
	if w <= 0 || h <= 0 {
		return proj
	}
	proj.mX = float64(maxPos.X-minPos.X) / w
	proj.mY = -float64(maxPos.Y-minPos.Y) / h
	proj.bX = float64(minPos.X) - proj.mX*r.X0
	proj.bY = float64(maxPos.Y) - proj.mY*r.Y0
	return proj
}

func (proj projection) getXpos(t float64) float64 {
	return proj.mX*t + proj.bX
}

func (proj projection) getYpos(v float64) float64 {
	return proj.mY*v + proj.bY
}

func (proj projection) getXvalue(px float64) float64 {
	if proj.mX == 0 {
		return 0
	}
	return (px - proj.bX) / proj.mX
}

func (proj projection) getYvalue(px float64) float64 {
	if proj.mY == 0 {
		return 0
	}
	return (px - proj.bY) / proj.mY
}

// getBarWidth converts a data-space half-width into stroke widths in pixels.
// Bodies keep a minimum width so candles stay visible when zoomed far out.
func getBarWidth(mX float64, halfWidth float64, maxLineWidth int) (barWidth, lineWidth float32) {
	const minBarWidthPx = 1
	const minLineWidthPx = 1

	barWidth = float32(math.Abs(mX) * halfWidth * 2)
	if barWidth < minBarWidthPx {
		barWidth = minBarWidthPx
	}
	lineWidth = barWidth / 16
	if lineWidth < minLineWidthPx {
		lineWidth = minLineWidthPx
	}
	if lineWidth > float32(maxLineWidth) {
		lineWidth = float32(maxLineWidth)
	}
	return
}
