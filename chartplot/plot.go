// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The finview authors

package chartplot

import (
	"image"
	"image/color"
	"math"
	"strconv"
	"time"

	"finview/chartval"
	"finview/widgets"

	"gioui.org/f32"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"gioui.org/x/stroke"
)

// Note that this is, by design, not a generic plotting library.
// It is specifically for financial time series plots.
// The X axis is always epoch time in seconds.

// All subplots of a plot share the same X range; the first subplot added is
// the leader and the others follow its viewport.
type SubPlot struct {
	Theme        *widgets.PlotTheme
	View         *ViewBox
	painters     []Painter
	pxSizeRatioY float64
	frame        struct {
		basePos       image.Point
		totalPxSize   image.Point
		minPos        image.Point // plot area
		maxPos        image.Point // plot area
		projection    projection
		hasProjection bool
		valueGridY    float64
		printFormat   printFormat
		yAxesTextPosX int
		labelValues   []float64
		gridSegments  []stroke.Segment
	}
}

type printFormat int

const (
	printFormatDefault printFormat = iota
	printFormatThousands
	printFormatMillions
	printFormatBillions
)

type SubPlotTag struct {
	a EventArea
	s *SubPlot
}

func (sub *SubPlot) AddPainter(p Painter) {
	sub.painters = append(sub.painters, p)
}

type Plot struct {
	Theme           *widgets.PlotTheme
	Sub             []*SubPlot
	gate            *RenderGate
	leader          *ViewBox
	pointerPressPos f32.Point
	frame           struct {
		totalPxSize      image.Point
		axesMarginPxMin  image.Point
		axesMarginPxMax  image.Point
		subPlotMarginPxY int
		textMarginPx     image.Point
		textSizePx       image.Point
		nextTextSizePx   image.Point
		pxGridX          int
		pxGridY          int
		valueGridX       float64
		xAxesTextPosY    int
	}
}

// Close stops the render gate tick. Call when the plot window is destroyed.
func (plot *Plot) Close() {
	if plot.gate != nil {
		plot.gate.Stop()
	}
}

func (plot *Plot) calcMinPos(subI int) image.Point {
	var marginY int
	if subI == 0 {
		marginY = plot.frame.axesMarginPxMin.Y
	} else {
		marginY = plot.frame.subPlotMarginPxY
	}
	return image.Point{
		X: plot.frame.axesMarginPxMin.X,
		Y: plot.Sub[subI].frame.basePos.Y + marginY,
	}
}

func (plot *Plot) calcMaxPos(subI int) image.Point {
	var marginY int
	if subI == len(plot.Sub)-1 {
		marginY = plot.frame.axesMarginPxMax.Y + plot.frame.textSizePx.Y
	} else {
		marginY = plot.frame.subPlotMarginPxY
	}
	return image.Point{
		X: plot.frame.totalPxSize.X - plot.frame.axesMarginPxMax.X - plot.frame.textSizePx.X,
		Y: plot.Sub[subI].frame.basePos.Y + plot.Sub[subI].frame.totalPxSize.Y - marginY,
	}
}

func (plot *Plot) calcPxPosRatioY(subI int) float64 {
	var pxPosRatioY float64
	// Add up all size ratios of plots above this one.
	for i := subI - 1; i >= 0; i-- {
		pxPosRatioY += plot.Sub[i].pxSizeRatioY
	}
	return pxPosRatioY
}

// InitializeFrame updates the frame geometry and processes input events.
// Call once per frame before Layout.
func (plot *Plot) InitializeFrame(gtx layout.Context) {
	plot.frame.totalPxSize = gtx.Constraints.Max
	plot.frame.axesMarginPxMin = plot.Theme.AxesMarginMin.Dp(gtx)
	plot.frame.axesMarginPxMax = plot.Theme.AxesMarginMax.Dp(gtx)
	plot.frame.subPlotMarginPxY = gtx.Dp(plot.Theme.SubPlotMarginY)
	plot.frame.textMarginPx = plot.Theme.TextMargin.Dp(gtx)
	plot.frame.pxGridX = gtx.Dp(plot.Theme.DefaultPlotGrid.X)
	plot.frame.pxGridY = gtx.Dp(plot.Theme.DefaultPlotGrid.Y)
	// Do not auto-scale down text size to avoid loops.
	if plot.frame.nextTextSizePx.X > 0 && plot.frame.nextTextSizePx.X > plot.frame.textSizePx.X {
		plot.frame.textSizePx.X = plot.frame.nextTextSizePx.X
		plot.frame.nextTextSizePx.X = 0
	}
	if plot.frame.nextTextSizePx.Y > 0 && plot.frame.nextTextSizePx.Y > plot.frame.textSizePx.Y {
		plot.frame.textSizePx.Y = plot.frame.nextTextSizePx.Y
		plot.frame.nextTextSizePx.Y = 0
	}
	plot.frame.xAxesTextPosY = plot.frame.totalPxSize.Y - plot.frame.axesMarginPxMax.Y - plot.frame.textSizePx.Y + plot.frame.textMarginPx.Y
	for i, s := range plot.Sub {
		// Mind the order of updating frame values due to dependencies.
		s.frame.basePos.X = 0
		s.frame.basePos.Y = int(float64(plot.frame.totalPxSize.Y) * plot.calcPxPosRatioY(i))
		s.frame.totalPxSize.X = plot.frame.totalPxSize.X
		s.frame.totalPxSize.Y = int(float64(plot.frame.totalPxSize.Y) * s.pxSizeRatioY)
		s.frame.minPos = plot.calcMinPos(i)
		s.frame.maxPos = plot.calcMaxPos(i)
		s.frame.yAxesTextPosX = plot.frame.totalPxSize.X - plot.frame.axesMarginPxMax.X - plot.frame.textSizePx.X + plot.frame.textMarginPx.X
		if rect, ok := s.View.Rect(); ok {
			s.frame.projection = newProjection(rect, s.frame.minPos, s.frame.maxPos)
			s.frame.hasProjection = s.frame.projection.mX != 0 && s.frame.projection.mY != 0
		} else {
			s.frame.hasProjection = false
		}
	}
	plot.handleInput(gtx)
	plot.registerInputOps(gtx.Ops)
}

func (plot *Plot) registerInputOps(ops *op.Ops) {
	// pointer input per subplot
	for _, s := range plot.Sub {
		subArea := clip.Rect(image.Rectangle{Min: s.frame.minPos, Max: s.frame.maxPos}).Push(ops)
		pointer.InputOp{
			Tag:   SubPlotTag{a: EventAreaPlot, s: s},
			Kinds: pointer.Press | pointer.Drag | pointer.Scroll,
			ScrollBounds: image.Rectangle{
				Min: image.Point{
					X: 0,
					Y: math.MinInt,
				},
				Max: image.Point{
					X: 0,
					Y: math.MaxInt,
				},
			},
		}.Add(ops)
		subArea.Pop()
	}
}

func (plot *Plot) handleInput(gtx layout.Context) {
	for _, s := range plot.Sub {
		for _, gtxEvent := range gtx.Events(SubPlotTag{a: EventAreaPlot, s: s}) {
			switch e := gtxEvent.(type) {
			case pointer.Event:
				if e.Kind == pointer.Press {
					plot.pointerPressPos = e.Position
				} else if e.Kind == pointer.Drag {
					if !s.frame.hasProjection {
						continue
					}
					posDelta := plot.pointerPressPos.Sub(e.Position)
					plot.pointerPressPos = e.Position
					dx := float64(posDelta.X) / s.frame.projection.mX
					plot.leader.Pan(dx)
					op.InvalidateOp{}.Add(gtx.Ops)
				} else if e.Kind == pointer.Scroll {
					if !s.frame.hasProjection {
						continue
					}
					cursor := Point{
						X: s.frame.projection.getXvalue(float64(e.Position.X)),
						Y: s.frame.projection.getYvalue(float64(e.Position.Y)),
					}
					plot.leader.Wheel(float64(e.Scroll.Y), cursor)
					op.InvalidateOp{}.Add(gtx.Ops)
				}
			}
		}
	}
}

func (plot *Plot) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	for _, s := range plot.Sub {
		if !s.frame.hasProjection {
			continue
		}
		s.updateGridValues(plot)
		s.paintGrid(plot.frame.valueGridX, gtx)
		s.paintAxes(gtx)
		maxTextSizeX := s.paintYaxesText(gtx, th)
		if maxTextSizeX > plot.frame.nextTextSizePx.X {
			plot.frame.nextTextSizePx.X = maxTextSizeX
		}
		s.paintItems(gtx)
	}
	maxTextSizeY := plot.paintXaxesText(gtx, th)
	if maxTextSizeY > plot.frame.nextTextSizePx.Y {
		plot.frame.nextTextSizePx.Y = maxTextSizeY
	}
	return layout.Dimensions{Size: plot.frame.totalPxSize}
}

// updateGridValues derives the grid spacing of both axes from the current
// viewport and the theme's preferred pixel distance between grid lines.
func (sub *SubPlot) updateGridValues(plot *Plot) {
	proj := sub.frame.projection
	plot.frame.valueGridX = niceStep(float64(plot.frame.pxGridX) / proj.mX)
	sub.frame.valueGridY = niceStep(float64(plot.frame.pxGridY) / -proj.mY)
}

// niceStep rounds a raw grid step up to 1, 2 or 5 times a power of ten.
func niceStep(raw float64) float64 {
	if raw <= 0 || math.IsInf(raw, 0) || math.IsNaN(raw) {
		return 1
	}
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch n := raw / mag; {
	case n <= 1:
		return mag
	case n <= 2:
		return 2 * mag
	case n <= 5:
		return 5 * mag
	default:
		return 10 * mag
	}
}

func (sub *SubPlot) calcFirstGridValueY() float64 {
	rect, _ := sub.View.Rect()
	return math.Ceil(rect.Y0/sub.frame.valueGridY) * sub.frame.valueGridY
}

func (sub *SubPlot) calcFirstGridValueX(valueGridX float64) float64 {
	rect, _ := sub.View.Rect()
	return math.Ceil(rect.X0/valueGridX) * valueGridX
}

func (sub *SubPlot) paintAxes(gtx layout.Context) {
	minPos := sub.frame.minPos
	maxPos := sub.frame.maxPos
	var path stroke.Path
	path.Segments = []stroke.Segment{
		stroke.MoveTo(f32.Pt(float32(maxPos.X), float32(minPos.Y))),
		stroke.LineTo(f32.Pt(float32(maxPos.X), float32(maxPos.Y))),
		stroke.MoveTo(f32.Pt(float32(minPos.X), float32(maxPos.Y))),
		stroke.LineTo(f32.Pt(float32(maxPos.X), float32(maxPos.Y))),
	}
	area := stroke.Stroke{Path: path, Width: 1}.Op(gtx.Ops)
	paint.FillShape(gtx.Ops, sub.Theme.AxesColor, area)
}

func (sub *SubPlot) paintGrid(valueGridX float64, gtx layout.Context) {
	rect, _ := sub.View.Rect()
	minPos := sub.frame.minPos
	maxPos := sub.frame.maxPos
	proj := sub.frame.projection

	var path stroke.Path
	path.Segments = sub.frame.gridSegments[:0]
	for x := sub.calcFirstGridValueX(valueGridX); x <= rect.X1; x += valueGridX {
		posX := float32(proj.getXpos(x))
		path.Segments = append(path.Segments,
			stroke.MoveTo(f32.Pt(posX, float32(minPos.Y))),
			stroke.LineTo(f32.Pt(posX, float32(maxPos.Y))))
	}
	for y := sub.calcFirstGridValueY(); y <= rect.Y1; y += sub.frame.valueGridY {
		posY := float32(proj.getYpos(y))
		path.Segments = append(path.Segments,
			stroke.MoveTo(f32.Pt(float32(minPos.X), posY)),
			stroke.LineTo(f32.Pt(float32(maxPos.X), posY)))
	}
	sub.frame.gridSegments = path.Segments
	area := stroke.Stroke{Path: path, Width: float32(gtx.Dp(1))}.Op(gtx.Ops)
	paint.FillShape(gtx.Ops, sub.Theme.GridColor, area)
}

func (sub *SubPlot) paintItems(gtx layout.Context) {
	clipRect := image.Rectangle{Min: sub.frame.minPos, Max: sub.frame.maxPos}
	// Only draw within the plot area.
	defer clip.Rect(clipRect).Push(gtx.Ops).Pop()
	for _, p := range sub.painters {
		p.Paint(gtx, sub.frame.projection, clipRect)
	}
}

func recordAxesLabelText(labelText string, c color.NRGBA, fontSize int, gtx layout.Context, th *material.Theme) (op.CallOp, image.Point) {
	macro := op.Record(gtx.Ops)
	lbl := material.Label(
		th,
		unit.Sp(fontSize),
		labelText,
	)
	lbl.Color = c
	lbl.Alignment = text.Start
	dims := lbl.Layout(gtx)
	return macro.Stop(), dims.Size
}

func (sub *SubPlot) paintYaxesText(gtx layout.Context, th *material.Theme) (maxTextSizeX int) {
	rect, _ := sub.View.Rect()
	sub.calculateLabelValues(rect)
	sub.determineLabelPrintFormat()
	var labelText string
	for _, v := range sub.frame.labelValues {
		newLabelText := sub.formatYlabel(v)
		if newLabelText == labelText {
			continue // do not print text twice if it is unchanged due to precision
		}
		labelText = newLabelText
		// Record drawing to pre-calculate text size.
		call, textSize := recordAxesLabelText(labelText, sub.Theme.AxesYtextColor, sub.Theme.AxesYfontSize, gtx, th)
		if textSize.X > maxTextSizeX {
			maxTextSizeX = textSize.X
		}
		posY := int(sub.frame.projection.getYpos(v))
		stack := op.Offset(image.Point{X: sub.frame.yAxesTextPosX, Y: posY - textSize.Y/2}).Push(gtx.Ops)
		// Run recorded drawing.
		call.Add(gtx.Ops)
		stack.Pop()
	}
	return
}

func (sub *SubPlot) calculateLabelValues(rect Rect) {
	labelValues := sub.frame.labelValues[:0]
	for v := sub.calcFirstGridValueY(); v <= rect.Y1; v += sub.frame.valueGridY {
		labelValue := v
		// we do not want negative zero on our label
		if labelValue < 0 && labelValue > -chartval.NearZero {
			labelValue = 0
		}
		labelValues = append(labelValues, labelValue)
	}
	sub.frame.labelValues = labelValues
}

func (sub *SubPlot) determineLabelPrintFormat() {
	printBillions := true
	printMillions := true
	printThousands := true
	for i, v := range sub.frame.labelValues {
		labelValueI := int64(v)

		// Check whether all values are billions, millions or thousands.
		if (i != 0 && labelValueI/1000000000 == 0) || labelValueI%1000000000 != 0 {
			printBillions = false
		}
		if (i != 0 && labelValueI/1000000 == 0) || labelValueI%1000000 != 0 {
			printMillions = false
		}
		if (i != 0 && labelValueI/1000 == 0) || labelValueI%1000 != 0 {
			printThousands = false
		}
	}
	sub.frame.printFormat = printFormatDefault
	if printBillions {
		sub.frame.printFormat = printFormatBillions
	} else if printMillions {
		sub.frame.printFormat = printFormatMillions
	} else if printThousands {
		sub.frame.printFormat = printFormatThousands
	}
}

func (sub *SubPlot) formatYlabel(value float64) string {
	precision := labelPrecision(sub.frame.valueGridY)
	switch sub.frame.printFormat {
	case printFormatBillions:
		return strconv.FormatFloat(value/1000000000, 'f', 0, 64) + "b"
	case printFormatMillions:
		return strconv.FormatFloat(value/1000000, 'f', 0, 64) + "m"
	case printFormatThousands:
		return strconv.FormatFloat(value/1000, 'f', 0, 64) + "k"
	default:
		return strconv.FormatFloat(value, 'f', precision, 64)
	}
}

func labelPrecision(step float64) int {
	if step >= 1 {
		return 0
	}
	return int(math.Min(6, math.Ceil(-math.Log10(step))))
}

func (plot *Plot) paintXaxesText(gtx layout.Context, th *material.Theme) (maxTextSizeY int) {
	if len(plot.Sub) == 0 {
		return
	}
	sub := plot.Sub[0]
	if !sub.frame.hasProjection {
		return
	}
	rect, _ := sub.View.Rect()
	timeFormatStr := plot.timeFormat()
	for x := sub.calcFirstGridValueX(plot.frame.valueGridX); x <= rect.X1; x += plot.frame.valueGridX {
		labelText := time.Unix(int64(x), 0).Format(timeFormatStr)
		call, textSize := recordAxesLabelText(labelText, plot.Theme.AxesXtextColor, plot.Theme.AxesXfontSize, gtx, th)
		if textSize.Y > maxTextSizeY {
			maxTextSizeY = textSize.Y
		}
		posX := int(sub.frame.projection.getXpos(x))
		stack := op.Offset(image.Point{X: posX - textSize.X/2, Y: plot.frame.xAxesTextPosY}).Push(gtx.Ops)
		call.Add(gtx.Ops)
		stack.Pop()
	}
	return
}

// Daily and coarser data gets date labels, intraday data gets clock labels.
func (plot *Plot) timeFormat() string {
	if plot.leader != nil && plot.leader.Data() != nil && plot.leader.Data().Period() >= 86400 {
		return "02 Jan 06"
	}
	return "02 Jan 15:04"
}
