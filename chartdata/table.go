// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The finview authors

package chartdata

import (
	"math"
	"sort"

	"finview/chartval"
)

// Table is a time-indexed column table backing one chart item.
// Column 0 holds epoch seconds and must be sorted ascending; this is a
// precondition of all queries and is not validated here.
// Candle sticks: create with five columns: time, open, close, high, low.
// Volume bars: create with four columns: time, open, close, volume.
// For all other types, time is first, followed by one or more Y columns.
type Table struct {
	cols         [][]float64
	scaleColSkip int
	period       float64
	cache        hiloCache
}

// HiLo is the answer to a time range query. Count==0 means no row was inside
// the window and all other fields are zero.
type HiLo struct {
	T0    float64
	T1    float64
	Hi    float64
	Lo    float64
	Count int
}

// Relative tolerance for matching the bounds of consecutive range queries.
// Replaces formatting bounds to 9 significant digits with a typed comparison.
const hiloKeyTolerance = 1e-9

// Single-entry memo of the previous range query. During a drag or zoom,
// consecutive queries use nearly identical windows, so one entry is enough.
type hiloCache struct {
	valid  bool
	x0, x1 float64
	answer HiLo
}

func (c *hiloCache) matches(x0, x1 float64) bool {
	return c.valid && boundMatches(c.x0, x0) && boundMatches(c.x1, x1)
}

func boundMatches(a, b float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= hiloKeyTolerance*math.Max(math.Abs(a), math.Abs(b))
}

// NewTable creates a table from raw columns. All columns must have the same
// length. The period is derived from the first two time values and is not
// recomputed later, even if columns are merged.
func NewTable(cols ...[]float64) *Table {
	t := &Table{
		cols:         cols,
		scaleColSkip: 1, // skip at least time for hi/lo
	}
	if len(cols) > 0 && len(cols[0]) > 1 {
		t.period = cols[0][1] - cols[0][0]
	}
	return t
}

// NewCandleTable converts decimal candle data into the column layout used by
// candlestick rendering. Open and close are excluded from hi/lo scaling.
// The candles are sorted by timestamp to satisfy the ascending time
// precondition; the input slice is not modified.
func NewCandleTable(candles []Candle) *Table {
	candles = sortedCandles(candles)
	times := make([]float64, len(candles))
	opens := make([]float64, len(candles))
	closes := make([]float64, len(candles))
	highs := make([]float64, len(candles))
	lows := make([]float64, len(candles))
	for i, c := range candles {
		times[i] = float64(c.Timestamp.Unix())
		opens[i] = chartval.ConvertDecimalToFloat(c.OpenPrice)
		closes[i] = chartval.ConvertDecimalToFloat(c.ClosePrice)
		highs[i] = chartval.ConvertDecimalToFloat(c.HighPrice)
		lows[i] = chartval.ConvertDecimalToFloat(c.LowPrice)
	}
	t := NewTable(times, opens, closes, highs, lows)
	t.scaleColSkip = 3
	return t
}

// NewVolumeTable converts decimal candle data into the column layout used by
// volume bars. Only the volume column takes part in hi/lo scaling.
func NewVolumeTable(candles []Candle) *Table {
	candles = sortedCandles(candles)
	times := make([]float64, len(candles))
	opens := make([]float64, len(candles))
	closes := make([]float64, len(candles))
	volumes := make([]float64, len(candles))
	for i, c := range candles {
		times[i] = float64(c.Timestamp.Unix())
		opens[i] = chartval.ConvertDecimalToFloat(c.OpenPrice)
		closes[i] = chartval.ConvertDecimalToFloat(c.ClosePrice)
		volumes[i] = chartval.ConvertDecimalToFloat(c.Volume)
	}
	t := NewTable(times, opens, closes, volumes)
	t.scaleColSkip = 3
	return t
}

// NewLineTable creates a table for a plain Y series.
func NewLineTable(times, values []float64) *Table {
	return NewTable(times, values)
}

func (t *Table) NumRows() int {
	if len(t.cols) == 0 {
		return 0
	}
	return len(t.cols[0])
}

func (t *Table) NumCols() int {
	return len(t.cols)
}

// Period is the nominal spacing between consecutive time samples.
// It is zero for tables with fewer than two rows.
func (t *Table) Period() float64 {
	return t.period
}

// ScaleColSkip is the number of leading columns (including time) which are
// excluded from hi/lo scaling.
func (t *Table) ScaleColSkip() int {
	return t.scaleColSkip
}

func (t *Table) SetScaleColSkip(n int) {
	if n > t.scaleColSkip {
		t.scaleColSkip = n
		t.cache.valid = false
	}
}

// Times returns the time column.
func (t *Table) Times() []float64 {
	return t.cols[0]
}

// Column returns the values of column i.
func (t *Table) Column(i int) []float64 {
	return t.cols[i]
}

// TimeAt returns the time value offsetFromEnd rows back from the last row,
// shifted by periodMult nominal periods. Offsets beyond the first row clamp
// to the first row.
func (t *Table) TimeAt(offsetFromEnd int, periodMult float64) float64 {
	rows := t.NumRows()
	if rows == 0 {
		return 0
	}
	if offsetFromEnd >= rows {
		offsetFromEnd = rows - 1
	}
	return t.cols[0][rows-1-offsetFromEnd] + periodMult*t.period
}

// MergeColumns appends all value columns of other to this table, aligned by
// row position. Both tables must share identical time indices; this is the
// caller's responsibility. The scale column skip takes the maximum of both
// tables so that merged candle data keeps open/close out of scaling.
func (t *Table) MergeColumns(other *Table) {
	t.cols = append(t.cols, other.cols[1:]...)
	if other.scaleColSkip > t.scaleColSkip {
		t.scaleColSkip = other.scaleColSkip
	}
	t.cache.valid = false
}

// HiLo answers a time range query: the first and last time actually found in
// [x0, x1], the highest and lowest value of all scaling-eligible columns in
// that window, and the number of rows. Bounds given in reverse order are
// normalized first. The previous answer is reused when the bounds match the
// previous query within a fixed relative tolerance.
func (t *Table) HiLo(x0, x1 float64) HiLo {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if t.cache.matches(x0, x1) {
		return t.cache.answer
	}
	t.cache.valid = true
	t.cache.x0 = x0
	t.cache.x1 = x1
	t.cache.answer = t.hilo(x0, x1)
	return t.cache.answer
}

func (t *Table) hilo(x0, x1 float64) HiLo {
	times := t.cols[0]
	i0 := sort.SearchFloat64s(times, x0)
	i1 := sort.Search(len(times), func(i int) bool { return times[i] > x1 })
	if i0 >= i1 {
		return HiLo{}
	}
	hi := math.Inf(-1)
	lo := math.Inf(1)
	for _, col := range t.cols[t.scaleColSkip:] {
		for _, v := range col[i0:i1] {
			if v > hi {
				hi = v
			}
			if v < lo {
				lo = v
			}
		}
	}
	return HiLo{
		T0:    times[i0],
		T1:    times[i1-1],
		Hi:    hi,
		Lo:    lo,
		Count: i1 - i0,
	}
}

// BearRows returns all rows whose open price is higher than the close price,
// in table order. Each row holds the values of every column.
func (t *Table) BearRows() [][]float64 {
	return t.selectRows(func(o, c float64) bool { return !chartval.IsBullish(o, c) })
}

// BullRows returns all rows whose open price is at or below the close price,
// in table order. Together with BearRows this is a strict binary partition of
// the table.
func (t *Table) BullRows() [][]float64 {
	return t.selectRows(chartval.IsBullish)
}

func (t *Table) selectRows(pred func(o, c float64) bool) [][]float64 {
	opens := t.cols[1]
	closes := t.cols[2]
	var rows [][]float64
	for i := 0; i < t.NumRows(); i++ {
		if pred(opens[i], closes[i]) {
			row := make([]float64, len(t.cols))
			for j, col := range t.cols {
				row[j] = col[i]
			}
			rows = append(rows, row)
		}
	}
	return rows
}
