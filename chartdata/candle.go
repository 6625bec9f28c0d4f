// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The finview authors

package chartdata

import (
	"sort"
	"time"

	"github.com/ericlagergren/decimal"
)

type Candle struct {
	Timestamp  time.Time
	OpenPrice  *decimal.Big
	HighPrice  *decimal.Big
	LowPrice   *decimal.Big
	ClosePrice *decimal.Big
	Volume     *decimal.Big
}

// For sorting
type CandleList []Candle

func (x CandleList) Len() int           { return len(x) }
func (x CandleList) Less(i, j int) bool { return x[i].Timestamp.Before(x[j].Timestamp) }
func (x CandleList) Swap(i, j int)      { x[i], x[j] = x[j], x[i] }

// sortedCandles returns the candles in ascending timestamp order. Already
// ordered input is returned as is, unordered input is sorted on a copy.
func sortedCandles(candles []Candle) []Candle {
	if sort.IsSorted(CandleList(candles)) {
		return candles
	}
	sorted := make(CandleList, len(candles))
	copy(sorted, candles)
	sort.Sort(sorted)
	return sorted
}
