// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The finview authors

package chartapp

import (
	"math"
	"math/rand"
	"time"

	"finview/calendar"
	"finview/chartdata"
	"finview/chartval"
)

// GenerateDailyCandles produces a random walk of daily candles, one per
// exchange trading day, stamped with the session close. The walk is
// deterministic for a given seed.
func GenerateDailyCandles(cal calendar.BankCalendar, from time.Time, numDays int, startPrice float64, seed int64) []chartdata.Candle {
	rng := rand.New(rand.NewSource(seed))
	days := cal.TradingDays(from, numDays)
	candles := make([]chartdata.Candle, 0, len(days))
	price := startPrice
	for _, day := range days {
		open := price
		drift := rng.NormFloat64() * 0.02 * price
		closePrice := open + drift
		if closePrice < 1 {
			closePrice = 1
		}
		high := math.Max(open, closePrice) * (1 + rng.Float64()*0.01)
		low := math.Min(open, closePrice) * (1 - rng.Float64()*0.01)
		volume := 1e6 * (0.5 + rng.Float64())
		candles = append(candles, chartdata.Candle{
			Timestamp:  cal.GetCloseTime(day),
			OpenPrice:  chartval.ConvertFloatToDecimal(open),
			HighPrice:  chartval.ConvertFloatToDecimal(high),
			LowPrice:   chartval.ConvertFloatToDecimal(low),
			ClosePrice: chartval.ConvertFloatToDecimal(closePrice),
			Volume:     chartval.ConvertFloatToDecimal(math.Round(volume)),
		})
		price = closePrice
	}
	return candles
}
