// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The finview authors

package chartval

const NearZero = 0.000001

// IsBullish reports whether a candle closed at or above its open price.
// Candles with equal open and close are considered bullish.
func IsBullish(o, c float64) bool {
	return c >= o
}

