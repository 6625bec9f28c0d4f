// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The finview authors

package chartval

import (
	"strconv"

	"github.com/ericlagergren/decimal"
)

// The builtin decimal.Big conversion from float64 is an "exact" conversion, and useless for our cases.
// Therefore, convert using string conversion, even though this requires memory allocation.
// See also https://github.com/ericlagergren/decimal/issues/142

// Convert float to string and then to decimal.
func ConvertFloatToDecimal(v float64) *decimal.Big {
	d, _ := new(decimal.Big).SetString(strconv.FormatFloat(v, 'f', -1, 64))
	return d
}

// ConvertDecimalToFloat returns the nearest float64 value, or zero for nil.
func ConvertDecimalToFloat(d *decimal.Big) float64 {
	if d == nil {
		return 0
	}
	f, _ := d.Float64()
	return f
}
