// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The finview authors

package chartval

import (
	"testing"

	"github.com/ericlagergren/decimal"
	"github.com/stretchr/testify/assert"
)

func TestIsBullish(t *testing.T) {
	assert.True(t, IsBullish(10, 11))
	assert.True(t, IsBullish(10, 10))
	assert.False(t, IsBullish(11, 10))
}

func TestConvertFloatToDecimal(t *testing.T) {
	d := ConvertFloatToDecimal(123.45)
	assert.Equal(t, 0, d.Cmp(decimal.New(12345, 2)))
}

func TestConvertDecimalToFloat(t *testing.T) {
	assert.Equal(t, 123.45, ConvertDecimalToFloat(decimal.New(12345, 2)))
	assert.Equal(t, 0.0, ConvertDecimalToFloat(nil))
}
