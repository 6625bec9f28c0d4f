// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The finview authors

package calendar

import (
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

const observedHolidayPostfix = "(observed)"

// BankCalendar answers which days the exchange trades at all. It is used to
// lay out daily candle timestamps without weekend and holiday gaps.
type BankCalendar struct {
	bankLocation *time.Location
	calendar     *cal.BusinessCalendar
	closeTime    bankTime
	partialClose bankTime
}

type bankTime struct {
	hours   int
	minutes int
}

func NewUSBankCalendar() BankCalendar {
	// NYSE uses ET, which can be either EST or EDT.
	// Luckily, changing to/from daylight saving time does not occur during market hours.
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		panic("NYSE time location not supported")
	}
	cal := cal.NewBusinessCalendar()
	// Source for bank holidays: https://www.federalreserve.gov/aboutthefed/k8.htm
	cal.AddHoliday(
		us.NewYear,
		us.MlkDay,
		us.PresidentsDay,
		us.MemorialDay,
		us.Juneteenth,
		us.IndependenceDay,
		us.LaborDay,
		us.ColumbusDay,
		us.VeteransDay,
		us.ThanksgivingDay,
		us.ChristmasDay,
	)
	cal.Cacheable = true
	return BankCalendar{
		calendar:     cal,
		bankLocation: loc,
		closeTime:    bankTime{hours: 16, minutes: 0},
		partialClose: bankTime{hours: 13, minutes: 0},
	}
}

func (b BankCalendar) IsBankHoliday(t time.Time) (bool, string) {
	actual, observed, h := b.calendar.IsHoliday(t.In(b.bankLocation))
	if !actual && !observed {
		return false, ""
	} else if !actual {
		return true, h.Name + " " + observedHolidayPostfix
	} else {
		return true, h.Name
	}
}

func (b BankCalendar) IsTradingDay(t time.Time) (trading bool, partial bool) {
	day := t.In(b.bankLocation)
	trading = b.calendar.IsWorkday(day)

	if trading {
		holiday, name := b.IsBankHoliday(day.AddDate(0, 0, 1))
		// There are partial trading days before independence day and christmas.
		if holiday && (name == us.IndependenceDay.Name || name == us.ChristmasDay.Name) {
			partial = true
		} else {
			// There is a partial trading day before thanksgiving
			holiday, name = b.IsBankHoliday(day.AddDate(0, 0, -1))
			if holiday && name == us.ThanksgivingDay.Name {
				partial = true
			}
		}
	}
	return
}

// GetCloseTime returns the timestamp of the session close on the given day.
// Daily candles are stamped with their close.
func (b BankCalendar) GetCloseTime(t time.Time) time.Time {
	day := t.In(b.bankLocation)
	_, partial := b.IsTradingDay(day)
	y, m, d := day.Date()
	closeTime := b.closeTime
	if partial {
		closeTime = b.partialClose
	}
	return time.Date(y, m, d, closeTime.hours, closeTime.minutes, 0, 0, b.bankLocation)
}

// TradingDays returns the first n trading days starting at from, skipping
// weekends and bank holidays.
func (b BankCalendar) TradingDays(from time.Time, n int) []time.Time {
	days := make([]time.Time, 0, n)
	day := from.In(b.bankLocation)
	for len(days) < n {
		if trading, _ := b.IsTradingDay(day); trading {
			days = append(days, day)
		}
		day = day.AddDate(0, 0, 1)
	}
	return days
}
