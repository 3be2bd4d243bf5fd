// Package dateutils provides common date operations used throughout the
// application.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// Common date format constants.
const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutEuropean = "02.01.2006"
	DateLayoutUS       = "01/02/2006"
	DateLayoutFull     = "2006-01-02 15:04:05"
)

// CommonFormats is the list of formats tried when parsing dates. Bank exports
// are inconsistent, so we accept the usual suspects.
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutEuropean,
	DateLayoutUS,
	DateLayoutFull,
	"02-01-2006",
	"02/01/2006",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
}

// ParseDate attempts to parse a date string using multiple common formats.
func ParseDate(dateStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// PeriodDays returns the inclusive number of calendar days spanned by the
// given dates: max - min + 1. A single date (or several equal dates) counts
// as one day. An empty slice returns 0; callers decide the default period.
func PeriodDays(dates []time.Time) int {
	if len(dates) == 0 {
		return 0
	}
	min, max := dates[0], dates[0]
	for _, d := range dates[1:] {
		if d.Before(min) {
			min = d
		}
		if d.After(max) {
			max = d
		}
	}
	return int(max.Sub(min).Hours()/24) + 1
}
