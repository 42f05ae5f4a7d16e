package calendar

import (
	"fmt"
	"time"
)

// HoursPerYear is the number of hours in a non-leap year.
const HoursPerYear = 8760

// Season buckets used by the tariff schedule.
type Season string

const (
	SeasonWinter Season = "winter"
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
)

// HourInfo is the calendar context for one hour of the year.
type HourInfo struct {
	Month     time.Month
	Day       int
	HourOfDay int
	DayOfYear int
	Weekday   time.Weekday
	Weekend   bool
	Season    Season
}

// table is built once at init and read-only afterwards.
var table [HoursPerYear]HourInfo

func init() {
	// 2023 is the reference non-leap year (Jan 1 is a Sunday).
	// The table is a pure calendar lookup; no timezone handling.
	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	for h := 0; h < HoursPerYear; h++ {
		t := start.Add(time.Duration(h) * time.Hour)
		wd := t.Weekday()
		table[h] = HourInfo{
			Month:     t.Month(),
			Day:       t.Day(),
			HourOfDay: t.Hour(),
			DayOfYear: t.YearDay(),
			Weekday:   wd,
			Weekend:   wd == time.Saturday || wd == time.Sunday,
			Season:    seasonOf(t.Month()),
		}
	}
}

func seasonOf(m time.Month) Season {
	switch m {
	case time.December, time.January, time.February:
		return SeasonWinter
	case time.March, time.April, time.May:
		return SeasonSpring
	case time.June, time.July, time.August:
		return SeasonSummer
	default:
		return SeasonAutumn
	}
}

// Info returns the calendar context for an hour index in [0, 8759].
func Info(hour int) (HourInfo, error) {
	if hour < 0 || hour >= HoursPerYear {
		return HourInfo{}, fmt.Errorf("hour index %d out of range [0, %d]", hour, HoursPerYear-1)
	}
	return table[hour], nil
}

// MustInfo is Info for callers that already hold a valid index (loop bodies).
func MustInfo(hour int) HourInfo {
	return table[hour]
}

// Seasons lists all season buckets.
func Seasons() []Season {
	return []Season{SeasonWinter, SeasonSpring, SeasonSummer, SeasonAutumn}
}
