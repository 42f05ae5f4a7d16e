package tariff

import (
	"fmt"
	"math"
	"sort"

	"site-valuation/internal/calendar"
	"site-valuation/internal/model"
)

// Mode selects how import prices are resolved.
type Mode string

const (
	ModeFixed Mode = "fixed"
	ModeTOU   Mode = "tou"
)

// Period is one time-of-use window. Hours are [StartHour, EndHour) on a 24h
// clock; StartHour > EndHour wraps across midnight. An empty Seasons list
// applies the period to the whole year.
type Period struct {
	Name        string
	Seasons     []calendar.Season
	StartHour   int
	EndHour     int
	ImportPrice float64
	ExportPrice float64
	DemandTier  string
}

// Config is the rate-structure input the schedule is built from.
type Config struct {
	Mode             Mode
	FixedImportPrice float64
	FixedExportPrice float64
	Periods          []Period
	// DemandTiers maps tier name to $/kW-month applied to the monthly peak.
	DemandTiers map[string]float64
}

// Rate is the resolved price information for one hour.
type Rate struct {
	ImportPrice float64
	ExportPrice float64
	DemandTier  string
}

// Schedule is the immutable 8760-hour rate table. Built once per simulation
// run; safe for concurrent reads.
type Schedule struct {
	importPrice [calendar.HoursPerYear]float64
	exportPrice [calendar.HoursPerYear]float64
	demandTier  [calendar.HoursPerYear]string
	tierRates   map[string]float64
}

// Build resolves the configuration into a full-year schedule. Every
// (season, hour-of-day) combination must be priced; a gap fails here, at
// build time, so no simulator ever sees an undefined rate mid-run.
func Build(cfg Config) (*Schedule, error) {
	s := &Schedule{tierRates: map[string]float64{}}
	for name, rate := range cfg.DemandTiers {
		if rate < 0 {
			return nil, &model.ConfigurationError{
				Field:  fmt.Sprintf("demand_tiers.%s", name),
				Reason: "rate must be >= 0",
			}
		}
		s.tierRates[name] = rate
	}

	switch cfg.Mode {
	case ModeFixed:
		if cfg.FixedImportPrice < 0 || cfg.FixedExportPrice < 0 {
			return nil, &model.ConfigurationError{Field: "fixed_price", Reason: "prices must be >= 0"}
		}
		for h := 0; h < calendar.HoursPerYear; h++ {
			s.importPrice[h] = cfg.FixedImportPrice
			s.exportPrice[h] = cfg.FixedExportPrice
		}
		return s, nil

	case ModeTOU:
		if len(cfg.Periods) == 0 {
			return nil, &model.ConfigurationError{Field: "periods", Reason: "tou mode requires at least one period"}
		}
		for i, p := range cfg.Periods {
			if p.ImportPrice < 0 || p.ExportPrice < 0 {
				return nil, &model.ConfigurationError{
					Field:  fmt.Sprintf("periods[%d]", i),
					Reason: "prices must be >= 0",
				}
			}
			if p.StartHour < 0 || p.StartHour > 23 || p.EndHour < 0 || p.EndHour > 24 {
				return nil, &model.ConfigurationError{
					Field:  fmt.Sprintf("periods[%d]", i),
					Reason: "hours must satisfy 0<=start<=23, 0<=end<=24",
				}
			}
			if p.DemandTier != "" {
				if _, ok := s.tierRates[p.DemandTier]; !ok {
					return nil, &model.ConfigurationError{
						Field:  fmt.Sprintf("periods[%d].demand_tier", i),
						Reason: fmt.Sprintf("tier %q is not defined in demand_tiers", p.DemandTier),
					}
				}
			}
		}
		for h := 0; h < calendar.HoursPerYear; h++ {
			info := calendar.MustInfo(h)
			p, ok := matchPeriod(cfg.Periods, info)
			if !ok {
				return nil, &model.ConfigurationError{
					Field: "periods",
					Reason: fmt.Sprintf("no price defined for season %s hour %02d:00",
						info.Season, info.HourOfDay),
				}
			}
			s.importPrice[h] = p.ImportPrice
			s.exportPrice[h] = p.ExportPrice
			s.demandTier[h] = p.DemandTier
		}
		return s, nil

	default:
		return nil, &model.ConfigurationError{Field: "mode", Reason: fmt.Sprintf("unknown mode %q", cfg.Mode)}
	}
}

// matchPeriod returns the first period covering the hour. First match wins,
// so overlapping periods behave deterministically.
func matchPeriod(periods []Period, info calendar.HourInfo) (Period, bool) {
	for _, p := range periods {
		if !seasonMatches(p.Seasons, info.Season) {
			continue
		}
		if inWindow(info.HourOfDay, p.StartHour, p.EndHour) {
			return p, true
		}
	}
	return Period{}, false
}

func seasonMatches(seasons []calendar.Season, s calendar.Season) bool {
	if len(seasons) == 0 {
		return true
	}
	for _, v := range seasons {
		if v == s {
			return true
		}
	}
	return false
}

// inWindow checks whether hour is in [start, end) on a 24h clock.
// start == end is an empty window; start > end wraps across midnight.
func inWindow(hour, start, end int) bool {
	if start == end {
		return false
	}
	if start < end {
		return hour >= start && hour < end
	}
	return hour >= start || hour < end
}

// Rate returns the resolved rates for an hour index.
func (s *Schedule) Rate(hour int) (Rate, error) {
	if hour < 0 || hour >= calendar.HoursPerYear {
		return Rate{}, fmt.Errorf("hour index %d out of range", hour)
	}
	return s.rateAt(hour), nil
}

// RateAt is Rate without the bounds check, for hot loops over 0..8759.
func (s *Schedule) RateAt(hour int) Rate {
	return s.rateAt(hour)
}

func (s *Schedule) rateAt(hour int) Rate {
	return Rate{
		ImportPrice: s.importPrice[hour],
		ExportPrice: s.exportPrice[hour],
		DemandTier:  s.demandTier[hour],
	}
}

// TierRate returns the $/kW-month rate for a demand tier. Unknown or empty
// tiers charge nothing.
func (s *Schedule) TierRate(tier string) float64 {
	return s.tierRates[tier]
}

// DayImportPrices returns the 24 import prices of one day (0..364).
func (s *Schedule) DayImportPrices(day int) []float64 {
	out := make([]float64, 24)
	copy(out, s.importPrice[day*24:day*24+24])
	return out
}

// Stats summarizes the annual import price distribution.
type Stats struct {
	Min    float64
	Max    float64
	Mean   float64
	P05    float64
	P95    float64
	Spread float64
}

// ImportStats computes min/max/mean and the P05/P95 spread of import prices.
func (s *Schedule) ImportStats() Stats {
	vals := make([]float64, calendar.HoursPerYear)
	sum := 0.0
	minv := math.Inf(1)
	maxv := math.Inf(-1)
	for h, v := range s.importPrice {
		vals[h] = v
		sum += v
		if v < minv {
			minv = v
		}
		if v > maxv {
			maxv = v
		}
	}
	sort.Float64s(vals)
	return Stats{
		Min:    minv,
		Max:    maxv,
		Mean:   sum / float64(len(vals)),
		P05:    percentileSorted(vals, 0.05),
		P95:    percentileSorted(vals, 0.95),
		Spread: percentileSorted(vals, 0.95) - percentileSorted(vals, 0.05),
	}
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
