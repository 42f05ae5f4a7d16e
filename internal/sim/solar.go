package sim

import (
	"fmt"
	"math"

	"site-valuation/internal/calendar"
	"site-valuation/internal/model"
	"site-valuation/internal/tariff"
)

// Solar simulates a PV installation. Hourly output is a capacity factor
// times rated capacity times the system-loss derating. The hour-by-hour
// self-consumption vs export split is decided against the site baseline load.
type Solar struct {
	params   model.SolarParams
	baseline []float64
}

// NewSolar validates the parameters and captures the baseline load series
// used for the self-consumption split.
func NewSolar(params model.SolarParams, baseline []float64) (*Solar, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(baseline) != calendar.HoursPerYear {
		return nil, fmt.Errorf("baseline load has %d entries, want %d", len(baseline), calendar.HoursPerYear)
	}
	return &Solar{params: params, baseline: baseline}, nil
}

func (s *Solar) Technology() model.Technology { return model.TechSolar }

func (s *Solar) Simulate(sched *tariff.Schedule) (*model.TechnologyProfile, error) {
	cf := s.params.CapacityFactorSeries
	if len(cf) == 0 {
		cf = builtinCapacityFactors(s.params.AnnualYieldHours)
	}

	derate := 1 - s.params.SystemLoss
	p := model.NewTechnologyProfile(model.TechSolar)
	for h := 0; h < calendar.HoursPerYear; h++ {
		gen := cf[h] * s.params.CapacityKW * derate
		p.GenerationKWh[h] = gen

		selfUse := math.Min(gen, s.baseline[h])
		export := gen - selfUse

		r := sched.RateAt(h)
		p.CashFlow[h] = selfUse*r.ImportPrice + export*r.ExportPrice
	}
	return p, nil
}

// builtinCapacityFactors produces a clear-sky shaped 8760 series scaled so
// the annual sum equals yieldHours (full-load hours per kW installed).
// Daylight length and intensity both swing with the season.
func builtinCapacityFactors(yieldHours float64) []float64 {
	raw := make([]float64, calendar.HoursPerYear)
	sum := 0.0
	for h := 0; h < calendar.HoursPerYear; h++ {
		info := calendar.MustInfo(h)
		// Day length swings around 12h, longest near the June solstice.
		dayLen := 12 + 3*math.Sin(2*math.Pi*float64(info.DayOfYear-81)/365)
		sunrise := 12 - dayLen/2
		sunset := 12 + dayLen/2
		t := float64(info.HourOfDay)
		if t < sunrise || t >= sunset {
			continue
		}
		// Solar-noon bell over the daylight window.
		bell := math.Sin(math.Pi * (t - sunrise) / (sunset - sunrise))
		// Seasonal irradiance amplitude, stronger in summer.
		amp := 0.75 + 0.25*math.Sin(2*math.Pi*float64(info.DayOfYear-81)/365)
		raw[h] = bell * amp
		sum += raw[h]
	}
	if sum <= 0 {
		return raw
	}
	scale := yieldHours / sum
	for h := range raw {
		raw[h] *= scale
	}
	return raw
}
