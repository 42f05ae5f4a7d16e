package sim

import (
	"site-valuation/internal/calendar"
	"site-valuation/internal/model"
	"site-valuation/internal/tariff"
)

// Lighting simulates a fixture retrofit. Savings are deterministic: the
// wattage delta across all fixtures, gated hour-by-hour by an occupancy mask
// so results vary by hour and day type.
type Lighting struct {
	params model.LightingParams
}

func NewLighting(params model.LightingParams) (*Lighting, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Lighting{params: params}, nil
}

func (s *Lighting) Technology() model.Technology { return model.TechLighting }

func (s *Lighting) Simulate(sched *tariff.Schedule) (*model.TechnologyProfile, error) {
	deltaKW := float64(s.params.FixtureCount) *
		(s.params.BaselineWattsPerFixture - s.params.RetrofitWattsPerFixture) / 1000.0

	p := model.NewTechnologyProfile(model.TechLighting)
	for h := 0; h < calendar.HoursPerYear; h++ {
		occ := s.occupancy(h)
		if occ == 0 {
			continue
		}
		saving := deltaKW * occ
		p.SavingsKWh[h] = saving
		p.CashFlow[h] = saving * sched.RateAt(h).ImportPrice
	}
	return p, nil
}

// occupancy resolves the 0..1 mask for one hour. An explicit mask wins over
// the daily window.
func (s *Lighting) occupancy(h int) float64 {
	sch := s.params.Schedule
	if len(sch.Mask) != 0 {
		return sch.Mask[h]
	}
	info := calendar.MustInfo(h)
	if sch.WeekdaysOnly && info.Weekend {
		return 0
	}
	if inWindow(info.HourOfDay, sch.StartHour, sch.EndHour) {
		return 1
	}
	return 0
}
