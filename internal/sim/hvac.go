package sim

import (
	"math"

	"site-valuation/internal/calendar"
	"site-valuation/internal/model"
	"site-valuation/internal/tariff"
)

// HVAC simulates a cooling-system retrofit. An outdoor temperature model
// (annual plus diurnal sinusoid) drives the hourly cooling load; baseline
// and retrofit consumption differ only in COP. Savings are floored at zero:
// a parameter set that would increase consumption flags a warning on the
// profile instead of failing.
type HVAC struct {
	params model.HVACParams
}

func NewHVAC(params model.HVACParams) (*HVAC, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &HVAC{params: params}, nil
}

func (s *HVAC) Technology() model.Technology { return model.TechHVAC }

func (s *HVAC) Simulate(sched *tariff.Schedule) (*model.TechnologyProfile, error) {
	p := model.NewTechnologyProfile(model.TechHVAC)
	floored := false

	for h := 0; h < calendar.HoursPerYear; h++ {
		load := s.params.LoadKWPerDegC * math.Max(0, s.outdoorTempC(h)-s.params.BalancePointC)
		if load == 0 {
			continue
		}
		baseline := load / s.params.BaselineCOP
		retrofit := load / s.params.RetrofitCOP
		saving := baseline - retrofit
		if saving < 0 {
			saving = 0
			floored = true
		}
		p.SavingsKWh[h] = saving
		p.CashFlow[h] = saving * sched.RateAt(h).ImportPrice
	}

	if floored {
		p.Warnings = append(p.Warnings, "retrofit consumption exceeds baseline in some hours; savings floored at zero")
	}
	return p, nil
}

// outdoorTempC is the site climate model: yearly peak in July, daily peak in
// the early afternoon.
func (s *HVAC) outdoorTempC(h int) float64 {
	info := calendar.MustInfo(h)
	annual := s.params.AnnualSwingC * math.Sin(2*math.Pi*float64(info.DayOfYear-90)/365)
	daily := s.params.DailySwingC * math.Sin(2*math.Pi*float64(info.HourOfDay-6)/24)
	return s.params.MeanTempC + annual + daily
}
