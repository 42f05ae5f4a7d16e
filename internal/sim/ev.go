package sim

import (
	"math"
	"sort"

	"site-valuation/internal/calendar"
	"site-valuation/internal/model"
	"site-valuation/internal/tariff"
)

// EV simulates a charging fleet. Each day the fleet plugs in at ArrivalHour
// and must receive its energy need before DepartureHour. Unmanaged charging
// fills chronologically from arrival; smart charging greedily picks the
// cheapest hours inside the plug-in window. A window too small to meet the
// need clips to the feasible maximum rather than failing.
type EV struct {
	params model.EVParams
}

func NewEV(params model.EVParams) (*EV, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &EV{params: params}, nil
}

func (s *EV) Technology() model.Technology { return model.TechEV }

func (s *EV) Simulate(sched *tariff.Schedule) (*model.TechnologyProfile, error) {
	p := model.NewTechnologyProfile(model.TechEV)

	dailyNeed := float64(s.params.VehicleCount) * s.params.EnergyPerVehicleKWh
	maxPerHour := float64(s.params.VehicleCount) * s.params.ChargerPowerKW

	for day := 0; day < calendar.HoursPerYear/24; day++ {
		window := s.windowHours(day)
		if s.params.SmartCharging {
			// Cheapest hours first; the stable sort keeps ties chronological.
			sort.SliceStable(window, func(a, b int) bool {
				return sched.RateAt(window[a]).ImportPrice < sched.RateAt(window[b]).ImportPrice
			})
		}

		remaining := dailyNeed
		for _, h := range window {
			if remaining <= 0 {
				break
			}
			e := math.Min(maxPerHour, remaining)
			remaining -= e

			r := sched.RateAt(h)
			p.ConsumptionKWh[h] += e
			p.CashFlow[h] += e * (s.params.ServiceFeePerKWh - r.ImportPrice)
		}
	}
	return p, nil
}

// windowHours lists the absolute hour indices of one day's plug-in window,
// in chronological order. An overnight window (departure <= arrival) wraps
// into the next day; the year is treated as circular at its boundary.
func (s *EV) windowHours(day int) []int {
	start := day*24 + s.params.ArrivalHour
	length := s.params.DepartureHour - s.params.ArrivalHour
	if length <= 0 {
		length += 24
	}
	out := make([]int, 0, length)
	for i := 0; i < length; i++ {
		out = append(out, (start+i)%calendar.HoursPerYear)
	}
	return out
}
