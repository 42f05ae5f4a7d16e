package sim

import (
	"math"
	"sort"

	"site-valuation/internal/calendar"
	"site-valuation/internal/model"
	"site-valuation/internal/tariff"
)

// Storage simulates battery arbitrage with a daily threshold dispatch:
// charge during the day's lowest-priced band while below capacity, discharge
// during the highest-priced band while above the reserve floor. State of
// charge is a sequential fold over the whole year, carried across days.
//
// Accounting convention: SOC tracks grid-side energy bought; the round-trip
// efficiency factor is taken once, on energy leaving the battery. Buying
// E kWh in the low band therefore yields E*eff kWh delivered in the high band.
type Storage struct {
	params model.StorageParams
}

func NewStorage(params model.StorageParams) (*Storage, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Storage{params: params}, nil
}

func (s *Storage) Technology() model.Technology { return model.TechStorage }

func (s *Storage) Simulate(sched *tariff.Schedule) (*model.TechnologyProfile, error) {
	p := model.NewTechnologyProfile(model.TechStorage)

	reserve := s.params.ReserveFloorKWh
	maxSOC := reserve + s.params.UsableCapacityKWh
	soc := reserve

	// Band width: hours needed for a full charge at rated power, at most
	// half the day so charge and discharge bands never overlap.
	bandHours := int(math.Ceil(s.params.UsableCapacityKWh / s.params.PowerKW))
	if bandHours < 1 {
		bandHours = 1
	}
	if bandHours > 12 {
		bandHours = 12
	}

	for day := 0; day < calendar.HoursPerYear/24; day++ {
		prices := sched.DayImportPrices(day)
		charge, discharge := priceBands(prices, bandHours)

		for hod := 0; hod < 24; hod++ {
			h := day*24 + hod
			r := sched.RateAt(h)

			switch {
			case charge[hod] && soc < maxSOC:
				e := math.Min(s.params.PowerKW, maxSOC-soc)
				soc += e
				p.ConsumptionKWh[h] = e
				p.CashFlow[h] = -e * r.ImportPrice
			case discharge[hod] && soc > reserve:
				e := math.Min(s.params.PowerKW, soc-reserve)
				soc -= e
				delivered := e * s.params.RoundTripEfficiency
				p.GenerationKWh[h] = delivered
				// Discharge displaces import, so it is valued at the
				// import price of that hour.
				p.CashFlow[h] = delivered * r.ImportPrice
			}
		}
	}
	return p, nil
}

// priceBands marks the day's n cheapest hours for charging and n most
// expensive for discharging. Ties break toward the earlier hour.
func priceBands(prices []float64, n int) (charge, discharge [24]bool) {
	order := make([]int, len(prices))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return prices[order[a]] < prices[order[b]]
	})
	for i := 0; i < n && i < len(order); i++ {
		charge[order[i]] = true
	}
	for i := 0; i < n && i < len(order); i++ {
		discharge[order[len(order)-1-i]] = true
	}
	// A flat day can rank the same hour in both bands; charging wins so the
	// battery never burns a cycle on zero spread.
	for i := range charge {
		if charge[i] && discharge[i] {
			discharge[i] = false
		}
	}
	return charge, discharge
}
