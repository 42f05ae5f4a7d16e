package aggregate

import (
	"fmt"
	"math"

	"site-valuation/internal/calendar"
	"site-valuation/internal/model"
	"site-valuation/internal/tariff"
)

// balanceTolerance is the relative tolerance for the per-hour energy
// conservation check.
const balanceTolerance = 1e-6

// Aggregate merges the enabled technology profiles and the baseline load
// into one site-level annual profile.
//
// Merge order matters: on-site generation is netted against baseline plus
// retrofit-adjusted demand first, so that storage flows see the post-solar
// residual. Storage charging draws from solar surplus before the grid, and
// discharge offsets import before anything is exported.
func Aggregate(profiles []*model.TechnologyProfile, baseline []float64, sched *tariff.Schedule) (*model.SiteAnnualProfile, error) {
	if len(baseline) != calendar.HoursPerYear {
		return nil, fmt.Errorf("baseline load has %d entries, want %d", len(baseline), calendar.HoursPerYear)
	}
	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}

	site := model.NewSiteAnnualProfile()
	copy(site.BaselineLoadKWh, baseline)

	var baselinePeaks [12]float64
	serviceRevenue := 0.0

	for h := 0; h < calendar.HoursPerYear; h++ {
		r := sched.RateAt(h)

		gen := 0.0
		demand := 0.0
		savings := 0.0
		charge := 0.0
		discharge := 0.0
		for _, p := range profiles {
			if p.Technology == model.TechStorage {
				charge += p.ConsumptionKWh[h]
				discharge += p.GenerationKWh[h]
				continue
			}
			gen += p.GenerationKWh[h]
			demand += p.ConsumptionKWh[h]
			savings += p.SavingsKWh[h]
			if p.Technology == model.TechEV {
				// Service fees are site revenue on top of the energy cost
				// already present in the EV cash flow.
				serviceRevenue += p.CashFlow[h] + p.ConsumptionKWh[h]*r.ImportPrice
			}
		}

		// Retrofit savings cannot push the site load negative.
		load := math.Max(0, baseline[h]-savings) + demand

		surplus := math.Max(0, gen-load)
		residual := math.Max(0, load-gen)

		chargeFromSolar := math.Min(surplus, charge)
		chargeFromGrid := charge - chargeFromSolar
		surplus -= chargeFromSolar

		dischargeToLoad := math.Min(residual, discharge)
		residual -= dischargeToLoad

		gridImport := residual + chargeFromGrid
		gridExport := surplus + (discharge - dischargeToLoad)

		// Conservation: generation + discharge = load + charge + export - import.
		lhs := gen + discharge + gridImport
		rhs := load + charge + gridExport
		if delta := relativeError(lhs, rhs); delta > balanceTolerance {
			return nil, &model.EnergyBalanceError{Hour: h, Delta: delta}
		}

		site.GenerationKWh[h] = gen
		site.StorageChargeKWh[h] = charge
		site.StorageDischargeKWh[h] = discharge
		site.GridImportKWh[h] = gridImport
		site.GridExportKWh[h] = gridExport
		site.NetCostPerHour[h] = gridImport*r.ImportPrice - gridExport*r.ExportPrice

		site.AnnualImportKWh += gridImport
		site.AnnualExportKWh += gridExport
		site.AnnualEnergyCost += site.NetCostPerHour[h]

		info := calendar.MustInfo(h)
		m := int(info.Month) - 1
		if gridImport > site.MonthlyPeakImportKW[m] {
			site.MonthlyPeakImportKW[m] = gridImport
		}
		if baseline[h] > baselinePeaks[m] {
			baselinePeaks[m] = baseline[h]
		}
	}

	site.AnnualDemandCost = demandCost(site.MonthlyPeakImportKW, sched)
	baselineDemandCost := demandCost(baselinePeaks, sched)

	baselineEnergyCost := 0.0
	for h := 0; h < calendar.HoursPerYear; h++ {
		baselineEnergyCost += baseline[h] * sched.RateAt(h).ImportPrice
	}

	site.AnnualNetBenefit = (baselineEnergyCost + baselineDemandCost) -
		(site.AnnualEnergyCost + site.AnnualDemandCost) + serviceRevenue

	return site, nil
}

// demandCost prices each month's peak import at the demand tier active at
// that month's peak-shaped hours. Tiers are resolved per month via the
// schedule; a month without a tier charges nothing.
func demandCost(peaks [12]float64, sched *tariff.Schedule) float64 {
	total := 0.0
	for m, peak := range peaks {
		if peak <= 0 {
			continue
		}
		total += peak * sched.TierRate(monthTier(m, sched))
	}
	return total
}

// monthTier picks the highest-rate demand tier appearing in a month, which
// is the tier a peak billed on maximum demand lands in.
func monthTier(month int, sched *tariff.Schedule) string {
	best := ""
	bestRate := 0.0
	for h := 0; h < calendar.HoursPerYear; h++ {
		if int(calendar.MustInfo(h).Month)-1 != month {
			continue
		}
		tier := sched.RateAt(h).DemandTier
		if tier == "" {
			continue
		}
		if rate := sched.TierRate(tier); rate > bestRate {
			best, bestRate = tier, rate
		}
	}
	return best
}

func relativeError(a, b float64) float64 {
	diff := math.Abs(a - b)
	scale := math.Max(math.Abs(a), math.Abs(b))
	if scale < 1 {
		scale = 1
	}
	return diff / scale
}
