package finance

import (
	"math"

	"site-valuation/internal/model"
)

// IRR root-finding bounds and budget. The search is bisection: bounded,
// deterministic, and capped so a pathological cash-flow series degrades to
// an undefined IRR instead of spinning.
const (
	irrLowerBound    = -0.95
	irrUpperBound    = 10.0
	irrMaxIterations = 200
	irrTolerance     = 1e-7
)

// Evaluate expands one representative annual profile into a multi-year
// cash-flow series and derives the standard investment metrics.
//
// annualBenefit is the year-1 net site benefit (avoided cost + export and
// service revenue); annualEnergyKWh is the year-1 displaced energy used for
// the levelized metrics. Degradation shrinks the benefit and energy each
// year; escalation grows the value of avoided energy and the opex.
func Evaluate(annualBenefit, annualEnergyKWh float64, econ model.ProjectEconomics) (*model.FinancialResult, error) {
	if err := econ.Validate(); err != nil {
		return nil, err
	}

	years := econ.HorizonYears
	cashflows := make([]float64, years+1)
	cashflows[0] = -econ.CapexTotal

	discountedCost := econ.CapexTotal
	discountedBenefit := 0.0
	discountedEnergy := 0.0

	for y := 1; y <= years; y++ {
		age := float64(y - 1)
		degrade := math.Pow(1-econ.DegradationRate, age)
		escalate := math.Pow(1+econ.EscalationRate, age)
		discount := math.Pow(1+econ.DiscountRate, float64(y))

		benefit := annualBenefit * degrade * escalate
		opex := econ.AnnualOpex * escalate
		cashflows[y] = benefit - opex

		discountedCost += opex / discount
		discountedBenefit += benefit / discount
		discountedEnergy += annualEnergyKWh * degrade / discount
	}

	res := &model.FinancialResult{
		NPV:             NPV(econ.DiscountRate, cashflows),
		AnnualCashFlows: cashflows,
	}
	res.IRR, res.IRRDefined = irr(cashflows)
	res.SimplePaybackYears, res.SimplePaybackReached = payback(cashflows, 0)
	res.DiscountedPaybackYears, res.DiscountedPaybackReached = payback(cashflows, econ.DiscountRate)

	if discountedEnergy > 0 {
		res.LevelizedCostPerKWh = discountedCost / discountedEnergy
		res.LevelizedBenefitPerKWh = discountedBenefit / discountedEnergy
	}
	return res, nil
}

// NPV discounts a cash-flow series where index 0 is year 0.
func NPV(rate float64, cashflows []float64) float64 {
	total := 0.0
	for y, cf := range cashflows {
		total += cf / math.Pow(1+rate, float64(y))
	}
	return total
}

// irr finds the rate zeroing NPV by bisection. It reports ok=false when the
// bounds do not bracket a root or the iteration budget runs out, which is
// the defined behavior for (among others) a project with negative NPV at
// rate zero.
func irr(cashflows []float64) (float64, bool) {
	lo, hi := irrLowerBound, irrUpperBound
	fLo := NPV(lo, cashflows)
	fHi := NPV(hi, cashflows)
	if fLo*fHi > 0 {
		return 0, false
	}

	for i := 0; i < irrMaxIterations; i++ {
		mid := (lo + hi) / 2
		fMid := NPV(mid, cashflows)
		if math.Abs(fMid) < irrTolerance {
			return mid, true
		}
		if fLo*fMid < 0 {
			hi = mid
		} else {
			lo, fLo = mid, fMid
		}
	}
	// Budget exhausted without meeting tolerance: the bracket still pins
	// the root tightly enough to report if it has collapsed.
	if hi-lo < 1e-6 {
		return (lo + hi) / 2, true
	}
	return 0, false
}

// payback returns the first (fractional) year at which cumulative cash flow
// reaches zero, discounted at the given rate. reached=false means "never
// within the horizon".
func payback(cashflows []float64, rate float64) (float64, bool) {
	cum := 0.0
	for y, cf := range cashflows {
		d := cf / math.Pow(1+rate, float64(y))
		prev := cum
		cum += d
		if cum >= 0 {
			if y == 0 || d <= 0 {
				return float64(y), true
			}
			// Interpolate within the year that crossed zero.
			return float64(y-1) + (-prev)/d, true
		}
	}
	return 0, false
}
