package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"site-valuation/internal/model"
)

func econ(capex, opex, discount float64, years int) model.ProjectEconomics {
	return model.ProjectEconomics{
		CapexTotal:   capex,
		AnnualOpex:   opex,
		DiscountRate: discount,
		HorizonYears: years,
	}
}

func TestNPVZeroRateIsSum(t *testing.T) {
	cf := []float64{-100, 30, 30, 30, 30}
	assert.InDelta(t, 20.0, NPV(0, cf), 1e-9)
}

func TestNPVMonotonicInRate(t *testing.T) {
	cf := []float64{-100, 50, 50, 50}
	prev := NPV(0, cf)
	for _, rate := range []float64{0.05, 0.1, 0.2, 0.5, 1.0} {
		cur := NPV(rate, cf)
		assert.Less(t, cur, prev, "rate %v", rate)
		prev = cur
	}
}

func TestEvaluateCashFlowShape(t *testing.T) {
	res, err := Evaluate(50, 1000, econ(100, 10, 0.05, 10))
	require.NoError(t, err)

	require.Len(t, res.AnnualCashFlows, 11)
	assert.Equal(t, -100.0, res.AnnualCashFlows[0])
	for y := 1; y <= 10; y++ {
		assert.InDelta(t, 40.0, res.AnnualCashFlows[y], 1e-9)
	}
}

func TestEvaluateIRRZerosNPV(t *testing.T) {
	res, err := Evaluate(50, 1000, econ(100, 0, 0.05, 10))
	require.NoError(t, err)

	require.True(t, res.IRRDefined)
	assert.InDelta(t, 0, NPV(res.IRR, res.AnnualCashFlows), 1e-3)
	assert.Greater(t, res.IRR, 0.0)
}

func TestEvaluateIRRUndefinedWhenNeverPositive(t *testing.T) {
	// Zero benefit: every cash flow after year 0 is negative.
	res, err := Evaluate(0, 1000, econ(100, 10, 0.05, 10))
	require.NoError(t, err)

	assert.False(t, res.IRRDefined)
	assert.Zero(t, res.IRR)
}

func TestEvaluateSimplePayback(t *testing.T) {
	res, err := Evaluate(50, 1000, econ(100, 0, 0.05, 10))
	require.NoError(t, err)

	require.True(t, res.SimplePaybackReached)
	assert.InDelta(t, 2.0, res.SimplePaybackYears, 1e-9)

	// Discounting pushes the crossover later.
	require.True(t, res.DiscountedPaybackReached)
	assert.Greater(t, res.DiscountedPaybackYears, res.SimplePaybackYears)
}

func TestEvaluatePaybackNeverReached(t *testing.T) {
	res, err := Evaluate(1, 1000, econ(1000, 0, 0.05, 10))
	require.NoError(t, err)

	assert.False(t, res.SimplePaybackReached)
	assert.False(t, res.DiscountedPaybackReached)
}

func TestEvaluateLevelizedMetrics(t *testing.T) {
	// Discount rate zero keeps the arithmetic exact: cost = 100 capex over
	// 2000 kWh, benefit = 100 over 2000 kWh.
	res, err := Evaluate(50, 1000, econ(100, 0, 0, 2))
	require.NoError(t, err)

	assert.InDelta(t, 0.05, res.LevelizedCostPerKWh, 1e-9)
	assert.InDelta(t, 0.05, res.LevelizedBenefitPerKWh, 1e-9)
}

func TestEvaluateDegradationShrinksBenefit(t *testing.T) {
	e := econ(100, 0, 0.05, 10)
	e.DegradationRate = 0.05

	res, err := Evaluate(50, 1000, e)
	require.NoError(t, err)

	assert.InDelta(t, 50.0, res.AnnualCashFlows[1], 1e-9)
	for y := 2; y <= 10; y++ {
		assert.Less(t, res.AnnualCashFlows[y], res.AnnualCashFlows[y-1])
	}
}

func TestEvaluateEscalationGrowsBenefit(t *testing.T) {
	e := econ(100, 0, 0.05, 10)
	e.EscalationRate = 0.03

	res, err := Evaluate(50, 1000, e)
	require.NoError(t, err)

	assert.InDelta(t, 50.0, res.AnnualCashFlows[1], 1e-9)
	for y := 2; y <= 10; y++ {
		assert.Greater(t, res.AnnualCashFlows[y], res.AnnualCashFlows[y-1])
	}
}

func TestEvaluateRejectsInvalidEconomics(t *testing.T) {
	_, err := Evaluate(50, 1000, econ(100, 0, 0.05, 0))

	var paramErr *model.InvalidParameterError
	require.ErrorAs(t, err, &paramErr)
	assert.Equal(t, "horizon_years", paramErr.Param)
}
