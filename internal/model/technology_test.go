package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"site-valuation/internal/calendar"
)

func TestParseTechnology(t *testing.T) {
	for _, tech := range AllTechnologies() {
		got, err := ParseTechnology(string(tech))
		require.NoError(t, err)
		assert.Equal(t, tech, got)
	}

	_, err := ParseTechnology("fusion")
	assert.Error(t, err)
}

func TestProfileValidate(t *testing.T) {
	p := NewTechnologyProfile(TechSolar)
	assert.NoError(t, p.Validate())

	p.SavingsKWh = make([]float64, 10)
	assert.Error(t, p.Validate())
}

func TestSummarize(t *testing.T) {
	p := NewTechnologyProfile(TechSolar)
	p.GenerationKWh[0] = 600
	p.GenerationKWh[1] = 400
	p.SavingsKWh[2] = 1000
	p.ConsumptionKWh[3] = 250
	p.CashFlow[4] = 42.5
	p.Warnings = []string{"note"}

	s := p.Summarize(0.5)

	assert.Equal(t, TechSolar, s.Technology)
	assert.Equal(t, 1000.0, s.AnnualGenerationKWh)
	assert.Equal(t, 1000.0, s.AnnualSavingsKWh)
	assert.Equal(t, 250.0, s.AnnualConsumptionKWh)
	assert.Equal(t, 42.5, s.AnnualCashFlow)
	// 2 MWh displaced at 0.5 t/MWh.
	assert.InDelta(t, 1.0, s.CarbonReductionTons, 1e-12)
	assert.Equal(t, []string{"note"}, s.Warnings)
}

func TestEconomicsValidate(t *testing.T) {
	good := ProjectEconomics{
		CapexTotal:   1000,
		DiscountRate: 0.05,
		HorizonYears: 10,
	}
	assert.NoError(t, good.Validate())

	bad := good
	bad.DiscountRate = 1.5
	var paramErr *InvalidParameterError
	require.ErrorAs(t, bad.Validate(), &paramErr)
	assert.Equal(t, "discount_rate", paramErr.Param)
}

func TestNewProfileAllocatesFullYear(t *testing.T) {
	p := NewTechnologyProfile(TechEV)
	assert.Len(t, p.GenerationKWh, calendar.HoursPerYear)
	assert.Len(t, p.ConsumptionKWh, calendar.HoursPerYear)
	assert.Len(t, p.SavingsKWh, calendar.HoursPerYear)
	assert.Len(t, p.CashFlow, calendar.HoursPerYear)
}
