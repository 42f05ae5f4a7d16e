package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"site-valuation/internal/calendar"
	"site-valuation/internal/model"
	"site-valuation/internal/tariff"
)

func flatSchedule(t *testing.T, importPrice, exportPrice float64) *tariff.Schedule {
	t.Helper()
	sched, err := tariff.Build(tariff.Config{
		Mode:             tariff.ModeFixed,
		FixedImportPrice: importPrice,
		FixedExportPrice: exportPrice,
	})
	require.NoError(t, err)
	return sched
}

func zeroBaseline() []float64 {
	return make([]float64, calendar.HoursPerYear)
}

func constantBaseline(kw float64) []float64 {
	out := make([]float64, calendar.HoursPerYear)
	for i := range out {
		out[i] = kw
	}
	return out
}

func TestSolarAnnualYield(t *testing.T) {
	s, err := NewSolar(model.SolarParams{
		CapacityKW:       10,
		SystemLoss:       0.1,
		AnnualYieldHours: 1100,
	}, zeroBaseline())
	require.NoError(t, err)

	p, err := s.Simulate(flatSchedule(t, 0.10, 0.05))
	require.NoError(t, err)

	total := 0.0
	for _, g := range p.GenerationKWh {
		assert.GreaterOrEqual(t, g, 0.0)
		total += g
	}
	// Yield hours scale the built-in curve exactly.
	assert.InDelta(t, 1100*10*0.9, total, 1e-6)
}

func TestSolarZeroBaselineExportsEverything(t *testing.T) {
	s, err := NewSolar(model.SolarParams{
		CapacityKW:       10,
		SystemLoss:       0.1,
		AnnualYieldHours: 1100,
	}, zeroBaseline())
	require.NoError(t, err)

	p, err := s.Simulate(flatSchedule(t, 0.10, 0.05))
	require.NoError(t, err)

	gen, cash := 0.0, 0.0
	for h := range p.GenerationKWh {
		gen += p.GenerationKWh[h]
		cash += p.CashFlow[h]
	}
	// With no on-site load every kWh earns the export price.
	assert.InDelta(t, gen*0.05, cash, 1e-6)
}

func TestSolarFullSelfConsumption(t *testing.T) {
	s, err := NewSolar(model.SolarParams{
		CapacityKW:       10,
		SystemLoss:       0.1,
		AnnualYieldHours: 1100,
	}, constantBaseline(1e6))
	require.NoError(t, err)

	p, err := s.Simulate(flatSchedule(t, 0.10, 0.05))
	require.NoError(t, err)

	gen, cash := 0.0, 0.0
	for h := range p.GenerationKWh {
		gen += p.GenerationKWh[h]
		cash += p.CashFlow[h]
	}
	// A huge baseline absorbs everything at the import price.
	assert.InDelta(t, gen*0.10, cash, 1e-6)
}

func TestSolarCustomCapacityFactorSeries(t *testing.T) {
	cf := make([]float64, calendar.HoursPerYear)
	cf[1000] = 0.5

	s, err := NewSolar(model.SolarParams{
		CapacityKW:           20,
		SystemLoss:           0.2,
		CapacityFactorSeries: cf,
	}, zeroBaseline())
	require.NoError(t, err)

	p, err := s.Simulate(flatSchedule(t, 0.10, 0.05))
	require.NoError(t, err)

	assert.InDelta(t, 0.5*20*0.8, p.GenerationKWh[1000], 1e-9)
	for h, g := range p.GenerationKWh {
		if h != 1000 {
			assert.Zero(t, g)
		}
	}
}

func TestSolarNoOutputAtNight(t *testing.T) {
	s, err := NewSolar(model.SolarParams{
		CapacityKW:       10,
		AnnualYieldHours: 1100,
	}, zeroBaseline())
	require.NoError(t, err)

	p, err := s.Simulate(flatSchedule(t, 0.10, 0.05))
	require.NoError(t, err)

	for h := 0; h < calendar.HoursPerYear; h++ {
		hod := calendar.MustInfo(h).HourOfDay
		if hod < 4 || hod > 21 {
			assert.Zero(t, p.GenerationKWh[h], "hour %d", h)
		}
	}
}

func TestSolarInvalidParams(t *testing.T) {
	_, err := NewSolar(model.SolarParams{CapacityKW: -5, AnnualYieldHours: 1100}, zeroBaseline())

	var paramErr *model.InvalidParameterError
	require.ErrorAs(t, err, &paramErr)
	assert.Equal(t, model.TechSolar, paramErr.Technology)
	assert.Equal(t, "capacity_kw", paramErr.Param)
}
