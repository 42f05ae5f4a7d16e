package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"site-valuation/internal/calendar"
	"site-valuation/internal/model"
)

func TestLightingWeekdayWindow(t *testing.T) {
	s, err := NewLighting(model.LightingParams{
		FixtureCount:            100,
		BaselineWattsPerFixture: 60,
		RetrofitWattsPerFixture: 20,
		Schedule: model.OccupancySchedule{
			StartHour:    8,
			EndHour:      18,
			WeekdaysOnly: true,
		},
	})
	require.NoError(t, err)

	p, err := s.Simulate(flatSchedule(t, 0.12, 0.05))
	require.NoError(t, err)

	deltaKW := 100 * (60.0 - 20.0) / 1000.0
	for h := 0; h < calendar.HoursPerYear; h++ {
		info := calendar.MustInfo(h)
		occupied := !info.Weekend && info.HourOfDay >= 8 && info.HourOfDay < 18
		if occupied {
			assert.InDelta(t, deltaKW, p.SavingsKWh[h], 1e-12, "hour %d", h)
		} else {
			assert.Zero(t, p.SavingsKWh[h], "hour %d", h)
		}
	}
}

func TestLightingMaskOverridesWindow(t *testing.T) {
	mask := make([]float64, calendar.HoursPerYear)
	mask[40] = 0.5

	s, err := NewLighting(model.LightingParams{
		FixtureCount:            10,
		BaselineWattsPerFixture: 60,
		RetrofitWattsPerFixture: 10,
		Schedule: model.OccupancySchedule{
			StartHour: 0,
			EndHour:   24,
			Mask:      mask,
		},
	})
	require.NoError(t, err)

	p, err := s.Simulate(flatSchedule(t, 0.12, 0.05))
	require.NoError(t, err)

	deltaKW := 10 * (60.0 - 10.0) / 1000.0
	assert.InDelta(t, deltaKW*0.5, p.SavingsKWh[40], 1e-12)
	for h, v := range p.SavingsKWh {
		if h != 40 {
			assert.Zero(t, v, "hour %d", h)
		}
	}
}

func TestLightingZeroMask(t *testing.T) {
	s, err := NewLighting(model.LightingParams{
		FixtureCount:            10,
		BaselineWattsPerFixture: 60,
		RetrofitWattsPerFixture: 10,
		Schedule:                model.OccupancySchedule{Mask: make([]float64, calendar.HoursPerYear)},
	})
	require.NoError(t, err)

	p, err := s.Simulate(flatSchedule(t, 0.12, 0.05))
	require.NoError(t, err)

	for _, v := range p.SavingsKWh {
		assert.Zero(t, v)
	}
}

func TestLightingRejectsWattageIncrease(t *testing.T) {
	_, err := NewLighting(model.LightingParams{
		FixtureCount:            10,
		BaselineWattsPerFixture: 20,
		RetrofitWattsPerFixture: 60,
	})

	var paramErr *model.InvalidParameterError
	require.ErrorAs(t, err, &paramErr)
	assert.Equal(t, model.TechLighting, paramErr.Technology)
	assert.Equal(t, "retrofit_watts_per_fixture", paramErr.Param)
}
