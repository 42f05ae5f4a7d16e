package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"site-valuation/internal/calendar"
	"site-valuation/internal/model"
	"site-valuation/internal/tariff"
)

func TestEVMeetsDailyNeed(t *testing.T) {
	s, err := NewEV(model.EVParams{
		VehicleCount:        2,
		ChargerPowerKW:      7,
		EnergyPerVehicleKWh: 20,
		ArrivalHour:         18,
		DepartureHour:       8,
		ServiceFeePerKWh:    0.30,
	})
	require.NoError(t, err)

	p, err := s.Simulate(flatSchedule(t, 0.10, 0.05))
	require.NoError(t, err)

	total := 0.0
	for _, e := range p.ConsumptionKWh {
		total += e
	}
	assert.InDelta(t, 365*40.0, total, 1e-6)
}

func TestEVServiceMargin(t *testing.T) {
	s, err := NewEV(model.EVParams{
		VehicleCount:        2,
		ChargerPowerKW:      7,
		EnergyPerVehicleKWh: 20,
		ArrivalHour:         18,
		DepartureHour:       8,
		ServiceFeePerKWh:    0.30,
	})
	require.NoError(t, err)

	p, err := s.Simulate(flatSchedule(t, 0.10, 0.05))
	require.NoError(t, err)

	cash := 0.0
	for _, v := range p.CashFlow {
		cash += v
	}
	// Flat import price: margin is (fee - price) on every kWh served.
	assert.InDelta(t, 365*40.0*(0.30-0.10), cash, 1e-6)
}

func TestEVUnmanagedFillsFromArrival(t *testing.T) {
	s, err := NewEV(model.EVParams{
		VehicleCount:        2,
		ChargerPowerKW:      7,
		EnergyPerVehicleKWh: 20,
		ArrivalHour:         18,
		DepartureHour:       8,
		SmartCharging:       false,
		ServiceFeePerKWh:    0.30,
	})
	require.NoError(t, err)

	p, err := s.Simulate(flatSchedule(t, 0.10, 0.05))
	require.NoError(t, err)

	// 40 kWh at 14 kW max fills hours 18, 19 and part of 20.
	for h, e := range p.ConsumptionKWh {
		if e == 0 {
			continue
		}
		hod := calendar.MustInfo(h).HourOfDay
		assert.True(t, hod >= 18 && hod <= 20, "charging at hour-of-day %d", hod)
	}
}

func TestEVSmartChargingPicksCheapHours(t *testing.T) {
	sched, err := tariff.Build(tariff.Config{
		Mode: tariff.ModeTOU,
		Periods: []tariff.Period{
			{Name: "night", StartHour: 0, EndHour: 8, ImportPrice: 0.05},
			{Name: "day", StartHour: 8, EndHour: 24, ImportPrice: 0.30},
		},
	})
	require.NoError(t, err)

	s, err := NewEV(model.EVParams{
		VehicleCount:        2,
		ChargerPowerKW:      7,
		EnergyPerVehicleKWh: 20,
		ArrivalHour:         18,
		DepartureHour:       8,
		SmartCharging:       true,
		ServiceFeePerKWh:    0.30,
	})
	require.NoError(t, err)

	p, err := s.Simulate(sched)
	require.NoError(t, err)

	total := 0.0
	for h, e := range p.ConsumptionKWh {
		if e == 0 {
			continue
		}
		total += e
		// The overnight window spans expensive evening hours and cheap early
		// morning; smart charging must only ever use the cheap ones.
		assert.Equal(t, 0.05, sched.RateAt(h).ImportPrice, "hour %d", h)
	}
	assert.InDelta(t, 365*40.0, total, 1e-6)
}

func TestEVWindowTooSmallClipsDemand(t *testing.T) {
	// One vehicle, 2h window at 7 kW can deliver at most 14 kWh of the 50
	// requested.
	s, err := NewEV(model.EVParams{
		VehicleCount:        1,
		ChargerPowerKW:      7,
		EnergyPerVehicleKWh: 50,
		ArrivalHour:         10,
		DepartureHour:       12,
		ServiceFeePerKWh:    0.30,
	})
	require.NoError(t, err)

	p, err := s.Simulate(flatSchedule(t, 0.10, 0.05))
	require.NoError(t, err)

	total := 0.0
	for _, e := range p.ConsumptionKWh {
		total += e
	}
	assert.InDelta(t, 365*14.0, total, 1e-6)
}

func TestEVInvalidParams(t *testing.T) {
	_, err := NewEV(model.EVParams{
		VehicleCount:        0,
		ChargerPowerKW:      7,
		EnergyPerVehicleKWh: 20,
	})

	var paramErr *model.InvalidParameterError
	require.ErrorAs(t, err, &paramErr)
	assert.Equal(t, model.TechEV, paramErr.Technology)
	assert.Equal(t, "vehicle_count", paramErr.Param)
}
