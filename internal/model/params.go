package model

import (
	"site-valuation/internal/calendar"
)

// SolarParams defines a PV installation.
// Units:
// - CapacityKW: rated DC capacity
// - SystemLoss: 0..1 fraction lost to inverter/soiling/wiring
// - AnnualYieldHours: full-load hours per year used to scale the built-in
//   clear-sky curve when no capacity-factor series is supplied
type SolarParams struct {
	CapacityKW       float64
	SystemLoss       float64
	AnnualYieldHours float64
	// CapacityFactorSeries optionally supplies a measured 8760 series in
	// [0,1]; when set it overrides the built-in curve.
	CapacityFactorSeries []float64
}

func (p SolarParams) Validate() error {
	if p.CapacityKW <= 0 {
		return &InvalidParameterError{TechSolar, "capacity_kw", "must be > 0"}
	}
	if p.SystemLoss < 0 || p.SystemLoss >= 1 {
		return &InvalidParameterError{TechSolar, "system_loss", "must be in [0, 1)"}
	}
	if p.AnnualYieldHours <= 0 && len(p.CapacityFactorSeries) == 0 {
		return &InvalidParameterError{TechSolar, "annual_yield_hours", "must be > 0"}
	}
	if n := len(p.CapacityFactorSeries); n != 0 && n != calendar.HoursPerYear {
		return &InvalidParameterError{TechSolar, "capacity_factor_series", "must have 8760 entries"}
	}
	for _, cf := range p.CapacityFactorSeries {
		if cf < 0 || cf > 1 {
			return &InvalidParameterError{TechSolar, "capacity_factor_series", "entries must be in [0, 1]"}
		}
	}
	return nil
}

// StorageParams defines a behind-the-meter battery used for arbitrage.
// Units:
// - UsableCapacityKWh: dispatchable energy above the reserve floor
// - PowerKW: charge/discharge power limit
// - RoundTripEfficiency: 0..1, applied once on energy leaving the battery
// - ReserveFloorKWh: energy held back and never discharged
type StorageParams struct {
	UsableCapacityKWh   float64
	PowerKW             float64
	RoundTripEfficiency float64
	ReserveFloorKWh     float64
}

func (p StorageParams) Validate() error {
	if p.UsableCapacityKWh <= 0 {
		return &InvalidParameterError{TechStorage, "usable_capacity_kwh", "must be > 0"}
	}
	if p.PowerKW <= 0 {
		return &InvalidParameterError{TechStorage, "power_kw", "must be > 0"}
	}
	if p.RoundTripEfficiency <= 0 || p.RoundTripEfficiency > 1 {
		return &InvalidParameterError{TechStorage, "round_trip_efficiency", "must be in (0, 1]"}
	}
	if p.ReserveFloorKWh < 0 {
		return &InvalidParameterError{TechStorage, "reserve_floor_kwh", "must be >= 0"}
	}
	return nil
}

// HVACParams defines a cooling retrofit. The hourly cooling load is driven
// by an outdoor temperature model: load = LoadKWPerDegC * max(0, T - BalancePointC).
type HVACParams struct {
	BaselineCOP   float64
	RetrofitCOP   float64
	LoadKWPerDegC float64
	BalancePointC float64

	// Temperature model (site climate).
	MeanTempC    float64
	AnnualSwingC float64
	DailySwingC  float64
}

func (p HVACParams) Validate() error {
	if p.BaselineCOP <= 0 {
		return &InvalidParameterError{TechHVAC, "baseline_cop", "must be > 0"}
	}
	if p.RetrofitCOP <= 0 {
		return &InvalidParameterError{TechHVAC, "retrofit_cop", "must be > 0"}
	}
	if p.LoadKWPerDegC < 0 {
		return &InvalidParameterError{TechHVAC, "load_kw_per_degc", "must be >= 0"}
	}
	if p.AnnualSwingC < 0 || p.DailySwingC < 0 {
		return &InvalidParameterError{TechHVAC, "temperature_model", "swing amplitudes must be >= 0"}
	}
	return nil
}

// LightingParams defines a fixture-for-fixture retrofit gated by an
// occupancy schedule.
type LightingParams struct {
	FixtureCount            int
	BaselineWattsPerFixture float64
	RetrofitWattsPerFixture float64
	Schedule                OccupancySchedule
}

// OccupancySchedule produces the hourly 0..1 occupancy mask. When Mask is
// supplied it wins over the window fields.
type OccupancySchedule struct {
	StartHour    int
	EndHour      int
	WeekdaysOnly bool
	Mask         []float64
}

func (p LightingParams) Validate() error {
	if p.FixtureCount <= 0 {
		return &InvalidParameterError{TechLighting, "fixture_count", "must be > 0"}
	}
	if p.BaselineWattsPerFixture <= 0 {
		return &InvalidParameterError{TechLighting, "baseline_watts_per_fixture", "must be > 0"}
	}
	if p.RetrofitWattsPerFixture < 0 {
		return &InvalidParameterError{TechLighting, "retrofit_watts_per_fixture", "must be >= 0"}
	}
	if p.RetrofitWattsPerFixture > p.BaselineWattsPerFixture {
		return &InvalidParameterError{TechLighting, "retrofit_watts_per_fixture", "must not exceed baseline wattage"}
	}
	if n := len(p.Schedule.Mask); n != 0 {
		if n != calendar.HoursPerYear {
			return &InvalidParameterError{TechLighting, "schedule.mask", "must have 8760 entries"}
		}
		for _, v := range p.Schedule.Mask {
			if v < 0 || v > 1 {
				return &InvalidParameterError{TechLighting, "schedule.mask", "entries must be in [0, 1]"}
			}
		}
		return nil
	}
	if p.Schedule.StartHour < 0 || p.Schedule.StartHour > 24 ||
		p.Schedule.EndHour < 0 || p.Schedule.EndHour > 24 {
		return &InvalidParameterError{TechLighting, "schedule", "window hours must be in [0, 24]"}
	}
	return nil
}

// EVParams defines a charging fleet. Each day VehicleCount vehicles plug in
// at ArrivalHour needing EnergyPerVehicleKWh by DepartureHour.
type EVParams struct {
	VehicleCount        int
	ChargerPowerKW      float64
	EnergyPerVehicleKWh float64
	ArrivalHour         int
	DepartureHour       int
	SmartCharging       bool
	ServiceFeePerKWh    float64
}

func (p EVParams) Validate() error {
	if p.VehicleCount <= 0 {
		return &InvalidParameterError{TechEV, "vehicle_count", "must be > 0"}
	}
	if p.ChargerPowerKW <= 0 {
		return &InvalidParameterError{TechEV, "charger_power_kw", "must be > 0"}
	}
	if p.EnergyPerVehicleKWh <= 0 {
		return &InvalidParameterError{TechEV, "energy_per_vehicle_kwh", "must be > 0"}
	}
	if p.ArrivalHour < 0 || p.ArrivalHour > 23 || p.DepartureHour < 0 || p.DepartureHour > 24 {
		return &InvalidParameterError{TechEV, "window", "arrival must be in [0,23], departure in [0,24]"}
	}
	if p.ServiceFeePerKWh < 0 {
		return &InvalidParameterError{TechEV, "service_fee_per_kwh", "must be >= 0"}
	}
	return nil
}
