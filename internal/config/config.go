package config

import (
	"errors"
	"fmt"
	"os"

	"site-valuation/internal/calendar"
	"site-valuation/internal/model"
	"site-valuation/internal/scenario"
	"site-valuation/internal/tariff"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk scenario configuration shape (YAML).
type Config struct {
	Baseline     BaselineConfig     `yaml:"baseline" json:"baseline"`
	Tariff       TariffConfig       `yaml:"tariff" json:"tariff"`
	Technologies TechnologiesConfig `yaml:"technologies" json:"technologies"`
	Economics    EconomicsConfig    `yaml:"economics" json:"economics"`
}

type BaselineConfig struct {
	BaseLoadKW    float64   `yaml:"base_load_kw" json:"base_load_kw"`
	WorkdayPeakKW float64   `yaml:"workday_peak_kw" json:"workday_peak_kw"`
	Series        []float64 `yaml:"series" json:"series"`
}

type TariffConfig struct {
	Mode             string             `yaml:"mode" json:"mode"`
	FixedImportPrice float64            `yaml:"fixed_import_price" json:"fixed_import_price"`
	FixedExportPrice float64            `yaml:"fixed_export_price" json:"fixed_export_price"`
	DemandTiers      map[string]float64 `yaml:"demand_tiers" json:"demand_tiers"`
	Periods          []TariffPeriod     `yaml:"periods" json:"periods"`
}

type TariffPeriod struct {
	Name        string   `yaml:"name" json:"name"`
	Seasons     []string `yaml:"seasons" json:"seasons"`
	StartHour   int      `yaml:"start_hour" json:"start_hour"`
	EndHour     int      `yaml:"end_hour" json:"end_hour"`
	ImportPrice float64  `yaml:"import_price" json:"import_price"`
	ExportPrice float64  `yaml:"export_price" json:"export_price"`
	DemandTier  string   `yaml:"demand_tier" json:"demand_tier"`
}

type TechnologiesConfig struct {
	Solar    *SolarConfig    `yaml:"solar" json:"solar"`
	Storage  *StorageConfig  `yaml:"storage" json:"storage"`
	HVAC     *HVACConfig     `yaml:"hvac" json:"hvac"`
	Lighting *LightingConfig `yaml:"lighting" json:"lighting"`
	EV       *EVConfig       `yaml:"ev" json:"ev"`
}

type SolarConfig struct {
	CapacityKW           float64   `yaml:"capacity_kw" json:"capacity_kw"`
	SystemLoss           float64   `yaml:"system_loss" json:"system_loss"`
	AnnualYieldHours     float64   `yaml:"annual_yield_hours" json:"annual_yield_hours"`
	CapacityFactorSeries []float64 `yaml:"capacity_factor_series" json:"capacity_factor_series"`
}

type StorageConfig struct {
	UsableCapacityKWh   float64 `yaml:"usable_capacity_kwh" json:"usable_capacity_kwh"`
	PowerKW             float64 `yaml:"power_kw" json:"power_kw"`
	RoundTripEfficiency float64 `yaml:"round_trip_efficiency" json:"round_trip_efficiency"`
	ReserveFloorKWh     float64 `yaml:"reserve_floor_kwh" json:"reserve_floor_kwh"`
}

type HVACConfig struct {
	BaselineCOP   float64 `yaml:"baseline_cop" json:"baseline_cop"`
	RetrofitCOP   float64 `yaml:"retrofit_cop" json:"retrofit_cop"`
	LoadKWPerDegC float64 `yaml:"load_kw_per_degc" json:"load_kw_per_degc"`
	BalancePointC float64 `yaml:"balance_point_c" json:"balance_point_c"`
	MeanTempC     float64 `yaml:"mean_temp_c" json:"mean_temp_c"`
	AnnualSwingC  float64 `yaml:"annual_swing_c" json:"annual_swing_c"`
	DailySwingC   float64 `yaml:"daily_swing_c" json:"daily_swing_c"`
}

type LightingConfig struct {
	FixtureCount            int       `yaml:"fixture_count" json:"fixture_count"`
	BaselineWattsPerFixture float64   `yaml:"baseline_watts_per_fixture" json:"baseline_watts_per_fixture"`
	RetrofitWattsPerFixture float64   `yaml:"retrofit_watts_per_fixture" json:"retrofit_watts_per_fixture"`
	StartHour               int       `yaml:"start_hour" json:"start_hour"`
	EndHour                 int       `yaml:"end_hour" json:"end_hour"`
	WeekdaysOnly            bool      `yaml:"weekdays_only" json:"weekdays_only"`
	Mask                    []float64 `yaml:"mask" json:"mask"`
}

type EVConfig struct {
	VehicleCount        int     `yaml:"vehicle_count" json:"vehicle_count"`
	ChargerPowerKW      float64 `yaml:"charger_power_kw" json:"charger_power_kw"`
	EnergyPerVehicleKWh float64 `yaml:"energy_per_vehicle_kwh" json:"energy_per_vehicle_kwh"`
	ArrivalHour         int     `yaml:"arrival_hour" json:"arrival_hour"`
	DepartureHour       int     `yaml:"departure_hour" json:"departure_hour"`
	SmartCharging       bool    `yaml:"smart_charging" json:"smart_charging"`
	ServiceFeePerKWh    float64 `yaml:"service_fee_per_kwh" json:"service_fee_per_kwh"`
}

type EconomicsConfig struct {
	CapexTotal               float64 `yaml:"capex_total" json:"capex_total"`
	AnnualOpex               float64 `yaml:"annual_opex" json:"annual_opex"`
	DiscountRate             float64 `yaml:"discount_rate" json:"discount_rate"`
	HorizonYears             int     `yaml:"horizon_years" json:"horizon_years"`
	DegradationRate          float64 `yaml:"degradation_rate" json:"degradation_rate"`
	EscalationRate           float64 `yaml:"escalation_rate" json:"escalation_rate"`
	EmissionFactorTonsPerMWh float64 `yaml:"emission_factor_tons_per_mwh" json:"emission_factor_tons_per_mwh"`
}

// Load reads, defaults and validates a scenario config file.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads the config without defaulting or validating it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ApplyDefaults fills conventional values so configs stay concise.
func (c *Config) ApplyDefaults() {
	if c.Tariff.Mode == "" {
		c.Tariff.Mode = string(tariff.ModeFixed)
	}
	if c.Economics.HorizonYears == 0 {
		c.Economics.HorizonYears = 10
	}
	if c.Economics.EmissionFactorTonsPerMWh == 0 {
		// Default grid emission factor, tCO2 per MWh.
		c.Economics.EmissionFactorTonsPerMWh = 0.5703
	}
	if s := c.Technologies.Solar; s != nil && s.AnnualYieldHours == 0 && len(s.CapacityFactorSeries) == 0 {
		s.AnnualYieldHours = 1100
	}
	if ev := c.Technologies.EV; ev != nil && ev.ChargerPowerKW == 0 {
		ev.ChargerPowerKW = 7
	}
}

// Validate checks the config by constructing the scenario it describes.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	sc, err := c.ToScenario()
	if err != nil {
		return err
	}
	if len(sc.EnabledTechnologies()) == 0 {
		return errors.New("technologies: at least one technology must be configured")
	}
	if err := sc.Economics.Validate(); err != nil {
		return fmt.Errorf("economics invalid: %w", err)
	}
	if _, err := tariff.Build(sc.Tariff); err != nil {
		return fmt.Errorf("tariff invalid: %w", err)
	}
	return nil
}

// ToScenario converts the YAML shape into the core scenario config.
func (c *Config) ToScenario() (scenario.Config, error) {
	periods := make([]tariff.Period, 0, len(c.Tariff.Periods))
	for i, p := range c.Tariff.Periods {
		seasons := make([]calendar.Season, 0, len(p.Seasons))
		for _, s := range p.Seasons {
			season := calendar.Season(s)
			switch season {
			case calendar.SeasonWinter, calendar.SeasonSpring, calendar.SeasonSummer, calendar.SeasonAutumn:
				seasons = append(seasons, season)
			default:
				return scenario.Config{}, fmt.Errorf("tariff.periods[%d]: unknown season %q", i, s)
			}
		}
		periods = append(periods, tariff.Period{
			Name:        p.Name,
			Seasons:     seasons,
			StartHour:   p.StartHour,
			EndHour:     p.EndHour,
			ImportPrice: p.ImportPrice,
			ExportPrice: p.ExportPrice,
			DemandTier:  p.DemandTier,
		})
	}

	sc := scenario.Config{
		Baseline: scenario.BaselineConfig{
			BaseLoadKW:    c.Baseline.BaseLoadKW,
			WorkdayPeakKW: c.Baseline.WorkdayPeakKW,
			Series:        c.Baseline.Series,
		},
		Tariff: tariff.Config{
			Mode:             tariff.Mode(c.Tariff.Mode),
			FixedImportPrice: c.Tariff.FixedImportPrice,
			FixedExportPrice: c.Tariff.FixedExportPrice,
			DemandTiers:      c.Tariff.DemandTiers,
			Periods:          periods,
		},
		Economics: model.ProjectEconomics{
			CapexTotal:               c.Economics.CapexTotal,
			AnnualOpex:               c.Economics.AnnualOpex,
			DiscountRate:             c.Economics.DiscountRate,
			HorizonYears:             c.Economics.HorizonYears,
			DegradationRate:          c.Economics.DegradationRate,
			EscalationRate:           c.Economics.EscalationRate,
			EmissionFactorTonsPerMWh: c.Economics.EmissionFactorTonsPerMWh,
		},
	}

	if t := c.Technologies.Solar; t != nil {
		sc.Solar = &model.SolarParams{
			CapacityKW:           t.CapacityKW,
			SystemLoss:           t.SystemLoss,
			AnnualYieldHours:     t.AnnualYieldHours,
			CapacityFactorSeries: t.CapacityFactorSeries,
		}
	}
	if t := c.Technologies.Storage; t != nil {
		sc.Storage = &model.StorageParams{
			UsableCapacityKWh:   t.UsableCapacityKWh,
			PowerKW:             t.PowerKW,
			RoundTripEfficiency: t.RoundTripEfficiency,
			ReserveFloorKWh:     t.ReserveFloorKWh,
		}
	}
	if t := c.Technologies.HVAC; t != nil {
		sc.HVAC = &model.HVACParams{
			BaselineCOP:   t.BaselineCOP,
			RetrofitCOP:   t.RetrofitCOP,
			LoadKWPerDegC: t.LoadKWPerDegC,
			BalancePointC: t.BalancePointC,
			MeanTempC:     t.MeanTempC,
			AnnualSwingC:  t.AnnualSwingC,
			DailySwingC:   t.DailySwingC,
		}
	}
	if t := c.Technologies.Lighting; t != nil {
		sc.Lighting = &model.LightingParams{
			FixtureCount:            t.FixtureCount,
			BaselineWattsPerFixture: t.BaselineWattsPerFixture,
			RetrofitWattsPerFixture: t.RetrofitWattsPerFixture,
			Schedule: model.OccupancySchedule{
				StartHour:    t.StartHour,
				EndHour:      t.EndHour,
				WeekdaysOnly: t.WeekdaysOnly,
				Mask:         t.Mask,
			},
		}
	}
	if t := c.Technologies.EV; t != nil {
		sc.EV = &model.EVParams{
			VehicleCount:        t.VehicleCount,
			ChargerPowerKW:      t.ChargerPowerKW,
			EnergyPerVehicleKWh: t.EnergyPerVehicleKWh,
			ArrivalHour:         t.ArrivalHour,
			DepartureHour:       t.DepartureHour,
			SmartCharging:       t.SmartCharging,
			ServiceFeePerKWh:    t.ServiceFeePerKWh,
		}
	}
	return sc, nil
}
