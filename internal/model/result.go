package model

import (
	"site-valuation/internal/calendar"
)

// SiteAnnualProfile is the hour-indexed merge of the enabled technology
// profiles plus baseline load. Owned by the aggregator during construction;
// immutable once returned.
type SiteAnnualProfile struct {
	BaselineLoadKWh     []float64 `json:"baseline_load_kwh"`
	GenerationKWh       []float64 `json:"generation_kwh"`
	StorageChargeKWh    []float64 `json:"storage_charge_kwh"`
	StorageDischargeKWh []float64 `json:"storage_discharge_kwh"`
	GridImportKWh       []float64 `json:"grid_import_kwh"`
	GridExportKWh       []float64 `json:"grid_export_kwh"`
	NetCostPerHour      []float64 `json:"net_cost_per_hour"`

	// MonthlyPeakImportKW feeds the demand-charge calculation. Hourly
	// averages, so kWh over one hour equals kW.
	MonthlyPeakImportKW [12]float64 `json:"monthly_peak_import_kw"`

	AnnualImportKWh  float64 `json:"annual_import_kwh"`
	AnnualExportKWh  float64 `json:"annual_export_kwh"`
	AnnualEnergyCost float64 `json:"annual_energy_cost"`
	AnnualDemandCost float64 `json:"annual_demand_cost"`

	// AnnualNetBenefit is the site-level cash value of the project against
	// the do-nothing baseline: avoided import, export revenue, savings
	// value and service fees, minus storage charging and EV energy costs.
	AnnualNetBenefit float64 `json:"annual_net_benefit"`
}

// NewSiteAnnualProfile allocates a zeroed full-year site profile.
func NewSiteAnnualProfile() *SiteAnnualProfile {
	return &SiteAnnualProfile{
		BaselineLoadKWh:     make([]float64, calendar.HoursPerYear),
		GenerationKWh:       make([]float64, calendar.HoursPerYear),
		StorageChargeKWh:    make([]float64, calendar.HoursPerYear),
		StorageDischargeKWh: make([]float64, calendar.HoursPerYear),
		GridImportKWh:       make([]float64, calendar.HoursPerYear),
		GridExportKWh:       make([]float64, calendar.HoursPerYear),
		NetCostPerHour:      make([]float64, calendar.HoursPerYear),
	}
}

// FinancialResult holds the investment metrics for one evaluation.
// IRR and payback may legitimately be undefined; the flags make that
// explicit instead of smuggling NaN through JSON.
type FinancialResult struct {
	NPV        float64 `json:"npv"`
	IRR        float64 `json:"irr"`
	IRRDefined bool    `json:"irr_defined"`

	SimplePaybackYears       float64 `json:"simple_payback_years"`
	SimplePaybackReached     bool    `json:"simple_payback_reached"`
	DiscountedPaybackYears   float64 `json:"discounted_payback_years"`
	DiscountedPaybackReached bool    `json:"discounted_payback_reached"`

	LevelizedCostPerKWh    float64 `json:"levelized_cost_per_kwh"`
	LevelizedBenefitPerKWh float64 `json:"levelized_benefit_per_kwh"`

	// AnnualCashFlows[0] is year 0 (negative capex); entries 1..N are the
	// degraded/escalated operating years.
	AnnualCashFlows []float64 `json:"annual_cash_flows"`
}

// ScenarioResult is the sole object returned to external collaborators.
type ScenarioResult struct {
	Technologies        []TechnologySummary               `json:"technologies"`
	Profiles            map[Technology]*TechnologyProfile `json:"profiles,omitempty"`
	Site                *SiteAnnualProfile                `json:"site"`
	Financials          *FinancialResult                  `json:"financials"`
	CarbonReductionTons float64                           `json:"carbon_reduction_tons"`
}
