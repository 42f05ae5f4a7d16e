package model

// ProjectEconomics holds the investment-side inputs. Supplied by the caller
// and never mutated by the core.
type ProjectEconomics struct {
	CapexTotal   float64 `json:"capex_total"`
	AnnualOpex   float64 `json:"annual_opex"`
	DiscountRate float64 `json:"discount_rate"`
	HorizonYears int     `json:"horizon_years"`
	// DegradationRate shrinks the benefit side each year (PV output fade,
	// battery capacity loss); EscalationRate grows the value of avoided
	// energy (tariff inflation).
	DegradationRate float64 `json:"degradation_rate"`
	EscalationRate  float64 `json:"escalation_rate"`
	// EmissionFactorTonsPerMWh converts displaced grid energy to avoided
	// emissions for the scenario summary.
	EmissionFactorTonsPerMWh float64 `json:"emission_factor_tons_per_mwh"`
}

func (e ProjectEconomics) Validate() error {
	if e.CapexTotal < 0 {
		return &InvalidParameterError{"economics", "capex_total", "must be >= 0"}
	}
	if e.AnnualOpex < 0 {
		return &InvalidParameterError{"economics", "annual_opex", "must be >= 0"}
	}
	if e.DiscountRate < 0 || e.DiscountRate >= 1 {
		return &InvalidParameterError{"economics", "discount_rate", "must be in [0, 1)"}
	}
	if e.HorizonYears <= 0 {
		return &InvalidParameterError{"economics", "horizon_years", "must be > 0"}
	}
	if e.DegradationRate < 0 || e.DegradationRate >= 1 {
		return &InvalidParameterError{"economics", "degradation_rate", "must be in [0, 1)"}
	}
	if e.EscalationRate < 0 || e.EscalationRate >= 1 {
		return &InvalidParameterError{"economics", "escalation_rate", "must be in [0, 1)"}
	}
	if e.EmissionFactorTonsPerMWh < 0 {
		return &InvalidParameterError{"economics", "emission_factor_tons_per_mwh", "must be >= 0"}
	}
	return nil
}
