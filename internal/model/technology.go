package model

import (
	"fmt"

	"site-valuation/internal/calendar"
)

// Technology identifies one of the five simulated measures.
// Keep these values stable; they appear in API payloads and exports.
type Technology string

const (
	TechSolar    Technology = "solar"
	TechStorage  Technology = "storage"
	TechHVAC     Technology = "hvac"
	TechLighting Technology = "lighting"
	TechEV       Technology = "ev"
)

// AllTechnologies lists the supported technologies in aggregation order.
func AllTechnologies() []Technology {
	return []Technology{TechSolar, TechStorage, TechHVAC, TechLighting, TechEV}
}

// ParseTechnology maps an external identifier to a Technology.
func ParseTechnology(s string) (Technology, error) {
	t := Technology(s)
	switch t {
	case TechSolar, TechStorage, TechHVAC, TechLighting, TechEV:
		return t, nil
	}
	return "", fmt.Errorf("unknown technology %q", s)
}

// TechnologyProfile is the hourly output of exactly one simulator.
// All slices have calendar.HoursPerYear entries. Sign conventions:
// - GenerationKWh: energy delivered to the site (solar output, storage discharge)
// - ConsumptionKWh: energy drawn by the technology (storage charge, EV demand)
// - SavingsKWh: demand reduction against the baseline (HVAC, lighting retrofits)
// - CashFlow: per-hour net value in currency (positive = benefit)
// The profile is immutable once emitted by its simulator.
type TechnologyProfile struct {
	Technology     Technology `json:"technology"`
	GenerationKWh  []float64  `json:"generation_kwh"`
	ConsumptionKWh []float64  `json:"consumption_kwh"`
	SavingsKWh     []float64  `json:"savings_kwh"`
	CashFlow       []float64  `json:"cash_flow"`

	// Warnings carries non-fatal flags, e.g. retrofit savings floored at zero.
	Warnings []string `json:"warnings,omitempty"`
}

// NewTechnologyProfile allocates a zeroed full-year profile.
func NewTechnologyProfile(tech Technology) *TechnologyProfile {
	return &TechnologyProfile{
		Technology:     tech,
		GenerationKWh:  make([]float64, calendar.HoursPerYear),
		ConsumptionKWh: make([]float64, calendar.HoursPerYear),
		SavingsKWh:     make([]float64, calendar.HoursPerYear),
		CashFlow:       make([]float64, calendar.HoursPerYear),
	}
}

// Validate checks the 8760-entry invariant.
func (p *TechnologyProfile) Validate() error {
	for name, s := range map[string][]float64{
		"generation_kwh":  p.GenerationKWh,
		"consumption_kwh": p.ConsumptionKWh,
		"savings_kwh":     p.SavingsKWh,
		"cash_flow":       p.CashFlow,
	} {
		if len(s) != calendar.HoursPerYear {
			return fmt.Errorf("profile %s: %s has %d entries, want %d", p.Technology, name, len(s), calendar.HoursPerYear)
		}
	}
	return nil
}

// TechnologySummary is the annual rollup of one profile.
type TechnologySummary struct {
	Technology           Technology `json:"technology"`
	AnnualGenerationKWh  float64    `json:"annual_generation_kwh"`
	AnnualConsumptionKWh float64    `json:"annual_consumption_kwh"`
	AnnualSavingsKWh     float64    `json:"annual_savings_kwh"`
	AnnualCashFlow       float64    `json:"annual_cash_flow"`
	CarbonReductionTons  float64    `json:"carbon_reduction_tons"`
	Warnings             []string   `json:"warnings,omitempty"`
}

// Summarize totals the hourly series. Avoided emissions are credited for
// energy that displaces grid import: generation and savings.
func (p *TechnologyProfile) Summarize(emissionFactorTonsPerMWh float64) TechnologySummary {
	s := TechnologySummary{Technology: p.Technology, Warnings: p.Warnings}
	for h := 0; h < calendar.HoursPerYear; h++ {
		s.AnnualGenerationKWh += p.GenerationKWh[h]
		s.AnnualConsumptionKWh += p.ConsumptionKWh[h]
		s.AnnualSavingsKWh += p.SavingsKWh[h]
		s.AnnualCashFlow += p.CashFlow[h]
	}
	displacedMWh := (s.AnnualGenerationKWh + s.AnnualSavingsKWh) / 1000.0
	s.CarbonReductionTons = displacedMWh * emissionFactorTonsPerMWh
	return s
}
