package scenario

import (
	"fmt"
	"sync"

	"site-valuation/internal/aggregate"
	"site-valuation/internal/calendar"
	"site-valuation/internal/finance"
	"site-valuation/internal/model"
	"site-valuation/internal/sim"
	"site-valuation/internal/tariff"
)

// BaselineConfig shapes the site's pre-project load. An explicit Series
// wins; otherwise a base load plus a working-hours peak is synthesized.
type BaselineConfig struct {
	BaseLoadKW    float64
	WorkdayPeakKW float64
	Series        []float64
}

// Config is the full input for one scenario run. A technology is enabled by
// supplying its parameters; at least one must be present.
type Config struct {
	Baseline  BaselineConfig
	Tariff    tariff.Config
	Economics model.ProjectEconomics

	Solar    *model.SolarParams
	Storage  *model.StorageParams
	HVAC     *model.HVACParams
	Lighting *model.LightingParams
	EV       *model.EVParams

	// IncludeHourlyProfiles keeps the per-technology hourly series on the
	// result. Summaries are always included.
	IncludeHourlyProfiles bool
}

// EnabledTechnologies lists the technologies this config switches on, in
// aggregation order.
func (c *Config) EnabledTechnologies() []model.Technology {
	var out []model.Technology
	if c.Solar != nil {
		out = append(out, model.TechSolar)
	}
	if c.Storage != nil {
		out = append(out, model.TechStorage)
	}
	if c.HVAC != nil {
		out = append(out, model.TechHVAC)
	}
	if c.Lighting != nil {
		out = append(out, model.TechLighting)
	}
	if c.EV != nil {
		out = append(out, model.TechEV)
	}
	return out
}

// Run executes the full annual simulation: build the tariff once, run the
// enabled simulators concurrently against the shared immutable schedule,
// join on the aggregator, then evaluate the financials.
func Run(cfg Config) (*model.ScenarioResult, error) {
	if len(cfg.EnabledTechnologies()) == 0 {
		return nil, &model.InvalidParameterError{
			Technology: "scenario", Param: "technologies", Reason: "at least one technology must be enabled",
		}
	}
	if err := cfg.Economics.Validate(); err != nil {
		return nil, err
	}

	sched, err := tariff.Build(cfg.Tariff)
	if err != nil {
		return nil, err
	}

	baseline, err := BaselineSeries(cfg.Baseline)
	if err != nil {
		return nil, err
	}

	sims, err := buildSimulators(cfg, baseline)
	if err != nil {
		return nil, err
	}

	profiles, err := runAll(sims, sched)
	if err != nil {
		return nil, err
	}

	site, err := aggregate.Aggregate(profiles, baseline, sched)
	if err != nil {
		return nil, err
	}

	displaced := 0.0
	byTech := make(map[model.Technology]*model.TechnologyProfile, len(profiles))
	summaries := make([]model.TechnologySummary, 0, len(profiles))
	carbon := 0.0
	for _, p := range profiles {
		s := p.Summarize(cfg.Economics.EmissionFactorTonsPerMWh)
		summaries = append(summaries, s)
		carbon += s.CarbonReductionTons
		displaced += s.AnnualGenerationKWh + s.AnnualSavingsKWh
		byTech[p.Technology] = p
	}

	fin, err := finance.Evaluate(site.AnnualNetBenefit, displaced, cfg.Economics)
	if err != nil {
		return nil, err
	}

	res := &model.ScenarioResult{
		Technologies:        summaries,
		Site:                site,
		Financials:          fin,
		CarbonReductionTons: carbon,
	}
	if cfg.IncludeHourlyProfiles {
		res.Profiles = byTech
	}
	return res, nil
}

// Calculate runs a single technology in isolation and returns its profile
// and summary. This backs the per-technology API operation.
func Calculate(tech model.Technology, cfg Config) (*model.TechnologyProfile, model.TechnologySummary, error) {
	sched, err := tariff.Build(cfg.Tariff)
	if err != nil {
		return nil, model.TechnologySummary{}, err
	}
	baseline, err := BaselineSeries(cfg.Baseline)
	if err != nil {
		return nil, model.TechnologySummary{}, err
	}

	s, err := simulatorFor(tech, cfg, baseline)
	if err != nil {
		return nil, model.TechnologySummary{}, err
	}
	p, err := s.Simulate(sched)
	if err != nil {
		return nil, model.TechnologySummary{}, fmt.Errorf("simulate %s: %w", tech, err)
	}
	return p, p.Summarize(cfg.Economics.EmissionFactorTonsPerMWh), nil
}

// BaselineSeries expands the baseline config into an 8760 load series.
func BaselineSeries(cfg BaselineConfig) ([]float64, error) {
	if len(cfg.Series) != 0 {
		if len(cfg.Series) != calendar.HoursPerYear {
			return nil, &model.ConfigurationError{
				Field:  "baseline.series",
				Reason: fmt.Sprintf("has %d entries, want %d", len(cfg.Series), calendar.HoursPerYear),
			}
		}
		for _, v := range cfg.Series {
			if v < 0 {
				return nil, &model.ConfigurationError{Field: "baseline.series", Reason: "entries must be >= 0"}
			}
		}
		out := make([]float64, calendar.HoursPerYear)
		copy(out, cfg.Series)
		return out, nil
	}
	if cfg.BaseLoadKW < 0 || cfg.WorkdayPeakKW < 0 {
		return nil, &model.ConfigurationError{Field: "baseline", Reason: "loads must be >= 0"}
	}
	out := make([]float64, calendar.HoursPerYear)
	for h := 0; h < calendar.HoursPerYear; h++ {
		info := calendar.MustInfo(h)
		load := cfg.BaseLoadKW
		if !info.Weekend && info.HourOfDay >= 8 && info.HourOfDay < 18 {
			load += cfg.WorkdayPeakKW
		}
		out[h] = load
	}
	return out, nil
}

func buildSimulators(cfg Config, baseline []float64) ([]sim.Simulator, error) {
	var sims []sim.Simulator
	for _, tech := range cfg.EnabledTechnologies() {
		s, err := simulatorFor(tech, cfg, baseline)
		if err != nil {
			return nil, err
		}
		sims = append(sims, s)
	}
	return sims, nil
}

func simulatorFor(tech model.Technology, cfg Config, baseline []float64) (sim.Simulator, error) {
	switch tech {
	case model.TechSolar:
		if cfg.Solar == nil {
			return nil, &model.InvalidParameterError{Technology: tech, Param: "params", Reason: "missing"}
		}
		return sim.NewSolar(*cfg.Solar, baseline)
	case model.TechStorage:
		if cfg.Storage == nil {
			return nil, &model.InvalidParameterError{Technology: tech, Param: "params", Reason: "missing"}
		}
		return sim.NewStorage(*cfg.Storage)
	case model.TechHVAC:
		if cfg.HVAC == nil {
			return nil, &model.InvalidParameterError{Technology: tech, Param: "params", Reason: "missing"}
		}
		return sim.NewHVAC(*cfg.HVAC)
	case model.TechLighting:
		if cfg.Lighting == nil {
			return nil, &model.InvalidParameterError{Technology: tech, Param: "params", Reason: "missing"}
		}
		return sim.NewLighting(*cfg.Lighting)
	case model.TechEV:
		if cfg.EV == nil {
			return nil, &model.InvalidParameterError{Technology: tech, Param: "params", Reason: "missing"}
		}
		return sim.NewEV(*cfg.EV)
	default:
		return nil, fmt.Errorf("unknown technology %q", tech)
	}
}

// runAll fans the simulators out on goroutines and joins strictly before
// returning. They share only the immutable schedule, so no synchronization
// beyond the join is needed. Any simulator error aborts the whole run.
func runAll(sims []sim.Simulator, sched *tariff.Schedule) ([]*model.TechnologyProfile, error) {
	type outcome struct {
		idx     int
		profile *model.TechnologyProfile
		err     error
	}

	results := make(chan outcome, len(sims))
	var wg sync.WaitGroup
	for i, s := range sims {
		wg.Add(1)
		go func(idx int, s sim.Simulator) {
			defer wg.Done()
			p, err := s.Simulate(sched)
			if err != nil {
				err = fmt.Errorf("simulate %s: %w", s.Technology(), err)
			}
			results <- outcome{idx: idx, profile: p, err: err}
		}(i, s)
	}
	wg.Wait()
	close(results)

	profiles := make([]*model.TechnologyProfile, len(sims))
	for r := range results {
		if r.err != nil {
			return nil, r.err
		}
		profiles[r.idx] = r.profile
	}
	return profiles, nil
}
