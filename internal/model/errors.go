package model

import "fmt"

// ConfigurationError reports a malformed or incomplete tariff/schedule
// configuration. It is raised at build time so that no simulator can
// encounter an undefined rate mid-run.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

// InvalidParameterError reports an out-of-range technical or economic input.
// It carries the technology and parameter so the orchestrator can surface
// exactly what aborted the run.
type InvalidParameterError struct {
	Technology Technology
	Param      string
	Reason     string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s.%s: %s", e.Technology, e.Param, e.Reason)
}

// EnergyBalanceError means the aggregator's per-hour conservation check
// failed. This indicates a logic defect and always aborts the run.
type EnergyBalanceError struct {
	Hour  int
	Delta float64
}

func (e *EnergyBalanceError) Error() string {
	return fmt.Sprintf("energy balance violated at hour %d (relative error %g)", e.Hour, e.Delta)
}
