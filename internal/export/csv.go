package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"site-valuation/internal/calendar"
	"site-valuation/internal/model"
)

// WriteHourlyCSV writes the full 8760-row site profile. When the result
// carries per-technology profiles, their hourly series are appended as
// additional columns in aggregation order.
func WriteHourlyCSV(path string, res *model.ScenarioResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return writeHourly(f, res)
}

func writeHourly(out io.Writer, res *model.ScenarioResult) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	var techs []model.Technology
	for _, t := range model.AllTechnologies() {
		if _, ok := res.Profiles[t]; ok {
			techs = append(techs, t)
		}
	}

	header := []string{
		"hour",
		"month",
		"day",
		"hour_of_day",
		"season",
		"baseline_load_kwh",
		"generation_kwh",
		"storage_charge_kwh",
		"storage_discharge_kwh",
		"grid_import_kwh",
		"grid_export_kwh",
		"net_cost",
	}
	for _, t := range techs {
		header = append(header,
			string(t)+"_generation_kwh",
			string(t)+"_consumption_kwh",
			string(t)+"_savings_kwh",
			string(t)+"_cash_flow",
		)
	}
	if err := w.Write(header); err != nil {
		return err
	}

	site := res.Site
	for h := 0; h < calendar.HoursPerYear; h++ {
		info := calendar.MustInfo(h)
		row := []string{
			strconv.Itoa(h),
			strconv.Itoa(int(info.Month)),
			strconv.Itoa(info.Day),
			strconv.Itoa(info.HourOfDay),
			string(info.Season),
			fmtFloat(site.BaselineLoadKWh[h]),
			fmtFloat(site.GenerationKWh[h]),
			fmtFloat(site.StorageChargeKWh[h]),
			fmtFloat(site.StorageDischargeKWh[h]),
			fmtFloat(site.GridImportKWh[h]),
			fmtFloat(site.GridExportKWh[h]),
			fmtFloat(site.NetCostPerHour[h]),
		}
		for _, t := range techs {
			p := res.Profiles[t]
			row = append(row,
				fmtFloat(p.GenerationKWh[h]),
				fmtFloat(p.ConsumptionKWh[h]),
				fmtFloat(p.SavingsKWh[h]),
				fmtFloat(p.CashFlow[h]),
			)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

// WriteSummaryCSV writes the per-technology annual rollups followed by the
// site totals and financial metrics as key/value rows.
func WriteSummaryCSV(path string, res *model.ScenarioResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return writeSummary(f, res)
}

func writeSummary(out io.Writer, res *model.ScenarioResult) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	header := []string{
		"technology",
		"annual_generation_kwh",
		"annual_consumption_kwh",
		"annual_savings_kwh",
		"annual_cash_flow",
		"carbon_reduction_tons",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, t := range res.Technologies {
		row := []string{
			string(t.Technology),
			fmtFloat(t.AnnualGenerationKWh),
			fmtFloat(t.AnnualConsumptionKWh),
			fmtFloat(t.AnnualSavingsKWh),
			fmtFloat(t.AnnualCashFlow),
			fmtFloat(t.CarbonReductionTons),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	if err := w.Write([]string{}); err != nil {
		return err
	}

	fin := res.Financials
	site := res.Site
	kv := [][2]string{
		{"annual_import_kwh", fmtFloat(site.AnnualImportKWh)},
		{"annual_export_kwh", fmtFloat(site.AnnualExportKWh)},
		{"annual_energy_cost", fmtFloat(site.AnnualEnergyCost)},
		{"annual_demand_cost", fmtFloat(site.AnnualDemandCost)},
		{"annual_net_benefit", fmtFloat(site.AnnualNetBenefit)},
		{"carbon_reduction_tons", fmtFloat(res.CarbonReductionTons)},
		{"npv", fmtFloat(fin.NPV)},
		{"irr", fmtIRR(fin)},
		{"simple_payback_years", fmtPayback(fin.SimplePaybackYears, fin.SimplePaybackReached)},
		{"discounted_payback_years", fmtPayback(fin.DiscountedPaybackYears, fin.DiscountedPaybackReached)},
		{"levelized_cost_per_kwh", fmtFloat(fin.LevelizedCostPerKWh)},
		{"levelized_benefit_per_kwh", fmtFloat(fin.LevelizedBenefitPerKWh)},
	}
	for _, pair := range kv {
		if err := w.Write([]string{pair[0], pair[1]}); err != nil {
			return err
		}
	}
	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}

func fmtIRR(fin *model.FinancialResult) string {
	if !fin.IRRDefined {
		return "undefined"
	}
	return fmt.Sprintf("%.4f", fin.IRR)
}

func fmtPayback(years float64, reached bool) string {
	if !reached {
		return "never"
	}
	return fmt.Sprintf("%.2f", years)
}
