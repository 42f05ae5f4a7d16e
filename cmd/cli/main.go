package main

import (
	"fmt"
	"os"
	"strconv"

	"site-valuation/internal/config"
	"site-valuation/internal/export"
	"site-valuation/internal/model"
	"site-valuation/internal/scenario"
	"site-valuation/internal/tariff"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "site-valuation",
		Short: "Techno-economic valuation of distributed energy projects",
		Long: "Simulates solar, storage, HVAC, lighting and EV charging measures\n" +
			"hour by hour over one year and evaluates the investment case.",
		SilenceUsage: true,
	}
	root.AddCommand(newRunCommand())
	root.AddCommand(newTariffCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRunCommand() *cobra.Command {
	var (
		configPath string
		hourlyCSV  string
		summaryCSV string
		pdfPath    string
		title      string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a scenario from a YAML config",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				pterm.Error.Printfln("Config: %v", err)
				return err
			}

			sc, err := cfg.ToScenario()
			if err != nil {
				return err
			}
			sc.IncludeHourlyProfiles = hourlyCSV != ""

			spinner, _ := pterm.DefaultSpinner.Start("Simulating 8760 hours...")
			res, err := scenario.Run(sc)
			if err != nil {
				spinner.Fail(err.Error())
				return err
			}
			spinner.Success("Simulation complete")

			printTechnologies(res)
			printSite(res)
			printFinancials(res)

			if hourlyCSV != "" {
				if err := export.WriteHourlyCSV(hourlyCSV, res); err != nil {
					return fmt.Errorf("write hourly csv: %w", err)
				}
				pterm.Success.Printfln("Hourly profile written to %s", hourlyCSV)
			}
			if summaryCSV != "" {
				if err := export.WriteSummaryCSV(summaryCSV, res); err != nil {
					return fmt.Errorf("write summary csv: %w", err)
				}
				pterm.Success.Printfln("Summary written to %s", summaryCSV)
			}
			if pdfPath != "" {
				if err := export.WriteSummaryPDF(pdfPath, title, res); err != nil {
					return fmt.Errorf("write pdf: %w", err)
				}
				pterm.Success.Printfln("Report written to %s", pdfPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "scenario.yaml", "Path to the scenario YAML config")
	cmd.Flags().StringVar(&hourlyCSV, "hourly-csv", "", "Write the 8760-row site profile to this CSV file")
	cmd.Flags().StringVar(&summaryCSV, "summary-csv", "", "Write annual rollups and financials to this CSV file")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "Write a one-page PDF report to this file")
	cmd.Flags().StringVar(&title, "title", "", "Report title (default: Site Valuation)")
	return cmd
}

func newTariffCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "tariff",
		Short: "Inspect the resolved rate schedule of a config",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			sc, err := cfg.ToScenario()
			if err != nil {
				return err
			}
			sched, err := tariff.Build(sc.Tariff)
			if err != nil {
				return err
			}

			stats := sched.ImportStats()
			rows := pterm.TableData{
				{"Metric", "Import price"},
				{"Min", fmt.Sprintf("%.4f", stats.Min)},
				{"P05", fmt.Sprintf("%.4f", stats.P05)},
				{"Mean", fmt.Sprintf("%.4f", stats.Mean)},
				{"P95", fmt.Sprintf("%.4f", stats.P95)},
				{"Max", fmt.Sprintf("%.4f", stats.Max)},
				{"P05-P95 spread", fmt.Sprintf("%.4f", stats.Spread)},
			}
			return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "scenario.yaml", "Path to the scenario YAML config")
	return cmd
}

func printTechnologies(res *model.ScenarioResult) {
	rows := pterm.TableData{
		{"Technology", "Generation kWh", "Consumption kWh", "Savings kWh", "Cash flow", "tCO2 avoided"},
	}
	for _, t := range res.Technologies {
		rows = append(rows, []string{
			string(t.Technology),
			fmt.Sprintf("%.1f", t.AnnualGenerationKWh),
			fmt.Sprintf("%.1f", t.AnnualConsumptionKWh),
			fmt.Sprintf("%.1f", t.AnnualSavingsKWh),
			fmt.Sprintf("%.2f", t.AnnualCashFlow),
			fmt.Sprintf("%.2f", t.CarbonReductionTons),
		})
	}
	pterm.DefaultSection.Println("Technologies")
	_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()

	for _, t := range res.Technologies {
		for _, warn := range t.Warnings {
			pterm.Warning.Printfln("%s: %s", t.Technology, warn)
		}
	}
}

func printSite(res *model.ScenarioResult) {
	s := res.Site
	rows := pterm.TableData{
		{"Annual import kWh", fmt.Sprintf("%.1f", s.AnnualImportKWh)},
		{"Annual export kWh", fmt.Sprintf("%.1f", s.AnnualExportKWh)},
		{"Energy cost", fmt.Sprintf("%.2f", s.AnnualEnergyCost)},
		{"Demand cost", fmt.Sprintf("%.2f", s.AnnualDemandCost)},
		{"Net annual benefit", fmt.Sprintf("%.2f", s.AnnualNetBenefit)},
		{"Carbon reduction tCO2", fmt.Sprintf("%.2f", res.CarbonReductionTons)},
	}
	pterm.DefaultSection.Println("Site")
	_ = pterm.DefaultTable.WithData(rows).Render()
}

func printFinancials(res *model.ScenarioResult) {
	f := res.Financials

	irr := "undefined"
	if f.IRRDefined {
		irr = fmt.Sprintf("%.2f%%", f.IRR*100)
	}
	simple := "never"
	if f.SimplePaybackReached {
		simple = fmt.Sprintf("%.1f years", f.SimplePaybackYears)
	}
	discounted := "never"
	if f.DiscountedPaybackReached {
		discounted = fmt.Sprintf("%.1f years", f.DiscountedPaybackYears)
	}

	rows := pterm.TableData{
		{"NPV", fmt.Sprintf("%.2f", f.NPV)},
		{"IRR", irr},
		{"Simple payback", simple},
		{"Discounted payback", discounted},
		{"Levelized cost /kWh", strconv.FormatFloat(f.LevelizedCostPerKWh, 'f', 4, 64)},
		{"Levelized benefit /kWh", strconv.FormatFloat(f.LevelizedBenefitPerKWh, 'f', 4, 64)},
	}
	pterm.DefaultSection.Println("Financials")
	_ = pterm.DefaultTable.WithData(rows).Render()

	if f.NPV >= 0 {
		pterm.Success.Printfln("Positive NPV over %d cash-flow years", len(f.AnnualCashFlows)-1)
	} else {
		pterm.Warning.Printfln("Negative NPV over %d cash-flow years", len(f.AnnualCashFlows)-1)
	}
}
