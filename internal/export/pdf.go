package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"site-valuation/internal/model"
)

// WriteSummaryPDF renders a one-page valuation report: technology rollups,
// the site energy balance and the financial metrics.
func WriteSummaryPDF(path, title string, res *model.ScenarioResult) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	drawSection := func(name, content string) {
		if content == "" {
			return
		}
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(0, 0, 0)
		pdf.Cell(0, 8, tr(name))
		pdf.Ln(7)

		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(4)

		pdf.SetFont("Courier", "", 9)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		pdf.MultiCell(190, 4.5, tr(content), "", "L", false)
		pdf.Ln(6)
	}

	pdf.AddPage()

	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 14)
	if title == "" {
		title = "Site Valuation"
	}
	pdf.CellFormat(0, 12, tr("  "+title), "", 1, "L", true, 0, "")
	pdf.Ln(8)

	drawSection("Technologies", technologySection(res))
	drawSection("Site Energy Balance", siteSection(res))
	drawSection("Financials", financialSection(res))

	pdf.SetY(-15)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	footer := fmt.Sprintf("Generated %s", time.Now().Format("2006-01-02"))
	pdf.CellFormat(0, 10, tr(footer), "", 0, "L", false, 0, "")

	return pdf.OutputFileAndClose(path)
}

func technologySection(res *model.ScenarioResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-10s %16s %16s %16s %14s %10s\n",
		"technology", "generation kWh", "consumption kWh", "savings kWh", "cash flow", "tCO2")
	for _, t := range res.Technologies {
		fmt.Fprintf(&b, "%-10s %16.1f %16.1f %16.1f %14.2f %10.2f\n",
			t.Technology,
			t.AnnualGenerationKWh,
			t.AnnualConsumptionKWh,
			t.AnnualSavingsKWh,
			t.AnnualCashFlow,
			t.CarbonReductionTons)
		for _, warn := range t.Warnings {
			fmt.Fprintf(&b, "  note: %s\n", warn)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func siteSection(res *model.ScenarioResult) string {
	s := res.Site
	var b strings.Builder
	fmt.Fprintf(&b, "Annual import        %14.1f kWh\n", s.AnnualImportKWh)
	fmt.Fprintf(&b, "Annual export        %14.1f kWh\n", s.AnnualExportKWh)
	fmt.Fprintf(&b, "Energy cost          %14.2f\n", s.AnnualEnergyCost)
	fmt.Fprintf(&b, "Demand cost          %14.2f\n", s.AnnualDemandCost)
	fmt.Fprintf(&b, "Net annual benefit   %14.2f\n", s.AnnualNetBenefit)
	fmt.Fprintf(&b, "Carbon reduction     %14.2f tCO2", res.CarbonReductionTons)
	return b.String()
}

func financialSection(res *model.ScenarioResult) string {
	f := res.Financials
	var b strings.Builder
	fmt.Fprintf(&b, "NPV                  %14.2f\n", f.NPV)
	if f.IRRDefined {
		fmt.Fprintf(&b, "IRR                  %13.2f%%\n", f.IRR*100)
	} else {
		fmt.Fprintf(&b, "IRR                  %14s\n", "undefined")
	}
	if f.SimplePaybackReached {
		fmt.Fprintf(&b, "Simple payback       %11.1f yrs\n", f.SimplePaybackYears)
	} else {
		fmt.Fprintf(&b, "Simple payback       %14s\n", "never")
	}
	if f.DiscountedPaybackReached {
		fmt.Fprintf(&b, "Discounted payback   %11.1f yrs\n", f.DiscountedPaybackYears)
	} else {
		fmt.Fprintf(&b, "Discounted payback   %14s\n", "never")
	}
	fmt.Fprintf(&b, "Levelized cost       %14.4f /kWh\n", f.LevelizedCostPerKWh)
	fmt.Fprintf(&b, "Levelized benefit    %14.4f /kWh", f.LevelizedBenefitPerKWh)
	return b.String()
}
