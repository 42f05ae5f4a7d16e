package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"site-valuation/internal/calendar"
	"site-valuation/internal/model"
)

func sampleResult(withProfiles bool) *model.ScenarioResult {
	site := model.NewSiteAnnualProfile()
	site.GridImportKWh[0] = 12.5

	res := &model.ScenarioResult{
		Technologies: []model.TechnologySummary{
			{Technology: model.TechSolar, AnnualGenerationKWh: 9900, AnnualCashFlow: 1200},
		},
		Site: site,
		Financials: &model.FinancialResult{
			NPV:                  1234.5,
			IRRDefined:           true,
			IRR:                  0.12,
			SimplePaybackReached: true,
			SimplePaybackYears:   4.2,
		},
	}
	if withProfiles {
		res.Profiles = map[model.Technology]*model.TechnologyProfile{
			model.TechSolar: model.NewTechnologyProfile(model.TechSolar),
		}
	}
	return res
}

func TestWriteHourlyShape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeHourly(&buf, sampleResult(false)))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, calendar.HoursPerYear+1)

	header := records[0]
	assert.Equal(t, "hour", header[0])
	assert.Equal(t, "season", header[4])
	assert.Equal(t, "net_cost", header[len(header)-1])

	// First data row is hour 0 of January 1st.
	assert.Equal(t, "0", records[1][0])
	assert.Equal(t, "1", records[1][1])
	assert.Equal(t, "winter", records[1][4])
	assert.Equal(t, "12.500000", records[1][9])
}

func TestWriteHourlyIncludesProfileColumns(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeHourly(&buf, sampleResult(true)))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	header := records[0]
	assert.Contains(t, header, "solar_generation_kwh")
	assert.Contains(t, header, "solar_cash_flow")
	assert.Len(t, records[1], len(header))
}

func TestWriteSummaryContents(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSummary(&buf, sampleResult(false)))

	r := csv.NewReader(&buf)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, "technology", records[0][0])
	assert.Equal(t, "solar", records[1][0])

	kv := map[string]string{}
	for _, rec := range records[2:] {
		if len(rec) == 2 {
			kv[rec[0]] = rec[1]
		}
	}
	assert.Equal(t, "1234.500000", kv["npv"])
	assert.Equal(t, "0.1200", kv["irr"])
	assert.Equal(t, "4.20", kv["simple_payback_years"])
	assert.Equal(t, "never", kv["discounted_payback_years"])
}

func TestWriteSummaryUndefinedIRR(t *testing.T) {
	res := sampleResult(false)
	res.Financials.IRRDefined = false

	var buf bytes.Buffer
	require.NoError(t, writeSummary(&buf, res))
	assert.Contains(t, buf.String(), "irr,undefined")
}
