package tables

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkestra/reportpipe/core"
)

func incomeTableDoc() *core.LayoutDocument {
	doc := core.NewLayoutDocument("reports/Company_FY2024.pdf")
	doc.Pages = []core.Page{
		{Number: 11, Content: "Item 8. Financial Statements and Supplementary Data"},
		{Number: 12, Content: "Consolidated Statements of Income"},
	}
	doc.Tables = []core.Table{
		{
			ID:          "000",
			RowCount:    3,
			ColumnCount: 2,
			PageNumber:  12,
			Cells: []core.TableCell{
				{Content: "Statements of Income", Row: 0, Column: 0},
				{Content: "2024", Row: 0, Column: 1},
				{Content: "Revenue", Row: 1, Column: 0},
				{Content: "1,000", Row: 1, Column: 1},
				{Content: "Net income", Row: 2, Column: 0},
				{Content: "250", Row: 2, Column: 1},
			},
		},
	}
	doc.PageCount = len(doc.Pages)
	doc.TableCount = len(doc.Tables)
	return doc
}

func TestExtractFacts(t *testing.T) {
	n := NewNormalizer()
	facts, err := n.ExtractFacts(incomeTableDoc())
	require.NoError(t, err)
	require.Len(t, facts, 2)

	revenue := facts[0]
	assert.Equal(t, "Company_FY2024.pdf_t000_r000_c001", revenue.ID)
	assert.Equal(t, "FY2024", revenue.Year)
	assert.Equal(t, core.StatementIncome, revenue.StatementType)
	assert.Equal(t, "Financial Statements", revenue.Section)
	assert.Equal(t, "Revenue", revenue.Metric)
	require.NotNil(t, revenue.Value)
	assert.Equal(t, 1000.0, *revenue.Value)
	assert.Equal(t, 12, revenue.Page)

	netIncome := facts[1]
	assert.Equal(t, "NetIncome", netIncome.Metric)
	require.NotNil(t, netIncome.Value)
	assert.Equal(t, 250.0, *netIncome.Value)
}

func TestExtractFacts_UnknownStatement(t *testing.T) {
	doc := incomeTableDoc()
	doc.Tables[0].Cells[0].Content = "Selected quarterly data"
	doc.Tables[0].Cells[2].Content = "Backlog"
	doc.Tables[0].Cells[4].Content = "Headcount"

	n := NewNormalizer()
	facts, err := n.ExtractFacts(doc)
	require.NoError(t, err)
	require.NotEmpty(t, facts)
	assert.Equal(t, core.StatementUnknown, facts[0].StatementType)
}

func TestExtractFacts_YearFallsBackToDocument(t *testing.T) {
	doc := incomeTableDoc()
	doc.Tables[0].Cells[1].Content = "Current period"

	n := NewNormalizer()
	facts, err := n.ExtractFacts(doc)
	require.NoError(t, err)
	require.NotEmpty(t, facts)
	assert.Equal(t, "FY2024", facts[0].Year)
}

func TestExtractFacts_NonNumericCell(t *testing.T) {
	doc := incomeTableDoc()
	doc.Tables[0].Cells[3].Content = "n/a"

	n := NewNormalizer()
	facts, err := n.ExtractFacts(doc)
	require.NoError(t, err)
	require.Len(t, facts, 2)
	assert.Nil(t, facts[0].Value)
}

func TestClassify(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		text string
		want core.StatementType
	}{
		{"Consolidated Statements of Income", core.StatementIncome},
		{"Results of Operations", core.StatementIncome},
		{"Consolidated Balance Sheets", core.StatementBalanceSheet},
		{"Statements of Financial Position", core.StatementBalanceSheet},
		{"Consolidated Statements of Cash Flows", core.StatementCashFlow},
		{"Statements of Stockholders' Equity", core.StatementOther},
		{"Notes to Financial Statements", core.StatementNotes},
		{"Employee headcount by region", core.StatementUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, rules.Classify(tt.text), tt.text)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1,000", 1000, true},
		{"$2,345.67", 2345.67, true},
		{"12.5%", 12.5, true},
		{"(400)", -400, true},
		{"-", 0, false},
		{"n/a", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseValue(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, tt.in)
		}
	}
}

func TestMetricName(t *testing.T) {
	assert.Equal(t, "TotalRevenueNet", metricName("Total revenue, net"))
	assert.Equal(t, "Revenue", metricName("Revenue"))
	assert.Equal(t, "", metricName("  "))
}

func TestGroupByYear(t *testing.T) {
	v := 1.0
	facts := []core.FactRow{
		{ID: "a", Year: "FY2024", Metric: "Revenue", Value: &v, SourceFile: "a.pdf"},
		{ID: "b", Year: "FY2023", Metric: "Revenue", Value: &v, SourceFile: "a.pdf"},
		{ID: "c", Year: "FY2024", Metric: "Costs", Value: &v, SourceFile: "a.pdf"},
		{ID: "d", Metric: "Costs", Value: &v, SourceFile: "a.pdf"},
	}

	groups := GroupByYear(facts)
	assert.Len(t, groups["FY2024"], 2)
	assert.Len(t, groups["FY2023"], 1)
	assert.Len(t, groups["FY0000"], 1)
}
