package tables

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkestra/reportpipe/core"
)

func TestFactsCSVRoundTrip(t *testing.T) {
	revenue := 1000.0
	facts := []core.FactRow{
		{
			ID:            "a_FY2024.pdf_t000_r000_c001",
			Year:          "FY2024",
			StatementType: core.StatementIncome,
			Section:       "Financial Statements",
			Metric:        "Revenue",
			Value:         &revenue,
			Unit:          "$",
			SourceFile:    "a_FY2024.pdf",
			Page:          12,
		},
		{
			ID:            "a_FY2024.pdf_t000_r001_c001",
			Year:          "FY2024",
			StatementType: core.StatementUnknown,
			Metric:        "Backlog",
			Value:         nil,
			SourceFile:    "a_FY2024.pdf",
		},
	}

	path := filepath.Join(t.TempDir(), "facts_FY2024.csv")
	require.NoError(t, WriteFactsCSV(path, facts))

	got, err := ReadFactsCSV(path)
	require.NoError(t, err)
	assert.Equal(t, facts, got)
}

func TestWriteFactsCSV_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "facts.csv")
	err := WriteFactsCSV(path, []core.FactRow{{ID: "x"}})
	assert.ErrorIs(t, err, core.ErrInvalidFactRow)
}

func TestReadFactsCSV_BadHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "facts.csv")
	require.NoError(t, os.WriteFile(path, []byte("foo,bar\n"), 0o644))

	_, err := ReadFactsCSV(path)
	assert.ErrorIs(t, err, ErrBadCSVHeader)
}
