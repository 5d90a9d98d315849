package gemini

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `{
  "pages": [
    {"pageNumber": 1, "width": 8.5, "height": 11, "unit": "inch", "content": "Item 7. Management's Discussion"},
    {"pageNumber": 2, "content": "Risk Factors"}
  ],
  "tables": [
    {
      "rowCount": 2,
      "columnCount": 2,
      "pageNumber": 2,
      "cells": [
        {"content": "Revenue", "rowIndex": 0, "columnIndex": 0},
        {"content": "1,000", "rowIndex": 0, "columnIndex": 1, "rowSpan": 1, "columnSpan": 1}
      ]
    }
  ]
}`

func TestParseLayout(t *testing.T) {
	doc, err := parseLayout("reports/Company_FY2024.pdf", sampleResponse)
	require.NoError(t, err)

	assert.Equal(t, "Company_FY2024.pdf", doc.SourceFile)
	assert.Equal(t, "FY2024", doc.Year)
	assert.Equal(t, 2, doc.PageCount)
	assert.Equal(t, 1, doc.TableCount)
	require.NoError(t, doc.Validate())

	table := doc.Tables[0]
	assert.Equal(t, "000", table.ID)
	assert.Equal(t, 2, table.PageNumber)

	// Missing spans default to 1 so grid reconstruction never zero-fills.
	assert.Equal(t, 1, table.Cells[0].RowSpan)
	assert.Equal(t, 1, table.Cells[0].ColumnSpan)
}

func TestParseLayout_CodeFenced(t *testing.T) {
	fenced := "```json\n" + sampleResponse + "\n```"

	doc, err := parseLayout("Company_FY2024.pdf", fenced)
	require.NoError(t, err)
	assert.Equal(t, 2, doc.PageCount)
}

func TestParseLayout_Malformed(t *testing.T) {
	_, err := parseLayout("Company_FY2024.pdf", "not json at all")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedResponse))
}

func TestParseLayout_NoPages(t *testing.T) {
	_, err := parseLayout("Company_FY2024.pdf", `{"pages": [], "tables": []}`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedResponse))
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence(`{"a":1}`))
}
