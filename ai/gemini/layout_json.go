// Copyright 2026 Arkestra Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package gemini

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/arkestra/reportpipe/core"
)

// layoutPayload mirrors the JSON structure the model is prompted to emit.
type layoutPayload struct {
	Pages  []pagePayload  `json:"pages"`
	Tables []tablePayload `json:"tables"`
}

type pagePayload struct {
	PageNumber int     `json:"pageNumber"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Unit       string  `json:"unit"`
	Content    string  `json:"content"`
}

type tablePayload struct {
	RowCount    int           `json:"rowCount"`
	ColumnCount int           `json:"columnCount"`
	PageNumber  int           `json:"pageNumber"`
	Cells       []cellPayload `json:"cells"`
}

type cellPayload struct {
	Content     string `json:"content"`
	RowIndex    int    `json:"rowIndex"`
	ColumnIndex int    `json:"columnIndex"`
	RowSpan     int    `json:"rowSpan"`
	ColumnSpan  int    `json:"columnSpan"`
	Kind        string `json:"kind"`
}

// stripCodeFence removes a surrounding markdown code fence that models emit
// despite being told not to.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// parseLayout converts a model response into a layout document for blobName.
// It fails on malformed JSON; the caller aborts the stage in that case.
func parseLayout(blobName, response string) (*core.LayoutDocument, error) {
	var payload layoutPayload
	if err := json.Unmarshal([]byte(stripCodeFence(response)), &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if len(payload.Pages) == 0 {
		return nil, fmt.Errorf("%w: no pages", ErrMalformedResponse)
	}

	doc := core.NewLayoutDocument(blobName)

	for _, page := range payload.Pages {
		doc.Pages = append(doc.Pages, core.Page{
			Number:  page.PageNumber,
			Width:   page.Width,
			Height:  page.Height,
			Unit:    page.Unit,
			Content: page.Content,
		})
	}

	for i, table := range payload.Tables {
		cells := make([]core.TableCell, 0, len(table.Cells))
		for _, cell := range table.Cells {
			rowSpan := cell.RowSpan
			if rowSpan < 1 {
				rowSpan = 1
			}
			colSpan := cell.ColumnSpan
			if colSpan < 1 {
				colSpan = 1
			}
			cells = append(cells, core.TableCell{
				Content:    core.NormalizeWhitespace(cell.Content),
				Row:        cell.RowIndex,
				Column:     cell.ColumnIndex,
				RowSpan:    rowSpan,
				ColumnSpan: colSpan,
				Kind:       cell.Kind,
			})
		}
		doc.Tables = append(doc.Tables, core.Table{
			ID:          fmt.Sprintf("%03d", i),
			RowCount:    table.RowCount,
			ColumnCount: table.ColumnCount,
			PageNumber:  table.PageNumber,
			Cells:       cells,
		})
	}

	doc.PageCount = len(doc.Pages)
	doc.TableCount = len(doc.Tables)
	return doc, nil
}
