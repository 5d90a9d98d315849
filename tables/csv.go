package tables

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/arkestra/reportpipe/core"
)

// factHeader is the fixed column order of fact CSV artifacts.
var factHeader = []string{
	"id", "year", "statementType", "section", "metric",
	"value", "unit", "sourceFile", "page",
}

// WriteFactsCSV writes facts to a CSV file with the fixed fact header,
// replacing any existing file.
func WriteFactsCSV(path string, facts []core.FactRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(factHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i := range facts {
		fact := &facts[i]
		if err := fact.Validate(); err != nil {
			return err
		}

		value := ""
		if fact.Value != nil {
			value = strconv.FormatFloat(*fact.Value, 'f', -1, 64)
		}
		page := ""
		if fact.Page > 0 {
			page = strconv.Itoa(fact.Page)
		}

		record := []string{
			fact.ID,
			fact.Year,
			string(fact.StatementType),
			fact.Section,
			fact.Metric,
			value,
			fact.Unit,
			fact.SourceFile,
			page,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing fact %s: %w", fact.ID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return f.Close()
}

// ReadFactsCSV reads a fact CSV artifact back into fact rows.
func ReadFactsCSV(path string) ([]core.FactRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrBadCSVHeader, path)
	}
	if strings.Join(records[0], ",") != strings.Join(factHeader, ",") {
		return nil, fmt.Errorf("%w in %s", ErrBadCSVHeader, path)
	}

	facts := make([]core.FactRow, 0, len(records)-1)
	for _, record := range records[1:] {
		fact := core.FactRow{
			ID:            record[0],
			Year:          record[1],
			StatementType: core.StatementType(record[2]),
			Section:       record[3],
			Metric:        record[4],
			Unit:          record[6],
			SourceFile:    record[7],
		}
		if record[5] != "" {
			v, err := strconv.ParseFloat(record[5], 64)
			if err != nil {
				return nil, fmt.Errorf("fact %s: bad value %q: %w", fact.ID, record[5], err)
			}
			fact.Value = &v
		}
		if record[8] != "" {
			page, err := strconv.Atoi(record[8])
			if err != nil {
				return nil, fmt.Errorf("fact %s: bad page %q: %w", fact.ID, record[8], err)
			}
			fact.Page = page
		}
		facts = append(facts, fact)
	}
	return facts, nil
}
