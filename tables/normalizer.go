package tables

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/arkestra/reportpipe/core"
)

var (
	yearInHeader = regexp.MustCompile(`(19|20)\d{2}`)
	wordSplitter = regexp.MustCompile(`[^a-zA-Z0-9]+`)
)

// Normalizer converts layout tables into long-format fact rows.
type Normalizer struct {
	rules  RuleSet
	logger *slog.Logger
}

// NormalizerOption configures a Normalizer.
type NormalizerOption func(*Normalizer)

// WithRules replaces the default statement classification rules.
func WithRules(rules RuleSet) NormalizerOption {
	return func(n *Normalizer) {
		n.rules = rules
	}
}

// WithLogger sets the logger for normalization progress.
func WithLogger(logger *slog.Logger) NormalizerOption {
	return func(n *Normalizer) {
		n.logger = logger
	}
}

// NewNormalizer creates a normalizer with the default rule set.
func NewNormalizer(opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{
		rules:  DefaultRules(),
		logger: slog.Default().With("component", "table-normalizer"),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// ExtractFacts converts every table of a layout document into fact rows.
// One data cell becomes one fact: the row label is the metric, the column
// header supplies the fiscal year. Tables that prune down to nothing are
// skipped with a log line rather than failing the document.
func (n *Normalizer) ExtractFacts(doc *core.LayoutDocument) ([]core.FactRow, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	pageSections := core.SectionByPage(doc)

	var facts []core.FactRow
	for t := range doc.Tables {
		table := &doc.Tables[t]

		grid, err := buildGrid(table)
		if err != nil {
			return nil, fmt.Errorf("%s table %s: %w", doc.SourceFile, table.ID, err)
		}
		header, body := splitHeader(grid)
		if len(header) < 2 || len(body) == 0 {
			n.logger.Debug("table too small after pruning, skipping",
				"source", doc.SourceFile, "table", table.ID)
			continue
		}

		statement := n.classifyTable(header, body)
		section := pageSections[table.PageNumber]
		if section == "" {
			section = "Financial Statements"
		}
		rowFacts := n.extractTableFacts(doc, t, table, header, body, statement, section)
		facts = append(facts, rowFacts...)
	}

	n.logger.Info("facts extracted",
		"source", doc.SourceFile, "tables", doc.TableCount, "facts", len(facts))
	return facts, nil
}

// classifyTable votes across header cells and row labels so one stray
// cell cannot misfile the whole table.
func (n *Normalizer) classifyTable(header []string, body [][]string) core.StatementType {
	votes := make([]string, 0, len(header)+len(body))
	for _, cell := range header {
		if st := n.rules.Classify(cell); st != core.StatementUnknown {
			votes = append(votes, string(st))
		}
	}
	for _, row := range body {
		if st := n.rules.Classify(row[0]); st != core.StatementUnknown {
			votes = append(votes, string(st))
		}
	}

	if winner := core.MajorityVote(votes); winner != "" {
		return core.StatementType(winner)
	}
	return core.StatementUnknown
}

func (n *Normalizer) extractTableFacts(doc *core.LayoutDocument, tableIndex int, table *core.Table,
	header []string, body [][]string, statement core.StatementType, section string) []core.FactRow {

	headerUnit := detectUnit(strings.Join(header, " "))

	var facts []core.FactRow
	for r, row := range body {
		metric := metricName(row[0])
		if metric == "" {
			continue
		}

		for c := 1; c < len(row); c++ {
			cell := strings.TrimSpace(row[c])
			if cell == "" {
				continue
			}

			year := yearFromHeader(header[c])
			if year == "" {
				year = doc.Year
			}

			var value *float64
			if v, ok := parseValue(cell); ok {
				value = &v
			}

			unit := detectUnit(cell)
			if unit == "" {
				unit = headerUnit
			}

			facts = append(facts, core.FactRow{
				ID:            fmt.Sprintf("%s_t%03d_r%03d_c%03d", doc.SourceFile, tableIndex, r, c),
				Year:          year,
				StatementType: statement,
				Section:       section,
				Metric:        metric,
				Value:         value,
				Unit:          unit,
				SourceFile:    doc.SourceFile,
				Page:          table.PageNumber,
			})
		}
	}
	return facts
}

// GroupByYear buckets facts by fiscal year label. Facts without a year
// are grouped under "FY0000" so they still land in an artifact instead
// of silently disappearing.
func GroupByYear(facts []core.FactRow) map[string][]core.FactRow {
	groups := make(map[string][]core.FactRow)
	for _, fact := range facts {
		year := fact.Year
		if year == "" {
			year = "FY0000"
		}
		groups[year] = append(groups[year], fact)
	}
	return groups
}

// metricName turns a row label into a CamelCase metric identifier.
// "Total revenue, net" becomes "TotalRevenueNet".
func metricName(label string) string {
	words := wordSplitter.Split(label, -1)
	var b strings.Builder
	for _, word := range words {
		if word == "" {
			continue
		}
		b.WriteString(strings.ToUpper(word[:1]))
		if len(word) > 1 {
			b.WriteString(word[1:])
		}
	}
	return b.String()
}

// yearFromHeader extracts a fiscal year label from a column header like
// "Year ended December 31, 2024".
func yearFromHeader(header string) string {
	if match := yearInHeader.FindString(header); match != "" {
		return "FY" + match
	}
	return ""
}

// parseValue parses a financial figure. Thousands separators and
// currency/percent symbols are stripped; parenthesized figures are
// negative, following standard accounting notation.
func parseValue(text string) (float64, bool) {
	s := strings.TrimSpace(text)
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	s = strings.NewReplacer(",", "", "$", "", "%", "", " ", "").Replace(s)
	if s == "" || s == "-" || s == "—" {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if negative {
		v = -v
	}
	return v, true
}

// detectUnit infers the unit from symbols present in the text.
func detectUnit(text string) string {
	switch {
	case strings.Contains(text, "%"):
		return "%"
	case strings.Contains(text, "$"):
		return "$"
	default:
		return ""
	}
}
