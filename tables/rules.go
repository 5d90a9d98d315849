package tables

import (
	"regexp"

	"github.com/arkestra/reportpipe/core"
)

// Rule maps a header phrasing pattern to a statement type.
type Rule struct {
	Pattern   *regexp.Regexp
	Statement core.StatementType
}

// RuleSet classifies table headers into statement types.
// Rules are checked in order; the first match wins.
type RuleSet []Rule

// Classify returns the statement type for a header text, or
// StatementUnknown when no rule matches.
func (rs RuleSet) Classify(text string) core.StatementType {
	for _, rule := range rs {
		if rule.Pattern.MatchString(text) {
			return rule.Statement
		}
	}
	return core.StatementUnknown
}

// DefaultRules returns the standard annual-report statement rules.
// Equity statements are grouped under Other because their facts are
// rarely queried as standalone metrics.
func DefaultRules() RuleSet {
	return RuleSet{
		{regexp.MustCompile(`(?i)income|operations`), core.StatementIncome},
		{regexp.MustCompile(`(?i)balance|financial position`), core.StatementBalanceSheet},
		{regexp.MustCompile(`(?i)cash`), core.StatementCashFlow},
		{regexp.MustCompile(`(?i)equity`), core.StatementOther},
		{regexp.MustCompile(`(?i)notes`), core.StatementNotes},
	}
}
