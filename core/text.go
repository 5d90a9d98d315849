package core

import (
	"regexp"
	"strings"
)

// sectionPatterns maps annual-report phrasing to the section label the
// retrieval indexes facet on. Checked in order; first match wins.
var sectionPatterns = []struct {
	pattern *regexp.Regexp
	section string
}{
	{regexp.MustCompile(`(?i)management's discussion`), "MD&A"},
	{regexp.MustCompile(`(?i)item\s+7\.?`), "MD&A"},
	{regexp.MustCompile(`(?i)risk factors`), "Risk Factors"},
	{regexp.MustCompile(`(?i)financial statements`), "Financial Statements"},
	{regexp.MustCompile(`(?i)consolidated statements`), "Financial Statements"},
	{regexp.MustCompile(`(?i)notes to`), "Notes"},
	{regexp.MustCompile(`(?i)liquidity and capital resources`), "MD&A"},
	{regexp.MustCompile(`(?i)results of operations`), "MD&A"},
	{regexp.MustCompile(`(?i)outlook`), "Outlook"},
}

var headerFooterPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\s*page\s+\d+`),
	regexp.MustCompile(`^\s*\d+\s*$`),
}

var whitespaceRun = regexp.MustCompile(`\s+`)

var punctuationReplacer = strings.NewReplacer(
	"–", "-", // en dash
	"—", "-", // em dash
	"‘", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
)

// NormalizeWhitespace collapses whitespace runs and replaces typographic
// punctuation extracted from PDFs with plain ASCII equivalents.
func NormalizeWhitespace(text string) string {
	text = punctuationReplacer.Replace(text)
	text = whitespaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// RemoveHeaderFooterLines drops blank lines and running header/footer lines
// ("Page 12", bare page numbers) from extracted page text.
func RemoveHeaderFooterLines(lines []string) []string {
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if isHeaderFooter(trimmed) {
			continue
		}
		cleaned = append(cleaned, trimmed)
	}
	return cleaned
}

func isHeaderFooter(line string) bool {
	for _, pattern := range headerFooterPatterns {
		if pattern.MatchString(line) {
			return true
		}
	}
	return false
}

// DetectSection returns the report section implied by the text, or an empty
// string when no known section phrasing appears.
func DetectSection(text string) string {
	for _, sp := range sectionPatterns {
		if sp.pattern.MatchString(text) {
			return sp.section
		}
	}
	return ""
}

// SectionByPage maps every page number to its report section, carrying the
// last detected section forward across pages that name none. Pages before
// the first detected section map to an empty string.
func SectionByPage(doc *LayoutDocument) map[int]string {
	sections := make(map[int]string, len(doc.Pages))
	current := ""
	for _, page := range doc.Pages {
		if s := DetectSection(page.Content); s != "" {
			current = s
		}
		sections[page.Number] = current
	}
	return sections
}

// MajorityVote returns the most frequent non-empty value, or an empty string
// when every value is empty. Ties resolve to the value seen first.
func MajorityVote(values []string) string {
	counts := make(map[string]int, len(values))
	order := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}

	best := ""
	bestCount := 0
	for _, v := range order {
		if counts[v] > bestCount {
			best = v
			bestCount = counts[v]
		}
	}
	return best
}
