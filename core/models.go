package core

import (
	"encoding/binary"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// StatementType classifies which financial statement a table belongs to.
type StatementType string

const (
	StatementIncome       StatementType = "Income"
	StatementBalanceSheet StatementType = "BalanceSheet"
	StatementCashFlow     StatementType = "CashFlow"
	StatementNotes        StatementType = "Notes"
	StatementOther        StatementType = "Other"
	// StatementUnknown tags tables whose headers match no known label.
	// Such tables still produce valid fact rows.
	StatementUnknown StatementType = "Unknown"
)

var fiscalYearPattern = regexp.MustCompile(`(?i)_fy(\d{4})`)

// FiscalYearFromFilename extracts a fiscal year label like "FY2024" from an
// annual-report filename such as "Company_FY2024.pdf".
// Returns an empty string when the filename carries no fiscal-year marker.
func FiscalYearFromFilename(filename string) string {
	match := fiscalYearPattern.FindStringSubmatch(filename)
	if match == nil {
		return ""
	}
	return "FY" + match[1]
}

// HashContent generates a deterministic 64-bit hash of raw content using BLAKE2b.
// Identical content always produces the identical hash, which is what lets
// re-runs of the extractor skip blobs that have not changed.
func HashContent(data []byte) uint64 {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write(data)
	sum := h.Sum(nil)
	return binary.LittleEndian.Uint64(sum)
}

// Page holds the extracted narrative text of a single PDF page.
type Page struct {
	Number  int     `json:"pageNumber"`
	Width   float64 `json:"width,omitempty"`
	Height  float64 `json:"height,omitempty"`
	Unit    string  `json:"unit,omitempty"`
	Content string  `json:"content"`
}

// TableCell is a single cell of an extracted table. Spanned cells cover
// RowSpan x ColumnSpan grid positions starting at (Row, Column).
type TableCell struct {
	Content    string `json:"content"`
	Row        int    `json:"rowIndex"`
	Column     int    `json:"columnIndex"`
	RowSpan    int    `json:"rowSpan"`
	ColumnSpan int    `json:"columnSpan"`
	Kind       string `json:"kind,omitempty"`
}

// Table is an extracted table with its cell inventory.
type Table struct {
	ID          string      `json:"id"`
	RowCount    int         `json:"rowCount"`
	ColumnCount int         `json:"columnCount"`
	PageNumber  int         `json:"pageNumber,omitempty"`
	Cells       []TableCell `json:"cells"`
}

// LayoutDocument is the structured layout extracted from one source PDF.
// It is produced once per document and cached as a layout_<stem>.json artifact.
type LayoutDocument struct {
	BlobName   string  `json:"blobName"`
	SourceFile string  `json:"sourceFile"`
	Year       string  `json:"year,omitempty"`
	PageCount  int     `json:"pageCount"`
	TableCount int     `json:"tableCount"`
	Pages      []Page  `json:"pages"`
	Tables     []Table `json:"tables"`
}

// NewLayoutDocument builds an empty layout document for a blob, deriving the
// source filename and fiscal year from the blob name.
func NewLayoutDocument(blobName string) *LayoutDocument {
	sourceFile := path.Base(blobName)
	return &LayoutDocument{
		BlobName:   blobName,
		SourceFile: sourceFile,
		Year:       FiscalYearFromFilename(sourceFile),
	}
}

// Stem returns the source filename without its extension, used to name
// per-document artifacts.
func (d *LayoutDocument) Stem() string {
	return strings.TrimSuffix(d.SourceFile, path.Ext(d.SourceFile))
}

// FactRow is a single long-format financial fact: one metric for one period.
// Value is nil when the source cell did not parse as a number.
type FactRow struct {
	ID            string        `json:"id"`
	Year          string        `json:"year"`
	StatementType StatementType `json:"statementType"`
	Section       string        `json:"section,omitempty"`
	Metric        string        `json:"metric"`
	Value         *float64      `json:"value"`
	Unit          string        `json:"unit,omitempty"`
	SourceFile    string        `json:"sourceFile"`
	Page          int           `json:"page,omitempty"`
}

// Chunk is a bounded, overlapping window of narrative text sized for
// retrieval. The ID is derived from the source document and the chunk's
// position, so re-processing the same document reproduces the same IDs.
type Chunk struct {
	ID         string `json:"id"`
	Content    string `json:"content"`
	Year       string `json:"year,omitempty"`
	Section    string `json:"section"`
	SourceFile string `json:"sourceFile"`
	PageStart  int    `json:"pageStart"`
	PageEnd    int    `json:"pageEnd"`
	TokenCount int    `json:"tokenCount,omitempty"`
}

// BlobState records what the extractor last saw for one blob. It is kept in
// the run manifest so unchanged blobs are not re-analyzed.
type BlobState struct {
	BlobName    string
	ContentHash uint64
	ProcessedAt time.Time
	PageCount   int
	TableCount  int
}
