package artifact

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arkestra/reportpipe/core"
)

// NarrativeFile is the name of the chunk artifact within a Dir.
const NarrativeFile = "narrative.jsonl"

// Dir is an output directory holding pipeline artifacts.
type Dir struct {
	path string
}

// NewDir creates the directory if needed and returns a handle to it.
func NewDir(path string) (*Dir, error) {
	if path == "" {
		return nil, fmt.Errorf("artifact directory path required")
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("creating artifact directory: %w", err)
	}
	return &Dir{path: path}, nil
}

// Path returns the root path of the directory.
func (d *Dir) Path() string {
	return d.path
}

// LayoutPath returns the layout artifact path for a document stem.
func (d *Dir) LayoutPath(stem string) string {
	return filepath.Join(d.path, "layout_"+stem+".json")
}

// SaveLayout writes the layout document as indented JSON.
func (d *Dir) SaveLayout(doc *core.LayoutDocument) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding layout for %s: %w", doc.SourceFile, err)
	}
	path := d.LayoutPath(doc.Stem())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// LoadLayouts reads every layout artifact in the directory, sorted by
// file name so runs are deterministic.
func (d *Dir) LoadLayouts() ([]*core.LayoutDocument, error) {
	paths, err := filepath.Glob(filepath.Join(d.path, "layout_*.json"))
	if err != nil {
		return nil, fmt.Errorf("globbing layouts: %w", err)
	}
	sort.Strings(paths)

	docs := make([]*core.LayoutDocument, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var doc core.LayoutDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
		if err := doc.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		docs = append(docs, &doc)
	}
	return docs, nil
}

// NarrativePath returns the chunk artifact path.
func (d *Dir) NarrativePath() string {
	return filepath.Join(d.path, NarrativeFile)
}

// WriteChunks writes chunks as one JSON object per line, replacing any
// existing narrative artifact.
func (d *Dir) WriteChunks(chunks []core.Chunk) error {
	f, err := os.Create(d.NarrativePath())
	if err != nil {
		return fmt.Errorf("creating narrative artifact: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for i := range chunks {
		if err := chunks[i].Validate(); err != nil {
			return err
		}
		if err := enc.Encode(&chunks[i]); err != nil {
			return fmt.Errorf("encoding chunk %s: %w", chunks[i].ID, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing narrative artifact: %w", err)
	}
	return f.Close()
}

// ReadChunks reads the narrative artifact back.
func (d *Dir) ReadChunks() ([]core.Chunk, error) {
	f, err := os.Open(d.NarrativePath())
	if err != nil {
		return nil, fmt.Errorf("opening narrative artifact: %w", err)
	}
	defer f.Close()

	var chunks []core.Chunk
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var c core.Chunk
		if err := json.Unmarshal([]byte(line), &c); err != nil {
			return nil, fmt.Errorf("decoding chunk line: %w", err)
		}
		chunks = append(chunks, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning narrative artifact: %w", err)
	}
	return chunks, nil
}

// FactsPath returns the fact CSV path for a fiscal year label like "FY2024".
func (d *Dir) FactsPath(year string) string {
	return filepath.Join(d.path, "facts_"+year+".csv")
}

// FactsPaths returns all fact CSV paths in the directory, sorted.
func (d *Dir) FactsPaths() ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(d.path, "facts_*.csv"))
	if err != nil {
		return nil, fmt.Errorf("globbing facts: %w", err)
	}
	sort.Strings(paths)
	return paths, nil
}
