package core

import "fmt"

// Validate checks that a layout document is well-formed enough for the
// downstream stages. Malformed layouts abort the run rather than being
// silently repaired.
func (d *LayoutDocument) Validate() error {
	if d.BlobName == "" {
		return fmt.Errorf("%w: %w", ErrInvalidLayout, ErrEmptyBlobName)
	}
	if d.SourceFile == "" {
		return fmt.Errorf("%w: %w", ErrInvalidLayout, ErrEmptySourceFile)
	}
	if d.PageCount != len(d.Pages) {
		return fmt.Errorf("%w: page count %d does not match %d pages", ErrInvalidLayout, d.PageCount, len(d.Pages))
	}
	if d.TableCount != len(d.Tables) {
		return fmt.Errorf("%w: table count %d does not match %d tables", ErrInvalidLayout, d.TableCount, len(d.Tables))
	}
	return nil
}

// Validate checks that a chunk is well-formed.
func (c *Chunk) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidChunk)
	}
	if c.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyChunkContent)
	}
	if c.SourceFile == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptySourceFile)
	}
	if c.PageEnd < c.PageStart {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrInvalidPageRange)
	}
	return nil
}

// Validate checks that a fact row is well-formed. A nil Value is legal: it
// means the source cell did not parse as a number.
func (f *FactRow) Validate() error {
	if f.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidFactRow)
	}
	if f.Metric == "" {
		return fmt.Errorf("%w: %w", ErrInvalidFactRow, ErrEmptyMetric)
	}
	if f.SourceFile == "" {
		return fmt.Errorf("%w: %w", ErrInvalidFactRow, ErrEmptySourceFile)
	}
	return nil
}
