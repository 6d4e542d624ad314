package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/google/renameio/v2"

	"clipshelf/internal/textutil"
)

// jsonRecord is the interchange form used by the original data.json files:
// a flat object with path, tags, and description.
type jsonRecord struct {
	Path        string   `json:"path"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
}

// ImportResult reports the outcome of a JSON import.
type ImportResult struct {
	Imported int
	Skipped  int
}

// ImportJSON reads a data.json document (a JSON array of record objects)
// and inserts the usable entries. Entries that are not objects, or whose
// path is empty after cleaning, are skipped rather than failing the import.
func (s *Store) ImportJSON(ctx context.Context, r io.Reader) (ImportResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("read import: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return ImportResult{}, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return ImportResult{}, fmt.Errorf("parse import: expected a JSON array of records: %w", err)
	}

	var result ImportResult
	for _, element := range raw {
		var entry struct {
			Path        string          `json:"path"`
			Tags        json.RawMessage `json:"tags"`
			Description string          `json:"description"`
		}
		if err := json.Unmarshal(element, &entry); err != nil {
			result.Skipped++
			continue
		}
		// A tags field of the wrong shape degrades to no tags, matching the
		// tolerance of the original data.json loader.
		var tags []string
		if len(entry.Tags) > 0 {
			_ = json.Unmarshal(entry.Tags, &tags)
		}
		path := textutil.CleanPath(entry.Path)
		if path == "" {
			result.Skipped++
			continue
		}
		if _, err := s.Add(ctx, path, tags, entry.Description); err != nil {
			return result, fmt.Errorf("import %q: %w", path, err)
		}
		result.Imported++
	}
	return result, nil
}

// ExportJSON writes the whole catalog to path in the data.json interchange
// format. The write is atomic: readers never observe a partial file.
func (s *Store) ExportJSON(ctx context.Context, path string) (int, error) {
	records, err := s.List(ctx, Filter{})
	if err != nil {
		return 0, err
	}

	out := make([]jsonRecord, 0, len(records))
	for _, record := range records {
		tags := record.Tags
		if tags == nil {
			tags = []string{}
		}
		out = append(out, jsonRecord{
			Path:        record.Path,
			Tags:        tags,
			Description: record.Description,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("encode export: %w", err)
	}
	data = append(data, '\n')

	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return 0, fmt.Errorf("write export: %w", err)
	}
	return len(out), nil
}
