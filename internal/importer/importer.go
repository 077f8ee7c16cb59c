// Package importer merges events from other formats into the store. Unlike
// snapshot import it appends: existing events are kept and duplicates are
// skipped.
package importer

import (
	"fmt"
	"io"
	"strings"

	"dayssince/internal/duration"
	"dayssince/internal/log"
	"dayssince/internal/storage"
)

// ImportResult contains statistics about an import operation.
type ImportResult struct {
	Imported int      // events added
	Skipped  int      // events already present (same name and date)
	Errors   []string // rows or entries that could not be imported
}

// Importer reads events in one external format.
type Importer interface {
	// Import reads events from r and adds them to store.
	Import(r io.Reader, store *storage.Store) (*ImportResult, error)

	// Preview reads events from r without importing them. Entries that
	// cannot be read are left out.
	Preview(r io.Reader) ([]storage.EventInput, error)

	// Name returns the format name used on the command line.
	Name() string
}

// GetImporter returns the importer for format, or nil if unknown.
func GetImporter(format string) Importer {
	switch strings.ToLower(format) {
	case "ics", "ical":
		return &ICSImporter{}
	case "csv":
		return &CSVImporter{}
	default:
		return nil
	}
}

// SupportedFormats returns the list of supported import formats.
func SupportedFormats() []string {
	return []string{"ics", "csv"}
}

// parsed is what a format parser hands to addAll.
type parsed struct {
	inputs []storage.EventInput
	errors []string
}

// addAll appends inputs to store, skipping events whose name and date
// match an existing one.
func addAll(p parsed, store *storage.Store, format string) *ImportResult {
	result := &ImportResult{Errors: append([]string(nil), p.errors...)}

	type key struct {
		name string
		date duration.Date
	}
	seen := make(map[key]bool)
	for _, ev := range store.Events() {
		seen[key{strings.ToLower(ev.Name), ev.Date}] = true
	}

	for _, in := range p.inputs {
		k := key{strings.ToLower(strings.TrimSpace(in.Name)), in.Date}
		if seen[k] {
			result.Skipped++
			continue
		}
		if _, err := store.AddEvent(in); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", in.Name, err))
			continue
		}
		seen[k] = true
		result.Imported++
	}

	log.Info("merge import finished", "format", format,
		"imported", result.Imported, "skipped", result.Skipped, "errors", len(result.Errors))
	return result
}
