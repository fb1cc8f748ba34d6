package cache

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"
)

// ExportVersion is written into every export document.
const ExportVersion = "1.0"

// ExportFormat represents the JSON structure for cache export/import.
type ExportFormat struct {
	Version    string            `json:"version"`
	ExportedAt string            `json:"exported_at"`
	Entries    []ExportEntry     `json:"entries"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// ExportEntry represents a single cache entry.
type ExportEntry struct {
	Key         string `json:"key"`
	Translation string `json:"translation"`
	Timestamp   int64  `json:"timestamp"`
}

// Exporter provides cache export functionality.
type Exporter struct {
	cache Snapshotter
}

// NewExporter creates a new cache exporter.
func NewExporter(cache Snapshotter) *Exporter {
	return &Exporter{cache: cache}
}

// Export writes the cache contents to a writer in JSON format, newest entries first.
func (e *Exporter) Export(w io.Writer, metadata map[string]string) error {
	snapshot, err := e.cache.Snapshot()
	if err != nil {
		return fmt.Errorf("getting cache entries: %w", err)
	}

	entries := make([]ExportEntry, 0, len(snapshot))
	for key, entry := range snapshot {
		entries = append(entries, ExportEntry{
			Key:         key,
			Translation: entry.Translation,
			Timestamp:   entry.Timestamp,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Timestamp != entries[j].Timestamp {
			return entries[i].Timestamp > entries[j].Timestamp
		}
		return entries[i].Key < entries[j].Key
	})

	export := ExportFormat{
		Version:    ExportVersion,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Entries:    entries,
		Metadata:   metadata,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(export); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}

	return nil
}

// ExportToFile exports the cache to a file.
func (e *Exporter) ExportToFile(path string, metadata map[string]string) error {
	f, err := os.Create(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	return e.Export(f, metadata)
}

// Importer provides cache import functionality.
type Importer struct {
	cache Restorer
}

// NewImporter creates a new cache importer.
func NewImporter(cache Restorer) *Importer {
	return &Importer{cache: cache}
}

// Import reads an export document and merges its entries into the cache.
// Entries keep their exported timestamps, so the capacity rule still keeps the newest.
func (i *Importer) Import(r io.Reader) (*ImportResult, error) {
	var export ExportFormat
	if err := json.NewDecoder(r).Decode(&export); err != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}

	result := &ImportResult{
		Version:  export.Version,
		Metadata: export.Metadata,
	}

	entries := make(map[string]Entry, len(export.Entries))
	for _, entry := range export.Entries {
		if entry.Key == "" {
			result.Failed++
			continue
		}
		entries[entry.Key] = Entry{Translation: entry.Translation, Timestamp: entry.Timestamp}
	}

	if err := i.cache.Restore(entries); err != nil {
		return nil, fmt.Errorf("restoring entries: %w", err)
	}
	result.Imported = len(entries)

	return result, nil
}

// ImportFromFile imports cache entries from a file.
func (i *Importer) ImportFromFile(path string) (*ImportResult, error) {
	f, err := os.Open(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return i.Import(f)
}

// ImportResult contains statistics about the import operation.
type ImportResult struct {
	Version  string
	Metadata map[string]string
	Imported int
	Failed   int
}
