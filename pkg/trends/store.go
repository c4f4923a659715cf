package trends

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/your-org/enhanced-html-reporter/pkg/logger"
	"github.com/your-org/enhanced-html-reporter/pkg/models"
)

// MaxEntries bounds the trend log; oldest entries are evicted first.
const MaxEntries = 30

// Store is the append-only bounded log of historical run summaries. Each
// run re-reads and fully rewrites the file; concurrent runs against the
// same path are last-writer-wins.
type Store struct {
	path string
}

// NewStore creates a trend store backed by the JSON file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the current trend log. A missing or unreadable file restarts
// history from empty; that is never an error.
func (s *Store) Load() []models.TrendEntry {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Infof("Could not read trend file %s, starting fresh: %v", s.path, err)
		}
		return []models.TrendEntry{}
	}

	var entries []models.TrendEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		logger.Infof("Trend file %s is not valid JSON, starting fresh: %v", s.path, err)
		return []models.TrendEntry{}
	}

	return entries
}

// Append adds one run summary, truncates to the most recent MaxEntries,
// and rewrites the file. Write failures are fatal to report generation.
func (s *Store) Append(entry models.TrendEntry) ([]models.TrendEntry, error) {
	entries := s.Load()
	entries = append(entries, entry)

	if len(entries) > MaxEntries {
		entries = entries[len(entries)-MaxEntries:]
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create trend directory: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal trend entries: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write trend file: %w", err)
	}

	return entries, nil
}
