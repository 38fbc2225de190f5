package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/phamtrung99/ragdex/types"
)

// Default chunking parameters recorded for every PDF on first run.
const (
	DefaultChunkSize    = 512
	DefaultChunkOverlap = 50
)

// StatsService persists the chunk-size/overlap configuration last used per
// document, in one JSON file keyed by "{name}.pdf". Entries are created
// lazily with defaults, updated on every re-index and never deleted.
type StatsService struct {
	path   string
	pdfDir string
	mu     sync.Mutex
}

func NewStatsService(path, pdfDir string) *StatsService {
	return &StatsService{path: path, pdfDir: pdfDir}
}

// Load returns the stats map, creating the file with default entries for
// every PDF in the source directory when it does not exist yet.
func (s *StatsService) Load() (map[string]types.ChunkStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// Get returns the recorded stats for a "{name}.pdf" filename, falling back
// to the defaults for files indexed before the stats file existed.
func (s *StatsService) Get(fileName string) (types.ChunkStats, error) {
	stats, err := s.Load()
	if err != nil {
		return types.ChunkStats{}, err
	}
	if entry, ok := stats[fileName]; ok {
		return entry, nil
	}
	return types.ChunkStats{Chunk: DefaultChunkSize, Overlap: DefaultChunkOverlap}, nil
}

// Set records the parameters used for one file and rewrites the whole stats
// file.
func (s *StatsService) Set(fileName string, entry types.ChunkStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats, err := s.loadLocked()
	if err != nil {
		return err
	}
	stats[fileName] = entry
	return s.writeLocked(stats)
}

func (s *StatsService) loadLocked() (map[string]types.ChunkStats, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		stats, seedErr := s.seedDefaults()
		if seedErr != nil {
			return nil, seedErr
		}
		return stats, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read stats file: %w", err)
	}
	stats := make(map[string]types.ChunkStats)
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("failed to decode stats file: %w", err)
	}
	return stats, nil
}

// seedDefaults scans the PDF directory and writes a fresh stats file holding
// the default parameters for every PDF found.
func (s *StatsService) seedDefaults() (map[string]types.ChunkStats, error) {
	stats := make(map[string]types.ChunkStats)
	entries, err := os.ReadDir(s.pdfDir)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to scan pdf directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			stats[entry.Name()] = types.ChunkStats{Chunk: DefaultChunkSize, Overlap: DefaultChunkOverlap}
		}
	}
	if err := s.writeLocked(stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// writeLocked rewrites the stats file, human readable: 2-space indent and
// no HTML escaping so non-ASCII filenames survive as written.
func (s *StatsService) writeLocked(stats map[string]types.ChunkStats) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(stats); err != nil {
		return fmt.Errorf("failed to encode stats: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create stats directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write stats file: %w", err)
	}
	return nil
}
