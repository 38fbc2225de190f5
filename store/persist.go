package store

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/phamtrung99/ragdex/types"
)

// Artifact pair suffixes, keyed by document base name inside the index
// directory.
const (
	indexSuffix    = "__index"
	metadataSuffix = "__metadata"
)

// indexMagic identifies the binary vector artifact format.
var indexMagic = [4]byte{'F', 'I', 'P', '1'}

// Store persists document indexes as an artifact pair per base name. Writes
// go through a temp file and rename per artifact, vectors first and metadata
// last, so a torn write is detectable at load time rather than silently
// mixing generations.
type Store struct {
	dir string
}

// NewStore opens (and creates if needed) the index directory.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create index directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// IndexPath returns the vector artifact path for a base name.
func (s *Store) IndexPath(name string) string {
	return filepath.Join(s.dir, name+indexSuffix)
}

// MetadataPath returns the metadata artifact path for a base name.
func (s *Store) MetadataPath(name string) string {
	return filepath.Join(s.dir, name+metadataSuffix)
}

// Save overwrites the artifact pair for a base name with the given index.
func (s *Store) Save(name string, idx *DocumentIndex) error {
	if err := s.writeVectors(s.IndexPath(name), idx); err != nil {
		return err
	}
	return s.writeMetadata(s.MetadataPath(name), idx)
}

// Load reads the artifact pair for a base name. A missing or unreadable
// artifact yields types.ErrNotFound; an undecodable pair, or one whose slot
// set disagrees with the stored vectors, yields types.ErrCorruptData.
func (s *Store) Load(name string) (*DocumentIndex, error) {
	idx, err := s.readVectors(s.IndexPath(name))
	if err != nil {
		return nil, err
	}
	records, err := s.readMetadata(s.MetadataPath(name))
	if err != nil {
		return nil, err
	}
	if err := attachRecords(idx, records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrCorruptData, name, err)
	}
	return idx, nil
}

// List returns the base names holding a complete artifact pair.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read index directory: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), indexSuffix) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), indexSuffix)
		if _, err := os.Stat(s.MetadataPath(name)); err == nil {
			names = append(names, name)
		}
	}
	return names, nil
}

func (s *Store) writeVectors(path string, idx *DocumentIndex) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create vector artifact: %w", err)
	}
	w := bufio.NewWriter(f)
	err = func() error {
		if _, err := w.Write(indexMagic[:]); err != nil {
			return err
		}
		header := []uint32{uint32(idx.dimension), uint32(len(idx.vectors))}
		if err := binary.Write(w, binary.LittleEndian, header); err != nil {
			return err
		}
		for _, vec := range idx.vectors {
			if err := binary.Write(w, binary.LittleEndian, vec); err != nil {
				return err
			}
		}
		return w.Flush()
	}()
	if err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to write vector artifact: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to close vector artifact: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to commit vector artifact: %w", err)
	}
	return nil
}

func (s *Store) writeMetadata(path string, idx *DocumentIndex) error {
	data, err := json.MarshalIndent(idx.records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode metadata artifact: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write metadata artifact: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to commit metadata artifact: %w", err)
	}
	return nil
}

func (s *Store) readVectors(path string) (*DocumentIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", types.ErrNotFound, path)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("%w: %s: truncated header", types.ErrCorruptData, path)
	}
	if magic != indexMagic {
		return nil, fmt.Errorf("%w: %s: bad magic", types.ErrCorruptData, path)
	}
	var header [2]uint32
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("%w: %s: truncated header", types.ErrCorruptData, path)
	}
	dimension, count := int(header[0]), int(header[1])
	if dimension < 0 || count < 0 || (count > 0 && dimension == 0) {
		return nil, fmt.Errorf("%w: %s: invalid header", types.ErrCorruptData, path)
	}
	idx := &DocumentIndex{dimension: dimension}
	for i := 0; i < count; i++ {
		vec := make([]float32, dimension)
		if err := binary.Read(r, binary.LittleEndian, vec); err != nil {
			return nil, fmt.Errorf("%w: %s: truncated vectors", types.ErrCorruptData, path)
		}
		idx.vectors = append(idx.vectors, vec)
	}
	return idx, nil
}

func (s *Store) readMetadata(path string) (map[string]ChunkRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", types.ErrNotFound, path)
	}
	var records map[string]ChunkRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrCorruptData, path, err)
	}
	return records, nil
}

// attachRecords joins the metadata map onto a vector-only index, checking
// the slot invariant: one record per vector, slots a permutation of 0..N-1.
func attachRecords(idx *DocumentIndex, records map[string]ChunkRecord) error {
	if len(records) != len(idx.vectors) {
		return fmt.Errorf("metadata holds %d records for %d vectors", len(records), len(idx.vectors))
	}
	slotIDs := make([]string, len(idx.vectors))
	for id, rec := range records {
		if rec.Slot < 0 || rec.Slot >= len(slotIDs) {
			return fmt.Errorf("record %q slot %d out of range", id, rec.Slot)
		}
		if slotIDs[rec.Slot] != "" {
			return fmt.Errorf("slot %d claimed by %q and %q", rec.Slot, slotIDs[rec.Slot], id)
		}
		slotIDs[rec.Slot] = id
	}
	idx.records = records
	idx.slotIDs = slotIDs
	return nil
}
