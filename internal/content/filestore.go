package content

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps one JSON document per collection under a directory.
// Writes go through a temp file and rename, so readers never observe a
// partial document.
type FileStore struct {
	dir string

	mu           sync.Mutex
	locks        map[string]*sync.Mutex
	fingerprints map[string]string
}

// NewFileStore creates dir if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Join(ErrStorage, err)
	}
	return &FileStore{
		dir:          dir,
		locks:        make(map[string]*sync.Mutex),
		fingerprints: make(map[string]string),
	}, nil
}

// Dir returns the data directory.
func (s *FileStore) Dir() string { return s.dir }

// Path returns the file backing collection.
func (s *FileStore) Path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

// Lock acquires the collection lock and returns its release func. Callers
// hold it across read-modify-write cycles.
func (s *FileStore) Lock(collection string) func() {
	s.mu.Lock()
	l, ok := s.locks[collection]
	if !ok {
		l = &sync.Mutex{}
		s.locks[collection] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// ReadList returns the items of a list collection. A missing file is an
// empty list.
func (s *FileStore) ReadList(ctx context.Context, collection string) ([]Item, error) {
	raw, err := s.read(ctx, collection)
	if err != nil || raw == nil {
		return []Item{}, err
	}
	var items []Item
	if err := decodeJSON(raw, &items); err != nil {
		return nil, errors.Join(ErrStorage, fmt.Errorf("decode %s: %w", collection, err))
	}
	if items == nil {
		items = []Item{}
	}
	for _, it := range items {
		it.dropReserved()
	}
	return items, nil
}

// ReadSingleton returns the singleton document, or nil when missing.
func (s *FileStore) ReadSingleton(ctx context.Context, collection string) (Item, error) {
	raw, err := s.read(ctx, collection)
	if err != nil || raw == nil {
		return nil, err
	}
	var it Item
	if err := decodeJSON(raw, &it); err != nil {
		return nil, errors.Join(ErrStorage, fmt.Errorf("decode %s: %w", collection, err))
	}
	it.dropReserved()
	return it, nil
}

// WriteList replaces the list collection file with items.
func (s *FileStore) WriteList(ctx context.Context, collection string, items []Item) error {
	if items == nil {
		items = []Item{}
	}
	return s.write(ctx, collection, items)
}

// WriteSingleton replaces the singleton document with it.
func (s *FileStore) WriteSingleton(ctx context.Context, collection string, it Item) error {
	return s.write(ctx, collection, it)
}

// Changed reports whether the file differs from what this store last
// wrote or synced.
func (s *FileStore) Changed(collection string) (bool, error) {
	sum, err := s.fingerprintFile(collection)
	if err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fingerprints[collection] != sum, nil
}

// MarkSynced records the current file content as known.
func (s *FileStore) MarkSynced(collection string) error {
	sum, err := s.fingerprintFile(collection)
	if err != nil {
		return err
	}
	s.remember(collection, sum)
	return nil
}

func (s *FileStore) read(ctx context.Context, collection string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(s.Path(collection))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Join(ErrStorage, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	return raw, nil
}

func (s *FileStore) write(ctx context.Context, collection string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Join(ErrStorage, err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(s.dir, "."+collection+"-*.tmp")
	if err != nil {
		return errors.Join(ErrStorage, err)
	}
	tmpName := tmp.Name()
	cleanup := func(cause error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errors.Join(ErrStorage, cause)
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errors.Join(ErrStorage, err)
	}
	if err := os.Rename(tmpName, s.Path(collection)); err != nil {
		_ = os.Remove(tmpName)
		return errors.Join(ErrStorage, err)
	}

	s.remember(collection, checksum(data))
	return nil
}

func (s *FileStore) fingerprintFile(collection string) (string, error) {
	raw, err := os.ReadFile(s.Path(collection))
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", errors.Join(ErrStorage, err)
	}
	return checksum(raw), nil
}

func (s *FileStore) remember(collection, sum string) {
	s.mu.Lock()
	s.fingerprints[collection] = sum
	s.mu.Unlock()
}

// decodeJSON keeps numbers as json.Number so integers beyond 2^53 are
// written back unchanged.
func decodeJSON(raw []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	return dec.Decode(v)
}

func checksum(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
