// Package saves stores battery backed cartridge RAM on disk.
//
// Each game gets a single file in the store's folder, named after its
// save key:
//
//	<folder>/<save key>.sav
//
// Writes go to a .tmp file that is renamed over the .sav file once
// complete, so a crash mid-save never corrupts the previous save.
package saves

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cespare/xxhash"
	"github.com/pkg/errors"
)

const (
	saveExt = ".sav"
	tempExt = ".tmp"
)

// FileStore is a cartridge.RAMStore backed by a folder.
type FileStore struct {
	folder string

	mu sync.Mutex
	// sums holds the hash of the last image read or written per key,
	// so unchanged RAM is not written again.
	sums map[string]uint64
}

// NewFileStore returns a FileStore saving to folder, creating
// it if it does not exist.
func NewFileStore(folder string) (*FileStore, error) {
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating save folder")
	}
	return &FileStore{
		folder: folder,
		sums:   make(map[string]uint64),
	}, nil
}

// Path returns the file the image for key is saved to.
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.folder, sanitize(key)+saveExt)
}

// LoadRAM returns the image saved under key, or nil if there is none.
func (s *FileStore) LoadRAM(key string) ([]byte, error) {
	b, err := os.ReadFile(s.Path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, errors.Wrapf(err, "loading save %q", key)
	}

	s.mu.Lock()
	s.sums[key] = xxhash.Sum64(b)
	s.mu.Unlock()
	return b, nil
}

// SaveRAM writes data under key, unless it matches the image
// last loaded or saved.
func (s *FileStore) SaveRAM(key string, data []byte) error {
	sum := xxhash.Sum64(data)

	s.mu.Lock()
	defer s.mu.Unlock()
	if last, ok := s.sums[key]; ok && last == sum {
		return nil
	}

	path := s.Path(key)
	tmp := strings.TrimSuffix(path, saveExt) + tempExt
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing save %q", key)
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrapf(err, "writing save %q", key)
	}

	s.sums[key] = sum
	return nil
}

// sanitize replaces characters that can't appear in a file name.
func sanitize(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return "untitled"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', 0:
			return '_'
		}
		return r
	}, key)
}
