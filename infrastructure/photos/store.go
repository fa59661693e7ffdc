package photos

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ttphotos/domain/repository"
)

// Store lists and serves background photos from a directory.
type Store struct {
	dir string
	rng *rand.Rand
}

func NewStore(dir string) repository.IPhotoStore {
	return &Store{dir: dir, rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewStoreWithSource injects a deterministic source for tests.
func NewStoreWithSource(dir string, src rand.Source) *Store {
	return &Store{dir: dir, rng: rand.New(src)}
}

func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading photos directory %s: %w", s.dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".jpg", ".jpeg", ".png":
			files = append(files, e.Name())
		}
	}
	return files, nil
}

// RandomDistinct picks n distinct filenames via a random permutation.
func (s *Store) RandomDistinct(n int) ([]string, error) {
	files, err := s.List()
	if err != nil {
		return nil, err
	}
	if len(files) < n {
		return nil, fmt.Errorf("need at least %d photos in %s, found %d", n, s.dir, len(files))
	}
	perm := s.rng.Perm(len(files))
	out := make([]string, 0, n)
	for _, idx := range perm[:n] {
		out = append(out, files[idx])
	}
	return out, nil
}

// Open reads a photo by bare filename. Path separators are rejected so the
// slide endpoint cannot be used to read outside the photos directory.
func (s *Store) Open(name string) ([]byte, error) {
	if name == "" || name != filepath.Base(name) || strings.Contains(name, "..") {
		return nil, fmt.Errorf("invalid photo name %q", name)
	}
	return os.ReadFile(filepath.Join(s.dir, name))
}
