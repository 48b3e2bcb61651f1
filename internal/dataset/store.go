package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

// storageKey is the single document all datasets live under.
const storageKey = "gabai_datasets"

// ErrNotFound is returned when an operation targets a dataset that does
// not exist.
var ErrNotFound = errors.New("dataset not found")

// Store persists the dataset list as one JSON document, newest upload
// first. Unlike chat sessions the list is shared, not per-user: every
// admin manages the same knowledge base.
type Store struct {
	path string
	log  *logrus.Entry

	mu sync.Mutex
}

// NewStore creates a store rooted at dir, creating the directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{
		path: filepath.Join(dir, storageKey+".json"),
		log:  logrus.WithField("component", "dataset.store"),
	}, nil
}

// List returns all datasets. A missing or corrupt document yields an empty
// list; uploads must keep working even if the stored list is damaged.
func (s *Store) List(ctx context.Context) ([]Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(), nil
}

// Add prepends a dataset and persists the list.
func (s *Store) Add(ctx context.Context, d Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	datasets := append([]Dataset{d}, s.loadLocked()...)
	return s.saveLocked(datasets)
}

// Delete removes one dataset by id.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	datasets := s.loadLocked()
	for i, d := range datasets {
		if d.ID == id {
			return s.saveLocked(append(datasets[:i], datasets[i+1:]...))
		}
	}
	return ErrNotFound
}

func (s *Store) loadLocked() []Dataset {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.WithError(err).Error("failed to read dataset file")
		}
		return nil
	}

	var datasets []Dataset
	if err := json.Unmarshal(data, &datasets); err != nil {
		s.log.WithError(err).Error("corrupt dataset list, falling back to empty")
		return nil
	}
	return datasets
}

func (s *Store) saveLocked(datasets []Dataset) error {
	data, err := json.Marshal(datasets)
	if err != nil {
		return fmt.Errorf("marshal datasets: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write dataset file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace dataset file: %w", err)
	}
	return nil
}
