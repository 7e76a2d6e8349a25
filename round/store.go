package round

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Store keeps rounds in memory and persists them to rounds.json under dataDir.
type Store struct {
	mu      sync.Mutex
	rounds  map[string]*Round
	dataDir string
}

func NewStore(dataDir string) *Store {
	if dataDir == "" {
		dataDir = "data"
	}
	s := &Store{
		rounds:  make(map[string]*Round),
		dataDir: dataDir,
	}
	s.load()
	return s
}

func (s *Store) roundsPath() string {
	return filepath.Join(s.dataDir, "rounds.json")
}

func (s *Store) ensureDir() error {
	return os.MkdirAll(s.dataDir, 0755)
}

func (s *Store) load() {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.roundsPath())
	if err != nil {
		return
	}
	var list []*Round
	if err := json.Unmarshal(data, &list); err != nil {
		return
	}
	for _, r := range list {
		if r != nil && r.ID != "" {
			s.rounds[r.ID] = r
		}
	}
}

// saveLocked writes the store to disk. Caller must hold s.mu.
func (s *Store) saveLocked() error {
	list := make([]*Round, 0, len(s.rounds))
	for _, r := range s.rounds {
		list = append(list, r)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	if err := s.ensureDir(); err != nil {
		return err
	}
	return os.WriteFile(s.roundsPath(), data, 0600)
}

func (s *Store) Create(_ context.Context, r *Round) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rounds[r.ID]; ok {
		return ErrExists
	}
	s.rounds[r.ID] = r.Clone()
	if err := s.saveLocked(); err != nil {
		delete(s.rounds, r.ID)
		return err
	}
	return nil
}

func (s *Store) Get(_ context.Context, id string) (*Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rounds[id]
	if !ok {
		return nil, ErrNotFound
	}
	return r.Clone(), nil
}

func (s *Store) Update(_ context.Context, r *Round, from Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.rounds[r.ID]
	if !ok {
		return ErrNotFound
	}
	if cur.Status != from {
		return ErrStatusConflict
	}
	s.rounds[r.ID] = r.Clone()
	if err := s.saveLocked(); err != nil {
		s.rounds[r.ID] = cur
		return err
	}
	return nil
}
