package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"site-valuation/internal/config"
)

var (
	// ErrNotFound is returned when a user/project pair has no stored project.
	ErrNotFound = errors.New("project not found")
	// ErrInvalidUser is returned for user ids that cannot name a directory.
	ErrInvalidUser = errors.New("invalid user id")
)

// Project is a named, persisted scenario configuration owned by one user.
// Results are not stored; they are recomputed from the config on demand.
type Project struct {
	ID        string        `json:"id"`
	User      string        `json:"user"`
	Name      string        `json:"name"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	Config    config.Config `json:"config"`
}

// Store persists projects as one JSON file per project, keyed by user id +
// project id: <dir>/<user>/<id>.json. An in-memory index fronts the disk.
// Safe for concurrent use.
type Store struct {
	dir string

	mu    sync.RWMutex
	users map[string]map[string]*Project
}

// Open loads (or initializes) a project store rooted at dir. Each
// subdirectory is one user's project collection.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create project dir: %w", err)
	}
	s := &Store{dir: dir, users: map[string]map[string]*Project{}}

	userDirs, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	for _, ud := range userDirs {
		if !ud.IsDir() {
			continue
		}
		user := ud.Name()
		entries, err := os.ReadDir(filepath.Join(dir, user))
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
				continue
			}
			p, err := readProject(filepath.Join(dir, user, e.Name()))
			if err != nil {
				return nil, fmt.Errorf("load project %s/%s: %w", user, e.Name(), err)
			}
			p.User = user
			s.index(user)[p.ID] = p
		}
	}
	return s, nil
}

// List returns all of one user's projects ordered by creation time, oldest
// first. An unknown user has no projects.
func (s *Store) List(user string) ([]*Project, error) {
	if err := checkUser(user); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Project, 0, len(s.users[user]))
	for _, p := range s.users[user] {
		out = append(out, clone(p))
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].CreatedAt.Equal(out[b].CreatedAt) {
			return out[a].ID < out[b].ID
		}
		return out[a].CreatedAt.Before(out[b].CreatedAt)
	})
	return out, nil
}

// Count reports the number of stored projects across all users.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, m := range s.users {
		n += len(m)
	}
	return n
}

// Get returns one of the user's projects by id.
func (s *Store) Get(user, id string) (*Project, error) {
	if err := checkUser(user); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.users[user][id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(p), nil
}

// Create stores a new project for the user, assigning its id and timestamps.
func (s *Store) Create(user, name string, cfg config.Config) (*Project, error) {
	if err := checkUser(user); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &Project{
		ID:        newID(user, name, now),
		User:      user,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		Config:    cfg,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.write(p); err != nil {
		return nil, err
	}
	s.index(user)[p.ID] = p
	return clone(p), nil
}

// Update replaces the name and config of an existing project.
func (s *Store) Update(user, id, name string, cfg config.Config) (*Project, error) {
	if err := checkUser(user); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[user][id]
	if !ok {
		return nil, ErrNotFound
	}
	p := clone(existing)
	if name != "" {
		p.Name = name
	}
	p.Config = cfg
	p.UpdatedAt = time.Now().UTC()

	if err := s.write(p); err != nil {
		return nil, err
	}
	s.users[user][id] = p
	return clone(p), nil
}

// Delete removes a project and its file.
func (s *Store) Delete(user, id string) error {
	if err := checkUser(user); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user][id]; !ok {
		return ErrNotFound
	}
	if err := os.Remove(s.path(user, id)); err != nil && !os.IsNotExist(err) {
		return err
	}
	delete(s.users[user], id)
	return nil
}

// index returns the user's project map, creating it on first use.
// Caller must hold the lock.
func (s *Store) index(user string) map[string]*Project {
	m, ok := s.users[user]
	if !ok {
		m = map[string]*Project{}
		s.users[user] = m
	}
	return m
}

func (s *Store) path(user, id string) string {
	return filepath.Join(s.dir, user, id+".json")
}

func (s *Store) write(p *Project) error {
	if err := os.MkdirAll(filepath.Join(s.dir, p.User), 0o755); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(p.User, p.ID), raw, 0o644)
}

func readProject(path string) (*Project, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p Project
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	if p.ID == "" {
		return nil, fmt.Errorf("%s: missing project id", path)
	}
	return &p, nil
}

func clone(p *Project) *Project {
	cp := *p
	return &cp
}

// checkUser rejects ids that could escape the store directory or collide
// with the file layout.
func checkUser(user string) error {
	if user == "" || user == "." || user == ".." {
		return ErrInvalidUser
	}
	if strings.ContainsAny(user, `/\`) || strings.Contains(user, "..") {
		return ErrInvalidUser
	}
	return nil
}

// newID derives a short stable identifier from the owner, the project name
// and its creation instant.
func newID(user, name string, t time.Time) string {
	sum := sha256.Sum256([]byte(user + "/" + name + "@" + t.Format(time.RFC3339Nano)))
	return hex.EncodeToString(sum[:])[:12]
}
