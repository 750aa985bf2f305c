package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Swayamnakshane/amazonQ-note-app/api"
)

var ErrNotFound = errors.New("note not found")

// Store is the collection service's note store: an id-keyed map with
// optional JSON file persistence. All methods are safe for concurrent
// use by HTTP handlers.
type Store struct {
	mu    sync.Mutex
	notes map[string]*api.Note
	path  string
}

func NewStore() *Store {
	return &Store{notes: make(map[string]*api.Note)}
}

// NewFileStore returns a store persisted to path. An existing file is
// loaded; a missing one is created on the first write.
func NewFileStore(path string) (*Store, error) {
	s := &Store{notes: make(map[string]*api.Note), path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store file: %w", err)
	}

	var file storeFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse store file: %w", err)
	}
	for _, n := range file.Notes {
		nn := n
		s.notes[nn.ID] = &nn
	}
	return s, nil
}

type storeFile struct {
	Version int        `json:"version"`
	Notes   []api.Note `json:"notes"`
}

func (s *Store) Create(title, content string) (api.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	note := &api.Note{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.notes[note.ID] = note
	if err := s.persist(); err != nil {
		delete(s.notes, note.ID)
		return api.Note{}, err
	}
	return *note, nil
}

func (s *Store) Get(id string) (api.Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, exists := s.notes[id]
	if !exists {
		return api.Note{}, false
	}
	return *note, true
}

func (s *Store) Update(id, title, content string) (api.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, exists := s.notes[id]
	if !exists {
		return api.Note{}, ErrNotFound
	}
	prev := *note
	note.Title = title
	note.Content = content
	note.UpdatedAt = time.Now().UTC()
	if err := s.persist(); err != nil {
		*note = prev
		return api.Note{}, err
	}
	return *note, nil
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, exists := s.notes[id]
	if !exists {
		return ErrNotFound
	}
	delete(s.notes, id)
	if err := s.persist(); err != nil {
		s.notes[id] = note
		return err
	}
	return nil
}

// List returns all notes sorted by UpdatedAt descending.
func (s *Store) List() []api.Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes := make([]api.Note, 0, len(s.notes))
	for _, note := range s.notes {
		notes = append(notes, *note)
	}
	sort.Slice(notes, func(i, j int) bool {
		return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
	})
	return notes
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.notes)
}

// persist writes the collection to the backing file. Caller holds s.mu.
func (s *Store) persist() error {
	if s.path == "" {
		return nil
	}

	file := storeFile{Version: 1, Notes: make([]api.Note, 0, len(s.notes))}
	for _, note := range s.notes {
		file.Notes = append(file.Notes, *note)
	}
	data, err := json.Marshal(file)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}
