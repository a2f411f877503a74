// Package complaint owns the canonical complaint collection and the status
// lifecycle: the store persists the collection as one JSON document, the
// engine appends timeline events, and the intake service turns classified
// evidence into durable complaints.
package complaint

import (
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"govlens/backend/internal/models"
	"govlens/backend/internal/storage"
)

// SeedFunc produces the initial dataset used when the durable medium holds no
// document yet. Injected so the store stays testable with empty or arbitrary
// seed data.
type SeedFunc func(now time.Time) []models.Complaint

// Store holds the authoritative ordered collection of complaints for the
// session (most recent first) and writes it through to durable storage on
// every mutation. All mutation funnels through Create and Replace so the
// append-only timeline invariant is enforceable in one place.
type Store struct {
	mu         sync.Mutex
	storage    storage.Storage
	seed       SeedFunc
	complaints []models.Complaint
}

// NewStore creates a store backed by the given storage. seed may be nil, in
// which case an empty medium bootstraps to an empty collection.
func NewStore(s storage.Storage, seed SeedFunc) *Store {
	return &Store{storage: s, seed: seed}
}

// LoadAll restores the persisted collection, seeding the demo dataset exactly
// once when no document exists yet. The returned slice is a disposable copy.
func (s *Store) LoadAll() ([]models.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	complaints, found, err := s.storage.LoadDocument()
	if err != nil {
		return nil, err
	}

	if !found {
		if s.seed != nil {
			complaints = s.seed(time.Now())
		}
		if err := s.storage.SaveDocument(complaints); err != nil {
			log.Printf("WARNING: Failed to persist seed dataset: %v", err)
		} else if len(complaints) > 0 {
			log.Printf("INFO: Seeded %d demo complaints into empty storage.", len(complaints))
		}
	}

	s.complaints = complaints
	return s.snapshot(), nil
}

// All returns a disposable copy of the current collection, most recent first.
func (s *Store) All() []models.Complaint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Create inserts the complaint at the front of the collection and persists
// the full document synchronously. On a failed write the in-memory collection
// is still updated and a *PersistenceError is returned so the caller can warn
// the citizen.
func (s *Store) Create(c models.Complaint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.complaints = append([]models.Complaint{c}, s.complaints...)

	if err := s.storage.SaveDocument(s.complaints); err != nil {
		return &PersistenceError{Op: "create", Err: err}
	}
	return nil
}

// FindByID returns a copy of the complaint with the given id, or ErrNotFound.
func (s *Store) FindByID(id string) (models.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.complaints {
		if c.ID == id {
			return cloneComplaint(c), nil
		}
	}
	return models.Complaint{}, ErrNotFound
}

// Replace commits an updated complaint under its existing id and persists the
// full document again, with the same failure semantics as Create. Used by the
// lifecycle engine to commit a transition.
func (s *Store) Replace(id string, updated models.Complaint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, c := range s.complaints {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}

	s.complaints[idx] = updated

	if err := s.storage.SaveDocument(s.complaints); err != nil {
		return &PersistenceError{Op: "replace", Err: err}
	}
	return nil
}

// NextID issues the next complaint id in the AP-<year>-<sequence> format.
// The sequence is backed by the storage counter; if the counter is
// unreachable a random four-digit suffix keeps the session usable.
func (s *Store) NextID() string {
	seq, err := s.storage.NextSequence()
	if err != nil {
		log.Printf("WARNING: Sequence counter unavailable, falling back to random id: %v", err)
		seq = int64(rand.Intn(9000) + 1000)
	}
	return fmt.Sprintf("AP-%d-%03d", time.Now().Year(), seq)
}

// snapshot copies the collection so callers can never mutate owned state.
// Caller must hold s.mu.
func (s *Store) snapshot() []models.Complaint {
	out := make([]models.Complaint, len(s.complaints))
	for i, c := range s.complaints {
		out[i] = cloneComplaint(c)
	}
	return out
}

func cloneComplaint(c models.Complaint) models.Complaint {
	clone := c
	clone.Timeline = append([]models.TimelineEvent(nil), c.Timeline...)
	clone.AIAnalysis.SecondaryDepartments = append([]string(nil), c.AIAnalysis.SecondaryDepartments...)
	clone.AIAnalysis.PermissionsNeeded = append([]string(nil), c.AIAnalysis.PermissionsNeeded...)
	clone.AIAnalysis.GroundingSources = append([]models.GroundingSource(nil), c.AIAnalysis.GroundingSources...)
	return clone
}
