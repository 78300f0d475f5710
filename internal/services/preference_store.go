package services

import (
	"sync"

	"github.com/MinghowYooo/nexus/pkg/models"
)

// PreferenceStore is the injected profile store. Swapping in a persistent
// backend must never touch recommendation logic.
type PreferenceStore interface {
	// Get returns a copy of the user's profile, or an empty profile when the
	// user has never interacted. Never nil.
	Get(userID string) *models.UserPreferenceProfile

	// Upsert applies mutate to the user's profile under that user's lock,
	// creating the profile lazily on first call.
	Upsert(userID string, mutate func(*models.UserPreferenceProfile) error) error

	// Snapshot returns copies of every known profile, keyed by user id.
	Snapshot() map[string]*models.UserPreferenceProfile
}

type profileEntry struct {
	mu      sync.Mutex
	profile *models.UserPreferenceProfile
}

// MemoryPreferenceStore keeps profiles in process memory. A read-write mutex
// guards the map itself; each profile has its own lock so concurrent
// interactions from different users never block each other.
type MemoryPreferenceStore struct {
	mu       sync.RWMutex
	profiles map[string]*profileEntry
}

func NewMemoryPreferenceStore() *MemoryPreferenceStore {
	return &MemoryPreferenceStore{
		profiles: make(map[string]*profileEntry),
	}
}

func (s *MemoryPreferenceStore) entry(userID string, create bool) *profileEntry {
	s.mu.RLock()
	e, ok := s.profiles[userID]
	s.mu.RUnlock()
	if ok || !create {
		return e
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok = s.profiles[userID]; ok {
		return e
	}
	e = &profileEntry{profile: models.NewUserPreferenceProfile(userID)}
	s.profiles[userID] = e
	return e
}

func (s *MemoryPreferenceStore) Get(userID string) *models.UserPreferenceProfile {
	e := s.entry(userID, false)
	if e == nil {
		return models.NewUserPreferenceProfile(userID)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.profile.Clone()
}

func (s *MemoryPreferenceStore) Upsert(userID string, mutate func(*models.UserPreferenceProfile) error) error {
	e := s.entry(userID, true)

	e.mu.Lock()
	defer e.mu.Unlock()
	return mutate(e.profile)
}

func (s *MemoryPreferenceStore) Snapshot() map[string]*models.UserPreferenceProfile {
	s.mu.RLock()
	entries := make(map[string]*profileEntry, len(s.profiles))
	for id, e := range s.profiles {
		entries[id] = e
	}
	s.mu.RUnlock()

	snapshot := make(map[string]*models.UserPreferenceProfile, len(entries))
	for id, e := range entries {
		e.mu.Lock()
		snapshot[id] = e.profile.Clone()
		e.mu.Unlock()
	}
	return snapshot
}
