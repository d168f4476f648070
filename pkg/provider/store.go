package provider

import (
	"strings"
	"sync"
)

// Store holds per-provider configuration (credential, selected model,
// available models) plus the currently active provider type. It is safe for
// concurrent use from the UI thread and background generation tasks; snapshot
// reads never observe a partially applied update.
type Store struct {
	mu         sync.RWMutex
	entries    map[Type]*storeEntry
	activeType Type
}

type storeEntry struct {
	apiKey          string
	selectedModel   string
	availableModels []string
}

// NewStore creates an empty store with TypeOpenAI active by default.
func NewStore() *Store {
	return &Store{
		entries:    make(map[Type]*storeEntry),
		activeType: TypeOpenAI,
	}
}

// SetActiveType updates the provider used when a caller does not specify one.
func (s *Store) SetActiveType(t Type) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t == "" {
		t = TypeOpenAI
	}
	s.activeType = t
}

// ActiveType returns the currently active provider type.
func (s *Store) ActiveType() Type {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.activeType == "" {
		return TypeOpenAI
	}
	return s.activeType
}

// SetAPIKey stores the trimmed credential for the provider. A blank key
// clears the credential and, in the same operation, the selected model and
// available models: an incomplete credential must not leave stale model state.
func (s *Store) SetAPIKey(t Type, apiKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.ensure(t)
	normalized := strings.TrimSpace(apiKey)
	if normalized == "" {
		e.apiKey = ""
		e.selectedModel = ""
		e.availableModels = nil
		return
	}
	e.apiKey = normalized
}

// APIKey returns the stored credential, or "" when unset.
func (s *Store) APIKey(t Type) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e := s.lookup(t); e != nil {
		return e.apiKey
	}
	return ""
}

// HasAPIKey reports whether a credential is configured for the provider.
func (s *Store) HasAPIKey(t Type) bool {
	return s.APIKey(t) != ""
}

// SetSelectedModel stores the trimmed model id; blank clears the selection.
func (s *Store) SetSelectedModel(t Type, modelID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensure(t).selectedModel = strings.TrimSpace(modelID)
}

// SelectedModel returns the chosen model id, or "" when unset.
func (s *Store) SelectedModel(t Type) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e := s.lookup(t); e != nil {
		return e.selectedModel
	}
	return ""
}

// SetAvailableModels stores a defensive copy of the model list. A nil or
// empty list normalizes to empty.
func (s *Store) SetAvailableModels(t Type, models []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.ensure(t)
	if len(models) == 0 {
		e.availableModels = nil
		return
	}
	e.availableModels = append([]string(nil), models...)
}

// AvailableModels returns a copy of the stored model list.
func (s *Store) AvailableModels(t Type) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e := s.lookup(t); e != nil {
		return append([]string(nil), e.availableModels...)
	}
	return []string{}
}

// Snapshot returns an immutable view of one provider's configuration, taken
// under a single lock so the fields are mutually consistent.
func (s *Store) Snapshot(t Type) Context {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t == "" {
		t = TypeOpenAI
	}
	pc := Context{Type: t, AvailableModels: []string{}}
	if e := s.lookup(t); e != nil {
		pc.APIKey = e.apiKey
		pc.SelectedModel = e.selectedModel
		pc.AvailableModels = append([]string(nil), e.availableModels...)
	}
	return pc
}

// Clear resets all stored state for one provider.
func (s *Store) Clear(t Type) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.ensure(t)
	e.apiKey = ""
	e.selectedModel = ""
	e.availableModels = nil
}

// lookup requires the read lock; it never mutates the map.
func (s *Store) lookup(t Type) *storeEntry {
	if t == "" {
		t = TypeOpenAI
	}
	return s.entries[t]
}

// ensure requires the write lock.
func (s *Store) ensure(t Type) *storeEntry {
	if t == "" {
		t = TypeOpenAI
	}
	e, ok := s.entries[t]
	if !ok {
		e = &storeEntry{}
		s.entries[t] = e
	}
	return e
}
