package handler

import (
	"sync"

	"github.com/google/uuid"

	"github.com/ashendes/beer-console/internal/composer"
)

// DraftStore keeps the order drafts of open console sessions.
type DraftStore struct {
	mutex  sync.RWMutex
	drafts map[string]*composer.Draft
}

// NewDraftStore creates an empty store.
func NewDraftStore() *DraftStore {
	return &DraftStore{drafts: make(map[string]*composer.Draft)}
}

// Open starts a new draft and returns its id.
func (s *DraftStore) Open() (string, *composer.Draft) {
	id := uuid.New().String()
	draft := composer.New()

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.drafts[id] = draft
	return id, draft
}

// Get returns the draft with id.
func (s *DraftStore) Get(id string) (*composer.Draft, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	draft, ok := s.drafts[id]
	return draft, ok
}

// Discard drops the draft with id and reports whether it existed.
func (s *DraftStore) Discard(id string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, ok := s.drafts[id]; !ok {
		return false
	}
	delete(s.drafts, id)
	return true
}

// Len returns the number of open drafts.
func (s *DraftStore) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.drafts)
}
