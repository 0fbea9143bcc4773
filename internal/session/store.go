package session

import (
	"sync"

	"github.com/NIGHTWALKER3/NW-Photo-To-Pdf-Converter-Bot/internal/models"
)

// Store is the process-wide keyed session store. It is constructed once at
// startup and injected into the bot; there is no ambient singleton.
type Store struct {
	mu        sync.RWMutex
	maxPhotos int
	sessions  map[int64]*Session
}

// NewStore creates an empty store. maxPhotos caps each session's photo list;
// zero or negative means unbounded.
func NewStore(maxPhotos int) *Store {
	return &Store{
		maxPhotos: maxPhotos,
		sessions:  make(map[int64]*Session),
	}
}

// GetOrCreate returns the session for a user, lazily creating it with
// default settings on first contact.
func (st *Store) GetOrCreate(userID int64) *Session {
	st.mu.RLock()
	s, ok := st.sessions[userID]
	st.mu.RUnlock()
	if ok {
		return s
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.sessions[userID]; ok {
		return s
	}
	s = &Session{
		userID:    userID,
		maxPhotos: st.maxPhotos,
		settings:  models.DefaultSettings(),
	}
	st.sessions[userID] = s
	return s
}

// Has reports whether a session exists for the user.
func (st *Store) Has(userID int64) bool {
	st.mu.RLock()
	defer st.mu.RUnlock()
	_, ok := st.sessions[userID]
	return ok
}

// Clear empties the photo list of an existing session. Settings are kept.
// Unknown users are a no-op.
func (st *Store) Clear(userID int64) {
	st.mu.RLock()
	s, ok := st.sessions[userID]
	st.mu.RUnlock()
	if ok {
		s.Clear()
	}
}

// Count returns the number of live sessions.
func (st *Store) Count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
