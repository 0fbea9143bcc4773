// Package session holds the in-memory per-user photo sessions.
//
// A Session is a single mutable resource: every operation takes the session
// mutex, so commands from the same user are serialized while different users
// proceed in parallel. Nothing is persisted; sessions live for the process
// lifetime.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/NIGHTWALKER3/NW-Photo-To-Pdf-Converter-Bot/internal/models"
)

// Photo list errors. Handlers translate these into user-facing text.
var (
	// ErrEmptyList indicates an operation on an empty photo list.
	ErrEmptyList = errors.New("photo list is empty")
	// ErrIndexOutOfRange indicates a 1-based index outside [1, len].
	ErrIndexOutOfRange = errors.New("photo index out of range")
	// ErrTooManyPhotos indicates the per-session photo cap was reached.
	ErrTooManyPhotos = errors.New("too many photos")
)

// Photo is one stored image: the Telegram file ID it came from plus the
// downloaded bytes. The bytes are treated as immutable once appended.
type Photo struct {
	FileID  string
	Data    []byte
	AddedAt time.Time
}

// Entry describes one photo for preview rendering. Index is 1-based.
type Entry struct {
	Index  int
	FileID string
	Size   int
}

// Session is one user's photo list and settings.
type Session struct {
	mu        sync.Mutex
	userID    int64
	maxPhotos int
	photos    []Photo
	settings  models.Settings
}

// UserID returns the owning Telegram user ID.
func (s *Session) UserID() int64 {
	return s.userID
}

// Append adds a photo to the end of the list and returns the new count.
func (s *Session) Append(p Photo) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxPhotos > 0 && len(s.photos) >= s.maxPhotos {
		return len(s.photos), ErrTooManyPhotos
	}
	if p.AddedAt.IsZero() {
		p.AddedAt = time.Now()
	}
	s.photos = append(s.photos, p)
	return len(s.photos), nil
}

// RemoveLast removes the most recently added photo.
func (s *Session) RemoveLast() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.photos) == 0 {
		return ErrEmptyList
	}
	s.photos[len(s.photos)-1] = Photo{}
	s.photos = s.photos[:len(s.photos)-1]
	return nil
}

// RemoveAt removes the photo at the given 1-based index.
func (s *Session) RemoveAt(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 1 || index > len(s.photos) {
		return ErrIndexOutOfRange
	}
	i := index - 1
	s.photos = append(s.photos[:i], s.photos[i+1:]...)
	return nil
}

// Move removes the photo at from and reinserts it at to (both 1-based),
// preserving the relative order of all other photos. Move(i, i) is a no-op.
func (s *Session) Move(from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.photos)
	if from < 1 || from > n || to < 1 || to > n {
		return ErrIndexOutOfRange
	}
	if from == to {
		return nil
	}

	p := s.photos[from-1]
	rest := append(s.photos[:from-1], s.photos[from:]...)
	s.photos = append(rest[:to-1], append([]Photo{p}, rest[to-1:]...)...)
	return nil
}

// Clear empties the photo list. Settings are retained. Idempotent.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.photos = nil
}

// Len returns the current number of photos.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.photos)
}

// Preview returns a descriptor per photo, in current order. No mutation.
func (s *Session) Preview() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]Entry, len(s.photos))
	for i, p := range s.photos {
		entries[i] = Entry{
			Index:  i + 1,
			FileID: p.FileID,
			Size:   len(p.Data),
		}
	}
	return entries
}

// Snapshot returns a copy of the photo slice for assembly. The photo bytes
// are shared, relying on the append-only immutability of Photo.Data.
func (s *Session) Snapshot() []Photo {
	s.mu.Lock()
	defer s.mu.Unlock()

	photos := make([]Photo, len(s.photos))
	copy(photos, s.photos)
	return photos
}

// Settings returns a copy of the current settings.
func (s *Session) Settings() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// UpdateSettings applies fn to the settings under the session lock.
// The settings are only replaced if fn returns nil.
func (s *Session) UpdateSettings(fn func(*models.Settings) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := s.settings
	if err := fn(&updated); err != nil {
		return err
	}
	s.settings = updated
	return nil
}
