package wizard

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultSessionTTL is how long an untouched checkout survives before it
// expires with its draft.
const DefaultSessionTTL = 2 * time.Hour

type sessionEntry struct {
	session  *Session
	lastSeen time.Time
}

// Registry holds active checkout sessions keyed by an opaque token. Expired
// entries are pruned lazily on access.
type Registry struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]*sessionEntry
	now     func() time.Time
}

// NewRegistry creates a session registry with the given idle TTL.
func NewRegistry(ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Registry{
		ttl:     ttl,
		entries: make(map[string]*sessionEntry),
		now:     time.Now,
	}
}

// Create starts a new checkout session and returns its token.
func (r *Registry) Create() (string, *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pruneLocked()

	token := uuid.NewString()
	session := NewSession()
	r.entries[token] = &sessionEntry{session: session, lastSeen: r.now()}
	return token, session
}

// Get returns the session for a token, refreshing its idle timer.
func (r *Registry) Get(token string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pruneLocked()

	entry, ok := r.entries[token]
	if !ok {
		return nil, false
	}
	entry.lastSeen = r.now()
	return entry.session, true
}

// Delete removes a session, e.g. after submission.
func (r *Registry) Delete(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, token)
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pruneLocked()
	return len(r.entries)
}

func (r *Registry) pruneLocked() {
	cutoff := r.now().Add(-r.ttl)
	for token, entry := range r.entries {
		if entry.lastSeen.Before(cutoff) {
			delete(r.entries, token)
		}
	}
}
