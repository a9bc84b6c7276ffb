package session

import (
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// Store keeps live sessions in an in-process TTL cache. Expiry is sliding:
// any successful lookup renews the session for a full TTL.
type Store struct {
	cache *gocache.Cache
	ttl   time.Duration
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &Store{
		cache: gocache.New(ttl, 10*time.Minute),
		ttl:   ttl,
	}
}

// Create registers a new empty session and returns it.
func (st *Store) Create() *Session {
	s := newSession(uuid.NewString())
	st.cache.Set(s.ID, s, st.ttl)
	return s
}

// Get looks a session up by id and renews its TTL.
func (st *Store) Get(id string) (*Session, bool) {
	v, ok := st.cache.Get(id)
	if !ok {
		return nil, false
	}
	s := v.(*Session)
	st.cache.Set(id, s, st.ttl)
	return s, true
}

// Count reports the number of live sessions.
func (st *Store) Count() int { return st.cache.ItemCount() }
