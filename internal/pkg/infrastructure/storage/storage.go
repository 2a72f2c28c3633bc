package storage

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// DefaultTTL is how long cached catalog query results stay fresh.
const DefaultTTL = 36 * time.Hour

// Store is an interface that is used to inject the cache store into the
// catalog fetchers to improve testability. A read past expiry behaves
// as a miss.
type Store interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
	Close()
}

type memoryStore struct {
	impl *gocache.Cache
}

// ConnectorFunc is used to inject a store connection method into NewStore
type ConnectorFunc func() (*gocache.Cache, error)

// NewInMemoryConnector creates a process local TTL cache
func NewInMemoryConnector() ConnectorFunc {
	return func() (*gocache.Cache, error) {
		return gocache.New(DefaultTTL, 1*time.Hour), nil
	}
}

// NewStore initializes a new cache store. The store is owned by the
// caller and must be closed at shutdown.
func NewStore(connect ConnectorFunc) (Store, error) {
	impl, err := connect()
	if err != nil {
		return nil, err
	}

	return &memoryStore{impl: impl}, nil
}

func (s *memoryStore) Get(key string) (any, bool) {
	return s.impl.Get(key)
}

func (s *memoryStore) Set(key string, value any, ttl time.Duration) {
	s.impl.Set(key, value, ttl)
}

func (s *memoryStore) Close() {
	s.impl.Flush()
}
