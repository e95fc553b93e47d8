package session

import (
	"context"
	"sync"
)

// Persister keeps the token/user id pair across restarts of the client.
// Load returns empty strings when nothing is stored.
type Persister interface {
	Load(ctx context.Context) (token, userID string, err error)
	Save(ctx context.Context, token, userID string) error
	Erase(ctx context.Context) error
}

// MemoryPersister lives as long as the process. It is the default when no
// storage path is configured.
type MemoryPersister struct {
	mu     sync.Mutex
	token  string
	userID string
}

func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{}
}

func (m *MemoryPersister) Load(context.Context) (string, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.userID, nil
}

func (m *MemoryPersister) Save(_ context.Context, token, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token, m.userID = token, userID
	return nil
}

func (m *MemoryPersister) Erase(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token, m.userID = "", ""
	return nil
}
