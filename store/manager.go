package store

import (
	"sync"

	"github.com/gofiber/fiber/v2"
)

// Manager owns one Store per tenant. Stores are opened on first use and live
// as long as the manager.
type Manager struct {
	storage fiber.Storage

	mu     sync.Mutex
	stores map[string]*Store
}

func NewManager(storage fiber.Storage) *Manager {
	return &Manager{
		storage: storage,
		stores:  make(map[string]*Store),
	}
}

// For returns the store of tenantID, loading it from storage if needed.
func (m *Manager) For(tenantID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.stores[tenantID]; ok {
		return s
	}
	s := Open(m.storage, tenantID)
	m.stores[tenantID] = s
	return s
}

func (m *Manager) Storage() fiber.Storage {
	return m.storage
}
