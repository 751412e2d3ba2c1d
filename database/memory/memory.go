package memory

import (
	"sync"

	"github.com/aquilax/postboard/database"
)

type Memory struct {
	mu     sync.Mutex
	values map[string]string
}

func New() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Init(database, dsn string) error {
	return nil
}

func (m *Memory) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, found := m.values[key]
	if !found {
		return "", database.ErrNotFound
	}
	return v, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *Memory) Close() error {
	return nil
}
