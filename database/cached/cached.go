// Package cached keeps preferences in memory in front of another store.
// Writes reach the store before the cache.
package cached

import (
	"errors"
	"sync"

	"github.com/aquilax/postboard/database"
)

type Cached struct {
	db      database.Database
	mu      sync.RWMutex
	values  map[string]string
	missing map[string]bool
}

func New(db database.Database) *Cached {
	return &Cached{
		db:      db,
		values:  make(map[string]string),
		missing: make(map[string]bool),
	}
}

func (c *Cached) Init(database, dsn string) error {
	return c.db.Init(database, dsn)
}

func (c *Cached) Get(key string) (string, error) {
	c.mu.RLock()
	v, found := c.values[key]
	missing := c.missing[key]
	c.mu.RUnlock()
	if found {
		return v, nil
	}
	if missing {
		return "", database.ErrNotFound
	}

	v, err := c.db.Get(key)
	switch {
	case errors.Is(err, database.ErrNotFound):
		c.mu.Lock()
		c.missing[key] = true
		c.mu.Unlock()
		return "", err
	case err != nil:
		return "", err
	}
	c.mu.Lock()
	c.values[key] = v
	c.mu.Unlock()
	return v, nil
}

func (c *Cached) Set(key, value string) error {
	if err := c.db.Set(key, value); err != nil {
		return err
	}
	c.mu.Lock()
	c.values[key] = value
	delete(c.missing, key)
	c.mu.Unlock()
	return nil
}

func (c *Cached) Close() error {
	return c.db.Close()
}
