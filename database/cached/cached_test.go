package cached

import (
	"errors"
	"reflect"
	"testing"

	"github.com/aquilax/postboard/database"
	"github.com/aquilax/postboard/database/memory"
)

func TestImplementsDatabase(t *testing.T) {
	inter := reflect.TypeOf((*database.Database)(nil)).Elem()

	if !reflect.TypeOf(New(memory.New())).Implements(inter) {
		t.Errorf("Cached does not implement the database interface")
	}
}

type counting struct {
	database.Database
	gets   int
	setErr error
}

func (c *counting) Get(key string) (string, error) {
	c.gets++
	return c.Database.Get(key)
}

func (c *counting) Set(key, value string) error {
	if c.setErr != nil {
		return c.setErr
	}
	return c.Database.Set(key, value)
}

func TestCached_Get(t *testing.T) {
	store := &counting{Database: memory.New()}
	c := New(store)

	for i := 0; i < 3; i++ {
		if _, err := c.Get(database.KeyBlockUserIDs); err != database.ErrNotFound {
			t.Fatalf("Get() error = %v, want ErrNotFound", err)
		}
	}
	if store.gets != 1 {
		t.Errorf("store reads = %d, want 1", store.gets)
	}

	if err := c.Set(database.KeyBlockUserIDs, "U1"); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if v, err := c.Get(database.KeyBlockUserIDs); err != nil || v != "U1" {
			t.Fatalf("Get() = %q, %v; want U1, nil", v, err)
		}
	}
	if store.gets != 1 {
		t.Errorf("store reads = %d, want 1", store.gets)
	}
	if v, _ := store.Database.Get(database.KeyBlockUserIDs); v != "U1" {
		t.Errorf("store value = %q, want U1", v)
	}
}

func TestCached_GetReadsThrough(t *testing.T) {
	store := &counting{Database: memory.New()}
	if err := store.Database.Set(database.KeyUserName, "alice"); err != nil {
		t.Fatal(err)
	}
	c := New(store)
	for i := 0; i < 2; i++ {
		if v, err := c.Get(database.KeyUserName); err != nil || v != "alice" {
			t.Fatalf("Get() = %q, %v; want alice, nil", v, err)
		}
	}
	if store.gets != 1 {
		t.Errorf("store reads = %d, want 1", store.gets)
	}
}

func TestCached_SetFailureKeepsCache(t *testing.T) {
	boom := errors.New("disk full")
	store := &counting{Database: memory.New()}
	c := New(store)
	if err := c.Set(database.KeyUserName, "alice"); err != nil {
		t.Fatal(err)
	}
	store.setErr = boom
	if err := c.Set(database.KeyUserName, "bob"); !errors.Is(err, boom) {
		t.Fatalf("Set() error = %v, want %v", err, boom)
	}
	if v, _ := c.Get(database.KeyUserName); v != "alice" {
		t.Errorf("Get() = %q, want alice", v)
	}
}
