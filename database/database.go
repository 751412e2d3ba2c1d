// Package database persists the local user's preferences: the current
// identity and the block list.
package database

import "errors"

const (
	KeyUserName     = "posns_username"
	KeyUserDesc     = "posns_userdesc"
	KeyUserID       = "posns_user_id"
	KeyBlockUserIDs = "posns_block_user_ids"
)

var ErrNotFound = errors.New("preference not found")

type Database interface {
	Init(database, dsn string) error
	Get(key string) (string, error)
	Set(key, value string) error
	Close() error
}

// GetDefault returns the stored value or def when the key is not set.
func GetDefault(db Database, key, def string) (string, error) {
	v, err := db.Get(key)
	if errors.Is(err, ErrNotFound) {
		return def, nil
	}
	return v, err
}
