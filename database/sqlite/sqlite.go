package sqlite

import (
	"database/sql"
	"errors"

	"github.com/aquilax/postboard/database"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS preference (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

type SQLite struct {
	db *sqlx.DB
}

func New() *SQLite {
	return &SQLite{}
}

func (m *SQLite) Init(database, DSN string) error {
	var err error
	m.db, err = sqlx.Open(database, DSN)
	if err != nil {
		return err
	}
	// a second connection to ":memory:" would see an empty database
	m.db.SetMaxOpenConns(1)
	_, err = m.db.Exec(schema)
	return err
}

func (m *SQLite) Get(key string) (string, error) {
	var value string
	err := m.db.Get(&value, "SELECT value FROM preference WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", database.ErrNotFound
	}
	return value, err
}

func (m *SQLite) Set(key, value string) error {
	_, err := m.db.NamedExec(`INSERT INTO preference (key, value) VALUES (:key, :value)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		map[string]interface{}{
			"key":   key,
			"value": value,
		})
	return err
}

func (m *SQLite) Close() error {
	return m.db.Close()
}
