package postgres

import (
	"database/sql"
	"errors"

	"github.com/aquilax/postboard/database"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const schema = `CREATE TABLE IF NOT EXISTS preference (
	key VARCHAR(64) PRIMARY KEY,
	value TEXT NOT NULL
)`

type Postgres struct {
	db *sqlx.DB
}

func New() *Postgres {
	return &Postgres{}
}

func (m *Postgres) Init(database, DSN string) error {
	var err error
	m.db, err = sqlx.Open(database, DSN)
	if err != nil {
		return err
	}
	if err = m.db.Ping(); err != nil {
		return err
	}
	_, err = m.db.Exec(schema)
	return err
}

func (m *Postgres) Get(key string) (string, error) {
	var value string
	err := m.db.Get(&value, "SELECT value FROM preference WHERE key = $1", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", database.ErrNotFound
	}
	return value, err
}

func (m *Postgres) Set(key, value string) error {
	_, err := m.db.NamedExec(`INSERT INTO preference (key, value) VALUES (:key, :value)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		map[string]interface{}{
			"key":   key,
			"value": value,
		})
	return err
}

func (m *Postgres) Close() error {
	return m.db.Close()
}
