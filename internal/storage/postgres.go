package storage

import (
	"context"
	"database/sql"
	"log"

	_ "github.com/lib/pq"
)

type postgresSlot struct {
	db  *sql.DB
	key string
}

// NewPostgresSlot stores the cart as a single row in cart_slots,
// upserted on every save.
func NewPostgresSlot(db *sql.DB, key string) Slot {
	return &postgresSlot{db: db, key: key}
}

func (s *postgresSlot) Load(ctx context.Context) ([]byte, error) {
	const query = `SELECT value FROM cart_slots WHERE slot_key = $1`

	var value []byte
	err := s.db.QueryRowContext(ctx, query, s.key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

func (s *postgresSlot) Save(ctx context.Context, value []byte) error {
	const upsert = `
INSERT INTO cart_slots (slot_key, value, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (slot_key) DO UPDATE
SET value = EXCLUDED.value, updated_at = NOW()
`
	_, err := s.db.ExecContext(ctx, upsert, s.key, value)
	return err
}

// MustOpenPostgres opens and pings the cart database.
func MustOpenPostgres(dsn string) *sql.DB {
	if dsn == "" {
		log.Fatal("CART_DB_DSN not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}

	if err := db.Ping(); err != nil {
		log.Fatalf("ping db: %v", err)
	}

	return db
}
