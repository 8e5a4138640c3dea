package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/emzola/shelf/config"
	_ "github.com/lib/pq"
)

const schema = `
	CREATE TABLE IF NOT EXISTS books (
		id bigserial PRIMARY KEY,
		title text NOT NULL,
		author text NOT NULL,
		cover text NOT NULL,
		user_id bigint NOT NULL,
		isbn text,
		published_year integer CHECK (published_year >= 1000),
		genre text,
		amazon_url text
	);
	CREATE INDEX IF NOT EXISTS books_user_id_idx ON books (user_id);`

// OpenDBConn creates a PostgreSQL database connection pool.
func OpenDBConn(cfg config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxIdleTime(cfg.Database.MaxIdleTime)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate creates the books table if it does not exist yet.
func Migrate(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := db.ExecContext(ctx, schema)
	return err
}
