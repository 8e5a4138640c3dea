package repository

import (
	"database/sql"
)

// Repository owns the canonical collection of book records.
type Repository interface {
	books
}

// repository is the PostgreSQL-backed Repository.
type repository struct {
	db *sql.DB
}

// New creates a new PostgreSQL-backed Repository.
func New(db *sql.DB) *repository {
	return &repository{db: db}
}
