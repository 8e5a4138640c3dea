package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/emzola/shelf/data"
)

type books interface {
	GetBooks(userID int64) ([]*data.Book, error)
	GetBook(ID int64) (*data.Book, error)
	CreateBook(input *data.BookInput) (*data.Book, error)
	UpdateBook(ID int64, patch *data.BookPatch) (*data.Book, error)
	DeleteBook(ID int64) error
	SearchBooks(userID int64, query string) ([]*data.Book, error)
}

const bookColumns = `id, title, author, cover, user_id, isbn, published_year, genre, amazon_url`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanBook(row scanner) (*data.Book, error) {
	var book data.Book
	err := row.Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Cover,
		&book.UserID,
		&book.Isbn,
		&book.PublishedYear,
		&book.Genre,
		&book.AmazonURL,
	)
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetBooks retrieves all book records owned by a user.
func (r *repository) GetBooks(userID int64) ([]*data.Book, error) {
	query := `
		SELECT ` + bookColumns + `
		FROM books
		WHERE user_id = $1
		ORDER BY id ASC`
	return r.queryBooks(query, userID)
}

// GetBook retrieves a book record by its ID.
func (r *repository) GetBook(ID int64) (*data.Book, error) {
	if ID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT ` + bookColumns + `
		FROM books
		WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	book, err := scanBook(r.db.QueryRowContext(ctx, query, ID))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return book, nil
}

// CreateBook creates a new book record. Empty optional fields are stored as NULL.
func (r *repository) CreateBook(input *data.BookInput) (*data.Book, error) {
	query := `
		INSERT INTO books (title, author, cover, user_id, isbn, published_year, genre, amazon_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + bookColumns
	args := []interface{}{
		input.Title,
		input.Author,
		input.Cover,
		input.UserID,
		data.StringOrNil(input.Isbn),
		data.YearOrNil(input.PublishedYear),
		data.StringOrNil(input.Genre),
		data.StringOrNil(input.AmazonURL),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return scanBook(r.db.QueryRowContext(ctx, query, args...))
}

// UpdateBook merges a partial update into a book record in a single statement.
// Empty optional values keep the stored value.
func (r *repository) UpdateBook(ID int64, patch *data.BookPatch) (*data.Book, error) {
	query := `
		UPDATE books
		SET title = COALESCE($2::text, title),
			author = COALESCE($3::text, author),
			cover = COALESCE($4::text, cover),
			user_id = COALESCE($5::bigint, user_id),
			isbn = COALESCE(NULLIF($6::text, ''), isbn),
			published_year = COALESCE(NULLIF($7::integer, 0), published_year),
			genre = COALESCE(NULLIF($8::text, ''), genre),
			amazon_url = COALESCE(NULLIF($9::text, ''), amazon_url)
		WHERE id = $1
		RETURNING ` + bookColumns
	args := []interface{}{
		ID,
		patch.Title,
		patch.Author,
		patch.Cover,
		patch.UserID,
		patch.Isbn,
		patch.PublishedYear,
		patch.Genre,
		patch.AmazonURL,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	book, err := scanBook(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return book, nil
}

// DeleteBook deletes a book record.
func (r *repository) DeleteBook(ID int64) error {
	if ID < 1 {
		return ErrRecordNotFound
	}
	query := `
		DELETE FROM books
		WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, ID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// SearchBooks retrieves a user's books whose title, author or genre contains
// query, ignoring case. An empty query matches every book.
func (r *repository) SearchBooks(userID int64, query string) ([]*data.Book, error) {
	stmt := `
		SELECT ` + bookColumns + `
		FROM books
		WHERE user_id = $1
		AND (
			$2 = ''
			OR strpos(lower(title), lower($2)) > 0
			OR strpos(lower(author), lower($2)) > 0
			OR strpos(lower(COALESCE(genre, '')), lower($2)) > 0
		)
		ORDER BY id ASC`
	return r.queryBooks(stmt, userID, query)
}

func (r *repository) queryBooks(query string, args ...interface{}) ([]*data.Book, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	books := []*data.Book{}
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}
