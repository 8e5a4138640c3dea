package repository

import (
	"sort"
	"strings"
	"sync"

	"github.com/emzola/shelf/data"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// memory is the in-process Repository. Records do not survive a restart.
type memory struct {
	mu     sync.RWMutex
	books  map[int64]*data.Book
	lastID int64
}

// NewMemory creates an empty in-memory Repository.
func NewMemory() *memory {
	return &memory{books: make(map[int64]*data.Book)}
}

// GetBooks retrieves all books owned by a user in ascending ID order.
func (m *memory) GetBooks(userID int64) ([]*data.Book, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.filter(func(b *data.Book) bool { return b.UserID == userID }), nil
}

// GetBook retrieves a copy of a book by its ID.
func (m *memory) GetBook(ID int64) (*data.Book, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	book, ok := m.books[ID]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return book.Copy(), nil
}

// CreateBook stores a new book under the next ID. IDs are never reused.
func (m *memory) CreateBook(input *data.BookInput) (*data.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastID++
	book := &data.Book{
		ID:            m.lastID,
		Title:         input.Title,
		Author:        input.Author,
		Cover:         input.Cover,
		UserID:        input.UserID,
		Isbn:          data.StringOrNil(input.Isbn),
		PublishedYear: data.YearOrNil(input.PublishedYear),
		Genre:         data.StringOrNil(input.Genre),
		AmazonURL:     data.StringOrNil(input.AmazonURL),
	}
	m.books[book.ID] = book
	return book.Copy(), nil
}

// UpdateBook merges patch into a stored book. Required fields are
// overwritten when present; optional fields only when the new value is
// non-empty, so an update can never clear them.
func (m *memory) UpdateBook(ID int64, patch *data.BookPatch) (*data.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.books[ID]
	if !ok {
		return nil, ErrRecordNotFound
	}
	book := existing.Copy()
	if patch.Title != nil {
		book.Title = *patch.Title
	}
	if patch.Author != nil {
		book.Author = *patch.Author
	}
	if patch.Cover != nil {
		book.Cover = *patch.Cover
	}
	if patch.UserID != nil {
		book.UserID = *patch.UserID
	}
	if isbn := data.StringOrNil(patch.Isbn); isbn != nil {
		book.Isbn = isbn
	}
	if year := data.YearOrNil(patch.PublishedYear); year != nil {
		book.PublishedYear = year
	}
	if genre := data.StringOrNil(patch.Genre); genre != nil {
		book.Genre = genre
	}
	if amazonURL := data.StringOrNil(patch.AmazonURL); amazonURL != nil {
		book.AmazonURL = amazonURL
	}
	m.books[ID] = book
	return book.Copy(), nil
}

// DeleteBook removes a book permanently.
func (m *memory) DeleteBook(ID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.books[ID]; !ok {
		return ErrRecordNotFound
	}
	delete(m.books, ID)
	return nil
}

// SearchBooks retrieves a user's books whose title, author or genre contains
// query. Both sides are lowercased, the way Postgres lower() compares them,
// so "ss" does not match "ß".
func (m *memory) SearchBooks(userID int64, query string) ([]*data.Book, error) {
	lower := cases.Lower(language.Und)
	q := lower.String(query)
	contains := func(s string) bool {
		return strings.Contains(lower.String(s), q)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.filter(func(b *data.Book) bool {
		if b.UserID != userID {
			return false
		}
		return contains(b.Title) || contains(b.Author) || (b.Genre != nil && contains(*b.Genre))
	}), nil
}

// filter returns copies of the matching books sorted by ID. Callers must hold mu.
func (m *memory) filter(match func(*data.Book) bool) []*data.Book {
	books := []*data.Book{}
	for _, book := range m.books {
		if match(book) {
			books = append(books, book.Copy())
		}
	}
	sort.Slice(books, func(i, j int) bool { return books[i].ID < books[j].ID })
	return books
}
