package service

import (
	"errors"
	"net/http"

	"github.com/emzola/shelf/data"
	"github.com/emzola/shelf/data/dto"
	"github.com/emzola/shelf/internal/validator"
	"github.com/emzola/shelf/repository"
)

type books interface {
	GetBooks(userID int64) ([]*data.Book, error)
	GetBook(bookID int64) (*data.Book, error)
	SearchBooks(userID int64, query string) ([]*data.Book, error)
	CreateBook(userID int64, requestBody dto.CreateBookRequestBody) (*data.Book, error)
	UpdateBook(bookID int64, requestBody dto.UpdateBookRequestBody) (*data.Book, error)
	UpdateBookCover(bookID int64, r *http.Request) (*data.Book, error)
	DeleteBook(bookID int64) error
}

// GetBooks service lists every book on a user's shelf.
func (s *service) GetBooks(userID int64) ([]*data.Book, error) {
	return s.repo.GetBooks(userID)
}

// GetBook service retrieves the details of a book.
func (s *service) GetBook(bookID int64) (*data.Book, error) {
	book, err := s.repo.GetBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return book, nil
}

// SearchBooks service lists a user's books whose title, author or genre contains query.
func (s *service) SearchBooks(userID int64, query string) ([]*data.Book, error) {
	return s.repo.SearchBooks(userID, query)
}

// CreateBook service validates and stores a new book owned by userID.
// Any userId in the request body is ignored.
func (s *service) CreateBook(userID int64, requestBody dto.CreateBookRequestBody) (*data.Book, error) {
	input := requestBody.Input(userID)
	v := validator.New()
	if data.ValidateBookInput(v, input); !v.Valid() {
		return nil, s.failedValidation(v)
	}
	return s.repo.CreateBook(input)
}

// UpdateBook service applies a partial update to a book. Empty values for
// isbn, publishedYear, genre and amazonUrl leave the stored values in place.
func (s *service) UpdateBook(bookID int64, requestBody dto.UpdateBookRequestBody) (*data.Book, error) {
	patch := requestBody.Patch()
	v := validator.New()
	for _, field := range requestBody.NullFields() {
		v.AddError(field, "must not be null")
	}
	if data.ValidateBookPatch(v, patch); !v.Valid() {
		return nil, s.failedValidation(v)
	}
	book, err := s.repo.UpdateBook(bookID, patch)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return book, nil
}

// DeleteBook service deletes a book. A cover uploaded through the API is
// removed from storage in the background.
func (s *service) DeleteBook(bookID int64) error {
	book, err := s.repo.GetBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return ErrRecordNotFound
		default:
			return err
		}
	}
	err = s.repo.DeleteBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return ErrRecordNotFound
		default:
			return err
		}
	}
	s.removeCover(book.Cover)
	return nil
}
