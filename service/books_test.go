package service

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/emzola/shelf/data/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func validCreateBody() dto.CreateBookRequestBody {
	return dto.CreateBookRequestBody{
		Title:  "Dune",
		Author: "Frank Herbert",
		Cover:  "https://example.com/dune.jpg",
	}
}

func TestCreateBookUsesShelfOwner(t *testing.T) {
	s, _ := newTestService(t, Deps{})
	body := validCreateBody()
	other := int64(99)
	body.UserID = &other

	book, err := s.CreateBook(1, body)
	require.NoError(t, err)
	assert.Equal(t, int64(1), book.ID)
	assert.Equal(t, int64(1), book.UserID)
}

func TestCreateBookValidation(t *testing.T) {
	s, _ := newTestService(t, Deps{})
	body := validCreateBody()
	body.Title = ""
	year := int32(999)
	body.PublishedYear = &year

	_, err := s.CreateBook(1, body)
	require.ErrorIs(t, err, ErrFailedValidation)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, map[string]string{
		"title":         "must be provided",
		"publishedYear": "must be between 1000 and the current year",
	}, verr.Errors)

	books, err := s.GetBooks(1)
	require.NoError(t, err)
	assert.Empty(t, books, "rejected input is not stored")
}

func TestUpdateBook(t *testing.T) {
	s, _ := newTestService(t, Deps{})
	created, err := s.CreateBook(1, validCreateBody())
	require.NoError(t, err)

	updated, err := s.UpdateBook(created.ID, dto.UpdateBookRequestBody{Genre: strPtr("SF")})
	require.NoError(t, err)
	assert.Equal(t, "SF", *updated.Genre)

	_, err = s.UpdateBook(created.ID, dto.UpdateBookRequestBody{Author: dto.NewField("")})
	assert.ErrorIs(t, err, ErrFailedValidation)

	_, err = s.UpdateBook(created.ID, dto.UpdateBookRequestBody{AmazonURL: strPtr("amazon")})
	assert.ErrorIs(t, err, ErrFailedValidation)

	_, err = s.UpdateBook(404, dto.UpdateBookRequestBody{Title: dto.NewField("x")})
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestUpdateBookRejectsNullRequiredFields(t *testing.T) {
	s, _ := newTestService(t, Deps{})
	created, err := s.CreateBook(1, validCreateBody())
	require.NoError(t, err)

	var body dto.UpdateBookRequestBody
	require.NoError(t, json.Unmarshal([]byte(`{"title":null,"cover":null,"genre":null}`), &body))
	_, err = s.UpdateBook(created.ID, body)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, map[string]string{"title": "must not be null", "cover": "must not be null"}, validationErr.Errors)

	got, err := s.GetBook(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got, "rejected patch leaves the book untouched")
}

func TestGetAndDeleteBook(t *testing.T) {
	s, _ := newTestService(t, Deps{})
	created, err := s.CreateBook(1, validCreateBody())
	require.NoError(t, err)

	got, err := s.GetBook(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	require.NoError(t, s.DeleteBook(created.ID))
	_, err = s.GetBook(created.ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.ErrorIs(t, s.DeleteBook(created.ID), ErrRecordNotFound)
}

func TestSearchBooks(t *testing.T) {
	s, _ := newTestService(t, Deps{})
	_, err := s.CreateBook(1, validCreateBody())
	require.NoError(t, err)

	books, err := s.SearchBooks(1, "HERBERT")
	require.NoError(t, err)
	assert.Len(t, books, 1)

	books, err = s.SearchBooks(2, "HERBERT")
	require.NoError(t, err)
	assert.Empty(t, books)
}
