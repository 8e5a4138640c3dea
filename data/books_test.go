package data

import (
	"testing"
	"time"

	"github.com/emzola/shelf/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func yearPtr(y int32) *int32  { return &y }

func TestValidateBookInput(t *testing.T) {
	thisYear := int32(time.Now().Year())
	tests := []struct {
		name   string
		input  BookInput
		fields []string
	}{
		{
			name:  "minimal",
			input: BookInput{Title: "Dune", Author: "Frank Herbert", Cover: "c", UserID: 1},
		},
		{
			name:   "missing required",
			input:  BookInput{UserID: 1},
			fields: []string{"title", "author", "cover"},
		},
		{
			name:   "zero user",
			input:  BookInput{Title: "Dune", Author: "Frank Herbert", Cover: "c"},
			fields: []string{"userId"},
		},
		{
			name:  "current year allowed",
			input: BookInput{Title: "Dune", Author: "Frank Herbert", Cover: "c", UserID: 1, PublishedYear: yearPtr(thisYear)},
		},
		{
			name:   "future year",
			input:  BookInput{Title: "Dune", Author: "Frank Herbert", Cover: "c", UserID: 1, PublishedYear: yearPtr(thisYear + 1)},
			fields: []string{"publishedYear"},
		},
		{
			name:   "year before 1000",
			input:  BookInput{Title: "Dune", Author: "Frank Herbert", Cover: "c", UserID: 1, PublishedYear: yearPtr(999)},
			fields: []string{"publishedYear"},
		},
		{
			name:   "relative amazon url",
			input:  BookInput{Title: "Dune", Author: "Frank Herbert", Cover: "c", UserID: 1, AmazonURL: strPtr("dp/B000000000")},
			fields: []string{"amazonUrl"},
		},
		{
			name:  "absolute amazon url",
			input: BookInput{Title: "Dune", Author: "Frank Herbert", Cover: "c", UserID: 1, AmazonURL: strPtr("https://www.amazon.co.jp/dp/4101010013")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validator.New()
			ValidateBookInput(v, &tt.input)
			assert.Len(t, v.Errors, len(tt.fields))
			for _, f := range tt.fields {
				assert.Contains(t, v.Errors, f)
			}
		})
	}
}

func TestValidateBookPatch(t *testing.T) {
	v := validator.New()
	ValidateBookPatch(v, &BookPatch{})
	assert.True(t, v.Valid(), "empty patch")

	v = validator.New()
	ValidateBookPatch(v, &BookPatch{Title: strPtr(""), Author: strPtr(""), Cover: strPtr("")})
	assert.Equal(t, map[string]string{
		"title":  "must not be empty",
		"author": "must not be empty",
		"cover":  "must not be empty",
	}, v.Errors)

	v = validator.New()
	ValidateBookPatch(v, &BookPatch{Isbn: strPtr(""), Genre: strPtr("")})
	assert.True(t, v.Valid(), "empty optional strings are allowed")
}

func TestBookCopy(t *testing.T) {
	book := &Book{ID: 1, Title: "Dune", Genre: strPtr("SF"), PublishedYear: yearPtr(1965)}
	c := book.Copy()
	require.Equal(t, book, c)

	*c.Genre = "Fantasy"
	*c.PublishedYear = 2000
	c.Title = "Other"
	assert.Equal(t, "SF", *book.Genre)
	assert.Equal(t, int32(1965), *book.PublishedYear)
	assert.Equal(t, "Dune", book.Title)
}

func TestOrNil(t *testing.T) {
	assert.Nil(t, StringOrNil(nil))
	assert.Nil(t, StringOrNil(strPtr("")))
	assert.Equal(t, "x", *StringOrNil(strPtr("x")))
	assert.Nil(t, YearOrNil(yearPtr(0)))
	assert.Equal(t, int32(1999), *YearOrNil(yearPtr(1999)))
}
