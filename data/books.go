package data

import (
	"time"

	"github.com/emzola/shelf/internal/validator"
)

// MinPublishedYear is the earliest publication year accepted for a book.
const MinPublishedYear = 1000

// Book defines a book model. Optional fields are pointers so that an absent
// value is serialised as null.
type Book struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Cover         string  `json:"cover"`
	UserID        int64   `json:"userId"`
	Isbn          *string `json:"isbn"`
	PublishedYear *int32  `json:"publishedYear"`
	Genre         *string `json:"genre"`
	AmazonURL     *string `json:"amazonUrl"`
}

// Copy returns a deep copy of the book.
func (b *Book) Copy() *Book {
	c := *b
	c.Isbn = copyPtr(b.Isbn)
	c.PublishedYear = copyPtr(b.PublishedYear)
	c.Genre = copyPtr(b.Genre)
	c.AmazonURL = copyPtr(b.AmazonURL)
	return &c
}

// BookInput holds the fields required to create a book.
type BookInput struct {
	Title         string
	Author        string
	Cover         string
	UserID        int64
	Isbn          *string
	PublishedYear *int32
	Genre         *string
	AmazonURL     *string
}

// BookPatch holds a partial update. A nil field is left untouched.
type BookPatch struct {
	Title         *string
	Author        *string
	Cover         *string
	UserID        *int64
	Isbn          *string
	PublishedYear *int32
	Genre         *string
	AmazonURL     *string
}

// BookDetails holds the book fields resolved from a marketplace product page.
type BookDetails struct {
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Cover         string  `json:"cover"`
	Isbn          string  `json:"isbn"`
	PublishedYear *int32  `json:"publishedYear,omitempty"`
	Genre         *string `json:"genre,omitempty"`
}

func ValidateBookInput(v *validator.Validator, input *BookInput) {
	v.Check(input.Title != "", "title", "must be provided")
	v.Check(input.Author != "", "author", "must be provided")
	v.Check(input.Cover != "", "cover", "must be provided")
	v.Check(input.UserID > 0, "userId", "must be a positive integer")
	validateOptional(v, input.PublishedYear, input.AmazonURL)
}

func ValidateBookPatch(v *validator.Validator, patch *BookPatch) {
	if patch.Title != nil {
		v.Check(*patch.Title != "", "title", "must not be empty")
	}
	if patch.Author != nil {
		v.Check(*patch.Author != "", "author", "must not be empty")
	}
	if patch.Cover != nil {
		v.Check(*patch.Cover != "", "cover", "must not be empty")
	}
	if patch.UserID != nil {
		v.Check(*patch.UserID > 0, "userId", "must be a positive integer")
	}
	validateOptional(v, patch.PublishedYear, patch.AmazonURL)
}

func validateOptional(v *validator.Validator, year *int32, amazonURL *string) {
	if year != nil {
		v.Check(validator.Between(int(*year), MinPublishedYear, time.Now().Year()), "publishedYear", "must be between 1000 and the current year")
	}
	if amazonURL != nil {
		v.Check(validator.URL(*amazonURL), "amazonUrl", "must be a valid URL")
	}
}

// StringOrNil returns nil for an empty string, matching how optional
// fields are stored.
func StringOrNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return copyPtr(s)
}

// YearOrNil returns nil for an absent or zero year.
func YearOrNil(y *int32) *int32 {
	if y == nil || *y == 0 {
		return nil
	}
	return copyPtr(y)
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
