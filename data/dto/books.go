package dto

import "github.com/emzola/shelf/data"

// CreateBookRequestBody defines the request body for the CreateBook service.
// UserID is accepted but always replaced by the shelf owner.
type CreateBookRequestBody struct {
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Cover         string  `json:"cover"`
	UserID        *int64  `json:"userId"`
	Isbn          *string `json:"isbn"`
	PublishedYear *int32  `json:"publishedYear"`
	Genre         *string `json:"genre"`
	AmazonURL     *string `json:"amazonUrl"`
}

// Input converts the request body into a BookInput owned by userID.
func (b CreateBookRequestBody) Input(userID int64) *data.BookInput {
	return &data.BookInput{
		Title:         b.Title,
		Author:        b.Author,
		Cover:         b.Cover,
		UserID:        userID,
		Isbn:          b.Isbn,
		PublishedYear: b.PublishedYear,
		Genre:         b.Genre,
		AmazonURL:     b.AmazonURL,
	}
}

// UpdateBookRequestBody defines the request body for the UpdateBook service. Optional fields are
// pointers so that a nil value leaves the stored one alone. Required fields use Field so that an
// explicit null can be rejected instead of being mistaken for an absent key.
type UpdateBookRequestBody struct {
	Title         Field[string] `json:"title"`
	Author        Field[string] `json:"author"`
	Cover         Field[string] `json:"cover"`
	UserID        Field[int64]  `json:"userId"`
	Isbn          *string       `json:"isbn"`
	PublishedYear *int32        `json:"publishedYear"`
	Genre         *string       `json:"genre"`
	AmazonURL     *string       `json:"amazonUrl"`
}

// NullFields returns the JSON names of required fields the client explicitly set to null.
func (b UpdateBookRequestBody) NullFields() []string {
	var fields []string
	if b.Title.Null {
		fields = append(fields, "title")
	}
	if b.Author.Null {
		fields = append(fields, "author")
	}
	if b.Cover.Null {
		fields = append(fields, "cover")
	}
	if b.UserID.Null {
		fields = append(fields, "userId")
	}
	return fields
}

// Patch converts the request body into a BookPatch.
func (b UpdateBookRequestBody) Patch() *data.BookPatch {
	return &data.BookPatch{
		Title:         b.Title.Ptr(),
		Author:        b.Author.Ptr(),
		Cover:         b.Cover.Ptr(),
		UserID:        b.UserID.Ptr(),
		Isbn:          b.Isbn,
		PublishedYear: b.PublishedYear,
		Genre:         b.Genre,
		AmazonURL:     b.AmazonURL,
	}
}
