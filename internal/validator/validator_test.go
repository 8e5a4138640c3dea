package validator

import (
	"regexp"
	"testing"

	"github.com/gabriel-vasile/mimetype"
	"github.com/stretchr/testify/assert"
)

func TestValidator(t *testing.T) {
	v := New()
	assert.True(t, v.Valid())

	v.Check(false, "title", "must be provided")
	v.Check(false, "title", "second message is dropped")
	v.Check(true, "cover", "never recorded")
	v.AddError("author", "must be provided")

	assert.False(t, v.Valid())
	assert.Equal(t, "must be provided", v.Errors["title"])
	assert.NotContains(t, v.Errors, "cover")
	assert.Equal(t, "author: must be provided; title: must be provided", v.String())
}

func TestURL(t *testing.T) {
	tests := map[string]bool{
		"https://www.amazon.co.jp/dp/4101010013": true,
		"http://localhost:4000/x":                true,
		"":                                       false,
		"not a url":                              false,
		"/dp/4101010013":                         false,
		"mailto:someone@example.com":             false,
	}
	for in, want := range tests {
		assert.Equal(t, want, URL(in), in)
	}
}

func TestHelpers(t *testing.T) {
	assert.True(t, In("info", "info", "error"))
	assert.False(t, In("debug", "info", "error"))
	assert.True(t, Between(1000, 1000, 2000))
	assert.False(t, Between(2001, 1000, 2000))
	assert.True(t, Matches("B00TEST123", regexp.MustCompile(`^[A-Z0-9]{10}$`)))

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	assert.True(t, Mime(mimetype.Detect(png), "image/jpeg", "image/png"))
	assert.False(t, Mime(mimetype.Detect([]byte("plain text")), "image/jpeg", "image/png"))
}
