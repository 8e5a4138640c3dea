package service

import (
	"context"
	"fmt"
	"regexp"

	"github.com/emzola/shelf/data"
	"github.com/emzola/shelf/internal/validator"
	"github.com/jellydator/ttlcache/v3"
)

// Placeholder details returned when no product provider is configured.
const (
	PlaceholderTitle  = "Sample Book (placeholder)"
	PlaceholderAuthor = "Sample Author"
	PlaceholderCover  = "https://via.placeholder.com/300x400"
	PlaceholderGenre  = "Sample Genre"
)

// asinRX matches the product identifier in marketplace URLs such as
// https://www.amazon.co.jp/dp/4101010013.
var asinRX = regexp.MustCompile(`/dp/([A-Z0-9]{10})`)

type metadata interface {
	FetchBookDetails(ctx context.Context, rawURL string) (*data.BookDetails, error)
}

// ExtractASIN returns the product identifier of a /dp/<ASIN> URL.
func ExtractASIN(rawURL string) (string, bool) {
	m := asinRX.FindStringSubmatch(rawURL)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// FetchBookDetails service resolves book fields from a marketplace product URL.
// Nothing is stored; the caller decides whether to create a book from the result.
func (s *service) FetchBookDetails(ctx context.Context, rawURL string) (*data.BookDetails, error) {
	v := validator.New()
	v.Check(rawURL != "", "url", "must be provided")
	v.Check(validator.URL(rawURL), "url", "must be a valid URL")
	if !v.Valid() {
		return nil, s.failedValidation(v)
	}
	asin, ok := ExtractASIN(rawURL)
	if !ok {
		return nil, ErrInvalidURL
	}
	if s.provider == nil {
		return s.placeholderDetails(asin), nil
	}
	if item := s.cache.Get(asin); item != nil {
		details := item.Value()
		return &details, nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.config.Provider.Timeout)
	defer cancel()
	resp, err := s.provider.GetItems(ctx, []string{asin})
	if err != nil {
		s.logger.PrintError(err, map[string]string{"asin": asin})
		return nil, fmt.Errorf("%w: %v", ErrResolutionFailed, err)
	}
	items := resp.Items()
	if len(items) == 0 {
		return nil, ErrProviderNotFound
	}
	item := items[0]
	details := data.BookDetails{
		Title:  item.Title(),
		Author: item.Author(),
		Cover:  item.CoverURL(),
		Isbn:   asin,
	}
	if year, ok := item.PublicationYear(); ok {
		details.PublishedYear = &year
	}
	if group := item.ProductGroup(); group != "" {
		details.Genre = &group
	}
	s.cache.Set(asin, details, ttlcache.DefaultTTL)
	return &details, nil
}

// placeholderDetails returns fixed details shaped like a real lookup.
func (s *service) placeholderDetails(asin string) *data.BookDetails {
	year := int32(s.now().Year())
	genre := PlaceholderGenre
	return &data.BookDetails{
		Title:         PlaceholderTitle,
		Author:        PlaceholderAuthor,
		Cover:         PlaceholderCover,
		Isbn:          asin,
		PublishedYear: &year,
		Genre:         &genre,
	}
}
