package service

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/emzola/shelf/data"
	"github.com/emzola/shelf/internal/validator"
	"github.com/emzola/shelf/repository"
	"github.com/gabriel-vasile/mimetype"
)

// MaxCoverSize is the largest cover image accepted, in bytes.
const MaxCoverSize = 2 << 20

var coverMediaTypes = []string{
	"image/jpeg",
	"image/png",
}

// UpdateBookCover service uploads the "cover" form file of r and points the
// book's cover at it.
func (s *service) UpdateBookCover(bookID int64, r *http.Request) (*data.Book, error) {
	if s.covers == nil {
		return nil, ErrCoverStorageDisabled
	}
	book, err := s.repo.GetBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	err = r.ParseMultipartForm(MaxCoverSize)
	if err != nil {
		var maxBytesError *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesError):
			return nil, ErrContentTooLarge
		default:
			return nil, ErrBadRequest
		}
	}
	file, fileHeader, err := r.FormFile("cover")
	if err != nil {
		return nil, ErrBadRequest
	}
	defer file.Close()
	if fileHeader.Size > MaxCoverSize {
		return nil, ErrContentTooLarge
	}
	buffer, mtype, err := s.detectMimeType(file)
	if err != nil {
		return nil, err
	}
	if !validator.Mime(mtype, coverMediaTypes...) {
		return nil, ErrUnsupportedMediaType
	}
	key, err := coverKey(book.ID, mtype.Extension())
	if err != nil {
		return nil, err
	}
	url, err := s.covers.Upload(r.Context(), key, buffer, mtype.String())
	if err != nil {
		return nil, err
	}
	updated, err := s.repo.UpdateBook(book.ID, &data.BookPatch{Cover: &url})
	if err != nil {
		s.removeCover(url)
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if book.Cover != url {
		s.removeCover(book.Cover)
	}
	return updated, nil
}

// detectMimeType reads the whole file and sniffs its content type.
func (s *service) detectMimeType(file multipart.File) ([]byte, *mimetype.MIME, error) {
	buffer, err := io.ReadAll(io.LimitReader(file, MaxCoverSize+1))
	if err != nil {
		return nil, nil, err
	}
	if len(buffer) > MaxCoverSize {
		return nil, nil, ErrContentTooLarge
	}
	return buffer, mimetype.Detect(buffer), nil
}

// coverKey returns a random object key such as covers/12/mfrggzdf.png.
func coverKey(bookID int64, ext string) (string, error) {
	randomBytes := make([]byte, 10)
	_, err := rand.Read(randomBytes)
	if err != nil {
		return "", err
	}
	name := strings.ToLower(base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes))
	return fmt.Sprintf("covers/%d/%s%s", bookID, name, ext), nil
}

// removeCover deletes an uploaded cover in the background. Covers hosted
// elsewhere are left alone.
func (s *service) removeCover(url string) {
	if s.covers == nil || !s.covers.Owns(url) {
		return
	}
	s.background(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := s.covers.Delete(ctx, url)
		if err != nil {
			s.logger.PrintError(err, map[string]string{"cover": url})
		}
	})
}

// background runs fn in a goroutine tracked by the shutdown wait group and
// recovers from panics inside it.
func (s *service) background(fn func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if err := recover(); err != nil {
				s.logger.PrintError(fmt.Errorf("%s", err), nil)
			}
		}()
		fn()
	}()
}
