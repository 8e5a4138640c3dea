package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/emzola/shelf/data/dto"
	"github.com/emzola/shelf/service"
)

// ListBooks godoc
// @Summary List all books on the shelf
// @Tags books
// @Produce json
// @Success 200 {array} data.Book
// @Failure 500
// @Router /api/books [get]
func (h *Handler) listBooksHandler(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.GetBooks(h.contextGetUserID(r))
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, books, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// SearchBooks godoc
// @Summary Search books by title, author or genre
// @Description Case-insensitive substring match. An empty q matches every book.
// @Tags books
// @Produce json
// @Param q query string true "Search text"
// @Success 200 {array} data.Book
// @Failure 400
// @Failure 500
// @Router /api/books/search [get]
func (h *Handler) searchBooksHandler(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	if !qs.Has("q") {
		h.badRequestResponse(w, r, errors.New("query parameter q must be provided"))
		return
	}
	books, err := h.service.SearchBooks(h.contextGetUserID(r), h.readString(qs, "q", ""))
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, books, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// FetchAmazonBook godoc
// @Summary Resolve book details from a marketplace product URL
// @Description Extracts the ASIN from a /dp/<ASIN> URL and looks it up. Placeholder details are returned when no provider is configured.
// @Tags books
// @Produce json
// @Param url query string true "Product page URL"
// @Success 200 {object} data.BookDetails
// @Failure 400
// @Router /api/books/fetch-amazon [get]
func (h *Handler) fetchAmazonBookHandler(w http.ResponseWriter, r *http.Request) {
	rawURL := h.readString(r.URL.Query(), "url", "")
	details, err := h.service.FetchBookDetails(r.Context(), rawURL)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrInvalidURL),
			errors.Is(err, service.ErrProviderNotFound),
			errors.Is(err, service.ErrResolutionFailed):
			h.badRequestResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, details, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// CreateBook godoc
// @Summary Add a book to the shelf
// @Tags books
// @Accept json
// @Produce json
// @Param body body dto.CreateBookRequestBody true "JSON payload required to create a book"
// @Success 201 {object} data.Book
// @Failure 400
// @Failure 500
// @Router /api/books [post]
func (h *Handler) createBookHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.CreateBookRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	book, err := h.service.CreateBook(h.contextGetUserID(r), requestBody)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/api/books/%d", book.ID))
	err = h.encodeJSON(w, http.StatusCreated, book, headers)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// UpdateBook godoc
// @Summary Partially update a book
// @Description Empty isbn, publishedYear, genre or amazonUrl values keep the stored value. A null title, author, cover or userId is rejected.
// @Tags books
// @Accept json
// @Produce json
// @Param id path int true "ID of book to update"
// @Param body body dto.UpdateBookRequestBody true "Fields to change"
// @Success 200 {object} data.Book
// @Failure 400
// @Failure 404
// @Failure 500
// @Router /api/books/{id} [patch]
func (h *Handler) updateBookHandler(w http.ResponseWriter, r *http.Request) {
	bookID, err := h.readIDParam(r, "id")
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	var requestBody dto.UpdateBookRequestBody
	err = h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	book, err := h.service.UpdateBook(bookID, requestBody)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrRecordNotFound):
			h.bookNotFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, book, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// UpdateBookCover godoc
// @Summary Upload a cover image for a book
// @Tags books
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "ID of book"
// @Param cover formData file true "JPEG or PNG image, at most 2MB"
// @Success 200 {object} data.Book
// @Failure 400
// @Failure 404
// @Failure 413
// @Failure 415
// @Failure 503
// @Router /api/books/{id}/cover [put]
func (h *Handler) updateBookCoverHandler(w http.ResponseWriter, r *http.Request) {
	bookID, err := h.readIDParam(r, "id")
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	// Leave room for the multipart envelope around the image
	r.Body = http.MaxBytesReader(w, r.Body, service.MaxCoverSize+64<<10)
	book, err := h.service.UpdateBookCover(bookID, r)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCoverStorageDisabled):
			h.serviceUnavailableResponse(w, r, err)
		case errors.Is(err, service.ErrRecordNotFound):
			h.bookNotFoundResponse(w, r)
		case errors.Is(err, service.ErrContentTooLarge):
			h.contentTooLargeResponse(w, r)
		case errors.Is(err, service.ErrBadRequest):
			h.badRequestResponse(w, r, errors.New("body must be a multipart form with a cover file"))
		case errors.Is(err, service.ErrUnsupportedMediaType):
			h.unsupportedMediaTypeResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, book, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// DeleteBook godoc
// @Summary Delete a book
// @Tags books
// @Param id path int true "ID of book to delete"
// @Success 204
// @Failure 400
// @Failure 404
// @Failure 500
// @Router /api/books/{id} [delete]
func (h *Handler) deleteBookHandler(w http.ResponseWriter, r *http.Request) {
	bookID, err := h.readIDParam(r, "id")
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	err = h.service.DeleteBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.bookNotFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
