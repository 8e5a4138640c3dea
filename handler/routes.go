package handler

import (
	"expvar"
	"net/http"

	_ "github.com/emzola/shelf/docs"
	"github.com/julienschmidt/httprouter"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func (h *Handler) Routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(h.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(h.methodNotAllowed)

	router.HandlerFunc(http.MethodGet, "/api/books", h.listBooksHandler)
	router.HandlerFunc(http.MethodPost, "/api/books", h.createBookHandler)
	router.HandlerFunc(http.MethodGet, "/api/books/search", h.searchBooksHandler)
	router.HandlerFunc(http.MethodGet, "/api/books/fetch-amazon", h.fetchAmazonBookHandler)
	router.HandlerFunc(http.MethodPatch, "/api/books/:id", h.updateBookHandler)
	router.HandlerFunc(http.MethodDelete, "/api/books/:id", h.deleteBookHandler)
	router.HandlerFunc(http.MethodPut, "/api/books/:id/cover", h.updateBookCoverHandler)

	router.HandlerFunc(http.MethodGet, "/api/healthcheck", h.healthcheckHandler)
	router.HandlerFunc(http.MethodGet, "/debug/vars", h.basicAuth(expvar.Handler().ServeHTTP))

	// Swagger routes
	router.HandlerFunc(http.MethodGet, "/docs/*any", httpSwagger.Handler(httpSwagger.URL("/docs/doc.json")))

	return h.metrics(h.recoverPanic(h.requestID(h.enableCORS(h.rateLimit(h.setShelfOwner(router))))))
}
