package handler

import (
	"context"
	"net/http"
)

// contextKey prevents collisions with context keys from other packages.
type contextKey string

const (
	userIDContextKey    = contextKey("userID")
	requestIDContextKey = contextKey("requestID")
)

// contextSetUserID returns a copy of the request carrying the shelf owner's ID.
func (h *Handler) contextSetUserID(r *http.Request, userID int64) *http.Request {
	ctx := context.WithValue(r.Context(), userIDContextKey, userID)
	return r.WithContext(ctx)
}

// contextGetUserID retrieves the shelf owner's ID. It panics when the
// setShelfOwner middleware did not run, which is a programming error.
func (h *Handler) contextGetUserID(r *http.Request) int64 {
	userID, ok := r.Context().Value(userIDContextKey).(int64)
	if !ok {
		panic("missing user id value in request context")
	}
	return userID
}

func (h *Handler) contextSetRequestID(r *http.Request, requestID string) *http.Request {
	ctx := context.WithValue(r.Context(), requestIDContextKey, requestID)
	return r.WithContext(ctx)
}

// contextGetRequestID returns "" outside the requestID middleware.
func (h *Handler) contextGetRequestID(r *http.Request) string {
	requestID, _ := r.Context().Value(requestIDContextKey).(string)
	return requestID
}
