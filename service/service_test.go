package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/emzola/shelf/clients"
	"github.com/emzola/shelf/config"
	"github.com/emzola/shelf/internal/jsonlog"
	"github.com/emzola/shelf/repository"
)

type fakeLookup struct {
	mu    sync.Mutex
	calls int
	body  string
	err   error
	block bool
}

func (f *fakeLookup) GetItems(ctx context.Context, itemIDs []string) (*clients.GetItemsResponse, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	var resp clients.GetItemsResponse
	if err := json.Unmarshal([]byte(f.body), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type fakeCovers struct {
	mu      sync.Mutex
	put     map[string][]byte
	deleted []string
}

const coverBase = "https://covers.test/"

func newFakeCovers() *fakeCovers {
	return &fakeCovers{put: make(map[string][]byte)}
}

func (f *fakeCovers) Upload(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.put[key] = body
	return coverBase + key, nil
}

func (f *fakeCovers) Owns(url string) bool {
	return strings.HasPrefix(url, coverBase)
}

func (f *fakeCovers) Delete(ctx context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, url)
	return nil
}

func newTestService(t *testing.T, deps Deps) (*service, *sync.WaitGroup) {
	t.Helper()
	cfg := config.Default()
	cfg.Provider.Timeout = 100 * time.Millisecond
	var wg sync.WaitGroup
	logger := jsonlog.New(io.Discard, jsonlog.LevelInfo)
	return New(cfg, &wg, logger, repository.NewMemory(), deps), &wg
}

func multipartRequest(t *testing.T, field string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, "cover.bin")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write(content)
	mw.Close()
	r := httptest.NewRequest(http.MethodPut, "/api/books/1/cover", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}
