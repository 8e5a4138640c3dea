package service

import (
	"context"
	"sync"
	"time"

	"github.com/emzola/shelf/clients"
	"github.com/emzola/shelf/config"
	"github.com/emzola/shelf/data"
	"github.com/emzola/shelf/internal/jsonlog"
	"github.com/emzola/shelf/repository"
	"github.com/jellydator/ttlcache/v3"
)

type Service interface {
	books
	metadata
}

// ItemLookup fetches product metadata by ASIN. *clients.ProductClient implements it.
type ItemLookup interface {
	GetItems(ctx context.Context, itemIDs []string) (*clients.GetItemsResponse, error)
}

// CoverStore keeps uploaded cover images. *clients.CoverBucket implements it.
type CoverStore interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) (string, error)
	Owns(url string) bool
	Delete(ctx context.Context, url string) error
}

// Deps holds the optional collaborators of the service. A nil Provider makes
// FetchBookDetails return placeholder details; a nil Covers disables cover
// uploads.
type Deps struct {
	Provider ItemLookup
	Covers   CoverStore
	Cache    *ttlcache.Cache[string, data.BookDetails]
}

// service defines the service layer.
type service struct {
	config   config.Config
	wg       *sync.WaitGroup
	logger   *jsonlog.Logger
	repo     repository.Repository
	provider ItemLookup
	covers   CoverStore
	cache    *ttlcache.Cache[string, data.BookDetails]
	now      func() time.Time
}

// New creates a new instance of Service.
func New(cfg config.Config, wg *sync.WaitGroup, logger *jsonlog.Logger, repo repository.Repository, deps Deps) *service {
	cache := deps.Cache
	if cache == nil {
		cache = ttlcache.New(ttlcache.WithTTL[string, data.BookDetails](cfg.Provider.CacheTTL))
	}
	return &service{
		config:   cfg,
		wg:       wg,
		logger:   logger,
		repo:     repo,
		provider: deps.Provider,
		covers:   deps.Covers,
		cache:    cache,
		now:      time.Now,
	}
}
