package catalog

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/307second/storefront-gateway/internal/backend"
	"github.com/307second/storefront-gateway/pkg/logger"
	"github.com/307second/storefront-gateway/pkg/redis"
)

var cacheKey = redis.Key("catalog", "products")

// Reader lists catalog products from the remote backend.
type Reader interface {
	ListProducts(ctx context.Context) ([]backend.Product, error)
}

// Writer covers the product CRUD passthrough calls.
type Writer interface {
	GetProduct(ctx context.Context, id int) (backend.Product, error)
	CreateProduct(ctx context.Context, input backend.ProductInput) (backend.Product, error)
	UpdateProduct(ctx context.Context, id int, input backend.ProductInput) (backend.Product, error)
	DeleteProduct(ctx context.Context, id int) error
}

// Cache is the slice of the redis client the service needs. A nil cache
// means every load goes to the backend.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Service owns the in-memory catalog snapshot. Loads go cache-first, then
// backend; a load failure leaves no snapshot and surfaces a retryable
// fetch error, so the caller can offer a retry affordance.
type Service struct {
	reader   Reader
	writer   Writer
	cache    Cache
	cacheTTL time.Duration
	logg     *logger.Logger

	mu       sync.RWMutex
	products []backend.Product
	loaded   bool
}

type ServiceParams struct {
	Reader   Reader
	Writer   Writer
	Cache    Cache
	CacheTTL time.Duration
	Logger   *logger.Logger
}

func NewService(params ServiceParams) *Service {
	return &Service{
		reader:   params.Reader,
		writer:   params.Writer,
		cache:    params.Cache,
		cacheTTL: params.CacheTTL,
		logg:     params.Logger,
	}
}

// Products returns the catalog snapshot, loading it on first use. The
// returned slice is a copy; callers may reorder it freely.
func (s *Service) Products(ctx context.Context) ([]backend.Product, error) {
	s.mu.RLock()
	if s.loaded {
		snapshot := s.snapshotLocked()
		s.mu.RUnlock()
		return snapshot, nil
	}
	s.mu.RUnlock()

	return s.load(ctx, false)
}

// Reload bypasses the cache and refetches from the backend. This is the
// retry path after a failed load and the invalidation path after writes.
func (s *Service) Reload(ctx context.Context) ([]backend.Product, error) {
	return s.load(ctx, true)
}

func (s *Service) load(ctx context.Context, bypassCache bool) ([]backend.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !bypassCache && s.loaded {
		return s.snapshotLocked(), nil
	}

	if !bypassCache {
		if products, ok := s.cachedProducts(ctx); ok {
			s.products = products
			s.loaded = true
			return s.snapshotLocked(), nil
		}
	}

	products, err := s.reader.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	s.products = products
	s.loaded = true
	s.storeInCache(ctx, products)
	return s.snapshotLocked(), nil
}

func (s *Service) snapshotLocked() []backend.Product {
	snapshot := make([]backend.Product, len(s.products))
	copy(snapshot, s.products)
	return snapshot
}

func (s *Service) cachedProducts(ctx context.Context) ([]backend.Product, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, cacheKey)
	if err != nil {
		if !redis.IsMiss(err) && s.logg != nil {
			s.logg.Warn(ctx, "catalog cache read failed")
		}
		return nil, false
	}
	var products []backend.Product
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, "catalog cache entry corrupt, refetching")
		}
		return nil, false
	}
	return products, true
}

func (s *Service) storeInCache(ctx context.Context, products []backend.Product) {
	if s.cache == nil {
		return
	}
	encoded, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey, string(encoded), s.cacheTTL); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "catalog cache write failed")
	}
}

func (s *Service) invalidate(ctx context.Context) {
	s.mu.Lock()
	s.loaded = false
	s.products = nil
	s.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.Del(ctx, cacheKey); err != nil && s.logg != nil {
			s.logg.Warn(ctx, "catalog cache invalidation failed")
		}
	}
}

// GetProduct fetches one product straight from the backend.
func (s *Service) GetProduct(ctx context.Context, id int) (backend.Product, error) {
	return s.writer.GetProduct(ctx, id)
}

// CreateProduct writes through to the backend and drops the stale snapshot.
func (s *Service) CreateProduct(ctx context.Context, input backend.ProductInput) (backend.Product, error) {
	product, err := s.writer.CreateProduct(ctx, input)
	if err != nil {
		return backend.Product{}, err
	}
	s.invalidate(ctx)
	return product, nil
}

// UpdateProduct writes through to the backend and drops the stale snapshot.
func (s *Service) UpdateProduct(ctx context.Context, id int, input backend.ProductInput) (backend.Product, error) {
	product, err := s.writer.UpdateProduct(ctx, id, input)
	if err != nil {
		return backend.Product{}, err
	}
	s.invalidate(ctx)
	return product, nil
}

// DeleteProduct writes through to the backend and drops the stale snapshot.
func (s *Service) DeleteProduct(ctx context.Context, id int) error {
	if err := s.writer.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}
