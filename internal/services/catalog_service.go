package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Kalaitechtubee/ratan-decor-api/internal/domain"
	"github.com/Kalaitechtubee/ratan-decor-api/internal/repository"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// CatalogService serves role-priced product projections with a read-through
// redis cache. Concurrent fills for the same product collapse into one
// database load.
type CatalogService struct {
	store       repository.Store
	redisClient *redis.Client
	group       singleflight.Group
	log         *logrus.Logger
}

func NewCatalogService(store repository.Store, log *logrus.Logger) *CatalogService {
	return &CatalogService{store: store, log: log}
}

func (s *CatalogService) SetRedisClient(client *redis.Client) {
	s.redisClient = client
}

func productCacheKey(id uint) string {
	return fmt.Sprintf("product:%d", id)
}

// GetProduct returns the projection a client of the given role should see.
func (s *CatalogService) GetProduct(ctx context.Context, id uint, role domain.Role) (*domain.ProductView, error) {
	product, err := s.getProductWithCache(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, NewNotFoundError("product")
	}
	view := ProjectProduct(product, role)
	return &view, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, role domain.Role) ([]domain.ProductView, error) {
	products, err := s.store.Products().FindAllActive(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]domain.ProductView, 0, len(products))
	for i := range products {
		views = append(views, ProjectProduct(&products[i], role))
	}
	return views, nil
}

func (s *CatalogService) getProductWithCache(ctx context.Context, id uint) (*domain.Product, error) {
	cacheKey := productCacheKey(id)

	if s.redisClient != nil {
		if cached, err := s.redisClient.Get(ctx, cacheKey).Result(); err == nil {
			var p domain.Product
			if err := json.Unmarshal([]byte(cached), &p); err == nil {
				return &p, nil
			}
		}
	}

	v, err, _ := s.group.Do(cacheKey, func() (interface{}, error) {
		product, err := s.store.Products().FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if product != nil && s.redisClient != nil {
			if data, err := json.Marshal(product); err == nil {
				s.redisClient.Set(ctx, cacheKey, data, time.Minute)
			}
		}
		return product, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Product), nil
}

// WarmupProductCache preloads the cache for a set of product ids at boot.
func (s *CatalogService) WarmupProductCache(ctx context.Context, ids []uint) error {
	if s.redisClient == nil {
		return nil
	}
	for _, id := range ids {
		product, err := s.store.Products().FindByID(ctx, id)
		if err != nil {
			s.log.WithError(err).WithField("productId", id).Warn("cache warmup failed")
			continue
		}
		if product != nil {
			if data, err := json.Marshal(product); err == nil {
				s.redisClient.Set(ctx, productCacheKey(id), data, 5*time.Minute)
			}
		}
	}
	return nil
}

// ProjectProduct turns a raw product row into its client-facing shape with
// the single price applicable to the requester's role.
func ProjectProduct(p *domain.Product, role domain.Role) domain.ProductView {
	view := domain.ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Price:       ResolvePrice(p, role),
		GSTRate:     p.GSTRate,
		IsActive:    p.IsActive,
	}
	if p.Category != nil {
		view.Category = p.Category.Name
	}
	return view
}
