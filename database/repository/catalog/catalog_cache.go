package catalogRepo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"servicebook/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const serviceCachePrefix = "catalog:service:"

// CachedCatalog is a Redis read-through cache in front of a CatalogLookup.
// Only service lookups are cached; professional existence is always read
// from the source so deactivations take effect immediately.
type CachedCatalog struct {
	inner  CatalogLookup
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedCatalog(inner CatalogLookup, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedCatalog {
	return &CachedCatalog{inner: inner, client: client, ttl: ttl, logger: logger}
}

func (c *CachedCatalog) GetService(ctx context.Context, serviceID string) (*models.Service, error) {
	key := serviceCachePrefix + serviceID

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var s models.Service
		if jsonErr := json.Unmarshal(raw, &s); jsonErr == nil {
			return &s, nil
		}
		c.logger.Warn("discarding undecodable cached service", zap.String("serviceID", serviceID))
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("catalog cache read failed", zap.String("serviceID", serviceID), zap.Error(err))
	}

	s, err := c.inner.GetService(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(s); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Warn("catalog cache write failed", zap.String("serviceID", serviceID), zap.Error(err))
		}
	}
	return s, nil
}

func (c *CachedCatalog) ProfessionalExists(ctx context.Context, professionalID string) (bool, error) {
	return c.inner.ProfessionalExists(ctx, professionalID)
}
