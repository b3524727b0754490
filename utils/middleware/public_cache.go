package middleware

import (
	"errors"
	"log"
	"time"

	"github.com/cse-dept/cms-api/utils/cache"
	"github.com/gofiber/fiber/v2"
)

const publicVersionKey = "public:version"

// PublicCache caches successful public GET responses in Redis. Entries are
// keyed by a version counter that admin writes bump, so a write makes every
// cached page stale at once. A nil cache disables it.
type PublicCache struct {
	redisCache *cache.RedisCache
	ttl        time.Duration
}

// NewPublicCache creates a public response cache
func NewPublicCache(redisCache *cache.RedisCache, ttl time.Duration) *PublicCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &PublicCache{redisCache: redisCache, ttl: ttl}
}

func (p *PublicCache) enabled() bool {
	return p != nil && p.redisCache != nil
}

// Middleware serves cached responses for public GET requests
func (p *PublicCache) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !p.enabled() || c.Method() != fiber.MethodGet {
			return c.Next()
		}

		ctx := c.UserContext()
		version, err := p.redisCache.Get(ctx, publicVersionKey)
		if err != nil && !errors.Is(err, cache.ErrNotFound) {
			return c.Next()
		}
		if version == "" {
			version = "0"
		}
		key := "public:" + version + ":" + c.OriginalURL()

		if body, err := p.redisCache.GetBytes(ctx, key); err == nil {
			c.Set("X-Cache", "HIT")
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
			return c.Send(body)
		}

		if err := c.Next(); err != nil {
			return err
		}

		if c.Response().StatusCode() == fiber.StatusOK {
			body := append([]byte(nil), c.Response().Body()...)
			if err := p.redisCache.Set(ctx, key, body, p.ttl); err != nil {
				log.Printf("public cache store failed: %v", err)
			}
		}
		c.Set("X-Cache", "MISS")
		return nil
	}
}

// Invalidate bumps the cache version
func (p *PublicCache) Invalidate(c *fiber.Ctx) {
	if !p.enabled() {
		return
	}
	if _, err := p.redisCache.Increment(c.UserContext(), publicVersionKey); err != nil {
		log.Printf("public cache invalidate failed: %v", err)
	}
}

// InvalidateOnWrite bumps the cache version after a successful admin write
func (p *PublicCache) InvalidateOnWrite() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if c.Method() != fiber.MethodGet && err == nil && c.Response().StatusCode() < fiber.StatusBadRequest {
			p.Invalidate(c)
		}
		return err
	}
}
