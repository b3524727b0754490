package middleware

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/cse-dept/cms-api/utils/cache"
	"github.com/cse-dept/cms-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

const attemptWindow = 15 * time.Minute

// BruteForceProtection handles brute force protection using Redis.
// A nil cache disables it.
type BruteForceProtection struct {
	redisCache *cache.RedisCache
}

// NewBruteForceProtection creates a new brute force protection instance
func NewBruteForceProtection(redisCache *cache.RedisCache) *BruteForceProtection {
	return &BruteForceProtection{
		redisCache: redisCache,
	}
}

func attemptKey(ip string) string { return "brute_force:attempts:" + ip }
func lockKey(ip string) string    { return "brute_force:lock:" + ip }

// LockoutFor returns the lockout applied after the given number of failed attempts
func LockoutFor(attempts int64) time.Duration {
	switch {
	case attempts >= 25:
		return 24 * time.Hour
	case attempts >= 10:
		return time.Hour
	case attempts >= 5:
		return 2 * time.Minute
	default:
		return 0
	}
}

// CheckAndRecordAttempt middleware checks if IP is locked out
func (b *BruteForceProtection) CheckAndRecordAttempt() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if b == nil || b.redisCache == nil {
			return c.Next()
		}

		ctx := c.UserContext()
		key := lockKey(c.IP())

		locked, err := b.redisCache.Exists(ctx, key)
		if err != nil {
			// Redis outage must not lock out legitimate users
			log.Printf("brute force check failed: %v", err)
			return c.Next()
		}

		if locked {
			ttl, _ := b.redisCache.TTL(ctx, key)
			retryAfter := int(ttl.Seconds())
			if retryAfter < 0 {
				retryAfter = 60
			}

			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter))
			return response.TooManyRequests(c, fmt.Sprintf("Too many failed attempts. Try again in %d seconds", retryAfter))
		}

		return c.Next()
	}
}

// RecordFailedAttempt records a failed login attempt and applies progressive lockouts
func (b *BruteForceProtection) RecordFailedAttempt(c *fiber.Ctx, ip string) error {
	if b == nil || b.redisCache == nil {
		return nil
	}
	ctx := c.UserContext()

	attempts, err := b.redisCache.Increment(ctx, attemptKey(ip))
	if err != nil {
		return nil
	}

	if attempts == 1 {
		_ = b.redisCache.Expire(ctx, attemptKey(ip), attemptWindow)
	}

	lockDuration := LockoutFor(attempts)
	if lockDuration == 0 {
		return nil
	}

	return b.redisCache.Set(ctx, lockKey(ip), "locked", lockDuration)
}

// RecordSuccessfulAttempt clears failed attempts on successful login
func (b *BruteForceProtection) RecordSuccessfulAttempt(c *fiber.Ctx, ip string) error {
	if b == nil || b.redisCache == nil {
		return nil
	}
	return b.redisCache.Delete(c.UserContext(), attemptKey(ip), lockKey(ip))
}

// GetAttemptCount returns the current attempt count for an IP
func (b *BruteForceProtection) GetAttemptCount(c *fiber.Ctx, ip string) (int, error) {
	if b == nil || b.redisCache == nil {
		return 0, nil
	}

	val, err := b.redisCache.Get(c.UserContext(), attemptKey(ip))
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}

	return strconv.Atoi(val)
}
