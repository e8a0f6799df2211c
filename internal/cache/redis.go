package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"video-backend/internal/config"
)

// Catalog cache keys
const (
	TopFilmsKey         = "films:top"
	TopActorsKey        = "actors:top"
	FilmListKeyFmt      = "films:page:%d:%d"
	AvailabilityKeyFmt  = "availability:%d:%d"
	filmInvalidationPat = "films:*"
)

var client *redis.Client

// Init initializes the Redis connection. The cache is optional: on failure
// the client stays nil and every helper degrades to a miss.
func Init(cfg *config.Config) error {
	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client (nil when the cache is unavailable).
func GetClient() *redis.Client {
	return client
}

// hashCredentials creates a hash of email+password for the auth cache key
func hashCredentials(email, password string) string {
	h := sha256.New()
	h.Write([]byte(email + ":" + password))
	return "auth:" + hex.EncodeToString(h.Sum(nil))[:32]
}

// GetCachedAuth checks if staff credentials are cached and valid
func GetCachedAuth(ctx context.Context, email, password string) (int64, bool) {
	if client == nil {
		return 0, false
	}
	userID, err := client.Get(ctx, hashCredentials(email, password)).Int64()
	if err != nil {
		return 0, false
	}
	return userID, true
}

// CacheAuth caches valid staff credentials for 15 minutes
func CacheAuth(ctx context.Context, email, password string, userID int64) {
	if client == nil {
		return
	}
	client.Set(ctx, hashCredentials(email, password), userID, 15*time.Minute)
}

// InvalidateAuth removes cached auth for a user (on password change)
func InvalidateAuth(ctx context.Context, email, password string) {
	if client == nil {
		return
	}
	client.Del(ctx, hashCredentials(email, password))
}

// GetCached returns cached data for a key
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached stores data with a TTL
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// AvailabilityKey builds the cached available-copy-count key for a film at
// a store.
func AvailabilityKey(filmID, storeID int) string {
	return fmt.Sprintf(AvailabilityKeyFmt, filmID, storeID)
}

// InvalidateAvailability drops the cached copy count for a film at a store.
// Called after every committed rent and return.
func InvalidateAvailability(ctx context.Context, filmID, storeID int) {
	if client == nil {
		return
	}
	client.Del(ctx, AvailabilityKey(filmID, storeID))
}

// InvalidateCatalog clears film listing caches after administrative edits.
func InvalidateCatalog(ctx context.Context) {
	if client == nil {
		return
	}
	keys, err := client.Keys(ctx, filmInvalidationPat).Result()
	if err == nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}
