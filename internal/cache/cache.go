package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var rdb *redis.Client

// Cached digests are swept at midnight anyway; the TTL is a backstop
// for instances whose sweep job never fires.
const digestTTL = 24 * time.Hour

// Init connects the digest cache. An empty address leaves the cache
// disabled and every read reports a miss, so the API works without
// Redis.
func Init(address, username, password string) {
	if address == "" {
		log.Info().Msg("digest cache disabled, no redis address configured")
		return
	}
	rdb = redis.NewClient(&redis.Options{
		Addr:     address,
		Username: username,
		Password: password,
		DB:       0,
	})
}

func Enabled() bool { return rdb != nil }

func digestKey(userID int) string { return fmt.Sprintf("digest:%d", userID) }

// GetDigest returns the cached profile digest JSON for a user, nil on
// a miss.
func GetDigest(ctx context.Context, userID int) []byte {
	if rdb == nil {
		return nil
	}
	val, err := rdb.Get(ctx, digestKey(userID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Error().Err(err).Int("user_id", userID).Msg("digest cache read failed")
		}
		return nil
	}
	return val
}

func SetDigest(ctx context.Context, userID int, payload []byte) {
	if rdb == nil {
		return
	}
	if err := rdb.Set(ctx, digestKey(userID), payload, digestTTL).Err(); err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("digest cache write failed")
	}
}

// InvalidateDigest drops a user's digest after one of their schedules
// changes.
func InvalidateDigest(ctx context.Context, userID int) {
	if rdb == nil {
		return
	}
	if err := rdb.Del(ctx, digestKey(userID)).Err(); err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("digest cache invalidate failed")
	}
}

// SweepDigests drops every cached digest. The midnight job calls this
// so the today/tomorrow reference days roll over for everyone.
func SweepDigests(ctx context.Context) {
	if rdb == nil {
		return
	}
	iter := rdb.Scan(ctx, 0, "digest:*", 100).Iterator()
	for iter.Next(ctx) {
		if err := rdb.Del(ctx, iter.Val()).Err(); err != nil {
			log.Error().Err(err).Str("key", iter.Val()).Msg("digest sweep delete failed")
		}
	}
	if err := iter.Err(); err != nil {
		log.Error().Err(err).Msg("digest sweep scan failed")
	}
}
