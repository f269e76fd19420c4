package lock

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
)

// releaseScript só apaga a chave se ela ainda pertence ao token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis serializes work per (professional, day) across API replicas.
type Redis struct {
	rdb    *redis.Client
	ttl    time.Duration
	wait   time.Duration
	retry  time.Duration
	logger zerolog.Logger
}

func NewRedis(rdb *redis.Client, ttl, wait time.Duration, logger zerolog.Logger) *Redis {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	if wait <= 0 {
		wait = 5 * time.Second
	}
	return &Redis{
		rdb:    rdb,
		ttl:    ttl,
		wait:   wait,
		retry:  50 * time.Millisecond,
		logger: logger,
	}
}

var _ domain.DayLocker = (*Redis)(nil)

func (r *Redis) Lock(ctx context.Context, professionalID uint, day string) (func(), error) {
	key := Key(professionalID, day)
	token := uuid.NewString()

	ctx, cancel := context.WithTimeout(ctx, r.wait)
	defer cancel()

	for {
		ok, err := r.rdb.SetNX(ctx, key, token, r.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, domain.ErrLockUnavailable
			}
			return nil, err
		}
		if ok {
			return func() { r.unlock(key, token) }, nil
		}

		select {
		case <-ctx.Done():
			return nil, domain.ErrLockUnavailable
		case <-time.After(r.retry):
		}
	}
}

func (r *Redis) unlock(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := releaseScript.Run(ctx, r.rdb, []string{key}, token).Err(); err != nil && err != redis.Nil {
		r.logger.Warn().Err(err).Str("key", key).Msg("failed to release schedule lock")
	}
}
