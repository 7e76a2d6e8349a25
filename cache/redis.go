package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/exp/slog"

	"github.com/yashsinghal2004/plinko-rgs/games/plinko"
	"github.com/yashsinghal2004/plinko-rgs/lib/logger/sl"
)

// Redis shares cached outcomes between server instances. Redis failures are
// logged and treated as misses; the outcome is always recomputable.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	log    *slog.Logger
}

// RedisOptions configures NewRedis.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NewRedis connects and pings the server.
func NewRedis(ctx context.Context, opts RedisOptions, log *slog.Logger) (*Redis, error) {
	const op = "cache.NewRedis"

	ro := &redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}
	// REDIS_URL may be a redis:// URL or a bare host:port.
	if strings.Contains(opts.Addr, "://") {
		parsed, err := redis.ParseURL(opts.Addr)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if opts.Password != "" {
			parsed.Password = opts.Password
		}
		ro = parsed
	}
	ro.DialTimeout = 5 * time.Second
	ro.ReadTimeout = 3 * time.Second
	ro.WriteTimeout = 3 * time.Second
	ro.PoolSize = 10
	client := redis.NewClient(ro)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return newRedis(client, opts.TTL, log), nil
}

func newRedis(client *redis.Client, ttl time.Duration, log *slog.Logger) *Redis {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Redis{client: client, ttl: ttl, log: log.With(slog.String("component", "cache.redis"))}
}

func (r *Redis) Get(ctx context.Context, combinedSeed string, dropColumn int) (plinko.Outcome, bool) {
	data, err := r.client.Get(ctx, key(combinedSeed, dropColumn)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.Warn("outcome cache get failed", sl.Err(err))
		}
		return plinko.Outcome{}, false
	}
	var out plinko.Outcome
	if err := json.Unmarshal(data, &out); err != nil {
		r.log.Warn("outcome cache entry corrupt", sl.Err(err))
		return plinko.Outcome{}, false
	}
	return out, true
}

func (r *Redis) Set(ctx context.Context, combinedSeed string, dropColumn int, out plinko.Outcome) {
	data, err := json.Marshal(out)
	if err != nil {
		r.log.Warn("outcome cache encode failed", sl.Err(err))
		return
	}
	if err := r.client.Set(ctx, key(combinedSeed, dropColumn), data, r.ttl).Err(); err != nil {
		r.log.Warn("outcome cache set failed", sl.Err(err))
	}
}

// Ping checks the connection; used by the health endpoint.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
