package middleware

import (
	"context"
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"fyyur/internal/config"
	"fyyur/internal/metrics"
)

// Decision is the outcome of one rate limit check.
type Decision struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

// Limiter takes a token for key.
type Limiter interface {
	Take(ctx context.Context, key string) (Decision, error)
}

var tokenBucket = redis.NewScript(`
local key = KEYS[1]
local now_ms = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local refill_tokens = tonumber(ARGV[3])
local interval_ms = tonumber(ARGV[4])
local ttl_seconds = tonumber(ARGV[5])

local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
local tokens = tonumber(state[1])
local last_refill = tonumber(state[2])

if tokens == nil or last_refill == nil then
	tokens = capacity
	last_refill = now_ms
end

if interval_ms > 0 and refill_tokens > 0 then
	local elapsed = math.max(0, now_ms - last_refill)
	local intervals = math.floor(elapsed / interval_ms)
	if intervals > 0 then
		tokens = math.min(capacity, tokens + (intervals * refill_tokens))
		last_refill = last_refill + (intervals * interval_ms)
	end
end

local allowed = 0
local retry_after_ms = 0
if tokens > 0 then
	allowed = 1
	tokens = tokens - 1
else
	retry_after_ms = math.max(0, interval_ms - (now_ms - last_refill))
end

redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
redis.call('EXPIRE', key, ttl_seconds)

return { allowed, tokens, retry_after_ms }
`)

// RedisLimiter is a token bucket per key kept in Redis, so every server
// instance shares the same budget.
type RedisLimiter struct {
	client redis.Scripter
	cfg    config.RateLimitConfig
	now    func() time.Time
}

func NewRedisLimiter(client redis.Scripter, cfg config.RateLimitConfig) *RedisLimiter {
	return &RedisLimiter{client: client, cfg: cfg, now: time.Now}
}

func (l *RedisLimiter) Take(ctx context.Context, key string) (Decision, error) {
	args := []any{
		l.now().UnixMilli(),
		l.cfg.Capacity,
		l.cfg.RefillTokens,
		l.cfg.RefillInterval.Milliseconds(),
		int64(l.cfg.TTL / time.Second),
	}

	vals, err := tokenBucket.Run(ctx, l.client, []string{"fyyur:ratelimit:" + key}, args...).Int64Slice()
	if err != nil {
		return Decision{}, fmt.Errorf("run token bucket: %w", err)
	}
	if len(vals) != 3 {
		return Decision{}, fmt.Errorf("unexpected token bucket result %v", vals)
	}

	return Decision{
		Allowed:    vals[0] == 1,
		Remaining:  vals[1],
		RetryAfter: time.Duration(vals[2]) * time.Millisecond,
	}, nil
}

// RateLimit throttles form submissions (POST and DELETE) per client address.
// Reads are never limited. A nil limiter disables the middleware, and a
// limiter error lets the request through.
func RateLimit(limiter Limiter, capacity int, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost && r.Method != http.MethodDelete {
				next.ServeHTTP(w, r)
				return
			}

			decision, err := limiter.Take(r.Context(), clientKey(r))
			if err != nil {
				zerolog.Ctx(r.Context()).Warn().Err(err).Msg("rate limit check failed")
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(capacity))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(decision.Remaining, 10))

			if !decision.Allowed {
				m.RecordRateLimited()
				secs := int(math.Ceil(decision.RetryAfter.Seconds()))
				w.Header().Set("Retry-After", strconv.Itoa(secs))
				http.Error(w, "Too many submissions. Please try again shortly.", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil || host == "" {
		host = r.RemoteAddr
	}
	if host == "" {
		host = "unknown"
	}
	return "ip:" + host
}
