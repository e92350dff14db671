// Package redisrate implements a fixed-window request limiter on Redis.
package redisrate

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Evaler is the slice of the Redis client the limiter needs; scripts run
// through it in a single round trip.
type Evaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// allowScript counts a hit and arms the window expiry in one atomic step.
// The first hit SETs the counter together with its EX, so no crash between
// commands can leave a counter that never expires; the TTL check re-arms
// keys orphaned by an interrupted EXPIRE.
const allowScript = `
local current = redis.call('GET', KEYS[1])
if current == false then
	redis.call('SET', KEYS[1], 1, 'EX', ARGV[1])
	return 1
end
if redis.call('TTL', KEYS[1]) < 0 then
	redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return redis.call('INCR', KEYS[1])
`

type Limiter struct {
	client Evaler
	max    int
	window time.Duration
	prefix string
}

// New returns a limiter allowing max hits per window for each key. Keys are
// namespaced by prefix so independent flows never share a counter.
func New(client Evaler, prefix string, max int, window time.Duration) *Limiter {
	return &Limiter{client: client, max: max, window: window, prefix: prefix}
}

// Allow counts a hit against the key's current window and reports whether it
// stayed within the limit. The expiry is set when the counter is created,
// which makes the window fixed rather than sliding.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := "rate:fw:" + l.prefix + ":" + key

	count, err := l.client.Eval(ctx, allowScript, []string{redisKey}, int(l.window.Seconds()), l.max).Int64()
	if err != nil {
		return false, err
	}
	return count <= int64(l.max), nil
}
