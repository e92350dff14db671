package redisrate

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type fakeEvaler struct {
	calls  int
	script string
	keys   []string
	args   []interface{}

	result int64
	err    error
}

func (f *fakeEvaler) Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	f.calls++
	f.script = script
	f.keys = keys
	f.args = args
	if f.err != nil {
		return redis.NewCmdResult(nil, f.err)
	}
	return redis.NewCmdResult(f.result, nil)
}

func TestLimiterAllow(t *testing.T) {
	ctx := context.Background()

	t.Run("counts within the limit", func(t *testing.T) {
		for _, count := range []int64{1, 3, 5} {
			client := &fakeEvaler{result: count}
			limiter := New(client, "otp", 5, time.Hour)

			allowed, err := limiter.Allow(ctx, "login:asha@example.com")
			if err != nil {
				t.Fatalf("Allow (count %d): %v", count, err)
			}
			if !allowed {
				t.Fatalf("count %d of 5 should be allowed", count)
			}
		}
	})

	t.Run("denies past the limit", func(t *testing.T) {
		client := &fakeEvaler{result: 6}
		limiter := New(client, "otp", 5, time.Hour)

		allowed, err := limiter.Allow(ctx, "login:asha@example.com")
		if err != nil {
			t.Fatalf("Allow: %v", err)
		}
		if allowed {
			t.Fatal("count 6 of 5 should be denied")
		}
	})

	t.Run("namespaces the key and passes the window", func(t *testing.T) {
		client := &fakeEvaler{result: 1}
		limiter := New(client, "reset", 3, time.Hour)

		if _, err := limiter.Allow(ctx, "asha@example.com"); err != nil {
			t.Fatalf("Allow: %v", err)
		}
		if len(client.keys) != 1 || client.keys[0] != "rate:fw:reset:asha@example.com" {
			t.Fatalf("keys = %v", client.keys)
		}
		if len(client.args) != 2 || client.args[0] != 3600 || client.args[1] != 3 {
			t.Fatalf("args = %v", client.args)
		}
	})

	t.Run("check and expiry travel in a single script", func(t *testing.T) {
		client := &fakeEvaler{result: 1}
		limiter := New(client, "otp", 5, time.Hour)

		if _, err := limiter.Allow(ctx, "asha@example.com"); err != nil {
			t.Fatalf("Allow: %v", err)
		}
		if client.calls != 1 {
			t.Fatalf("made %d round trips, want 1", client.calls)
		}
		// The counter must never exist without an expiry: it is born with
		// one, and a TTL-less leftover gets re-armed.
		if !strings.Contains(client.script, "'SET', KEYS[1], 1, 'EX'") {
			t.Fatal("first hit must create the counter with its expiry in one command")
		}
		if !strings.Contains(client.script, "'TTL', KEYS[1]") || !strings.Contains(client.script, "'EXPIRE', KEYS[1]") {
			t.Fatal("script must re-arm the expiry of a TTL-less counter")
		}
	})

	t.Run("redis errors fail closed", func(t *testing.T) {
		client := &fakeEvaler{err: errors.New("connection refused")}
		limiter := New(client, "otp", 5, time.Hour)

		allowed, err := limiter.Allow(ctx, "asha@example.com")
		if err == nil {
			t.Fatal("expected the redis error")
		}
		if allowed {
			t.Fatal("an errored check must not allow the request")
		}
	})
}
