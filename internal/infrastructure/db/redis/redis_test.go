package redis

import (
	"testing"
	"time"
)

func TestConfigOptions_Defaults(t *testing.T) {
	opts := Config{Addr: "localhost:6379"}.options()

	if opts.DialTimeout != defaultTimeout || opts.ReadTimeout != defaultTimeout {
		t.Fatalf("expected default timeouts, got %s/%s", opts.DialTimeout, opts.ReadTimeout)
	}
	if opts.PoolSize != defaultPoolSize {
		t.Fatalf("expected default pool size, got %d", opts.PoolSize)
	}
}

func TestConfigOptions_Overrides(t *testing.T) {
	opts := Config{Addr: "cache:6379", Password: "pw", DB: 3, Timeout: time.Second, PoolSize: 4}.options()

	if opts.Addr != "cache:6379" || opts.Password != "pw" || opts.DB != 3 {
		t.Fatalf("connection fields not applied: %+v", opts)
	}
	if opts.WriteTimeout != time.Second || opts.PoolSize != 4 {
		t.Fatalf("overrides not applied: %+v", opts)
	}
}

func TestRevocationList_Key(t *testing.T) {
	l := NewRevocationList(nil)
	if got := l.key("abc"); got != "revoked:abc" {
		t.Fatalf("unexpected key %q", got)
	}
}
