package cache

import (
	"fmt"
	"time"
)

// Backend names accepted by Open
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Store is a response cache that can also be emptied
type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
	Clear() (int, error)
}

// Options selects and configures a cache backend
type Options struct {
	Backend string
	TTL     time.Duration
	Dir     string // file backend; DefaultCacheDir() when empty
	Redis   RedisOptions
}

// Open returns the configured cache, or nil for BackendNone
func Open(opts Options) (Store, error) {
	switch opts.Backend {
	case BackendNone:
		return nil, nil
	case BackendFile, "":
		dir := opts.Dir
		if dir == "" {
			dir = DefaultCacheDir()
		}
		fc, err := NewFileCache(dir, opts.TTL)
		if err != nil {
			return nil, err
		}
		_, _ = fc.Cleanup()
		return fc, nil
	case BackendRedis:
		rc, err := NewRedisCache(opts.Redis, opts.TTL)
		if err != nil {
			return nil, err
		}
		return rc, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", opts.Backend)
	}
}
