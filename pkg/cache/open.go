package cache

import (
	"context"
	"fmt"
	"strings"
)

// Open returns the cache named by backend:
//   - "" or "file": a [FileCache] in dir
//   - "none": a [NullCache]
//   - "redis://..." or "rediss://...": a [RedisCache]
func Open(ctx context.Context, backend, dir string) (Cache, error) {
	switch {
	case backend == "" || backend == "file":
		fc, err := NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	case backend == "none":
		return NewNullCache(), nil
	case strings.HasPrefix(backend, "redis://"), strings.HasPrefix(backend, "rediss://"):
		rc, err := NewRedisCache(ctx, backend)
		if err != nil {
			return nil, err
		}
		return rc, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q (want none, file or a redis:// URL)", backend)
	}
}
