package render

import (
	"context"

	"github.com/matzehuels/prospect/pkg/cache"
	"github.com/matzehuels/prospect/pkg/observability"
)

// CachedRenderer serves documents for DOT text it has rendered before from a
// cache. Layout is a pure function of the DOT text, so entries never go stale.
// Cache failures are ignored and the inner renderer is used.
type CachedRenderer struct {
	inner Renderer
	cache cache.Cache
	keyer cache.Keyer
}

// NewCachedRenderer wraps inner. A nil keyer uses [cache.NewDefaultKeyer].
func NewCachedRenderer(inner Renderer, c cache.Cache, keyer cache.Keyer) *CachedRenderer {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &CachedRenderer{inner: inner, cache: c, keyer: keyer}
}

// Render returns the cached document for dot, or renders and caches it.
// Rejections are not cached.
func (r *CachedRenderer) Render(ctx context.Context, dot string) (*Document, error) {
	key := r.keyer.RenderKey(dot, "svg")

	if data, hit, err := r.cache.Get(ctx, key); err == nil && hit {
		if doc, err := ParseDocument(data); err == nil {
			observability.Cache().OnCacheHit(ctx, "render")
			return doc, nil
		}
		_ = r.cache.Delete(ctx, key)
	}
	observability.Cache().OnCacheMiss(ctx, "render")

	doc, err := r.inner.Render(ctx, dot)
	if err != nil {
		return nil, err
	}
	data := doc.Markup()
	if err := r.cache.Set(ctx, key, data, cache.TTLRender); err == nil {
		observability.Cache().OnCacheSet(ctx, "render", len(data))
	}
	return doc, nil
}

var _ Renderer = (*CachedRenderer)(nil)
