package cache

// Keyer builds cache keys.
type Keyer interface {
	// RenderKey returns the key of the document rendered from dot in format.
	RenderKey(dot, format string) string
}

// DefaultKeyer builds unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a keyer without prefix.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// RenderKey hashes the DOT text so arbitrarily large graphs produce short keys.
func (DefaultKeyer) RenderKey(dot, format string) string {
	return hashKey("render", format, Hash([]byte(dot)))
}
