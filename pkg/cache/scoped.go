package cache

// ScopedKeyer wraps a Keyer with a prefix. The CLI scopes keys by release
// version so entries written by an older info format are never read back:
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "v"+buildinfo.Version+":")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) InfoKey(f FileStamp) string    { return k.prefix + k.inner.InfoKey(f) }
func (k *ScopedKeyer) DataURIKey(f FileStamp) string { return k.prefix + k.inner.DataURIKey(f) }
