package cache

// ScopedKeyer wraps a Keyer with a prefix, isolating cache namespaces
// when several timetables share one backend (typically Redis in server
// mode, one scope per calendar source or tenant).
//
// Example usage:
//
//	teamKeyer := NewScopedKeyer(NewDefaultKeyer(), "team:ops:")
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
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// HTTPKey generates a prefixed key for a cached source fetch.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

// ItemsKey generates a prefixed key for loaded item records.
func (k *ScopedKeyer) ItemsKey(source string, opts ItemsKeyOpts) string {
	return k.prefix + k.inner.ItemsKey(source, opts)
}

// LayoutKey generates a prefixed key for a computed layout.
func (k *ScopedKeyer) LayoutKey(itemsHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(itemsHash, opts)
}

// ArtifactKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
