package cache

// ScopedKeyer wraps a Keyer with a prefix so that several deployments can
// share one Redis instance without seeing each other's entries.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
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

// SkeletonKey generates a prefixed skeleton key.
func (k *ScopedKeyer) SkeletonKey(polyHash string) string {
	return k.prefix + k.inner.SkeletonKey(polyHash)
}

// AutomorphismKey generates a prefixed automorphism key.
func (k *ScopedKeyer) AutomorphismKey(graphHash string, opts AutomorphismKeyOpts) string {
	return k.prefix + k.inner.AutomorphismKey(graphHash, opts)
}

// ExpansionKey generates a prefixed expansion key.
func (k *ScopedKeyer) ExpansionKey(polyHash, recordHash string) string {
	return k.prefix + k.inner.ExpansionKey(polyHash, recordHash)
}
