package cache

// ScopedKeyer prefixes every key of an inner keyer, so several clients can
// share one backend without colliding:
//
//	apiKeyer := NewScopedKeyer(NewDefaultKeyer(), "api:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// PassKey implements Keyer.
func (k *ScopedKeyer) PassKey(dataHash string, opts PassKeyOpts) string {
	return k.prefix + k.inner.PassKey(dataHash, opts)
}

// ArtifactKey implements Keyer.
func (k *ScopedKeyer) ArtifactKey(passHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(passHash, opts)
}
