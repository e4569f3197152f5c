package cache

// ScopedKeyer wraps a Keyer with a prefix, giving several tenants of one
// shared backend separate namespaces:
//
//	apiKeyer := NewScopedKeyer(NewDefaultKeyer(), "api:")
//	cliKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every key.
// A nil inner keyer defaults to DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) DiagramKey(requestHash string) string {
	return k.prefix + k.inner.DiagramKey(requestHash)
}

func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}

func (k *ScopedKeyer) SetKey(id string) string {
	return k.prefix + k.inner.SetKey(id)
}

func (k *ScopedKeyer) WorksheetKey(setID string, opts WorksheetKeyOpts) string {
	return k.prefix + k.inner.WorksheetKey(setID, opts)
}
