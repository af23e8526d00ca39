package cache

// Keyer derives cache keys from content hashes.
type Keyer interface {
	// SkeletonKey identifies the reconstruction of a polyhedron.
	SkeletonKey(polyHash string) string

	// AutomorphismKey identifies the automorphism analysis of a skeleton.
	AutomorphismKey(graphHash string, opts AutomorphismKeyOpts) string

	// ExpansionKey identifies the expansion of one record on a polyhedron.
	ExpansionKey(polyHash, recordHash string) string
}

// AutomorphismKeyOpts holds the options that change an automorphism result.
type AutomorphismKeyOpts struct {
	// Version of the artifact layout; bump to invalidate old entries.
	Version int `json:"version"`
}

// DefaultKeyer produces keys of the form "kind:sha256(parts)".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SkeletonKey implements Keyer.
func (DefaultKeyer) SkeletonKey(polyHash string) string {
	return hashKey("skeleton", polyHash)
}

// AutomorphismKey implements Keyer.
func (DefaultKeyer) AutomorphismKey(graphHash string, opts AutomorphismKeyOpts) string {
	return hashKey("automorphisms", graphHash, opts)
}

// ExpansionKey implements Keyer.
func (DefaultKeyer) ExpansionKey(polyHash, recordHash string) string {
	return hashKey("expand", polyHash, recordHash)
}

var _ Keyer = DefaultKeyer{}
