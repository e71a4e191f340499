package cache

// Keyer derives cache keys for each pipeline stage.
type Keyer interface {
	// DiagramKey keys a raw pixel buffer.
	DiagramKey(sitesHash string, opts DiagramKeyOpts) string

	// ArtifactKey keys one encoded output of a diagram.
	ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string
}

// DiagramKeyOpts holds every option that changes the pixels of a diagram.
//
// Mode and worker count are absent: sequential Euclidean and
// parallel renders of the same input produce the same bytes.
type DiagramKeyOpts struct {
	Metric string `json:"metric"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Seed   uint64 `json:"seed"`
}

// ArtifactKeyOpts holds every option that changes an encoded output.
type ArtifactKeyOpts struct {
	Format  string  `json:"format"`
	Scale   float64 `json:"scale,omitempty"`
	Markers bool    `json:"markers,omitempty"`
}

// DefaultKeyer hashes its inputs into "stage:sha256" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// DiagramKey generates a key for a rendered pixel buffer.
func (DefaultKeyer) DiagramKey(sitesHash string, opts DiagramKeyOpts) string {
	return hashKey("diagram", sitesHash, opts)
}

// ArtifactKey generates a key for an encoded artifact.
func (DefaultKeyer) ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", diagramHash, opts)
}

var _ Keyer = DefaultKeyer{}

// ScopedKeyer prefixes every key from an inner Keyer, so several diagvor
// deployments can share one Redis database.
type ScopedKeyer struct {
	Inner  Keyer
	Prefix string
}

// NewScopedKeyer returns inner's keys with prefix prepended. A nil inner uses
// DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = DefaultKeyer{}
	}
	return ScopedKeyer{Inner: inner, Prefix: prefix}
}

func (k ScopedKeyer) DiagramKey(sitesHash string, opts DiagramKeyOpts) string {
	return k.Prefix + k.Inner.DiagramKey(sitesHash, opts)
}

func (k ScopedKeyer) ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string {
	return k.Prefix + k.Inner.ArtifactKey(diagramHash, opts)
}

var _ Keyer = ScopedKeyer{}
