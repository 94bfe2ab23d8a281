package httpapi

// Options controls HTTP API runtime behavior.
//
// Keep it small: this service is a transformation pipeline, not a framework.
type Options struct {
	// MaxBodyBytes caps the subscription payload size accepted by
	// POST /api/generate.
	MaxBodyBytes int64

	// MMDBPath optionally points at a country database. When set and no
	// explicit lookup is handed to NewMuxWithOptions, the resolver is
	// opened from this path so nodes whose names match no pattern are
	// classified by server address.
	MMDBPath string
}

func (o Options) withDefaults() Options {
	if o.MaxBodyBytes <= 0 {
		o.MaxBodyBytes = 8 << 20
	}
	return o
}
