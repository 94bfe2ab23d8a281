package model

// Proxy is the minimal node representation used by the grouping pipeline.
//
// Name is the only field the classifier matches on. Server feeds the
// optional GeoIP fallback. Extra carries every other field of the
// subscription entry untouched; the document builder writes it back out
// as-is, so unknown protocol fields survive the round trip.
type Proxy struct {
	Name   string
	Server string

	Extra map[string]any
}

// Document returns the yaml-ready mapping for the proxy, with Name and
// Server folded back into the pass-through fields.
func (p Proxy) Document() map[string]any {
	out := make(map[string]any, len(p.Extra)+2)
	for k, v := range p.Extra {
		out[k] = v
	}
	out["name"] = p.Name
	if p.Server != "" {
		out["server"] = p.Server
	}
	return out
}
