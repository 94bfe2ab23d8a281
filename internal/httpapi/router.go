package httpapi

import (
	"log"
	"net/http"

	"github.com/John-Robertt/policygen-go/internal/classify"
	"github.com/John-Robertt/policygen-go/internal/geoip"
)

func NewMux() *http.ServeMux {
	return NewMuxWithOptions(Options{}, nil)
}

// NewMuxWithOptions wires the route table. lookup may be nil; it is the
// optional GeoIP fallback handed down to the classifier. When no lookup is
// given and MMDBPath is set, the resolver is opened from that path; an
// unreadable database disables the fallback instead of failing startup.
func NewMuxWithOptions(opt Options, lookup classify.Lookup) *http.ServeMux {
	opt = opt.withDefaults()
	if lookup == nil && opt.MMDBPath != "" {
		r, err := geoip.Open(opt.MMDBPath)
		if err != nil {
			log.Printf("geoip fallback disabled: %v", err)
		} else {
			lookup = r
		}
	}
	h := generateHandler{opt: opt, lookup: lookup}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /", handleIndex)
	mux.HandleFunc("GET /healthz", handleHealthz)
	mux.HandleFunc("GET /metrics", handleMetrics)
	mux.HandleFunc("POST /api/generate", h.handleGenerate)
	return mux
}
