package httpapi

import (
	_ "embed"
	"net/http"
)

// The generator form: paste a subscription, tick the flags, download the
// policy document. One embedded page, no assets to deploy next to the binary.
//
//go:embed ui/index.html
var uiIndexHTML []byte

func handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(uiIndexHTML)
}
