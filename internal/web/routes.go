package web

import (
	"net/http"
	"path"

	"github.com/rook-computer/starfield/internal/assets"
)

// RegisterAPIV1 registers the public API routes under /api/v1/.
func RegisterAPIV1(mux *http.ServeMux, deps APIV1Deps) {
	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", apiV1Router(deps)))
}

// RegisterUI serves the embedded preview page.
func RegisterUI(mux *http.ServeMux) {
	mux.Handle("/", StaticUIHandler())
}

// NewDefaultMux builds the standard mux used by both the device and preview:
// - /api/v1/* for the API
// - / for the preview page
func NewDefaultMux(deps APIV1Deps) *http.ServeMux {
	mux := http.NewServeMux()
	RegisterAPIV1(mux, deps)
	RegisterUI(mux)
	return mux
}

func StaticUIHandler() http.Handler {
	fileServer := http.FileServer(http.FS(assets.WebUI))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.URL.Path = path.Clean("/" + r.URL.Path)
		fileServer.ServeHTTP(w, r)
	})
}
