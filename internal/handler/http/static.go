package http

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
)

const indexFile = "index.html"

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	h.serveStatic(w, r, indexFile)
}

// static serves files below the static directory. Directories are never
// listed.
func (h *Handler) static(w http.ResponseWriter, r *http.Request) {
	h.serveStatic(w, r, path.Clean("/" + r.URL.Path)[1:])
}

func (h *Handler) serveStatic(w http.ResponseWriter, r *http.Request, name string) {
	if name == "" || h.staticDir == "" {
		http.NotFound(w, r)
		return
	}

	full := filepath.Join(h.staticDir, filepath.FromSlash(name))
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}

	f, err := os.Open(full)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}
