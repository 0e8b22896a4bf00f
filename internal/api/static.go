package api

import (
	"net/http"
	"path/filepath"
	"strings"
)

// serveStaticOrIndex serves the built map UI. Hashed assets get a long
// immutable cache, everything else stays revalidatable, and unknown paths
// fall back to index.html so client-side routing works.
func (s *Server) serveStaticOrIndex(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	switch {
	case strings.HasSuffix(path, ".js") || strings.HasSuffix(path, ".css"):
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	case strings.HasSuffix(path, ".png") || strings.HasSuffix(path, ".svg") ||
		strings.HasSuffix(path, ".webp") || strings.HasSuffix(path, ".jpg"):
		w.Header().Set("Cache-Control", "public, max-age=604800")
	default:
		w.Header().Set("Cache-Control", "no-cache")
	}

	if path != "/" && s.fileExists(path) {
		http.FileServer(http.Dir(s.config.WebDir)).ServeHTTP(w, r)
		return
	}

	http.ServeFile(w, r, filepath.Join(s.config.WebDir, "index.html"))
}

func (s *Server) fileExists(path string) bool {
	f, err := http.Dir(s.config.WebDir).Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return !stat.IsDir()
}
