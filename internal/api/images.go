package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
)

const imageDir = "images"

// ImageHandler serves static image files referenced by article metadata.
// The library is read-only, so there is no upload counterpart.
type ImageHandler struct {
	libraryRoot string
}

// NewImageHandler creates a handler rooted at the library directory.
func NewImageHandler(libraryRoot string) *ImageHandler {
	return &ImageHandler{libraryRoot: libraryRoot}
}

func (h *ImageHandler) imagePath() string {
	return filepath.Join(h.libraryRoot, imageDir)
}

// safeName validates that the filename is a plain name (no path separators,
// no traversal) and returns the absolute path under the images dir.
func (h *ImageHandler) safeName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("filename is required")
	}
	cleaned := filepath.Clean(name)
	if cleaned != filepath.Base(cleaned) || strings.Contains(cleaned, "..") {
		return "", fmt.Errorf("invalid filename: %s", name)
	}
	abs := filepath.Join(h.imagePath(), cleaned)
	if !strings.HasPrefix(abs, h.imagePath()+string(os.PathSeparator)) && abs != h.imagePath() {
		return "", fmt.Errorf("path escapes images directory")
	}
	return abs, nil
}

// ServeFile handles GET /images/{filename}.
func (h *ImageHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	abs, err := h.safeName(filename)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, statErr := os.Stat(abs); os.IsNotExist(statErr) {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, abs)
}
