// Package assets loads the fixed startup inputs: the lifting-plan form
// template and the optional company logo.
//
// Locations are overridable through ASSETS_DIR, TEMPLATE_FILE and
// LOGO_FILE. A missing template is fatal for the service; a missing or
// unreadable logo only degrades annex pages to logo-less.
package assets

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"go-liftplan/internal/images"
)

const (
	defaultDir      = "assets"
	defaultTemplate = "plantilla_plan_izado.pdf"
	defaultLogo     = "logo.png"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// LoadTemplate reads the form template. The caller treats an error as a
// fatal startup condition.
func LoadTemplate() ([]byte, error) {
	path := filepath.Join(envOr("ASSETS_DIR", defaultDir), envOr("TEMPLATE_FILE", defaultTemplate))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", path, err)
	}
	return data, nil
}

// LoadLogo reads and decodes the logo. It returns nil when the file is
// missing or not a usable image, so every annex built from it is
// guaranteed to embed cleanly.
func LoadLogo() *images.Attachment {
	path := filepath.Join(envOr("ASSETS_DIR", defaultDir), envOr("LOGO_FILE", defaultLogo))
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("No logo at %s, annex pages will render without one", path)
		return nil
	}
	logo, err := images.Decode(filepath.Base(path), data)
	if err != nil {
		log.Printf("Unreadable logo %s: %v", path, err)
		return nil
	}
	return logo
}
