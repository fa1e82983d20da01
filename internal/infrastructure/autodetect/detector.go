// Package autodetect proposes a tagctl config for the current project.
package autodetect

import (
	"os"
	"path/filepath"

	"github.com/felixgeelhaar/tagctl/internal/application"
	"github.com/felixgeelhaar/tagctl/internal/infrastructure/manifest"
)

type Detector struct {
	// Dir is the directory to probe; the working directory when empty.
	Dir string
}

// Detect probes for known manifest files and returns a config proposal.
// When no known manifest exists the default (Cargo.toml) is proposed
// unchanged, so a later publish fails with a clear file-not-found error
// rather than detection guessing wrong.
func (d Detector) Detect() (application.Config, error) {
	dir := d.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return application.Config{}, err
		}
		dir = wd
	}

	cfg := application.Config{
		Version:  1,
		Manifest: application.DefaultManifest,
		Format:   string(manifest.FormatAuto),
		Prefix:   "v",
		Remote:   application.DefaultRemote,
		History:  application.DefaultHistory,
	}

	for _, name := range manifest.KnownManifests {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			cfg.Manifest = name
			cfg.Format = string(manifest.DetectFormat(name))
			break
		}
	}

	return cfg, nil
}
