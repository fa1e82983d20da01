package manifest

import (
	"path/filepath"
	"strings"
)

// Format identifies a manifest parsing strategy.
type Format string

const (
	// FormatAuto selects the format from the file name.
	FormatAuto Format = "auto"
	// FormatTOML is the quoted key = "value" style used by Cargo.toml
	// and pyproject.toml.
	FormatTOML Format = "toml"
	// FormatNode is a package.json manifest.
	FormatNode Format = "node"
)

// DetectFormat picks the parsing strategy for a manifest path.
// Unknown files fall back to the quoted-assignment scanner, which is
// tolerant of any text manifest carrying a version = "..." line.
func DetectFormat(path string) Format {
	base := strings.ToLower(filepath.Base(path))
	switch base {
	case "package.json":
		return FormatNode
	case "cargo.toml", "pyproject.toml":
		return FormatTOML
	}
	if filepath.Ext(base) == ".json" {
		return FormatNode
	}
	return FormatTOML
}

// KnownManifests lists manifest file names probed by autodetection,
// in priority order.
var KnownManifests = []string{"Cargo.toml", "package.json", "pyproject.toml"}
