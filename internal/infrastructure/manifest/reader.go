// Package manifest extracts version declarations from project manifests.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/felixgeelhaar/tagctl/internal/domain"
	"github.com/felixgeelhaar/tagctl/internal/pathutil"
)

// ErrVersionNotFound indicates the manifest has no usable version field.
var ErrVersionNotFound = errors.New("manifest missing version field")

// versionPattern matches a quoted version assignment as found in
// Cargo.toml, pyproject.toml and similar key = "value" manifests.
// The first match in file order wins.
var versionPattern = regexp.MustCompile(`version\s*=\s*"(.*?)"`)

// Reader extracts the version from a manifest file.
type Reader struct{}

// Read returns the version declared in the manifest at path.
// An empty or "auto" format picks the parsing strategy from the file name.
func (r Reader) Read(path string, format string) (domain.Version, error) {
	path, err := pathutil.ValidatePath(path)
	if err != nil {
		return domain.Version{}, fmt.Errorf("manifest path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Version{}, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	f := Format(format)
	if f == "" || f == FormatAuto {
		f = DetectFormat(path)
	}

	switch f {
	case FormatNode:
		return readNode(data)
	case FormatTOML:
		return readQuotedAssignment(data)
	default:
		return domain.Version{}, fmt.Errorf("unsupported manifest format: %s", f)
	}
}

// readQuotedAssignment scans the full text for the first version = "..."
// occurrence. The quoted content is taken verbatim, with no shape check:
// version = "" is a declared (empty) version, not a missing one, and
// yields the bare prefix as the tag name.
func readQuotedAssignment(data []byte) (domain.Version, error) {
	m := versionPattern.FindSubmatch(data)
	if m == nil {
		return domain.Version{}, ErrVersionNotFound
	}
	if len(m[1]) == 0 {
		return domain.Version{}, nil
	}
	return domain.NewVersion(string(m[1]))
}

// readNode extracts the top-level version field from a package.json.
// As with the quoted-assignment scan, a declared empty string is kept.
func readNode(data []byte) (domain.Version, error) {
	var pkg struct {
		Version *string `json:"version"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return domain.Version{}, fmt.Errorf("parsing package.json: %w", err)
	}
	if pkg.Version == nil {
		return domain.Version{}, ErrVersionNotFound
	}
	if *pkg.Version == "" {
		return domain.Version{}, nil
	}
	return domain.NewVersion(*pkg.Version)
}
