package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadCargoManifest(t *testing.T) {
	path := writeManifest(t, "Cargo.toml", `[package]
name = "nullfs"
version = "2.3.1"
edition = "2021"
`)

	v, err := Reader{}.Read(path, "")
	require.NoError(t, err)
	assert.Equal(t, "2.3.1", v.String())
	assert.Equal(t, "v2.3.1", v.Tag("v"))
}

func TestReadWhitespaceAroundEquals(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no spaces", `version="1.0.0"`},
		{"spaces", `version = "1.0.0"`},
		{"tabs", "version\t=\t\"1.0.0\""},
		{"asymmetric", `version ="1.0.0"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, "Cargo.toml", tt.content)
			v, err := Reader{}.Read(path, "")
			require.NoError(t, err)
			assert.Equal(t, "1.0.0", v.String())
		})
	}
}

func TestReadFirstOccurrenceWins(t *testing.T) {
	path := writeManifest(t, "Cargo.toml", `version = "1.2.3"

[dependencies]
serde = { version = "1.0.219" }
`)

	v, err := Reader{}.Read(path, "")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", v.String())
}

func TestReadNonSemverContentVerbatim(t *testing.T) {
	path := writeManifest(t, "Cargo.toml", `version = "2024-spring.alpha"`)

	v, err := Reader{}.Read(path, "")
	require.NoError(t, err)
	assert.Equal(t, "2024-spring.alpha", v.String())
	assert.Equal(t, "v2024-spring.alpha", v.Tag("v"))
}

func TestReadEmptyQuotedVersion(t *testing.T) {
	path := writeManifest(t, "Cargo.toml", `[package]
name = "nullfs"
version = ""
`)

	v, err := Reader{}.Read(path, "")
	require.NoError(t, err, "an empty quoted value is declared, not missing")
	assert.Equal(t, "", v.String())
	assert.Equal(t, "v", v.Tag("v"))
}

func TestReadMissingVersion(t *testing.T) {
	path := writeManifest(t, "Cargo.toml", `[package]
name = "nullfs"
`)

	_, err := Reader{}.Read(path, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrVersionNotFound))
}

func TestReadMissingFile(t *testing.T) {
	_, err := Reader{}.Read(filepath.Join(t.TempDir(), "Cargo.toml"), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestReadPackageJSON(t *testing.T) {
	path := writeManifest(t, "package.json", `{
  "name": "nullfs",
  "version": "4.5.6",
  "dependencies": {"left-pad": "1.3.0"}
}`)

	v, err := Reader{}.Read(path, "")
	require.NoError(t, err)
	assert.Equal(t, "4.5.6", v.String())
}

func TestReadPackageJSONWithoutVersion(t *testing.T) {
	path := writeManifest(t, "package.json", `{"name": "nullfs"}`)

	_, err := Reader{}.Read(path, "")
	assert.True(t, errors.Is(err, ErrVersionNotFound))
}

func TestReadPackageJSONEmptyVersion(t *testing.T) {
	path := writeManifest(t, "package.json", `{"name": "nullfs", "version": ""}`)

	v, err := Reader{}.Read(path, "")
	require.NoError(t, err)
	assert.Equal(t, "v", v.Tag("v"))
}

func TestReadExplicitFormatOverridesName(t *testing.T) {
	path := writeManifest(t, "weird.txt", `version = "9.9.9"`)

	v, err := Reader{}.Read(path, "toml")
	require.NoError(t, err)
	assert.Equal(t, "9.9.9", v.String())
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"Cargo.toml", FormatTOML},
		{"sub/dir/Cargo.toml", FormatTOML},
		{"pyproject.toml", FormatTOML},
		{"package.json", FormatNode},
		{"config.json", FormatNode},
		{"VERSION", FormatTOML},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectFormat(tt.path), tt.path)
	}
}
