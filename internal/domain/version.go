package domain

import (
	"errors"
	"strings"

	"golang.org/x/mod/semver"
)

// ErrEmptyVersion rejects a blank version string.
var ErrEmptyVersion = errors.New("version cannot be empty")

// DefaultPrefix is the conventional release tag prefix.
const DefaultPrefix = "v"

// Version represents a version string extracted from a project manifest.
// It is carried verbatim: the publisher never rejects a version for not
// being semver, the shape check is advisory only. The zero value is a
// declared empty version; its tag is the bare prefix.
type Version struct {
	value string
}

// NewVersion creates a Version from raw manifest content.
// The only requirement is that the string is non-empty.
func NewVersion(value string) (Version, error) {
	if value == "" {
		return Version{}, ErrEmptyVersion
	}
	return Version{value: value}, nil
}

// MustVersion creates a Version, panicking on empty input.
// Use only in tests and for values known to be non-empty.
func MustVersion(value string) Version {
	v, err := NewVersion(value)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the raw version string as it appeared in the manifest.
func (v Version) String() string {
	return v.value
}

// IsSemver reports whether the version is valid semantic versioning.
// A leading "v" is tolerated since manifests are inconsistent about it.
func (v Version) IsSemver() bool {
	s := v.value
	if !strings.HasPrefix(s, "v") {
		s = "v" + s
	}
	return semver.IsValid(s)
}

// Canonical returns the canonical semver form (without prefix), or the
// raw value when the version is not semver.
func (v Version) Canonical() string {
	if !v.IsSemver() {
		return v.value
	}
	s := v.value
	if !strings.HasPrefix(s, "v") {
		s = "v" + s
	}
	return strings.TrimPrefix(semver.Canonical(s), "v")
}

// Tag derives the release tag name for this version: prefix + version,
// verbatim, no normalization.
func (v Version) Tag(prefix string) string {
	return prefix + v.value
}
