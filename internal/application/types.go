package application

import (
	"context"
	"errors"
	"io"

	"github.com/felixgeelhaar/tagctl/internal/domain"
)

type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
)

// ErrTagCommand marks a failed git tag or git push invocation. Both
// collapse into the same user-facing failure; the wrapped error keeps
// the detail for anyone who wants it.
var ErrTagCommand = errors.New("failed to create or push git tag")

// Config represents validated, application-ready configuration.
// The zero value plus defaults is a working setup: tagctl publishes
// from Cargo.toml to origin with a "v" prefix when no config exists.
type Config struct {
	Version  int
	Manifest string // Manifest file path
	Format   string // Manifest format: auto|toml|node
	Prefix   string // Tag name prefix
	Remote   string // Remote to push tags to
	Annotate bool   // Create annotated tags
	Message  string // Annotation message template ({version} and {tag} expand)
	Rollback bool   // Delete the local tag when the push fails
	History  string // Release history file path ("" disables recording)
}

// Defaults for absent config fields.
const (
	DefaultManifest = "Cargo.toml"
	DefaultRemote   = "origin"
	DefaultHistory  = ".tagctl/history.json"
)

func (c Config) withDefaults() Config {
	if c.Manifest == "" {
		c.Manifest = DefaultManifest
	}
	if c.Format == "" {
		c.Format = "auto"
	}
	if c.Prefix == "" {
		c.Prefix = domain.DefaultPrefix
	}
	if c.Remote == "" {
		c.Remote = DefaultRemote
	}
	return c
}

type ConfigLoader interface {
	Load(path string) (Config, error)
	Exists(path string) (bool, error)
}

type Autodetector interface {
	Detect() (Config, error)
}

// ManifestReader extracts the version declaration from a manifest file.
type ManifestReader interface {
	Read(path string, format string) (domain.Version, error)
}

// TagRepository abstracts the git operations a publish run needs, so
// tests can substitute a fake instead of invoking a real git client.
type TagRepository interface {
	CreateTag(ctx context.Context, name, message string) error
	PushTag(ctx context.Context, remote, name string) error
	DeleteTag(ctx context.Context, name string) error
	TagExists(ctx context.Context, name string) (bool, error)
	Head(ctx context.Context) (string, error)
	LatestTag(ctx context.Context) (string, error)
}

type HistoryStore interface {
	Load() (domain.History, error)
	Append(release domain.Release) error
}

type Reporter interface {
	Write(w io.Writer, result PublishResult, format OutputFormat) error
}

// PublishResult is what a publish or plan run produced. Warnings holds
// non-fatal problems hit after the push (failed rollback, failed
// history record), distinct from the pre-flight warnings on the plan.
type PublishResult struct {
	Status   domain.Status `json:"status"`
	Plan     domain.Plan   `json:"plan"`
	Commit   string        `json:"commit,omitempty"`
	Warnings []string      `json:"warnings,omitempty"`
}

type PublishOptions struct {
	ConfigPath string
	Manifest   string // Overrides config when non-empty
	Format     string
	Prefix     string
	Remote     string
	Message    string
	Annotate   bool
	DryRun     bool
	Output     OutputFormat
	Quiet      bool // Suppress the report; callers render the result themselves
}

type PlanOptions struct {
	ConfigPath string
	Manifest   string
	Format     string
	Prefix     string
	Remote     string
	Output     OutputFormat
	Quiet      bool
}

type DetectOptions struct {
}

type HistoryOptions struct {
	ConfigPath string
	Tag        string // Show only the release recorded for this tag
	Limit      int
	Output     OutputFormat
}
