// Package mcp provides Model Context Protocol server implementation for tagctl.
package mcp

import (
	"context"

	"github.com/felixgeelhaar/tagctl/internal/application"
	"github.com/felixgeelhaar/tagctl/internal/domain"
)

// Service defines the application operations needed by MCP.
// This interface allows for easy mocking in tests.
type Service interface {
	// Tools (actions that may have side effects)
	Publish(ctx context.Context, opts application.PublishOptions, store application.HistoryStore) (application.PublishResult, error)
	Plan(ctx context.Context, opts application.PlanOptions) (application.PublishResult, error)

	// Resources (read-only queries)
	Detect(ctx context.Context, opts application.DetectOptions) (application.Config, error)
	History(ctx context.Context, opts application.HistoryOptions, store application.HistoryStore) ([]domain.Release, error)
	HistoryPath(configPath string) (string, error)
}

// Config holds MCP server configuration.
type Config struct {
	ConfigPath  string // Path to .tagctl.yaml (default: ".tagctl.yaml")
	HistoryPath string // Path to the release history file (default: ".tagctl/history.json")
}

// DefaultConfig returns configuration with default values.
func DefaultConfig() Config {
	return Config{
		ConfigPath:  ".tagctl.yaml",
		HistoryPath: application.DefaultHistory,
	}
}

// PlanInput defines the input parameters for the plan tool.
type PlanInput struct {
	ConfigPath string `json:"configPath,omitempty" jsonschema:"description=Path to .tagctl.yaml config file"`
	Manifest   string `json:"manifest,omitempty" jsonschema:"description=Manifest file to read the version from"`
	Format     string `json:"format,omitempty" jsonschema:"description=Manifest format: auto|toml|node"`
	Prefix     string `json:"prefix,omitempty" jsonschema:"description=Tag name prefix"`
	Remote     string `json:"remote,omitempty" jsonschema:"description=Remote the tag would be pushed to"`
}

// PublishInput defines the input parameters for the publish tool.
type PublishInput struct {
	ConfigPath string `json:"configPath,omitempty" jsonschema:"description=Path to .tagctl.yaml config file"`
	Manifest   string `json:"manifest,omitempty" jsonschema:"description=Manifest file to read the version from"`
	Format     string `json:"format,omitempty" jsonschema:"description=Manifest format: auto|toml|node"`
	Prefix     string `json:"prefix,omitempty" jsonschema:"description=Tag name prefix"`
	Remote     string `json:"remote,omitempty" jsonschema:"description=Remote to push the tag to"`
	Message    string `json:"message,omitempty" jsonschema:"description=Annotation message, supports {version} and {tag}"`
	Annotate   bool   `json:"annotate,omitempty" jsonschema:"description=Create an annotated tag"`
	DryRun     bool   `json:"dryRun,omitempty" jsonschema:"description=Compute the plan without touching git"`
	NoRecord   bool   `json:"noRecord,omitempty" jsonschema:"description=Skip recording the release to history"`
}

// ToolOutput represents the common output structure for tools.
type ToolOutput struct {
	Status   domain.Status `json:"status"`
	Tag      string        `json:"tag,omitempty"`
	Version  string        `json:"version,omitempty"`
	Remote   string        `json:"remote,omitempty"`
	Commit   string        `json:"commit,omitempty"`
	Warnings []string      `json:"warnings,omitempty"`
	Summary  string        `json:"summary,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// coalesce returns value if non-empty, otherwise fallback.
func coalesce(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
