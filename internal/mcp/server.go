package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is set at build time.
var Version = "dev"

// Server wraps the application service with MCP protocol handling.
type Server struct {
	svc    Service
	config Config
}

// New creates a new MCP server wrapping the given service.
func New(svc Service, cfg Config) *Server {
	// Apply defaults
	if cfg.ConfigPath == "" {
		cfg.ConfigPath = DefaultConfig().ConfigPath
	}
	if cfg.HistoryPath == "" {
		cfg.HistoryPath = DefaultConfig().HistoryPath
	}

	return &Server{
		svc:    svc,
		config: cfg,
	}
}

// Run starts the MCP server and blocks until the context is canceled.
func (s *Server) Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "tagctl",
			Version: Version,
		},
		&mcp.ServerOptions{
			HasTools:     true,
			HasResources: true,
		},
	)

	// Register tools
	s.registerTools(server)

	// Register resources
	s.registerResources(server)

	// Run with STDIO transport
	transport := &mcp.StdioTransport{}
	if err := server.Run(ctx, transport); err != nil {
		return fmt.Errorf("mcp server error: %w", err)
	}

	return nil
}

// registerTools adds all tool handlers to the server.
func (s *Server) registerTools(server *mcp.Server) {
	// Plan tool - computes the release plan without touching git
	mcp.AddTool(server, &mcp.Tool{
		Name:        "plan",
		Description: "Compute what a publish would do: the version read from the manifest, the derived tag name, and any warnings (existing tag, non-semver version). Makes no changes.",
	}, s.handlePlan)

	// Publish tool - creates and pushes the release tag
	mcp.AddTool(server, &mcp.Tool{
		Name:        "publish",
		Description: "Read the manifest version, create the git tag and push it to the remote. Use dryRun to preview without changing anything.",
	}, s.handlePublish)
}

// registerResources adds all resource handlers to the server.
func (s *Server) registerResources(server *mcp.Server) {
	// History resource
	server.AddResource(&mcp.Resource{
		URI:         "tagctl://history",
		Name:        "Release History",
		Description: "Recorded releases, newest first",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)

	// Latest release resource
	server.AddResource(&mcp.Resource{
		URI:         "tagctl://latest",
		Name:        "Latest Release",
		Description: "The most recently published release, or null when none is recorded",
		MIMEType:    "application/json",
	}, s.handleLatestResource)

	// Config resource
	server.AddResource(&mcp.Resource{
		URI:         "tagctl://config",
		Name:        "Current Configuration",
		Description: "Returns current or auto-detected tagctl configuration",
		MIMEType:    "application/json",
	}, s.handleConfigResource)
}
