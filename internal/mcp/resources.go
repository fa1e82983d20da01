package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/felixgeelhaar/tagctl/internal/application"
	"github.com/felixgeelhaar/tagctl/internal/infrastructure/history"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// handleHistoryResource returns recorded releases, newest first.
func (s *Server) handleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	path, err := s.svc.HistoryPath(s.config.ConfigPath)
	if err != nil {
		path = s.config.HistoryPath
	}
	store := &history.FileStore{Path: path}

	releases, err := s.svc.History(ctx, application.HistoryOptions{
		ConfigPath: s.config.ConfigPath,
		Output:     application.OutputJSON,
	}, store)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	data, err := json.MarshalIndent(releases, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal history: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleLatestResource returns the most recently published release,
// or JSON null when nothing has been recorded yet.
func (s *Server) handleLatestResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	path, err := s.svc.HistoryPath(s.config.ConfigPath)
	if err != nil {
		path = s.config.HistoryPath
	}
	store := &history.FileStore{Path: path}

	h, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	data, err := json.MarshalIndent(h.Latest(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal release: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleConfigResource returns the current or detected configuration.
func (s *Server) handleConfigResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	result, err := s.svc.Detect(ctx, application.DetectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to detect config: %w", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
