package mcp

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/tagctl/internal/application"
	"github.com/felixgeelhaar/tagctl/internal/domain"
	"github.com/felixgeelhaar/tagctl/internal/infrastructure/history"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// handlePlan implements the plan tool.
func (s *Server) handlePlan(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input PlanInput,
) (*mcp.CallToolResult, ToolOutput, error) {
	opts := application.PlanOptions{
		ConfigPath: coalesce(input.ConfigPath, s.config.ConfigPath),
		Manifest:   input.Manifest,
		Format:     input.Format,
		Prefix:     input.Prefix,
		Remote:     input.Remote,
		Quiet:      true,
	}

	result, err := s.svc.Plan(ctx, opts)

	output := toolOutput(result)
	if err != nil {
		output.Status = domain.StatusFailed
		output.Error = err.Error()
		output.Summary = "Plan failed"
		return nil, output, nil
	}

	output.Summary = generateSummary(result)
	return nil, output, nil
}

// handlePublish implements the publish tool.
func (s *Server) handlePublish(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input PublishInput,
) (*mcp.CallToolResult, ToolOutput, error) {
	opts := application.PublishOptions{
		ConfigPath: coalesce(input.ConfigPath, s.config.ConfigPath),
		Manifest:   input.Manifest,
		Format:     input.Format,
		Prefix:     input.Prefix,
		Remote:     input.Remote,
		Message:    input.Message,
		Annotate:   input.Annotate,
		DryRun:     input.DryRun,
		Quiet:      true,
	}

	var store application.HistoryStore
	if !input.NoRecord && !input.DryRun {
		path, err := s.svc.HistoryPath(opts.ConfigPath)
		if err != nil {
			path = s.config.HistoryPath
		}
		store = &history.FileStore{Path: path}
	}

	result, err := s.svc.Publish(ctx, opts, store)

	output := toolOutput(result)
	if err != nil {
		output.Status = domain.StatusFailed
		output.Error = err.Error()
		output.Summary = "Publish failed"
		return nil, output, nil
	}

	output.Summary = generateSummary(result)
	return nil, output, nil
}

func toolOutput(result application.PublishResult) ToolOutput {
	warnings := make([]string, 0, len(result.Plan.Warnings)+len(result.Warnings))
	warnings = append(warnings, result.Plan.Warnings...)
	warnings = append(warnings, result.Warnings...)
	if len(warnings) == 0 {
		warnings = nil
	}
	return ToolOutput{
		Status:   result.Status,
		Tag:      result.Plan.Tag,
		Version:  result.Plan.Version,
		Remote:   result.Plan.Remote,
		Commit:   result.Commit,
		Warnings: warnings,
	}
}

// generateSummary creates a human-readable summary from the result.
func generateSummary(result application.PublishResult) string {
	switch result.Status {
	case domain.StatusPublished:
		return fmt.Sprintf("%s pushed to %s", result.Plan.Tag, result.Plan.Remote)
	case domain.StatusPlanned:
		return fmt.Sprintf("Would tag %s (version %s) and push to %s", result.Plan.Tag, result.Plan.Version, result.Plan.Remote)
	default:
		return "Publish failed"
	}
}
