package application

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/felixgeelhaar/tagctl/internal/domain"
)

type Service struct {
	ConfigLoader ConfigLoader
	Autodetector Autodetector
	Manifests    ManifestReader
	Tags         TagRepository
	Reporter     Reporter
	Out          io.Writer
}

// Publish runs the full release sequence: read the manifest version,
// derive the tag name, create the tag, push it to the remote. The two
// git invocations run strictly in order; a create failure means the
// push is never attempted.
func (s *Service) Publish(ctx context.Context, opts PublishOptions, store HistoryStore) (PublishResult, error) {
	cfg, err := s.loadConfig(opts.ConfigPath)
	if err != nil {
		return PublishResult{}, err
	}
	cfg = mergePublishOverrides(cfg, opts)

	plan, err := s.plan(ctx, cfg)
	if err != nil {
		return PublishResult{}, err
	}

	result := PublishResult{Status: domain.StatusPlanned, Plan: plan}
	if opts.DryRun {
		return result, s.report(result, opts.Output, opts.Quiet)
	}

	message := ""
	if cfg.Annotate {
		message = expandMessage(cfg.Message, plan)
	}
	if err := s.Tags.CreateTag(ctx, plan.Tag, message); err != nil {
		result.Status = domain.StatusFailed
		return result, fmt.Errorf("%w: %v", ErrTagCommand, err)
	}
	if err := s.Tags.PushTag(ctx, plan.Remote, plan.Tag); err != nil {
		result.Status = domain.StatusFailed
		if cfg.Rollback {
			if delErr := s.Tags.DeleteTag(ctx, plan.Tag); delErr != nil {
				s.warn(&result, opts.Quiet, "could not roll back local tag %s: %v", plan.Tag, delErr)
			}
		}
		return result, fmt.Errorf("%w: %v", ErrTagCommand, err)
	}

	result.Status = domain.StatusPublished
	if commit, err := s.Tags.Head(ctx); err == nil {
		result.Commit = commit
	}

	if store != nil {
		release := domain.Release{
			Timestamp: time.Now().UTC(),
			Tag:       plan.Tag,
			Version:   plan.Version,
			Commit:    result.Commit,
			Remote:    plan.Remote,
			Manifest:  plan.Manifest,
		}
		if err := store.Append(release); err != nil {
			s.warn(&result, opts.Quiet, "could not record release: %v", err)
		}
	}

	return result, s.report(result, opts.Output, opts.Quiet)
}

// Plan computes what Publish would do without touching the repository,
// and flags conditions worth knowing before a release: an existing tag
// of the same name, or a version that is not canonical semver.
func (s *Service) Plan(ctx context.Context, opts PlanOptions) (PublishResult, error) {
	cfg, err := s.loadConfig(opts.ConfigPath)
	if err != nil {
		return PublishResult{}, err
	}
	cfg = mergePlanOverrides(cfg, opts)

	plan, err := s.plan(ctx, cfg)
	if err != nil {
		return PublishResult{}, err
	}
	result := PublishResult{Status: domain.StatusPlanned, Plan: plan}
	return result, s.report(result, opts.Output, opts.Quiet)
}

// Detect proposes a config for the current directory.
func (s *Service) Detect(_ context.Context, _ DetectOptions) (Config, error) {
	return s.Autodetector.Detect()
}

// History returns recorded releases, newest first, truncated to limit
// when limit is positive. A tag filter narrows the result to the one
// release recorded for that tag.
func (s *Service) History(_ context.Context, opts HistoryOptions, store HistoryStore) ([]domain.Release, error) {
	h, err := store.Load()
	if err != nil {
		return nil, err
	}
	if opts.Tag != "" {
		if r := h.FindTag(opts.Tag); r != nil {
			return []domain.Release{*r}, nil
		}
		return nil, nil
	}
	releases := make([]domain.Release, len(h.Releases))
	copy(releases, h.Releases)
	for i, j := 0, len(releases)-1; i < j; i, j = i+1, j-1 {
		releases[i], releases[j] = releases[j], releases[i]
	}
	if opts.Limit > 0 && len(releases) > opts.Limit {
		releases = releases[:opts.Limit]
	}
	return releases, nil
}

// HistoryPath resolves the configured history file location.
func (s *Service) HistoryPath(configPath string) (string, error) {
	cfg, err := s.loadConfig(configPath)
	if err != nil {
		return "", err
	}
	if cfg.History == "" {
		return DefaultHistory, nil
	}
	return cfg.History, nil
}

func (s *Service) plan(ctx context.Context, cfg Config) (domain.Plan, error) {
	version, err := s.Manifests.Read(cfg.Manifest, cfg.Format)
	if err != nil {
		return domain.Plan{}, err
	}

	plan := domain.Plan{
		Version:  version.String(),
		Tag:      version.Tag(cfg.Prefix),
		Remote:   cfg.Remote,
		Manifest: cfg.Manifest,
	}
	if prev, err := s.Tags.LatestTag(ctx); err == nil {
		plan.PreviousTag = prev
	}
	if exists, err := s.Tags.TagExists(ctx, plan.Tag); err == nil && exists {
		plan.TagExists = true
		plan.Warnings = append(plan.Warnings, fmt.Sprintf("tag %s already exists; git tag will refuse to overwrite it", plan.Tag))
	}
	if !version.IsSemver() {
		plan.Warnings = append(plan.Warnings, fmt.Sprintf("version %q is not semantic versioning; publishing it anyway", version.String()))
	} else if c := version.Canonical(); c != version.String() {
		plan.Warnings = append(plan.Warnings, fmt.Sprintf("version %q is not canonical semver (%s); the tag uses it verbatim", version.String(), c))
	}
	return plan, nil
}

func (s *Service) loadConfig(path string) (Config, error) {
	exists, err := s.ConfigLoader.Exists(path)
	if err != nil {
		return Config{}, err
	}
	if !exists {
		return Config{}.withDefaults(), nil
	}
	cfg, err := s.ConfigLoader.Load(path)
	if err != nil {
		return Config{}, err
	}
	return cfg.withDefaults(), nil
}

// warn records a non-fatal problem on the result and, unless the caller
// asked for quiet, echoes it to Out. Quiet callers own their output
// stream (the MCP transport speaks JSON-RPC on it), so nothing else may
// write there.
func (s *Service) warn(result *PublishResult, quiet bool, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	result.Warnings = append(result.Warnings, msg)
	if !quiet && s.Out != nil {
		fmt.Fprintf(s.Out, "warning: %s\n", msg)
	}
}

func (s *Service) report(result PublishResult, format OutputFormat, quiet bool) error {
	if quiet || s.Reporter == nil {
		return nil
	}
	return s.Reporter.Write(s.Out, result, format)
}

func mergePublishOverrides(cfg Config, opts PublishOptions) Config {
	if opts.Manifest != "" {
		cfg.Manifest = opts.Manifest
	}
	if opts.Format != "" {
		cfg.Format = opts.Format
	}
	if opts.Prefix != "" {
		cfg.Prefix = opts.Prefix
	}
	if opts.Remote != "" {
		cfg.Remote = opts.Remote
	}
	if opts.Message != "" {
		cfg.Message = opts.Message
	}
	if opts.Annotate {
		cfg.Annotate = true
	}
	return cfg
}

func mergePlanOverrides(cfg Config, opts PlanOptions) Config {
	if opts.Manifest != "" {
		cfg.Manifest = opts.Manifest
	}
	if opts.Format != "" {
		cfg.Format = opts.Format
	}
	if opts.Prefix != "" {
		cfg.Prefix = opts.Prefix
	}
	if opts.Remote != "" {
		cfg.Remote = opts.Remote
	}
	return cfg
}

// expandMessage fills the annotation message template. An empty
// template annotates with the bare version, matching the convention of
// version-bump commit messages.
func expandMessage(template string, plan domain.Plan) string {
	if template == "" {
		return plan.Version
	}
	msg := strings.ReplaceAll(template, "{version}", plan.Version)
	return strings.ReplaceAll(msg, "{tag}", plan.Tag)
}
