package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/felixgeelhaar/tagctl/internal/application"
	"github.com/felixgeelhaar/tagctl/internal/domain"
	"github.com/felixgeelhaar/tagctl/internal/infrastructure/autodetect"
	"github.com/felixgeelhaar/tagctl/internal/infrastructure/config"
	"github.com/felixgeelhaar/tagctl/internal/infrastructure/gitcmd"
	"github.com/felixgeelhaar/tagctl/internal/infrastructure/history"
	"github.com/felixgeelhaar/tagctl/internal/infrastructure/manifest"
	"github.com/felixgeelhaar/tagctl/internal/infrastructure/report"
	"github.com/felixgeelhaar/tagctl/internal/infrastructure/watcher"
	"github.com/felixgeelhaar/tagctl/internal/infrastructure/wizard"
	"github.com/felixgeelhaar/tagctl/internal/mcp"
)

const defaultConfigPath = ".tagctl.yaml"

type Service interface {
	Publish(ctx context.Context, opts application.PublishOptions, store application.HistoryStore) (application.PublishResult, error)
	Plan(ctx context.Context, opts application.PlanOptions) (application.PublishResult, error)
	Detect(ctx context.Context, opts application.DetectOptions) (application.Config, error)
	History(ctx context.Context, opts application.HistoryOptions, store application.HistoryStore) ([]domain.Release, error)
	HistoryPath(configPath string) (string, error)
}

var initWizard = wizard.Run

func Run(args []string, stdout, stderr io.Writer, svc Service) int {
	if len(args) < 2 {
		usage(stderr)
		return 2
	}

	ctx := context.Background()

	switch args[1] {
	case "publish":
		fs := flag.NewFlagSet("publish", flag.ExitOnError)
		configPath := fs.String("config", defaultConfigPath, "Config file path")
		manifestPath := fs.String("manifest", "", "Manifest file path (overrides config)")
		format := fs.String("format", "", "Manifest format: auto|toml|node")
		prefix := fs.String("prefix", "", "Tag name prefix (overrides config)")
		remote := fs.String("remote", "", "Remote to push to (overrides config)")
		message := fs.String("message", "", "Annotation message, supports {version} and {tag}")
		annotate := fs.Bool("annotate", false, "Create an annotated tag")
		dryRun := fs.Bool("dry-run", false, "Show what would happen without touching git")
		noRecord := fs.Bool("no-record", false, "Skip recording the release to history")
		output := outputFlags(fs)
		_ = fs.Parse(args[2:])

		opts := application.PublishOptions{
			ConfigPath: *configPath,
			Manifest:   *manifestPath,
			Format:     *format,
			Prefix:     *prefix,
			Remote:     *remote,
			Message:    *message,
			Annotate:   *annotate,
			DryRun:     *dryRun,
			Output:     *output,
		}
		var store application.HistoryStore
		if !*noRecord && !*dryRun {
			path, err := svc.HistoryPath(*configPath)
			if err != nil {
				return exitCode(err, 1, stderr)
			}
			store = &history.FileStore{Path: path}
		}
		_, err := svc.Publish(ctx, opts, store)
		if errors.Is(err, application.ErrTagCommand) {
			// The exact line callers of this tool key on.
			fmt.Fprintln(stdout, "Failed to create or push git tag")
			return 1
		}
		return exitCode(err, 1, stderr)
	case "plan":
		fs := flag.NewFlagSet("plan", flag.ExitOnError)
		configPath := fs.String("config", defaultConfigPath, "Config file path")
		manifestPath := fs.String("manifest", "", "Manifest file path (overrides config)")
		format := fs.String("format", "", "Manifest format: auto|toml|node")
		prefix := fs.String("prefix", "", "Tag name prefix (overrides config)")
		remote := fs.String("remote", "", "Remote to push to (overrides config)")
		watch := fs.Bool("watch", false, "Re-plan whenever the manifest changes")
		output := outputFlags(fs)
		_ = fs.Parse(args[2:])

		opts := application.PlanOptions{
			ConfigPath: *configPath,
			Manifest:   *manifestPath,
			Format:     *format,
			Prefix:     *prefix,
			Remote:     *remote,
			Output:     *output,
		}
		if *watch {
			return runWatch(ctx, stdout, stderr, svc, opts)
		}
		_, err := svc.Plan(ctx, opts)
		return exitCode(err, 3, stderr)
	case "detect":
		fs := flag.NewFlagSet("detect", flag.ExitOnError)
		writeConfig := fs.Bool("write-config", false, "Write detected config to "+defaultConfigPath)
		configPath := fs.String("config", defaultConfigPath, "Config file path")
		force := fs.Bool("force", false, "Overwrite config if it exists")
		_ = fs.Parse(args[2:])
		cfg, err := svc.Detect(ctx, application.DetectOptions{})
		if err != nil {
			return exitCode(err, 3, stderr)
		}
		target := "-"
		if *writeConfig {
			target = *configPath
		}
		if err := writeConfigFile(target, cfg, stdout, *force); err != nil {
			return exitCode(err, 2, stderr)
		}
		return 0
	case "init":
		fs := flag.NewFlagSet("init", flag.ExitOnError)
		configPath := fs.String("config", defaultConfigPath, "Config file path")
		force := fs.Bool("force", false, "Overwrite existing config file")
		noInteractive := fs.Bool("no-interactive", false, "Skip the interactive init wizard")
		_ = fs.Parse(args[2:])
		cfg, err := svc.Detect(ctx, application.DetectOptions{})
		if err != nil {
			return exitCode(err, 3, stderr)
		}
		if !*noInteractive {
			var confirmed bool
			cfg, confirmed, err = initWizard(cfg, stdout, os.Stdin)
			if err != nil {
				return exitCode(err, 5, stderr)
			}
			if !confirmed {
				fmt.Fprintln(stdout, "Init cancelled; no configuration written.")
				return 0
			}
		}
		if err := writeConfigFile(*configPath, cfg, stdout, *force); err != nil {
			return exitCode(err, 2, stderr)
		}
		return 0
	case "history":
		fs := flag.NewFlagSet("history", flag.ExitOnError)
		configPath := fs.String("config", defaultConfigPath, "Config file path")
		tag := fs.String("tag", "", "Show only the release recorded for this tag")
		limit := fs.Int("limit", 0, "Show at most this many releases (0 = all)")
		output := outputFlags(fs)
		_ = fs.Parse(args[2:])

		path, err := svc.HistoryPath(*configPath)
		if err != nil {
			return exitCode(err, 1, stderr)
		}
		releases, err := svc.History(ctx, application.HistoryOptions{
			ConfigPath: *configPath,
			Tag:        *tag,
			Limit:      *limit,
			Output:     *output,
		}, &history.FileStore{Path: path})
		if err != nil {
			return exitCode(err, 1, stderr)
		}
		printHistory(releases, stdout, *output)
		return 0
	case "mcp":
		fs := flag.NewFlagSet("mcp", flag.ExitOnError)
		configPath := fs.String("config", defaultConfigPath, "Config file path")
		_ = fs.Parse(args[2:])
		server := mcp.New(svc, mcp.Config{ConfigPath: *configPath})
		if err := server.Run(ctx); err != nil {
			return exitCode(err, 1, stderr)
		}
		return 0
	case "version":
		fmt.Fprintln(stdout, versionString())
		return 0
	default:
		usage(stderr)
		return 2
	}
}

func BuildService(out *os.File) *application.Service {
	return &application.Service{
		ConfigLoader: config.Loader{},
		Autodetector: autodetect.Detector{},
		Manifests:    manifest.Reader{},
		Tags:         gitcmd.Repository{},
		Reporter:     report.Writer{},
		Out:          out,
	}
}

func outputFlags(fs *flag.FlagSet) *application.OutputFormat {
	output := application.OutputText
	fs.Var((*outputValue)(&output), "output", "Output format: text|json")
	fs.Var((*outputValue)(&output), "o", "Output format: text|json")
	return &output
}

type outputValue application.OutputFormat

func (o *outputValue) String() string { return string(*o) }

func (o *outputValue) Set(value string) error {
	switch value {
	case string(application.OutputText), string(application.OutputJSON):
		*o = outputValue(value)
		return nil
	default:
		return fmt.Errorf("invalid output format: %s", value)
	}
}

func writeConfigFile(path string, cfg application.Config, stdout io.Writer, force bool) error {
	if path == "-" {
		return config.Write(stdout, cfg)
	}
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config %s already exists", path)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return config.Write(file, cfg)
}

func usage(w io.Writer) {
	fmt.Fprintln(w, `tagctl <command>

Commands:
  publish  Read the manifest version, tag it, push the tag
  plan     Show what publish would do (use --watch to re-plan on edits)
  detect   Autodetect the project manifest (use --write-config to save)
  init     Run autodetect plus the interactive wizard
  history  List recorded releases
  mcp      Serve plan/publish tools over the Model Context Protocol
  version  Print build information`)
}

func exitCode(err error, code int, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	fmt.Fprintln(stderr, err)
	return code
}

func printHistory(releases []domain.Release, w io.Writer, format application.OutputFormat) {
	if format == application.OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		_ = enc.Encode(releases)
		return
	}
	if len(releases) == 0 {
		fmt.Fprintln(w, "No releases recorded yet.")
		return
	}
	for _, r := range releases {
		line := r.Tag
		if r.Commit != "" {
			line += " @ " + r.Commit
		}
		if !r.Timestamp.IsZero() {
			line += " (" + r.Timestamp.Format(time.RFC3339) + ")"
		}
		fmt.Fprintln(w, line)
	}
}

func runWatch(ctx context.Context, stdout, stderr io.Writer, svc Service, opts application.PlanOptions) int {
	manifestPath := opts.Manifest
	if manifestPath == "" {
		manifestPath = application.DefaultManifest
	}
	w, err := watcher.New(manifestPath, watcher.WithDebounce(500*time.Millisecond))
	if err != nil {
		fmt.Fprintf(stderr, "failed to create watcher: %v\n", err)
		return 3
	}
	defer w.Close()

	// Handle Ctrl+C gracefully
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(stdout, "\nStopping watch mode...")
		cancel()
	}()

	fmt.Fprintf(stdout, "Watching %s for version changes... (Ctrl+C to stop)\n\n", manifestPath)

	if _, err := svc.Plan(ctx, opts); err != nil {
		fmt.Fprintf(stderr, "plan failed: %v\n", err)
	}

	events := w.Events(ctx)
	for {
		select {
		case <-ctx.Done():
			return 0
		case _, ok := <-events:
			if !ok {
				return 0
			}
			fmt.Fprintf(stdout, "\n--- %s changed at %s ---\n", manifestPath, time.Now().Format("15:04:05"))
			if _, err := svc.Plan(ctx, opts); err != nil {
				fmt.Fprintf(stderr, "plan failed: %v\n", err)
			}
		}
	}
}
