// Package report renders publish and plan results.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/felixgeelhaar/tagctl/internal/application"
	"github.com/felixgeelhaar/tagctl/internal/domain"
)

type Writer struct{}

func (Writer) Write(w io.Writer, result application.PublishResult, format application.OutputFormat) error {
	switch format {
	case application.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case application.OutputText, "":
		return writeText(w, result)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func writeText(w io.Writer, result application.PublishResult) error {
	switch result.Status {
	case domain.StatusPublished:
		// The one-line confirmation release scripts grep for.
		_, err := fmt.Fprintf(w, "%s pushed\n", result.Plan.Tag)
		return err
	case domain.StatusPlanned:
		return writePlanText(w, result.Plan)
	default:
		_, err := fmt.Fprintf(w, "publish of %s failed\n", result.Plan.Tag)
		return err
	}
}

func writePlanText(w io.Writer, plan domain.Plan) error {
	colorize := colorEnabled(w)
	tagStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#16A34A")).Bold(true)
	warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#CA8A04"))

	tag := plan.Tag
	if colorize {
		tag = tagStyle.Render(tag)
	}

	if _, err := fmt.Fprintf(w, "Would tag %s (version %s from %s) and push to %s\n",
		tag, plan.Version, plan.Manifest, plan.Remote); err != nil {
		return err
	}
	if plan.PreviousTag != "" {
		if _, err := fmt.Fprintf(w, "Previous tag: %s\n", plan.PreviousTag); err != nil {
			return err
		}
	}
	for _, warning := range plan.Warnings {
		line := "warning: " + warning
		if colorize {
			line = warnStyle.Render(line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func colorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
