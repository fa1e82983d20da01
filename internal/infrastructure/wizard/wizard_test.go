package wizard

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/felixgeelhaar/tagctl/internal/application"
)

func minimalConfig() application.Config {
	return application.Config{
		Version:  1,
		Manifest: "Cargo.toml",
		Format:   "toml",
		Prefix:   "v",
		Remote:   "origin",
	}
}

func TestInitWizardCycleSelection(t *testing.T) {
	model := newInitWizardModel(minimalConfig())

	model.cursor = fieldRemote
	model.cycleSelection(true)
	if model.cfg.Remote != "upstream" {
		t.Fatalf("expected upstream, got %s", model.cfg.Remote)
	}
	model.cycleSelection(true)
	if model.cfg.Remote != "origin" {
		t.Fatalf("expected wrap back to origin, got %s", model.cfg.Remote)
	}

	model.cursor = fieldAnnotate
	model.cycleSelection(true)
	if !model.cfg.Annotate {
		t.Fatalf("expected annotate toggled on")
	}

	model.cursor = fieldRollback
	model.cycleSelection(true)
	if !model.cfg.Rollback {
		t.Fatalf("expected rollback toggled on")
	}
}

func TestInitWizardMoveCursor(t *testing.T) {
	model := newInitWizardModel(minimalConfig())
	model.moveCursor(1)
	if model.cursor != 1 {
		t.Fatalf("expected cursor 1, got %d", model.cursor)
	}
	model.moveCursor(-5)
	if model.cursor != 0 {
		t.Fatalf("expected cursor 0, got %d", model.cursor)
	}
	model.moveCursor(fieldCount + 5)
	if model.cursor != fieldCount-1 {
		t.Fatalf("expected cursor at max %d, got %d", fieldCount-1, model.cursor)
	}
}

func TestInitWizardUpdateTransitions(t *testing.T) {
	model := newInitWizardModel(minimalConfig())
	model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if model.state != stateEdit {
		t.Fatalf("expected edit state, got %d", model.state)
	}
	model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model.Update(tea.KeyMsg{Type: tea.KeyRight})
	model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if model.state != stateConfirm {
		t.Fatalf("expected confirm state, got %d", model.state)
	}
	model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if model.state != stateEdit {
		t.Fatalf("expected edit state on esc, got %d", model.state)
	}
}

func TestInitWizardAbort(t *testing.T) {
	model := newInitWizardModel(minimalConfig())
	model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !model.aborted {
		t.Fatalf("expected aborted flag")
	}
}

func TestInitWizardViews(t *testing.T) {
	model := newInitWizardModel(minimalConfig())
	if !strings.Contains(model.viewIntro(), "Cargo.toml") {
		t.Fatalf("expected manifest in intro")
	}
	if !strings.Contains(model.viewEdit(), "Push remote: origin") {
		t.Fatalf("expected remote in edit view:\n%s", model.viewEdit())
	}
	if !strings.Contains(model.viewConfirm(), "remote origin") {
		t.Fatalf("expected remote in confirm view:\n%s", model.viewConfirm())
	}
}

func TestRunInitWizardCompletes(t *testing.T) {
	var out bytes.Buffer
	stdin := strings.NewReader("\r\r\r")
	cfg, confirmed, err := runInitWizard(minimalConfig(), &out, stdin)
	if err != nil {
		t.Fatalf("wizard error: %v", err)
	}
	if !confirmed {
		t.Fatalf("expected wizard to confirm")
	}
	if cfg.Manifest != "Cargo.toml" {
		t.Fatalf("expected manifest preserved, got %s", cfg.Manifest)
	}
}
