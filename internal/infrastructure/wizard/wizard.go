// Package wizard implements the interactive confirmation flow for
// tagctl init.
package wizard

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/felixgeelhaar/tagctl/internal/application"
)

type (
	wizardState int

	initWizardModel struct {
		state     wizardState
		cfg       application.Config
		cursor    int
		confirmed bool
		aborted   bool
	}
)

const (
	stateIntro wizardState = iota
	stateEdit
	stateConfirm
)

// Fields editable in the wizard, in cursor order.
const (
	fieldPrefix = iota
	fieldRemote
	fieldAnnotate
	fieldRollback
	fieldCount
)

var remoteChoices = []string{"origin", "upstream"}
var prefixChoices = []string{"v", "release-", ""}

func Run(cfg application.Config, stdout io.Writer, stdin io.Reader) (application.Config, bool, error) {
	return runInitWizard(cfg, stdout, stdin)
}

func runInitWizard(cfg application.Config, stdout io.Writer, stdin io.Reader) (application.Config, bool, error) {
	model := newInitWizardModel(cfg)
	program := tea.NewProgram(model, tea.WithInput(stdin), tea.WithOutput(stdout))
	res, err := program.Run()
	if err != nil {
		return cfg, false, err
	}
	finalModel, ok := res.(*initWizardModel)
	if !ok {
		return cfg, false, fmt.Errorf("unexpected wizard state")
	}
	if finalModel.aborted || !finalModel.confirmed {
		return cfg, false, nil
	}
	return finalModel.cfg, true, nil
}

func newInitWizardModel(cfg application.Config) *initWizardModel {
	if cfg.Prefix == "" {
		cfg.Prefix = "v"
	}
	if cfg.Remote == "" {
		cfg.Remote = "origin"
	}
	return &initWizardModel{state: stateIntro, cfg: cfg}
}

func (m *initWizardModel) Init() tea.Cmd {
	return nil
}

func (m *initWizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			switch m.state {
			case stateIntro:
				m.state = stateEdit
			case stateEdit:
				m.state = stateConfirm
			case stateConfirm:
				m.confirmed = true
				return m, tea.Quit
			}
		case "esc":
			if m.state == stateConfirm {
				m.state = stateEdit
			}
		case "up":
			if m.state == stateEdit {
				m.moveCursor(-1)
			}
		case "down":
			if m.state == stateEdit {
				m.moveCursor(1)
			}
		case "left", "right", " ":
			if m.state == stateEdit {
				m.cycleSelection(msg.String() != "left")
			}
		}
	}
	return m, nil
}

func (m *initWizardModel) View() string {
	switch m.state {
	case stateIntro:
		return m.viewIntro()
	case stateEdit:
		return m.viewEdit()
	case stateConfirm:
		return m.viewConfirm()
	default:
		return ""
	}
}

func (m *initWizardModel) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor > fieldCount-1 {
		m.cursor = fieldCount - 1
	}
}

func (m *initWizardModel) cycleSelection(forward bool) {
	switch m.cursor {
	case fieldPrefix:
		m.cfg.Prefix = cycle(prefixChoices, m.cfg.Prefix, forward)
	case fieldRemote:
		m.cfg.Remote = cycle(remoteChoices, m.cfg.Remote, forward)
	case fieldAnnotate:
		m.cfg.Annotate = !m.cfg.Annotate
	case fieldRollback:
		m.cfg.Rollback = !m.cfg.Rollback
	}
}

func cycle(choices []string, current string, forward bool) string {
	idx := 0
	for i, c := range choices {
		if c == current {
			idx = i
			break
		}
	}
	if forward {
		idx = (idx + 1) % len(choices)
	} else {
		idx = (idx - 1 + len(choices)) % len(choices)
	}
	return choices[idx]
}

func (m *initWizardModel) viewIntro() string {
	var b strings.Builder
	fmt.Fprintf(&b, "\ntagctl init wizard\n\n")
	fmt.Fprintf(&b, "Detected manifest: %s (format %s).\n\n", m.cfg.Manifest, m.cfg.Format)
	fmt.Fprintf(&b, "Press Enter to review the tagging settings, or Ctrl+C to cancel.\n")
	return b.String()
}

func (m *initWizardModel) viewEdit() string {
	var b strings.Builder
	fmt.Fprintf(&b, "\nReview tagging settings\n\n")
	fmt.Fprintf(&b, "Use ↑/↓ to move, ←/→ or space to change values.\n\n")

	rows := []struct {
		label string
		value string
	}{
		{"Tag prefix", printable(m.cfg.Prefix)},
		{"Push remote", m.cfg.Remote},
		{"Annotated tags", onOff(m.cfg.Annotate)},
		{"Rollback on push failure", onOff(m.cfg.Rollback)},
	}
	for idx, row := range rows {
		indicator := "  "
		if m.cursor == idx {
			indicator = "> "
		}
		fmt.Fprintf(&b, "%s%s: %s\n", indicator, row.label, row.value)
	}
	fmt.Fprintf(&b, "\nEnter to continue, q to cancel.\n")
	return b.String()
}

func (m *initWizardModel) viewConfirm() string {
	var b strings.Builder
	fmt.Fprintf(&b, "\nReady to write configuration\n\n")
	fmt.Fprintf(&b, "Manifest: %s (format %s)\n", m.cfg.Manifest, m.cfg.Format)
	fmt.Fprintf(&b, "Tags: prefix %s, annotated %s\n", printable(m.cfg.Prefix), onOff(m.cfg.Annotate))
	fmt.Fprintf(&b, "Push: remote %s, rollback %s\n", m.cfg.Remote, onOff(m.cfg.Rollback))
	fmt.Fprintf(&b, "\nPress Enter to save, Esc to go back, q to cancel.\n")
	return b.String()
}

func printable(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
