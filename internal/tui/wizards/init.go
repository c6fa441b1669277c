// Package wizards holds the interactive bubbletea flows.
package wizards

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vvka-141/appgen/internal/config"
	"github.com/vvka-141/appgen/internal/scaffold"
	"github.com/vvka-141/appgen/internal/tui"
	"github.com/vvka-141/appgen/pkg/appgen"
)

// Choice is one selectable option of a list step.
type Choice struct {
	Label       string
	Description string
	Value       string
}

// UnresolvedChoices lists the unresolved-reference policies.
func UnresolvedChoices() []Choice {
	return []Choice{
		{Label: "error", Description: "Fail when a foreign key target is missing or has no primary key", Value: string(appgen.UnresolvedError)},
		{Label: "warn", Description: "Omit the constraint and report a warning", Value: string(appgen.UnresolvedWarn)},
	}
}

// CycleChoices lists the reference-cycle policies.
func CycleChoices() []Choice {
	return []Choice{
		{Label: "reject", Description: "Fail when tables reference each other in a cycle", Value: string(appgen.CycleReject)},
		{Label: "defer", Description: "Create all tables, then attach foreign keys with ALTER TABLE", Value: string(appgen.CycleDefer)},
	}
}

// InitResult holds the result of the init wizard.
type InitResult struct {
	Cancelled bool
	Config    *config.ProjectConfig
}

type initStep int

const (
	initStepUnresolved initStep = iota
	initStepCycles
	initStepPackage
	initStepConfirm
	initStepDone
)

// InitWizard builds an appgen.yaml step by step.
type InitWizard struct {
	step initStep

	unresolved    []Choice
	unresolvedIdx int
	cycles        []Choice
	cyclesIdx     int
	pkg           textinput.Model

	base   *config.ProjectConfig
	result InitResult
	keys   tui.KeyMap
}

// NewInitWizard creates a wizard preselected from base.
func NewInitWizard(base *config.ProjectConfig) InitWizard {
	if base == nil {
		base = config.Default()
	}

	ti := textinput.New()
	ti.Placeholder = "leave empty to derive from the bounded context"
	ti.CharLimit = 64
	ti.Width = 48
	ti.SetValue(base.Scaffold.Package)
	ti.Focus()

	w := InitWizard{
		unresolved: UnresolvedChoices(),
		cycles:     CycleChoices(),
		pkg:        ti,
		base:       base,
		keys:       tui.DefaultKeyMap(),
	}
	w.unresolvedIdx = indexOf(w.unresolved, base.Policy.Unresolved)
	w.cyclesIdx = indexOf(w.cycles, base.Policy.Cycles)
	return w
}

func indexOf(choices []Choice, value string) int {
	for i, c := range choices {
		if c.Value == value {
			return i
		}
	}
	return 0
}

// Init implements tea.Model.
func (w InitWizard) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (w InitWizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return w, nil
	}
	if key.Matches(keyMsg, w.keys.Quit) {
		w.result = InitResult{Cancelled: true}
		w.step = initStepDone
		return w, tea.Quit
	}

	switch w.step {
	case initStepUnresolved, initStepCycles:
		return w.updateList(keyMsg)
	case initStepPackage:
		return w.updatePackage(keyMsg)
	case initStepConfirm:
		return w.updateConfirm(keyMsg)
	}
	return w, nil
}

func (w InitWizard) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	idx, n := &w.unresolvedIdx, len(w.unresolved)
	if w.step == initStepCycles {
		idx, n = &w.cyclesIdx, len(w.cycles)
	}
	switch {
	case key.Matches(msg, w.keys.Up):
		if *idx > 0 {
			*idx--
		}
	case key.Matches(msg, w.keys.Down):
		if *idx < n-1 {
			*idx++
		}
	case key.Matches(msg, w.keys.Select):
		w.step++
	case key.Matches(msg, w.keys.Back):
		if w.step == initStepUnresolved {
			w.result = InitResult{Cancelled: true}
			w.step = initStepDone
			return w, tea.Quit
		}
		w.step--
	}
	return w, nil
}

func (w InitWizard) updatePackage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, w.keys.Select):
		w.step = initStepConfirm
		return w, nil
	case key.Matches(msg, w.keys.Back):
		w.step = initStepCycles
		return w, nil
	}
	var cmd tea.Cmd
	w.pkg, cmd = w.pkg.Update(msg)
	return w, cmd
}

func (w InitWizard) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, w.keys.Select):
		w.result = InitResult{Config: w.config()}
		w.step = initStepDone
		return w, tea.Quit
	case key.Matches(msg, w.keys.Back):
		w.step = initStepPackage
	}
	return w, nil
}

// config applies the selections to a copy of the base configuration.
func (w InitWizard) config() *config.ProjectConfig {
	cfg := *w.base
	cfg.Policy.Unresolved = w.unresolved[w.unresolvedIdx].Value
	cfg.Policy.Cycles = w.cycles[w.cyclesIdx].Value
	cfg.Scaffold.Package = ""
	if pkg := strings.TrimSpace(w.pkg.Value()); pkg != "" {
		cfg.Scaffold.Package = scaffold.PackageName(pkg)
	}
	return &cfg
}

// View implements tea.Model.
func (w InitWizard) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("appgen init - Project Configuration"))
	b.WriteString("\n\n")

	switch w.step {
	case initStepUnresolved:
		b.WriteString(w.viewList("Unresolved foreign keys", w.unresolved, w.unresolvedIdx))
	case initStepCycles:
		b.WriteString(w.viewList("Reference cycles", w.cycles, w.cyclesIdx))
	case initStepPackage:
		b.WriteString(tui.SubtitleStyle.Render("Scaffold package name"))
		b.WriteString("\n\n")
		b.WriteString(w.pkg.View())
		b.WriteString("\n")
		b.WriteString(tui.HelpStyle.Render(w.keys.InputHelpText()))
	case initStepConfirm:
		b.WriteString(w.viewConfirm())
	}
	return b.String()
}

func (w InitWizard) viewList(title string, choices []Choice, idx int) string {
	var b strings.Builder
	b.WriteString(tui.SubtitleStyle.Render(title))
	b.WriteString("\n\n")
	for i, c := range choices {
		cursor, style, symbol := "  ", tui.UnselectedStyle, tui.SymbolUnselected
		if i == idx {
			cursor, style, symbol = "", tui.SelectedStyle, tui.SymbolSelected
		}
		b.WriteString(cursor)
		b.WriteString(style.Render(symbol + " " + c.Label))
		b.WriteString("\n")
		b.WriteString(tui.DescriptionStyle.Render(c.Description))
		b.WriteString("\n")
	}
	b.WriteString(tui.HelpStyle.Render(w.keys.HelpText()))
	return b.String()
}

func (w InitWizard) viewConfirm() string {
	cfg := w.config()
	pkg := cfg.Scaffold.Package
	if pkg == "" {
		pkg = "(from bounded context)"
	}

	var b strings.Builder
	b.WriteString(tui.SuccessStyle.Render(tui.SymbolCheck + " Ready to write " + appgen.ConfigFileName))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Unresolved: %s\n", cfg.Policy.Unresolved)
	fmt.Fprintf(&b, "Cycles:     %s\n", cfg.Policy.Cycles)
	fmt.Fprintf(&b, "Package:    %s\n", pkg)
	b.WriteString(tui.HelpStyle.Render("enter write • esc back"))
	return b.String()
}

// Result returns the wizard result.
func (w InitWizard) Result() InitResult {
	return w.result
}

// RunInitWizard runs the wizard on the terminal.
func RunInitWizard(base *config.ProjectConfig) (InitResult, error) {
	model, err := tea.NewProgram(NewInitWizard(base)).Run()
	if err != nil {
		return InitResult{Cancelled: true}, err
	}
	return model.(InitWizard).Result(), nil
}
