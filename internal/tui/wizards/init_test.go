package wizards

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/appgen/internal/config"
)

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func press(t *testing.T, w InitWizard, keys ...string) (InitWizard, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var m tea.Model
		m, cmd = w.Update(keyMsg(k))
		w = m.(InitWizard)
	}
	return w, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestInitWizard_Defaults(t *testing.T) {
	w, cmd := press(t, NewInitWizard(nil), "enter", "enter", "enter", "enter")

	require.True(t, isQuit(cmd))
	res := w.Result()
	assert.False(t, res.Cancelled)
	require.NotNil(t, res.Config)
	assert.Equal(t, "error", res.Config.Policy.Unresolved)
	assert.Equal(t, "reject", res.Config.Policy.Cycles)
	assert.Empty(t, res.Config.Scaffold.Package)
	assert.Equal(t, "schema.sql", res.Config.Output.SchemaFile)
}

func TestInitWizard_Selections(t *testing.T) {
	w, _ := press(t, NewInitWizard(nil),
		"down", "enter", // warn
		"down", "enter", // defer
		"Billing Core", "enter",
	)
	assert.Contains(t, w.View(), "Ready to write appgen.yaml")

	w, cmd := press(t, w, "enter")
	require.True(t, isQuit(cmd))

	cfg := w.Result().Config
	require.NotNil(t, cfg)
	assert.Equal(t, "warn", cfg.Policy.Unresolved)
	assert.Equal(t, "defer", cfg.Policy.Cycles)
	assert.Equal(t, "billingcore", cfg.Scaffold.Package)
	assert.NoError(t, cfg.Validate())
}

func TestInitWizard_PreselectsFromBase(t *testing.T) {
	base := config.Default()
	base.Policy.Cycles = "defer"
	base.Scaffold.Package = "orders"

	w, _ := press(t, NewInitWizard(base), "enter", "enter", "enter", "enter")
	cfg := w.Result().Config
	require.NotNil(t, cfg)
	assert.Equal(t, "defer", cfg.Policy.Cycles)
	assert.Equal(t, "orders", cfg.Scaffold.Package)

	w, _ = press(t, NewInitWizard(base), "enter", "up", "enter", "enter", "enter")
	assert.Equal(t, "reject", w.Result().Config.Policy.Cycles)
	assert.Equal(t, "defer", base.Policy.Cycles, "base is not modified")
}

func TestInitWizard_BackNavigation(t *testing.T) {
	w, _ := press(t, NewInitWizard(nil), "down", "enter", "esc", "up", "enter", "enter", "enter", "enter")
	cfg := w.Result().Config
	require.NotNil(t, cfg)
	assert.Equal(t, "error", cfg.Policy.Unresolved)
}

func TestInitWizard_Cancel(t *testing.T) {
	tests := []struct {
		name string
		keys []string
	}{
		{"esc on first step", []string{"esc"}},
		{"ctrl+c mid-way", []string{"enter", "ctrl+c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, cmd := press(t, NewInitWizard(nil), tt.keys...)
			assert.True(t, isQuit(cmd))
			assert.True(t, w.Result().Cancelled)
			assert.Nil(t, w.Result().Config)
		})
	}
}

func TestInitWizard_View(t *testing.T) {
	w := NewInitWizard(nil)
	assert.Contains(t, w.View(), "Unresolved foreign keys")
	assert.Contains(t, w.View(), "Omit the constraint")

	w, _ = press(t, w, "enter")
	assert.Contains(t, w.View(), "Reference cycles")

	w, _ = press(t, w, "enter")
	assert.Contains(t, w.View(), "Scaffold package name")
}
