package modes

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dorkdeck/internal/ui/input/types"
)

// fakeContext is a canned types.Context for mode tests
type fakeContext struct {
	onCategories bool
	categoryKey  string
	fragment     string
	inQuery      bool
	marks        bool
	filtered     bool
}

func (c *fakeContext) FocusedOnCategories() bool        { return c.onCategories }
func (c *fakeContext) CurrentCategoryKey() string       { return c.categoryKey }
func (c *fakeContext) CurrentFragment() string          { return c.fragment }
func (c *fakeContext) FragmentInQuery(text string) bool { return c.inQuery }
func (c *fakeContext) HasMarks() bool                   { return c.marks }
func (c *fakeContext) FilterActive() bool               { return c.filtered }
func (c *fakeContext) ProfilePickerOpen() bool          { return false }

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNormalModeNavigation(t *testing.T) {
	m := NewNormalMode()
	ctx := &fakeContext{fragment: "ext:pdf", categoryKey: "files"}

	actions, consumed := m.HandleKey(keyRunes("j"), ctx)
	require.True(t, consumed)
	require.Len(t, actions, 1)
	assert.Equal(t, types.NavigateAction{Direction: "down"}, actions[0])

	actions, _ = m.HandleKey(tea.KeyMsg{Type: tea.KeyUp}, ctx)
	assert.Equal(t, types.NavigateAction{Direction: "up"}, actions[0])

	actions, _ = m.HandleKey(tea.KeyMsg{Type: tea.KeyTab}, ctx)
	assert.Equal(t, types.SwitchPanelAction{}, actions[0])
}

func TestNormalModeSpaceToggles(t *testing.T) {
	m := NewNormalMode()

	actions, consumed := m.HandleKey(keyRunes(" "), &fakeContext{fragment: "ext:pdf"})
	require.True(t, consumed)
	assert.Equal(t, types.ToggleFragmentAction{}, actions[0])

	// On the category panel space jumps to the fragment list instead
	actions, _ = m.HandleKey(keyRunes(" "), &fakeContext{onCategories: true})
	assert.Equal(t, types.SwitchPanelAction{Direction: "right"}, actions[0])
}

func TestNormalModeNotAndMarkNeedFragment(t *testing.T) {
	m := NewNormalMode()

	actions, _ := m.HandleKey(keyRunes("!"), &fakeContext{fragment: "password"})
	require.Len(t, actions, 1)
	assert.Equal(t, types.ToggleNotAction{}, actions[0])

	actions, consumed := m.HandleKey(keyRunes("!"), &fakeContext{})
	assert.Empty(t, actions)
	assert.False(t, consumed)

	actions, _ = m.HandleKey(keyRunes("m"), &fakeContext{fragment: "password"})
	assert.Equal(t, types.MarkAction{}, actions[0])
}

func TestNormalModeGroupNeedsMarks(t *testing.T) {
	m := NewNormalMode()

	actions, _ := m.HandleKey(keyRunes("o"), &fakeContext{marks: true})
	require.Len(t, actions, 1)
	assert.Equal(t, types.GroupMarkedAction{}, actions[0])

	actions, consumed := m.HandleKey(keyRunes("o"), &fakeContext{})
	assert.Empty(t, actions)
	assert.True(t, consumed)
}

func TestNormalModeCopyAndBrowser(t *testing.T) {
	m := NewNormalMode()
	ctx := &fakeContext{}

	actions, _ := m.HandleKey(keyRunes("y"), ctx)
	assert.Equal(t, types.CopyAction{}, actions[0])

	actions, _ = m.HandleKey(keyRunes("Y"), ctx)
	assert.Equal(t, types.CopyAction{URL: true}, actions[0])

	actions, _ = m.HandleKey(keyRunes("O"), ctx)
	assert.Equal(t, types.OpenBrowserAction{}, actions[0])
}

func TestNormalModeModeChanges(t *testing.T) {
	m := NewNormalMode()
	ctx := &fakeContext{fragment: "ext:pdf", categoryKey: "files"}

	cases := map[string]types.Mode{
		"a": types.ModeNewDork,
		"A": types.ModeNewCategory,
		"E": types.ModeRenameCategory,
		"v": types.ModeVariable,
		"s": types.ModeProfileName,
		"/": types.ModeFilter,
		"d": types.ModeConfirmDeleteDork,
		"D": types.ModeConfirmDeleteCategory,
	}
	for key, want := range cases {
		actions, consumed := m.HandleKey(keyRunes(key), ctx)
		require.True(t, consumed, "key %q", key)
		require.Len(t, actions, 1, "key %q", key)
		change, ok := actions[0].(types.ChangeModeAction)
		require.True(t, ok, "key %q", key)
		assert.Equal(t, want, change.Mode, "key %q", key)
	}
}

func TestNormalModeRenamePrefillsFragment(t *testing.T) {
	m := NewNormalMode()

	actions, _ := m.HandleKey(keyRunes("e"), &fakeContext{fragment: "inurl:login"})
	require.Len(t, actions, 1)
	assert.Equal(t, types.ChangeModeAction{Mode: types.ModeRenameDork, Data: "inurl:login"}, actions[0])

	_, consumed := m.HandleKey(keyRunes("e"), &fakeContext{})
	assert.False(t, consumed)
}

func TestNormalModeGgGoesHome(t *testing.T) {
	m := NewNormalMode()
	ctx := &fakeContext{}

	actions, consumed := m.HandleKey(keyRunes("g"), ctx)
	assert.Empty(t, actions)
	assert.True(t, consumed)

	actions, _ = m.HandleKey(keyRunes("g"), ctx)
	require.Len(t, actions, 1)
	assert.Equal(t, types.NavigateAction{Direction: "home"}, actions[0])

	actions, _ = m.HandleKey(keyRunes("G"), ctx)
	assert.Equal(t, types.NavigateAction{Direction: "end"}, actions[0])
}

func TestNormalModeEscClearsMarks(t *testing.T) {
	m := NewNormalMode()

	actions, _ := m.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, &fakeContext{marks: true})
	require.Len(t, actions, 1)
	assert.Equal(t, types.ClearMarksAction{}, actions[0])

	actions, consumed := m.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, &fakeContext{})
	assert.Empty(t, actions)
	assert.True(t, consumed)
}

func TestNormalModeQuit(t *testing.T) {
	m := NewNormalMode()

	actions, _ := m.HandleKey(keyRunes("q"), &fakeContext{})
	assert.Equal(t, types.QuitAction{}, actions[0])

	actions, _ = m.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlC}, &fakeContext{})
	assert.Equal(t, types.QuitAction{Force: true}, actions[0])
}

func TestTextEntryModeCommit(t *testing.T) {
	ti := textinput.New()
	m := NewTextEntryMode(types.ModeNewDork, &ti)
	ctx := &fakeContext{}

	ti.SetValue("ext:bak")
	actions, consumed := m.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, ctx)
	require.True(t, consumed)
	require.Len(t, actions, 2)
	assert.Equal(t, types.CommitTextAction{Mode: types.ModeNewDork, Text: "ext:bak"}, actions[0])
	assert.Equal(t, types.ChangeModeAction{Mode: types.ModeNormal}, actions[1])
}

func TestTextEntryModeCancel(t *testing.T) {
	ti := textinput.New()
	m := NewTextEntryMode(types.ModeFilter, &ti)

	actions, consumed := m.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, &fakeContext{})
	require.True(t, consumed)
	require.Len(t, actions, 1)
	assert.Equal(t, types.ChangeModeAction{Mode: types.ModeNormal}, actions[0])
}

func TestTextEntryModePassesTypingThrough(t *testing.T) {
	ti := textinput.New()
	m := NewTextEntryMode(types.ModeFilter, &ti)

	actions, consumed := m.HandleKey(keyRunes("x"), &fakeContext{})
	assert.Empty(t, actions)
	assert.False(t, consumed, "typed runes belong to the text input")
}

func TestConfirmMode(t *testing.T) {
	m := NewConfirmMode(types.ModeConfirmDeleteDork)
	ctx := &fakeContext{}

	actions, consumed := m.HandleKey(keyRunes("y"), ctx)
	require.True(t, consumed)
	require.Len(t, actions, 2)
	assert.Equal(t, types.ConfirmAction{Mode: types.ModeConfirmDeleteDork, Yes: true}, actions[0])

	actions, _ = m.HandleKey(keyRunes("n"), ctx)
	assert.Equal(t, types.ConfirmAction{Mode: types.ModeConfirmDeleteDork, Yes: false}, actions[0])

	// Anything else is swallowed while the question is up
	actions, consumed = m.HandleKey(keyRunes("j"), ctx)
	assert.Empty(t, actions)
	assert.True(t, consumed)
}
