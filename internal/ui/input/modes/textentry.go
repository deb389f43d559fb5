package modes

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/textinput"

	"dorkdeck/internal/ui/input/types"
)

// TextEntryMode collects a single line of text for one of the text modes
// (new dork, new category, rename, variable, profile name, filter, move).
// All text modes share the handler's textinput; enter commits, esc cancels.
type TextEntryMode struct {
	mode      types.Mode
	textInput *textinput.Model
}

func NewTextEntryMode(mode types.Mode, ti *textinput.Model) *TextEntryMode {
	return &TextEntryMode{mode: mode, textInput: ti}
}

func (m *TextEntryMode) Name() string {
	switch m.mode {
	case types.ModeNewDork:
		return "new-dork"
	case types.ModeNewCategory:
		return "new-category"
	case types.ModeRenameDork:
		return "rename-dork"
	case types.ModeRenameCategory:
		return "rename-category"
	case types.ModeMoveToCategory:
		return "move-to-category"
	case types.ModeVariable:
		return "variable"
	case types.ModeProfileName:
		return "profile-name"
	case types.ModeFilter:
		return "filter"
	default:
		return "text"
	}
}

func (m *TextEntryMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *TextEntryMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *TextEntryMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyEsc:
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true

	case tea.KeyEnter:
		text := m.textInput.Value()
		return []types.Action{
			types.CommitTextAction{Mode: m.mode, Text: text},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	}

	// Everything else belongs to the text input
	return nil, false
}
