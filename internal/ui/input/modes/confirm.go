package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"dorkdeck/internal/ui/input/types"
)

// ConfirmMode asks a yes/no question before a destructive catalog edit
type ConfirmMode struct {
	mode types.Mode
}

func NewConfirmMode(mode types.Mode) *ConfirmMode {
	return &ConfirmMode{mode: mode}
}

func (m *ConfirmMode) Name() string {
	return "confirm"
}

func (m *ConfirmMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *ConfirmMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *ConfirmMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if msg.Type == tea.KeyCtrlC {
		return []types.Action{types.QuitAction{Force: true}}, true
	}

	switch msg.String() {
	case "y", "Y":
		return []types.Action{
			types.ConfirmAction{Mode: m.mode, Yes: true},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true

	case "n", "N", "esc", "q":
		return []types.Action{
			types.ConfirmAction{Mode: m.mode, Yes: false},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	}

	return nil, true // swallow everything else while confirming
}
