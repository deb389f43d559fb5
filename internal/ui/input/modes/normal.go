package modes

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"dorkdeck/internal/ui/input/types"
)

// NormalMode is the default browse-and-toggle mode
type NormalMode struct {
	lastKeyWasG bool
	lastGTime   time.Time
}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyUp:
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case tea.KeyDown:
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case tea.KeyLeft:
		return []types.Action{types.SwitchPanelAction{Direction: "left"}}, true

	case tea.KeyRight:
		return []types.Action{types.SwitchPanelAction{Direction: "right"}}, true

	case tea.KeyPgUp:
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true

	case tea.KeyPgDown:
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true

	case tea.KeyHome:
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case tea.KeyEnd:
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case tea.KeyTab:
		return []types.Action{types.SwitchPanelAction{}}, true

	case tea.KeyEnter:
		// On the category panel, enter jumps into the fragment list
		if ctx.FocusedOnCategories() {
			return []types.Action{types.SwitchPanelAction{Direction: "right"}}, true
		}
		return []types.Action{types.ToggleFragmentAction{}}, true
	}

	switch msg.String() {
	case " ":
		if ctx.FocusedOnCategories() {
			return []types.Action{types.SwitchPanelAction{Direction: "right"}}, true
		}
		return []types.Action{types.ToggleFragmentAction{}}, true

	case "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case "h":
		return []types.Action{types.SwitchPanelAction{Direction: "left"}}, true

	case "l":
		return []types.Action{types.SwitchPanelAction{Direction: "right"}}, true

	case "!":
		if ctx.CurrentFragment() != "" {
			return []types.Action{types.ToggleNotAction{}}, true
		}
		return nil, false

	case "m":
		if ctx.CurrentFragment() != "" {
			return []types.Action{types.MarkAction{}}, true
		}
		return nil, false

	case "o":
		if ctx.HasMarks() {
			return []types.Action{types.GroupMarkedAction{}}, true
		}
		return nil, true // consume; nothing marked

	case "C":
		return []types.Action{types.ClearQueryAction{}}, true

	case "v":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeVariable}}, true

	case "y":
		return []types.Action{types.CopyAction{}}, true

	case "Y":
		return []types.Action{types.CopyAction{URL: true}}, true

	case "O":
		return []types.Action{types.OpenBrowserAction{}}, true

	case "a":
		if ctx.CurrentCategoryKey() != "" {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeNewDork}}, true
		}
		return nil, false

	case "A":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNewCategory}}, true

	case "e":
		if fragment := ctx.CurrentFragment(); fragment != "" {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeRenameDork, Data: fragment}}, true
		}
		return nil, false

	case "E":
		if ctx.CurrentCategoryKey() != "" {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeRenameCategory}}, true
		}
		return nil, false

	case "d":
		if ctx.CurrentFragment() != "" || ctx.HasMarks() {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeConfirmDeleteDork}}, true
		}
		return nil, false

	case "D":
		if ctx.CurrentCategoryKey() != "" {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeConfirmDeleteCategory}}, true
		}
		return nil, false

	case "M":
		if ctx.HasMarks() || ctx.CurrentFragment() != "" {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeMoveToCategory}}, true
		}
		return nil, false

	case "/":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeFilter}}, true

	case "s":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeProfileName}}, true

	case "p":
		return []types.Action{types.ToggleProfilesAction{}}, true

	case "R":
		return []types.Action{types.ShowReferenceAction{}}, true

	case "t":
		return []types.Action{types.ToggleTooltipsAction{}}, true

	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true

	case "esc":
		if ctx.HasMarks() || ctx.FilterActive() {
			return []types.Action{types.ClearMarksAction{}}, true
		}
		return nil, true

	case "q":
		return []types.Action{types.QuitAction{}}, true

	case "g":
		if m.lastKeyWasG && time.Since(m.lastGTime) < 500*time.Millisecond {
			m.lastKeyWasG = false
			return []types.Action{types.NavigateAction{Direction: "home"}}, true
		}
		m.lastKeyWasG = true
		m.lastGTime = time.Now()
		return nil, true

	case "G":
		m.lastKeyWasG = false
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	default:
		if m.lastKeyWasG {
			m.lastKeyWasG = false
		}
	}

	return nil, false
}
