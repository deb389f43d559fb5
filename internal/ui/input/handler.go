package input

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/textinput"

	"dorkdeck/internal/ui/input/modes"
	"dorkdeck/internal/ui/input/types"
)

// Handler routes key events to the active mode and manages the shared
// text input for text-entry modes
type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	textInput   *textinput.Model
}

func New() *Handler {
	ti := textinput.New()
	ti.CharLimit = 256

	h := &Handler{
		currentMode: types.ModeNormal,
		textInput:   &ti,
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	h.modes[types.ModeNormal] = modes.NewNormalMode()
	for _, m := range []types.Mode{
		types.ModeNewDork,
		types.ModeNewCategory,
		types.ModeRenameDork,
		types.ModeRenameCategory,
		types.ModeMoveToCategory,
		types.ModeVariable,
		types.ModeProfileName,
		types.ModeFilter,
	} {
		h.modes[m] = modes.NewTextEntryMode(m, h.textInput)
	}
	h.modes[types.ModeConfirmDeleteDork] = modes.NewConfirmMode(types.ModeConfirmDeleteDork)
	h.modes[types.ModeConfirmDeleteCategory] = modes.NewConfirmMode(types.ModeConfirmDeleteCategory)

	return h
}

func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)

	var cmd tea.Cmd
	var allActions []types.Action

	if !consumed && !h.currentMode.IsTextMode() {
		return nil, nil
	}

	for _, action := range actions {
		if changeMode, ok := action.(types.ChangeModeAction); ok {
			if h.modes[h.currentMode] != nil {
				allActions = append(allActions, h.modes[h.currentMode].Exit(ctx)...)
			}

			oldMode := h.currentMode
			h.currentMode = changeMode.Mode

			if h.modes[h.currentMode] != nil {
				allActions = append(allActions, h.modes[h.currentMode].Enter(ctx)...)
			}

			if h.currentMode.IsTextMode() {
				h.textInput.Reset()
				h.textInput.SetValue(changeMode.Data)
				h.textInput.CursorEnd()
				h.textInput.Focus()
				cmd = textinput.Blink
			} else if oldMode.IsTextMode() {
				h.textInput.Blur()
			}
		} else {
			allActions = append(allActions, action)
		}
	}

	// Unhandled keys in a text mode go to the text input itself
	if h.currentMode.IsTextMode() && !consumed {
		var textCmd tea.Cmd
		*h.textInput, textCmd = h.textInput.Update(msg)
		cmd = textCmd
		allActions = append(allActions, types.UpdateTextAction{Text: h.textInput.Value()})
	}

	return allActions, cmd
}

// CurrentMode returns the active input mode
func (h *Handler) CurrentMode() types.Mode {
	return h.currentMode
}

// TextInput returns the shared text input when a text mode is active
func (h *Handler) TextInput() *textinput.Model {
	if h.currentMode.IsTextMode() {
		return h.textInput
	}
	return nil
}

// Update handles non-keyboard messages for the text input (cursor blink)
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if h.currentMode.IsTextMode() {
		var cmd tea.Cmd
		*h.textInput, cmd = h.textInput.Update(msg)
		return cmd
	}
	return nil
}

// Reset drops back to normal mode
func (h *Handler) Reset() {
	h.currentMode = types.ModeNormal
	h.textInput.Reset()
	h.textInput.Blur()
}
