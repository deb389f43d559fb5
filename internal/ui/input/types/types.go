package types

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Mode identifies an input mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeNewDork
	ModeNewCategory
	ModeRenameDork
	ModeRenameCategory
	ModeMoveToCategory
	ModeVariable
	ModeProfileName
	ModeFilter
	ModeConfirmDeleteDork
	ModeConfirmDeleteCategory
)

// IsTextMode reports whether a mode reads free text
func (m Mode) IsTextMode() bool {
	switch m {
	case ModeNewDork, ModeNewCategory, ModeRenameDork, ModeRenameCategory,
		ModeMoveToCategory, ModeVariable, ModeProfileName, ModeFilter:
		return true
	default:
		return false
	}
}

// Context exposes the model state mode handlers need for their decisions
type Context interface {
	FocusedOnCategories() bool
	CurrentCategoryKey() string
	CurrentFragment() string
	FragmentInQuery(text string) bool
	HasMarks() bool
	FilterActive() bool
	ProfilePickerOpen() bool
}

// ModeHandler handles keys for one input mode
type ModeHandler interface {
	Name() string
	Enter(ctx Context) []Action
	Exit(ctx Context) []Action
	HandleKey(msg tea.KeyMsg, ctx Context) ([]Action, bool)
}
