package types

// Action is a command for the model produced by an input mode
type Action interface {
	isAction()
}

// NavigateAction moves the cursor in the focused panel
type NavigateAction struct {
	Direction string // up, down, pageup, pagedown, home, end
}

// SwitchPanelAction moves focus between the category and fragment panels
type SwitchPanelAction struct {
	Direction string // left, right, or "" to toggle
}

// ToggleFragmentAction adds/removes the current fragment from the query
type ToggleFragmentAction struct{}

// ToggleNotAction flips the NOT modifier on the current fragment
type ToggleNotAction struct{}

// MarkAction marks the current fragment for grouping or bulk edits
type MarkAction struct{}

// GroupMarkedAction OR-groups the marked fragments
type GroupMarkedAction struct{}

// ClearQueryAction empties the active set
type ClearQueryAction struct{}

// ClearMarksAction drops all marks (and any active filter)
type ClearMarksAction struct{}

// CopyAction copies the query or its URL to the clipboard
type CopyAction struct {
	URL bool
}

// OpenBrowserAction opens the query URL in the system browser
type OpenBrowserAction struct{}

// ShowReferenceAction opens the catalog reference sheet in the pager
type ShowReferenceAction struct{}

// ToggleHelpAction shows or hides the help popup
type ToggleHelpAction struct{}

// ToggleTooltipsAction shows or hides fragment tooltips
type ToggleTooltipsAction struct{}

// ToggleProfilesAction opens or closes the profile picker
type ToggleProfilesAction struct{}

// QuitAction exits the application
type QuitAction struct {
	Force bool
}

// ChangeModeAction switches the input mode
type ChangeModeAction struct {
	Mode Mode
	Data string // prefill for text modes
}

// CommitTextAction delivers the text a text mode collected
type CommitTextAction struct {
	Mode Mode
	Text string
}

// UpdateTextAction reports the live text while a text mode is active
type UpdateTextAction struct {
	Text string
}

// ConfirmAction resolves a confirm mode
type ConfirmAction struct {
	Mode Mode
	Yes  bool
}

func (NavigateAction) isAction()       {}
func (SwitchPanelAction) isAction()    {}
func (ToggleFragmentAction) isAction() {}
func (ToggleNotAction) isAction()      {}
func (MarkAction) isAction()           {}
func (GroupMarkedAction) isAction()    {}
func (ClearQueryAction) isAction()     {}
func (ClearMarksAction) isAction()     {}
func (CopyAction) isAction()           {}
func (OpenBrowserAction) isAction()    {}
func (ShowReferenceAction) isAction()  {}
func (ToggleHelpAction) isAction()     {}
func (ToggleTooltipsAction) isAction() {}
func (ToggleProfilesAction) isAction() {}
func (QuitAction) isAction()           {}
func (ChangeModeAction) isAction()     {}
func (CommitTextAction) isAction()     {}
func (UpdateTextAction) isAction()     {}
func (ConfirmAction) isAction()        {}
