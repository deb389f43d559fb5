package state

// Panel identifies which pane has keyboard focus
type Panel int

const (
	PanelCategories Panel = iota
	PanelFragments
)

// AppState contains all the UI state
type AppState struct {
	// Catalog navigation
	CategoryKeys  []string // display order
	CategoryIndex int
	FragmentIndex int

	// Marked fragment texts, used for OR grouping and bulk edits
	Marked map[string]bool

	// Last query published by the assembler
	Query          string
	FragmentsInSet int

	// UI state
	FocusedPanel   Panel
	ViewportHeight int
	StatusMessage  string
	ShowHelp       bool
	ShowProfiles   bool
	ProfileCursor  int

	// Fragment filter
	FilterQuery string
	IsFiltered  bool
}

// NewAppState creates a new UI state
func NewAppState() *AppState {
	return &AppState{
		Marked:         make(map[string]bool),
		FocusedPanel:   PanelFragments,
		ViewportHeight: 20,
	}
}

// CurrentCategoryKey returns the key of the category under the cursor
func (s *AppState) CurrentCategoryKey() string {
	if s.CategoryIndex >= 0 && s.CategoryIndex < len(s.CategoryKeys) {
		return s.CategoryKeys[s.CategoryIndex]
	}
	return ""
}

// SetCategories replaces the category order, clamping the cursor
func (s *AppState) SetCategories(keys []string) {
	s.CategoryKeys = keys
	if s.CategoryIndex >= len(keys) {
		s.CategoryIndex = len(keys) - 1
	}
	if s.CategoryIndex < 0 {
		s.CategoryIndex = 0
	}
}

// SelectCategory moves the category cursor and resets fragment state
// that only makes sense within one category
func (s *AppState) SelectCategory(index int) {
	if index < 0 || index >= len(s.CategoryKeys) {
		return
	}
	if index != s.CategoryIndex {
		s.CategoryIndex = index
		s.FragmentIndex = 0
	}
}

// ClampFragmentCursor keeps the fragment cursor within the visible list
func (s *AppState) ClampFragmentCursor(visible int) {
	if s.FragmentIndex >= visible {
		s.FragmentIndex = visible - 1
	}
	if s.FragmentIndex < 0 {
		s.FragmentIndex = 0
	}
}

// ToggleMark flips the mark on a fragment text
func (s *AppState) ToggleMark(text string) {
	if text == "" {
		return
	}
	if s.Marked[text] {
		delete(s.Marked, text)
	} else {
		s.Marked[text] = true
	}
}

// MarkedTexts returns the marked fragments in the order they appear in
// items. A text listed in more than one category comes back once.
func (s *AppState) MarkedTexts(items []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, item := range items {
		if s.Marked[item] && !seen[item] {
			seen[item] = true
			out = append(out, item)
		}
	}
	return out
}

// ClearMarks drops all marks
func (s *AppState) ClearMarks() {
	s.Marked = make(map[string]bool)
}

// HasMarks reports whether any fragment is marked
func (s *AppState) HasMarks() bool {
	return len(s.Marked) > 0
}

// ClearFilter resets the fragment filter
func (s *AppState) ClearFilter() {
	s.FilterQuery = ""
	s.IsFiltered = false
}
