package domain

// Category is a named, ordered list of dork fragments
type Category struct {
	Key      string            `json:"-"`
	Label    string            `json:"label"`
	Items    []string          `json:"items"`
	Tooltips map[string]string `json:"tooltips,omitempty"`
}

// Profile is a saved query setup that can be re-applied later.
// Fragments are stored by text, not by index, so profiles survive
// catalog edits that reorder items.
type Profile struct {
	Name      string            `json:"-"`
	Category  string            `json:"category"`
	Fragments []string          `json:"fragments"`
	Negated   []string          `json:"negated,omitempty"`
	OrGroups  [][]string        `json:"or_groups,omitempty"`
	Vars      map[string]string `json:"vars,omitempty"`
}
