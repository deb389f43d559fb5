package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const categoryPanelWidth = 26

// CategoryRow is one entry in the category panel
type CategoryRow struct {
	Label string
	Count int
}

// FragmentRow is one entry in the fragment panel
type FragmentRow struct {
	Text    string
	Tooltip string
	Checked bool
	Negated bool
	Grouped bool
	Marked  bool
}

// ViewData is everything the renderer needs for one frame
type ViewData struct {
	Width  int
	Height int

	Categories     []CategoryRow
	CategoryCursor int
	CategoryLabel  string

	Fragments      []FragmentRow
	FragmentCursor int
	FocusedPanel   int // 0 categories, 1 fragments

	Query          string
	FragmentsInSet int
	Placeholders   []string // unresolved {name} tokens
	StatusMessage  string
	FilterQuery    string
	ShowTooltips   bool

	// Prompt state (text entry and confirm modes)
	InputPrompt   string
	InputView     string
	ConfirmPrompt string

	// Popups
	ShowHelp      bool
	ShowProfiles  bool
	Profiles      []string
	ProfileCursor int
}

// Renderer draws the full TUI frame from a ViewData snapshot
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new view renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Render produces the complete frame
func (r *Renderer) Render(d ViewData) string {
	if d.ShowHelp {
		return r.renderHelp(d)
	}

	var b strings.Builder
	b.WriteString(r.styles.Title.Render("dorkdeck"))
	b.WriteString("\n")

	panelHeight := d.Height - 7 // title, query bar, status, prompt, borders
	if panelHeight < 5 {
		panelHeight = 5
	}

	categories := r.renderCategories(d, panelHeight)
	fragments := r.renderFragments(d, panelHeight)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, categories, fragments))
	b.WriteString("\n")

	b.WriteString(r.renderQueryBar(d))
	b.WriteString("\n")

	if d.ShowProfiles {
		b.WriteString(r.renderProfiles(d))
		b.WriteString("\n")
	}

	switch {
	case d.ConfirmPrompt != "":
		b.WriteString(r.styles.Confirm.Render(d.ConfirmPrompt + " (y/n)"))
	case d.InputPrompt != "":
		b.WriteString(r.styles.Prompt.Render(d.InputPrompt+" ") + d.InputView)
	case d.StatusMessage != "":
		b.WriteString(r.styles.Warning.Render(d.StatusMessage))
	default:
		b.WriteString(r.styles.Help.Render("space toggle · ! not · m mark · o group · y copy · ? help · q quit"))
	}

	return b.String()
}

func (r *Renderer) renderCategories(d ViewData, height int) string {
	var b strings.Builder
	b.WriteString(r.styles.PanelTitle.Render(fmt.Sprintf("Categories (%d)", len(d.Categories))))
	b.WriteString("\n")

	for i, c := range d.Categories {
		line := fmt.Sprintf("%s (%d)", c.Label, c.Count)
		if i == d.CategoryCursor {
			marker := "> "
			if d.FocusedPanel == 0 {
				line = r.styles.Cursor.Render(marker + line)
			} else {
				line = marker + line
			}
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		if i < len(d.Categories)-1 {
			b.WriteString("\n")
		}
	}
	if len(d.Categories) == 0 {
		b.WriteString(r.styles.Dim.Render("no categories"))
	}

	style := r.styles.Panel
	if d.FocusedPanel == 0 {
		style = r.styles.ActivePanel
	}
	return style.Width(categoryPanelWidth).Height(height).Render(b.String())
}

func (r *Renderer) renderFragments(d ViewData, height int) string {
	var b strings.Builder

	title := d.CategoryLabel
	if d.FilterQuery != "" {
		title = fmt.Sprintf("%s · filter: %s", title, d.FilterQuery)
	}
	b.WriteString(r.styles.PanelTitle.Render(title))
	b.WriteString("\n")

	visible := height - 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if d.FragmentCursor >= visible {
		start = d.FragmentCursor - visible + 1
	}
	end := start + visible
	if end > len(d.Fragments) {
		end = len(d.Fragments)
	}

	if start > 0 {
		b.WriteString(r.styles.Dim.Render("  ↑ more"))
		b.WriteString("\n")
	}

	for i := start; i < end; i++ {
		b.WriteString(r.renderFragmentRow(d, i))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	if len(d.Fragments) == 0 {
		if d.FilterQuery != "" {
			b.WriteString(r.styles.Dim.Render("no fragments match the filter"))
		} else {
			b.WriteString(r.styles.Dim.Render("empty category, press a to add a dork"))
		}
	}

	if end < len(d.Fragments) {
		b.WriteString("\n")
		b.WriteString(r.styles.Dim.Render("  ↓ more"))
	}

	style := r.styles.Panel
	if d.FocusedPanel == 1 {
		style = r.styles.ActivePanel
	}
	width := d.Width - categoryPanelWidth - 2
	if width < 30 {
		width = 30
	}
	return style.Width(width).Height(height).Render(b.String())
}

func (r *Renderer) renderFragmentRow(d ViewData, i int) string {
	f := d.Fragments[i]

	box := "[ ]"
	switch {
	case f.Negated:
		box = r.styles.Negated.Render("[-]")
	case f.Grouped:
		box = r.styles.Grouped.Render("[|]")
	case f.Checked:
		box = r.styles.Checked.Render("[x]")
	}

	mark := " "
	if f.Marked {
		mark = r.styles.Marked.Render("*")
	}

	line := fmt.Sprintf("%s%s %s", mark, box, f.Text)
	if d.ShowTooltips && f.Tooltip != "" {
		line += r.styles.Dim.Render("  " + f.Tooltip)
	}

	if i == d.FragmentCursor && d.FocusedPanel == 1 {
		return r.styles.Cursor.Render(line)
	}
	return line
}

func (r *Renderer) renderQueryBar(d ViewData) string {
	var b strings.Builder
	if d.Query == "" {
		b.WriteString(r.styles.QueryEmpty.Render("query: (empty)"))
	} else {
		b.WriteString(r.styles.QueryBar.Render("query: " + d.Query))
	}
	if len(d.Placeholders) > 0 {
		b.WriteString("  ")
		b.WriteString(r.styles.Placeholder.Render("unset: {" + strings.Join(d.Placeholders, "} {") + "}"))
	}
	return b.String()
}

func (r *Renderer) renderProfiles(d ViewData) string {
	var b strings.Builder
	b.WriteString(r.styles.PanelTitle.Render("Profiles"))
	b.WriteString("\n")
	if len(d.Profiles) == 0 {
		b.WriteString(r.styles.Dim.Render("no saved profiles, press s to save one"))
	}
	for i, name := range d.Profiles {
		line := "  " + name
		if i == d.ProfileCursor {
			line = r.styles.Cursor.Render("> " + name)
		}
		b.WriteString(line)
		if i < len(d.Profiles)-1 {
			b.WriteString("\n")
		}
	}
	return r.styles.PopupBox.Render(b.String())
}

func (r *Renderer) renderHelp(d ViewData) string {
	s := r.styles
	var b strings.Builder

	b.WriteString(s.Title.Render("dorkdeck help"))
	b.WriteString("\n")

	section := func(name string) {
		b.WriteString(s.HelpSection.Render(name))
		b.WriteString("\n")
	}
	row := func(key, desc string) {
		b.WriteString(fmt.Sprintf("  %-12s %s\n", s.HelpKey.Render(key), s.HelpDesc.Render(desc)))
	}

	section("Navigation")
	row("↑/↓, j/k", "move cursor")
	row("tab, h/l", "switch between panels")
	row("gg/G", "go to top/bottom")
	row("pgup/pgdn", "page up/down")

	section("Query")
	row("space/enter", "toggle fragment in query")
	row("!", "negate fragment (NOT)")
	row("m", "mark fragment")
	row("o", "OR-group marked fragments")
	row("C", "clear query")
	row("v", "set variable (name=value)")
	row("y / Y", "copy query / Google URL")
	row("O", "open query in browser")

	section("Catalog")
	row("a / A", "add dork / add category")
	row("e / E", "rename dork / rename category")
	row("d / D", "delete dork(s) / delete category")
	row("M", "move marked dorks to category")
	row("/", "filter fragments")
	row("R", "full catalog reference (pager)")

	section("Profiles")
	row("s", "save current query as profile")
	row("p", "open profile picker")

	section("Other")
	row("t", "toggle tooltips")
	row("?", "toggle this help")
	row("q", "quit")

	return s.PopupBox.Render(b.String())
}
