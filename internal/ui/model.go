package ui

import (
	"fmt"
	"log"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"dorkdeck/internal/assembler"
	"dorkdeck/internal/catalog"
	"dorkdeck/internal/config"
	"dorkdeck/internal/domain"
	"dorkdeck/internal/eventbus"
	"dorkdeck/internal/ui/input"
	"dorkdeck/internal/ui/input/types"
	"dorkdeck/internal/ui/state"
	"dorkdeck/internal/ui/views"
)

// EventMsg wraps a bus event for the UI update loop
type EventMsg struct {
	Event eventbus.DomainEvent
}

// Model is the top-level Bubble Tea model
type Model struct {
	state        *state.AppState
	cfg          *config.Config
	configSvc    config.ConfigService
	catalog      *catalog.Repository
	svc          *assembler.Service
	bus          eventbus.EventBus
	inputHandler *input.Handler
	renderer     *views.Renderer
	refOps       *ReferenceOps

	width  int
	height int
}

// NewModel creates the UI model
func NewModel(cfg *config.Config, configSvc config.ConfigService, repo *catalog.Repository, svc *assembler.Service, bus eventbus.EventBus) *Model {
	st := state.NewAppState()
	keys := make([]string, 0, len(repo.Categories()))
	for _, c := range repo.Categories() {
		keys = append(keys, c.Key)
	}
	st.SetCategories(keys)

	return &Model{
		state:        st,
		cfg:          cfg,
		configSvc:    configSvc,
		catalog:      repo,
		svc:          svc,
		bus:          bus,
		inputHandler: input.New(),
		renderer:     views.NewRenderer(),
		refOps:       NewReferenceOps(nil),
	}
}

// SetProgram wires the running program in for terminal handover (pager)
func (m *Model) SetProgram(p *tea.Program) {
	m.refOps = NewReferenceOps(p)
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.state.ViewportHeight = msg.Height
		return m, nil

	case EventMsg:
		m.handleEvent(msg.Event)
		return m, nil

	case referencePagerMsg:
		if msg.err != nil {
			m.state.StatusMessage = fmt.Sprintf("pager failed: %v", msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, m.inputHandler.Update(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Status messages live until the next keypress
	m.state.StatusMessage = ""

	if m.state.ShowHelp {
		switch msg.String() {
		case "?", "esc", "q", "enter":
			m.state.ShowHelp = false
		}
		return m, nil
	}

	if m.state.ShowProfiles {
		return m.handleProfileKey(msg)
	}

	actions, cmd := m.inputHandler.HandleKey(msg, m)

	var cmds []tea.Cmd
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	for _, action := range actions {
		if c := m.executeAction(action); c != nil {
			cmds = append(cmds, c)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleProfileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	names := m.catalog.ProfileNames()
	switch msg.String() {
	case "j", "down":
		if m.state.ProfileCursor < len(names)-1 {
			m.state.ProfileCursor++
		}
	case "k", "up":
		if m.state.ProfileCursor > 0 {
			m.state.ProfileCursor--
		}
	case "enter":
		if m.state.ProfileCursor < len(names) {
			if p, ok := m.catalog.Profile(names[m.state.ProfileCursor]); ok {
				m.bus.Publish(domain.ProfileApplyRequested{Profile: p})
				m.selectProfileCategory(p.Category)
				m.state.StatusMessage = fmt.Sprintf("applied profile %q", p.Name)
			}
		}
		m.state.ShowProfiles = false
	case "d":
		if m.state.ProfileCursor < len(names) {
			name := names[m.state.ProfileCursor]
			if err := m.catalog.DeleteProfile(name); err != nil {
				m.state.StatusMessage = err.Error()
			} else {
				m.state.StatusMessage = fmt.Sprintf("deleted profile %q", name)
			}
			if m.state.ProfileCursor > 0 {
				m.state.ProfileCursor--
			}
		}
	case "esc", "p", "q":
		m.state.ShowProfiles = false
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) selectProfileCategory(key string) {
	for i, k := range m.state.CategoryKeys {
		if k == key {
			m.state.SelectCategory(i)
			return
		}
	}
}

func (m *Model) executeAction(action types.Action) tea.Cmd {
	switch a := action.(type) {
	case types.NavigateAction:
		m.navigate(a.Direction)

	case types.SwitchPanelAction:
		m.switchPanel(a.Direction)

	case types.ToggleFragmentAction:
		text := m.CurrentFragment()
		if text == "" {
			return nil
		}
		if m.svc.Contains(text) {
			m.bus.Publish(domain.FragmentRemoveRequested{Text: text})
		} else {
			m.bus.Publish(domain.FragmentAddRequested{Text: text})
		}

	case types.ToggleNotAction:
		text := m.CurrentFragment()
		if text == "" {
			return nil
		}
		if m.svc.Contains(text) {
			m.bus.Publish(domain.NotToggleRequested{Text: text})
		} else {
			m.bus.Publish(domain.FragmentAddRequested{Text: text, Negated: true})
		}

	case types.MarkAction:
		m.state.ToggleMark(m.CurrentFragment())

	case types.GroupMarkedAction:
		texts := m.markedInOrder()
		if len(texts) < 2 {
			m.state.StatusMessage = "mark at least two fragments to group"
			return nil
		}
		m.bus.Publish(domain.OrGroupRequested{Texts: texts})
		m.state.ClearMarks()

	case types.ClearQueryAction:
		m.bus.Publish(domain.ClearRequested{})

	case types.ClearMarksAction:
		m.state.ClearMarks()
		m.state.ClearFilter()
		m.inputHandler.Reset()

	case types.CopyAction:
		text := m.svc.Query()
		what := "query"
		if a.URL {
			text = m.svc.URL()
			what = "URL"
		}
		if text == "" {
			m.state.StatusMessage = "nothing to copy"
			return nil
		}
		if err := clipboard.WriteAll(text); err != nil {
			m.state.StatusMessage = fmt.Sprintf("clipboard failed: %v", err)
		} else {
			m.state.StatusMessage = what + " copied to clipboard"
		}

	case types.OpenBrowserAction:
		url := m.svc.URL()
		if url == "" {
			m.state.StatusMessage = "query is empty"
			return nil
		}
		if !m.cfg.OpenInBrowser {
			m.state.StatusMessage = "browser opening is disabled in config"
			return nil
		}
		if err := openURL(url); err != nil {
			m.state.StatusMessage = err.Error()
		} else {
			m.state.StatusMessage = "opened in browser"
		}

	case types.ShowReferenceAction:
		content := RenderReference(m.catalog.Categories())
		return func() tea.Msg {
			return referencePagerMsg{err: m.refOps.ShowInPager(content)}
		}

	case types.ToggleHelpAction:
		m.state.ShowHelp = !m.state.ShowHelp

	case types.ToggleTooltipsAction:
		m.cfg.UISettings.ShowTooltips = !m.cfg.UISettings.ShowTooltips

	case types.ToggleProfilesAction:
		m.state.ShowProfiles = !m.state.ShowProfiles
		m.state.ProfileCursor = 0

	case types.QuitAction:
		if !a.Force && m.cfg.UISettings.AutosaveOnExit {
			if err := m.configSvc.Save(m.cfg); err != nil {
				log.Printf("Failed to save config on exit: %v", err)
			}
		}
		return tea.Quit

	case types.CommitTextAction:
		m.commitText(a.Mode, a.Text)

	case types.UpdateTextAction:
		if m.inputHandler.CurrentMode() == types.ModeFilter {
			m.state.FilterQuery = a.Text
			m.state.IsFiltered = a.Text != ""
			m.state.FragmentIndex = 0
		}

	case types.ConfirmAction:
		m.confirm(a.Mode, a.Yes)
	}

	return nil
}

func (m *Model) navigate(direction string) {
	if m.state.FocusedPanel == state.PanelCategories {
		count := len(m.state.CategoryKeys)
		idx := m.state.CategoryIndex
		switch direction {
		case "up":
			idx--
		case "down":
			idx++
		case "pageup":
			idx -= m.pageSize()
		case "pagedown":
			idx += m.pageSize()
		case "home":
			idx = 0
		case "end":
			idx = count - 1
		}
		if idx < 0 {
			idx = 0
		}
		if idx >= count {
			idx = count - 1
		}
		m.state.SelectCategory(idx)
		return
	}

	count := len(m.visibleFragments())
	switch direction {
	case "up":
		m.state.FragmentIndex--
	case "down":
		m.state.FragmentIndex++
	case "pageup":
		m.state.FragmentIndex -= m.pageSize()
	case "pagedown":
		m.state.FragmentIndex += m.pageSize()
	case "home":
		m.state.FragmentIndex = 0
	case "end":
		m.state.FragmentIndex = count - 1
	}
	m.state.ClampFragmentCursor(count)
}

func (m *Model) pageSize() int {
	size := m.state.ViewportHeight - 9
	if size < 1 {
		size = 1
	}
	return size
}

func (m *Model) switchPanel(direction string) {
	switch direction {
	case "left":
		m.state.FocusedPanel = state.PanelCategories
	case "right":
		m.state.FocusedPanel = state.PanelFragments
	default:
		if m.state.FocusedPanel == state.PanelCategories {
			m.state.FocusedPanel = state.PanelFragments
		} else {
			m.state.FocusedPanel = state.PanelCategories
		}
	}
}

func (m *Model) commitText(mode types.Mode, text string) {
	text = strings.TrimSpace(text)

	switch mode {
	case types.ModeNewDork:
		if text == "" {
			return
		}
		if err := m.catalog.AddDork(m.state.CurrentCategoryKey(), text); err != nil {
			m.state.StatusMessage = err.Error()
		}

	case types.ModeNewCategory:
		if text == "" {
			return
		}
		c, err := m.catalog.AddCategory(text)
		if err != nil {
			m.state.StatusMessage = err.Error()
			return
		}
		m.refreshCategories()
		m.selectProfileCategory(c.Key)

	case types.ModeRenameDork:
		old := m.CurrentFragment()
		if text == "" || old == "" {
			return
		}
		if err := m.catalog.RenameDork(m.state.CurrentCategoryKey(), old, text); err != nil {
			m.state.StatusMessage = err.Error()
			return
		}
		// Keep the query in sync with the renamed text
		if m.svc.Contains(old) {
			negated := m.svc.IsNegated(old)
			m.bus.Publish(domain.FragmentRemoveRequested{Text: old})
			m.bus.Publish(domain.FragmentAddRequested{Text: text, Negated: negated})
		}

	case types.ModeRenameCategory:
		if text == "" {
			return
		}
		if err := m.catalog.RenameCategory(m.state.CurrentCategoryKey(), text); err != nil {
			m.state.StatusMessage = err.Error()
			return
		}
		m.refreshCategories()

	case types.ModeMoveToCategory:
		if text == "" {
			return
		}
		target := m.findCategory(text)
		if target == nil {
			m.state.StatusMessage = fmt.Sprintf("no category %q", text)
			return
		}
		texts := m.markedInOrder()
		if len(texts) == 0 {
			if f := m.CurrentFragment(); f != "" {
				texts = []string{f}
			}
		}
		if err := m.catalog.MoveDorks(m.state.CurrentCategoryKey(), target.Key, texts); err != nil {
			m.state.StatusMessage = err.Error()
			return
		}
		m.state.ClearMarks()
		m.state.ClampFragmentCursor(len(m.visibleFragments()))
		m.state.StatusMessage = fmt.Sprintf("moved %d to %s", len(texts), target.Label)

	case types.ModeVariable:
		name, value, ok := strings.Cut(text, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			m.state.StatusMessage = "expected name=value"
			return
		}
		m.bus.Publish(domain.VariableSetRequested{Name: name, Value: strings.TrimSpace(value)})

	case types.ModeProfileName:
		if text == "" {
			return
		}
		if m.svc.Len() == 0 {
			m.state.StatusMessage = "query is empty, nothing to save"
			return
		}
		p := m.svc.Snapshot(text, m.state.CurrentCategoryKey())
		if err := m.catalog.SaveProfile(p); err != nil {
			m.state.StatusMessage = err.Error()
		} else {
			m.state.StatusMessage = fmt.Sprintf("saved profile %q", text)
		}

	case types.ModeFilter:
		m.state.FilterQuery = text
		m.state.IsFiltered = text != ""
		m.state.FragmentIndex = 0
	}
}

func (m *Model) confirm(mode types.Mode, yes bool) {
	if !yes {
		return
	}

	switch mode {
	case types.ModeConfirmDeleteDork:
		texts := m.markedInOrder()
		if len(texts) == 0 {
			if f := m.CurrentFragment(); f != "" {
				texts = []string{f}
			}
		}
		if len(texts) == 0 {
			return
		}
		if err := m.catalog.DeleteDorks(m.state.CurrentCategoryKey(), texts); err != nil {
			m.state.StatusMessage = err.Error()
			return
		}
		for _, t := range texts {
			if m.svc.Contains(t) {
				m.bus.Publish(domain.FragmentRemoveRequested{Text: t})
			}
		}
		m.state.ClearMarks()
		m.state.ClampFragmentCursor(len(m.visibleFragments()))

	case types.ModeConfirmDeleteCategory:
		key := m.state.CurrentCategoryKey()
		if key == "" {
			return
		}
		if err := m.catalog.DeleteCategory(key); err != nil {
			m.state.StatusMessage = err.Error()
			return
		}
		m.refreshCategories()
	}
}

func (m *Model) handleEvent(e eventbus.DomainEvent) {
	switch event := e.(type) {
	case domain.QueryUpdated:
		m.state.Query = event.Query
		m.state.FragmentsInSet = event.Fragments

	case domain.DuplicateFragment:
		m.state.StatusMessage = fmt.Sprintf("%q is already in the query", event.Text)

	case domain.FragmentNotFound:
		m.state.StatusMessage = fmt.Sprintf("%q is not in the query", event.Text)

	case domain.ErrorEvent:
		m.state.StatusMessage = event.Message
	}
}

func (m *Model) refreshCategories() {
	keys := make([]string, 0, len(m.catalog.Categories()))
	for _, c := range m.catalog.Categories() {
		keys = append(keys, c.Key)
	}
	m.state.SetCategories(keys)
}

// findCategory resolves user input to a category by key or label
func (m *Model) findCategory(text string) *domain.Category {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, c := range m.catalog.Categories() {
		if c.Key == lower || strings.ToLower(c.Label) == lower {
			return c
		}
	}
	return nil
}

// visibleFragments returns the current category's items after filtering
func (m *Model) visibleFragments() []string {
	c := m.catalog.Category(m.state.CurrentCategoryKey())
	if c == nil {
		return nil
	}
	if m.state.FilterQuery == "" {
		return c.Items
	}
	needle := strings.ToLower(m.state.FilterQuery)
	var out []string
	for _, item := range c.Items {
		if strings.Contains(strings.ToLower(item), needle) {
			out = append(out, item)
		}
	}
	return out
}

// markedInOrder returns marked fragments in catalog display order
func (m *Model) markedInOrder() []string {
	var all []string
	for _, c := range m.catalog.Categories() {
		all = append(all, c.Items...)
	}
	return m.state.MarkedTexts(all)
}

// Context interface for input modes

func (m *Model) FocusedOnCategories() bool {
	return m.state.FocusedPanel == state.PanelCategories
}

func (m *Model) CurrentCategoryKey() string {
	return m.state.CurrentCategoryKey()
}

func (m *Model) CurrentFragment() string {
	items := m.visibleFragments()
	if m.state.FragmentIndex >= 0 && m.state.FragmentIndex < len(items) {
		return items[m.state.FragmentIndex]
	}
	return ""
}

func (m *Model) FragmentInQuery(text string) bool {
	return m.svc.Contains(text)
}

func (m *Model) HasMarks() bool {
	return m.state.HasMarks()
}

func (m *Model) FilterActive() bool {
	return m.state.IsFiltered
}

func (m *Model) ProfilePickerOpen() bool {
	return m.state.ShowProfiles
}

func (m *Model) View() string {
	d := views.ViewData{
		Width:          m.width,
		Height:         m.height,
		CategoryCursor: m.state.CategoryIndex,
		FragmentCursor: m.state.FragmentIndex,
		FocusedPanel:   int(m.state.FocusedPanel),
		Query:          m.state.Query,
		FragmentsInSet: m.state.FragmentsInSet,
		Placeholders:   m.svc.Placeholders(),
		StatusMessage:  m.state.StatusMessage,
		FilterQuery:    m.state.FilterQuery,
		ShowTooltips:   m.cfg.UISettings.ShowTooltips,
		ShowHelp:       m.state.ShowHelp,
		ShowProfiles:   m.state.ShowProfiles,
		Profiles:       m.catalog.ProfileNames(),
		ProfileCursor:  m.state.ProfileCursor,
	}

	for _, c := range m.catalog.Categories() {
		d.Categories = append(d.Categories, views.CategoryRow{
			Label: c.Label,
			Count: len(c.Items),
		})
	}

	current := m.catalog.Category(m.state.CurrentCategoryKey())
	if current != nil {
		d.CategoryLabel = current.Label
	}
	for _, item := range m.visibleFragments() {
		var tooltip string
		if current != nil {
			tooltip = current.Tooltips[item]
		}
		d.Fragments = append(d.Fragments, views.FragmentRow{
			Text:    item,
			Tooltip: tooltip,
			Checked: m.svc.Contains(item),
			Negated: m.svc.IsNegated(item),
			Grouped: m.svc.InGroup(item),
			Marked:  m.state.Marked[item],
		})
	}

	mode := m.inputHandler.CurrentMode()
	switch mode {
	case types.ModeConfirmDeleteDork:
		n := len(m.markedInOrder())
		if n == 0 {
			n = 1
		}
		d.ConfirmPrompt = fmt.Sprintf("Delete %d dork(s) from %s?", n, d.CategoryLabel)
	case types.ModeConfirmDeleteCategory:
		d.ConfirmPrompt = fmt.Sprintf("Delete category %s and all its dorks?", d.CategoryLabel)
	default:
		if mode.IsTextMode() {
			d.InputPrompt = promptFor(mode)
			if ti := m.inputHandler.TextInput(); ti != nil {
				d.InputView = ti.View()
			}
		}
	}

	return m.renderer.Render(d)
}

func promptFor(mode types.Mode) string {
	switch mode {
	case types.ModeNewDork:
		return "New dork:"
	case types.ModeNewCategory:
		return "New category:"
	case types.ModeRenameDork:
		return "Rename dork:"
	case types.ModeRenameCategory:
		return "Rename category:"
	case types.ModeMoveToCategory:
		return "Move to category:"
	case types.ModeVariable:
		return "Set variable (name=value):"
	case types.ModeProfileName:
		return "Profile name:"
	case types.ModeFilter:
		return "Filter:"
	default:
		return ""
	}
}
