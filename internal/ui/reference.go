package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"dorkdeck/internal/domain"
)

// referencePagerMsg contains the result of a reference pager command
type referencePagerMsg struct {
	err error
}

// RenderReference renders the full catalog as a styled reference sheet
func RenderReference(categories []*domain.Category) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	itemStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	tipStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var b strings.Builder
	b.WriteString(titleStyle.Render("dorkdeck catalog reference"))
	b.WriteString("\n")

	for _, c := range categories {
		b.WriteString(sectionStyle.Render(fmt.Sprintf("%s (%d)", c.Label, len(c.Items))))
		b.WriteString("\n")
		for _, item := range c.Items {
			b.WriteString(fmt.Sprintf("  %s", itemStyle.Render(item)))
			if tip := c.Tooltips[item]; tip != "" {
				b.WriteString("  ")
				b.WriteString(tipStyle.Render(tip))
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

// ReferenceOps shows the reference sheet in an external pager
type ReferenceOps struct {
	program *tea.Program
}

// NewReferenceOps creates a new reference operations instance
func NewReferenceOps(program *tea.Program) *ReferenceOps {
	return &ReferenceOps{program: program}
}

// ShowInPager renders content in the ov pager, suspending the TUI
func (r *ReferenceOps) ShowInPager(content string) error {
	if r.program == nil {
		return fmt.Errorf("program not set")
	}

	if err := r.program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// Small delay so the pager has fully exited before restoring
		time.Sleep(100 * time.Millisecond)
		_ = r.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Don't write pager content over our screen on exit
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
