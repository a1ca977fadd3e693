package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/roach88/rolodex/internal/book"
)

// Semantic styles, muted when the output is not a terminal.
var (
	stylePrimary = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1")).Bold(true)
	styleDimmed  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7086"))
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8")).Bold(true)
	styleHeader  = lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Bold(true).Underline(true)
)

// RenderState formats the contact list and, when a search is active, the
// search view. Pure string building so it can be golden-tested.
func RenderState(s book.State) string {
	var b strings.Builder

	fmt.Fprintf(&b, "contacts (%d)\n", len(s.Contacts))
	if len(s.Contacts) == 0 {
		b.WriteString("  (empty)\n")
	}
	for _, c := range s.Contacts {
		b.WriteString(renderContact(c))
	}

	if s.SearchTerm != "" {
		fmt.Fprintf(&b, "search %q: %d match(es)\n", s.SearchTerm, len(s.SearchResults))
		for _, c := range s.SearchResults {
			b.WriteString(renderContact(c))
		}
	}

	return b.String()
}

func renderContact(c book.Contact) string {
	line := fmt.Sprintf("  %3d  %-24s %-28s %s", c.ID, c.Name, c.Email, c.Phone)
	return strings.TrimRight(line, " ") + "\n"
}

// RenderHistory formats the append-only action log, oldest first.
func RenderHistory(history []book.Action) string {
	var b strings.Builder

	fmt.Fprintf(&b, "history (%d)\n", len(history))
	if len(history) == 0 {
		b.WriteString("  (empty)\n")
	}
	for i, a := range history {
		fmt.Fprintf(&b, "  %3d  %s\n", i+1, a.String())
	}

	return b.String()
}
