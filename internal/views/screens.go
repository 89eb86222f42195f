package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type HeaderData struct {
	InputView   string
	AllComplete bool
	Focused     bool
}

type RowData struct {
	Text     string
	Complete bool
	Editing  bool
	EditView string
	Selected bool
}

type FooterData struct {
	ActiveCount    int
	CompletedCount int
	Filters        []FilterButton
}

type FilterButton struct {
	Key    string
	Label  string
	Active bool
}

type HelpPanelData struct {
	Bindings []string
	HelpView string
}

type ChecklistItem struct {
	Text     string
	Complete bool
}

func RenderHeader(data HeaderData) string {
	toggle := "❯"
	if data.AllComplete {
		toggle = selectedStyle.Render("❯")
	}
	cursor := " "
	if data.Focused {
		cursor = ">"
	}
	return fmt.Sprintf("%s %s %s", cursor, toggle, data.InputView)
}

func RenderRow(data RowData) string {
	cursor := " "
	if data.Selected {
		cursor = ">"
	}
	box := "[ ]"
	if data.Complete {
		box = "[x]"
	}
	if data.Editing {
		return fmt.Sprintf("%s %s %s", cursor, box, data.EditView)
	}
	text := data.Text
	switch {
	case data.Complete:
		text = doneStyle.Render(text)
	case data.Selected:
		text = selectedStyle.Render(text)
	}
	return fmt.Sprintf("%s %s %s", cursor, box, text)
}

func RenderRows(rows []RowData) string {
	if len(rows) == 0 {
		return mutedStyle.Render("  (nothing here)")
	}
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, RenderRow(row))
	}
	return strings.Join(lines, "\n")
}

func RenderFooter(data FooterData) string {
	noun := "items"
	if data.ActiveCount == 1 {
		noun = "item"
	}
	parts := []string{fmt.Sprintf("%d %s left", data.ActiveCount, noun)}

	buttons := make([]string, 0, len(data.Filters))
	for _, f := range data.Filters {
		label := fmt.Sprintf(" %s:%s ", f.Key, f.Label)
		if f.Active {
			label = activeFilter.Render(fmt.Sprintf("[%s:%s]", f.Key, f.Label))
		}
		buttons = append(buttons, label)
	}
	parts = append(parts, strings.Join(buttons, ""))

	if data.CompletedCount > 0 {
		parts = append(parts, "C:Clear completed")
	}
	return strings.Join(parts, "  ")
}

// RenderLoading centers the spinner in a width x height box.
func RenderLoading(spinnerView string, width, height int) string {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = 10
	}
	box := overlayStyle.Render(spinnerView + " loading")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: %s", inputView)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s\n%s", strings.Join(data.Bindings, "\n"), data.HelpView)
}

// ChecklistMarkdown formats items as a GitHub-style task list.
func ChecklistMarkdown(title string, items []ChecklistItem, active int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	if len(items) == 0 {
		b.WriteString("_Nothing to do._\n")
	}
	for _, item := range items {
		mark := " "
		if item.Complete {
			mark = "x"
		}
		fmt.Fprintf(&b, "- [%s] %s\n", mark, item.Text)
	}
	fmt.Fprintf(&b, "\n%d left\n", active)
	return b.String()
}
