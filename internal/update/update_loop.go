package update

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/views"
)

func (m Model) Init() tea.Cmd {
	if !m.snap.Loading {
		return textinput.Blink
	}
	return tea.Batch(m.loadSpinner.Tick, loadItemsCmd(m.ctx, m.loader))
}

func loadItemsCmd(ctx context.Context, loader Loader) tea.Cmd {
	return func() tea.Msg {
		if loader == nil {
			return ItemsLoadedMsg{}
		}
		return ItemsLoadedMsg{Items: loader.Load(ctx)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncList()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(typed, m.Keys.ForceQuit) {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.snap.Loading {
			if key.Matches(typed, m.Keys.Quit) {
				m.Quitting = true
				return m, tea.Quit
			}
			return m, nil
		}
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		if m.Editing {
			return m.handleEditKey(typed)
		}
		if m.Focus == FocusInput {
			return m.handleInputKey(typed)
		}
		return m.handleListKey(typed)
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.height = typed.Height
		m.listViewport.Width = m.contentWidth()
		m.listViewport.Height = m.listHeight()
		m.helpModel.Width = m.contentWidth()
		return m, nil
	case spinner.TickMsg:
		if !m.snap.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.loadSpinner, cmd = m.loadSpinner.Update(typed)
		return m, cmd
	case ItemsLoadedMsg:
		m.snap = m.store.FinishLoading(typed.Items)
		m.clampCursor()
		m.Status = StatusBar{Text: fmt.Sprintf("loaded %d items", len(m.snap.Items))}
		return m, textinput.Blink
	case SnapshotMsg:
		if typed.Snapshot.Version > m.snap.Version {
			m.apply(typed.Snapshot)
			m.syncInputs()
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	if m.snap.Loading {
		return views.RenderLoading(m.loadSpinner.View(), m.contentWidth(), m.listHeight()+chromeHeight)
	}

	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("error: %s", m.Status.Text)
		} else {
			status = m.Status.Text
		}
	}

	return views.RenderApp(views.AppData{
		Header: views.RenderHeader(views.HeaderData{
			InputView:   m.newInput.View(),
			AllComplete: m.snap.AllComplete,
			Focused:     m.Focus == FocusInput,
		}),
		List:       m.listViewport.View(),
		Footer:     views.RenderFooter(m.footerData()),
		StatusLine: status,
		IsError:    m.Status.IsError,
		Palette:    views.RenderCommandPalette(m.Palette.Active, m.commandInput.View()),
		Help:       m.renderHelpIfVisible(),
		KeysLine:   m.keysLine(),
		Width:      m.contentWidth(),
	})
}

func (m Model) footerData() views.FooterData {
	keys := []string{"1", "2", "3"}
	buttons := make([]views.FilterButton, 0, len(model.Filters))
	for i, f := range model.Filters {
		buttons = append(buttons, views.FilterButton{Key: keys[i], Label: f.Label(), Active: f == m.snap.Filter})
	}
	return views.FooterData{
		ActiveCount:    m.snap.ActiveCount,
		CompletedCount: m.snap.CompletedCount,
		Filters:        buttons,
	}
}

// syncList refreshes the list viewport from the current snapshot and keeps
// the cursor row on screen.
func (m *Model) syncList() {
	rows := make([]views.RowData, 0, len(m.snap.Visible))
	for i, item := range m.snap.Visible {
		row := views.RowData{
			Text:     item.Text,
			Complete: item.Complete,
			Editing:  m.Editing && item.Editing && item.Key == m.EditingKey,
			Selected: m.Focus == FocusList && i == m.Cursor,
		}
		if row.Editing {
			row.EditView = m.editInput.View()
		}
		rows = append(rows, row)
	}
	m.listViewport.SetContent(views.RenderRows(rows))

	switch {
	case m.Cursor < m.listViewport.YOffset:
		m.listViewport.SetYOffset(m.Cursor)
	case m.Cursor >= m.listViewport.YOffset+m.listViewport.Height:
		m.listViewport.SetYOffset(m.Cursor - m.listViewport.Height + 1)
	}
}
