package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tasklist/internal/commands"
	"github.com/sandeepkv93/tasklist/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Cancel):
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case key.Matches(msg, m.Keys.Submit):
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
		return m, nil
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m *Model) closePalette() {
	m.Palette = CommandPaletteState{}
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			m.apply(m.store.AddItem(a.Text))
			m.syncInputs()
			return commands.Result{Message: fmt.Sprintf("added %q", a.Text)}, nil
		},
		Done: func(t commands.TargetArgs) (commands.Result, error) {
			item, err := m.resolveRow(t.Row)
			if err != nil {
				return commands.Result{}, err
			}
			m.apply(m.store.ToggleComplete(item.Key, true))
			return commands.Result{Message: fmt.Sprintf("completed %q", item.Text)}, nil
		},
		Undo: func(t commands.TargetArgs) (commands.Result, error) {
			item, err := m.resolveRow(t.Row)
			if err != nil {
				return commands.Result{}, err
			}
			m.apply(m.store.ToggleComplete(item.Key, false))
			return commands.Result{Message: fmt.Sprintf("reopened %q", item.Text)}, nil
		},
		Edit: func(e commands.EditArgs) (commands.Result, error) {
			item, err := m.resolveRow(e.Row)
			if err != nil {
				return commands.Result{}, err
			}
			m.apply(m.store.UpdateItem(item.Key, e.Text))
			return commands.Result{Message: fmt.Sprintf("renamed %q", item.Text)}, nil
		},
		Remove: func(t commands.TargetArgs) (commands.Result, error) {
			item, err := m.resolveRow(t.Row)
			if err != nil {
				return commands.Result{}, err
			}
			m.apply(m.store.RemoveItem(item.Key))
			return commands.Result{Message: fmt.Sprintf("removed %q", item.Text)}, nil
		},
		Filter: func(f commands.FilterArgs) (commands.Result, error) {
			m.setFilter(f.Filter)
			return commands.Result{Message: "showing " + strings.ToLower(f.Filter.Label())}, nil
		},
		Clear: func() (commands.Result, error) {
			n := m.snap.CompletedCount
			m.apply(m.store.ClearCompleted())
			return commands.Result{Message: fmt.Sprintf("cleared %d completed %s", n, pluralItems(n))}, nil
		},
		ToggleAll: func() (commands.Result, error) {
			m.toggleAll()
			if m.snap.AllComplete {
				return commands.Result{Message: "marked all complete"}, nil
			}
			return commands.Result{Message: "marked all active"}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Status = StatusBar{Text: res.Message}
	return m
}

func (m Model) resolveRow(row int) (model.Item, error) {
	item, ok := rowItem(m.snap.Visible, row)
	if !ok {
		return model.Item{}, &commands.CommandError{
			Code:    commands.ErrCodeInvalidArgument,
			Message: fmt.Sprintf("no row %d (%d visible)", row, len(m.snap.Visible)),
		}
	}
	return item, nil
}
