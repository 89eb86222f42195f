package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/state"
)

func (m Model) handleInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Submit):
		m.addItem(m.newInput.Value())
		return m, nil
	case key.Matches(msg, m.Keys.SwitchFocus), key.Matches(msg, m.Keys.Cancel):
		m.focusList()
		return m, nil
	case key.Matches(msg, m.Keys.ToggleAll):
		m.toggleAll()
		return m, nil
	}
	var cmd tea.Cmd
	m.newInput, cmd = m.newInput.Update(msg)
	if m.newInput.Value() != m.snap.InputValue {
		m.snap = m.store.SetInput(m.newInput.Value())
	}
	return m, cmd
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		m.Quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.Keys.SwitchFocus), msg.String() == "i":
		m.focusInput()
		return m, nil
	case key.Matches(msg, m.Keys.Help):
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case key.Matches(msg, m.Keys.Palette):
		m.Palette = CommandPaletteState{Active: true}
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		return m, nil
	case key.Matches(msg, m.Keys.Up):
		if m.Cursor > 0 {
			m.Cursor--
		}
	case key.Matches(msg, m.Keys.Down):
		if m.Cursor < len(m.snap.Visible)-1 {
			m.Cursor++
		}
	case key.Matches(msg, m.Keys.ToggleComplete):
		if item, ok := m.selectedItem(); ok {
			m.apply(m.store.ToggleComplete(item.Key, !item.Complete))
		}
	case key.Matches(msg, m.Keys.ToggleAll):
		m.toggleAll()
	case key.Matches(msg, m.Keys.Edit):
		return m.startEditing()
	case key.Matches(msg, m.Keys.Remove):
		if item, ok := m.selectedItem(); ok {
			m.apply(m.store.RemoveItem(item.Key))
			m.Status = StatusBar{Text: fmt.Sprintf("removed %q", item.Text)}
		}
	case key.Matches(msg, m.Keys.FilterAll):
		m.setFilter(model.FilterAll)
	case key.Matches(msg, m.Keys.FilterActive):
		m.setFilter(model.FilterActive)
	case key.Matches(msg, m.Keys.FilterDone):
		m.setFilter(model.FilterCompleted)
	case key.Matches(msg, m.Keys.NextFilter):
		m.setFilter(m.snap.Filter.Next())
	case key.Matches(msg, m.Keys.PrevFilter):
		m.setFilter(m.snap.Filter.Prev())
	case key.Matches(msg, m.Keys.ClearCompleted):
		if m.snap.CompletedCount > 0 {
			n := m.snap.CompletedCount
			m.apply(m.store.ClearCompleted())
			m.Status = StatusBar{Text: fmt.Sprintf("cleared %d completed %s", n, pluralItems(n))}
		}
	}
	return m, nil
}

func (m Model) startEditing() (Model, tea.Cmd) {
	item, ok := m.selectedItem()
	if !ok {
		return m, nil
	}
	m.Editing = true
	m.EditingKey = item.Key
	m.apply(m.store.ToggleEditing(item.Key, true))
	m.editInput.SetValue(item.Text)
	m.editInput.CursorEnd()
	return m, m.editInput.Focus()
}

func (m Model) handleEditKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Submit):
		itemKey := m.EditingKey
		m.store.UpdateItem(itemKey, m.editInput.Value())
		m.stopEditing(itemKey)
		m.Status = StatusBar{Text: "item updated"}
		return m, nil
	case key.Matches(msg, m.Keys.Cancel):
		m.stopEditing(m.EditingKey)
		return m, nil
	}
	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	return m, cmd
}

func (m *Model) stopEditing(itemKey int64) {
	m.Editing = false
	m.EditingKey = 0
	m.editInput.Blur()
	m.editInput.SetValue("")
	m.apply(m.store.ToggleEditing(itemKey, false))
}

func (m *Model) addItem(text string) {
	before := len(m.snap.Items)
	m.apply(m.store.AddItem(text))
	if len(m.snap.Items) > before {
		m.syncInputs()
		m.Status = StatusBar{Text: "item added"}
	}
}

// syncInputs copies store-owned input text back into the header field.
func (m *Model) syncInputs() {
	if m.newInput.Value() != m.snap.InputValue {
		m.newInput.SetValue(m.snap.InputValue)
	}
}

func (m *Model) toggleAll() {
	m.apply(m.store.ToggleAllComplete())
}

func (m *Model) setFilter(f model.Filter) {
	m.apply(m.store.SetFilter(f))
	m.Cursor = 0
}

func (m *Model) focusList() {
	m.Focus = FocusList
	m.newInput.Blur()
	m.clampCursor()
}

func (m *Model) focusInput() {
	m.Focus = FocusInput
	m.newInput.Focus()
}

func (m *Model) apply(snap state.Snapshot) {
	m.snap = snap
	m.clampCursor()
}

func (m Model) selectedItem() (model.Item, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.snap.Visible) {
		return model.Item{}, false
	}
	return m.snap.Visible[m.Cursor], true
}
