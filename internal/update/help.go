package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/tasklist/internal/views"
)

type KeyMap struct {
	Up             key.Binding
	Down           key.Binding
	SwitchFocus    key.Binding
	Submit         key.Binding
	ToggleComplete key.Binding
	ToggleAll      key.Binding
	Edit           key.Binding
	Cancel         key.Binding
	Remove         key.Binding
	FilterAll      key.Binding
	FilterActive   key.Binding
	FilterDone     key.Binding
	NextFilter     key.Binding
	PrevFilter     key.Binding
	ClearCompleted key.Binding
	Palette        key.Binding
	Help           key.Binding
	Quit           key.Binding
	ForceQuit      key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:             key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "move up")),
		Down:           key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "move down")),
		SwitchFocus:    key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "input/list")),
		Submit:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add / save")),
		ToggleComplete: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle done")),
		ToggleAll:      key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "toggle all")),
		Edit:           key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Cancel:         key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Remove:         key.NewBinding(key.WithKeys("d", "x", "delete"), key.WithHelp("d/x", "remove")),
		FilterAll:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		FilterActive:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "active")),
		FilterDone:     key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "completed")),
		NextFilter:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next filter")),
		PrevFilter:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev filter")),
		ClearCompleted: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear completed")),
		Palette:        key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "command")),
		Help:           key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:           key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:      key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SwitchFocus, k.ToggleComplete, k.Edit, k.Remove, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.SwitchFocus, k.Submit},
		{k.ToggleComplete, k.ToggleAll, k.Edit, k.Remove},
		{k.FilterAll, k.FilterActive, k.FilterDone, k.ClearCompleted},
		{k.Palette, k.Help, k.Quit},
	}
}

var paletteCommands = []string{
	"add <text>",
	"done <n> / undo <n>",
	"edit <n> <text>",
	"rm <n>",
	"filter all|active|completed",
	"clear / toggle-all",
}

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	h := m.helpModel
	h.ShowAll = true
	plain := make([]string, 0, len(paletteCommands))
	for _, c := range paletteCommands {
		plain = append(plain, fmt.Sprintf("- /%s", c))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Bindings: plain,
		HelpView: h.View(m.Keys),
	})
}

func (m Model) keysLine() string {
	return m.helpModel.View(m.Keys)
}
