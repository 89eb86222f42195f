package update

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/state"
)

type Focus string

const (
	FocusInput Focus = "input"
	FocusList  Focus = "list"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// Loader restores the persisted list. It must not fail; an empty list is a
// valid result.
type Loader interface {
	Load(ctx context.Context) []model.Item
}

type LoaderFunc func(ctx context.Context) []model.Item

func (f LoaderFunc) Load(ctx context.Context) []model.Item { return f(ctx) }

type Options struct {
	Context context.Context
	Store   *state.Store
	Loader  Loader
	Width   int
	Height  int
}

// Model is the Bubble Tea presentation of a state.Store. It never owns item
// data itself; every render reads the latest snapshot.
type Model struct {
	Focus       Focus
	Cursor      int
	Editing     bool
	EditingKey  int64
	Palette     CommandPaletteState
	HelpVisible bool
	Status      StatusBar
	Keys        KeyMap
	Quitting    bool

	ctx    context.Context
	store  *state.Store
	loader Loader
	snap   state.Snapshot
	width  int
	height int

	newInput     textinput.Model
	editInput    textinput.Model
	commandInput textinput.Model
	loadSpinner  spinner.Model
	helpModel    help.Model
	listViewport viewport.Model
}

type ItemsLoadedMsg struct {
	Items []model.Item
}

// SnapshotMsg carries a snapshot published by the store. Snapshots older than
// the one already shown are ignored.
type SnapshotMsg struct {
	Snapshot state.Snapshot
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

const (
	defaultWidth      = 60
	defaultListHeight = 10
	// title, panel borders, header, footer, keys line
	chromeHeight = 7
)

func NewModel(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	store := opts.Store
	if store == nil {
		store = state.New(nil)
	}
	m := Model{
		Focus:  FocusInput,
		Keys:   DefaultKeyMap(),
		ctx:    ctx,
		store:  store,
		loader: opts.Loader,
		snap:   store.Snapshot(),
		width:  opts.Width,
		height: opts.Height,
	}
	m.initBubbleComponents()
	m.syncList()
	return m
}

// Snapshot returns the state the model last rendered from.
func (m Model) Snapshot() state.Snapshot {
	return m.snap
}

func (m *Model) initBubbleComponents() {
	m.newInput = textinput.New()
	m.newInput.Prompt = ""
	m.newInput.Placeholder = "What needs to be done?"
	m.newInput.CharLimit = 256
	m.newInput.Width = 48
	m.newInput.SetValue(m.snap.InputValue)
	m.newInput.Focus()

	m.editInput = textinput.New()
	m.editInput.Prompt = "edit> "
	m.editInput.CharLimit = 256
	m.editInput.Width = 44

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.loadSpinner = spinner.New()
	m.loadSpinner.Spinner = spinner.Dot

	m.helpModel = help.New()

	m.listViewport = viewport.New(m.contentWidth(), m.listHeight())
}

func (m Model) contentWidth() int {
	if m.width > 4 {
		return m.width - 4
	}
	return defaultWidth
}

func (m Model) listHeight() int {
	if m.height <= 0 {
		return defaultListHeight
	}
	return max(m.height-chromeHeight, 3)
}
