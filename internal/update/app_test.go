package update

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/state"
)

type saveLog struct {
	calls int
	last  []model.Item
}

func (s *saveLog) Save(items []model.Item) {
	s.calls++
	s.last = model.CloneItems(items)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyOf(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func newLoadedModel(t *testing.T, items ...model.Item) (Model, *saveLog) {
	t.Helper()
	saves := &saveLog{}
	m := NewModel(Options{Store: state.New(saves)})
	m = send(t, m, ItemsLoadedMsg{Items: items})
	require.False(t, m.Snapshot().Loading, "loading should finish")
	return m, saves
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestNewModelDefaults(t *testing.T) {
	m := NewModel(Options{})
	assert.Equal(t, FocusInput, m.Focus)
	assert.True(t, m.Snapshot().Loading)
	assert.Equal(t, model.FilterAll, m.Snapshot().Filter)
	assert.Equal(t, []string{"q"}, m.Keys.Quit.Keys())
	assert.NotNil(t, m.Init(), "init should start loading")
}

func TestLoadingIgnoresKeysButAllowsQuit(t *testing.T) {
	m := NewModel(Options{})
	m = send(t, m, runes("x"), keyOf(tea.KeyEnter))
	assert.Empty(t, m.newInput.Value())
	assert.Empty(t, m.Snapshot().Items)

	updated, cmd := m.Update(runes("q"))
	next := updated.(Model)
	assert.True(t, next.Quitting)
	assert.True(t, isQuit(cmd))
	assert.Empty(t, next.View())
}

func TestCtrlCAlwaysQuits(t *testing.T) {
	m, _ := newLoadedModel(t)
	_, cmd := m.Update(keyOf(tea.KeyCtrlC))
	assert.True(t, isQuit(cmd))
}

func TestItemsLoadedFinishesLoading(t *testing.T) {
	m, saves := newLoadedModel(t,
		model.Item{Key: 1, Text: "a"},
		model.Item{Key: 2, Text: "b", Complete: true},
	)
	snap := m.Snapshot()
	assert.Len(t, snap.Items, 2)
	assert.Equal(t, 1, snap.ActiveCount)
	assert.Equal(t, 1, snap.CompletedCount)
	assert.Equal(t, "loaded 2 items", m.Status.Text)
	assert.Zero(t, saves.calls, "load must not save")
}

func TestLoadItemsCmd(t *testing.T) {
	loader := LoaderFunc(func(context.Context) []model.Item {
		return []model.Item{{Key: 7, Text: "restored"}}
	})
	msg := loadItemsCmd(context.Background(), loader)()
	loaded, ok := msg.(ItemsLoadedMsg)
	require.True(t, ok, "unexpected message %#v", msg)
	assert.Equal(t, []model.Item{{Key: 7, Text: "restored"}}, loaded.Items)

	empty := loadItemsCmd(context.Background(), nil)().(ItemsLoadedMsg)
	assert.Empty(t, empty.Items)
}

func TestTypingAndEnterAddsItem(t *testing.T) {
	m, saves := newLoadedModel(t)
	m = send(t, m, runes("buy milk"))
	assert.Equal(t, "buy milk", m.Snapshot().InputValue)
	assert.Zero(t, saves.calls, "typing must not save")

	m = send(t, m, keyOf(tea.KeyEnter))
	snap := m.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "buy milk", snap.Items[0].Text)
	assert.False(t, snap.Items[0].Complete)
	assert.Empty(t, snap.InputValue)
	assert.Empty(t, m.newInput.Value())
	assert.Equal(t, 1, saves.calls)
	assert.Len(t, saves.last, 1)
}

func TestEnterWithEmptyInputIsNoop(t *testing.T) {
	m, saves := newLoadedModel(t)
	m = send(t, m, keyOf(tea.KeyEnter))
	assert.Empty(t, m.Snapshot().Items)
	assert.Zero(t, saves.calls)
}

func TestTabThenSpaceTogglesSelected(t *testing.T) {
	m, _ := newLoadedModel(t, model.Item{Key: 1, Text: "a"}, model.Item{Key: 2, Text: "b"})
	m = send(t, m, keyOf(tea.KeyTab))
	require.Equal(t, FocusList, m.Focus)

	m = send(t, m, runes("j"), keyOf(tea.KeySpace))
	items := m.Snapshot().Items
	assert.False(t, items[0].Complete)
	assert.True(t, items[1].Complete)

	m = send(t, m, keyOf(tea.KeySpace))
	assert.False(t, m.Snapshot().Items[1].Complete, "second toggle reopens")

	m = send(t, m, runes("i"))
	assert.Equal(t, FocusInput, m.Focus)
}

func TestCursorStaysInBounds(t *testing.T) {
	m, _ := newLoadedModel(t, model.Item{Key: 1, Text: "a"})
	m = send(t, m, keyOf(tea.KeyTab), runes("k"), runes("k"), runes("j"), runes("j"))
	assert.Zero(t, m.Cursor)
}

func TestEditFlow(t *testing.T) {
	m, saves := newLoadedModel(t, model.Item{Key: 1, Text: "buy milk"})
	m = send(t, m, keyOf(tea.KeyTab), runes("e"))
	require.True(t, m.Editing)
	assert.Equal(t, int64(1), m.EditingKey)
	assert.True(t, m.Snapshot().Items[0].Editing)
	assert.Contains(t, m.View(), "edit>")

	m = send(t, m, runes(" today"), keyOf(tea.KeyEnter))
	item := m.Snapshot().Items[0]
	assert.Equal(t, "buy milk today", item.Text)
	assert.False(t, item.Editing)
	assert.False(t, m.Editing)
	assert.Equal(t, "buy milk today", saves.last[0].Text)
}

func TestEditRowLoadedWithoutKey(t *testing.T) {
	m, _ := newLoadedModel(t, model.Item{Key: 0, Text: "legacy"})
	m = send(t, m, keyOf(tea.KeyTab), runes("e"))
	require.True(t, m.Editing, "keyless rows must still enter edit mode")

	// "x" is the remove key in the list; here it must reach the editor.
	m = send(t, m, runes("x"), keyOf(tea.KeyEnter))
	items := m.Snapshot().Items
	require.Len(t, items, 1)
	assert.Equal(t, "legacyx", items[0].Text)
	assert.Positive(t, items[0].Key)
	assert.False(t, items[0].Editing)
}

func TestEditCancelKeepsText(t *testing.T) {
	m, _ := newLoadedModel(t, model.Item{Key: 1, Text: "keep"})
	m = send(t, m, keyOf(tea.KeyTab), keyOf(tea.KeyEnter), runes("xyz"), keyOf(tea.KeyEsc))
	item := m.Snapshot().Items[0]
	assert.Equal(t, "keep", item.Text)
	assert.False(t, item.Editing)
	assert.False(t, m.Editing)
}

func TestRemoveSelected(t *testing.T) {
	m, _ := newLoadedModel(t, model.Item{Key: 1, Text: "a"}, model.Item{Key: 2, Text: "b"})
	m = send(t, m, keyOf(tea.KeyTab), runes("j"), runes("d"))
	assert.Equal(t, []model.Item{{Key: 1, Text: "a"}}, m.Snapshot().Items)
	assert.Zero(t, m.Cursor, "cursor follows the shrinking list")
}

func TestFilterKeys(t *testing.T) {
	m, saves := newLoadedModel(t, model.Item{Key: 1, Text: "a"}, model.Item{Key: 2, Text: "b", Complete: true})
	m = send(t, m, keyOf(tea.KeyTab), runes("2"))
	snap := m.Snapshot()
	assert.Equal(t, model.FilterActive, snap.Filter)
	require.Len(t, snap.Visible, 1)
	assert.Equal(t, int64(1), snap.Visible[0].Key)

	m = send(t, m, keyOf(tea.KeyRight))
	assert.Equal(t, model.FilterCompleted, m.Snapshot().Filter)

	m = send(t, m, keyOf(tea.KeyLeft), keyOf(tea.KeyLeft))
	assert.Equal(t, model.FilterAll, m.Snapshot().Filter)

	m = send(t, m, runes("3"))
	require.Len(t, m.Snapshot().Visible, 1)
	assert.Equal(t, int64(2), m.Snapshot().Visible[0].Key)
	assert.Zero(t, saves.calls, "filter changes must not save")
}

func TestClearCompletedKey(t *testing.T) {
	m, _ := newLoadedModel(t, model.Item{Key: 1, Text: "a"}, model.Item{Key: 2, Text: "b", Complete: true})
	assert.Contains(t, m.View(), "Clear completed")

	m = send(t, m, keyOf(tea.KeyTab), runes("C"))
	assert.Equal(t, []model.Item{{Key: 1, Text: "a"}}, m.Snapshot().Items)
	assert.Equal(t, "cleared 1 completed item", m.Status.Text)
}

func TestCtrlATogglesAllFromInput(t *testing.T) {
	m, _ := newLoadedModel(t, model.Item{Key: 1, Text: "a"}, model.Item{Key: 2, Text: "b", Complete: true})
	m = send(t, m, keyOf(tea.KeyCtrlA))
	snap := m.Snapshot()
	assert.True(t, snap.AllComplete)
	assert.Zero(t, snap.ActiveCount)

	m = send(t, m, keyOf(tea.KeyCtrlA))
	assert.Zero(t, m.Snapshot().CompletedCount)
}

func TestPaletteCommands(t *testing.T) {
	m, _ := newLoadedModel(t, model.Item{Key: 1, Text: "a"}, model.Item{Key: 2, Text: "b"})
	m = send(t, m, keyOf(tea.KeyTab), runes("/"))
	require.True(t, m.Palette.Active)

	m = send(t, m, runes("done 2"), keyOf(tea.KeyEnter))
	assert.False(t, m.Palette.Active, "palette closes after running")
	assert.True(t, m.Snapshot().Items[1].Complete)
	assert.False(t, m.Status.IsError, m.Status.Text)

	m = send(t, m, runes("/"), runes("edit 1 alpha"), keyOf(tea.KeyEnter))
	assert.Equal(t, "alpha", m.Snapshot().Items[0].Text)

	m = send(t, m, runes("/"), runes("filter completed"), keyOf(tea.KeyEnter))
	assert.Equal(t, model.FilterCompleted, m.Snapshot().Filter)

	// rows are relative to the visible list
	m = send(t, m, runes("/"), runes("rm 1"), keyOf(tea.KeyEnter))
	items := m.Snapshot().Items
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), items[0].Key)

	m = send(t, m, runes("/"), runes("add c"), keyOf(tea.KeyEnter))
	items = m.Snapshot().Items
	require.Len(t, items, 2)
	assert.Equal(t, "c", items[1].Text)
}

func TestPaletteAddKeepsHeaderInSync(t *testing.T) {
	m, _ := newLoadedModel(t)
	m = send(t, m, runes("foo"), keyOf(tea.KeyTab), runes("/"), runes("add bar"), keyOf(tea.KeyEnter))

	require.Len(t, m.Snapshot().Items, 1)
	assert.Equal(t, m.Snapshot().InputValue, m.newInput.Value())
}

func TestPaletteErrors(t *testing.T) {
	m, _ := newLoadedModel(t, model.Item{Key: 1, Text: "a"})
	m = send(t, m, keyOf(tea.KeyTab), runes("/"), runes("rm 9"), keyOf(tea.KeyEnter))
	assert.True(t, m.Status.IsError)
	assert.Contains(t, m.Status.Text, "no row 9")
	assert.Len(t, m.Snapshot().Items, 1, "no change on error")

	m = send(t, m, runes("/"), runes("bogus"), keyOf(tea.KeyEnter))
	assert.True(t, m.Status.IsError)
	assert.Contains(t, m.View(), "error: ")

	m = send(t, m, runes("/"), keyOf(tea.KeyEsc))
	assert.False(t, m.Palette.Active)
	assert.False(t, m.Status.IsError)
}

func TestHelpToggle(t *testing.T) {
	m, _ := newLoadedModel(t)
	m = send(t, m, keyOf(tea.KeyTab), runes("?"))
	assert.True(t, m.HelpVisible)
	assert.Contains(t, m.View(), "/filter all")

	m = send(t, m, runes("?"))
	assert.False(t, m.HelpVisible)
}

func TestSnapshotMsgAppliesNewerOnly(t *testing.T) {
	store := state.New(nil)
	m := NewModel(Options{Store: store})
	m = send(t, m, ItemsLoadedMsg{})

	stale := m.Snapshot()
	newer := store.AddItem("from elsewhere")
	m = send(t, m, SnapshotMsg{Snapshot: newer})
	require.Len(t, m.Snapshot().Items, 1)
	assert.Contains(t, m.View(), "from elsewhere")

	m = send(t, m, SnapshotMsg{Snapshot: stale})
	assert.Len(t, m.Snapshot().Items, 1, "stale snapshot ignored")
}

func TestViewStates(t *testing.T) {
	loading := NewModel(Options{})
	assert.Contains(t, loading.View(), "loading")

	m, _ := newLoadedModel(t, model.Item{Key: 1, Text: "walk dog"})
	view := m.View()
	for _, want := range []string{"todos", "walk dog", "1 item left", "[1:All]"} {
		assert.Contains(t, view, want)
	}

	m = send(t, m, SetStatusMsg{Text: "ready"})
	assert.Equal(t, "ready", m.Status.Text)
	m = send(t, m, ClearStatusMsg{})
	assert.Empty(t, m.Status.Text)
}

func TestWindowResize(t *testing.T) {
	m, _ := newLoadedModel(t)
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Equal(t, 100, m.width)
	assert.Equal(t, 40, m.height)
	assert.Equal(t, m.listHeight(), m.listViewport.Height)
}

func TestScenarioThroughKeys(t *testing.T) {
	m, saves := newLoadedModel(t)
	m = send(t, m,
		runes("a"), keyOf(tea.KeyEnter),
		runes("b"), keyOf(tea.KeyEnter),
		runes("c"), keyOf(tea.KeyEnter),
		keyOf(tea.KeyTab), runes("j"), keyOf(tea.KeySpace),
		runes("2"),
	)
	visible := m.Snapshot().Visible
	require.Len(t, visible, 2)
	assert.Equal(t, "a", visible[0].Text)
	assert.Equal(t, "c", visible[1].Text)

	m = send(t, m, runes("1"), runes("C"))
	snap := m.Snapshot()
	assert.Len(t, snap.Items, 2)
	assert.Zero(t, snap.CompletedCount)
	require.Len(t, saves.last, 2)
	assert.Equal(t, "a", saves.last[0].Text)
	assert.Equal(t, "c", saves.last[1].Text)
}
