package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/pantry/internal/auth"
	"github.com/Makepad-fr/pantry/internal/model"
	"github.com/Makepad-fr/pantry/internal/persist"
	"github.com/Makepad-fr/pantry/internal/shopping"
	"github.com/Makepad-fr/pantry/internal/store/jsonstore"
)

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m modelTUI, msgs ...tea.Msg) modelTUI {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(modelTUI)
		require.True(t, ok)
	}
	return m
}

func visible(m modelTUI) []string {
	var out []string
	for _, it := range m.list.Items() {
		out = append(out, it.(listItem).Name)
	}
	return out
}

func newTestModel(user *auth.User) (modelTUI, *shopping.Store) {
	s := shopping.New(persist.DefaultItems())
	return newModel(Options{Store: s, User: user}), s
}

func TestTUI_Toggle(t *testing.T) {
	m, s := newTestModel(nil)
	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace})
	it, _ := s.Get(1)
	assert.True(t, it.Checked)
	assert.True(t, m.list.Items()[0].(listItem).Checked)
}

func TestTUI_RemoveAndClear(t *testing.T) {
	m, s := newTestModel(nil)
	m = send(t, m, keys("d"))
	assert.Equal(t, 3, s.Len())
	_, ok := s.Get(1)
	assert.False(t, ok)

	m = send(t, m, keys("c"))
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"Chicken Breast", "Greek Yogurt"}, visible(m))
}

func TestTUI_FilterAndHide(t *testing.T) {
	m, _ := newTestModel(nil)

	m = send(t, m, keys("f")) // unchecked
	assert.Equal(t, shopping.FilterUnchecked, m.filter)
	assert.Equal(t, []string{"Bell Peppers", "Chicken Breast", "Greek Yogurt"}, visible(m))

	m = send(t, m, keys("f")) // checked
	assert.Equal(t, []string{"Basmati Rice"}, visible(m))

	m = send(t, m, keys("h")) // hide purchased
	assert.Empty(t, visible(m))
}

func TestTUI_Add(t *testing.T) {
	m, s := newTestModel(nil)
	m = send(t, m, keys("a"))
	require.True(t, m.adding)

	// empty name is refused and add mode stays open
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.adding)
	assert.Equal(t, "Name cannot be empty", m.status)

	m = send(t, m, keys("Milk"), tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.adding)
	require.Equal(t, 5, s.Len())
	last := s.Items()[4]
	assert.Equal(t, "Milk", last.Name)
	assert.Equal(t, model.CategoryProtein, last.Category)
	assert.Equal(t, model.PriorityMedium, last.Priority)
}

func TestTUI_SuggestNeedsLogin(t *testing.T) {
	m, s := newTestModel(nil)
	m = send(t, m, keys("s"))
	assert.Equal(t, 4, s.Len())
	assert.Contains(t, m.status, "login")

	m, s = newTestModel(&auth.User{Name: "ada", Email: "ada@example.com"})
	m = send(t, m, keys("s"))
	assert.Equal(t, 7, s.Len())
	assert.Equal(t, "added 3 suggestions", m.status)
}

func TestTUI_Reload(t *testing.T) {
	kv, err := jsonstore.Open(t.TempDir())
	require.NoError(t, err)
	saver := persist.NewSaver(kv, nil)
	s := shopping.New(saver.Load(context.Background()), saver)
	m := newModel(Options{Store: s, Saver: saver})

	// our own write is an echo
	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace})
	own, ok, err := kv.Get(context.Background(), persist.ItemsKey)
	require.NoError(t, err)
	require.True(t, ok)
	m = send(t, m, reloadMsg(own))
	assert.Empty(t, m.status)

	// garbage is ignored
	m = send(t, m, reloadMsg(`{{`))
	assert.Equal(t, 4, s.Len())

	// another writer's list replaces ours
	other, err := persist.EncodeItems([]model.Item{{ID: 40, Name: "Lemons", Quantity: "3", Category: model.CategoryFruits}})
	require.NoError(t, err)
	m = send(t, m, reloadMsg(other))
	assert.Equal(t, []string{"Lemons"}, visible(m))
	assert.Equal(t, "list updated elsewhere", m.status)

	// and is not written back
	stored, _, err := kv.Get(context.Background(), persist.ItemsKey)
	require.NoError(t, err)
	assert.Equal(t, own, stored)
}

func TestTUI_View(t *testing.T) {
	m, _ := newTestModel(nil)
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	v := m.View()
	assert.Contains(t, v, "Smart Shopping List")
	assert.Contains(t, v, "Filter:")
	assert.Contains(t, v, "25%")
}
