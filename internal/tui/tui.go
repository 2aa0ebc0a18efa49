package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/Makepad-fr/pantry/internal/auth"
	"github.com/Makepad-fr/pantry/internal/model"
	"github.com/Makepad-fr/pantry/internal/persist"
	"github.com/Makepad-fr/pantry/internal/shopping"
	"github.com/Makepad-fr/pantry/internal/suggest"
	"github.com/Makepad-fr/pantry/internal/ui"
	"github.com/Makepad-fr/pantry/internal/watch"
)

// Options wires the interactive list to its collaborators.
type Options struct {
	Store   *shopping.Store
	Saver   *persist.Saver // may be nil
	User    *auth.User     // nil: suggestions are refused
	Watcher *watch.Watcher // may be nil
	Log     *zap.Logger
}

// listItem adapts model.Item to bubbles/list.Item
type listItem struct{ model.Item }

func (i listItem) Title() string       { return i.Name }
func (i listItem) Description() string { return i.Quantity }
func (i listItem) FilterValue() string { return i.Name }

// reloadMsg carries a payload another writer stored.
type reloadMsg []byte

type modelTUI struct {
	store *shopping.Store
	saver *persist.Saver
	user  *auth.User
	log   *zap.Logger

	list           list.Model
	filter         shopping.Filter
	includeChecked bool

	// Inline add
	adding      bool
	ti          textinput.Model
	addCategory model.Category

	status string
	width  int
	height int
}

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	prefix := "  "
	if index == m.Index() {
		prefix = ui.Current().Selected.Render("> ")
	}
	fmt.Fprintln(w, prefix+ui.ItemLine(it.Item))
}

var (
	toggleBind  = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "check"))
	addBind     = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	removeBind  = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove"))
	clearBind   = key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear purchased"))
	filterBind  = key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter"))
	hideBind    = key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "hide/show purchased"))
	suggestBind = key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "AI suggest"))
)

func newModel(opt Options) modelTUI {
	log := opt.Log
	if log == nil {
		log = zap.NewNop()
	}

	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = ui.Current().Title
	l.Styles.HelpStyle = ui.Current().Help
	l.Styles.PaginationStyle = ui.Current().Help
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")
	// keys we use ourselves
	l.KeyMap.NextPage.SetKeys("right", "l", "pgdown")
	l.KeyMap.PrevPage.SetKeys("left", "pgup")

	binds := []key.Binding{toggleBind, addBind, removeBind, clearBind, filterBind, hideBind, suggestBind}
	l.AdditionalShortHelpKeys = func() []key.Binding { return binds[:3] }
	l.AdditionalFullHelpKeys = func() []key.Binding { return binds }

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Add item..."
	ti.CharLimit = 200

	m := modelTUI{
		store:          opt.Store,
		saver:          opt.Saver,
		user:           opt.User,
		log:            log,
		list:           l,
		filter:         shopping.FilterAll,
		includeChecked: true,
		ti:             ti,
		addCategory:    model.CategoryVegetables,
		width:          80,
		height:         24,
	}
	m.refresh()
	return m
}

// Run starts the interactive list and blocks until the user quits.
// Every change is written through the store's observers as it happens.
func Run(ctx context.Context, opt Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newModel(opt), tea.WithAltScreen(), tea.WithContext(ctx))

	if opt.Watcher != nil {
		go func() {
			err := opt.Watcher.Run(ctx, func(b []byte) { p.Send(reloadMsg(b)) })
			if err != nil && !errors.Is(err, context.Canceled) && opt.Log != nil {
				opt.Log.Warn("watcher stopped", zap.Error(err))
			}
		}()
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// refresh rebuilds the visible rows and the title from the store.
func (m *modelTUI) refresh() {
	items := m.store.Items()
	view := shopping.Project(items, m.filter, m.includeChecked)
	li := make([]list.Item, 0, len(view))
	for _, it := range view {
		li = append(li, listItem{it})
	}
	m.list.SetItems(li)
	m.list.Title = ui.Header(shopping.Summarize(items))
}

func (m *modelTUI) selected() (model.Item, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.Item{}, false
	}
	return it.Item, true
}

// Update and View implement Bubble Tea's Model on modelTUI
func (m modelTUI) Init() tea.Cmd { return nil }

func (m modelTUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case reloadMsg:
		return m.reload(msg), nil
	}

	if m.adding {
		return m.updateAdding(msg)
	}

	// let the list's own filter input have the keys while it is open
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		m.status = ""
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			if msg.String() == "esc" && m.list.FilterState() == list.FilterApplied {
				break
			}
			return m, tea.Quit
		case " ":
			if it, ok := m.selected(); ok {
				m.store.Toggle(it.ID)
				m.refresh()
			}
			return m, nil
		case "d":
			if it, ok := m.selected(); ok {
				m.store.Remove(it.ID)
				m.refresh()
				m.status = "removed " + it.Name
			}
			return m, nil
		case "c":
			n := m.store.ClearChecked()
			m.refresh()
			m.status = fmt.Sprintf("cleared %d purchased", n)
			return m, nil
		case "f":
			m.filter = m.filter.Next()
			m.refresh()
			m.list.ResetSelected()
			return m, nil
		case "h":
			m.includeChecked = !m.includeChecked
			m.refresh()
			return m, nil
		case "s":
			added, err := suggest.Suggest(m.store, m.user)
			if err != nil {
				m.status = err.Error() + " (pantry auth login)"
				return m, nil
			}
			m.refresh()
			m.status = fmt.Sprintf("added %d suggestions", len(added))
			return m, nil
		case "a":
			m.adding = true
			m.ti.SetValue("")
			m.status = ""
			cmd := m.ti.Focus()
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m modelTUI) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if x, ok := msg.(tea.KeyMsg); ok {
		switch x.String() {
		case "enter":
			it, err := m.store.Add(model.Draft{
				Name:     m.ti.Value(),
				Quantity: "1",
				Category: m.addCategory,
				Priority: model.PriorityMedium,
			})
			if errors.Is(err, model.ErrEmptyName) {
				m.status = "Name cannot be empty"
				return m, nil
			}
			if err != nil {
				m.status = err.Error()
				return m, nil
			}
			m.refresh()
			m.status = "added " + it.Name
			m.ti.SetValue("")
			m.ti.Blur()
			m.adding = false
			return m, nil
		case "tab":
			m.addCategory = nextCategory(m.addCategory)
			return m, nil
		case "esc":
			m.adding = false
			m.status = ""
			m.ti.SetValue("")
			m.ti.Blur()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

// reload applies a list written by someone else. Last write wins.
func (m modelTUI) reload(b []byte) modelTUI {
	if m.saver != nil && m.saver.Wrote(b) {
		return m
	}
	items, err := persist.DecodeItems(b)
	if err != nil {
		// mid-write or foreign payload; the next event will do
		m.log.Debug("ignoring unreadable list change", zap.Error(err))
		return m
	}
	if m.saver != nil {
		m.saver.Remember(b)
	}
	m.store.ReplaceAll(items)
	m.refresh()
	m.status = "list updated elsewhere"
	return m
}

func nextCategory(c model.Category) model.Category {
	all := model.Categories()
	for i, x := range all {
		if x == c {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

func (m modelTUI) View() string {
	t := ui.Current()
	footer := []string{
		fmt.Sprintf("%s %s   %s %s",
			t.Accent.Render("Filter:"), m.filter.Label(),
			t.Accent.Render("Purchased:"), map[bool]string{true: "shown", false: "hidden"}[m.includeChecked]),
		t.Muted.Render(ui.ProgressBar(shopping.CompletionPercentage(m.store.Items()), 28)),
	}
	if m.status != "" {
		footer = append(footer, t.Pending.Render(m.status))
	}

	listHeight := m.height - 4 - len(footer)
	if m.adding {
		listHeight -= 4
	}
	if listHeight < 3 {
		listHeight = 3
	}
	m.list.SetSize(m.width-4, listHeight)

	content := m.list.View()
	if m.adding {
		bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.BorderColor).Padding(0, 1)
		title := fmt.Sprintf("Add item  %s  %s", m.addCategory.Label(), t.Muted.Render("(tab: category, enter: add, esc: cancel)"))
		content += "\n" + bar.Render(title+"\n"+m.ti.View())
	}
	content += "\n" + strings.Join(footer, "\n")
	return ui.Panel([]string{content})
}
