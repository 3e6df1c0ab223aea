package tui

import (
	"context"
	"fmt"
	"strings"

	"goflix/models"
	"goflix/views"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// visibleItems is how many titles of a row are drawn around the cursor
const visibleItems = 5

// Model is the browse-mode application state.
type Model struct {
	ctx     context.Context
	newHome func() *views.Home

	home    *views.Home
	state   views.HomeState
	loading bool
	busy    bool

	row   int
	col   int
	width int

	help help.Model
	keys keyMap
}

type mountedMsg struct {
	home *views.Home
}

// rowChangedMsg reports that a click or endpoint change finished.
type rowChangedMsg struct{}

// NewModel creates the model; newHome builds each unmounted home screen.
func NewModel(ctx context.Context, newHome func() *views.Home) Model {
	return Model{
		ctx:     ctx,
		newHome: newHome,
		loading: true,
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.mount()
}

func (m Model) mount() tea.Cmd {
	ctx, newHome := m.ctx, m.newHome
	return func() tea.Msg {
		home := newHome()
		home.Mount(ctx)
		return mountedMsg{home: home}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case mountedMsg:
		m.home = msg.home
		m.loading = false
		m.refresh()
		return m, nil

	case rowChangedMsg:
		m.busy = false
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.loading || m.busy || m.home == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.up):
		if m.row > 0 {
			m.row--
			m.col = 0
		}
	case key.Matches(msg, m.keys.down):
		if m.row < len(m.state.Rows)-1 {
			m.row++
			m.col = 0
		}
	case key.Matches(msg, m.keys.left):
		if m.col > 0 {
			m.col--
		}
	case key.Matches(msg, m.keys.right):
		if m.col < len(m.currentRow().Movies)-1 {
			m.col++
		}
	case key.Matches(msg, m.keys.enter):
		return m.click()
	case key.Matches(msg, m.keys.genre):
		return m.nextGenre()
	case key.Matches(msg, m.keys.reload):
		m.loading = true
		return m, m.mount()
	}
	return m, nil
}

// click toggles the trailer of the focused row. A row with no items still
// receives the click so an open trailer can be closed.
func (m Model) click() (tea.Model, tea.Cmd) {
	row, err := m.home.Row(m.row)
	if err != nil {
		return m, nil
	}
	if !m.currentRow().TrailerOpen() && len(m.currentRow().Movies) == 0 {
		return m, nil
	}

	m.busy = true
	ctx, col := m.ctx, m.col
	return m, func() tea.Msg {
		_ = row.Click(ctx, col)
		return rowChangedMsg{}
	}
}

// nextGenre moves the genre row on to the following genre.
func (m Model) nextGenre() (tea.Model, tea.Cmd) {
	current := m.currentRow()
	if current.Key != models.GenreRow.Key {
		return m, nil
	}
	row, err := m.home.Row(m.row)
	if err != nil {
		return m, nil
	}

	next := models.Genres[0].Endpoint
	for i, g := range models.Genres {
		if g.Endpoint == current.FetchURL {
			next = models.Genres[(i+1)%len(models.Genres)].Endpoint
			break
		}
	}

	m.busy = true
	m.col = 0
	ctx := m.ctx
	return m, func() tea.Msg {
		row.SetFetchURL(ctx, next)
		return rowChangedMsg{}
	}
}

func (m *Model) refresh() {
	if m.home == nil {
		return
	}
	m.state = m.home.Snapshot()

	if m.row >= len(m.state.Rows) {
		m.row = max(len(m.state.Rows)-1, 0)
	}
	if n := len(m.currentRow().Movies); m.col >= n {
		m.col = max(n-1, 0)
	}
}

func (m Model) currentRow() views.RowState {
	if m.row < 0 || m.row >= len(m.state.Rows) {
		return views.RowState{}
	}
	return m.state.Rows[m.row]
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(styles.logo.Render("GOFLIX"))
	sb.WriteString("\n")

	if m.loading {
		sb.WriteString("Loading…\n")
		return sb.String()
	}

	if m.state.Banner.Ready() {
		sb.WriteString(styles.title.Render(m.state.Banner.Title()))
		sb.WriteString("\n")
		sb.WriteString(styles.synopsis.Render(m.state.Banner.Synopsis()))
		sb.WriteString("\n")
	}

	for i, row := range m.state.Rows {
		sb.WriteString(m.renderRow(i, row))
	}

	sb.WriteString("\n")
	sb.WriteString(styles.help.Render(m.help.View(m.keys)))
	return sb.String()
}

func (m Model) renderRow(i int, row views.RowState) string {
	var sb strings.Builder

	marker := "  "
	if i == m.row {
		marker = "> "
	}
	title := row.Title
	if row.Key == models.GenreRow.Key {
		title = fmt.Sprintf("%s (%s)", title, genreLabel(row.FetchURL))
	}
	sb.WriteString(marker + styles.title.Render(title) + "\n")

	if len(row.Movies) == 0 {
		sb.WriteString("    " + styles.item.Render("nothing to show") + "\n")
		return sb.String()
	}

	start, end := window(len(row.Movies), m.col, visibleItems)
	if i != m.row {
		start, end = 0, min(len(row.Movies), visibleItems)
	}

	cells := make([]string, 0, end-start)
	for j := start; j < end; j++ {
		name := models.Truncate(row.Movies[j].DisplayTitle(), 24)
		if i == m.row && j == m.col {
			cells = append(cells, styles.selected.Render(name))
		} else {
			cells = append(cells, styles.item.Render(name))
		}
	}
	sb.WriteString("    " + strings.Join(cells, " ") + "\n")

	if row.TrailerOpen() {
		sb.WriteString("    " + styles.trailer.Render("▶ https://www.youtube.com/watch?v="+row.TrailerID) + "\n")
	}
	return sb.String()
}

// window returns the [start, end) span of size n around cursor within total.
func window(total, cursor, n int) (int, int) {
	if total <= n {
		return 0, total
	}
	start := cursor - n/2
	if start < 0 {
		start = 0
	}
	if start+n > total {
		start = total - n
	}
	return start, start + n
}

func genreLabel(endpoint string) string {
	for _, g := range models.Genres {
		if g.Endpoint == endpoint {
			return g.Label
		}
	}
	return "custom"
}
