// Package tui provides the interactive terminal surface.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lepinkainen/marquee/internal/present"
	"github.com/lepinkainen/marquee/internal/search"
)

// DefaultDebounce is the pause after typing before a search starts.
const DefaultDebounce = 500 * time.Millisecond

// minDebouncedQuery is the query length that must be exceeded before typing
// schedules a search.
const minDebouncedQuery = 2

var runProgram = func(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m, tea.WithAltScreen()).Run()
}

type focusArea int

const (
	focusInput focusArea = iota
	focusTrending
	focusResults
)

// Options configures the interactive surface.
type Options struct {
	Debounce time.Duration
}

// Model is the bubbletea model driving the search screen.
type Model struct {
	ctx    context.Context
	orch   *search.Orchestrator
	screen *present.Screen

	input   textinput.Model
	spinner spinner.Model
	detail  viewport.Model

	focus         focusArea
	cursor        [2]int
	debounce      time.Duration
	debounceTag   int
	pendingDetail string
	width         int
	height        int
}

// NewModel creates the model for orch.
func NewModel(ctx context.Context, orch *search.Orchestrator, opts Options) *Model {
	ti := textinput.New()
	ti.Placeholder = "Search for a movie..."
	ti.Prompt = "> "
	ti.CharLimit = 120
	ti.Width = defaultWidth - 4
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = loaderStyle

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Model{
		ctx:      ctx,
		orch:     orch,
		screen:   present.NewScreen(),
		input:    ti,
		spinner:  sp,
		detail:   viewport.New(defaultWidth-4, defaultHeight-8),
		debounce: debounce,
		width:    defaultWidth,
		height:   defaultHeight,
	}
}

// Run starts the interactive surface and blocks until the user quits.
func Run(ctx context.Context, orch *search.Orchestrator, opts Options) error {
	if _, err := runProgram(NewModel(ctx, orch, opts)); err != nil {
		return fmt.Errorf("run terminal UI: %w", err)
	}
	return nil
}

// Init loads the trending grid.
func (m *Model) Init() tea.Cmd {
	m.orch.BeginTrending()
	m.screen.StartLoading()
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.trendingCmd())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.screen.Detail() != nil {
			return m, m.updateDetail(msg)
		}
		return m, m.updateKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = clamp(defaultWidth, msg.Width-4, 20)
		m.detail.Width = clamp(defaultWidth, msg.Width-4, 20)
		m.detail.Height = clamp(msg.Height, msg.Height-8, detailMinHeight)
		return m, nil

	case trendingMsg:
		m.screen.StopLoading()
		m.cursor[present.SurfaceTrending] = 0
		if token, shown := m.screen.ApplyTrending(msg.state); shown {
			return m, hideErrorCmd(token)
		}
		return m, nil

	case searchMsg:
		m.screen.StopLoading()
		state, applied := m.orch.Apply(msg.state)
		if !applied {
			return m, nil
		}
		m.cursor[present.SurfaceResults] = 0
		token, shown := m.screen.ApplySearch(state)
		if m.focus == focusResults && !m.screen.ResultsVisible() {
			m.focus = focusTrending
		}
		if shown {
			return m, hideErrorCmd(token)
		}
		return m, nil

	case debounceMsg:
		if msg.tag != m.debounceTag {
			return m, nil
		}
		return m, m.startSearch(msg.query)

	case detailMsg:
		m.screen.StopLoading()
		if msg.id != m.pendingDetail {
			return m, nil
		}
		m.pendingDetail = ""
		if msg.err != nil {
			m.orch.ClearSelection()
			return m, hideErrorCmd(m.screen.ShowError(search.DetailFailureMessage(msg.err)))
		}
		m.orch.SetSelected(msg.id)
		m.screen.RenderDetail(msg.detail, m.orch)
		m.refreshDetail()
		m.detail.GotoTop()
		return m, nil

	case hideErrorMsg:
		m.screen.HideError(msg.token)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) updateKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyTab:
		m.cycleFocus(1)
		return nil
	case tea.KeyShiftTab:
		m.cycleFocus(-1)
		return nil
	case tea.KeyEnter:
		if m.focus == focusInput {
			m.debounceTag++
			return m.startSearch(m.input.Value())
		}
		return m.openSelected()
	}

	if m.focus != focusInput {
		m.moveCursor(msg)
		return nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	value := m.input.Value()
	if value == before {
		return cmd
	}

	m.debounceTag++
	if shouldDebounce(value) {
		return tea.Batch(cmd, debounceCmd(m.debounce, m.debounceTag, value))
	}
	return cmd
}

// shouldDebounce counts the raw input, so trailing spaces count toward the
// threshold; the search itself trims the query.
func shouldDebounce(value string) bool {
	return utf8.RuneCountInString(value) > minDebouncedQuery
}

func (m *Model) updateDetail(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.Type == tea.KeyEsc:
		m.screen.CloseDetail()
		m.orch.ClearSelection()
		return nil
	case msg.Type == tea.KeyRunes && msg.String() == "f":
		if _, err := m.orch.ToggleFavorite(); err != nil {
			return hideErrorCmd(m.screen.ShowError(search.MessageFavoriteFailed))
		}
		m.screen.RefreshFavorite(m.orch)
		m.refreshDetail()
		return nil
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return cmd
}

func (m *Model) startSearch(query string) tea.Cmd {
	ticket, state := m.orch.Begin(query)
	if !ticket.Valid() {
		if token, shown := m.screen.ApplySearch(state); shown {
			return hideErrorCmd(token)
		}
		return nil
	}
	m.screen.StartLoading()
	m.screen.ClearError()
	return m.searchCmd(ticket)
}

func (m *Model) openSelected() tea.Cmd {
	surface, ok := m.focusedSurface()
	if !ok {
		return nil
	}
	grid := m.screen.Grid(surface)
	idx := m.cursor[surface]
	if idx < 0 || idx >= len(grid) {
		return nil
	}

	id := grid[idx].ID
	m.pendingDetail = id
	m.screen.StartLoading()
	return m.detailCmd(id)
}

func (m *Model) focusedSurface() (present.Surface, bool) {
	switch m.focus {
	case focusTrending:
		return present.SurfaceTrending, true
	case focusResults:
		return present.SurfaceResults, true
	default:
		return 0, false
	}
}

func (m *Model) cycleFocus(step int) {
	areas := []focusArea{focusInput, focusTrending}
	if m.screen.ResultsVisible() {
		areas = append(areas, focusResults)
	}

	current := 0
	for i, a := range areas {
		if a == m.focus {
			current = i
		}
	}
	m.focus = areas[(current+step+len(areas))%len(areas)]

	if m.focus == focusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

func (m *Model) moveCursor(msg tea.KeyMsg) {
	surface, ok := m.focusedSurface()
	if !ok {
		return
	}
	count := len(m.screen.Grid(surface))
	if count == 0 {
		return
	}

	cols := m.columns()
	idx := m.cursor[surface]
	switch msg.Type {
	case tea.KeyLeft:
		idx--
	case tea.KeyRight:
		idx++
	case tea.KeyUp:
		idx -= cols
	case tea.KeyDown:
		idx += cols
	default:
		return
	}
	m.cursor[surface] = max(0, min(idx, count-1))
}

func (m *Model) columns() int {
	cols := m.width / cardWidth
	if cols <= 0 {
		return defaultColumns
	}
	return cols
}

func (m *Model) refreshDetail() {
	view := m.screen.Detail()
	if view == nil {
		return
	}
	var sb strings.Builder
	_ = present.WriteDetail(&sb, *view)
	m.detail.SetContent(sb.String())
}

func (m *Model) View() string {
	sections := []string{
		headerStyle.Render("marquee"),
		m.input.View(),
	}

	if msg, visible := m.screen.Error(); visible {
		sections = append(sections, errorStyle.Render(msg))
	}
	if m.screen.Loading() {
		sections = append(sections, m.spinner.View()+loaderStyle.Render(" Loading..."))
	}

	if m.screen.Detail() != nil {
		sections = append(sections,
			detailStyle.Render(m.detail.View()),
			helpStyle.Render("f toggle favorite | Up/Down scroll | Esc close | Ctrl+C quit"),
		)
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	sections = append(sections, sectionStyle.Render("Trending"), m.renderGrid(present.SurfaceTrending))
	if m.screen.ResultsVisible() {
		sections = append(sections, sectionStyle.Render("Results"), m.renderGrid(present.SurfaceResults))
	}
	sections = append(sections, helpStyle.Render("Enter search/open | Tab switch focus | Arrows navigate | Ctrl+C quit"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderGrid(surface present.Surface) string {
	grid := m.screen.Grid(surface)
	if len(grid) == 0 {
		return cardMetaStyle.Render("Nothing to show")
	}

	focused, _ := m.focusedSurface()
	active := m.focus != focusInput && focused == surface
	cols := m.columns()

	var rows []string
	for start := 0; start < len(grid); start += cols {
		end := min(start+cols, len(grid))
		cells := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cells = append(cells, renderCard(grid[i], active && i == m.cursor[surface]))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderCard(c present.Card, selected bool) string {
	inner := cardWidth - 6
	poster := "poster"
	if c.Placeholder {
		poster = "no poster"
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		cardTitleStyle.Render(truncate(c.Title, inner)),
		cardMetaStyle.Render(truncate(fmt.Sprintf("%s | %s", c.Year, c.Type), inner)),
		cardMetaStyle.Render(truncate(poster, inner)),
	)
	if selected {
		return selectedCardStyle.Render(content)
	}
	return cardStyle.Render(content)
}

func truncate(value string, width int) string {
	value = strings.Join(strings.Fields(value), " ")
	if width <= 0 || utf8.RuneCountInString(value) <= width {
		return value
	}
	runes := []rune(value)
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

func clamp(defaultValue, available, minimum int) int {
	width := defaultValue
	if available > 0 && available < defaultValue {
		width = available
	}
	if width < minimum {
		width = minimum
	}
	return width
}
