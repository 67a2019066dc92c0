package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lepinkainen/marquee/internal/omdb"
	"github.com/lepinkainen/marquee/internal/present"
	"github.com/lepinkainen/marquee/internal/search"
)

type trendingMsg struct {
	state search.State
}

type searchMsg struct {
	state search.State
}

type debounceMsg struct {
	tag   int
	query string
}

type detailMsg struct {
	id     string
	detail *omdb.Detail
	err    error
}

type hideErrorMsg struct {
	token uint64
}

func (m *Model) trendingCmd() tea.Cmd {
	return func() tea.Msg {
		return trendingMsg{state: m.orch.RunTrending(m.ctx)}
	}
}

func (m *Model) searchCmd(ticket search.Ticket) tea.Cmd {
	return func() tea.Msg {
		return searchMsg{state: m.orch.Run(m.ctx, ticket)}
	}
}

func (m *Model) detailCmd(id string) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.orch.FetchDetail(m.ctx, id)
		return detailMsg{id: id, detail: detail, err: err}
	}
}

func debounceCmd(delay time.Duration, tag int, query string) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return debounceMsg{tag: tag, query: query}
	})
}

func hideErrorCmd(token uint64) tea.Cmd {
	return tea.Tick(present.ErrorBannerDelay, func(time.Time) tea.Msg {
		return hideErrorMsg{token: token}
	})
}
