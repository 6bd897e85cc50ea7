package insights

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"

	"github.com/abhisek/stocklearn/internal/learner"
	"github.com/abhisek/stocklearn/internal/lesson"
	"github.com/abhisek/stocklearn/internal/market"
	"github.com/abhisek/stocklearn/internal/screen"
	"github.com/abhisek/stocklearn/internal/store"
	"github.com/abhisek/stocklearn/internal/ui/components"
	"github.com/abhisek/stocklearn/internal/ui/layout"
	"github.com/abhisek/stocklearn/internal/ui/theme"
)

const maxBarWidth = 30

type statsLoadedMsg struct {
	Stats store.Stats
	Err   error
}

// InsightsScreen charts watchlist movers and the learner's progress.
type InsightsScreen struct {
	market  market.Provider
	catalog *lesson.Catalog
	learner *learner.State
	events  store.EventRepo

	stats   *store.Stats
	statErr error
}

var _ screen.Screen = (*InsightsScreen)(nil)
var _ screen.KeyHintProvider = (*InsightsScreen)(nil)

// New creates an InsightsScreen. events may be nil, in which case the
// activity section is omitted.
func New(provider market.Provider, catalog *lesson.Catalog, state *learner.State, events store.EventRepo) *InsightsScreen {
	return &InsightsScreen{
		market:  provider,
		catalog: catalog,
		learner: state,
		events:  events,
	}
}

func (s *InsightsScreen) Init() tea.Cmd {
	return s.loadStats()
}

func (s *InsightsScreen) Title() string {
	return "Insights"
}

func (s *InsightsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "r", Description: "Refresh"},
		{Key: "1-5", Description: "Tabs"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *InsightsScreen) loadStats() tea.Cmd {
	if s.events == nil {
		return nil
	}
	repo := s.events
	return func() tea.Msg {
		st, err := repo.Stats(context.Background())
		return statsLoadedMsg{Stats: st, Err: err}
	}
}

func (s *InsightsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.Err != nil {
			s.statErr = msg.Err
			return s, nil
		}
		s.statErr = nil
		s.stats = &msg.Stats
		return s, nil

	case screen.TabFocusedMsg:
		return s, s.loadStats()

	case tea.KeyMsg:
		if msg.String() == "r" {
			return s, s.loadStats()
		}
	}
	return s, nil
}

func (s *InsightsScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)

	sections := []string{
		components.Card("Watchlist Movers", renderMovers(s.market.Watchlist()), cw, false),
		components.Card("Lesson Progress", s.renderLessons(cw), cw, false),
	}
	if s.events != nil {
		sections = append(sections, components.Card("Your Activity", s.renderActivity(), cw, false))
	}

	return components.Centered(strings.Join(sections, "\n"), width, height)
}

func renderMovers(quotes []market.Quote) string {
	if len(quotes) == 0 {
		return theme.Hint.Render("No watchlist entries")
	}

	maxAbs := 0.0
	for _, q := range quotes {
		maxAbs = math.Max(maxAbs, math.Abs(q.ChangePct))
	}

	var lines []string
	for _, q := range quotes {
		width := 1
		if maxAbs > 0 {
			width = int(math.Round(math.Abs(q.ChangePct) / maxAbs * maxBarWidth))
		}
		bar := theme.Change(q.Positive()).Render(strings.Repeat("█", max(width, 1)))
		lines = append(lines, fmt.Sprintf("%-6s %s %s",
			q.Symbol, bar, theme.Change(q.Positive()).Render(market.FormatChange(q.ChangePct))))
	}
	return strings.Join(lines, "\n")
}

func (s *InsightsScreen) renderLessons(cw int) string {
	done := s.learner.Completion.Len()
	total := s.catalog.Len()

	lines := []string{components.NewProgressBar("Completed", done, total, true, cw-6).View()}
	for _, l := range s.catalog.Lessons {
		glyph, c := theme.LessonGlyph(l.Icon)
		mark := lipgloss.NewStyle().Foreground(theme.TextDim).Render("○")
		if s.learner.Completion.Has(l.ID) {
			mark = lipgloss.NewStyle().Foreground(theme.Success).Render("●")
		}
		lines = append(lines, fmt.Sprintf("%s %s %s", mark, lipgloss.NewStyle().Foreground(c).Render(glyph), l.Title))
	}
	return strings.Join(lines, "\n")
}

func (s *InsightsScreen) renderActivity() string {
	if s.statErr != nil {
		return lipgloss.NewStyle().Foreground(theme.Error).Render("Could not load activity: " + s.statErr.Error())
	}
	if s.stats == nil {
		return theme.Hint.Render("Loading...")
	}

	st := s.stats
	lines := []string{
		fmt.Sprintf("Quiz attempts    %s (%s perfect)", humanize.Comma(int64(st.QuizAttempts)), humanize.Comma(int64(st.PerfectQuizzes))),
		fmt.Sprintf("Answer accuracy  %d%%", int(math.Round(st.Accuracy()*100))),
	}
	if !st.LastActivity.IsZero() {
		lines = append(lines, "Last activity    "+humanize.Time(st.LastActivity))
	}
	return strings.Join(lines, "\n")
}
