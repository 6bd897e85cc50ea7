package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stocklearn/internal/activity"
	"github.com/abhisek/stocklearn/internal/auth"
	"github.com/abhisek/stocklearn/internal/learner"
	"github.com/abhisek/stocklearn/internal/lesson"
	"github.com/abhisek/stocklearn/internal/market"
	"github.com/abhisek/stocklearn/internal/router"
	"github.com/abhisek/stocklearn/internal/screen"
	"github.com/abhisek/stocklearn/internal/screens/home"
	"github.com/abhisek/stocklearn/internal/screens/insights"
	"github.com/abhisek/stocklearn/internal/screens/learn"
	"github.com/abhisek/stocklearn/internal/screens/placeholder"
	"github.com/abhisek/stocklearn/internal/screens/profile"
	"github.com/abhisek/stocklearn/internal/screens/welcome"
	"github.com/abhisek/stocklearn/internal/store"
	"github.com/abhisek/stocklearn/internal/ui/components"
	"github.com/abhisek/stocklearn/internal/ui/layout"
	"github.com/abhisek/stocklearn/internal/ui/theme"
)

// Options holds the dependencies of the application.
type Options struct {
	Catalog *lesson.Catalog
	State   *learner.State
	Market  market.Provider
	Auth    auth.Service
	Events  store.EventRepo
	Logger  *slog.Logger

	// SkipSplash starts directly on the home screen.
	SkipSplash bool
}

// AppModel is the root Bubble Tea model: one screen stack per tab.
type AppModel struct {
	tabs   map[theme.Tab]*router.Router
	active theme.Tab
	state  *learner.State
	total  int
	log    *slog.Logger
	width  int
	height int
}

// newAppModel creates the tab shell with every tab at its root screen.
func newAppModel(opts Options) AppModel {
	if opts.State == nil {
		opts.State = learner.New()
	}
	if opts.Market == nil {
		opts.Market = market.Mock{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	recorder := activity.NewRecorder(opts.Events, opts.Logger)

	homeFactory := func() screen.Screen {
		return home.New(opts.Market, opts.State)
	}
	var homeRoot screen.Screen
	if opts.SkipSplash {
		homeRoot = homeFactory()
	} else {
		homeRoot = welcome.New(homeFactory)
	}

	tabs := map[theme.Tab]*router.Router{
		theme.TabHome: router.New(homeRoot),
		theme.TabMarket: router.New(placeholder.NewWithMessage("Market",
			"Live NEPSE prices and charts are coming soon.")),
		theme.TabInsights: router.New(insights.New(opts.Market, opts.Catalog, opts.State, opts.Events)),
		theme.TabLearn:    router.New(learn.New(opts.Catalog, opts.State, recorder)),
		theme.TabProfile:  router.New(profile.New(opts.Auth, opts.State, opts.Market, recorder)),
	}

	total := 0
	if opts.Catalog != nil {
		total = opts.Catalog.Len()
	}

	return AppModel{
		tabs:   tabs,
		active: theme.TabHome,
		state:  opts.State,
		total:  total,
		log:    opts.Logger,
	}
}

func (m AppModel) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(theme.Tabs))
	for _, t := range theme.Tabs {
		if active := m.tabs[t].Active(); active != nil {
			cmds = append(cmds, active.Init())
		}
	}
	return tea.Batch(cmds...)
}

func (m AppModel) current() *router.Router {
	return m.tabs[m.active]
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.SwitchTabMsg:
		return m.switchTo(msg.Tab)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case router.PushScreenMsg, router.PopScreenMsg, router.ReplaceScreenMsg, router.PopToRootMsg, screen.TabFocusedMsg:
		return m, m.current().Update(msg)
	}

	// Async results (quiz persistence, auth responses, stats loads) belong
	// to whichever tab issued them, which may no longer be in front.
	cmds := make([]tea.Cmd, 0, len(theme.Tabs))
	for _, t := range theme.Tabs {
		cmds = append(cmds, m.tabs[t].Update(msg))
	}
	return m, tea.Batch(cmds...)
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	r := m.current()
	active := r.Active()

	if !capturesInput(active) {
		switch key {
		case "tab":
			return m.switchTo(m.offset(1))
		case "shift+tab":
			return m.switchTo(m.offset(-1))
		case "1", "2", "3", "4", "5":
			n, _ := strconv.Atoi(key)
			return m.switchTo(theme.Tabs[n-1])
		}
	}

	if key == "esc" && !handlesEscape(active) {
		if r.Depth() > 1 {
			return m, router.Pop
		}
		return m, nil
	}

	return m, r.Update(msg)
}

func (m AppModel) offset(delta int) theme.Tab {
	n := len(theme.Tabs)
	idx := (int(m.active) + delta + n) % n
	return theme.Tabs[idx]
}

func (m AppModel) switchTo(t theme.Tab) (tea.Model, tea.Cmd) {
	if _, ok := m.tabs[t]; !ok || t == m.active {
		return m, nil
	}
	m.log.Debug("switch tab", "from", m.active.Label(), "to", t.Label())
	m.active = t
	return m, m.current().Update(screen.TabFocusedMsg{})
}

func capturesInput(s screen.Screen) bool {
	c, ok := s.(screen.InputCapturer)
	return ok && c.CapturesInput()
}

func handlesEscape(s screen.Screen) bool {
	e, ok := s.(screen.EscapeHandler)
	return ok && e.HandlesEscape()
}

// status is the right side of the header: who is signed in and how far
// through the lessons they are.
func (m AppModel) status() string {
	who := "Guest"
	if m.state.Auth.LoggedIn() {
		who = m.state.Auth.DisplayName()
	}
	return fmt.Sprintf("%s · %d/%d lessons  ", who, m.state.Completion.Len(), m.total)
}

func (m AppModel) footerHints() []layout.KeyHint {
	r := m.current()
	if p, ok := r.Active().(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if r.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Tab", Description: "Next tab"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	v.SetContent(m.render())
	return v
}

func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	title := ""
	if active := m.current().Active(); active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status(), m.width)
	tabs := components.TabBar(m.active, m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(tabs) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.current().View(m.width, contentHeight)
	return layout.RenderFrame(header, content, tabs, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until the user quits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(opts), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
