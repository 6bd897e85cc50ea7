package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stocklearn/internal/learner"
	"github.com/abhisek/stocklearn/internal/market"
	"github.com/abhisek/stocklearn/internal/screen"
	"github.com/abhisek/stocklearn/internal/ui/components"
	"github.com/abhisek/stocklearn/internal/ui/layout"
	"github.com/abhisek/stocklearn/internal/ui/theme"
)

const tagline = "Your beginner-friendly platform to learn about the stock market, " +
	"track NEPSE data, and stay informed with intelligent alerts."

const beginnerTip = "Start by learning what stocks are and how the NEPSE market works. " +
	"Check out our Beginner Guide!"

// HomeScreen shows the market overview and quick links to the other tabs.
type HomeScreen struct {
	market  market.Provider
	learner *learner.State
	menu    components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(provider market.Provider, state *learner.State) *HomeScreen {
	items := []components.MenuItem{
		{Label: "Beginner Guide", Detail: "Learn stock market basics", Action: func() tea.Cmd {
			return screen.SwitchTab(theme.TabLearn)
		}},
		{Label: "Browse Market", Detail: "Explore NEPSE companies", Action: func() tea.Cmd {
			return screen.SwitchTab(theme.TabMarket)
		}},
		{Label: "Visual Insights", Detail: "Charts & market analysis", Action: func() tea.Cmd {
			return screen.SwitchTab(theme.TabInsights)
		}},
		{Label: "Sign up for alerts →", Action: func() tea.Cmd {
			return screen.SwitchTab(theme.TabProfile)
		}},
	}

	return &HomeScreen{
		market:  provider,
		learner: state,
		menu:    components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "1-5", Description: "Tabs"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)
	compact := layout.IsCompactHeight(height + layout.HeaderHeight + layout.TabBarHeight + layout.FooterHeight)

	var sections []string

	sections = append(sections, theme.Title.Render("↗ Stock Learn"))
	if !compact {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Width(cw).
			Render(tagline))
	}

	sections = append(sections, renderIndexCard(h.market.Index(), cw))
	sections = append(sections, components.Card("Quick Actions", h.menu.View(), cw, true))
	sections = append(sections, h.renderAlertCard(cw))

	if !compact {
		sections = append(sections, components.Card("💡 Beginner Tip", theme.Body.Render(beginnerTip), cw, false))
	}

	return components.Centered(strings.Join(sections, "\n"), width, height)
}

func (h *HomeScreen) renderAlertCard(cw int) string {
	body := "Get alerts for price changes, volume spikes, and market trends"
	if h.learner != nil && h.learner.Auth.LoggedIn() {
		body = "Signed in as " + h.learner.Auth.DisplayName() + ". Manage alerts from Profile."
	}
	return components.Card("🔔 Stay Updated", theme.Body.Render(body), cw, false)
}

func renderIndexCard(idx market.Index, cw int) string {
	value := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(market.FormatValue(idx.Value))
	change := theme.Badge.Render(market.FormatChange(idx.ChangePct))
	points := theme.Change(idx.ChangePct >= 0).Render(market.FormatPoints(idx.ChangePoints))

	body := theme.Subtitle.Render(idx.Name) + "\n" +
		value + "\n" +
		change + "  " + points

	return components.Card("", body, cw, false)
}
