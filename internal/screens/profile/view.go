package profile

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/stocklearn/internal/market"
	"github.com/abhisek/stocklearn/internal/ui/components"
	"github.com/abhisek/stocklearn/internal/ui/layout"
	"github.com/abhisek/stocklearn/internal/ui/theme"
)

func (s *ProfileScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)
	var body string
	if s.learner.Auth.LoggedIn() {
		body = s.renderDashboard(cw)
	} else {
		body = s.renderForm(cw)
	}
	return components.Centered(body, width, height)
}

func (s *ProfileScreen) renderBanner(cw int) string {
	if s.banner == nil {
		return ""
	}
	c := theme.Error
	if s.banner.kind == bannerSuccess {
		c = theme.Success
	}
	text := lipgloss.NewStyle().Foreground(c).Bold(true).Render(s.banner.title) + "\n" +
		theme.Body.Render(s.banner.message)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c).
		Width(cw-2).
		Padding(0, 1).
		Render(text)
}

func (s *ProfileScreen) renderForm(cw int) string {
	f := &s.form

	subtitle := "Login to access personalized features"
	if f.signup {
		subtitle = "Join to get market alerts"
	}
	header := theme.Title.Render("↗ Welcome to StockLearn") + "\n" + theme.Subtitle.Render(subtitle)

	sections := []string{header}
	if b := s.renderBanner(cw); b != "" {
		sections = append(sections, b)
	}
	sections = append(sections, components.Card("", s.renderToggle()+"\n\n"+s.renderFields(), cw, true))

	benefits := theme.Subtitle.Render("With an account, you get:") + "\n" +
		theme.Gain.Render("• ") + theme.Body.Render("Personalized price & volume spike alerts") + "\n" +
		lipgloss.NewStyle().Foreground(theme.Secondary).Render("• ") + theme.Body.Render("Custom watchlist and portfolio tracking")
	sections = append(sections, benefits)

	return strings.Join(sections, "\n")
}

func (s *ProfileScreen) renderToggle() string {
	active := lipgloss.NewStyle().Foreground(theme.Text).Background(theme.Primary).Bold(true).Padding(0, 2)
	inactive := lipgloss.NewStyle().Foreground(theme.TextDim).Padding(0, 2)
	if s.form.signup {
		return inactive.Render("Login") + " " + active.Render("Sign Up")
	}
	return active.Render("Login") + " " + inactive.Render("Sign Up")
}

func (s *ProfileScreen) renderFields() string {
	f := &s.form
	current := f.current()

	var lines []string
	for _, fl := range f.fields() {
		lines = append(lines, f.inputs[fl].View())
	}

	eye := "◌ Show password"
	if f.showPassword {
		eye = "◉ Hide password"
	}
	lines = append(lines, "", focusLine(eye, current.kind == slotShowPassword))

	label := "Login"
	if f.signup {
		label = "Create Account"
	}
	btn := components.NewButton(label, current.kind == slotSubmit, nil)
	btn.Busy = s.loading
	lines = append(lines, "", btn.View())

	other := "No account? Sign up"
	if f.signup {
		other = "Have an account? Login"
	}
	lines = append(lines, "", focusLine(other, current.kind == slotSwitchMode))

	return strings.Join(lines, "\n")
}

func focusLine(text string, focused bool) string {
	if focused {
		return theme.Selected.Render("▸ " + text)
	}
	return theme.Subtitle.Render("  " + text)
}

func (s *ProfileScreen) renderDashboard(cw int) string {
	header := theme.Title.Render("My Dashboard") + "\n" +
		theme.Body.Bold(true).Render(fmt.Sprintf("Welcome, %s!", s.learner.Auth.DisplayName())) + "\n" +
		theme.Subtitle.Render("Track your portfolio and market alerts")

	sections := []string{header}
	if b := s.renderBanner(cw); b != "" {
		sections = append(sections, b)
	}
	sections = append(sections,
		components.Card("Stock Alerts", s.renderAlerts(), cw, false),
		components.Card("My Watchlist", renderWatchlist(s.market.Watchlist()), cw, false),
		components.Card("", s.dashboard.View(), cw, true),
	)
	return strings.Join(sections, "\n")
}

func (s *ProfileScreen) renderAlerts() string {
	state := theme.Gain.Render("● Spike alerts on")
	if !s.spikeAlerts {
		state = theme.Subtitle.Render("○ Spike alerts off")
	}

	rules := s.market.Alerts()
	if len(rules) == 0 {
		return state + "\n" + theme.Hint.Render("No alerts configured")
	}

	head := theme.Subtitle.Render(fmt.Sprintf("%-8s %-14s %-8s %-7s %s", "SYMBOL", "TYPE", "PRICE", "UNITS", "STATUS"))
	lines := []string{state, "", head}
	for _, r := range rules {
		status := theme.Subtitle.Render("paused")
		if r.Active && s.spikeAlerts {
			status = theme.Gain.Render("🔔 active")
		}
		row := fmt.Sprintf("%-8s %-14s %-8.1f %-7s ", r.Symbol, r.Condition, r.Price, fmt.Sprintf("> %d", r.MinUnits))
		lines = append(lines, theme.Body.Render(row)+status)
	}
	return strings.Join(lines, "\n")
}

func renderWatchlist(quotes []market.Quote) string {
	var lines []string
	for _, q := range quotes {
		left := theme.Body.Bold(true).Render(fmt.Sprintf("%-6s", q.Symbol)) + "  " +
			lipgloss.NewStyle().Foreground(theme.Warning).Render("Alert: "+q.Signal)
		right := theme.Body.Render(market.FormatPrice(q.Price)) + "  " +
			theme.Change(q.Positive()).Render(market.FormatChange(q.ChangePct))
		lines = append(lines, left+"   "+right)
	}
	return strings.Join(lines, "\n")
}
