package profile

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/stocklearn/internal/activity"
	"github.com/abhisek/stocklearn/internal/auth"
	"github.com/abhisek/stocklearn/internal/learner"
	"github.com/abhisek/stocklearn/internal/market"
	"github.com/abhisek/stocklearn/internal/router"
	"github.com/abhisek/stocklearn/internal/screen"
	"github.com/abhisek/stocklearn/internal/screens/placeholder"
	"github.com/abhisek/stocklearn/internal/ui/components"
	"github.com/abhisek/stocklearn/internal/ui/layout"
)

type bannerKind int

const (
	bannerError bannerKind = iota
	bannerSuccess
)

// banner is the alert shown after a submission.
type banner struct {
	kind    bannerKind
	title   string
	message string
}

// ProfileScreen is the login/signup form, and the learner's dashboard once
// signed in.
type ProfileScreen struct {
	service  auth.Service
	learner  *learner.State
	market   market.Provider
	recorder *activity.Recorder

	form    form
	loading bool
	banner  *banner

	spikeAlerts bool
	dashboard   components.Menu
}

var _ screen.Screen = (*ProfileScreen)(nil)
var _ screen.KeyHintProvider = (*ProfileScreen)(nil)
var _ screen.InputCapturer = (*ProfileScreen)(nil)
var _ screen.EscapeHandler = (*ProfileScreen)(nil)

// New creates a ProfileScreen that submits through service.
func New(service auth.Service, state *learner.State, provider market.Provider, recorder *activity.Recorder) *ProfileScreen {
	if recorder == nil {
		recorder = activity.NewRecorder(nil, nil)
	}
	s := &ProfileScreen{
		service:     service,
		learner:     state,
		market:      provider,
		recorder:    recorder,
		form:        newForm(),
		spikeAlerts: true,
	}
	s.form.setFocus(0)
	s.buildDashboard()
	return s
}

func (s *ProfileScreen) buildDashboard() {
	toggle := "Turn spike alerts off"
	if !s.spikeAlerts {
		toggle = "Turn spike alerts on"
	}
	selected := s.dashboard.Selected
	s.dashboard = components.NewMenu([]components.MenuItem{
		{Label: toggle, Action: func() tea.Cmd {
			return func() tea.Msg { return toggleAlertsMsg{} }
		}},
		{Label: "Add stock alert", Action: func() tea.Cmd {
			return router.Push(placeholder.NewWithMessage("Alert Settings",
				"Configure your alert preferences and notification types"))
		}},
		{Label: "Logout", Action: func() tea.Cmd {
			return func() tea.Msg { return logoutMsg{} }
		}},
	})
	s.dashboard.Selected = selected
}

type toggleAlertsMsg struct{}

type logoutMsg struct{}

func (s *ProfileScreen) Init() tea.Cmd {
	return nil
}

func (s *ProfileScreen) Title() string {
	if s.learner.Auth.LoggedIn() {
		return "My Dashboard"
	}
	return "Profile"
}

// CapturesInput reports whether a text field has the keyboard.
func (s *ProfileScreen) CapturesInput() bool {
	return !s.learner.Auth.LoggedIn() && s.form.focusedInput() != nil
}

// HandlesEscape reports whether Esc should leave the focused text field.
func (s *ProfileScreen) HandlesEscape() bool {
	return s.CapturesInput()
}

func (s *ProfileScreen) KeyHints() []layout.KeyHint {
	if s.learner.Auth.LoggedIn() {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "1-5", Description: "Tabs"},
		}
	}
	if s.CapturesInput() {
		return []layout.KeyHint{
			{Key: "Tab/↓", Description: "Next field"},
			{Key: "Ctrl+S", Description: "Submit"},
			{Key: "Esc", Description: "Leave form"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "1-5", Description: "Tabs"},
	}
}

func (s *ProfileScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case authResultMsg:
		s.handleResult(msg)
		return s, nil

	case toggleAlertsMsg:
		s.spikeAlerts = !s.spikeAlerts
		s.buildDashboard()
		return s, nil

	case logoutMsg:
		return s, s.logout()

	case persistedMsg:
		return s, nil

	case tea.KeyMsg:
		if s.learner.Auth.LoggedIn() {
			return s.updateDashboard(msg)
		}
		return s.updateForm(msg)
	}

	// Cursor blink and other input messages.
	if in := s.form.focusedInput(); in != nil {
		var cmd tea.Cmd
		*in, cmd = in.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ProfileScreen) updateDashboard(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	s.banner = nil
	var cmd tea.Cmd
	s.dashboard, cmd = s.dashboard.Update(msg)
	return s, cmd
}

func (s *ProfileScreen) updateForm(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		s.form.setFocus(s.form.focus + 1)
		return s, nil
	case "shift+tab", "up":
		s.form.setFocus(s.form.focus - 1)
		return s, nil
	case "esc":
		s.form.focusSlot(slotSubmit)
		return s, nil
	case "ctrl+s":
		return s, s.submit()
	case "enter":
		return s, s.activate()
	}

	if in := s.form.focusedInput(); in != nil {
		var cmd tea.Cmd
		*in, cmd = in.Update(msg)
		return s, cmd
	}
	return s, nil
}

// activate handles Enter on the focused slot.
func (s *ProfileScreen) activate() tea.Cmd {
	switch s.form.current().kind {
	case slotField:
		s.form.setFocus(s.form.focus + 1)
	case slotShowPassword:
		s.form.togglePassword()
	case slotSubmit:
		return s.submit()
	case slotSwitchMode:
		s.form.toggleMode()
		s.banner = nil
	}
	return nil
}

// submit validates the form and sends it. Only one request is in flight at
// a time; further submits are dropped until it resolves.
func (s *ProfileScreen) submit() tea.Cmd {
	if s.loading {
		return nil
	}

	signup := s.form.signup
	svc := s.service

	var (
		run   func(ctx context.Context) (auth.Response, error)
		name  string
		email string
		err   error
	)
	if signup {
		req := s.form.signupRequest()
		err = auth.ValidateSignup(req)
		name, email = req.Name, req.Email
		run = func(ctx context.Context) (auth.Response, error) { return svc.Signup(ctx, req) }
	} else {
		req := s.form.loginRequest()
		err = auth.ValidateLogin(req)
		email = req.Email
		run = func(ctx context.Context) (auth.Response, error) { return svc.Login(ctx, req) }
	}
	if err != nil {
		s.showError(err)
		return nil
	}

	s.loading = true
	s.banner = nil
	return func() tea.Msg {
		resp, err := run(context.Background())
		return authResultMsg{Signup: signup, Name: name, Email: email, Resp: resp, Err: err}
	}
}

func (s *ProfileScreen) handleResult(msg authResultMsg) {
	s.loading = false
	if msg.Err != nil {
		s.showError(msg.Err)
		return
	}

	s.learner.Auth.SignIn(msg.Name, msg.Email)
	s.form.clearSecrets()
	s.form.setFocus(0)
	s.dashboard.Selected = 0
	s.banner = &banner{
		kind:    bannerSuccess,
		title:   auth.TitleSuccess,
		message: auth.SuccessMessage(msg.Signup),
	}
}

func (s *ProfileScreen) showError(err error) {
	title, message := auth.Describe(err)
	s.banner = &banner{kind: bannerError, title: title, message: message}
}

func (s *ProfileScreen) logout() tea.Cmd {
	email := s.learner.Auth.Email()
	s.learner.Auth.SignOut()
	s.form.signup = false
	s.form.setFocus(0)
	s.banner = nil

	rec := s.recorder
	return func() tea.Msg {
		return persistedMsg{Err: rec.LoggedOut(context.Background(), email)}
	}
}
