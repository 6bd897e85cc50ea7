package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/stocklearn/internal/lesson"
	"github.com/abhisek/stocklearn/internal/router"
	"github.com/abhisek/stocklearn/internal/screen"
	"github.com/abhisek/stocklearn/internal/screens/welcome"
	"github.com/abhisek/stocklearn/internal/ui/theme"
)

func newTestModel(t *testing.T, skipSplash bool) AppModel {
	t.Helper()
	catalog, err := lesson.Default()
	require.NoError(t, err)
	return newAppModel(Options{Catalog: catalog, SkipSplash: skipSplash})
}

func press(m AppModel, k tea.KeyPressMsg) (AppModel, tea.Cmd) {
	next, cmd := m.Update(k)
	return next.(AppModel), cmd
}

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// drain feeds the messages produced by cmd back into the model.
func drain(m AppModel, cmd tea.Cmd) AppModel {
	for i := 0; cmd != nil && i < 10; i++ {
		msg := cmd()
		if msg == nil {
			return m
		}
		if _, ok := msg.(tea.BatchMsg); ok {
			return m
		}
		next, c := m.Update(msg)
		m, cmd = next.(AppModel), c
	}
	return m
}

func TestDigitKeysSwitchTabs(t *testing.T) {
	m := newTestModel(t, true)
	assert.Equal(t, theme.TabHome, m.active)

	for i, tab := range theme.Tabs {
		m, _ = press(m, key(rune('1'+i)))
		assert.Equal(t, tab, m.active)
		if tab == theme.TabProfile {
			break
		}
	}
}

func TestTabCycles(t *testing.T) {
	m := newTestModel(t, true)

	m, _ = press(m, tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	assert.Equal(t, theme.TabProfile, m.active, "shift+tab wraps to the last tab")

	m = newTestModel(t, true)
	m, _ = press(m, tea.KeyPressMsg{Code: tea.KeyTab})
	assert.Equal(t, theme.TabMarket, m.active)
	m, _ = press(m, tea.KeyPressMsg{Code: tea.KeyTab})
	assert.Equal(t, theme.TabInsights, m.active)
}

func TestProfileFormKeepsDigits(t *testing.T) {
	m := newTestModel(t, true)
	m, _ = press(m, key('5'))
	require.Equal(t, theme.TabProfile, m.active)

	// The email field has focus, so digits are typed rather than switching tabs.
	m, _ = press(m, key('1'))
	assert.Equal(t, theme.TabProfile, m.active)

	// Esc releases the field; digits switch tabs again.
	m, _ = press(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	m, _ = press(m, key('1'))
	assert.Equal(t, theme.TabHome, m.active)
}

func TestTabStacksAreIndependent(t *testing.T) {
	m := newTestModel(t, true)
	m, _ = press(m, key('4'))
	require.Equal(t, theme.TabLearn, m.active)

	m, cmd := press(m, tea.KeyPressMsg{Code: tea.KeyEnter})
	m = drain(m, cmd)
	require.Equal(t, 2, m.tabs[theme.TabLearn].Depth(), "enter opens the lesson")

	m, _ = press(m, key('1'))
	assert.Equal(t, 1, m.tabs[theme.TabHome].Depth())

	m, _ = press(m, key('4'))
	assert.Equal(t, 2, m.tabs[theme.TabLearn].Depth(), "lesson stays open across tab switches")

	m, cmd = press(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	m = drain(m, cmd)
	assert.Equal(t, 1, m.tabs[theme.TabLearn].Depth())
}

func TestEscAtRootIsNoop(t *testing.T) {
	m := newTestModel(t, true)
	m, cmd := press(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.current().Depth())
}

func TestSwitchTabMsg(t *testing.T) {
	m := newTestModel(t, true)

	// The first home quick action opens the beginner guide on Learn.
	m, cmd := press(m, tea.KeyPressMsg{Code: tea.KeyEnter})
	m = drain(m, cmd)
	assert.Equal(t, theme.TabLearn, m.active)
}

func TestSwitchTabDeliversFocus(t *testing.T) {
	m := newTestModel(t, true)
	next, cmd := m.Update(screen.SwitchTabMsg{Tab: theme.TabInsights})
	m = next.(AppModel)
	assert.Equal(t, theme.TabInsights, m.active)
	// Insights has no event log here, so focusing it loads nothing.
	assert.Nil(t, cmd)

	_, cmd = m.Update(screen.SwitchTabMsg{Tab: theme.TabInsights})
	assert.Nil(t, cmd, "switching to the active tab is a no-op")
}

func TestSplashReplacedByHome(t *testing.T) {
	m := newTestModel(t, false)
	_, ok := m.tabs[theme.TabHome].Active().(*welcome.WelcomeScreen)
	require.True(t, ok)

	// Digits dismiss the splash instead of switching tabs.
	m, cmd := press(m, key('3'))
	assert.Equal(t, theme.TabHome, m.active)
	require.NotNil(t, cmd)
	msg := cmd()
	_, isReplace := msg.(router.ReplaceScreenMsg)
	require.True(t, isReplace)

	next, _ := m.Update(msg)
	m = next.(AppModel)
	assert.Equal(t, "Home", m.tabs[theme.TabHome].Active().Title())
	assert.Equal(t, 1, m.tabs[theme.TabHome].Depth())
}

func TestCtrlCQuits(t *testing.T) {
	m := newTestModel(t, true)
	_, cmd := press(m, tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestView(t *testing.T) {
	m := newTestModel(t, true)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	m = next.(AppModel)
	assert.Contains(t, m.render(), "Terminal too small")

	next, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(AppModel)
	content := m.render()
	assert.Contains(t, content, "StockLearn")
	assert.Contains(t, content, "Guest")
	assert.Contains(t, content, "0/4 lessons")
	for _, tab := range theme.Tabs {
		assert.Contains(t, content, tab.Label())
	}

	m.state.Auth.SignIn("Sita", "sita@example.com")
	m.state.Engine.MarkLessonComplete(1)
	content = m.render()
	assert.Contains(t, content, "Sita")
	assert.True(t, strings.Contains(content, "1/4 lessons"))
}
