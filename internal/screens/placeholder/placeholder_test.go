package placeholder

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/stocklearn/internal/router"
)

func TestPlaceholder_View(t *testing.T) {
	p := New("Market")
	if p.Title() != "Market" {
		t.Errorf("Title = %q, want %q", p.Title(), "Market")
	}
	view := p.View(80, 20)
	if !strings.Contains(view, "Coming Soon") {
		t.Error("expected coming soon banner")
	}
}

func TestPlaceholder_CustomMessage(t *testing.T) {
	p := NewWithMessage("Alert Settings", "Configure your alert preferences")
	if !strings.Contains(p.View(80, 20), "Configure your alert preferences") {
		t.Error("expected custom message")
	}
}

func TestPlaceholder_BackspacePops(t *testing.T) {
	p := New("Market")
	_, cmd := p.Update(tea.KeyPressMsg{Code: tea.KeyBackspace})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}
