package theme

import (
	"image/color"

	"github.com/abhisek/stocklearn/internal/lesson"
)

// Tab identifies a top-level tab of the shell.
type Tab int

const (
	TabHome Tab = iota
	TabMarket
	TabInsights
	TabLearn
	TabProfile
)

// Tabs lists the tabs in display order.
var Tabs = []Tab{TabHome, TabMarket, TabInsights, TabLearn, TabProfile}

var tabLabels = map[Tab]string{
	TabHome:     "Home",
	TabMarket:   "Market",
	TabInsights: "Insights",
	TabLearn:    "Learn",
	TabProfile:  "Profile",
}

var tabGlyphs = map[Tab]string{
	TabHome:     "⌂",
	TabMarket:   "◫",
	TabInsights: "▤",
	TabLearn:    "❏",
	TabProfile:  "◉",
}

// Label returns the tab's display name.
func (t Tab) Label() string {
	return tabLabels[t]
}

// TabGlyph resolves a tab to its icon.
func TabGlyph(t Tab) string {
	if g, ok := tabGlyphs[t]; ok {
		return g
	}
	return "•"
}

type iconStyle struct {
	glyph string
	color color.Color
}

var lessonIcons = map[lesson.Icon]iconStyle{
	lesson.IconTrendingUp: {"↗", Success},
	lesson.IconBookOpen:   {"❏", Primary},
	lesson.IconShield:     {"◈", Accent},
	lesson.IconPieChart:   {"◔", Secondary},
}

// LessonGlyph resolves a lesson icon tag to a glyph and its color.
// Unknown tags fall back to a dim bullet.
func LessonGlyph(icon lesson.Icon) (string, color.Color) {
	if s, ok := lessonIcons[icon]; ok {
		return s.glyph, s.color
	}
	return "•", TextDim
}
