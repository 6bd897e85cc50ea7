// Package market provides the NEPSE figures shown on the home, insights and
// profile screens. There is no live feed yet; Mock serves fixed data.
package market

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Index is a market index reading.
type Index struct {
	Name         string
	Value        float64
	ChangePct    float64
	ChangePoints float64
}

// Quote is a watchlist entry.
type Quote struct {
	Symbol    string
	Price     float64
	ChangePct float64
	Signal    string
}

// Positive reports whether the quote moved up.
func (q Quote) Positive() bool { return q.ChangePct >= 0 }

// AlertRule is a price alert configured by the learner.
type AlertRule struct {
	Symbol    string
	Condition string
	Price     float64
	MinUnits  int
	Active    bool
}

// Provider supplies market data.
type Provider interface {
	Index() Index
	Watchlist() []Quote
	Alerts() []AlertRule
}

// Mock is a Provider with fixed NEPSE data.
type Mock struct{}

var _ Provider = Mock{}

func (Mock) Index() Index {
	return Index{Name: "NEPSE Index", Value: 2156.42, ChangePct: 2.4, ChangePoints: 51.24}
}

func (Mock) Watchlist() []Quote {
	return []Quote{
		{Symbol: "NABIL", Price: 1245.00, ChangePct: 2.4, Signal: "Price Jump"},
		{Symbol: "NICA", Price: 1034.00, ChangePct: 3.1, Signal: "Volume Spike"},
	}
}

func (Mock) Alerts() []AlertRule {
	return []AlertRule{
		{Symbol: "SJCL", Condition: "greater than", Price: 200.0, MinUnits: 100, Active: true},
	}
}

// FormatValue renders an index value with thousands separators.
func FormatValue(v float64) string {
	return humanize.CommafWithDigits(v, 2)
}

// FormatPrice renders a price in rupees.
func FormatPrice(p float64) string {
	return fmt.Sprintf("NPR %.2f", p)
}

// FormatChange renders a signed percentage change.
func FormatChange(pct float64) string {
	return fmt.Sprintf("%+.1f%%", pct)
}

// FormatPoints renders a signed point change.
func FormatPoints(pts float64) string {
	return fmt.Sprintf("%+.2f points today", pts)
}
