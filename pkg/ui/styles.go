package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Colours adapt to light and dark terminals.
var (
	HeadingColor = lipgloss.AdaptiveColor{Light: "#212529", Dark: "#F8F9FA"}
	SuccessColor = lipgloss.AdaptiveColor{Light: "#28A745", Dark: "#4CDD76"}
	ErrorColor   = lipgloss.AdaptiveColor{Light: "#DC3545", Dark: "#FF6B7D"}
	WarningColor = lipgloss.AdaptiveColor{Light: "#FFC107", Dark: "#FFD54F"}
	InfoColor    = lipgloss.AdaptiveColor{Light: "#17A2B8", Dark: "#4DD0E1"}
	MutedColor   = lipgloss.AdaptiveColor{Light: "#6C757D", Dark: "#ADB5BD"}
	PathColor    = lipgloss.AdaptiveColor{Light: "#007ACC", Dark: "#3D9EFF"}
)

// Status indicators
const (
	ChangedIndicator   = "✓"
	UnchangedIndicator = "·"
	FailedIndicator    = "✗"
	WarningIndicator   = "!"
)

// styles is the set of styles one renderer uses. Plain output keeps the
// same layout with every colour and attribute stripped.
type styles struct {
	title   lipgloss.Style
	section lipgloss.Style
	changed lipgloss.Style
	failed  lipgloss.Style
	warning lipgloss.Style
	info    lipgloss.Style
	muted   lipgloss.Style
	path    lipgloss.Style
}

func newStyles(r *lipgloss.Renderer, colored bool) styles {
	if !colored {
		r.SetColorProfile(termenv.Ascii)
	}
	return styles{
		title:   r.NewStyle().Foreground(HeadingColor).Bold(colored),
		section: r.NewStyle().Foreground(HeadingColor).Bold(colored),
		changed: r.NewStyle().Foreground(SuccessColor).Bold(colored),
		failed:  r.NewStyle().Foreground(ErrorColor).Bold(colored),
		warning: r.NewStyle().Foreground(WarningColor).Bold(colored),
		info:    r.NewStyle().Foreground(InfoColor),
		muted:   r.NewStyle().Foreground(MutedColor),
		path:    r.NewStyle().Foreground(PathColor),
	}
}
