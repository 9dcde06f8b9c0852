// Package ui holds the terminal front end: the lipgloss theme, the huh
// credential form, the Bubble Tea chat view and headless fallbacks.
package ui

import (
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Palette colors. Light variants are picked on light terminal backgrounds.
var (
	colorPrimary   = lipgloss.AdaptiveColor{Light: "#C45A3C", Dark: "#DA7756"}
	colorSecondary = lipgloss.AdaptiveColor{Light: "#5B21B6", Dark: "#A78BFA"}
	colorSuccess   = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"}
	colorError     = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"}
	colorText      = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#F3F4F6"}
	colorMuted     = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	colorBorder    = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"}
)

// Theme carries the styles shared by every ui component. With NoColor set
// all styles render plain text.
type Theme struct {
	NoColor bool

	Primary lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Border  lipgloss.Style
}

// NewTheme builds the keeper theme.
func NewTheme(noColor bool) *Theme {
	t := &Theme{NoColor: noColor}
	if noColor {
		plain := lipgloss.NewStyle()
		t.Primary, t.Success, t.Error, t.Muted, t.Border = plain, plain, plain, plain, plain
		return t
	}
	t.Primary = lipgloss.NewStyle().Foreground(colorPrimary)
	t.Success = lipgloss.NewStyle().Foreground(colorSuccess)
	t.Error = lipgloss.NewStyle().Foreground(colorError)
	t.Muted = lipgloss.NewStyle().Foreground(colorMuted)
	t.Border = lipgloss.NewStyle().Foreground(colorBorder)
	return t
}

func (t *Theme) cardStyle() lipgloss.Style {
	s := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 2)
	if !t.NoColor {
		s = s.BorderForeground(colorBorder)
	}
	return s
}

// Card renders content inside a rounded border box with a bold title.
func (t *Theme) Card(title, content string) string {
	body := t.Primary.Bold(true).Render(title)
	if content != "" {
		body += "\n\n" + content
	}
	return t.cardStyle().Render(body)
}

// SuccessCard renders a check-marked title followed by detail lines.
func (t *Theme) SuccessCard(title string, details ...string) string {
	return t.markedCard(t.Success.Render("✓")+" "+title, details)
}

// ErrorCard renders a cross-marked title followed by detail lines.
func (t *Theme) ErrorCard(title string, details ...string) string {
	return t.markedCard(t.Error.Render("✗")+" "+title, details)
}

func (t *Theme) markedCard(titleLine string, details []string) string {
	var body strings.Builder
	body.WriteString(titleLine)
	if len(details) > 0 {
		body.WriteString("\n\n")
		body.WriteString(strings.Join(details, "\n"))
	}
	return t.cardStyle().Render(body.String())
}

// KeyValue renders an aligned "key  value" line with a muted key.
func (t *Theme) KeyValue(key, value string) string {
	return t.Muted.Render(padRight(key, 10)) + " " + value
}

func padRight(s string, n int) string {
	if w := lipgloss.Width(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}

// formTheme maps the palette onto a huh theme.
func (t *Theme) formTheme() *huh.Theme {
	if t.NoColor {
		return huh.ThemeBase()
	}
	ht := huh.ThemeBase()

	ht.Focused.Base = ht.Focused.Base.BorderForeground(colorBorder)
	ht.Focused.Card = ht.Focused.Base
	ht.Focused.Title = ht.Focused.Title.Foreground(colorPrimary).Bold(true)
	ht.Focused.Description = ht.Focused.Description.Foreground(colorMuted)
	ht.Focused.ErrorIndicator = ht.Focused.ErrorIndicator.Foreground(colorError)
	ht.Focused.ErrorMessage = ht.Focused.ErrorMessage.Foreground(colorError)
	ht.Focused.SelectSelector = ht.Focused.SelectSelector.Foreground(colorPrimary).SetString("▸ ")
	ht.Focused.Option = ht.Focused.Option.Foreground(colorText)
	ht.Focused.SelectedOption = ht.Focused.SelectedOption.Foreground(colorSuccess)
	ht.Focused.TextInput.Cursor = ht.Focused.TextInput.Cursor.Foreground(colorPrimary)
	ht.Focused.TextInput.Placeholder = ht.Focused.TextInput.Placeholder.Foreground(colorMuted)
	ht.Focused.TextInput.Prompt = ht.Focused.TextInput.Prompt.Foreground(colorSecondary)
	ht.Focused.FocusedButton = ht.Focused.FocusedButton.
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}).
		Background(colorPrimary)
	ht.Focused.BlurredButton = ht.Focused.BlurredButton.
		Foreground(colorText).
		Background(lipgloss.AdaptiveColor{Light: "#E5E7EB", Dark: "#374151"})
	ht.Focused.Next = ht.Focused.FocusedButton

	ht.Blurred = ht.Focused
	ht.Blurred.Base = ht.Focused.Base.BorderStyle(lipgloss.HiddenBorder())
	ht.Blurred.Card = ht.Blurred.Base

	ht.Group.Title = ht.Focused.Title
	ht.Group.Description = ht.Focused.Description
	return ht
}
