package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// minWrap keeps glamour from wrapping to nothing on tiny terminals.
const minWrap = 20

// Markdown renders bot replies. Rendering never fails: on error or panic
// the source text is returned unchanged.
type Markdown struct {
	renderer *glamour.TermRenderer
}

// NewMarkdown creates a renderer wrapping at width columns.
func NewMarkdown(width int, noColor bool) *Markdown {
	if width < minWrap {
		width = minWrap
	}
	style := glamour.WithAutoStyle()
	if noColor {
		style = glamour.WithStandardStyle("notty")
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return &Markdown{}
	}
	return &Markdown{renderer: r}
}

// Render returns content as styled terminal text.
func (m *Markdown) Render(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = content
		}
	}()

	if m == nil || m.renderer == nil || content == "" {
		return content
	}
	out, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}
