package utils

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// Glamour style names accepted by NewMarkdownRenderer. "auto" detects the
// terminal background and must not be used while Bubble Tea owns stdin.
const (
	StyleAuto  = "auto"
	StyleDark  = "dark"
	StyleNoTTY = "notty"
)

// MarkdownRenderer renders result text as terminal markdown. The underlying
// glamour renderer is rebuilt when the wrap width changes and the last render
// is cached, since View runs on every frame.
type MarkdownRenderer struct {
	mu       sync.Mutex
	style    string
	width    int
	renderer *glamour.TermRenderer
	lastIn   string
	lastOut  string
}

func NewMarkdownRenderer(style string) *MarkdownRenderer {
	if style == "" {
		style = StyleDark
	}
	return &MarkdownRenderer{style: style}
}

// Render returns text rendered for width columns. Rendering failures fall
// back to the raw text.
func (m *MarkdownRenderer) Render(text string, width int) string {
	if width < 20 {
		width = 20
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.renderer != nil && width == m.width && text == m.lastIn {
		return m.lastOut
	}

	if m.renderer == nil || width != m.width {
		r, err := m.newRenderer(width)
		if err != nil {
			return text
		}
		m.renderer = r
		m.width = width
	}

	out, err := m.renderer.Render(text)
	if err != nil {
		return text
	}
	out = strings.Trim(out, "\n")

	m.lastIn = text
	m.lastOut = out
	return out
}

func (m *MarkdownRenderer) newRenderer(width int) (*glamour.TermRenderer, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if m.style == StyleAuto {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(m.style))
	}
	return glamour.NewTermRenderer(opts...)
}
