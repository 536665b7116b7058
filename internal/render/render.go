// Package render turns classified content into display text. The output is a
// pure function of the content value, so the same code serves the terminal UI
// (styled) and the CLI (plain).
package render

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/solvewise/internal/content"
	"github.com/abhisek/solvewise/internal/ui/theme"
)

// FallbackError is shown for an error reply that carries no explanation.
const FallbackError = "Something went wrong. Please try again."

// Options controls how content is rendered.
type Options struct {
	// Width wraps text at this many columns. Zero disables wrapping.
	Width int
	// Styled enables lipgloss colors.
	Styled bool
}

// Content renders c as display text.
func Content(c content.Content, opts Options) string {
	r := renderer{opts: opts}
	var out string
	switch v := c.(type) {
	case content.Lesson:
		out = r.lesson(v)
	case content.Practice:
		out = r.practice(v)
	case content.ErrorContent:
		out = r.errorReply(v)
	case content.NumberedList:
		out = r.numbered(v.Items, "")
	case content.PlainText:
		out = r.wrap(v.Text)
	case nil:
		return ""
	default:
		out = r.wrap(content.Canonical(c))
	}
	return strings.TrimRight(out, "\n")
}

// Plain renders c without styling or wrapping.
func Plain(c content.Content) string {
	return Content(c, Options{})
}

type renderer struct {
	opts Options
}

func (r renderer) style(s lipgloss.Style, text string) string {
	if !r.opts.Styled {
		return text
	}
	return s.Render(text)
}

func (r renderer) wrap(text string) string {
	if r.opts.Width <= 0 || lipgloss.Width(text) <= r.opts.Width {
		return text
	}
	return lipgloss.NewStyle().Width(r.opts.Width).Render(text)
}

func (r renderer) heading(text string) string {
	return r.style(theme.Heading, text)
}

func (r renderer) lesson(l content.Lesson) string {
	var b strings.Builder

	title := "Lesson"
	if l.Topic != "" {
		title = "Lesson: " + l.Topic
	}
	b.WriteString(r.style(theme.Title, title))
	b.WriteString("\n")

	if len(l.Concepts) > 0 {
		b.WriteString("\n")
		b.WriteString(r.heading("Key concepts"))
		b.WriteString("\n")
		for _, c := range l.Concepts {
			b.WriteString(r.wrap("  • " + c))
			b.WriteString("\n")
		}
	}

	for i, ex := range l.Examples {
		b.WriteString("\n")
		label := fmt.Sprintf("Example %d", i+1)
		if ex.Problem != "" {
			label += ": " + ex.Problem
		}
		b.WriteString(r.wrap(r.heading(label)))
		b.WriteString("\n")
		if len(ex.Steps) > 0 {
			b.WriteString(r.numbered(ex.Steps, "  "))
		}
		if ex.FinalAnswer != "" {
			b.WriteString("  " + r.style(theme.Answer, "Answer: "+ex.FinalAnswer))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (r renderer) practice(p content.Practice) string {
	var sections []string

	if p.FinalAnswer != "" {
		sections = append(sections, r.style(theme.Answer, "Answer: "+p.FinalAnswer))
	}
	if len(p.Steps) > 0 {
		sections = append(sections, r.heading("Steps")+"\n"+strings.TrimRight(r.numbered(p.Steps, "  "), "\n"))
	}
	if p.Explanation != "" {
		sections = append(sections, r.heading("Explanation")+"\n"+r.wrap(p.Explanation))
	}
	return strings.Join(sections, "\n\n")
}

func (r renderer) errorReply(e content.ErrorContent) string {
	msg := strings.TrimSpace(e.Explanation)
	if msg == "" {
		msg = FallbackError
	}
	return r.style(theme.Failure, "Error: ") + r.wrap(msg)
}

func (r renderer) numbered(items []string, indent string) string {
	var b strings.Builder
	for i, item := range items {
		b.WriteString(r.wrap(fmt.Sprintf("%s%d. %s", indent, i+1, item)))
		b.WriteString("\n")
	}
	return b.String()
}
