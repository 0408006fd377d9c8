// Package report renders a run's articles, errors and repeated words for
// the console.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tschuyebuhl/opinion-scraper/runner"
	"github.com/tschuyebuhl/opinion-scraper/wordfreq"
)

// MaxBodyRunes bounds the body excerpt printed per article.
const MaxBodyRunes = 1000

type Reporter struct {
	out io.Writer

	headerStyle lipgloss.Style
	labelStyle  lipgloss.Style
	errorStyle  lipgloss.Style
	dimStyle    lipgloss.Style
}

// New creates a Reporter writing to out. Colors are only used when out is a
// terminal.
func New(out io.Writer) *Reporter {
	r := lipgloss.NewRenderer(out)
	return &Reporter{
		out: out,
		headerStyle: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"}),
		labelStyle: r.NewStyle().Bold(true),
		errorStyle: r.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#D00000", Dark: "#FF5555"}),
		dimStyle: r.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}),
	}
}

// Write renders the whole report in one write.
func (r *Reporter) Write(res runner.Result) error {
	var b strings.Builder

	r.sessions(&b, res)
	r.articles(&b, res)
	r.errors(&b, res)
	r.frequency(&b, res.Frequency)

	_, err := io.WriteString(r.out, b.String())
	return err
}

func (r *Reporter) sessions(b *strings.Builder, res runner.Result) {
	failed := res.Failed()
	fmt.Fprintf(b, "%s %d run, %d succeeded, %d failed\n",
		r.labelStyle.Render("Sessions:"), len(res.Sessions), len(res.Sessions)-failed, failed)
}

func (r *Reporter) articles(b *strings.Builder, res runner.Result) {
	fmt.Fprintf(b, "\n%s\n", r.headerStyle.Render(fmt.Sprintf("ARTICLES (%d)", len(res.Articles))))
	if len(res.Articles) == 0 {
		fmt.Fprintln(b, r.dimStyle.Render("(none)"))
		return
	}
	for i, a := range res.Articles {
		fmt.Fprintf(b, "\n--- ARTICLE %d ---\n", i+1)
		fmt.Fprintf(b, "%s %s\n", r.labelStyle.Render("URL:"), a.URL)
		fmt.Fprintf(b, "%s %s\n", r.labelStyle.Render("Title (ES):"), a.Title)
		fmt.Fprintf(b, "%s %s\n", r.labelStyle.Render("Title (EN):"), a.TranslatedTitle)
		fmt.Fprintf(b, "%s\n%s\n", r.labelStyle.Render("Body (ES):"), Excerpt(a.Body, MaxBodyRunes))
		cover := a.CoverImage.String()
		if a.CoverImage.IsZero() {
			cover = r.dimStyle.Render("(none)")
		}
		fmt.Fprintf(b, "%s %s\n", r.labelStyle.Render("Cover image:"), cover)
	}
}

func (r *Reporter) errors(b *strings.Builder, res runner.Result) {
	var lines []string
	for _, s := range res.Sessions {
		if s.Err != nil {
			lines = append(lines, fmt.Sprintf("[%s] session failed: %v", s.Session, s.Err))
		}
		for _, e := range s.Errors {
			lines = append(lines, fmt.Sprintf("[%s] %s %s: %v", s.Session, e.Stage, e.URL, e.Err))
		}
	}
	if len(lines) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s\n", r.headerStyle.Render(fmt.Sprintf("ERRORS (%d)", len(lines))))
	for _, line := range lines {
		fmt.Fprintln(b, r.errorStyle.Render(line))
	}
}

func (r *Reporter) frequency(b *strings.Builder, table wordfreq.Table) {
	fmt.Fprintf(b, "\n%s\n", r.headerStyle.Render(
		fmt.Sprintf("Words repeated more than %d times in translated titles", wordfreq.Threshold)))
	entries := table.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(b, r.dimStyle.Render("(none)"))
		return
	}
	for _, e := range entries {
		fmt.Fprintf(b, "'%s': %d\n", e.Word, e.Count)
	}
}

// Excerpt shortens s to at most max runes, marking the cut with "...".
func Excerpt(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
