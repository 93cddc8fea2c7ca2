// Package console prints human readable results for people watching a CI
// log or running the commands locally.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/sevigo/pr-warden/internal/core"
)

var (
	infoPrefix    = color.New(color.FgHiBlue).Sprint("i")
	successPrefix = color.New(color.FgHiGreen).Sprint("✓")
	warningPrefix = color.New(color.FgHiYellow).Sprint("⚠")
	errorPrefix   = color.New(color.FgHiRed).Sprint("✗")
	dimColor      = color.New(color.FgHiBlack)
	green         = color.New(color.FgHiGreen).SprintFunc()
	yellow        = color.New(color.FgHiYellow).SprintFunc()
	red           = color.New(color.FgHiRed).SprintFunc()
)

var bannerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("51")).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("33")).
	Padding(0, 1)

// Printer writes every human readable line to Out. Logs stay on stderr.
type Printer struct {
	Out io.Writer
	// MarkdownStyle is a glamour standard style name such as "dark" or
	// "notty". Empty selects "notty", which suits CI logs.
	MarkdownStyle string
	Width         int
}

// New creates a Printer on the process streams.
func New() *Printer {
	return &Printer{Out: os.Stdout, Width: 100}
}

func (p *Printer) Info(format string, a ...any) {
	fmt.Fprintf(p.Out, "%s %s\n", infoPrefix, fmt.Sprintf(format, a...))
}

func (p *Printer) Success(format string, a ...any) {
	fmt.Fprintf(p.Out, "%s %s\n", successPrefix, fmt.Sprintf(format, a...))
}

func (p *Printer) Warning(format string, a ...any) {
	fmt.Fprintf(p.Out, "%s %s\n", warningPrefix, fmt.Sprintf(format, a...))
}

func (p *Printer) Error(format string, a ...any) {
	fmt.Fprintf(p.Out, "%s %s\n", errorPrefix, fmt.Sprintf(format, a...))
}

// Dim prints secondary detail.
func (p *Printer) Dim(format string, a ...any) {
	dimColor.Fprintf(p.Out, format+"\n", a...)
}

// Banner prints a boxed heading.
func (p *Printer) Banner(title string) {
	fmt.Fprintln(p.Out, bannerStyle.Render(title))
}

// Markdown renders md for the terminal. The raw text is printed when the
// renderer cannot be built.
func (p *Printer) Markdown(md string) {
	style := p.MarkdownStyle
	if style == "" {
		style = "notty"
	}
	width := p.Width
	if width <= 0 {
		width = 100
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(p.Out, out)
			return
		}
	}
	fmt.Fprintln(p.Out, md)
}

// Report prints a check report: a banner with the title, the summary line
// and the rendered text.
func (p *Printer) Report(r core.CheckReport) {
	p.Banner(r.Title)
	fmt.Fprintf(p.Out, "%s %s\n", ConclusionColor(r.Conclusion), r.Summary)
	if strings.TrimSpace(r.Text) != "" {
		p.Markdown(r.Text)
	}
}

// List prints a heading followed by bullet items.
func (p *Printer) List(heading string, items []string) {
	fmt.Fprintln(p.Out, heading)
	for _, item := range items {
		fmt.Fprintf(p.Out, "  - %s\n", item)
	}
}

// ReviewTable prints one row per reviewed file.
func (p *Printer) ReviewTable(files []core.FileReview, threshold int) error {
	table := tablewriter.NewTable(p.Out,
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Lines:      tw.LinesNone,
				Separators: tw.SeparatorsNone,
			},
		}),
		tablewriter.WithPadding(tw.Padding{Left: "", Right: "  "}),
	)
	table.Header([]string{"FILE", "SCORE", "ISSUES", "HIGH"})

	for _, fr := range files {
		high := 0
		for _, issue := range fr.Issues {
			if issue.Severity == core.SeverityHigh {
				high++
			}
		}
		if err := table.Append([]string{
			fr.FileName,
			ScoreColor(fr.Score, threshold),
			fmt.Sprint(len(fr.Issues)),
			fmt.Sprint(high),
		}); err != nil {
			return fmt.Errorf("failed to add table row: %w", err)
		}
	}
	return table.Render()
}

// ScoreColor colors a score relative to the acceptance threshold.
func ScoreColor(score, threshold int) string {
	s := fmt.Sprintf("%d/10", score)
	switch {
	case score >= threshold+2:
		return green(s)
	case score >= threshold:
		return yellow(s)
	default:
		return red(s)
	}
}

// ConclusionColor colors a conclusion name.
func ConclusionColor(c core.Conclusion) string {
	switch c {
	case core.ConclusionSuccess:
		return green(string(c))
	case core.ConclusionFailure, core.ConclusionTimedOut:
		return red(string(c))
	default:
		return yellow(string(c))
	}
}
