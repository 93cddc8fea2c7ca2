package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/pr-warden/internal/core"
)

func newTestPrinter() (*Printer, *bytes.Buffer) {
	color.NoColor = true
	var out bytes.Buffer
	return &Printer{Out: &out, Width: 80}, &out
}

func TestPrinter_AllLinesOnOut(t *testing.T) {
	p, out := newTestPrinter()

	p.Success("title ok: %s", "[Fix] x")
	p.Info("checking")
	p.Warning("no headings")
	p.Error("rejected")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "title ok: [Fix] x")
	assert.Contains(t, lines[1], "checking")
	assert.Contains(t, lines[2], "no headings")
	assert.Contains(t, lines[3], "rejected")
}

func TestPrinter_Report(t *testing.T) {
	p, out := newTestPrinter()

	p.Report(core.CheckReport{
		Title:      "PR 质量评估通过",
		Summary:    "PR 质量评分: 8/10，达到合格标准。",
		Text:       "## Strengths\n\n- clear motivation\n",
		Conclusion: core.ConclusionSuccess,
	})

	got := out.String()
	assert.Contains(t, got, "PR 质量评估通过")
	assert.Contains(t, got, "success PR 质量评分: 8/10")
	assert.Contains(t, got, "clear motivation")
}

func TestPrinter_ReviewTable(t *testing.T) {
	p, out := newTestPrinter()

	err := p.ReviewTable([]core.FileReview{
		{FileName: "main.go", Score: 9},
		{FileName: "db/query.go", Score: 4, Issues: []core.ReviewIssue{{Severity: core.SeverityHigh}, {Severity: core.SeverityLow}}},
	}, 6)
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "FILE")
	assert.Contains(t, got, "main.go")
	assert.Contains(t, got, "9/10")
	assert.Contains(t, got, "db/query.go")
	assert.Contains(t, got, "4/10")
}

func TestScoreColor(t *testing.T) {
	color.NoColor = true
	assert.Equal(t, "5/10", ScoreColor(5, 6))
	assert.Equal(t, "6/10", ScoreColor(6, 6))
}
