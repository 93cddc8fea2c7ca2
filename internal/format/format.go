// Package format checks pull request titles and descriptions against the
// project's conventions.
package format

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/sevigo/pr-warden/internal/core"
)

// headingPattern finds a markdown heading anywhere in the body. Word
// characters include letters of any script so that Chinese headings count,
// and the separator may be any Unicode space such as U+3000.
var headingPattern = regexp.MustCompile(`#+[\s\p{Z}\x{85}]+[\p{L}\p{N}_]`)

// Rules are the configured format constraints.
type Rules struct {
	TitlePattern  *regexp.Regexp
	MinBodyLength int
}

// NewRules compiles the title pattern.
func NewRules(titlePattern string, minBodyLength int) (Rules, error) {
	re, err := regexp.Compile(titlePattern)
	if err != nil {
		return Rules{}, fmt.Errorf("invalid PR title pattern %q: %w", titlePattern, err)
	}
	return Rules{TitlePattern: re, MinBodyLength: minBodyLength}, nil
}

// ValidateTitle requires the pattern to match at the start of the title.
func ValidateTitle(title string, pattern *regexp.Regexp) core.FormatVerdict {
	if loc := pattern.FindStringIndex(title); loc != nil && loc[0] == 0 {
		return core.FormatVerdict{
			TitleValid: true,
			BodyValid:  true,
			Message:    fmt.Sprintf("PR 标题 `%s` 格式正确 / title is well formed", title),
		}
	}
	return core.FormatVerdict{
		TitleValid: false,
		BodyValid:  true,
		Message:    titleErrorMessage(title, pattern.String()),
	}
}

// ValidateBody fails when the trimmed body is shorter than minLength
// characters. A body without any markdown heading passes with a warning.
func ValidateBody(body string, minLength int) core.FormatVerdict {
	if utf8.RuneCountInString(strings.TrimSpace(body)) < minLength {
		return core.FormatVerdict{
			TitleValid: true,
			BodyValid:  false,
			Message:    bodyErrorMessage(minLength),
		}
	}

	verdict := core.FormatVerdict{
		TitleValid: true,
		BodyValid:  true,
		Message:    "PR 描述充分 / description is sufficient",
	}
	if !headingPattern.MatchString(body) {
		verdict.Warning = headingWarning
	}
	return verdict
}

// Result combines the title and body checks of one pull request.
type Result struct {
	Title core.FormatVerdict
	Body  core.FormatVerdict
}

// Validate runs both checks.
func Validate(meta core.PullRequestMetadata, rules Rules) Result {
	return Result{
		Title: ValidateTitle(meta.Title, rules.TitlePattern),
		Body:  ValidateBody(meta.Body, rules.MinBodyLength),
	}
}

// Accepted reports whether both hard checks passed. Warnings are ignored.
func (r Result) Accepted() bool {
	return r.Title.TitleValid && r.Body.BodyValid
}

// Verdict merges the two checks into a single verdict.
func (r Result) Verdict() core.FormatVerdict {
	return core.FormatVerdict{
		TitleValid: r.Title.TitleValid,
		BodyValid:  r.Body.BodyValid,
		Message:    r.Title.Message + "\n\n" + r.Body.Message,
		Warning:    r.Body.Warning,
	}
}

// Report renders the bilingual check report.
func (r Result) Report() core.CheckReport {
	if !r.Accepted() {
		text := r.Title.Message + "\n\n" + r.Body.Message
		if r.Body.Warning != "" {
			text += "\n\n" + r.Body.Warning
		}
		return core.CheckReport{
			Title:      "PR 格式验证失败 / PR format check failed",
			Summary:    "PR 标题或描述不符合要求格式。The PR title or description does not follow the required format.",
			Text:       text,
			Conclusion: core.ConclusionFailure,
		}
	}

	text := "## ✅ PR 格式检查通过 / PR format check passed\n\n" +
		"- 标题格式正确 / title is well formed\n" +
		"- 描述内容充分 / description is sufficient\n\n" +
		"感谢您遵循项目规范！Thanks for following the project conventions!"
	if r.Body.Warning != "" {
		text += "\n\n" + r.Body.Warning
	}
	return core.CheckReport{
		Title:      "PR 格式检查通过 / PR format check passed",
		Summary:    "PR 标题和描述格式正确。The PR title and description are well formed.",
		Text:       text,
		Conclusion: core.ConclusionSuccess,
	}
}
