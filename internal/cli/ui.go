package cli

import (
	"fmt"
	"html"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Status lines go to stdout so they interleave with command output; the
// logger and the spinner own stderr.

var (
	colorAccent = lipgloss.Color("36")  // teal
	colorGood   = lipgloss.Color("35")  // green
	colorWarn   = lipgloss.Color("220") // amber
	colorBad    = lipgloss.Color("167") // soft red
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	// StyleTitle renders headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	// StyleHighlight renders set ids and file names inside messages.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)

	// StyleNumber renders counts, scores and answers.
	StyleNumber = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)

	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGood)

	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleWarning = lipgloss.NewStyle().Foreground(colorWarn)
)

// mark is a one-glyph status prefix.
type mark struct {
	glyph string
	style lipgloss.Style
}

func (m mark) String() string { return m.style.Render(m.glyph) }

var (
	markSuccess = mark{"✓", lipgloss.NewStyle().Foreground(colorGood)}
	markError   = mark{"✗", lipgloss.NewStyle().Foreground(colorBad)}
	markWarning = mark{"!", lipgloss.NewStyle().Foreground(colorWarn)}
	markInfo    = mark{"›", lipgloss.NewStyle().Foreground(colorGray)}
	markArrow   = mark{"→", StyleDim}

	styleSpinner = lipgloss.NewStyle().Foreground(colorAccent)
)

func printMarked(m mark, format string, args ...any) {
	fmt.Println(m.String() + " " + fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) { printMarked(markSuccess, format, args...) }

func printError(format string, args ...any) { printMarked(markError, format, args...) }

func printInfo(format string, args ...any) { printMarked(markInfo, format, args...) }

func printWarning(format string, args ...any) {
	printMarked(markWarning, "%s", styleWarning.Render(fmt.Sprintf(format, args...)))
}

// printDetail prints an indented, dimmed line under a status line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile reports a written file.
func printFile(path string) {
	fmt.Println("  " + markArrow.String() + " " + styleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Println(styleKey.Render(key) + " " + styleValue.Render(value))
}

// printStats prints "N problems · M diagrams · cached|fresh". Zero counts
// are left out.
func printStats(problems, diagrams int, cached bool) {
	var parts []string
	if problems > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d problems", problems)))
	}
	if diagrams > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d diagrams", diagrams)))
	}
	if cached {
		parts = append(parts, StyleSuccess.Render("cached"))
	} else {
		parts = append(parts, lipgloss.NewStyle().Foreground(colorGray).Render("fresh"))
	}
	fmt.Println("  " + strings.Join(parts, StyleDim.Render(" · ")))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + StyleHighlight.Render(cmd))
}

func printNewline() { fmt.Println() }

// plain decodes the HTML entities used in prompts (&theta;, &sup2;) for
// terminal output.
func plain(s string) string {
	return html.UnescapeString(s)
}
