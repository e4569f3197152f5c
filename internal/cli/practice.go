package cli

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mathproblem/pkg/diagram"
	"github.com/matzehuels/mathproblem/pkg/problem"
)

// Practice styles
var (
	promptStyle = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
	inputStyle  = lipgloss.NewStyle().Foreground(colorAccent)
	figureStyle = lipgloss.NewStyle().Foreground(colorGray).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
	helpStyle = lipgloss.NewStyle().Foreground(colorDim)
)

func (c *CLI) practiceCommand() *cobra.Command {
	var (
		src     setSource
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "practice",
		Short: "Work through a problem set in the terminal",
		Long: `Practice a problem set interactively. Addition and right-angle answers are
checked automatically; fractions and decimals that agree to two places count
as correct. Graph-transformation answers are revealed for you to mark.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPractice(cmd.Context(), &src, noCache)
		},
	}

	src.addFlags(cmd, true)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the render cache")

	return cmd
}

func (c *CLI) runPractice(ctx context.Context, src *setSource, noCache bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	set, err := c.loadSet(ctx, cfg, runner, src)
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(newPracticeModel(set.Problems), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	m, ok := final.(practiceModel)
	if !ok {
		return nil
	}

	right, graded := m.score()
	printNewline()
	if graded == 0 {
		printDetail("No answers given")
		return nil
	}
	printSuccess("Scored %s of %d", StyleNumber.Render(strconv.Itoa(right)), graded)
	if graded < len(set.Problems) {
		printDetail("Stopped after %d of %d problems", graded, len(set.Problems))
	}
	return nil
}

// =============================================================================
// practiceModel - Interactive practice session
// =============================================================================

type practicePhase int

const (
	phaseAnswer    practicePhase = iota // typing an answer
	phaseFeedback                       // automatic check shown
	phaseSelfGrade                      // answer revealed, waiting for y/n
	phaseDone
)

// practiceModel is the bubbletea model for a practice session.
type practiceModel struct {
	problems  []problem.Problem
	index     int
	input     string
	phase     practicePhase
	results   []*bool
	showSteps bool
}

func newPracticeModel(problems []problem.Problem) practiceModel {
	m := practiceModel{problems: problems, results: make([]*bool, len(problems))}
	if len(problems) == 0 {
		m.phase = phaseDone
	}
	return m
}

func (m practiceModel) Init() tea.Cmd {
	return nil
}

func (m practiceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	}

	switch m.phase {
	case phaseAnswer:
		switch key.Type {
		case tea.KeyRunes:
			m.input += string(key.Runes)
		case tea.KeySpace:
			m.input += " "
		case tea.KeyBackspace:
			if r := []rune(m.input); len(r) > 0 {
				m.input = string(r[:len(r)-1])
			}
		case tea.KeyEnter:
			p := m.problems[m.index]
			if selfGraded(p.Kind) {
				m.phase = phaseSelfGrade
				return m, nil
			}
			if strings.TrimSpace(m.input) == "" {
				return m, nil
			}
			ok := answersMatch(m.input, p.Answer)
			m.results[m.index] = &ok
			m.phase = phaseFeedback
		}

	case phaseFeedback:
		switch {
		case key.Type == tea.KeyEnter:
			return m.next()
		case key.Type == tea.KeyRunes && string(key.Runes) == "s":
			m.showSteps = !m.showSteps
		}

	case phaseSelfGrade:
		if key.Type != tea.KeyRunes {
			return m, nil
		}
		switch strings.ToLower(string(key.Runes)) {
		case "y":
			ok := true
			m.results[m.index] = &ok
			return m.next()
		case "n":
			ok := false
			m.results[m.index] = &ok
			return m.next()
		}

	case phaseDone:
		return m, tea.Quit
	}
	return m, nil
}

func (m practiceModel) next() (tea.Model, tea.Cmd) {
	m.index++
	m.input = ""
	m.showSteps = false
	if m.index >= len(m.problems) {
		m.phase = phaseDone
		return m, tea.Quit
	}
	m.phase = phaseAnswer
	return m, nil
}

// score returns the number of correct answers and the number graded.
func (m practiceModel) score() (right, graded int) {
	for _, r := range m.results {
		if r == nil {
			continue
		}
		graded++
		if *r {
			right++
		}
	}
	return right, graded
}

func (m practiceModel) View() string {
	var b strings.Builder

	if m.phase == phaseDone {
		right, graded := m.score()
		b.WriteString(StyleTitle.Render("Finished"))
		b.WriteString(fmt.Sprintf("\n\n%s of %d correct\n", StyleNumber.Render(strconv.Itoa(right)), graded))
		return b.String()
	}

	p := m.problems[m.index]
	b.WriteString(StyleTitle.Render(fmt.Sprintf("Problem %d of %d", m.index+1, len(m.problems))))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(fmt.Sprintf("%s · level %d", p.Kind, p.Level)))
	b.WriteString("\n\n")
	b.WriteString(promptStyle.Render(plain(p.Prompt)))
	b.WriteString("\n")
	if p.Figure != nil {
		b.WriteString(figureStyle.Render(describeFigure(*p.Figure)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch m.phase {
	case phaseAnswer:
		b.WriteString("Answer: " + inputStyle.Render(m.input) + inputStyle.Render("█"))
		b.WriteString("\n\n")
		if selfGraded(p.Kind) {
			b.WriteString(helpStyle.Render("⏎ reveal answer  esc quit"))
		} else {
			b.WriteString(helpStyle.Render("⏎ check  esc quit"))
		}

	case phaseFeedback:
		if *m.results[m.index] {
			b.WriteString(markSuccess.String() + " " + StyleSuccess.Render("Correct"))
		} else {
			b.WriteString(markError.String() + " Expected " + StyleNumber.Render(plain(p.Answer)))
		}
		b.WriteString("\n")
		if m.showSteps {
			b.WriteString(renderSteps(p.Steps))
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("⏎ next  s steps  esc quit"))

	case phaseSelfGrade:
		b.WriteString("Answer: " + StyleNumber.Render(plain(p.Answer)))
		b.WriteString("\n")
		b.WriteString(renderSteps(p.Steps))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("y got it  n missed it  esc quit"))
	}
	return b.String()
}

func renderSteps(steps []string) string {
	var b strings.Builder
	for _, s := range steps {
		b.WriteString("  " + StyleDim.Render(markInfo.glyph+" "+plain(s)) + "\n")
	}
	return b.String()
}

// describeFigure summarizes a diagram in text, with "?" for unlabeled sides.
func describeFigure(r diagram.Request) string {
	side := func(name string, label *string) string {
		if label == nil {
			return name + " = ?"
		}
		return name + " = " + plain(*label)
	}
	theta := r.Theta
	if theta == "" {
		theta = diagram.VertexB.String()
	}
	return strings.Join([]string{
		"right angle at A, θ at " + strings.ToUpper(theta),
		side("AB", r.Labels.AB) + "   " + side("AC", r.Labels.AC) + "   " + side("BC", r.Labels.BC),
	}, "\n")
}

// selfGraded reports whether answers of kind k are marked by the learner.
func selfGraded(k problem.Kind) bool { return k == problem.KindGraphTransform }

// answersMatch compares a typed answer with the expected one, ignoring case
// and whitespace. Numeric answers, including fractions, match when they
// agree to two decimal places.
func answersMatch(got, want string) bool {
	g, w := normalizeAnswer(got), normalizeAnswer(plain(want))
	if g == w {
		return true
	}
	gv, gok := numericValue(g)
	wv, wok := numericValue(w)
	return gok && wok && math.Abs(gv-wv) < 0.005
}

func normalizeAnswer(s string) string {
	s = strings.ReplaceAll(strings.ToLower(s), "^2", "²")
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// numericValue parses "n" or "n/d".
func numericValue(s string) (float64, bool) {
	num, den, frac := strings.Cut(s, "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	if !frac {
		return n, true
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0, false
	}
	return n / d, true
}
