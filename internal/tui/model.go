// Package tui is the interactive curation front end: a Bubble Tea model
// over a curation session. The board shows all four days plus the unused
// bucket; a command bar at the bottom drives the session's action set.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/newsfixed/edition/internal/curation"
	"github.com/newsfixed/edition/internal/news"
)

// pendingMove is a move that hit a full target day and is waiting on an
// overflow resolution from the operator.
type pendingMove struct {
	fromDay, slot, toDay int

	// choice is set once the operator picked swap or replace; both need
	// a target mini index before the move can be retried.
	choice       curation.OverflowChoice
	choosingMini bool
}

// regroupDone reports a finished regrouping pass.
type regroupDone struct{ err error }

// Model is the root Bubble Tea model for a curation run.
type Model struct {
	session  *curation.Session
	savePath string

	input    textinput.Model
	pending  *pendingMove
	busy     bool
	saved    bool
	quitting bool

	message string
	warning string
	errMsg  string
	issues  []curation.Issue

	width  int
	height int
	ready  bool
}

// New creates a curation model over the given session. Saving writes the
// snapshot to savePath.
func New(session *curation.Session, savePath string) Model {
	ti := textinput.New()
	ti.Placeholder = "command (? for help)"
	ti.Prompt = "> "
	ti.CharLimit = 120
	ti.Focus()

	return Model{
		session:  session,
		savePath: savePath,
		input:    ti,
	}
}

// Run drives a session to completion and reports whether a snapshot was
// saved.
func Run(session *curation.Session, savePath string) (bool, error) {
	p := tea.NewProgram(New(session, savePath), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("curation ui failed: %w", err)
	}
	m, ok := final.(Model)
	if !ok {
		return false, nil
	}
	return m.saved, nil
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case regroupDone:
		m.busy = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
		} else {
			m.message = "stories regrouped under current themes"
		}
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		if m.pending != nil {
			return m.handleOverflowKey(msg)
		}
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			return m.runCommand(strings.TrimSpace(m.input.Value()))
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleOverflowKey resolves a pending move: first swap/replace/cancel,
// then, for swap, the 1-based mini index to exchange.
func (m Model) handleOverflowKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.pending
	if p.choosingMini {
		n, err := strconv.Atoi(msg.String())
		if err != nil || n < 1 || n > news.MaxMinis {
			m.errMsg = fmt.Sprintf("pick a mini 1-%d", news.MaxMinis)
			return m, nil
		}
		m.pending = nil
		return m.applyMove(p.fromDay, p.slot, p.toDay, curation.OverflowResolution{
			Choice:    p.choice,
			MiniIndex: n,
		})
	}

	switch msg.String() {
	case "s":
		p.choice = curation.OverflowSwap
		p.choosingMini = true
		return m, nil
	case "r":
		p.choice = curation.OverflowReplace
		p.choosingMini = true
		return m, nil
	case "c", "esc":
		m.pending = nil
		m.message = "move cancelled"
		return m, nil
	default:
		m.errMsg = "press s (swap), r (replace), or c (cancel)"
		return m, nil
	}
}

// runCommand parses and applies one command bar entry.
func (m Model) runCommand(line string) (tea.Model, tea.Cmd) {
	m.input.SetValue("")
	m.message, m.warning, m.errMsg = "", "", ""
	if line == "" {
		return m, nil
	}

	fields := strings.Fields(line)
	verb := strings.ToLower(fields[0])
	args := fields[1:]

	switch verb {
	case "q", "quit":
		m.quitting = true
		return m, tea.Quit

	case "?", "help":
		m.message = m.helpLine()
		return m, nil

	case "a", "accept":
		return m.apply(curation.Action{Kind: curation.ActionAccept})

	case "b", "back":
		return m.apply(curation.Action{Kind: curation.ActionBack})

	case "v", "view":
		return m.viewCommand(args)

	case "s", "swap":
		n, err := oneInt(args)
		if err != nil {
			m.errMsg = "usage: swap <mini>"
			return m, nil
		}
		return m.apply(curation.Action{Kind: curation.ActionSwap, Day: m.session.CurrentDay(), MiniIndex: n})

	case "m", "move":
		slot, toDay, err := twoInts(args)
		if err != nil {
			m.errMsg = "usage: move <slot> <day>"
			return m, nil
		}
		return m.applyMove(m.session.CurrentDay(), slot, toDay, curation.OverflowResolution{})

	case "d", "drop":
		n, err := oneInt(args)
		if err != nil {
			m.errMsg = "usage: drop <slot>"
			return m, nil
		}
		return m.apply(curation.Action{Kind: curation.ActionDrop, Day: m.session.CurrentDay(), Slot: n})

	case "r", "restore":
		index, toDay, err := twoInts(args)
		if err != nil {
			m.errMsg = "usage: restore <unused#> <day>"
			return m, nil
		}
		return m.apply(curation.Action{Kind: curation.ActionRestore, Slot: index, ToDay: toDay})

	case "e", "edit":
		return m.editCommand(args)

	case "revert":
		return m.apply(curation.Action{Kind: curation.ActionRevertThemes})

	case "regroup":
		m.busy = true
		session := m.session
		return m, func() tea.Msg {
			return regroupDone{err: session.Regroup(context.Background())}
		}

	case "save":
		return m.saveCommand()

	default:
		m.errMsg = fmt.Sprintf("unknown command %q (? for help)", verb)
		return m, nil
	}
}

func (m Model) viewCommand(args []string) (tea.Model, tea.Cmd) {
	n, err := oneInt(args)
	if err != nil {
		m.errMsg = "usage: view <slot|unused#>"
		return m, nil
	}
	if m.session.Phase() == curation.PhaseUnused {
		return m.apply(curation.Action{Kind: curation.ActionView, Day: 0, Slot: n})
	}
	return m.apply(curation.Action{Kind: curation.ActionView, Day: m.session.CurrentDay(), Slot: n})
}

func (m Model) editCommand(args []string) (tea.Model, tea.Cmd) {
	if len(args) < 2 {
		m.errMsg = "usage: edit <day> <new theme name>"
		return m, nil
	}
	day, err := strconv.Atoi(args[0])
	if err != nil {
		m.errMsg = "usage: edit <day> <new theme name>"
		return m, nil
	}
	name := strings.Join(args[1:], " ")
	return m.apply(curation.Action{Kind: curation.ActionEditThemes, ThemeNames: map[int]string{day: name}})
}

func (m Model) saveCommand() (tea.Model, tea.Cmd) {
	issues, err := m.session.Save(m.savePath)
	var verr *curation.ValidationError
	if errors.As(err, &verr) {
		m.issues = verr.Issues
		m.errMsg = "blocking issues; fix them before saving"
		return m, nil
	}
	if err != nil {
		m.errMsg = err.Error()
		return m, nil
	}
	m.issues = issues
	m.saved = true
	m.quitting = true
	return m, tea.Quit
}

func (m Model) apply(a curation.Action) (tea.Model, tea.Cmd) {
	event, err := m.session.Apply(context.Background(), a)
	if err != nil {
		m.errMsg = err.Error()
		return m, nil
	}
	m.message = event.Message
	m.warning = event.Warning
	return m, nil
}

// applyMove routes moves through the overflow prompt when the target day
// is full and no resolution was supplied.
func (m Model) applyMove(fromDay, slot, toDay int, res curation.OverflowResolution) (tea.Model, tea.Cmd) {
	event, err := m.session.Apply(context.Background(), curation.Action{
		Kind:     curation.ActionMove,
		Day:      fromDay,
		Slot:     slot,
		ToDay:    toDay,
		Overflow: res,
	})
	var full *curation.ErrTargetFull
	if errors.As(err, &full) {
		m.pending = &pendingMove{fromDay: fromDay, slot: slot, toDay: toDay}
		return m, nil
	}
	if err != nil {
		m.errMsg = err.Error()
		return m, nil
	}
	m.message = event.Message
	m.warning = event.Warning
	return m, nil
}

func oneInt(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("want one argument")
	}
	return strconv.Atoi(args[0])
}

func twoInts(args []string) (int, int, error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("want two arguments")
	}
	a, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, err
	}
	b, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func (m Model) helpLine() string {
	switch m.session.Phase() {
	case curation.PhaseThemes:
		return "accept | edit <day> <name> | revert | regroup | quit"
	case curation.PhaseUnused:
		return "accept | view <unused#> | restore <unused#> <day> | back | quit"
	case curation.PhaseDays:
		return "accept | view <slot> | swap <mini> | move <slot> <day> | drop <slot> | back | quit"
	default:
		return "save | back | quit"
	}
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(m.titleLine()))
	b.WriteString("\n\n")

	working := m.session.Working()
	for day := 1; day <= news.NumDays; day++ {
		b.WriteString(m.renderDay(working.Day(day)))
	}
	b.WriteString(m.renderUnused(working.Unused))

	for _, issue := range m.issues {
		style := WarningStyle
		if issue.Severity == curation.SeverityBlocking {
			style = ErrorStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("day %d: %s", issue.Day, issue.Message)))
		b.WriteString("\n")
	}

	switch {
	case m.errMsg != "":
		b.WriteString(ErrorStyle.Render(m.errMsg))
		b.WriteString("\n")
	case m.warning != "":
		b.WriteString(WarningStyle.Render(m.warning))
		b.WriteString("\n")
	case m.message != "":
		b.WriteString(MessageStyle.Render(m.message))
		b.WriteString("\n")
	}

	if m.pending != nil {
		if m.pending.choosingMini {
			verb := "swap with"
			if m.pending.choice == curation.OverflowReplace {
				verb = "replace"
			}
			b.WriteString(PromptStyle.Render(fmt.Sprintf("%s which mini on day %d? [1-%d]", verb, m.pending.toDay, news.MaxMinis)))
		} else {
			b.WriteString(PromptStyle.Render(fmt.Sprintf("day %d is full: (s)wap, (r)eplace, (c)ancel", m.pending.toDay)))
		}
		b.WriteString("\n")
		return b.String()
	}

	if m.busy {
		b.WriteString(StatusBarText.Render("regrouping..."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.statusBar())
	return b.String()
}

func (m Model) titleLine() string {
	switch m.session.Phase() {
	case curation.PhaseThemes:
		return "Curation · theme review"
	case curation.PhaseUnused:
		return "Curation · unused stories"
	case curation.PhaseDays:
		return fmt.Sprintf("Curation · day %d", m.session.CurrentDay())
	default:
		return "Curation · review complete"
	}
}

func (m Model) renderDay(d *news.DayAssignment) string {
	var b strings.Builder

	header := fmt.Sprintf("Day %d — %s%s", d.Day, d.Theme.Name, healthBadge(d.Health))
	if m.session.Phase() == curation.PhaseDays && d.Day == m.session.CurrentDay() {
		b.WriteString(CurrentDayHeader.Render(header))
	} else {
		b.WriteString(DayHeader.Render(header))
	}
	b.WriteString("\n")

	if d.Main != nil {
		b.WriteString(MainStory.Render(fmt.Sprintf("  1. %s [%s]", d.Main.Headline, d.Main.Strength)))
	} else {
		b.WriteString(EmptySlot.Render("  1. (no main story)"))
	}
	b.WriteString("\n")
	for i, mini := range d.Minis {
		b.WriteString(MiniStory.Render(fmt.Sprintf("  %d. %s [%s]", i+2, mini.Headline, mini.Strength)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderUnused(unused []*news.Story) string {
	var b strings.Builder
	b.WriteString(DayHeader.Render(fmt.Sprintf("Unused (%d)", len(unused))))
	b.WriteString("\n")
	for i, s := range unused {
		b.WriteString(MiniStory.Render(fmt.Sprintf("  %d. %s [%s]", i+1, s.Headline, s.Strength)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

func healthBadge(h *news.ThemeHealth) string {
	if h == nil {
		return ""
	}
	switch h.Status {
	case news.HealthWeak:
		return " " + HealthWeak.Render("(weak)")
	case news.HealthOverloaded:
		return " " + HealthOverloaded.Render("(overloaded)")
	case news.HealthHealthy:
		return " " + HealthHealthy.Render("(healthy)")
	default:
		return ""
	}
}

func (m Model) statusBar() string {
	hint := m.helpLine()
	bar := StatusBarKey.Render(m.session.Phase().String()) +
		StatusBarText.Render("  "+hint)
	if m.width > 0 {
		return StatusBar.Width(m.width).Render(bar)
	}
	return StatusBar.Render(bar)
}
