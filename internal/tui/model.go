// Package tui provides the Bubble Tea quiz interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/QS3H/quizdeck/internal/catalog"
	"github.com/QS3H/quizdeck/internal/model"
	"github.com/QS3H/quizdeck/internal/session"
)

// RunRecorder persists completed quiz runs.
type RunRecorder interface {
	InsertRun(ctx context.Context, run model.RunRecord) (int64, error)
}

// feedbackMsg closes the feedback interval opened by an advance. The
// generation it carries makes stale timers harmless.
type feedbackMsg struct {
	gen uint64
}

// Model implements the Bubble Tea quiz UI.
type Model struct {
	catalog  *catalog.Catalog
	sess     *session.Session
	recorder RunRecorder

	keys keyMap
	help help.Model

	width  int
	height int

	// cursor is the highlighted quiz on the menu screen and the
	// highlighted option on the question screen.
	cursor int
}

// NewModel constructs a quiz TUI model.
func NewModel(cat *catalog.Catalog, sess *session.Session, recorder RunRecorder) *Model {
	m := &Model{
		catalog:  cat,
		sess:     sess,
		recorder: recorder,
		keys:     newKeyMap(),
		help:     help.New(),
	}
	m.syncCursor()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case feedbackMsg:
		if m.sess.FinishFeedback(msg.gen) {
			m.syncCursor()
		}
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Theme) {
			m.sess.ToggleTheme()
			return m, nil
		}
		switch m.sess.Screen() {
		case model.ScreenMenu:
			return m.updateMenu(msg)
		case model.ScreenQuestion:
			return m.updateQuestion(msg)
		case model.ScreenResult:
			return m.updateResult(msg)
		}
	}
	return m, nil
}

func (m *Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.catalog.Quizzes)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Submit):
		if m.cursor >= 0 && m.cursor < len(m.catalog.Quizzes) {
			m.startQuiz(m.catalog.Quizzes[m.cursor])
		}
	}
	return m, nil
}

func (m *Model) updateQuestion(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	question, ok := m.sess.CurrentQuestion()
	if !ok {
		return m, nil
	}
	frozen := m.sess.FeedbackVisible()
	switch {
	case key.Matches(msg, m.keys.Menu):
		m.sess.ReturnToMenu()
		m.syncCursor()
	case key.Matches(msg, m.keys.Up):
		if !frozen && m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if !frozen && m.cursor < len(question.Options)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Select):
		if frozen {
			break
		}
		if idx, ok := optionIndexForKey(msg.String(), m.cursor, len(question.Options)); ok {
			m.cursor = idx
			if err := m.sess.SelectAnswer(question.Options[idx]); err != nil {
				logErrf("failed to select answer: %v\n", err)
			}
		}
	case key.Matches(msg, m.keys.Back):
		if !frozen {
			if err := m.sess.Retreat(); err == nil {
				m.syncCursor()
			}
		}
	case key.Matches(msg, m.keys.Submit):
		return m, m.advance()
	}
	return m, nil
}

func (m *Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Replay), key.Matches(msg, m.keys.Submit):
		if quiz, ok := m.sess.ActiveQuiz(); ok {
			m.startQuiz(quiz)
		}
	case key.Matches(msg, m.keys.Menu):
		m.sess.ReturnToMenu()
		m.syncCursor()
	}
	return m, nil
}

func (m *Model) startQuiz(quiz model.Quiz) {
	if err := m.sess.SelectQuiz(quiz); err != nil {
		logErrf("failed to start quiz: %v\n", err)
		return
	}
	m.cursor = 0
}

func (m *Model) advance() tea.Cmd {
	res, err := m.sess.Advance()
	if err != nil {
		// Unanswered or frozen; nothing to schedule.
		return nil
	}
	if res.Finished {
		m.recordRun()
		return nil
	}
	return feedbackCmd(res.Delay, res.Generation)
}

func (m *Model) recordRun() {
	quiz, ok := m.sess.ActiveQuiz()
	if !ok || m.recorder == nil {
		return
	}
	sc := m.sess.Score()
	run := model.RunRecord{
		QuizTitle:  quiz.Title,
		Correct:    sc.Correct,
		Total:      sc.Total,
		Percentage: sc.Percentage,
		FinishedAt: time.Now(),
	}
	if _, err := m.recorder.InsertRun(context.Background(), run); err != nil {
		logErrf("failed to save run: %v\n", err)
	}
}

// syncCursor points the cursor at the draft answer for the current
// question, or the top of the list when there is none.
func (m *Model) syncCursor() {
	m.cursor = 0
	question, ok := m.sess.CurrentQuestion()
	if !ok {
		return
	}
	draft := m.sess.DraftAnswer()
	if draft == "" {
		return
	}
	for i, opt := range question.Options {
		if opt == draft {
			m.cursor = i
			return
		}
	}
}

func feedbackCmd(delay time.Duration, gen uint64) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return feedbackMsg{gen: gen}
	})
}

func optionIndexForKey(pressed string, cursor, optionCount int) (int, bool) {
	if pressed == " " {
		if cursor >= 0 && cursor < optionCount {
			return cursor, true
		}
		return 0, false
	}
	if len(pressed) == 1 && pressed[0] >= '1' && pressed[0] <= '9' {
		idx := int(pressed[0] - '1')
		if idx < optionCount {
			return idx, true
		}
	}
	return 0, false
}

// View implements tea.Model.
func (m *Model) View() string {
	pal := m.palette()
	var content string
	switch m.sess.Screen() {
	case model.ScreenMenu:
		content = m.viewMenu(pal)
	case model.ScreenQuestion:
		content = m.viewQuestion(pal)
	case model.ScreenResult:
		content = m.viewResult(pal)
	}
	if m.width == 0 || m.height == 0 {
		return content
	}
	footer := pal.help.Render(m.help.View(m.keys))
	bodyHeight := m.height - 1
	if bodyHeight < 1 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) viewMenu(pal palette) string {
	var b strings.Builder
	b.WriteString(pal.title.Render("Welcome to quizdeck"))
	b.WriteString("\n")
	b.WriteString(pal.subtle.Render("Pick a subject to get started."))
	b.WriteString("\n\n")
	for i, quiz := range m.catalog.Quizzes {
		line := fmt.Sprintf("  %s (%d questions)", quiz.Title, len(quiz.Questions))
		if i == m.cursor {
			line = pal.cursor.Render("> " + strings.TrimLeft(line, " "))
		} else {
			line = pal.option.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) viewQuestion(pal palette) string {
	quiz, ok := m.sess.ActiveQuiz()
	if !ok {
		return ""
	}
	question, ok := m.sess.CurrentQuestion()
	if !ok {
		return ""
	}
	draft := m.sess.DraftAnswer()
	frozen := m.sess.FeedbackVisible()

	var b strings.Builder
	b.WriteString(pal.subtle.Render(m.questionHeader(quiz)))
	b.WriteString("\n\n")
	text := question.Text
	if m.width > 0 {
		contentWidth := int(float64(m.width) * 0.70)
		if contentWidth < 20 {
			contentWidth = 20
		}
		text = lipgloss.NewStyle().Width(contentWidth).Render(text)
	}
	b.WriteString(pal.title.Render(text))
	b.WriteString("\n\n")

	for i, opt := range question.Options {
		marker := "  "
		style := pal.option
		switch {
		case frozen && opt == question.Answer:
			marker = "✓ "
			style = pal.correct
		case frozen && opt == draft && opt != question.Answer:
			marker = "✗ "
			style = pal.incorrect
		case opt == draft:
			marker = "● "
			style = pal.selected
		case i == m.cursor && !frozen:
			marker = "> "
			style = pal.cursor
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%d. %s", marker, i+1, opt)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case frozen:
		b.WriteString(pal.subtle.Render("..."))
	case m.sess.IsLastQuestion():
		b.WriteString(pal.subtle.Render("enter: finish quiz"))
	default:
		b.WriteString(pal.subtle.Render("enter: submit answer"))
	}
	return b.String()
}

func (m *Model) questionHeader(quiz model.Quiz) string {
	return fmt.Sprintf("%s — Question %d of %d", quiz.Title, m.sess.CurrentIndex()+1, len(quiz.Questions))
}

func (m *Model) viewResult(pal palette) string {
	quiz, ok := m.sess.ActiveQuiz()
	if !ok {
		return ""
	}
	final := m.sess.FinalAnswers()
	sc := m.sess.Score()

	var b strings.Builder
	b.WriteString(pal.title.Render("Quiz completed"))
	b.WriteString("\n")
	b.WriteString(pal.subtle.Render(quiz.Title))
	b.WriteString("\n\n")
	b.WriteString(pal.score.Render(fmt.Sprintf("You scored %d out of %d (%d%%)", sc.Correct, sc.Total, sc.Percentage)))
	b.WriteString("\n\n")

	for i, q := range quiz.Questions {
		answer := ""
		if i < len(final) {
			answer = final[i]
		}
		if answer == q.Answer {
			b.WriteString(pal.correct.Render(fmt.Sprintf("✓ %d. %s", i+1, answer)))
		} else {
			b.WriteString(pal.incorrect.Render(fmt.Sprintf("✗ %d. %s", i+1, answer)))
			b.WriteString(pal.subtle.Render(fmt.Sprintf("  (correct: %s)", q.Answer)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(pal.subtle.Render("p: play again   esc: menu   q: quit"))
	return b.String()
}

func (m *Model) palette() palette {
	if m.sess.DarkTheme() {
		return darkPalette
	}
	return lightPalette
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
