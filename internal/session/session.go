// Package session owns the quiz session state machine: screen
// transitions, answer recording, and the timed feedback interval.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/QS3H/quizdeck/internal/catalog"
	"github.com/QS3H/quizdeck/internal/model"
	"github.com/QS3H/quizdeck/internal/score"
)

// DefaultFeedbackDelay is the answer-feedback interval after advancing
// past a non-final question.
const DefaultFeedbackDelay = 1500 * time.Millisecond

// Storage keys, one per persisted session field.
const (
	keyScreen   = "screen"
	keyQuiz     = "quiz"
	keyIndex    = "index"
	keyDraft    = "draftAnswers"
	keyFinal    = "finalAnswers"
	keyFeedback = "feedback"
	keyTheme    = "theme"
)

// StorageKeys returns every key the session persists under.
func StorageKeys() []string {
	return []string{keyScreen, keyQuiz, keyIndex, keyDraft, keyFinal, keyFeedback, keyTheme}
}

// Transition rejection reasons.
var (
	ErrUnknownQuiz    = errors.New("quiz is not in the catalog")
	ErrNotOnQuestion  = errors.New("no question is active")
	ErrFeedbackActive = errors.New("answer feedback is active")
	ErrUnanswered     = errors.New("current question is unanswered")
)

// KV is the durable store consumed by the session. Get reports ok=false
// for absent or unreadable keys; Set errors are logged by the session
// and never change in-memory state.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool)
	Set(ctx context.Context, key, value string) error
}

// Session is the single mutable entity of the application. It is not
// safe for concurrent use; the TUI drives it from one goroutine.
type Session struct {
	catalog       *catalog.Catalog
	kv            KV
	feedbackDelay time.Duration

	screen          model.Screen
	activeQuiz      *model.Quiz
	currentIndex    int
	draftAnswers    []string
	finalAnswers    []string
	feedbackVisible bool
	darkTheme       bool

	// generation invalidates pending feedback continuations: every
	// transition that changes the screen or the active quiz bumps it.
	generation uint64
}

// AdvanceResult tells the caller what Advance did.
type AdvanceResult struct {
	// Finished is true when the run completed and the result screen
	// is now active. No feedback interval follows a finished run.
	Finished bool
	// Delay is the feedback interval to wait before FinishFeedback.
	Delay time.Duration
	// Generation must be passed back to FinishFeedback unchanged.
	Generation uint64
}

// New builds a session restored from the durable store, falling back to
// menu defaults when no usable state is stored. darkDefault applies only
// when no theme flag has ever been persisted.
func New(cat *catalog.Catalog, kv KV, feedbackDelay time.Duration, darkDefault bool) *Session {
	if feedbackDelay <= 0 {
		feedbackDelay = DefaultFeedbackDelay
	}
	s := &Session{
		catalog:       cat,
		kv:            kv,
		feedbackDelay: feedbackDelay,
		screen:        model.ScreenMenu,
		darkTheme:     darkDefault,
	}
	s.restore()
	return s
}

// SelectQuiz starts a run of the given quiz. Legal from any screen:
// selecting a quiz mid-run abandons the old run and starts fresh.
func (s *Session) SelectQuiz(quiz model.Quiz) error {
	stored, ok := s.catalog.ByTitle(quiz.Title)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownQuiz, quiz.Title)
	}
	s.activeQuiz = &stored
	s.currentIndex = 0
	s.draftAnswers = make([]string, len(stored.Questions))
	s.finalAnswers = nil
	s.feedbackVisible = false
	s.screen = model.ScreenQuestion
	s.generation++

	s.put(keyQuiz, stored.Title)
	s.put(keyIndex, s.currentIndex)
	s.put(keyDraft, s.draftAnswers)
	s.put(keyFinal, []string{})
	s.put(keyFeedback, s.feedbackVisible)
	s.put(keyScreen, s.screen)
	return nil
}

// SelectAnswer records the answer for the current question. Re-selecting
// overwrites the prior selection; no history is kept.
func (s *Session) SelectAnswer(text string) error {
	if s.screen != model.ScreenQuestion || s.activeQuiz == nil {
		return ErrNotOnQuestion
	}
	if s.feedbackVisible {
		return ErrFeedbackActive
	}
	s.draftAnswers[s.currentIndex] = text
	s.put(keyDraft, s.draftAnswers)
	return nil
}

// Advance moves past the current question. On a non-final question it
// opens the feedback interval; the caller must wait out Delay and then
// call FinishFeedback with the returned generation. On the final
// question it snapshots the answers and shows the result immediately.
func (s *Session) Advance() (AdvanceResult, error) {
	if s.screen != model.ScreenQuestion || s.activeQuiz == nil {
		return AdvanceResult{}, ErrNotOnQuestion
	}
	if s.feedbackVisible {
		return AdvanceResult{}, ErrFeedbackActive
	}
	if s.draftAnswers[s.currentIndex] == "" {
		return AdvanceResult{}, ErrUnanswered
	}

	if s.currentIndex < len(s.activeQuiz.Questions)-1 {
		s.feedbackVisible = true
		s.put(keyFeedback, s.feedbackVisible)
		return AdvanceResult{Delay: s.feedbackDelay, Generation: s.generation}, nil
	}

	s.finalAnswers = append([]string(nil), s.draftAnswers...)
	s.screen = model.ScreenResult
	s.generation++
	s.put(keyFinal, s.finalAnswers)
	s.put(keyScreen, s.screen)
	return AdvanceResult{Finished: true}, nil
}

// FinishFeedback closes the feedback interval opened by Advance and
// moves to the next question. It is a no-op when gen is stale, so a
// continuation scheduled before a reset or a new quiz cannot corrupt
// the fresh session.
func (s *Session) FinishFeedback(gen uint64) bool {
	if gen != s.generation {
		return false
	}
	if s.screen != model.ScreenQuestion || !s.feedbackVisible {
		return false
	}
	s.currentIndex++
	s.feedbackVisible = false
	s.put(keyIndex, s.currentIndex)
	s.put(keyFeedback, s.feedbackVisible)
	return true
}

// Retreat moves back one question. At the first question it is a no-op.
func (s *Session) Retreat() error {
	if s.screen != model.ScreenQuestion || s.activeQuiz == nil {
		return ErrNotOnQuestion
	}
	if s.currentIndex == 0 {
		return nil
	}
	s.currentIndex--
	s.put(keyIndex, s.currentIndex)
	return nil
}

// ReturnToMenu resets the session to menu defaults. The theme flag is
// untouched. Legal from any screen.
func (s *Session) ReturnToMenu() {
	s.screen = model.ScreenMenu
	s.activeQuiz = nil
	s.currentIndex = 0
	s.draftAnswers = nil
	s.finalAnswers = nil
	s.feedbackVisible = false
	s.generation++

	s.put(keyScreen, s.screen)
	s.put(keyQuiz, "")
	s.put(keyIndex, 0)
	s.put(keyDraft, []string{})
	s.put(keyFinal, []string{})
	s.put(keyFeedback, false)
}

// ToggleTheme flips the theme flag. Independent of quiz progress.
func (s *Session) ToggleTheme() {
	s.darkTheme = !s.darkTheme
	s.put(keyTheme, s.darkTheme)
}

// Score computes the result of the finished run.
func (s *Session) Score() model.Score {
	if s.activeQuiz == nil {
		return model.Score{}
	}
	return score.Compute(*s.activeQuiz, s.finalAnswers)
}

// Screen returns the active screen.
func (s *Session) Screen() model.Screen { return s.screen }

// ActiveQuiz returns the quiz of the current run, if any.
func (s *Session) ActiveQuiz() (model.Quiz, bool) {
	if s.activeQuiz == nil {
		return model.Quiz{}, false
	}
	return *s.activeQuiz, true
}

// CurrentIndex returns the 0-based index of the current question.
func (s *Session) CurrentIndex() int { return s.currentIndex }

// CurrentQuestion returns the question at the current index.
func (s *Session) CurrentQuestion() (model.Question, bool) {
	if s.activeQuiz == nil || s.currentIndex < 0 || s.currentIndex >= len(s.activeQuiz.Questions) {
		return model.Question{}, false
	}
	return s.activeQuiz.Questions[s.currentIndex], true
}

// DraftAnswer returns the draft answer at the current index, empty
// string when unanswered.
func (s *Session) DraftAnswer() string {
	if s.activeQuiz == nil || s.currentIndex >= len(s.draftAnswers) {
		return ""
	}
	return s.draftAnswers[s.currentIndex]
}

// DraftAnswers returns a copy of the in-progress answers.
func (s *Session) DraftAnswers() []string {
	return append([]string(nil), s.draftAnswers...)
}

// FinalAnswers returns a copy of the finalized answers.
func (s *Session) FinalAnswers() []string {
	return append([]string(nil), s.finalAnswers...)
}

// FeedbackVisible reports whether the feedback interval is open.
func (s *Session) FeedbackVisible() bool { return s.feedbackVisible }

// DarkTheme reports the theme flag.
func (s *Session) DarkTheme() bool { return s.darkTheme }

// Generation returns the current continuation generation.
func (s *Session) Generation() uint64 { return s.generation }

// IsLastQuestion reports whether the current question is the final one.
func (s *Session) IsLastQuestion() bool {
	return s.activeQuiz != nil && s.currentIndex == len(s.activeQuiz.Questions)-1
}

func (s *Session) restore() {
	s.getInto(keyTheme, &s.darkTheme)

	var screen model.Screen
	if !s.getInto(keyScreen, &screen) || !screen.Valid() || screen == model.ScreenMenu {
		return
	}

	var title string
	if !s.getInto(keyQuiz, &title) {
		return
	}
	quiz, ok := s.catalog.ByTitle(title)
	if !ok {
		return
	}

	var index int
	var draft, final []string
	s.getInto(keyIndex, &index)
	s.getInto(keyDraft, &draft)
	s.getInto(keyFinal, &final)
	if index < 0 || index >= len(quiz.Questions) || len(draft) != len(quiz.Questions) {
		return
	}
	if screen == model.ScreenResult && len(final) != len(quiz.Questions) {
		return
	}

	s.screen = screen
	s.activeQuiz = &quiz
	s.currentIndex = index
	s.draftAnswers = draft
	s.finalAnswers = final
	// The feedback timer does not survive a restart; resume unfrozen.
	s.feedbackVisible = false
}

func (s *Session) put(key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		logErrf("failed to encode %s: %v\n", key, err)
		return
	}
	if err := s.kv.Set(context.Background(), key, string(data)); err != nil {
		logErrf("failed to persist %s: %v\n", key, err)
	}
}

func (s *Session) getInto(key string, target any) bool {
	raw, ok := s.kv.Get(context.Background(), key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		return false
	}
	return true
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
