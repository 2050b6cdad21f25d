// Package model defines shared data structures.
package model

import "time"

// Screen identifies the UI mode the session is in.
type Screen string

// Reachable screens.
const (
	ScreenMenu     Screen = "menu"
	ScreenQuestion Screen = "question"
	ScreenResult   Screen = "result"
)

// Valid reports whether s is one of the reachable screens.
func (s Screen) Valid() bool {
	switch s {
	case ScreenMenu, ScreenQuestion, ScreenResult:
		return true
	}
	return false
}

// Question is a single multiple-choice question.
type Question struct {
	Text    string   `toml:"question"`
	Options []string `toml:"options"`
	Answer  string   `toml:"answer"`
}

// Quiz is an ordered set of questions under a title.
type Quiz struct {
	Title     string     `toml:"title"`
	Icon      string     `toml:"icon"`
	Questions []Question `toml:"question"`
}

// Score summarizes the outcome of a completed quiz run.
type Score struct {
	Correct    int
	Total      int
	Percentage int
}

// RunRecord is a completed quiz run persisted for the history view.
type RunRecord struct {
	ID         int64
	QuizTitle  string
	Correct    int
	Total      int
	Percentage int
	FinishedAt time.Time
}

// Config holds resolved runtime settings for the TUI.
type Config struct {
	CatalogPath   string
	FeedbackDelay time.Duration
	DarkTheme     bool
}
