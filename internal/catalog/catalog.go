// Package catalog loads and validates the quiz catalog.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/QS3H/quizdeck/internal/model"
)

//go:embed default.toml
var defaultCatalog []byte

// Catalog is the immutable, ordered set of available quizzes.
type Catalog struct {
	Quizzes []model.Quiz `toml:"quiz"`
}

// Load reads a catalog from the given path, or the embedded default
// catalog when path is empty or does not exist.
func Load(path string) (*Catalog, error) {
	data := defaultCatalog
	if path != "" {
		b, err := os.ReadFile(path)
		if err == nil {
			data = b
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read catalog: %w", err)
		}
	}
	return Parse(data)
}

// Parse decodes and validates a TOML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the catalog invariants: at least one quiz, every quiz
// has a title and at least one question, and every question's answer is
// one of its options.
func (c *Catalog) Validate() error {
	if len(c.Quizzes) == 0 {
		return fmt.Errorf("catalog contains no quizzes")
	}
	seen := make(map[string]struct{}, len(c.Quizzes))
	for qi, quiz := range c.Quizzes {
		if quiz.Title == "" {
			return fmt.Errorf("quiz %d has no title", qi)
		}
		if _, ok := seen[quiz.Title]; ok {
			return fmt.Errorf("duplicate quiz title %q", quiz.Title)
		}
		seen[quiz.Title] = struct{}{}
		if len(quiz.Questions) == 0 {
			return fmt.Errorf("quiz %q has no questions", quiz.Title)
		}
		for i, q := range quiz.Questions {
			if q.Text == "" {
				return fmt.Errorf("quiz %q question %d has no text", quiz.Title, i+1)
			}
			if len(q.Options) < 2 {
				return fmt.Errorf("quiz %q question %d has fewer than two options", quiz.Title, i+1)
			}
			if !contains(q.Options, q.Answer) {
				return fmt.Errorf("quiz %q question %d: answer %q is not one of the options", quiz.Title, i+1, q.Answer)
			}
		}
	}
	return nil
}

// ByTitle returns the quiz with the given title, if present.
func (c *Catalog) ByTitle(title string) (model.Quiz, bool) {
	for _, quiz := range c.Quizzes {
		if quiz.Title == title {
			return quiz, true
		}
	}
	return model.Quiz{}, false
}

func contains(options []string, value string) bool {
	for _, opt := range options {
		if opt == value {
			return true
		}
	}
	return false
}
