// Package score computes quiz results.
package score

import (
	"math"

	"github.com/QS3H/quizdeck/internal/model"
)

// Compute counts the answers matching each question's correct answer and
// derives a rounded percentage. Comparison is exact string equality.
// Answers beyond the question count are ignored; missing answers count as
// incorrect. A zero-question quiz scores 0%.
func Compute(quiz model.Quiz, answers []string) model.Score {
	total := len(quiz.Questions)
	correct := 0
	for i, q := range quiz.Questions {
		if i < len(answers) && answers[i] == q.Answer {
			correct++
		}
	}
	pct := 0
	if total > 0 {
		pct = int(math.Floor(float64(correct)/float64(total)*100 + 0.5))
	}
	return model.Score{Correct: correct, Total: total, Percentage: pct}
}
