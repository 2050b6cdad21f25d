package score

import (
	"testing"

	"github.com/QS3H/quizdeck/internal/model"
)

func quizWithAnswers(answers ...string) model.Quiz {
	quiz := model.Quiz{Title: "test"}
	for _, a := range answers {
		quiz.Questions = append(quiz.Questions, model.Question{
			Text:    "q",
			Options: []string{a, "other"},
			Answer:  a,
		})
	}
	return quiz
}

func TestCompute(t *testing.T) {
	cases := []struct {
		name    string
		quiz    model.Quiz
		answers []string
		want    model.Score
	}{
		{
			name:    "all correct",
			quiz:    quizWithAnswers("A", "B"),
			answers: []string{"A", "B"},
			want:    model.Score{Correct: 2, Total: 2, Percentage: 100},
		},
		{
			name:    "half correct",
			quiz:    quizWithAnswers("A", "B"),
			answers: []string{"A", "wrong"},
			want:    model.Score{Correct: 1, Total: 2, Percentage: 50},
		},
		{
			name:    "none correct",
			quiz:    quizWithAnswers("A", "B"),
			answers: []string{"x", "y"},
			want:    model.Score{Correct: 0, Total: 2, Percentage: 0},
		},
		{
			name:    "rounds half up",
			quiz:    quizWithAnswers("A", "B", "C", "D", "E", "F", "G", "H"),
			answers: []string{"A", "", "", "", "", "", "", ""},
			want:    model.Score{Correct: 1, Total: 8, Percentage: 13},
		},
		{
			name:    "rounds down below half",
			quiz:    quizWithAnswers("A", "B", "C"),
			answers: []string{"A", "", ""},
			want:    model.Score{Correct: 1, Total: 3, Percentage: 33},
		},
		{
			name:    "rounds up above half",
			quiz:    quizWithAnswers("A", "B", "C"),
			answers: []string{"A", "B", ""},
			want:    model.Score{Correct: 2, Total: 3, Percentage: 67},
		},
		{
			name:    "short answer list counts as incorrect",
			quiz:    quizWithAnswers("A", "B"),
			answers: []string{"A"},
			want:    model.Score{Correct: 1, Total: 2, Percentage: 50},
		},
		{
			name:    "case sensitive comparison",
			quiz:    quizWithAnswers("A"),
			answers: []string{"a"},
			want:    model.Score{Correct: 0, Total: 1, Percentage: 0},
		},
		{
			name:    "zero questions",
			quiz:    model.Quiz{Title: "empty"},
			answers: nil,
			want:    model.Score{Correct: 0, Total: 0, Percentage: 0},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Compute(tc.quiz, tc.answers)
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestComputeIsPure(t *testing.T) {
	quiz := quizWithAnswers("A", "B")
	answers := []string{"A", "wrong"}
	first := Compute(quiz, answers)
	second := Compute(quiz, answers)
	if first != second {
		t.Fatalf("repeat computation differs: %+v vs %+v", first, second)
	}
}
