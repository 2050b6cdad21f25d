package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	cat, err := Load("")
	if err != nil {
		t.Fatalf("load default catalog: %v", err)
	}
	if len(cat.Quizzes) == 0 {
		t.Fatalf("default catalog is empty")
	}
	for _, quiz := range cat.Quizzes {
		for i, q := range quiz.Questions {
			found := false
			for _, opt := range q.Options {
				if opt == q.Answer {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("quiz %q question %d: answer %q not among options", quiz.Title, i+1, q.Answer)
			}
		}
	}
}

func TestLoadMissingPathFallsBackToDefault(t *testing.T) {
	cat, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("load with missing path: %v", err)
	}
	if len(cat.Quizzes) == 0 {
		t.Fatalf("expected embedded default catalog")
	}
}

func TestLoadUserCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	doc := `
[[quiz]]
title = "Go"
icon = "icon-go"

[[quiz.question]]
question = "Which keyword starts a goroutine?"
options = ["go", "run", "spawn", "async"]
answer = "go"
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	cat, err := Load(path)
	if err != nil {
		t.Fatalf("load user catalog: %v", err)
	}
	if len(cat.Quizzes) != 1 || cat.Quizzes[0].Title != "Go" {
		t.Fatalf("unexpected catalog: %+v", cat.Quizzes)
	}
}

func TestParseRejectsInvalidCatalogs(t *testing.T) {
	cases := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "empty catalog",
			doc:     ``,
			wantErr: "no quizzes",
		},
		{
			name: "answer not an option",
			doc: `
[[quiz]]
title = "Broken"
[[quiz.question]]
question = "Q"
options = ["A", "B"]
answer = "C"
`,
			wantErr: "not one of the options",
		},
		{
			name: "quiz without questions",
			doc: `
[[quiz]]
title = "Empty"
`,
			wantErr: "no questions",
		},
		{
			name: "single option",
			doc: `
[[quiz]]
title = "One"
[[quiz.question]]
question = "Q"
options = ["A"]
answer = "A"
`,
			wantErr: "fewer than two options",
		},
		{
			name: "duplicate titles",
			doc: `
[[quiz]]
title = "X"
[[quiz.question]]
question = "Q"
options = ["A", "B"]
answer = "A"

[[quiz]]
title = "X"
[[quiz.question]]
question = "Q"
options = ["A", "B"]
answer = "A"
`,
			wantErr: "duplicate quiz title",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected %q in error, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestByTitle(t *testing.T) {
	cat, err := Load("")
	if err != nil {
		t.Fatalf("load default catalog: %v", err)
	}
	first := cat.Quizzes[0]
	got, ok := cat.ByTitle(first.Title)
	if !ok || got.Title != first.Title {
		t.Fatalf("ByTitle(%q) = %v, %v", first.Title, got.Title, ok)
	}
	if _, ok := cat.ByTitle("does-not-exist"); ok {
		t.Fatalf("expected miss for unknown title")
	}
}
