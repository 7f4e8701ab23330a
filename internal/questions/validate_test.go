package questions

import (
	"strings"
	"testing"

	"github.com/sat-prep/backend/internal/models"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		question models.Question
		want     []string
	}{
		{
			name: "well formed multiple choice",
			question: models.Question{
				QuestionText:  "Which choice completes the text?",
				Options:       []string{"However", "Therefore", "Moreover", "Instead"},
				CorrectAnswer: "Therefore",
			},
			want: nil,
		},
		{
			name: "well formed free response",
			question: models.Question{
				QuestionText:  "Solve for x: 2x + 4 = 10",
				CorrectAnswer: "3",
			},
			want: nil,
		},
		{
			name: "missing correct answer",
			question: models.Question{
				QuestionText: "Solve for x: 2x + 4 = 10",
			},
			want: []string{"correct answer is empty"},
		},
		{
			name: "correct answer not among options",
			question: models.Question{
				QuestionText:  "Which choice completes the text?",
				Options:       []string{"However", "Therefore"},
				CorrectAnswer: "Instead",
			},
			want: []string{"correct answer does not match any option"},
		},
		{
			name: "correct answer matches with whitespace and case differences",
			question: models.Question{
				QuestionText:  "Which choice completes the text?",
				Options:       []string{"However", "Therefore"},
				CorrectAnswer: " therefore ",
			},
			want: nil,
		},
		{
			name: "empty question text",
			question: models.Question{
				QuestionText:  "   ",
				Options:       []string{"A", "B"},
				CorrectAnswer: "A",
			},
			want: []string{"question text is empty"},
		},
		{
			name: "too many options",
			question: models.Question{
				QuestionText:  "Pick one",
				Options:       []string{"A", "B", "C", "D", "E"},
				CorrectAnswer: "A",
			},
			want: []string{"expected 2-4 options, got 5"},
		},
		{
			name: "duplicate and blank options",
			question: models.Question{
				QuestionText:  "Pick one",
				Options:       []string{"Therefore", "", "therefore"},
				CorrectAnswer: "Therefore",
			},
			want: []string{"option 2 is empty", `duplicate option "therefore"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(&tt.question)
			if len(got) != len(tt.want) {
				t.Fatalf("Validate() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("problem %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestValidateReportsMultipleProblems(t *testing.T) {
	q := models.Question{
		Options: []string{"Only one"},
	}
	// A single option means free response, so only text and answer are flagged.
	got := Validate(&q)
	if len(got) != 2 {
		t.Fatalf("Validate() = %v, want 2 problems", got)
	}
	joined := strings.Join(got, "; ")
	if !strings.Contains(joined, "question text") || !strings.Contains(joined, "correct answer") {
		t.Errorf("problems missing expected entries: %v", got)
	}
}
