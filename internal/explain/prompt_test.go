package explain

import (
	"strings"
	"testing"

	"github.com/sat-prep/backend/internal/models"
)

func sampleQuestion() *models.Question {
	return &models.Question{
		ID:            "q1",
		QuestionText:  "Which choice completes the text with the most logical transition?",
		Options:       []string{"However", "Therefore", "Meanwhile", "Similarly"},
		CorrectAnswer: "Therefore",
		Explanation:   "The second sentence is a consequence of the first.",
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(sampleQuestion(), "However", "the sentences felt contrasting")

	for _, want := range []string{
		"SAT tutor",
		"Which choice completes the text",
		"A. However",
		"D. Similarly",
		"Correct Answer: Therefore",
		"Student's Answer: However",
		"Student's Reasoning: \"the sentences felt contrasting\"",
		"Explanation Text: The second sentence is a consequence of the first.",
		`[Option A]`,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPromptFreeResponse(t *testing.T) {
	q := &models.Question{
		ID:            "q2",
		QuestionText:  "What is the value of x?",
		CorrectAnswer: "12",
	}
	prompt := BuildPrompt(q, "10", "")
	if strings.Contains(prompt, "Options:") {
		t.Error("free-response prompt should not list options")
	}
}

func TestProcessReferences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "option reference",
			in:   "Look again at [Option B].",
			want: `Look again at <span class="option-reference" data-option="B">Option B</span>.`,
		},
		{
			name: "question text reference",
			in:   `The phrase [Question text: "most logical transition"] is the clue.`,
			want: `The phrase <span class="question-reference highlight" data-text="most logical transition">most logical transition</span> is the clue.`,
		},
		{
			name: "case insensitive",
			in:   "[option c]",
			want: `<span class="option-reference" data-option="c">Option c</span>`,
		},
		{
			name: "plain text untouched",
			in:   "No references here.",
			want: "No references here.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProcessReferences(tt.in); got != tt.want {
				t.Errorf("ProcessReferences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFallbackExplanation(t *testing.T) {
	got := FallbackExplanation(sampleQuestion(), "However", "felt contrasting")

	for _, want := range []string{
		`data-option="However"`,
		`data-option="Therefore"`,
		"Your reasoning",
		"The second sentence is a consequence of the first.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("fallback missing %q in %q", want, got)
		}
	}
}

func TestFallbackExplanationOmitsEmptyParts(t *testing.T) {
	q := &models.Question{ID: "q3", QuestionText: "Solve.", CorrectAnswer: "4"}
	got := FallbackExplanation(q, "5", "")
	if strings.Contains(got, "Your reasoning") {
		t.Error("fallback should omit the reasoning paragraph when none was given")
	}
}
