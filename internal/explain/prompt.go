package explain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sat-prep/backend/internal/models"
)

// BuildPrompt assembles the tutoring prompt: question, lettered options,
// the student's answer and their stated reasoning. The model is asked to
// respond with inline HTML plus [Option X] / [Question text: "…"]
// references that ProcessReferences turns into markup.
func BuildPrompt(q *models.Question, userAnswer, rationale string) string {
	var b strings.Builder

	b.WriteString("You are an SAT tutor helping a student understand why their answer was incorrect.\n\n")
	if q.Passage != "" {
		fmt.Fprintf(&b, "Passage: %s\n\n", q.Passage)
	}
	fmt.Fprintf(&b, "Question: %s\n\n", q.QuestionText)

	if len(q.Options) > 0 {
		b.WriteString("Options:\n")
		for i, opt := range q.Options {
			fmt.Fprintf(&b, "%c. %s\n", 'A'+i, opt)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Correct Answer: %s\n", q.CorrectAnswer)
	fmt.Fprintf(&b, "Student's Answer: %s\n", userAnswer)
	if q.Explanation != "" {
		fmt.Fprintf(&b, "Explanation Text: %s\n", q.Explanation)
	}
	fmt.Fprintf(&b, "\nStudent's Reasoning: %q\n\n", rationale)

	b.WriteString(`Please provide a helpful, encouraging explanation that:
1. Acknowledges what the student got right in their reasoning
2. Clearly explains why their answer was incorrect
3. Points to specific parts of the question or options that are relevant
4. Explains the correct answer in a way that helps them understand the concept
5. Uses references like [Option A] or [Question text: "specific phrase"] to point to elements
6. Uses the explanation text

Format your response in HTML with:
- <span class="highlight">text</span> for highlighting important concepts
- <span class="option-reference" data-option="A">Option A</span> for referencing options
- <span class="question-reference" data-text="specific text">text</span> for referencing question parts

Keep it concise (2-3 paragraphs) and encouraging.`)

	return b.String()
}

var (
	optionRefPattern   = regexp.MustCompile(`(?i)\[Option ([A-D])\]`)
	questionRefPattern = regexp.MustCompile(`(?i)\[Question text: "([^"]+)"\]`)
)

// ProcessReferences converts the model's bracket references into the
// span markup the frontend wires up for click-to-highlight.
func ProcessReferences(explanation string) string {
	processed := optionRefPattern.ReplaceAllString(explanation,
		`<span class="option-reference" data-option="$1">Option $1</span>`)
	return questionRefPattern.ReplaceAllString(processed,
		`<span class="question-reference highlight" data-text="$1">$1</span>`)
}

// FallbackExplanation is the deterministic template used whenever the
// provider errors or times out. It restates the student's answer and
// reasoning and points at the correct answer.
func FallbackExplanation(q *models.Question, userAnswer, rationale string) string {
	var b strings.Builder

	fmt.Fprintf(&b, `<p>I see you chose <span class="option-reference" data-option=%q>%s</span>.</p>`,
		userAnswer, userAnswer)
	if rationale != "" {
		fmt.Fprintf(&b, `<p>Your reasoning: %q</p>`, rationale)
	}
	fmt.Fprintf(&b, `<p>The correct answer is <span class="option-reference" data-option=%q>%s</span>.</p>`,
		q.CorrectAnswer, q.CorrectAnswer)
	if q.Explanation != "" {
		fmt.Fprintf(&b, "<p>%s</p>", q.Explanation)
	}
	return b.String()
}
