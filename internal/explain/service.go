package explain

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/sat-prep/backend/internal/models"
)

// DefaultTimeout bounds a single explanation request. Past it the
// student gets the fallback rather than a spinner.
const DefaultTimeout = 10 * time.Second

// Service produces tutoring explanations for wrong answers. Explain
// never returns an error: provider failures and timeouts degrade to the
// deterministic fallback template.
type Service struct {
	client  Client
	timeout time.Duration
}

// NewService picks a provider from the environment, mirroring the rest
// of the stack: MOCK_EXPLAINER=true for local work, EXPLAIN_PROVIDER=
// openrouter for the OpenRouter path, Anthropic otherwise.
func NewService() *Service {
	var client Client

	switch {
	case os.Getenv("MOCK_EXPLAINER") == "true":
		client = NewMockClient()
		log.Println("Explainer using mock responses")
	case os.Getenv("EXPLAIN_PROVIDER") == "openrouter":
		model := os.Getenv("EXPLAIN_MODEL")
		if model == "" {
			model = "google/gemini-2.5-flash"
		}
		client = NewOpenRouterClient(os.Getenv("OPENROUTER_API_KEY"), model)
		log.Println("Explainer using OpenRouter:", model)
	default:
		model := os.Getenv("ANTHROPIC_MODEL")
		if model == "" {
			model = "claude-haiku-4-5"
		}
		client = NewAnthropicClient(model)
		log.Println("Explainer using Anthropic API:", model)
	}

	return &Service{client: client, timeout: DefaultTimeout}
}

// NewServiceWithClient wires an explicit provider; tests use this.
func NewServiceWithClient(client Client, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{client: client, timeout: timeout}
}

func (s *Service) Explain(ctx context.Context, q *models.Question, userAnswer, rationale string) string {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.client.Complete(ctx, BuildPrompt(q, userAnswer, rationale))
	if err != nil {
		log.Printf("WARN: explanation for question %s failed, using fallback: %v", q.ID, err)
		return FallbackExplanation(q, userAnswer, rationale)
	}
	return ProcessReferences(raw)
}
