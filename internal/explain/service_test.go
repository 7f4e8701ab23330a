package explain

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type stubClient struct {
	response string
	err      error
	delay    time.Duration
}

func (s *stubClient) Complete(ctx context.Context, prompt string) (string, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestExplainProcessesReferences(t *testing.T) {
	svc := NewServiceWithClient(&stubClient{response: "Check [Option B] again."}, time.Second)

	got := svc.Explain(context.Background(), sampleQuestion(), "However", "")
	want := `Check <span class="option-reference" data-option="B">Option B</span> again.`
	if got != want {
		t.Errorf("Explain() = %q, want %q", got, want)
	}
}

func TestExplainFallsBackOnError(t *testing.T) {
	svc := NewServiceWithClient(&stubClient{err: errors.New("rate limited")}, time.Second)

	got := svc.Explain(context.Background(), sampleQuestion(), "However", "felt contrasting")
	if !strings.Contains(got, `data-option="Therefore"`) {
		t.Errorf("fallback missing correct answer: %q", got)
	}
	if !strings.Contains(got, "Your reasoning") {
		t.Errorf("fallback missing rationale: %q", got)
	}
}

func TestExplainFallsBackOnTimeout(t *testing.T) {
	svc := NewServiceWithClient(&stubClient{response: "too late", delay: 500 * time.Millisecond}, 20*time.Millisecond)

	start := time.Now()
	got := svc.Explain(context.Background(), sampleQuestion(), "However", "")
	elapsed := time.Since(start)

	if elapsed > 200*time.Millisecond {
		t.Errorf("Explain() took %v, should give up at the timeout", elapsed)
	}
	if !strings.Contains(got, `data-option="Therefore"`) {
		t.Errorf("timeout should yield the fallback, got %q", got)
	}
}

func TestExplainMockClient(t *testing.T) {
	svc := NewServiceWithClient(NewMockClient(), time.Second)

	got := svc.Explain(context.Background(), sampleQuestion(), "However", "")
	if !strings.Contains(got, `class="option-reference"`) {
		t.Errorf("mock explanation should carry processed references: %q", got)
	}
}
