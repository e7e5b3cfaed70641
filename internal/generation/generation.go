// Package generation wraps the external text-generation model behind typed
// plan-synthesis operations. Every external call either returns a fully
// parsed document or a Failure; no partial output ever leaves this package.
package generation

import (
	"context"
	"fmt"
)

// TextGenerator is the injected interface over the LLM. The concrete Gemini
// client satisfies it; tests substitute stubs.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Closer is implemented by generators holding network resources.
type Closer interface {
	Close() error
}

// Failure is the error for a plan-synthesis step: the external call errored,
// returned empty content, or returned content that failed to decode.
type Failure struct {
	Step string // "workout plan", "meal plan", "grocery list"
	Err  error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s generation failed: %v", f.Step, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}
