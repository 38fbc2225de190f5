package service

import "context"

// AIService is the external generative-model capability: one prompt in, the
// model's free-form text out. Constructed once at process start and injected
// into the answer synthesizer.
type AIService interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
