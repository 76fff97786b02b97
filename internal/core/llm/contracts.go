package llm

import "context"

// CompletionRequest asks a model for one JSON object whose keys are SchemaKeys.
type CompletionRequest struct {
	System     string
	Prompt     string
	SchemaKeys []string
}

// Completer is the LLM service the extractors depend on.
type Completer interface {
	// Complete returns the decoded reply with every value stringified, and the
	// reply as recovered JSON.
	Complete(ctx context.Context, req CompletionRequest) (map[string]string, []byte, error)
	// Vision sends one image with a short prompt and returns the raw text reply.
	Vision(ctx context.Context, prompt string, image []byte, mimeType string) (string, error)
}
