package ai

import "context"

// Client is the contract for the external language-model service. Calls are
// best-effort: every call site must tolerate failure and degrade to its
// deterministic fallback or a scoped error.
type Client interface {
	// GenerateJSON sends a system+user prompt pair and returns the raw JSON
	// text of the model's reply.
	GenerateJSON(ctx context.Context, system, user string) (string, error)
}
