package ai

import (
	"context"
	"fmt"
)

// Oracle is the external LLM completion boundary. Implementations are treated
// as unreliable: any error from Complete triggers the rotation fallback.
type Oracle interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// OracleError wraps any failure to obtain a usable AI response. It stays
// internal to the scheduling flow; the orchestrator converts it into a
// fallback instead of surfacing it.
type OracleError struct {
	Op  string
	Err error
}

func (e *OracleError) Error() string {
	return fmt.Sprintf("oracle %s: %v", e.Op, e.Err)
}

func (e *OracleError) Unwrap() error {
	return e.Err
}
