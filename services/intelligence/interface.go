// File: services/intelligence/interface.go
package ai

import (
	"context"

	"grillbook/models"
)

// CompletionService is the boundary over the language-model completion call.
// Callers supply the full role-tagged history on every call; nothing is
// cached on the adapter side.
type CompletionService interface {
	// Complete answers the last user turn in history, grounded on the
	// system text. The call is synchronous; streaming happens only at the
	// reply-delivery boundary.
	Complete(ctx context.Context, system string, history []models.Message) (string, error)
	// Summarize condenses arbitrary document text into a short summary.
	Summarize(ctx context.Context, content string) (string, error)
}
