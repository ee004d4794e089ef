package repository

import (
	"context"

	"faq-agent/internal/domain/entity"
)

// FAQIndex is a read-only similarity index over the precomputed FAQ
// snapshot. Search returns the best entry strictly above threshold, or
// false when nothing qualifies (empty index, empty query vector, or all
// scores at or below threshold).
type FAQIndex interface {
	Search(vector []float32, threshold float32) (*entity.FAQMatch, bool)
	Size() int
}

// SessionStore keeps per-client conversation histories. Append creates the
// session on first use (seeded with the fixed instruction messages),
// appends msg, applies the truncation policy and returns a copy of the
// resulting history. Implementations must serialize access per key.
type SessionStore interface {
	Append(key string, msg entity.Message) []entity.Message
	History(key string) ([]entity.Message, bool)
}

// ResponseGenerator wraps the external completion service.
//
// Rephrase restates text in the given style; callers degrade to the
// original text when it fails. ContinueConversation has no safe default, so
// its error propagates.
type ResponseGenerator interface {
	Rephrase(ctx context.Context, text, style string) (string, error)
	ContinueConversation(ctx context.Context, history []entity.Message) (string, error)
}

type Embedder interface {
	CreateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// Profiler classifies a user message into the interaction-log labels.
// Implementations return the all-unknown profile on any failure.
type Profiler interface {
	Classify(ctx context.Context, message string) entity.UserProfile
}

type InteractionLogger interface {
	Log(ctx context.Context, rec entity.Interaction) error
}
