package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"faq-agent/internal/domain/entity"
	"faq-agent/internal/domain/repository"
)

const (
	// MatchThreshold is the minimum cosine similarity a FAQ entry must
	// strictly exceed to be returned instead of the persona fallback.
	MatchThreshold = 0.85

	// MaxInputRunes bounds the user message before it reaches the
	// embedding and completion services.
	MaxInputRunes = 500

	// Source tags recorded on logged interactions.
	SourceFAQ = "faq"
	SourceLLM = "llm"
)

type Orchestrator struct {
	faq          repository.FAQIndex
	sessions     repository.SessionStore
	generator    repository.ResponseGenerator
	embedder     repository.Embedder
	profiler     repository.Profiler
	interactions repository.InteractionLogger
	style        string
}

// NewOrchestrator wires the chat pipeline. profiler and interactions may be
// nil, which disables interaction logging.
func NewOrchestrator(faq repository.FAQIndex, sessions repository.SessionStore, gen repository.ResponseGenerator, emb repository.Embedder, profiler repository.Profiler, interactions repository.InteractionLogger) *Orchestrator {
	return &Orchestrator{
		faq:          faq,
		sessions:     sessions,
		generator:    gen,
		embedder:     emb,
		profiler:     profiler,
		interactions: interactions,
		style:        DefaultRephraseStyle,
	}
}

// Chat answers one user message: retrieve a FAQ answer when the message
// embeds close enough to a stored question, otherwise continue the persona
// conversation for this client. Every external call is attempted exactly
// once.
func (o *Orchestrator) Chat(ctx context.Context, clientID, message string) (*entity.ChatResponse, error) {
	message = TruncateInput(message)

	// 1. Retrieval. An embedding failure degrades to the fallback path
	// instead of failing the request.
	vector, err := o.embedder.CreateEmbedding(ctx, message)
	if err != nil {
		log.Printf("[CHAT] embedding failed, skipping FAQ lookup: %v", err)
		vector = nil
	}

	if match, ok := o.faq.Search(vector, MatchThreshold); ok {
		answer := match.Answer
		if rephrased, err := o.generator.Rephrase(ctx, answer, o.style); err == nil {
			answer = rephrased
		} else {
			log.Printf("[CHAT] rephrase failed, returning stored answer: %v", err)
		}

		o.logInteraction(clientID, message, answer, SourceFAQ)
		return &entity.ChatResponse{Response: answer, Sticker: match.Sticker}, nil
	}

	// 2. Fallback: persona conversation over the capped per-client history.
	history := o.sessions.Append(clientID, entity.Message{Role: entity.RoleUser, Content: message})

	reply, err := o.generator.ContinueConversation(ctx, history)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrGenerationFailed, err)
	}

	reply = EnrichHTML(reply)
	o.sessions.Append(clientID, entity.Message{Role: entity.RoleAssistant, Content: reply})

	o.logInteraction(clientID, message, reply, SourceLLM)
	return &entity.ChatResponse{Response: reply, Sticker: ""}, nil
}

// logInteraction classifies and records the exchange in the background. The
// request context may already be done by the time the row is written, so
// the write uses a fresh context.
func (o *Orchestrator) logInteraction(clientID, question, answer, source string) {
	if o.interactions == nil {
		return
	}
	go func() {
		bgCtx := context.Background()
		profile := entity.UnknownProfile()
		if o.profiler != nil {
			profile = o.profiler.Classify(bgCtx, question)
		}
		rec := entity.Interaction{
			Timestamp: time.Now(),
			ClientID:  clientID,
			Question:  question,
			Answer:    answer,
			Source:    source,
			Profile:   profile,
		}
		if err := o.interactions.Log(bgCtx, rec); err != nil {
			log.Printf("[CHAT] interaction log failed: %v", err)
		}
	}()
}

// TruncateInput caps a message at MaxInputRunes runes. Truncating an
// already-truncated message returns it unchanged.
func TruncateInput(message string) string {
	runes := []rune(message)
	if len(runes) <= MaxInputRunes {
		return message
	}
	return string(runes[:MaxInputRunes])
}

// EnrichHTML wraps double-newline separated blocks of a model reply in
// paragraph tags so the widget can render it directly.
func EnrichHTML(text string) string {
	var b strings.Builder
	for _, part := range strings.Split(text, "\n\n") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		b.WriteString("<p>")
		b.WriteString(part)
		b.WriteString("</p><br>")
	}
	return b.String()
}
