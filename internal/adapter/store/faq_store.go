package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os"

	"faq-agent/internal/domain/entity"
)

// FAQStore holds the FAQ snapshot in memory: one entry and one precomputed
// embedding per canonical question. Read-only after load, so no locking.
type FAQStore struct {
	entries    map[string]entity.FAQEntry
	embeddings map[string][]float32
	// questions preserves the entries-file key order; ties during search are
	// broken by this order (first loaded wins), keeping results reproducible.
	questions []string
}

// LoadFAQStore reads the question->entry snapshot and the aligned
// question->vector snapshot. A missing file is not fatal: the store loads
// empty and every search reports no match. Questions without an embedding
// are kept but never become match candidates.
func LoadFAQStore(entriesPath, embeddingsPath string) (*FAQStore, error) {
	s := &FAQStore{
		entries:    make(map[string]entity.FAQEntry),
		embeddings: make(map[string][]float32),
	}

	raw, err := os.ReadFile(entriesPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("[FAQ] entries snapshot %s not found, starting empty", entriesPath)
			return s, nil
		}
		return nil, fmt.Errorf("failed to read FAQ entries: %w", err)
	}
	if err := json.Unmarshal(raw, &s.entries); err != nil {
		return nil, fmt.Errorf("failed to parse FAQ entries: %w", err)
	}
	var ordered orderedKeys
	if err := json.Unmarshal(raw, &ordered); err != nil {
		return nil, fmt.Errorf("failed to parse FAQ entries: %w", err)
	}
	s.questions = ordered.keys

	raw, err = os.ReadFile(embeddingsPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("[FAQ] embeddings snapshot %s not found, all lookups will miss", embeddingsPath)
			return s, nil
		}
		return nil, fmt.Errorf("failed to read FAQ embeddings: %w", err)
	}
	if err := json.Unmarshal(raw, &s.embeddings); err != nil {
		return nil, fmt.Errorf("failed to parse FAQ embeddings: %w", err)
	}

	return s, nil
}

// orderedKeys captures the top-level key order of a JSON object, which
// encoding/json maps would otherwise discard.
type orderedKeys struct {
	keys []string
}

func (o *orderedKeys) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok != json.Delim('{') {
		return fmt.Errorf("expected JSON object")
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected string key")
		}
		o.keys = append(o.keys, key)
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return err
		}
	}
	return nil
}

// Size reports the number of loaded FAQ entries.
func (s *FAQStore) Size() int {
	return len(s.entries)
}

// Search scores the query against every reference embedding and returns the
// best entry when its cosine similarity strictly exceeds threshold. An
// empty index or an empty query vector (the embedding-failure sentinel)
// short-circuits to no match without scoring.
func (s *FAQStore) Search(vector []float32, threshold float32) (*entity.FAQMatch, bool) {
	if len(s.entries) == 0 || len(vector) == 0 {
		return nil, false
	}

	var (
		bestQuestion string
		bestScore    float32 = -1
	)
	for _, q := range s.questions {
		ref, ok := s.embeddings[q]
		if !ok {
			continue
		}
		if score := cosineSimilarity(vector, ref); score > bestScore {
			bestQuestion, bestScore = q, score
		}
	}

	if bestQuestion == "" || bestScore <= threshold {
		return nil, false
	}

	e := s.entries[bestQuestion]
	return &entity.FAQMatch{
		Question: bestQuestion,
		Answer:   e.Answer,
		Sticker:  e.Sticker,
		Score:    bestScore,
	}, true
}

// cosineSimilarity computes dot(a,b) / (norm(a) * norm(b)). A zero norm on
// either side yields 0, not an error.
func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
