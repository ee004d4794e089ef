package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"faq-agent/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSnapshot(t *testing.T, dir, name string, v any) string {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, raw, 0o644))
	return path
}

func loadTestStore(t *testing.T, entries map[string]entity.FAQEntry, embeddings map[string][]float32) *FAQStore {
	t.Helper()
	dir := t.TempDir()
	entriesPath := writeSnapshot(t, dir, "faq_data.json", entries)
	embeddingsPath := writeSnapshot(t, dir, "faq_embeddings.json", embeddings)
	s, err := LoadFAQStore(entriesPath, embeddingsPath)
	require.NoError(t, err)
	return s
}

func TestLoadFAQStore_MissingFilesLoadEmpty(t *testing.T) {
	dir := t.TempDir()
	s, err := LoadFAQStore(filepath.Join(dir, "nope.json"), filepath.Join(dir, "nope2.json"))
	require.NoError(t, err)
	assert.Equal(t, 0, s.Size())

	_, ok := s.Search([]float32{1, 0}, 0.85)
	assert.False(t, ok)
}

func TestLoadFAQStore_MissingEmbeddingsFileLoadsEntriesOnly(t *testing.T) {
	dir := t.TempDir()
	entriesPath := writeSnapshot(t, dir, "faq_data.json", map[string]entity.FAQEntry{
		"q": {Answer: "a"},
	})
	s, err := LoadFAQStore(entriesPath, filepath.Join(dir, "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, 1, s.Size())

	_, ok := s.Search([]float32{1, 0}, 0.85)
	assert.False(t, ok)
}

func TestSearch_IdenticalVectorScoresOne(t *testing.T) {
	s := loadTestStore(t,
		map[string]entity.FAQEntry{"¿Cómo me registro?": {Answer: "<p>Visita la página</p>", Sticker: "welcome.png"}},
		map[string][]float32{"¿Cómo me registro?": {0.3, 0.4, 0.5}},
	)

	match, ok := s.Search([]float32{0.3, 0.4, 0.5}, 0.85)
	require.True(t, ok)
	assert.Equal(t, "¿Cómo me registro?", match.Question)
	assert.Equal(t, "<p>Visita la página</p>", match.Answer)
	assert.Equal(t, "welcome.png", match.Sticker)
	assert.InDelta(t, 1.0, float64(match.Score), 1e-6)
}

func TestSearch_EmptyQueryVectorIsNoMatch(t *testing.T) {
	s := loadTestStore(t,
		map[string]entity.FAQEntry{"q": {Answer: "a"}},
		map[string][]float32{"q": {1, 0}},
	)

	// nil query is the embedding-failure sentinel.
	_, ok := s.Search(nil, 0.85)
	assert.False(t, ok)
}

func TestSearch_BelowOrAtThresholdIsNoMatch(t *testing.T) {
	s := loadTestStore(t,
		map[string]entity.FAQEntry{"q": {Answer: "a"}},
		map[string][]float32{"q": {1, 0}},
	)

	// Orthogonal vector: similarity 0.
	_, ok := s.Search([]float32{0, 1}, 0.85)
	assert.False(t, ok)
}

func TestSearch_ThresholdIsStrict(t *testing.T) {
	s := loadTestStore(t,
		map[string]entity.FAQEntry{"q": {Answer: "a"}},
		map[string][]float32{"q": {1, 0}},
	)

	// Identical vector scores 1.0, which must not pass a threshold of 1.0.
	_, ok := s.Search([]float32{1, 0}, 1.0)
	assert.False(t, ok)
}

func TestSearch_ScaleInvariant(t *testing.T) {
	small := loadTestStore(t,
		map[string]entity.FAQEntry{"q": {Answer: "a"}},
		map[string][]float32{"q": {0.3, 0.4}},
	)
	scaled := loadTestStore(t,
		map[string]entity.FAQEntry{"q": {Answer: "a"}},
		map[string][]float32{"q": {30, 40}},
	)

	query := []float32{0.6, 0.8}
	m1, ok1 := small.Search(query, 0.85)
	m2, ok2 := scaled.Search(query, 0.85)
	require.True(t, ok1)
	require.True(t, ok2)
	assert.InDelta(t, float64(m1.Score), float64(m2.Score), 1e-6)
}

func TestSearch_ZeroNormReferenceScoresZero(t *testing.T) {
	s := loadTestStore(t,
		map[string]entity.FAQEntry{"zero": {Answer: "z"}, "real": {Answer: "r"}},
		map[string][]float32{"zero": {0, 0}, "real": {1, 0}},
	)

	match, ok := s.Search([]float32{1, 0}, 0.85)
	require.True(t, ok)
	assert.Equal(t, "real", match.Question)
}

func TestSearch_TieBreakFirstLoadedWins(t *testing.T) {
	// Two identical reference vectors: the entry that appears first in the
	// snapshot file must win, regardless of map iteration order.
	dir := t.TempDir()
	entriesPath := filepath.Join(dir, "faq_data.json")
	raw := `{"first": {"answer": "a1"}, "second": {"answer": "a2"}}`
	require.NoError(t, os.WriteFile(entriesPath, []byte(raw), 0o644))
	embeddingsPath := writeSnapshot(t, dir, "faq_embeddings.json", map[string][]float32{
		"first":  {1, 0},
		"second": {1, 0},
	})

	s, err := LoadFAQStore(entriesPath, embeddingsPath)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		match, ok := s.Search([]float32{1, 0}, 0.85)
		require.True(t, ok)
		assert.Equal(t, "first", match.Question)
	}
}

func TestSearch_EntryWithoutEmbeddingIsNeverACandidate(t *testing.T) {
	s := loadTestStore(t,
		map[string]entity.FAQEntry{"orphan": {Answer: "a"}, "indexed": {Answer: "b"}},
		map[string][]float32{"indexed": {0, 1}},
	)
	assert.Equal(t, 2, s.Size())

	match, ok := s.Search([]float32{0, 1}, 0.85)
	require.True(t, ok)
	assert.Equal(t, "indexed", match.Question)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, float64(cosineSimilarity([]float32{1, 2, 3}, []float32{1, 2, 3})), 1e-6)
	assert.InDelta(t, 0.0, float64(cosineSimilarity([]float32{1, 0}, []float32{0, 1})), 1e-6)
	assert.InDelta(t, -1.0, float64(cosineSimilarity([]float32{1, 0}, []float32{-1, 0})), 1e-6)
	// Zero norm and length mismatch are defined as 0, not errors.
	assert.Equal(t, float32(0), cosineSimilarity([]float32{0, 0}, []float32{1, 0}))
	assert.Equal(t, float32(0), cosineSimilarity([]float32{1}, []float32{1, 0}))
	assert.Equal(t, float32(0), cosineSimilarity(nil, nil))
}
