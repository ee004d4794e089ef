// Command precompute regenerates the FAQ embeddings snapshot. It embeds
// every question in the FAQ data file exactly once and writes the aligned
// question->vector mapping the server loads at startup.
package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"sort"

	"faq-agent/internal/adapter/client"
	"faq-agent/internal/domain/entity"

	"github.com/joho/godotenv"
	"google.golang.org/genai"
)

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}
	ctx := context.Background()

	dataPath := getEnv("FAQ_DATA_PATH", "./data/faq_data.json")
	vectorsPath := getEnv("FAQ_EMBEDDINGS_PATH", "./data/faq_embeddings.json")

	raw, err := os.ReadFile(dataPath)
	if err != nil {
		log.Fatalf("failed to read FAQ data %s: %v", dataPath, err)
	}
	var faq map[string]entity.FAQEntry
	if err := json.Unmarshal(raw, &faq); err != nil {
		log.Fatalf("failed to parse FAQ data: %v", err)
	}

	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  os.Getenv("GOOGLE_CLOUD_PROJECT"),
		Location: os.Getenv("GOOGLE_CLOUD_LOCATION"),
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		log.Fatalf("failed to init genai client: %v", err)
	}
	embedder := client.NewEmbedder(genaiClient, getEnv("EMBEDDING_MODEL", "text-embedding-004"))

	questions := make([]string, 0, len(faq))
	for q := range faq {
		questions = append(questions, q)
	}
	sort.Strings(questions)

	embeddings := make(map[string][]float32, len(faq))
	for _, q := range questions {
		vec, err := embedder.CreateEmbedding(ctx, q)
		if err != nil {
			log.Fatalf("failed to embed %q: %v", q, err)
		}
		embeddings[q] = vec
		log.Printf("embedded %q (%d dims)", q, len(vec))
	}

	out, err := json.Marshal(embeddings)
	if err != nil {
		log.Fatalf("failed to encode embeddings: %v", err)
	}
	if err := os.WriteFile(vectorsPath, out, 0o644); err != nil {
		log.Fatalf("failed to write %s: %v", vectorsPath, err)
	}
	log.Printf("wrote %d embeddings to %s", len(embeddings), vectorsPath)
}
