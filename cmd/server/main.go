package main

import (
	"context"
	"log"
	"os"
	"strconv"

	"faq-agent/internal/adapter/api"
	"faq-agent/internal/adapter/client"
	"faq-agent/internal/adapter/sheets"
	"faq-agent/internal/adapter/store"
	"faq-agent/internal/domain/entity"
	"faq-agent/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"google.golang.org/genai"
)

const (
	// Session cap: the two seed instructions plus the last 10 turns.
	sessionMaxMessages = 12

	defaultSessionLimit   = 1000
	defaultChatModel      = "gemini-2.5-flash"
	defaultEmbeddingModel = "text-embedding-004"
	defaultFAQDataPath    = "./data/faq_data.json"
	defaultFAQVectorsPath = "./data/faq_embeddings.json"
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

	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	location := os.Getenv("GOOGLE_CLOUD_LOCATION")

	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		log.Fatalf("failed to init genai client: %v", err)
	}

	embedder := client.NewEmbedder(genaiClient, getEnv("EMBEDDING_MODEL", defaultEmbeddingModel))
	generator := client.NewGeminiGenerator(genaiClient, getEnv("CHAT_MODEL", defaultChatModel))

	// FAQ snapshots: missing files mean an empty store, never a failed boot.
	faqStore, err := store.LoadFAQStore(
		getEnv("FAQ_DATA_PATH", defaultFAQDataPath),
		getEnv("FAQ_EMBEDDINGS_PATH", defaultFAQVectorsPath),
	)
	if err != nil {
		log.Fatalf("failed to load FAQ snapshots: %v", err)
	}
	log.Printf("[FAQ] loaded %d entries", faqStore.Size())

	sessionLimit, err := strconv.Atoi(getEnv("SESSION_LIMIT", ""))
	if err != nil || sessionLimit <= 0 {
		sessionLimit = defaultSessionLimit
	}
	seed := []entity.Message{
		{Role: entity.RoleSystem, Content: getEnv("PERSONA_PROMPT", usecase.DefaultPersonaPrompt)},
		{Role: entity.RoleUser, Content: getEnv("BREVITY_PROMPT", usecase.DefaultBrevityPrompt)},
	}
	sessionStore := store.NewSessionStore(seed, sessionMaxMessages, sessionLimit)

	// The spreadsheet log only runs when a sheet is configured.
	var (
		profiler     *client.GeminiProfiler
		interactions *sheets.Logger
	)
	if sheetID := os.Getenv("SHEET_ID"); sheetID != "" {
		interactions, err = sheets.NewLogger(ctx, []byte(os.Getenv("GOOGLE_CREDENTIALS")), sheetID)
		if err != nil {
			log.Fatalf("failed to init interaction log: %v", err)
		}
		profiler = client.NewGeminiProfiler(genaiClient, getEnv("CHAT_MODEL", defaultChatModel))
	}

	var orchestrator *usecase.Orchestrator
	if interactions != nil {
		orchestrator = usecase.NewOrchestrator(faqStore, sessionStore, generator, embedder, profiler, interactions)
	} else {
		orchestrator = usecase.NewOrchestrator(faqStore, sessionStore, generator, embedder, nil, nil)
	}

	app := fiber.New(fiber.Config{
		AppName: "FAQ Agent",
	})

	handler := api.NewChatHandler(orchestrator, api.ClientKeyFromIP)
	api.SetupRouter(app, handler)

	port := getEnv("PORT", "8000")
	log.Printf("FAQ agent running on port %s", port)
	log.Fatal(app.Listen(":" + port))
}
