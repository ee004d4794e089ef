package api

import (
	"faq-agent/internal/domain/entity"
	"faq-agent/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

// ClientKeyFunc derives the session key for a request. The default uses the
// caller's network address, which is a weak identity signal; swap in a
// stronger scheme here without touching the orchestration.
type ClientKeyFunc func(c *fiber.Ctx) string

func ClientKeyFromIP(c *fiber.Ctx) string {
	return c.IP()
}

type ChatHandler struct {
	orchestrator *usecase.Orchestrator
	clientKey    ClientKeyFunc
}

func NewChatHandler(orch *usecase.Orchestrator, clientKey ClientKeyFunc) *ChatHandler {
	if clientKey == nil {
		clientKey = ClientKeyFromIP
	}
	return &ChatHandler{orchestrator: orch, clientKey: clientKey}
}

func (h *ChatHandler) HandleChat(c *fiber.Ctx) error {
	var req entity.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	resp, err := h.orchestrator.Chat(c.Context(), h.clientKey(c), req.Message)
	if err != nil {
		// Upstream detail stays out of the response body.
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal chat error"})
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}
