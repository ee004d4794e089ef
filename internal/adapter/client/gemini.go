package client

import (
	"context"
	"fmt"

	"faq-agent/internal/domain/entity"

	"google.golang.org/genai"
)

// GeminiGenerator implements the two completion call shapes: rephrasing a
// retrieved answer and continuing a persona conversation.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiGenerator(c *genai.Client, model string) *GeminiGenerator {
	return &GeminiGenerator{
		client: c,
		model:  model,
	}
}

// Rephrase restates text in the given style while keeping the information
// and the friendly HTML markup. Callers fall back to the original text when
// this fails.
func (g *GeminiGenerator) Rephrase(ctx context.Context, text, style string) (string, error) {
	prompt := fmt.Sprintf(
		"Reformula este contenido en un tono %s, manteniendo la información y el formato en HTML amigable, "+
			"con párrafos <p>, saltos de línea <br> y palabras clave en <strong>:\n\n%s",
		style, text)

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// ContinueConversation sends the capped role-tagged history and returns the
// next assistant message. Leading system messages become the model's system
// instruction; user and assistant messages map onto provider roles.
func (g *GeminiGenerator) ContinueConversation(ctx context.Context, history []entity.Message) (string, error) {
	var (
		contents []*genai.Content
		system   string
	)
	for _, msg := range history {
		switch msg.Role {
		case entity.RoleSystem:
			if system != "" {
				system += "\n\n"
			}
			system += msg.Content
		case entity.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))
		}
	}
	if len(contents) == 0 {
		return "", fmt.Errorf("conversation history contains no user messages")
	}

	var config *genai.GenerateContentConfig
	if system != "" {
		config = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}
