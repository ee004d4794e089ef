package client

import (
	"context"
	"encoding/json"
	"strings"

	"faq-agent/internal/domain/entity"

	"google.golang.org/genai"
)

// GeminiProfiler classifies a user message into the three labels attached
// to logged interactions. Any failure degrades to the all-unknown profile;
// classification must never affect the request itself.
type GeminiProfiler struct {
	client *genai.Client
	model  string
}

func NewGeminiProfiler(c *genai.Client, model string) *GeminiProfiler {
	return &GeminiProfiler{client: c, model: model}
}

func (p *GeminiProfiler) Classify(ctx context.Context, message string) entity.UserProfile {
	// Structured prompt to force a flat JSON object, no prose.
	instruction := `You are a user profile classifier. Given the message below, return a JSON object with:
- business_type: (hotel, restaurant, guide, other)
- intent: (register, increase_visibility, browsing, other)
- familiarity: (new, knows_the_site, registered)
Respond with only the JSON, no explanation.`

	resp, err := p.client.Models.GenerateContent(ctx, p.model,
		genai.Text(instruction+"\n\nMessage:\n"+message), nil)
	if err != nil {
		return entity.UnknownProfile()
	}

	raw := strings.TrimSpace(resp.Text())
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.Trim(raw, "` \n")

	profile := entity.UnknownProfile()
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return entity.UnknownProfile()
	}
	if profile.BusinessType == "" {
		profile.BusinessType = "unknown"
	}
	if profile.Intent == "" {
		profile.Intent = "unknown"
	}
	if profile.Familiarity == "" {
		profile.Familiarity = "unknown"
	}
	return profile
}
