package entity

import "time"

// Message roles follow the upstream chat convention.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// FAQEntry is one pre-written answer, immutable after load.
type FAQEntry struct {
	Answer  string `json:"answer"`
	Sticker string `json:"sticker,omitempty"`
}

// FAQMatch is the result of a similarity search over the FAQ index.
type FAQMatch struct {
	Question string
	Answer   string
	Sticker  string
	Score    float32
}

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Response string `json:"response"`
	Sticker  string `json:"sticker"`
}

// UserProfile holds the three classification labels attached to a logged
// interaction. Unclassifiable fields stay "unknown".
type UserProfile struct {
	BusinessType string `json:"business_type"`
	Intent       string `json:"intent"`
	Familiarity  string `json:"familiarity"`
}

func UnknownProfile() UserProfile {
	return UserProfile{BusinessType: "unknown", Intent: "unknown", Familiarity: "unknown"}
}

// Interaction is one row of the optional spreadsheet log.
type Interaction struct {
	Timestamp time.Time
	ClientID  string
	Question  string
	Answer    string
	Source    string // "faq" or "llm"
	Profile   UserProfile
}
