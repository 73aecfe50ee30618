package domain

import "time"

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Session represents a chat thread scoped to one contract.
// At most one session exists per contract; messages are append-only.
type Session struct {
	ID         string     `json:"id"`
	ContractID string     `json:"contract_id"`
	Messages   []*Message `json:"messages,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Message represents a single chat turn.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Citations []string  `json:"citations,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatRequest is the request to ask a question about a contract.
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatAnswer is the parsed model reply for one chat turn.
type ChatAnswer struct {
	Answer    string   `json:"answer"`
	Citations []string `json:"citations"`
}
