package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Role is who authored a message in a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single role-tagged entry of a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// HistoryEntry is one prior turn as sent by a client.
// Clients send either a [user, assistant] pair or a role-tagged message,
// both decode into this type.
type HistoryEntry struct {
	// Pair is set when the entry arrived as a [user, assistant] tuple.
	Pair *Turn
	// Message is set when the entry arrived as a {"role", "content"} object.
	Message *Message
}

// Turn is a user message and the assistant's reply to it. Assistant is empty
// while a reply is still pending.
type Turn struct {
	User      string
	Assistant string
}

// UnmarshalJSON accepts both history shapes. Anything it can't make sense of
// leaves the entry empty instead of failing the whole request.
func (h *HistoryEntry) UnmarshalJSON(data []byte) error {
	*h = HistoryEntry{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '[':
		var pair []*string
		if err := json.Unmarshal(data, &pair); err != nil || len(pair) == 0 || len(pair) > 2 {
			return nil
		}
		t := &Turn{}
		if pair[0] != nil {
			t.User = *pair[0]
		}
		if len(pair) == 2 && pair[1] != nil {
			t.Assistant = *pair[1]
		}
		h.Pair = t
	case '{':
		var m Message
		if err := json.Unmarshal(data, &m); err != nil {
			return nil
		}
		h.Message = &m
	}
	return nil
}

// MarshalJSON writes pairs back as tuples and messages as objects.
func (h HistoryEntry) MarshalJSON() ([]byte, error) {
	switch {
	case h.Pair != nil:
		pair := []*string{&h.Pair.User, nil}
		if h.Pair.Assistant != "" {
			pair[1] = &h.Pair.Assistant
		}
		return json.Marshal(pair)
	case h.Message != nil:
		return json.Marshal(h.Message)
	default:
		return []byte("null"), nil
	}
}

// MaxTokensCap is the hard upper bound on MaxTokens.
const MaxTokensCap = 2048

// MaxTemperature is the largest accepted sampling temperature.
const MaxTemperature = 4.0

// GenerationConfig holds the sampling settings for one call.
type GenerationConfig struct {
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
}

// DefaultGenerationConfig returns the settings used when a client sends none.
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		MaxTokens:   512,
		Temperature: 0.7,
		TopP:        0.95,
	}
}

// Validate checks the settings are within the accepted ranges.
func (c GenerationConfig) Validate() error {
	if c.MaxTokens < 1 || c.MaxTokens > MaxTokensCap {
		return fmt.Errorf("max_tokens must be between 1 and %d", MaxTokensCap)
	}
	// NaN must fail these checks.
	if !(c.Temperature > 0 && c.Temperature <= MaxTemperature) {
		return fmt.Errorf("temperature must be in (0, %.1f]", MaxTemperature)
	}
	if !(c.TopP > 0 && c.TopP <= 1) {
		return fmt.Errorf("top_p must be in (0, 1]")
	}
	return nil
}

// Backend selects which executor turns a conversation into text.
type Backend string

const (
	BackendRemote Backend = "remote"
	BackendLocal  Backend = "local"
)

// Label is the human readable name shown next to response timings.
func (b Backend) Label() string {
	if b == BackendLocal {
		return "Local Model"
	}
	return "API Model"
}

// Credential is an opaque bearer token for the remote backend.
type Credential string

// IsZero reports whether no credential was supplied.
func (c Credential) IsZero() bool {
	return c == ""
}

// Exchange is the audit record of one finished generation.
type Exchange struct {
	ExchangeID       uuid.UUID     `json:"exchange_id" db:"exchange_id"`
	Backend          Backend       `json:"backend" db:"backend"`
	Model            string        `json:"model" db:"model"`
	Conversation     []Message     `json:"conversation" db:"conversation"`
	Output           string        `json:"output" db:"output"`
	PromptTokens     int           `json:"prompt_tokens" db:"prompt_tokens"`
	CompletionTokens int           `json:"completion_tokens" db:"completion_tokens"`
	Elapsed          time.Duration `json:"elapsed" db:"elapsed_ms"`
	Error            string        `json:"error,omitempty" db:"error"`
	CreatedAt        time.Time     `json:"created_at" db:"created_at"`
}
