package llm

import (
	"chatbot-service/internal/domain"
)

// ChatRequest is everything a client sends for one chat turn.
type ChatRequest struct {
	// Message is the new user message.
	Message string
	// History is the prior turns in either accepted shape.
	History []domain.HistoryEntry
	// SystemPrompt replaces the default system prompt when non-empty.
	SystemPrompt string
	Config       domain.GenerationConfig
	Backend      domain.Backend
	// FilePath points at an uploaded file, empty when there is none.
	FilePath   string
	Credential domain.Credential
}

// ChunkKind tells a consumer how to treat a streamed value.
type ChunkKind string

const (
	// ChunkPartial carries the response text received so far.
	ChunkPartial ChunkKind = "partial"
	// ChunkFinal is the last value of a successful stream, annotated with timing.
	ChunkFinal ChunkKind = "final"
	// ChunkNotice is a user facing diagnostic. It is always the only or last value.
	ChunkNotice ChunkKind = "notice"
)

// Chunk is one value of a response stream. Consumers render the latest Text.
type Chunk struct {
	Kind ChunkKind `json:"kind"`
	Text string    `json:"text"`
	// Backend is the label of the backend that produced the final value.
	Backend string `json:"backend,omitempty"`
	// ElapsedSeconds is the wall clock time of the call, set on final values.
	ElapsedSeconds float64 `json:"elapsed_seconds,omitempty"`
}
