package conversation

import (
	"strings"

	"chatbot-service/internal/domain"
)

// DefaultSystemPrompt is used when the caller sends an empty system prompt.
const DefaultSystemPrompt = "You are a friendly and helpful AI assistant."

// ExamplePrompts are starter messages offered by the UI.
var ExamplePrompts = []string{
	"What is machine learning?",
	"Explain Python decorators",
	"Write a haiku about coding",
}

// Normalize converts client history into flat role-tagged messages.
// Entries that can't be placed in a conversation are dropped.
func Normalize(history []domain.HistoryEntry) []domain.Message {
	messages := make([]domain.Message, 0, len(history)*2)
	for _, entry := range history {
		switch {
		case entry.Pair != nil:
			// Either half may be missing, eg a turn that only uploaded a file.
			if entry.Pair.User != "" {
				messages = append(messages, domain.Message{Role: domain.RoleUser, Content: entry.Pair.User})
			}
			if entry.Pair.Assistant != "" {
				messages = append(messages, domain.Message{Role: domain.RoleAssistant, Content: entry.Pair.Assistant})
			}
		case entry.Message != nil:
			m := entry.Message
			if m.Content == "" {
				continue
			}
			// Only one system message is allowed and it always comes first.
			if m.Role != domain.RoleUser && m.Role != domain.RoleAssistant {
				continue
			}
			messages = append(messages, domain.Message{Role: m.Role, Content: m.Content})
		}
	}
	return messages
}

// Assemble builds the conversation sent to a backend: the system prompt, the
// normalized history, and the new user message with any file context in front
// of it.
func Assemble(history []domain.HistoryEntry, systemPrompt, newMessage, fileContext string) []domain.Message {
	if strings.TrimSpace(systemPrompt) == "" {
		systemPrompt = DefaultSystemPrompt
	}

	prior := Normalize(history)
	conv := make([]domain.Message, 0, len(prior)+2)
	conv = append(conv, domain.Message{Role: domain.RoleSystem, Content: systemPrompt})
	conv = append(conv, prior...)

	content := newMessage
	if block := strings.TrimSpace(fileContext); block != "" {
		content = block + "\n\n" + newMessage
	}
	conv = append(conv, domain.Message{Role: domain.RoleUser, Content: content})

	return conv
}
