package llm

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"chatbot-service/internal/domain"

	ollama "github.com/ollama/ollama/api"
)

const (
	// DefaultLocalHost is where a local Ollama server listens.
	DefaultLocalHost = "http://localhost:11434"
	// DefaultLocalModel is the model pulled into the local server.
	DefaultLocalModel = "llama3.2:3b"
)

// LocalLoader brings a local engine up. It may take a long time.
type LocalLoader func(ctx context.Context) (LocalEngine, error)

// LocalModel owns the process' local engine. It is created by main and
// injected into the service; the engine is loaded on first use.
type LocalModel struct {
	name string
	load LocalLoader

	mu     sync.Mutex
	engine LocalEngine
}

// NewLocalModel wraps a loader. Nothing is loaded until Acquire is called.
func NewLocalModel(name string, load LocalLoader) *LocalModel {
	return &LocalModel{
		name: name,
		load: load,
	}
}

// Name is the local model identifier.
func (m *LocalModel) Name() string {
	return m.name
}

// Acquire returns the loaded engine, loading it if needed. Once a load has
// succeeded the loader is never called again; a failed load is retried by the
// next caller.
func (m *LocalModel) Acquire(ctx context.Context) (LocalEngine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.engine != nil {
		return m.engine, nil
	}

	start := time.Now()
	engine, err := m.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not load local model %s: %w", m.name, err)
	}
	m.engine = engine
	log.Printf("[LLM] local model %s loaded in %s", m.name, time.Since(start).Round(time.Millisecond))

	return engine, nil
}

// ollamaEngine runs chats against a local Ollama server.
type ollamaEngine struct {
	client *ollama.Client
	model  string
}

// NewOllamaLoader returns a loader that checks the model exists on the server
// at host and warms it into memory.
func NewOllamaLoader(host, model string) LocalLoader {
	return func(ctx context.Context) (LocalEngine, error) {
		if host == "" {
			host = DefaultLocalHost
		}
		u, err := url.Parse(host)
		if err != nil {
			return nil, fmt.Errorf("invalid local host %q: %w", host, err)
		}

		client := ollama.NewClient(u, &http.Client{Timeout: 5 * time.Minute})

		if _, err := client.Show(ctx, &ollama.ShowRequest{Model: model}); err != nil {
			return nil, fmt.Errorf("model %s is not available: %w", model, err)
		}

		// A generate request without a prompt only loads the model.
		if err := client.Generate(ctx, &ollama.GenerateRequest{Model: model}, func(ollama.GenerateResponse) error {
			return nil
		}); err != nil {
			return nil, fmt.Errorf("could not warm up %s: %w", model, err)
		}

		return &ollamaEngine{client: client, model: model}, nil
	}
}

// Chat makes one non-streaming chat call.
func (e *ollamaEngine) Chat(ctx context.Context, conversation []domain.Message, cfg domain.GenerationConfig) (string, error) {
	messages := make([]ollama.Message, 0, len(conversation))
	for _, m := range conversation {
		messages = append(messages, ollama.Message{Role: string(m.Role), Content: m.Content})
	}

	stream := false
	req := &ollama.ChatRequest{
		Model:    e.model,
		Messages: messages,
		Stream:   &stream,
		Options: map[string]any{
			"num_predict": cfg.MaxTokens,
			"temperature": cfg.Temperature,
			"top_p":       cfg.TopP,
		},
	}

	var text strings.Builder
	if err := e.client.Chat(ctx, req, func(resp ollama.ChatResponse) error {
		text.WriteString(resp.Message.Content)
		return nil
	}); err != nil {
		return "", fmt.Errorf("local chat failed: %w", err)
	}

	return strings.TrimSpace(text.String()), nil
}
