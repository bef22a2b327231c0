package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"chatbot-service/internal/domain"

	"github.com/sashabaranov/go-openai"
)

const (
	// DefaultRemoteBaseURL is the OpenAI compatible Hugging Face inference router.
	DefaultRemoteBaseURL = "https://router.huggingface.co/v1"
	// DefaultRemoteModel is the hosted model used for API responses.
	DefaultRemoteModel = "meta-llama/Llama-3.2-3B-Instruct"
)

// hfRouterClient talks to the Hugging Face router through its OpenAI compatible API.
type hfRouterClient struct {
	httpClient *http.Client
	baseURL    string
	model      string
}

// NewHFRouterClient is the constructor for the remote client.
// The credential is supplied per call, so one client serves every user.
func NewHFRouterClient(baseURL, model string) RemoteClient {
	if baseURL == "" {
		baseURL = DefaultRemoteBaseURL
	}
	if model == "" {
		model = DefaultRemoteModel
	}
	return &hfRouterClient{
		httpClient: &http.Client{Timeout: 2 * time.Minute}, // covers the whole streamed body
		baseURL:    baseURL,
		model:      model,
	}
}

func (c *hfRouterClient) Model() string {
	return c.model
}

// StreamChat opens a streaming chat completion.
func (c *hfRouterClient) StreamChat(ctx context.Context, credential domain.Credential, req *RemoteRequest) (FragmentReader, error) {
	if credential.IsZero() {
		return nil, fmt.Errorf("missing credential")
	}

	cfg := openai.DefaultConfig(string(credential))
	cfg.BaseURL = c.baseURL
	cfg.HTTPClient = c.httpClient
	client := openai.NewClientWithConfig(cfg)

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}

	stream, err := client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   req.Config.MaxTokens,
		Temperature: float32(req.Config.Temperature),
		TopP:        float32(req.Config.TopP),
		Stream:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("could not open completion stream: %w", err)
	}

	return &completionFragments{stream: stream}, nil
}

// completionFragments adapts an openai stream to FragmentReader.
type completionFragments struct {
	stream *openai.ChatCompletionStream
}

func (f *completionFragments) Recv() (string, error) {
	resp, err := f.stream.Recv()
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Delta.Content, nil
}

func (f *completionFragments) Close() error {
	return f.stream.Close()
}
