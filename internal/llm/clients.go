package llm

//go:generate mockgen -destination=./clients_mock_test.go -package=llm -source=clients.go

import (
	"context"

	"chatbot-service/internal/domain"
)

// RemoteRequest is what gets sent to the hosted inference endpoint.
type RemoteRequest struct {
	Messages []domain.Message
	Config   domain.GenerationConfig
}

// RemoteClient defines the contract for a streaming chat completion endpoint.
type RemoteClient interface {
	// StreamChat opens a streaming completion authorized by the credential.
	StreamChat(ctx context.Context, credential domain.Credential, req *RemoteRequest) (FragmentReader, error)
	// Model is the remote model identifier.
	Model() string
}

// FragmentReader yields incremental pieces of generated text.
type FragmentReader interface {
	// Recv returns the next fragment, or io.EOF once the response is complete.
	// Fragments may be empty.
	Recv() (string, error)
	Close() error
}

// LocalEngine generates text in one blocking call.
type LocalEngine interface {
	Chat(ctx context.Context, conversation []domain.Message, cfg domain.GenerationConfig) (string, error)
}

// ExchangeRecorder stores finished exchanges for auditing.
type ExchangeRecorder interface {
	Record(ctx context.Context, exchange *domain.Exchange) error
}
