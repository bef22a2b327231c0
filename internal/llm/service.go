package llm

//go:generate mockgen -destination=./service_mock_test.go -package=llm -source=service.go Service

import (
	"context"
	"sync"
	"time"

	"chatbot-service/internal/conversation"
	"chatbot-service/internal/domain"
	"chatbot-service/internal/filecontext"
)

// Service defines the business logic for the chatbot.
type Service interface {
	// Respond assembles a conversation from a client request and streams the reply.
	Respond(ctx context.Context, req *ChatRequest) Stream

	// Generate streams a reply for an already assembled conversation.
	Generate(ctx context.Context, conv []domain.Message, cfg domain.GenerationConfig, backend domain.Backend, credential domain.Credential) Stream

	// Backends lists the backends this server can use.
	Backends() []domain.Backend

	// Wait blocks until every exchange handed to the recorder has been written.
	Wait()
}

// defaultAuditTimeout bounds a single exchange write.
const defaultAuditTimeout = 10 * time.Second

// service is the concrete implementation of the Service interface.
type service struct {
	remote   RemoteClient     // hosted inference endpoint
	local    *LocalModel      // nil when no local model is configured
	recorder ExchangeRecorder // nil when auditing is off
	now      func() time.Time

	auditTimeout time.Duration
	pending      sync.WaitGroup // background exchange writes
}

// NewService is the constructor for the chatbot service. local and recorder
// may be nil.
func NewService(remote RemoteClient, local *LocalModel, recorder ExchangeRecorder) Service {
	return &service{
		remote:   remote,
		local:    local,
		recorder: recorder,
		now:      time.Now,

		auditTimeout: defaultAuditTimeout,
	}
}

// Respond implements the Service interface.
func (s *service) Respond(ctx context.Context, req *ChatRequest) Stream {
	fileContext := filecontext.Extract(req.FilePath)
	conv := conversation.Assemble(req.History, req.SystemPrompt, req.Message, fileContext)
	return s.Generate(ctx, conv, req.Config, req.Backend, req.Credential)
}

// Generate implements the Service interface. It never fails: problems are
// reported as a notice chunk inside the stream.
func (s *service) Generate(ctx context.Context, conv []domain.Message, cfg domain.GenerationConfig, backend domain.Backend, credential domain.Credential) Stream {
	if backend == domain.BackendLocal {
		if s.local == nil {
			return newNoticeStream(LocalUnavailableNotice)
		}
		return &localStream{
			exchange: exchange{ctx: ctx, svc: s, backend: backend, model: s.local.Name(), conversation: conv},
			local:    s.local,
			cfg:      cfg,
		}
	}

	// Without a credential there is nothing to dispatch.
	if credential.IsZero() {
		return newNoticeStream(SignInNotice)
	}

	return &remoteStream{
		exchange:   exchange{ctx: ctx, svc: s, backend: domain.BackendRemote, model: s.remote.Model(), conversation: conv},
		client:     s.remote,
		credential: credential,
		req:        &RemoteRequest{Messages: conv, Config: cfg},
	}
}

// Backends implements the Service interface.
func (s *service) Backends() []domain.Backend {
	if s.local == nil {
		return []domain.Backend{domain.BackendRemote}
	}
	return []domain.Backend{domain.BackendRemote, domain.BackendLocal}
}

// Wait implements the Service interface.
func (s *service) Wait() {
	s.pending.Wait()
}
