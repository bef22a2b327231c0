package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"chatbot-service/internal/domain"
)

// Stream is a pull based sequence of response values. Recv returns io.EOF
// after the last value. Close may be called at any point to stop early.
type Stream interface {
	Recv() (Chunk, error)
	Close() error
}

// SignInNotice is sent instead of a response when the remote backend is
// selected without a credential.
const SignInNotice = "⚠️ Please sign in with Hugging Face to use the API model. " +
	"Click the 'Sign in with Hugging Face' button above, or switch to the local model."

// LocalUnavailableNotice is sent when the local backend is selected but the
// server has none configured.
const LocalUnavailableNotice = "⚠️ The local model is not available on this server. Please use the API model."

// annotate appends the response time line to a finished response.
func annotate(text string, elapsed time.Duration, backend domain.Backend) string {
	return fmt.Sprintf("%s\n\n⏱️ *Response time: %.2fs (%s)*", text, elapsed.Seconds(), backend.Label())
}

func remoteFailure(err error) string {
	return fmt.Sprintf("Error: %v\n\nPlease try signing in with Hugging Face or check your connection.", err)
}

func localFailure(err error) string {
	return fmt.Sprintf("Error: %v\n\nThe local model could not produce a response.", err)
}

// noticeStream yields a single notice.
type noticeStream struct {
	text string
	sent bool
}

func newNoticeStream(text string) Stream {
	return &noticeStream{text: text}
}

func (s *noticeStream) Recv() (Chunk, error) {
	if s.sent {
		return Chunk{}, io.EOF
	}
	s.sent = true
	return Chunk{Kind: ChunkNotice, Text: s.text}, nil
}

func (s *noticeStream) Close() error {
	s.sent = true
	return nil
}

// exchange collects what's needed to finish a stream: timing, the final
// annotation and the audit record.
type exchange struct {
	ctx          context.Context
	svc          *service
	backend      domain.Backend
	model        string
	conversation []domain.Message
	started      time.Time
}

func (e *exchange) start() {
	e.started = e.svc.now()
}

// finish builds the final chunk for text and records the exchange.
func (e *exchange) finish(text string) Chunk {
	elapsed := e.svc.now().Sub(e.started)
	e.record(text, elapsed, nil)
	return Chunk{
		Kind:           ChunkFinal,
		Text:           annotate(text, elapsed, e.backend),
		Backend:        e.backend.Label(),
		ElapsedSeconds: roundSeconds(elapsed),
	}
}

// fail turns err into a notice chunk and records the failed exchange.
func (e *exchange) fail(err error, notice func(error) string) Chunk {
	log.Printf("[LLM] %s generation failed: %v", e.backend, err)
	e.record("", e.svc.now().Sub(e.started), err)
	return Chunk{Kind: ChunkNotice, Text: notice(err)}
}

// record hands the exchange to the recorder in the background, so a slow
// audit store never holds back the final value. The write outlives the
// request but is bounded by the service's audit timeout.
func (e *exchange) record(output string, elapsed time.Duration, genErr error) {
	if e.svc.recorder == nil {
		return
	}
	ex := &domain.Exchange{
		Backend:      e.backend,
		Model:        e.model,
		Conversation: e.conversation,
		Output:       output,
		Elapsed:      elapsed,
	}
	if genErr != nil {
		ex.Error = genErr.Error()
	}

	e.svc.pending.Add(1)
	go func() {
		defer e.svc.pending.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(e.ctx), e.svc.auditTimeout)
		defer cancel()
		if err := e.svc.recorder.Record(ctx, ex); err != nil {
			log.Printf("WARNING: could not record %s exchange: %v", e.backend, err)
		}
	}()
}

func roundSeconds(d time.Duration) float64 {
	return float64(d.Round(10*time.Millisecond).Milliseconds()) / 1000
}

// remoteStream forwards fragments from the remote backend as growing prefixes.
type remoteStream struct {
	exchange
	client     RemoteClient
	credential domain.Credential
	req        *RemoteRequest

	reader FragmentReader
	text   strings.Builder
	done   bool
}

func (s *remoteStream) Recv() (Chunk, error) {
	if s.done {
		return Chunk{}, io.EOF
	}

	// The request is only dispatched once the consumer asks for a value.
	if s.reader == nil {
		s.start()
		reader, err := s.client.StreamChat(s.ctx, s.credential, s.req)
		if err != nil {
			s.done = true
			return s.fail(err, remoteFailure), nil
		}
		s.reader = reader
	}

	for {
		fragment, err := s.reader.Recv()
		if errors.Is(err, io.EOF) {
			s.close()
			return s.finish(s.text.String()), nil
		}
		if err != nil {
			s.close()
			return s.fail(err, remoteFailure), nil
		}
		if fragment == "" {
			continue
		}
		s.text.WriteString(fragment)
		return Chunk{Kind: ChunkPartial, Text: s.text.String()}, nil
	}
}

func (s *remoteStream) Close() error {
	if s.done {
		return nil
	}
	return s.close()
}

func (s *remoteStream) close() error {
	s.done = true
	if s.reader == nil {
		return nil
	}
	return s.reader.Close()
}

// localStream makes one blocking call and yields the whole response at once.
type localStream struct {
	exchange
	local *LocalModel
	cfg   domain.GenerationConfig

	text string
	step int
}

const (
	localPending = iota
	localGenerated
	localDone
)

func (s *localStream) Recv() (Chunk, error) {
	switch s.step {
	case localPending:
		s.start()
		s.step = localDone

		engine, err := s.local.Acquire(s.ctx)
		if err != nil {
			return s.fail(err, localFailure), nil
		}
		text, err := engine.Chat(s.ctx, s.conversation, s.cfg)
		if err != nil {
			return s.fail(err, localFailure), nil
		}

		s.text = text
		s.step = localGenerated
		return Chunk{Kind: ChunkPartial, Text: text}, nil
	case localGenerated:
		s.step = localDone
		return s.finish(s.text), nil
	default:
		return Chunk{}, io.EOF
	}
}

func (s *localStream) Close() error {
	s.step = localDone
	return nil
}
