package llm

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"chatbot-service/internal/auth"
	"chatbot-service/internal/conversation"
	"chatbot-service/internal/domain"
	"chatbot-service/internal/filecontext"

	"github.com/go-chi/chi/v5"
)

// maxUploadBody bounds a multipart chat request: the file plus the payload.
const maxUploadBody = filecontext.MaxFileSize + 64<<10

// maxJSONBody bounds a plain json chat request. History carried by the client
// counts against it.
const maxJSONBody = 1 << 20

// Handler is the http api layer for the chatbot.
type Handler struct {
	service      Service
	systemPrompt string
}

// NewHandler creates a new handler injecting the service. systemPrompt is used
// when a request doesn't bring its own; blank means the built in default.
func NewHandler(s Service, systemPrompt string) *Handler {
	if strings.TrimSpace(systemPrompt) == "" {
		systemPrompt = conversation.DefaultSystemPrompt
	}
	return &Handler{
		service:      s,
		systemPrompt: systemPrompt,
	}
}

// RegisterRoutes attaches the chat endpoints to the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
	r.Get("/chat/defaults", h.handleDefaults)
}

// --- DTOs ---

// chatPayload is the DTO for what the browser sends.
// Unset numeric settings fall back to the defaults.
type chatPayload struct {
	Message       string                `json:"message"`
	History       []domain.HistoryEntry `json:"history"`
	SystemMessage string                `json:"system_message"`
	MaxTokens     *int                  `json:"max_tokens"`
	Temperature   *float64              `json:"temperature"`
	TopP          *float64              `json:"top_p"`
	UseLocalModel bool                  `json:"use_local_model"`
}

// defaultsResponse tells the UI how to initialize its settings.
type defaultsResponse struct {
	SystemMessage string                  `json:"system_message"`
	Config        domain.GenerationConfig `json:"config"`
	MaxTokensCap  int                     `json:"max_tokens_cap"`
	Backends      []domain.Backend        `json:"backends"`
	Examples      []string                `json:"examples"`
}

// toRequest applies defaults and validates the settings.
func (p *chatPayload) toRequest() (*ChatRequest, error) {
	if strings.TrimSpace(p.Message) == "" {
		return nil, errors.New("message cannot be empty")
	}

	cfg := domain.DefaultGenerationConfig()
	if p.MaxTokens != nil {
		cfg.MaxTokens = *p.MaxTokens
	}
	if p.Temperature != nil {
		cfg.Temperature = *p.Temperature
	}
	if p.TopP != nil {
		cfg.TopP = *p.TopP
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	backend := domain.BackendRemote
	if p.UseLocalModel {
		backend = domain.BackendLocal
	}

	return &ChatRequest{
		Message:      p.Message,
		History:      p.History,
		SystemPrompt: p.SystemMessage,
		Config:       cfg,
		Backend:      backend,
	}, nil
}

// --- Handlers ---

// handleChat streams a reply as newline delimited json chunks.
func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var (
		payload  chatPayload
		filePath string
	)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		path, cleanup, err := decodeMultipart(w, r, &payload)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		defer cleanup()
		filePath = path
	} else {
		r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, http.StatusRequestEntityTooLarge, "Request payload too large")
				return
			}
			writeError(w, http.StatusBadRequest, "Invalid request payload")
			return
		}
	}

	req, err := payload.toRequest()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.SystemPrompt) == "" {
		req.SystemPrompt = h.systemPrompt
	}
	req.FilePath = filePath
	req.Credential = auth.GetCredential(r.Context())

	stream := h.service.Respond(r.Context(), req)
	defer stream.Close()

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)
	enc := json.NewEncoder(w)
	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			log.Printf("[LLM] stream ended unexpectedly: %v", err)
			return
		}
		if err := enc.Encode(chunk); err != nil {
			// The client went away, stop pulling.
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}

// handleDefaults returns the settings the UI should start from.
func (h *Handler) handleDefaults(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, defaultsResponse{
		SystemMessage: h.systemPrompt,
		Config:        domain.DefaultGenerationConfig(),
		MaxTokensCap:  domain.MaxTokensCap,
		Backends:      h.service.Backends(),
		Examples:      conversation.ExamplePrompts,
	})
}

// decodeMultipart reads the payload field and stores the optional file part in
// a temp dir. The returned cleanup removes it.
func decodeMultipart(w http.ResponseWriter, r *http.Request, payload *chatPayload) (string, func(), error) {
	noop := func() {}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
	if err := r.ParseMultipartForm(maxUploadBody); err != nil {
		return "", noop, errors.New("Invalid multipart payload")
	}

	if err := json.Unmarshal([]byte(r.FormValue("payload")), payload); err != nil {
		return "", noop, errors.New("Invalid request payload")
	}

	file, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return "", noop, nil
	}
	if err != nil {
		return "", noop, errors.New("Invalid file upload")
	}
	defer file.Close()

	dir, err := os.MkdirTemp("", "chatbot-upload-*")
	if err != nil {
		return "", noop, errors.New("Could not store upload")
	}
	cleanup := func() { os.RemoveAll(dir) }

	// Keep the client's file name so the context block can name it.
	name := filepath.Base(header.Filename)
	if name == "." || name == string(filepath.Separator) {
		name = "upload"
	}
	path := filepath.Join(dir, name)
	out, err := os.Create(path)
	if err != nil {
		cleanup()
		return "", noop, errors.New("Could not store upload")
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		cleanup()
		return "", noop, errors.New("Could not store upload")
	}

	return path, cleanup, nil
}

// writeJSON is a helper function for sending json responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError is a helper for sending a standardized json error.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
