package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chatbot-service/internal/auth"
	"chatbot-service/internal/config"
	"chatbot-service/internal/domain"
	"chatbot-service/internal/llm"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the chat http api",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if servePort != "" {
		cfg.Port = servePort
	}

	chatService, cleanup, err := buildService(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	chatHandler := llm.NewHandler(chatService, cfg.SystemPrompt)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ChatbotService OK"))
	})

	// Chat routes read the caller's token, falling back to the server's.
	r.Group(func(r chi.Router) {
		r.Use(auth.Credentials(domain.Credential(cfg.HFToken)))
		chatHandler.RegisterRoutes(r)
	})

	srv := &http.Server{Addr: fmt.Sprintf(":%s", cfg.Port), Handler: r}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("ChatbotService starting on port %s (backends: %v)", cfg.Port, chatService.Backends())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("could not start server: %w", err)
		}
	case <-ctx.Done():
		log.Println("ChatbotService shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("WARNING: shutdown did not complete: %v", err)
		}
	}

	// Pending audit writes finish before the store is closed.
	chatService.Wait()
	return nil
}
