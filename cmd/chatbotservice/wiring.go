package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"chatbot-service/internal/audit"
	"chatbot-service/internal/config"
	"chatbot-service/internal/llm"
)

// openAudit connects the exchange store named by the config. It returns a nil
// db when auditing is off.
func openAudit(ctx context.Context, cfg *config.Config) (*sql.DB, audit.Repository, error) {
	if cfg.Audit.Driver == "" {
		return nil, nil, nil
	}
	db, err := audit.Open(cfg.Audit.Driver, cfg.Audit.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to audit database: %w", err)
	}
	repo := audit.NewSQLRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	audit.LoadTokenizer()
	log.Printf("Auditing exchanges to %s database", cfg.Audit.Driver)
	return db, repo, nil
}

// buildService wires the backends and the optional audit store into the chat
// service. The returned func releases what was opened.
func buildService(ctx context.Context, cfg *config.Config) (llm.Service, func(), error) {
	remote := llm.NewHFRouterClient(cfg.Remote.BaseURL, cfg.Remote.Model)

	var local *llm.LocalModel
	if cfg.Local.Enabled {
		local = llm.NewLocalModel(cfg.Local.Model, llm.NewOllamaLoader(cfg.Local.Host, cfg.Local.Model))
	}

	db, repo, err := openAudit(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// A nil repository must stay a nil interface for the service.
	var recorder llm.ExchangeRecorder
	cleanup := func() {}
	if repo != nil {
		recorder = repo
		cleanup = func() { db.Close() }
	}

	return llm.NewService(remote, local, recorder), cleanup, nil
}
