package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"chatbot-service/internal/domain"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	_ "github.com/mattn/go-sqlite3"    // registers the "sqlite3" driver
)

// Supported database/sql driver names.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

// ErrNotFound is returned when an exchange doesn't exist.
var ErrNotFound = errors.New("exchange not found")

// Repository defines the contract for storing chat exchanges.
type Repository interface {
	// EnsureSchema creates the exchanges table if it doesn't exist.
	EnsureSchema(ctx context.Context) error
	// Record inserts a finished exchange.
	Record(ctx context.Context, ex *domain.Exchange) error
	// GetExchange fetches a single exchange by ID.
	GetExchange(ctx context.Context, id uuid.UUID) (*domain.Exchange, error)
	// RecentExchanges fetches the newest exchanges first.
	RecentExchanges(ctx context.Context, limit int) ([]*domain.Exchange, error)
}

// sqlRepository is the concrete implementation of the repo on top of database/sql.
// The queries are plain enough to run on both Postgres and SQLite.
type sqlRepository struct {
	db *sql.DB // The database connection pool.
}

// NewSQLRepository is the constructor for the repository.
func NewSQLRepository(db *sql.DB) Repository {
	return &sqlRepository{
		db: db,
	}
}

// Open opens and verifies a database connection for one of the supported drivers.
func Open(driver, dsn string) (*sql.DB, error) {
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("unsupported audit driver %q", driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	// Ping() verifies the connection is actually alive.
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

const schema = `
	CREATE TABLE IF NOT EXISTS chat_exchanges (
		exchange_id       TEXT PRIMARY KEY,
		backend           TEXT NOT NULL,
		model             TEXT NOT NULL,
		conversation      TEXT NOT NULL,
		output            TEXT NOT NULL,
		prompt_tokens     INTEGER NOT NULL,
		completion_tokens INTEGER NOT NULL,
		elapsed_ms        BIGINT NOT NULL,
		error             TEXT NOT NULL,
		created_at        TIMESTAMP NOT NULL
	)
`

// EnsureSchema creates the chat_exchanges table.
func (r *sqlRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("could not create chat_exchanges table: %w", err)
	}
	return nil
}

// Record inserts a chat_exchanges row. Server side fields are filled in here.
func (r *sqlRepository) Record(ctx context.Context, ex *domain.Exchange) error {
	ex.ExchangeID = uuid.New()
	ex.CreatedAt = time.Now().UTC()
	if ex.PromptTokens == 0 {
		ex.PromptTokens = CountConversationTokens(ex.Conversation)
	}
	if ex.CompletionTokens == 0 {
		ex.CompletionTokens = CountTokens(ex.Output)
	}

	conv, err := json.Marshal(ex.Conversation)
	if err != nil {
		return fmt.Errorf("could not encode conversation: %w", err)
	}

	query := `
		INSERT INTO chat_exchanges
			(exchange_id, backend, model, conversation, output, prompt_tokens, completion_tokens, elapsed_ms, error, created_at)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = r.db.ExecContext(ctx, query,
		ex.ExchangeID.String(),
		string(ex.Backend),
		ex.Model,
		string(conv),
		ex.Output,
		ex.PromptTokens,
		ex.CompletionTokens,
		ex.Elapsed.Milliseconds(),
		ex.Error,
		ex.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("could not insert exchange: %w", err)
	}
	return nil
}

const selectColumns = `
	SELECT exchange_id, backend, model, conversation, output, prompt_tokens, completion_tokens, elapsed_ms, error, created_at
	FROM chat_exchanges
`

// GetExchange fetches a single exchange by its primary key.
func (r *sqlRepository) GetExchange(ctx context.Context, id uuid.UUID) (*domain.Exchange, error) {
	row := r.db.QueryRowContext(ctx, selectColumns+` WHERE exchange_id = $1`, id.String())
	ex, err := scanExchange(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("could not get exchange: %w", err)
	}
	return ex, nil
}

// RecentExchanges fetches up to limit exchanges, newest first.
func (r *sqlRepository) RecentExchanges(ctx context.Context, limit int) ([]*domain.Exchange, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+` ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("could not query exchanges: %w", err)
	}
	defer rows.Close()

	var exchanges []*domain.Exchange
	for rows.Next() {
		ex, err := scanExchange(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan exchange: %w", err)
		}
		exchanges = append(exchanges, ex)
	}
	return exchanges, rows.Err()
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanExchange(s scanner) (*domain.Exchange, error) {
	var (
		ex        domain.Exchange
		id        string
		backend   string
		conv      string
		elapsedMS int64
	)
	err := s.Scan(
		&id,
		&backend,
		&ex.Model,
		&conv,
		&ex.Output,
		&ex.PromptTokens,
		&ex.CompletionTokens,
		&elapsedMS,
		&ex.Error,
		&ex.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if ex.ExchangeID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("bad exchange id %q: %w", id, err)
	}
	if err := json.Unmarshal([]byte(conv), &ex.Conversation); err != nil {
		return nil, fmt.Errorf("bad conversation for %s: %w", id, err)
	}
	ex.Backend = domain.Backend(backend)
	ex.Elapsed = time.Duration(elapsedMS) * time.Millisecond

	return &ex, nil
}
