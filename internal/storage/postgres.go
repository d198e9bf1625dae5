package storage

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/DHYEY166/teamflow-enterprise/internal/models"
)

//go:embed migrations.sql
var migrations embed.FS

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	UseInMemory bool
}

// PostgresPersister stores the serialized workspace in PostgreSQL. The
// whole workspace is one JSON document; rooms and members round-trip
// through models' JSON encoding, timestamps as RFC 3339.
type PostgresPersister struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPostgresPersister(config DatabaseConfig, logger *zap.Logger) (*PostgresPersister, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %v", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %v", err)
	}

	p := &PostgresPersister{db: db, logger: logger}

	if err := p.initializeSchema(); err != nil {
		return nil, fmt.Errorf("error initializing database schema: %v", err)
	}

	return p, nil
}

func (p *PostgresPersister) initializeSchema() error {
	migrationSQL, err := migrations.ReadFile("migrations.sql")
	if err != nil {
		return fmt.Errorf("error reading migrations file: %v", err)
	}

	_, err = p.db.Exec(string(migrationSQL))
	if err != nil {
		return fmt.Errorf("error executing migrations: %v", err)
	}

	return nil
}

func (p *PostgresPersister) Save(ctx context.Context, ws models.Workspace) error {
	doc, err := json.Marshal(ws)
	if err != nil {
		return fmt.Errorf("error encoding workspace: %v", err)
	}

	query := `
		INSERT INTO workspace_snapshots (id, doc, updated_at)
		VALUES (1, $1, NOW())
		ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = NOW()`

	if _, err := p.db.ExecContext(ctx, query, doc); err != nil {
		return fmt.Errorf("error saving workspace snapshot: %v", err)
	}
	return nil
}

func (p *PostgresPersister) Load(ctx context.Context) (models.Workspace, error) {
	var doc []byte
	err := p.db.QueryRowContext(ctx, `SELECT doc FROM workspace_snapshots WHERE id = 1`).Scan(&doc)
	if err == sql.ErrNoRows {
		return models.Workspace{}, ErrNoSnapshot
	}
	if err != nil {
		return models.Workspace{}, fmt.Errorf("error loading workspace snapshot: %v", err)
	}

	var ws models.Workspace
	if err := json.Unmarshal(doc, &ws); err != nil {
		// Corrupt persisted state; the caller falls back to the seed.
		p.logger.Error("Corrupt workspace snapshot", zap.Error(err))
		return models.Workspace{}, fmt.Errorf("error decoding workspace snapshot: %v", err)
	}
	return ws, nil
}

func (p *PostgresPersister) Close() error {
	return p.db.Close()
}
