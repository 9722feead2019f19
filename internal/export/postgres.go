package export

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/wonny/sensai/internal/contracts"
	"github.com/wonny/sensai/internal/table"
	"github.com/wonny/sensai/pkg/logger"
)

// TxBeginner is the subset of *pgxpool.Pool the sink needs
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const exportsDDL = `
CREATE SCHEMA IF NOT EXISTS processed;
CREATE TABLE IF NOT EXISTS processed.exports (
	category    TEXT        NOT NULL,
	filename    TEXT        NOT NULL,
	row_num     INTEGER     NOT NULL,
	payload     JSONB       NOT NULL,
	exported_at TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (category, filename, row_num)
)`

var exportColumns = []string{"category", "filename", "row_num", "payload", "exported_at"}

// PostgresSink stores each row as JSONB in processed.exports.
// A save replaces every row previously stored under the same category/filename.
type PostgresSink struct {
	db     TxBeginner
	logger *logger.Logger
}

// NewPostgresSink creates a sink on db
func NewPostgresSink(db TxBeginner, log *logger.Logger) *PostgresSink {
	return &PostgresSink{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"module": "export", "sink": "postgres"}),
	}
}

// EnsureSchema creates the exports table if needed
func (s *PostgresSink) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, exportsDDL); err != nil {
		return fmt.Errorf("create exports table: %w", err)
	}
	return nil
}

// Save replaces the rows of category/filename inside one transaction
func (s *PostgresSink) Save(ctx context.Context, t *table.Table, category, filename string) (string, error) {
	if _, err := objectKey(category, filename); err != nil {
		return "", err
	}

	now := time.Now().UTC()
	rows := make([][]interface{}, t.Len())
	for i := range rows {
		payload, err := json.Marshal(jsonRecord(t.Record(i)))
		if err != nil {
			return "", fmt.Errorf("encode row %d: %w", i, err)
		}
		rows[i] = []interface{}{category, filename, i, payload, now}
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM processed.exports WHERE category = $1 AND filename = $2`,
		category, filename,
	); err != nil {
		return "", fmt.Errorf("clear previous export: %w", err)
	}

	copied, err := tx.CopyFrom(ctx,
		pgx.Identifier{"processed", "exports"},
		exportColumns,
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return "", fmt.Errorf("copy rows: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"category": category,
		"filename": filename,
		"rows":     copied,
	}).Info("Table exported")

	return fmt.Sprintf("postgres://processed.exports/%s/%s", category, filename), nil
}

// jsonRecord makes non-finite floats JSON-encodable
func jsonRecord(rec map[string]interface{}) map[string]interface{} {
	for k, v := range rec {
		if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
			rec[k] = contracts.Float(f)
		}
	}
	return rec
}
