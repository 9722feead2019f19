package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wonny/sensai/internal/table"
	"github.com/wonny/sensai/pkg/logger"
)

// FileSink writes CSV files under <dir>/<category>/<filename>
type FileSink struct {
	dir    string
	logger *logger.Logger
}

// NewFileSink creates a sink rooted at dir
func NewFileSink(dir string, log *logger.Logger) *FileSink {
	return &FileSink{
		dir:    dir,
		logger: log.WithFields(map[string]interface{}{"module": "export", "sink": "file"}),
	}
}

// Save creates missing directories and overwrites any existing file
func (s *FileSink) Save(ctx context.Context, t *table.Table, category, filename string) (string, error) {
	key, err := objectKey(category, filename)
	if err != nil {
		return "", err
	}

	data, err := EncodeCSV(t)
	if err != nil {
		return "", fmt.Errorf("encode csv: %w", err)
	}

	target := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", target, err)
	}

	s.logger.WithFields(map[string]interface{}{
		"path": target,
		"rows": t.Len(),
	}).Info("Table exported")

	return target, nil
}
