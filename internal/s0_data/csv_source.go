package s0_data

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wonny/sensai/internal/contracts"
	"github.com/wonny/sensai/internal/table"
	"github.com/wonny/sensai/pkg/logger"
)

// RoundFilePattern matches per-round Cartola exports
const RoundFilePattern = "rodada_*.csv"

// cartolaRenames maps export column names onto canonical ones
var cartolaRenames = []struct{ from, to string }{
	{"atletas.atleta_id", contracts.ColPlayerID},
	{"atletas.preco_num", contracts.ColPrice},
	{"atletas.pontos_num", contracts.ColPoints},
	{"atletas.rodada_id", contracts.ColRodada},
}

// CSVSource loads every rodada_*.csv in a directory and stacks them
// ⭐ SSOT: Cartola CSV 일괄 로딩
type CSVSource struct {
	dir    string
	logger *logger.Logger
}

// NewCSVSource creates a CSVSource reading from dir
func NewCSVSource(dir string, log *logger.Logger) *CSVSource {
	return &CSVSource{
		dir:    dir,
		logger: log.WithFields(map[string]interface{}{"module": "csv_source", "dir": dir}),
	}
}

// Name identifies the source in logs and run results
func (s *CSVSource) Name() string {
	return "csv:" + s.dir
}

// Load reads round files in lexical order.
// Zero-byte and unparseable files are skipped with a warning. No matching file, or
// nothing readable, is a *contracts.EmptySourceDataError.
func (s *CSVSource) Load(ctx context.Context) (*table.Table, error) {
	files, err := filepath.Glob(filepath.Join(s.dir, RoundFilePattern))
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", s.dir, err)
	}
	sort.Strings(files)

	if len(files) == 0 {
		return nil, &contracts.EmptySourceDataError{Source: s.dir}
	}

	var (
		tables  []*table.Table
		skipped []string
	)
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		t, err := readRoundFile(file)
		if err != nil {
			s.logger.WithError(err).WithField("file", file).Warn("Skipping round file")
			skipped = append(skipped, filepath.Base(file))
			continue
		}
		tables = append(tables, t)
	}

	if len(tables) == 0 {
		return nil, &contracts.EmptySourceDataError{Source: s.dir, Skipped: skipped}
	}

	out := table.Concat(tables...)
	s.logger.WithFields(map[string]interface{}{
		"files":   len(tables),
		"skipped": len(skipped),
		"rows":    out.Len(),
	}).Info("Round files loaded")

	return out, nil
}

var (
	errEmptyFile = errors.New("empty file")
	errNoRows    = errors.New("header without rows")
)

// readRoundFile parses one export, drops index columns and applies the canonical renames
func readRoundFile(path string) (*table.Table, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() == 0 {
		return nil, errEmptyFile
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := ReadCSV(f)
	if err != nil {
		return nil, err
	}
	if t.Len() == 0 {
		return nil, errNoRows
	}

	t = t.DropPrefix("Unnamed")
	for _, r := range cartolaRenames {
		t = t.Rename(r.from, r.to)
	}
	return coerceNumeric(t, contracts.ColPrice, contracts.ColPoints, contracts.ColRodada), nil
}

// coerceNumeric turns the named columns into float64, with unparseable cells as null
func coerceNumeric(t *table.Table, cols ...string) *table.Table {
	for _, col := range cols {
		values, ok := t.Column(col)
		if !ok {
			continue
		}
		for i, v := range values {
			if f, ok := table.ToFloat(v); ok {
				values[i] = f
			} else {
				values[i] = nil
			}
		}
		t, _ = t.WithColumn(col, values)
	}
	return t
}

// uniqueHeader suffixes repeated names as name.1, name.2, ...
func uniqueHeader(header []string) []string {
	out := make([]string, len(header))
	used := make(map[string]bool, len(header))
	for i, h := range header {
		name := h
		for n := 1; used[name]; n++ {
			name = fmt.Sprintf("%s.%d", h, n)
		}
		used[name] = true
		out[i] = name
	}
	return out
}

// ReadCSV parses a headed CSV into a table. Empty cells become null and
// columns whose every non-empty cell is numeric become float64.
// A stream with no header at all is errEmptyFile.
func ReadCSV(r io.Reader) (*table.Table, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	header = uniqueHeader(header)

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		rows = append(rows, rec)
	}

	numeric := make([]bool, len(header))
	for c := range header {
		numeric[c] = true
		for _, rec := range rows {
			if rec[c] == "" {
				continue
			}
			if _, ok := table.ToFloat(rec[c]); !ok {
				numeric[c] = false
				break
			}
		}
	}

	t := table.New(header...)
	for _, rec := range rows {
		cells := make([]interface{}, len(header))
		for c, raw := range rec {
			if raw == "" {
				continue
			}
			if numeric[c] {
				cells[c], _ = table.ToFloat(raw)
				continue
			}
			cells[c] = raw
		}
		t.AppendRow(cells...)
	}
	return t, nil
}
