package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/hyperjump/kotae/internal/models"
)

var corpusHeader = []string{"question", "answer", "category"}

// FileStorage implements Storage over a single CSV or XLSX file.
// Every write rewrites the whole file.
type FileStorage struct {
	mu   sync.Mutex
	path string
}

// NewFileStorage returns a store for path. The file need not exist yet.
func NewFileStorage(path string) (*FileStorage, error) {
	if !IsCorpusFile(path) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return &FileStorage{path: path}, nil
}

// IsCorpusFile reports whether path has a supported corpus extension.
func IsCorpusFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".xlsx":
		return true
	}
	return false
}

// Load reads every record from the file.
func (s *FileStorage) Load(ctx context.Context) ([]models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ReadCorpusFile(s.path)
}

// Append adds r at the end of the file, creating the file when missing.
func (s *FileStorage) Append(ctx context.Context, r models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := ReadCorpusFile(s.path)
	if err != nil && !errors.Is(err, ErrCorpusUnavailable) {
		return err
	}
	return WriteCorpusFile(s.path, append(records, r))
}

// Save replaces the file contents with records.
func (s *FileStorage) Save(ctx context.Context, records []models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return WriteCorpusFile(s.path, records)
}

// Count returns the number of records in the file; a missing file counts as empty.
func (s *FileStorage) Count(ctx context.Context) (int64, error) {
	records, err := s.Load(ctx)
	if errors.Is(err, ErrCorpusUnavailable) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return int64(len(records)), nil
}

// Name returns "file".
func (s *FileStorage) Name() string { return "file" }

// Paths returns the corpus file path.
func (s *FileStorage) Paths() []string { return []string{s.path} }

// Close is a no-op; the file is not held open between calls.
func (s *FileStorage) Close() error { return nil }

// ReadCorpusFile reads records from a CSV or XLSX file with a question,answer[,category] header.
// A missing file yields ErrCorpusUnavailable.
func ReadCorpusFile(path string) ([]models.Record, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = readCSVRows(path)
	case ".xlsx":
		rows, err = readXLSXRows(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCorpusUnavailable, path)
		}
		return nil, err
	}
	return parseRows(rows)
}

// WriteCorpusFile writes records with a header row, replacing path atomically.
func WriteCorpusFile(path string, records []models.Record) error {
	var write func(w io.Writer) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		write = func(w io.Writer) error { return writeCSV(w, records) }
	case ".xlsx":
		write = func(w io.Writer) error { return writeXLSX(w, records) }
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create corpus directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".corpus-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write corpus: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace corpus file: %w", err)
	}
	return nil
}

func readCSVRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCorpus, err)
	}
	return rows, nil
}

func readXLSXRows(path string) ([][]string, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open Excel: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrMalformedCorpus)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("get rows for sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

// parseRows maps header columns by name so column order is free; category is optional.
func parseRows(rows [][]string) ([]models.Record, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: missing header", ErrMalformedCorpus)
	}
	cols := map[string]int{}
	for i, name := range rows[0] {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	qi, okQ := cols["question"]
	ai, okA := cols["answer"]
	if !okQ || !okA {
		return nil, fmt.Errorf("%w: header needs question and answer columns, got %v", ErrMalformedCorpus, rows[0])
	}
	ci, okC := cols["category"]

	records := make([]models.Record, 0, len(rows)-1)
	for n, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		r := models.Record{
			Question: strings.TrimSpace(cell(row, qi)),
			Answer:   strings.TrimSpace(cell(row, ai)),
		}
		if okC {
			r.Category = strings.TrimSpace(cell(row, ci))
		}
		if r.Question == "" || r.Answer == "" {
			return nil, fmt.Errorf("%w: row %d needs a question and an answer", ErrMalformedCorpus, n+2)
		}
		records = append(records, r)
	}
	return records, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func writeCSV(w io.Writer, records []models.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(corpusHeader); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write([]string{r.Question, r.Answer, r.Category}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeXLSX(w io.Writer, records []models.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := []interface{}{corpusHeader[0], corpusHeader[1], corpusHeader[2]}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, r := range records {
		addr, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{r.Question, r.Answer, r.Category}
		if err := f.SetSheetRow(sheet, addr, &row); err != nil {
			return err
		}
	}
	_, err := f.WriteTo(w)
	return err
}
