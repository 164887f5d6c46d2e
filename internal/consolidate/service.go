// Package consolidate runs the full statement pipeline: parse each file,
// merge, deduplicate, classify, and summarize.
package consolidate

import (
	"bytes"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/bankmerge-dev/bankmerge/internal/accounts"
	"github.com/bankmerge-dev/bankmerge/internal/classify"
	"github.com/bankmerge-dev/bankmerge/internal/importer"
	"github.com/bankmerge-dev/bankmerge/internal/model"
	"github.com/bankmerge-dev/bankmerge/internal/report"
)

// InputFile is one statement file supplied by the caller.
type InputFile struct {
	Name string
	Data []byte
}

// FileError records a file that could not be parsed. The run continues
// past it.
type FileError struct {
	Name string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

// Result is the outcome of one consolidation run. Transactions is the
// final ordered table; FileErrors lists inputs that were skipped.
type Result struct {
	RunID        uuid.UUID
	Transactions []model.Transaction
	Statements   []model.AccountInfo
	Summary      report.Summary
	FileErrors   []FileError
	Duplicates   int
}

// Service wires the pipeline together. One instance serves many runs;
// runs are single-threaded and share no mutable state.
type Service struct {
	registry *importer.Registry
	mapping  *accounts.Mapping
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a consolidation Service. A nil logger falls back to
// slog.Default.
func NewService(registry *importer.Registry, mapping *accounts.Mapping, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		registry: registry,
		mapping:  mapping,
		logger:   logger,
		now:      time.Now,
	}
}

// Consolidate parses every input file with the named bank's parser and
// returns the merged, deduplicated, classified table plus a summary.
// Per-file failures do not abort the batch; they are returned in
// Result.FileErrors.
func (s *Service) Consolidate(bank string, files []InputFile) (*Result, error) {
	parser := s.registry.Get(bank)
	if parser == nil {
		return nil, fmt.Errorf("unknown bank format %q (known: %v)", bank, s.registry.Formats())
	}

	res := &Result{RunID: uuid.New()}
	var merged []model.Transaction

	for _, f := range files {
		stmt, err := parser.Parse(bytes.NewReader(f.Data), f.Name)
		if err != nil {
			s.logger.Warn("skipping file", "file", f.Name, "error", err)
			res.FileErrors = append(res.FileErrors, FileError{Name: f.Name, Err: err})
			continue
		}
		for _, skipped := range stmt.Skipped {
			s.logger.Warn("skipping row", "file", f.Name, "row", skipped.Index, "reason", skipped.Reason)
		}
		s.logger.Info("parsed statement",
			"file", f.Name,
			"account", stmt.Account.AccountNumber,
			"transactions", len(stmt.Transactions))

		res.Statements = append(res.Statements, stmt.Account)
		merged = append(merged, stmt.Transactions...)
	}

	merged, res.Duplicates = classify.Deduplicate(merged)

	sort.SliceStable(merged, func(i, j int) bool {
		if !merged[i].Date.Equal(merged[j].Date) {
			return merged[i].Date.Before(merged[j].Date)
		}
		return merged[i].AccountNumber < merged[j].AccountNumber
	})
	for i := range merged {
		merged[i].SerialNo = i + 1
		merged[i].AccountName = s.mapping.Name(merged[i].AccountNumber)
	}

	classify.Classify(merged)
	res.Transactions = merged

	res.Summary = report.Build(merged, res.Statements, report.Stats{
		RunID:             res.RunID,
		GeneratedAt:       s.now(),
		FilesProcessed:    len(files) - len(res.FileErrors),
		FilesFailed:       len(res.FileErrors),
		DuplicatesDropped: res.Duplicates,
	})
	return res, nil
}
