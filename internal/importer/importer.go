// Package importer parses bank statement exports into normalized
// transactions. One Parser per supported bank format.
package importer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bankmerge-dev/bankmerge/internal/model"
)

// ErrStructureNotRecognized means a file's header or layout could not be
// located; the file is skipped and the batch continues.
var ErrStructureNotRecognized = errors.New("statement structure not recognized")

// SkippedRow records a source row dropped during parsing.
type SkippedRow struct {
	Index  int // zero-based row index within the file
	Reason string
}

// Statement is the parse product for one file: account metadata plus the
// normalized transactions in source order.
type Statement struct {
	Account      model.AccountInfo
	Transactions []model.Transaction
	Skipped      []SkippedRow
}

// Parser converts one bank's statement export into a Statement.
type Parser interface {
	Parse(r io.Reader, fileName string) (*Statement, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
	order   []string
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
	r.order = append(r.order, key)
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Formats returns registered format names in registration order.
func (r *Registry) Formats() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&HDFCParser{})
	r.Register(&AXISParser{})
	return r
}

// FileInfo describes a statement file found by Scan.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

var statementExts = map[string]bool{
	".csv":  true,
	".txt":  true,
	".xls":  true,
	".xlsx": true,
}

// Scan returns statement files in dir, ordered by name.
func Scan(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading statements dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !statementExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}
