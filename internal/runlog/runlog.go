// Package runlog keeps an append-only CSV audit trail of consolidation
// runs under an output directory.
package runlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Entry is one row in the run log.
type Entry struct {
	Timestamp    time.Time
	RunID        string
	Bank         string
	Files        int
	Failed       int
	Transactions int
	Duplicates   int
	OutputFile   string
}

// Header is the CSV header for run-log.csv.
const Header = "timestamp,run_id,bank,files,failed,transactions,duplicates,output_file"

const (
	numFields = 8
	logDir    = "logs"
	logFile   = "logs/run-log.csv"

	colTimestamp    = 0
	colRunID        = 1
	colBank         = 2
	colFiles        = 3
	colFailed       = 4
	colTransactions = 5
	colDuplicates   = 6
	colOutputFile   = 7
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colRunID] = e.RunID
	row[colBank] = e.Bank
	row[colFiles] = strconv.Itoa(e.Files)
	row[colFailed] = strconv.Itoa(e.Failed)
	row[colTransactions] = strconv.Itoa(e.Transactions)
	row[colDuplicates] = strconv.Itoa(e.Duplicates)
	row[colOutputFile] = e.OutputFile
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	ints := make([]int, 4)
	for i, col := range []int{colFiles, colFailed, colTransactions, colDuplicates} {
		v, err := strconv.Atoi(record[col])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing field %d %q: %w", col, record[col], err)
		}
		ints[i] = v
	}

	return Entry{
		Timestamp:    ts,
		RunID:        record[colRunID],
		Bank:         record[colBank],
		Files:        ints[0],
		Failed:       ints[1],
		Transactions: ints[2],
		Duplicates:   ints[3],
		OutputFile:   record[colOutputFile],
	}, nil
}

// Append writes an entry to <outDir>/logs/run-log.csv, creating the file
// and header if needed.
func Append(outDir string, e Entry) error {
	dir := filepath.Join(outDir, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(outDir, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	if err := cw.Write(MarshalEntry(e)); err != nil {
		return fmt.Errorf("writing entry: %w", err)
	}
	return cw.Error()
}

// Read returns all entries from <outDir>/logs/run-log.csv, or nil if the
// file does not exist.
func Read(outDir string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(outDir, logFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading run log CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
