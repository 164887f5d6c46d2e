package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankmerge-dev/bankmerge/internal/runlog"
)

const axisStatement = `Name :- TEST COMPANY PVT LTD.
Statement of Account No - 922030048910705 for the period (From : 01/04/2025 To : 30/06/2025)
S.No,Transaction Date,Value Date,Particulars,Amount(INR),Debit/Credit,Balance(INR),Cheque Number,Branch Name
1,,,OPENING BALANCE,,,"10,000.00",,
2,01/04/2025,01/04/2025,NEFT CR-UTIB0000001-ACME SUPPLIES-INVOICE,"5,000.00",CR,"15,000.00",,MUMBAI
3,02/04/2025,02/04/2025,POS 416021XXXXXX9012 OFFICE DEPOT,"1,200.00",DR,"13,800.00",,MUMBAI
`

func runCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errBuf bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errBuf.String(), err
}

func TestConsolidateCommand(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	stmtPath := filepath.Join(dir, "axis_q1.csv")
	require.NoError(t, os.WriteFile(stmtPath, []byte(axisStatement), 0o644))

	cfgPath := filepath.Join(dir, "bankmerge.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
account_mapping:
  "922030048910705": Operating
`), 0o644))

	stdout, _, err := runCommand(t,
		"consolidate", stmtPath,
		"--bank", "axis",
		"--config", cfgPath,
		"--out-dir", outDir,
	)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Consolidated 2 transactions across 1 account(s)")
	assert.Contains(t, stdout, "Classification: 2 unique, 0 inter-bank, 0 reversed")
	assert.Contains(t, stdout, "True business profit: 3800.00")

	table, err := os.ReadFile(filepath.Join(outDir, "consolidated_statements.csv"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(table), "serial_no,account_name"))
	assert.Contains(t, string(table), "Operating")
	assert.Contains(t, string(table), "ACME SUPPLIES")

	summary, err := os.ReadFile(filepath.Join(outDir, "consolidation_summary.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(summary), "BANK STATEMENT CONSOLIDATION SUMMARY")

	entries, err := runlog.Read(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "axis", entries[0].Bank)
	assert.Equal(t, 2, entries[0].Transactions)
}

func TestConsolidateCommand_ScansDirectory(t *testing.T) {
	dir := t.TempDir()
	stmtDir := filepath.Join(dir, "statements")
	require.NoError(t, os.Mkdir(stmtDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(stmtDir, "q1.csv"), []byte(axisStatement), 0o644))

	outDir := filepath.Join(dir, "out")
	stdout, _, err := runCommand(t,
		"consolidate",
		"--bank", "axis",
		"--statements-dir", stmtDir,
		"--out-dir", outDir,
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Consolidated 2 transactions")
}

func TestConsolidateCommand_NoBank(t *testing.T) {
	_, _, err := runCommand(t, "consolidate", "somefile.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no bank format")
}

func TestConsolidateCommand_NoFiles(t *testing.T) {
	_, _, err := runCommand(t, "consolidate", "--bank", "axis")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no statement files")
}

func TestConsolidateCommand_NothingParsed(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("garbage\n"), 0o644))

	_, _, err := runCommand(t,
		"consolidate", bad,
		"--bank", "axis",
		"--out-dir", filepath.Join(dir, "out"),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no transactions parsed")
}

func TestFormatsCommand(t *testing.T) {
	stdout, _, err := runCommand(t, "formats")
	require.NoError(t, err)
	assert.Contains(t, stdout, "hdfc")
	assert.Contains(t, stdout, "axis")
}
