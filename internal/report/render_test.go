package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankmerge-dev/bankmerge/internal/model"
)

func TestRender(t *testing.T) {
	txns := []model.Transaction{
		sampleTxn("111", "Operating", "2025-04-01", "NEFT CR-UTIB0000001-ACME SUPPLIES-INV", 0, 10000, model.ClassUnique),
		sampleTxn("111", "Operating", "2025-04-02", "RENT", 3000, 0, model.ClassUnique),
	}
	s := Build(txns, nil, Stats{
		RunID:          uuid.MustParse("3f2a8c1e-0000-4000-8000-000000000001"),
		GeneratedAt:    time.Date(2025, 7, 1, 9, 30, 0, 0, time.UTC),
		FilesProcessed: 1,
	})

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, s))
	out := buf.String()

	assert.Contains(t, out, "BANK STATEMENT CONSOLIDATION SUMMARY")
	assert.Contains(t, out, "Run ID: 3f2a8c1e-0000-4000-8000-000000000001")
	assert.Contains(t, out, "Files processed: 1")
	assert.Contains(t, out, "Period: 2025-04-01 to 2025-04-02")
	assert.Contains(t, out, "Operating (111): 2 transactions")
	assert.Contains(t, out, "True business profit (external only): 7000.00")
	assert.Contains(t, out, "ACME SUPPLIES")
	assert.Contains(t, out, "END OF SUMMARY")
	assert.NotContains(t, out, "Files failed")
}

func TestRender_BreakEven(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Summary{NetProfit: decimal.Zero}))
	out := buf.String()
	assert.Contains(t, out, "No dated transactions.")
	assert.Contains(t, out, "True business performance: break-even")
}
