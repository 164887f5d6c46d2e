package consolidate

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankmerge-dev/bankmerge/internal/accounts"
	"github.com/bankmerge-dev/bankmerge/internal/importer"
	"github.com/bankmerge-dev/bankmerge/internal/model"
)

const axisHeader = "S.No,Transaction Date,Value Date,Particulars,Amount(INR),Debit/Credit,Balance(INR),Cheque Number,Branch Name"

// axisFile renders a minimal AXIS statement export around the given
// transaction rows.
func axisFile(account string, rows ...string) []byte {
	lines := []string{
		"Name :- TEST COMPANY PVT LTD.",
		"Statement of Account No - " + account + " for the period (From : 01/04/2025 To : 30/06/2025)",
		axisHeader,
	}
	lines = append(lines, rows...)
	return []byte(strings.Join(lines, "\n") + "\n")
}

func newTestService() *Service {
	mapping := accounts.NewMapping(map[string]string{
		"111": "Operating",
		"222": "Savings",
	})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(importer.DefaultRegistry(), mapping, logger)
}

func TestConsolidate_InterBankAcrossFiles(t *testing.T) {
	svc := newTestService()

	fileA := axisFile("111",
		`1,01/04/2025,01/04/2025,NEFT CR-UTIB0000001-ACME SUPPLIES-INVOICE,"10,000.00",CR,"20,000.00",,MUMBAI`,
		`2,02/04/2025,02/04/2025,NEFT/NEFT123/TRANSFER OUT,"5,000.00",DR,"15,000.00",,MUMBAI`,
	)
	fileB := axisFile("222",
		`1,02/04/2025,02/04/2025,NEFT/NEFT123/TRANSFER IN,"5,000.00",CR,"5,000.00",,DELHI`,
	)

	res, err := svc.Consolidate("axis", []InputFile{
		{Name: "a.csv", Data: fileA},
		{Name: "b.csv", Data: fileB},
	})
	require.NoError(t, err)
	require.Empty(t, res.FileErrors)
	require.Len(t, res.Transactions, 3)

	// Sorted by date, then account number; serials follow the final order.
	assert.Equal(t, []int{1, 2, 3}, []int{
		res.Transactions[0].SerialNo,
		res.Transactions[1].SerialNo,
		res.Transactions[2].SerialNo,
	})
	assert.Equal(t, "Operating", res.Transactions[0].AccountName)
	assert.Equal(t, "111", res.Transactions[1].AccountNumber)
	assert.Equal(t, "222", res.Transactions[2].AccountNumber)

	assert.Equal(t, model.ClassUnique, res.Transactions[0].Classification)
	assert.Equal(t, model.ClassInterBank, res.Transactions[1].Classification)
	assert.Equal(t, model.ClassInterBank, res.Transactions[2].Classification)

	// Transfer legs stay out of external totals.
	assert.Equal(t, "10000.00", res.Summary.ExternalIncome.StringFixed(2))
	assert.Equal(t, "0.00", res.Summary.ExternalExpense.StringFixed(2))
	assert.Equal(t, "5000.00", res.Summary.InterBankVolume.StringFixed(2))
	assert.Equal(t, 2, res.Summary.FilesProcessed)
}

func TestConsolidate_OverlappingFilesDeduplicated(t *testing.T) {
	svc := newTestService()

	row := `1,01/04/2025,01/04/2025,NEFT CR-UTIB0000001-ACME SUPPLIES-INVOICE,"10,000.00",CR,"20,000.00",,MUMBAI`
	res, err := svc.Consolidate("axis", []InputFile{
		{Name: "q1.csv", Data: axisFile("111", row)},
		{Name: "q1_again.csv", Data: axisFile("111", row)},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Duplicates)
	require.Len(t, res.Transactions, 1)
	assert.Equal(t, "q1.csv", res.Transactions[0].SourceFile)
	assert.Equal(t, 1, res.Summary.DuplicatesDropped)
}

func TestConsolidate_PartialFailure(t *testing.T) {
	svc := newTestService()

	res, err := svc.Consolidate("axis", []InputFile{
		{Name: "bad.csv", Data: []byte("not a statement at all\n")},
		{Name: "good.csv", Data: axisFile("111",
			`1,01/04/2025,01/04/2025,CASH DEPOSIT,"1,000.00",CR,"1,000.00",,MUMBAI`,
		)},
	})
	require.NoError(t, err)

	require.Len(t, res.FileErrors, 1)
	assert.Equal(t, "bad.csv", res.FileErrors[0].Name)
	assert.Contains(t, res.FileErrors[0].Error(), "bad.csv")
	require.Len(t, res.Transactions, 1)
	assert.Equal(t, 1, res.Summary.FilesProcessed)
	assert.Equal(t, 1, res.Summary.FilesFailed)
}

func TestConsolidate_UnknownBank(t *testing.T) {
	svc := newTestService()
	_, err := svc.Consolidate("icici", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "icici")
	assert.Contains(t, err.Error(), "axis")
}

func TestConsolidate_UnmappedAccountNamedUnknown(t *testing.T) {
	svc := newTestService()

	res, err := svc.Consolidate("axis", []InputFile{
		{Name: "x.csv", Data: axisFile("999",
			`1,01/04/2025,01/04/2025,CASH DEPOSIT,"1,000.00",CR,"1,000.00",,MUMBAI`,
		)},
	})
	require.NoError(t, err)
	require.Len(t, res.Transactions, 1)
	assert.Equal(t, "Unknown", res.Transactions[0].AccountName)
}

func TestConsolidate_Deterministic(t *testing.T) {
	svc := newTestService()
	files := []InputFile{
		{Name: "a.csv", Data: axisFile("111",
			`1,02/04/2025,02/04/2025,NEFT/NEFT123/OUT,"5,000.00",DR,"15,000.00",,MUMBAI`,
		)},
		{Name: "b.csv", Data: axisFile("222",
			`1,02/04/2025,02/04/2025,NEFT/NEFT123/IN,"5,000.00",CR,"5,000.00",,DELHI`,
		)},
	}

	first, err := svc.Consolidate("axis", files)
	require.NoError(t, err)
	second, err := svc.Consolidate("axis", files)
	require.NoError(t, err)

	assert.Equal(t, first.Transactions, second.Transactions)
	assert.NotEqual(t, first.RunID, second.RunID)
}
