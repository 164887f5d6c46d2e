package importer

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"

	"github.com/bankmerge-dev/bankmerge/internal/model"
	"github.com/bankmerge-dev/bankmerge/internal/normalize"
	"github.com/bankmerge-dev/bankmerge/internal/reference"
)

// HDFCParser parses HDFC bank statement spreadsheet exports (.xls/.xlsx).
type HDFCParser struct{}

const (
	// Header must appear within this many rows or the sheet is rejected.
	hdfcHeaderScanRows = 40

	hdfcColDate       = 0
	hdfcColNarration  = 1
	hdfcColRef        = 2
	hdfcColValueDate  = 3
	hdfcColWithdrawal = 4
	hdfcColDeposit    = 5
	hdfcColBalance    = 6
)

var (
	hdfcAccountNoRe = regexp.MustCompile(`Account No\s*:\s*(\d+)`)
	hdfcBranchRe    = regexp.MustCompile(`Account Branch\s*:\s*(.+)`)
)

// Format returns the parser name.
func (p *HDFCParser) Format() string { return "hdfc" }

// Parse reads an HDFC spreadsheet statement.
func (p *HDFCParser) Parse(r io.Reader, fileName string) (*Statement, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", fileName, err)
	}

	rows, err := spreadsheetRows(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}

	headerIdx := hdfcHeaderRow(rows)
	if headerIdx < 0 {
		return nil, fmt.Errorf("%s: %w", fileName, ErrStructureNotRecognized)
	}

	stmt := &Statement{Account: model.AccountInfo{SourceFile: fileName}}
	hdfcAccountInfo(rows[:headerIdx], &stmt.Account)

	for i := headerIdx + 1; i < len(rows); i++ {
		row := rows[i]
		if rowBlank(row) {
			continue
		}

		dateStr := strings.TrimSpace(cellAt(row, hdfcColDate))
		date, err := normalize.Date(dateStr, normalize.DayMonthYear2)
		if err != nil {
			// Footer and summary rows fail date parsing; mine the summary
			// section for opening/closing balances instead of aborting.
			if strings.Contains(strings.ToLower(dateStr), "opening balance") {
				hdfcSummaryBalances(rows[i:], &stmt.Account)
				i++
			} else if dateStr != "" {
				stmt.Skipped = append(stmt.Skipped, SkippedRow{Index: i, Reason: err.Error()})
			}
			continue
		}

		txn, err := hdfcRow(row, date, stmt.Account, fileName)
		if err != nil {
			stmt.Skipped = append(stmt.Skipped, SkippedRow{Index: i, Reason: err.Error()})
			continue
		}
		stmt.Transactions = append(stmt.Transactions, txn)
	}

	hdfcFallbackBalances(stmt)
	return stmt, nil
}

func hdfcRow(row []string, date time.Time, account model.AccountInfo, fileName string) (model.Transaction, error) {
	withdrawal, err := normalize.Amount(cellAt(row, hdfcColWithdrawal))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("withdrawal: %w", err)
	}
	deposit, err := normalize.Amount(cellAt(row, hdfcColDeposit))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("deposit: %w", err)
	}
	balance, err := normalize.Balance(cellAt(row, hdfcColBalance))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("balance: %w", err)
	}

	// Value dates pass through; a bad one does not invalidate the row.
	valueDate, _ := normalize.Date(cellAt(row, hdfcColValueDate), normalize.DayMonthYear2)

	narration := strings.TrimSpace(cellAt(row, hdfcColNarration))
	ref := strings.TrimSpace(cellAt(row, hdfcColRef))
	if ref == "" || ref == "0" {
		ref = reference.Extract(narration).Number
	}

	drcr := model.Credit
	if withdrawal.IsPositive() {
		drcr = model.Debit
	}

	return model.Transaction{
		AccountNumber:   account.AccountNumber,
		Date:            date,
		ValueDate:       valueDate,
		Narration:       narration,
		ReferenceNumber: ref,
		Type:            model.TypeFromAmounts(withdrawal, deposit),
		Withdrawal:      withdrawal,
		Deposit:         deposit,
		Balance:         balance,
		DebitCredit:     drcr,
		BranchName:      account.Branch,
		SourceFile:      fileName,
	}, nil
}

// hdfcHeaderRow finds the transaction table header within the scan window.
func hdfcHeaderRow(rows [][]string) int {
	limit := len(rows)
	if limit > hdfcHeaderScanRows {
		limit = hdfcHeaderScanRows
	}
	for i := 0; i < limit; i++ {
		joined := strings.Join(rows[i], " ")
		if strings.Contains(joined, "Narration") &&
			strings.Contains(joined, "Withdrawal") &&
			strings.HasPrefix(strings.TrimSpace(cellAt(rows[i], 0)), "Date") {
			return i
		}
	}
	return -1
}

// hdfcAccountInfo mines the free-text cells above the header for labeled
// account fields.
func hdfcAccountInfo(rows [][]string, info *model.AccountInfo) {
	for _, row := range rows {
		for _, cell := range row {
			if m := hdfcAccountNoRe.FindStringSubmatch(cell); m != nil {
				info.AccountNumber = m[1]
			}
			if m := hdfcBranchRe.FindStringSubmatch(cell); m != nil {
				info.Branch = strings.TrimSpace(m[1])
			}
			if strings.Contains(cell, "Statement From") {
				info.StatementPeriod = strings.TrimSpace(cell)
			}
		}
	}
}

// hdfcSummaryBalances reads the statement summary block: the row after the
// "Opening Balance" label carries opening balance in the first column and
// closing balance in the last balance column.
func hdfcSummaryBalances(rows [][]string, info *model.AccountInfo) {
	if len(rows) < 2 {
		return
	}
	values := rows[1]
	if opening, err := normalize.Balance(cellAt(values, 0)); err == nil && cellAt(values, 0) != "" {
		info.OpeningBalance = opening
		info.HasOpening = true
	}
	if closing, err := normalize.Balance(cellAt(values, hdfcColBalance)); err == nil && cellAt(values, hdfcColBalance) != "" {
		info.ClosingBalance = closing
		info.HasClosing = true
	}
}

// hdfcFallbackBalances derives balances from the first and last rows when
// the summary section was absent.
func hdfcFallbackBalances(stmt *Statement) {
	if len(stmt.Transactions) == 0 {
		return
	}
	if !stmt.Account.HasOpening {
		first := stmt.Transactions[0]
		stmt.Account.OpeningBalance = first.Balance.Sub(first.Deposit).Add(first.Withdrawal)
		stmt.Account.HasOpening = true
	}
	if !stmt.Account.HasClosing {
		stmt.Account.ClosingBalance = stmt.Transactions[len(stmt.Transactions)-1].Balance
		stmt.Account.HasClosing = true
	}
}

// spreadsheetRows loads the first sheet of an .xlsx or legacy .xls workbook
// as a string grid.
func spreadsheetRows(data []byte) ([][]string, error) {
	switch {
	case bytes.HasPrefix(data, []byte("PK\x03\x04")):
		return xlsxRows(data)
	case bytes.HasPrefix(data, []byte{0xd0, 0xcf, 0x11, 0xe0}):
		return xlsRows(data)
	default:
		return nil, ErrStructureNotRecognized
	}
}

func xlsxRows(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, ErrStructureNotRecognized
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheet, err)
	}
	return rows, nil
}

func xlsRows(data []byte) ([][]string, error) {
	book, err := xls.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	sheet, err := book.GetSheet(0)
	if err != nil {
		return nil, ErrStructureNotRecognized
	}

	var rows [][]string
	for _, xlsRow := range sheet.GetRows() {
		var row []string
		for _, col := range xlsRow.GetCols() {
			row = append(row, col.GetString())
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func rowBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
