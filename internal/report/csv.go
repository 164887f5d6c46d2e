package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/bankmerge-dev/bankmerge/internal/model"
	"github.com/bankmerge-dev/bankmerge/internal/normalize"
)

// Header is the CSV header for the consolidated transaction table.
const Header = "serial_no,account_name,account_number,date,value_date,narration,reference_number,transaction_type,transaction_classification,withdrawal_amount,deposit_amount,net_transaction,balance,debit_credit,cheque_number,branch_name,source_file"

const (
	numFields  = 17
	dateFormat = "2006-01-02"

	colSerial         = 0
	colAccountName    = 1
	colAccountNumber  = 2
	colDate           = 3
	colValueDate      = 4
	colNarration      = 5
	colReference      = 6
	colType           = 7
	colClassification = 8
	colWithdrawal     = 9
	colDeposit        = 10
	colNet            = 11
	colBalance        = 12
	colDebitCredit    = 13
	colCheque         = 14
	colBranch         = 15
	colSourceFile     = 16
)

// WriteTransactions writes the consolidated table (including header).
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, t := range txns {
		if err := cw.Write(MarshalTransaction(t)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// ReadTransactions reads a consolidated table written by WriteTransactions.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading consolidated CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var txns []model.Transaction
	for i, rec := range records[1:] {
		t, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, t)
	}
	return txns, nil
}

// MarshalTransaction converts a Transaction to a CSV row.
func MarshalTransaction(t model.Transaction) []string {
	row := make([]string, numFields)
	row[colSerial] = strconv.Itoa(t.SerialNo)
	row[colAccountName] = t.AccountName
	row[colAccountNumber] = t.AccountNumber
	row[colDate] = t.Date.Format(dateFormat)
	if !t.ValueDate.IsZero() {
		row[colValueDate] = t.ValueDate.Format(dateFormat)
	}
	row[colNarration] = t.Narration
	row[colReference] = t.ReferenceNumber
	row[colType] = string(t.Type)
	row[colClassification] = string(t.Classification)
	row[colWithdrawal] = t.Withdrawal.StringFixed(2)
	row[colDeposit] = t.Deposit.StringFixed(2)
	row[colNet] = t.Net().StringFixed(2)
	row[colBalance] = t.Balance.StringFixed(2)
	row[colDebitCredit] = string(t.DebitCredit)
	row[colCheque] = t.ChequeNumber
	row[colBranch] = t.BranchName
	row[colSourceFile] = t.SourceFile
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	serial, err := strconv.Atoi(record[colSerial])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing serial_no %q: %w", record[colSerial], err)
	}
	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}
	var valueDate time.Time
	if record[colValueDate] != "" {
		valueDate, err = time.Parse(dateFormat, record[colValueDate])
		if err != nil {
			return model.Transaction{}, fmt.Errorf("parsing value_date %q: %w", record[colValueDate], err)
		}
	}
	withdrawal, err := normalize.Amount(record[colWithdrawal])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing withdrawal_amount: %w", err)
	}
	deposit, err := normalize.Amount(record[colDeposit])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing deposit_amount: %w", err)
	}
	balance, err := normalize.Balance(record[colBalance])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing balance: %w", err)
	}

	return model.Transaction{
		SerialNo:        serial,
		AccountName:     record[colAccountName],
		AccountNumber:   record[colAccountNumber],
		Date:            date,
		ValueDate:       valueDate,
		Narration:       record[colNarration],
		ReferenceNumber: record[colReference],
		Type:            model.TransactionType(record[colType]),
		Classification:  model.Classification(record[colClassification]),
		Withdrawal:      withdrawal,
		Deposit:         deposit,
		Balance:         balance,
		DebitCredit:     model.DebitCredit(record[colDebitCredit]),
		ChequeNumber:    record[colCheque],
		BranchName:      record[colBranch],
		SourceFile:      record[colSourceFile],
	}, nil
}
