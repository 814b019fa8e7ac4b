package services

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/LovationAdmin/stress-api/models"
	"github.com/LovationAdmin/stress-api/utils"

	"github.com/shopspring/decimal"
)

// Statement column headers.
const (
	ColDate        = "Date"
	ColDescription = "Description"
	ColType        = "Type"
	ColMoneyIn     = "Money In (£)"
	ColMoneyOut    = "Money Out (£)"
	ColBalance     = "Balance (£)"
)

var requiredColumns = []string{ColDate, ColDescription, ColType, ColMoneyIn, ColMoneyOut, ColBalance}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LoadTransactions reads every transaction of the statement file at path.
func LoadTransactions(path string) ([]models.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("open statement: %w", err)
	}
	defer f.Close()

	transactions, err := ParseTransactions(f)
	if err != nil {
		return nil, err
	}

	closing := decimal.Zero
	if n := len(transactions); n > 0 {
		closing = transactions[n-1].Balance
	}
	utils.Log().Debug().
		Str("path", path).
		Int("rows", len(transactions)).
		Str("closing_balance", utils.MaskAmount(closing)).
		Msg("[Statement] transactions loaded")

	return transactions, nil
}

// ParseTransactions decodes a header-bearing statement in row order.
func ParseTransactions(r io.Reader) ([]models.Transaction, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &ParseError{Line: 1, Err: errors.New("missing header row")}
	}
	if err != nil {
		return nil, &ParseError{Line: 1, Err: err}
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, &ParseError{Column: col, Err: errors.New("missing column")}
		}
	}

	var transactions []models.Transaction
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) {
				return nil, &ParseError{Line: csvErr.Line, Err: csvErr.Err}
			}
			return nil, &ParseError{Err: err}
		}
		line, _ := reader.FieldPos(0)

		field := func(col string) string {
			i := index[col]
			if i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		moneyIn, err := parseOptionalAmount(field(ColMoneyIn))
		if err != nil {
			return nil, &ParseError{Line: line, Column: ColMoneyIn, Err: err}
		}
		moneyOut, err := parseOptionalAmount(field(ColMoneyOut))
		if err != nil {
			return nil, &ParseError{Line: line, Column: ColMoneyOut, Err: err}
		}
		balance, err := parseAmount(field(ColBalance))
		if err != nil {
			return nil, &ParseError{Line: line, Column: ColBalance, Err: err}
		}

		transactions = append(transactions, models.Transaction{
			Date:        field(ColDate),
			Description: field(ColDescription),
			Type:        field(ColType),
			MoneyIn:     moneyIn,
			MoneyOut:    moneyOut,
			Balance:     balance,
		})
	}

	return transactions, nil
}

// parseOptionalAmount treats an empty cell as zero.
func parseOptionalAmount(raw string) (decimal.Decimal, error) {
	if cleanAmount(raw) == "" {
		return decimal.Zero, nil
	}
	return parseAmount(raw)
}

func parseAmount(raw string) (decimal.Decimal, error) {
	cleaned := cleanAmount(raw)
	if cleaned == "" {
		return decimal.Zero, errors.New("value is required")
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", raw)
	}
	return d, nil
}

func cleanAmount(raw string) string {
	s := strings.ReplaceAll(raw, ",", "")
	s = strings.ReplaceAll(s, "£", "")
	return strings.TrimSpace(s)
}
