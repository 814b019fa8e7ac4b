package models

import "github.com/shopspring/decimal"

// Transaction is one row of a bank statement, in file order.
type Transaction struct {
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
	MoneyIn     decimal.Decimal `json:"money_in"`
	MoneyOut    decimal.Decimal `json:"money_out"`
	Balance     decimal.Decimal `json:"balance"`
}

// NetCashFlow returns money in minus money out for this single transaction.
func (t Transaction) NetCashFlow() decimal.Decimal {
	return t.MoneyIn.Sub(t.MoneyOut)
}
