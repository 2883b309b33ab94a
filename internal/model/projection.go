package model

import "github.com/shopspring/decimal"

// ProjectionPoint is one day of the projected balance timeline.
// The first point of every timeline is "today" carrying the starting
// balance with zero flows; it may duplicate a later in-range day.
type ProjectionPoint struct {
	Date          Date            `json:"date"`
	Balance       decimal.Decimal `json:"balance"`
	DailyIncome   decimal.Decimal `json:"daily_income"`
	DailyExpenses decimal.Decimal `json:"daily_expenses"`
	NetFlow       decimal.Decimal `json:"net_flow"`
}
