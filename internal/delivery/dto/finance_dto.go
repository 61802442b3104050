package dto

import "github.com/shopspring/decimal"

type FinanceQuery struct {
	From string `json:"from" validate:"omitempty,isodate"`
	To   string `json:"to" validate:"omitempty,isodate"`
}

type MonthlyAmount struct {
	Month     string          `json:"month"` // YYYY-MM
	Collected decimal.Decimal `json:"collected"`
}

type FinanceBreakdown struct {
	Key     string          `json:"key"`
	Name    string          `json:"name"`
	Count   int             `json:"count"`
	Billed  decimal.Decimal `json:"billed"`
	Paid    decimal.Decimal `json:"paid"`
	Pending decimal.Decimal `json:"pending"`
}

type FinanceSummaryResponse struct {
	From           string             `json:"from,omitempty"`
	To             string             `json:"to,omitempty"`
	TotalCollected decimal.Decimal    `json:"total_collected"`
	Outstanding    decimal.Decimal    `json:"outstanding"`
	Monthly        []MonthlyAmount    `json:"monthly"`
	ByDoctor       []FinanceBreakdown `json:"by_doctor"`
	BySpecialty    []FinanceBreakdown `json:"by_specialty"`
}
