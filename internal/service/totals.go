package service

import (
	"garage-booking-service/config"
	"garage-booking-service/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// DocumentTotals is the computed money summary of a document
type DocumentTotals struct {
	TotalAmountPence int64
	VatAmountPence   int64
}

// TotalsEngine computes net/VAT/total from document lines. Rounding is
// half-away-from-zero per line, never on the aggregate: the sum of rounded
// lines IS the contractual total, and historical documents depend on that
// exact behaviour.
type TotalsEngine struct {
	vatRegistered bool
	defaultRate   int
}

func NewTotalsEngine(cfg config.VATConfig) *TotalsEngine {
	return &TotalsEngine{
		vatRegistered: cfg.Registered,
		defaultRate:   cfg.DefaultRate,
	}
}

// Compute returns totals for the given lines. Each line contributes
// net = qty * unit and vat = round(net * rate / 100), where rate is the
// line's own rate when set, else the account default when VAT registered,
// else zero.
func (e *TotalsEngine) Compute(lines []entity.DocumentLine) DocumentTotals {
	var totals DocumentTotals
	for _, line := range lines {
		net := int64(line.Quantity) * line.UnitPricePence
		vat := e.lineVat(net, line.VatRatePercent)
		totals.TotalAmountPence += net + vat
		totals.VatAmountPence += vat
	}
	return totals
}

func (e *TotalsEngine) lineVat(netPence int64, lineRate *int) int64 {
	rate := e.rateFor(lineRate)
	if rate == 0 || netPence == 0 {
		return 0
	}
	return decimal.NewFromInt(netPence).
		Mul(decimal.NewFromInt(int64(rate))).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}

func (e *TotalsEngine) rateFor(lineRate *int) int {
	if lineRate != nil {
		return *lineRate
	}
	if e.vatRegistered {
		return e.defaultRate
	}
	return 0
}
