package service

import (
	"testing"

	"garage-booking-service/config"
	"garage-booking-service/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func registeredEngine() *TotalsEngine {
	return NewTotalsEngine(config.VATConfig{Registered: true, DefaultRate: 20})
}

func TestComputeMixedRates(t *testing.T) {
	engine := registeredEngine()

	totals := engine.Compute([]entity.DocumentLine{
		{Quantity: 3, UnitPricePence: 1000, VatRatePercent: intPtr(20)},
		{Quantity: 1, UnitPricePence: 500, VatRatePercent: intPtr(0)},
	})

	assert.Equal(t, int64(600), totals.VatAmountPence)
	assert.Equal(t, int64(4100), totals.TotalAmountPence)
}

func TestComputeRoundsPerLine(t *testing.T) {
	engine := registeredEngine()

	// 333 * 20% = 66.6 -> 67 per line. Three lines give 201, not
	// round(3 * 66.6) = 200: rounding happens per line, then sums.
	totals := engine.Compute([]entity.DocumentLine{
		{Quantity: 1, UnitPricePence: 333, VatRatePercent: intPtr(20)},
		{Quantity: 1, UnitPricePence: 333, VatRatePercent: intPtr(20)},
		{Quantity: 1, UnitPricePence: 333, VatRatePercent: intPtr(20)},
	})

	assert.Equal(t, int64(201), totals.VatAmountPence)
	assert.Equal(t, int64(999+201), totals.TotalAmountPence)
}

func TestComputeHalfRoundsAwayFromZero(t *testing.T) {
	engine := registeredEngine()

	// 1250 * 1% = 12.5 -> 13
	totals := engine.Compute([]entity.DocumentLine{
		{Quantity: 1, UnitPricePence: 1250, VatRatePercent: intPtr(1)},
	})

	assert.Equal(t, int64(13), totals.VatAmountPence)
	assert.Equal(t, int64(1263), totals.TotalAmountPence)
}

func TestComputeDefaultRateWhenLineSilent(t *testing.T) {
	engine := registeredEngine()

	totals := engine.Compute([]entity.DocumentLine{
		{Quantity: 2, UnitPricePence: 1000},
	})

	assert.Equal(t, int64(400), totals.VatAmountPence)
	assert.Equal(t, int64(2400), totals.TotalAmountPence)
}

func TestComputeUnregisteredChargesNoVat(t *testing.T) {
	engine := NewTotalsEngine(config.VATConfig{Registered: false, DefaultRate: 20})

	totals := engine.Compute([]entity.DocumentLine{
		{Quantity: 2, UnitPricePence: 1000},
	})

	assert.Equal(t, int64(0), totals.VatAmountPence)
	assert.Equal(t, int64(2000), totals.TotalAmountPence)
}

func TestComputeUnregisteredHonoursExplicitLineRate(t *testing.T) {
	engine := NewTotalsEngine(config.VATConfig{Registered: false, DefaultRate: 20})

	// An explicit line rate always wins over the account default
	totals := engine.Compute([]entity.DocumentLine{
		{Quantity: 1, UnitPricePence: 1000, VatRatePercent: intPtr(5)},
	})

	assert.Equal(t, int64(50), totals.VatAmountPence)
	assert.Equal(t, int64(1050), totals.TotalAmountPence)
}

func TestComputeEmptyLines(t *testing.T) {
	totals := registeredEngine().Compute(nil)

	assert.Equal(t, int64(0), totals.VatAmountPence)
	assert.Equal(t, int64(0), totals.TotalAmountPence)
}

func TestComputeDeterministic(t *testing.T) {
	engine := registeredEngine()
	lines := []entity.DocumentLine{
		{Quantity: 3, UnitPricePence: 1999, VatRatePercent: intPtr(20)},
		{Quantity: 1, UnitPricePence: 5485, VatRatePercent: intPtr(0)},
	}

	first := engine.Compute(lines)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, engine.Compute(lines))
	}
}
