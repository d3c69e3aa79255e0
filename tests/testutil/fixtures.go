package testutil

import (
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/erp/ledger/internal/domain/purchase"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var standardVatRate = decimal.RequireFromString("0.2")

// Faker produces purchase ledger data from a fixed seed, so a failing
// case can be replayed.
type Faker struct {
	*gofakeit.Faker
}

// NewFaker creates a Faker. The same seed yields the same data.
func NewFaker(seed int64) *Faker {
	return &Faker{Faker: gofakeit.New(seed)}
}

// Money returns a positive amount between minPence and maxPence.
func (f *Faker) Money(minPence, maxPence int) decimal.Decimal {
	return decimal.New(int64(f.Number(minPence, maxPence)), -2)
}

// Ref returns a transaction reference that fits the 20 character column.
func (f *Faker) Ref(prefix string) string {
	return prefix + "-" + strings.ToUpper(f.LetterN(8))
}

// Date returns a day in year, at midnight UTC.
func (f *Faker) Date(year int) time.Time {
	start := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	d := f.DateRange(start, start.AddDate(1, 0, -1))
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

// Lines returns n invoice lines with goods up to 999.99 and standard rate VAT.
func (f *Faker) Lines(n int, nominal, vatCode uuid.UUID) []purchase.LineCandidate {
	lines := make([]purchase.LineCandidate, n)
	for i := range lines {
		goods := f.Money(100, 99999)
		nominalID, vatCodeID := nominal, vatCode
		lines[i] = purchase.LineCandidate{
			Description: f.Sentence(3),
			Goods:       goods,
			Vat:         goods.Mul(standardVatRate).Round(2),
			NominalID:   &nominalID,
			VatCodeID:   &vatCodeID,
		}
	}
	return lines
}

// SumLines totals the goods and vat of the lines not marked for deletion.
func SumLines(lines []purchase.LineCandidate) (goods, vat decimal.Decimal) {
	for _, l := range lines {
		if l.Delete {
			continue
		}
		goods = goods.Add(l.Goods)
		vat = vat.Add(l.Vat)
	}
	return goods, vat
}

// InvoiceFields returns header fields for supplier whose totals agree with lines.
func (f *Faker) InvoiceFields(supplier uuid.UUID, lines []purchase.LineCandidate) purchase.HeaderFields {
	goods, vat := SumLines(lines)
	date := f.Date(2026)
	due := date.AddDate(0, 0, 30)
	return purchase.HeaderFields{
		SupplierID: supplier,
		Ref:        f.Ref("INV"),
		Date:       date,
		DueDate:    &due,
		Goods:      goods,
		Vat:        vat,
		Total:      goods.Add(vat),
	}
}
