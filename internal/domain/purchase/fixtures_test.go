package purchase

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var (
	testSupplierID = uuid.MustParse("6f1c1d8e-5a2f-4a8b-9d55-0a1b2c3d4e01")
	testNominalID  = uuid.MustParse("6f1c1d8e-5a2f-4a8b-9d55-0a1b2c3d4e02")
	testVatCodeID  = uuid.MustParse("6f1c1d8e-5a2f-4a8b-9d55-0a1b2c3d4e03")
	testCashBook   = &CashBook{
		ID:        uuid.MustParse("6f1c1d8e-5a2f-4a8b-9d55-0a1b2c3d4e04"),
		Name:      "Current",
		NominalID: uuid.MustParse("6f1c1d8e-5a2f-4a8b-9d55-0a1b2c3d4e05"),
	}
	testAccounts = PostingAccounts{
		PurchaseControl: uuid.MustParse("6f1c1d8e-5a2f-4a8b-9d55-0a1b2c3d4e06"),
		Vat:             uuid.MustParse("6f1c1d8e-5a2f-4a8b-9d55-0a1b2c3d4e07"),
	}
	testDate = time.Date(2020, 7, 25, 0, 0, 0, 0, time.UTC)
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func fields(total, goods, vat string) HeaderFields {
	f := HeaderFields{
		SupplierID: testSupplierID,
		Ref:        "ref",
		Date:       testDate,
		Total:      dec(total),
		Goods:      dec(goods),
		Vat:        dec(vat),
	}
	return f
}

func newHeader(t *testing.T, headerType HeaderType, total string) *Header {
	t.Helper()
	f := fields(total, "0", "0")
	if headerType.HasLines() {
		f.Goods = dec(total)
	}
	if headerType.IsCash() {
		f.CashBookID = &testCashBook.ID
	}
	h, err := NewHeader(headerType, "202007", f)
	require.NoError(t, err)
	return h
}

func lineCandidate(goods, vat string) LineCandidate {
	nominal, vatCode := testNominalID, testVatCodeID
	return LineCandidate{
		Description: "line",
		Goods:       dec(goods),
		Vat:         dec(vat),
		NominalID:   &nominal,
		VatCodeID:   &vatCode,
	}
}

func keepLine(l *Line) LineCandidate {
	c := lineCandidate(l.Goods.String(), l.Vat.String())
	id := l.ID
	c.ID = &id
	c.Description = l.Description
	return c
}

// newInvoice creates an invoice for 1200 made of ten lines of 100 goods and
// 20 vat.
func newInvoice(t *testing.T, headerType HeaderType) (*Header, []*Line) {
	t.Helper()
	h, err := NewHeader(headerType, "202007", fields("1200", "1000", "200"))
	require.NoError(t, err)

	candidates := make([]LineCandidate, 10)
	for i := range candidates {
		candidates[i] = lineCandidate("100", "20")
	}
	rec, err := ReconcileLines(h, nil, candidates)
	require.NoError(t, err)
	return h, rec.Lines
}

func headerMap(headers ...*Header) map[uuid.UUID]*Header {
	m := make(map[uuid.UUID]*Header, len(headers))
	for _, h := range headers {
		m[h.ID] = h
	}
	return m
}

// applyPlan folds a plan into the stored record set the way the repository
// would.
func applyPlan(existing []*Match, plan *MatchPlan) []*Match {
	deleted := make(map[uuid.UUID]bool)
	for _, m := range plan.Delete {
		deleted[m.ID] = true
	}
	updated := make(map[uuid.UUID]*Match)
	for _, m := range plan.Update {
		updated[m.ID] = m
	}
	var out []*Match
	for _, m := range existing {
		if deleted[m.ID] {
			continue
		}
		if u, ok := updated[m.ID]; ok {
			out = append(out, u)
			continue
		}
		out = append(out, m)
	}
	return append(out, plan.Create...)
}

func requireInvariant(t *testing.T, headers ...*Header) {
	t.Helper()
	for _, h := range headers {
		require.True(t, h.Due.Equal(h.Total.Sub(h.Paid)),
			"due %s != total %s - paid %s", h.Due, h.Total, h.Paid)
	}
}
