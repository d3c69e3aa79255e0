package purchase

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type matchedInvoice struct {
	invoice *Header
	lines   []*Line
	credit  *Header
	payment *Header
	matches []*Match
}

// newMatchedInvoice sets up the invoice of 1200 matched -600 to a credit
// note of -1200 and -600 to a payment of -1000.
func newMatchedInvoice(t *testing.T) *matchedInvoice {
	t.Helper()
	invoice, lines := newInvoice(t, TypeInvoice)
	credit := newHeader(t, TypeCreditNote, "-1200")
	payment := newHeader(t, TypePayment, "-1000")

	plan, err := NewMatchingEngine().Plan(invoice, nil, headerMap(credit, payment), []MatchCandidate{
		{CounterpartID: credit.ID, Value: dec("-600")},
		{CounterpartID: payment.ID, Value: dec("-600")},
	})
	require.NoError(t, err)
	require.Len(t, plan.Create, 2)

	return &matchedInvoice{
		invoice: invoice,
		lines:   lines,
		credit:  credit,
		payment: payment,
		matches: plan.Create,
	}
}

func (s *matchedInvoice) existing() []MatchCandidate {
	out := make([]MatchCandidate, 0, len(s.matches))
	for _, m := range s.matches {
		id := m.ID
		out = append(out, MatchCandidate{ID: &id, CounterpartID: m.Counterpart(s.invoice.ID), Value: m.ValueFor(s.invoice.ID)})
	}
	return out
}

func TestMatchingEngine_FullyMatchesInvoice(t *testing.T) {
	s := newMatchedInvoice(t)

	assert.True(t, s.invoice.Due.IsZero())
	assert.True(t, s.invoice.Paid.Equal(dec("1200")))
	assert.True(t, s.credit.Due.Equal(dec("-600")))
	assert.True(t, s.payment.Due.Equal(dec("-400")))
	requireInvariant(t, s.invoice, s.credit, s.payment)

	for _, m := range s.matches {
		assert.Equal(t, s.invoice.ID, m.MatchedBy)
		assert.Equal(t, "202007", m.Period)
	}
	for _, h := range []*Header{s.invoice, s.credit, s.payment} {
		assert.True(t, ComputePaid(h.ID, s.matches).Equal(h.Paid))
	}
}

func TestMatchingEngine_ShrinkingInvoiceBeyondMatchesIsRejected(t *testing.T) {
	s := newMatchedInvoice(t)

	candidates := make([]LineCandidate, 0, len(s.lines))
	for _, l := range s.lines {
		candidates = append(candidates, keepLine(l))
	}
	candidates[0].Delete = true
	require.NoError(t, s.invoice.Amend(TypeInvoice, fields("1080", "900", "180")))
	_, err := ReconcileLines(s.invoice, s.lines, candidates)
	require.NoError(t, err)

	creditDue, paymentDue := s.credit.Due, s.payment.Due
	_, err = NewMatchingEngine().Plan(s.invoice, s.matches, headerMap(s.credit, s.payment), s.existing())
	require.Error(t, err)
	assert.Equal(t,
		"Please ensure the total of the transactions you are matching is between 0 and -1080.00",
		err.Error())

	// nothing moved
	assert.True(t, s.credit.Due.Equal(creditDue))
	assert.True(t, s.payment.Due.Equal(paymentDue))
}

func TestMatchingEngine_GrowingInvoiceAndMatches(t *testing.T) {
	s := newMatchedInvoice(t)

	candidates := make([]LineCandidate, 0, len(s.lines))
	for _, l := range s.lines {
		candidates = append(candidates, keepLine(l))
	}
	candidates[9].Goods = dec("200")
	candidates[9].Vat = dec("40")
	require.NoError(t, s.invoice.Amend(TypeInvoice, fields("1320", "1100", "220")))
	_, err := ReconcileLines(s.invoice, s.lines, candidates)
	require.NoError(t, err)

	matches := s.existing()
	for i := range matches {
		matches[i].Value = dec("-660")
	}
	plan, err := NewMatchingEngine().Plan(s.invoice, s.matches, headerMap(s.credit, s.payment), matches)
	require.NoError(t, err)

	assert.Len(t, plan.Update, 2)
	assert.Empty(t, plan.Create)
	assert.Empty(t, plan.Delete)
	assert.Len(t, plan.Touched, 2)

	assert.True(t, s.invoice.Due.IsZero())
	assert.True(t, s.credit.Due.Equal(dec("-540")))
	assert.True(t, s.payment.Due.Equal(dec("-340")))
	requireInvariant(t, s.invoice, s.credit, s.payment)

	stored := applyPlan(s.matches, plan)
	for _, h := range []*Header{s.invoice, s.credit, s.payment} {
		assert.True(t, ComputePaid(h.ID, stored).Equal(h.Paid))
	}
}

func TestMatchingEngine_PerRecordBound(t *testing.T) {
	invoice := newHeader(t, TypeInvoice, "1200")
	credit := newHeader(t, TypeCreditNote, "-500")

	_, err := NewMatchingEngine().Plan(invoice, nil, headerMap(credit), []MatchCandidate{
		{CounterpartID: credit.ID, Value: dec("-600")},
	})
	require.Error(t, err)
	assert.Equal(t, "Value must be between 0 and -500.00", err.Error())

	_, err = NewMatchingEngine().Plan(invoice, nil, headerMap(credit), []MatchCandidate{
		{CounterpartID: credit.ID, Value: dec("100")},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Value must be between 0 and")
}

func TestMatchingEngine_BoundUsesCounterpartTotalNotDue(t *testing.T) {
	invoice := newHeader(t, TypeInvoice, "1200")
	other := newHeader(t, TypeInvoice, "1200")
	payment := newHeader(t, TypePayment, "-1000")

	engine := NewMatchingEngine()
	_, err := engine.Plan(other, nil, headerMap(payment), []MatchCandidate{{CounterpartID: payment.ID, Value: dec("-900")}})
	require.NoError(t, err)
	require.True(t, payment.Due.Equal(dec("-100")))

	// 800 exceeds the payment's remaining due but not its total
	_, err = engine.Plan(invoice, nil, headerMap(payment), []MatchCandidate{{CounterpartID: payment.ID, Value: dec("-800")}})
	require.NoError(t, err)
	requireInvariant(t, invoice, payment)
}

func TestMatchingEngine_AllOrNothing(t *testing.T) {
	invoice := newHeader(t, TypeInvoice, "1200")
	credit := newHeader(t, TypeCreditNote, "-600")
	payment := newHeader(t, TypePayment, "-300")

	_, err := NewMatchingEngine().Plan(invoice, nil, headerMap(credit, payment), []MatchCandidate{
		{CounterpartID: credit.ID, Value: dec("-600")},
		{CounterpartID: payment.ID, Value: dec("-400")},
	})
	require.Error(t, err)

	assert.True(t, invoice.Paid.IsZero())
	assert.True(t, credit.Paid.IsZero())
	assert.True(t, payment.Paid.IsZero())
}

func TestMatchingEngine_ZeroIsDelete(t *testing.T) {
	zeroed := newMatchedInvoice(t)
	candidates := zeroed.existing()
	candidates[0].Value = decimal.Zero
	plan, err := NewMatchingEngine().Plan(zeroed.invoice, zeroed.matches, headerMap(zeroed.credit, zeroed.payment), candidates)
	require.NoError(t, err)
	require.Len(t, plan.Delete, 1)
	assert.Empty(t, plan.Update)

	omitted := newMatchedInvoice(t)
	// voiding the record is the other way of removing it
	outcome, err := NewVoidEngine().Void(omitted.credit, nil, omitted.matches[:1], headerMap(omitted.invoice), testDate)
	require.NoError(t, err)
	require.True(t, outcome.Voided)

	assert.True(t, zeroed.invoice.Paid.Equal(omitted.invoice.Paid))
	assert.True(t, zeroed.invoice.Due.Equal(dec("600")))
	assert.True(t, zeroed.credit.Paid.IsZero())
	assert.True(t, zeroed.credit.Due.Equal(dec("-1200")))
}

func TestMatchingEngine_Conservation(t *testing.T) {
	values := []string{"-0.01", "-1", "-333.33", "-600", "-1000"}
	for _, v := range values {
		t.Run(v, func(t *testing.T) {
			invoice := newHeader(t, TypeInvoice, "1200")
			payment := newHeader(t, TypePayment, "-1000")
			invoiceBefore, paymentBefore := invoice.Paid, payment.Paid

			engine := NewMatchingEngine()
			plan, err := engine.Plan(invoice, nil, headerMap(payment), []MatchCandidate{{CounterpartID: payment.ID, Value: dec(v)}})
			require.NoError(t, err)
			require.Len(t, plan.Create, 1)
			record := plan.Create[0]

			id := record.ID
			reverse, err := engine.Plan(invoice, plan.Create, headerMap(payment), []MatchCandidate{
				{ID: &id, CounterpartID: payment.ID, Value: decimal.Zero},
			})
			require.NoError(t, err)
			require.Len(t, reverse.Delete, 1)

			assert.True(t, invoice.Paid.Equal(invoiceBefore))
			assert.True(t, payment.Paid.Equal(paymentBefore))
			requireInvariant(t, invoice, payment)
		})
	}
}

func TestMatchingEngine_FromTheOtherSide(t *testing.T) {
	invoice := newHeader(t, TypeInvoice, "1200")
	payment := newHeader(t, TypePayment, "-1000")
	engine := NewMatchingEngine()

	// the payment raises the record
	plan, err := engine.Plan(payment, nil, headerMap(invoice), []MatchCandidate{{CounterpartID: invoice.ID, Value: dec("600")}})
	require.NoError(t, err)
	assert.True(t, payment.Due.Equal(dec("-400")))
	assert.True(t, invoice.Due.Equal(dec("600")))
	record := plan.Create[0]

	// the invoice sees the same record negated and can adjust it
	id := record.ID
	plan, err = engine.Plan(invoice, plan.Create, headerMap(payment), []MatchCandidate{
		{ID: &id, CounterpartID: payment.ID, Value: dec("-1000")},
	})
	require.NoError(t, err)
	require.Len(t, plan.Update, 1)
	assert.True(t, plan.Update[0].Value.Equal(dec("1000")))
	assert.Equal(t, payment.ID, plan.Update[0].MatchedBy)
	assert.True(t, payment.Due.IsZero())
	assert.True(t, invoice.Due.Equal(dec("200")))
	requireInvariant(t, invoice, payment)
}

func TestMatchingEngine_UntouchedRecordsCountTowardsHeaderBound(t *testing.T) {
	s := newMatchedInvoice(t)
	extra := newHeader(t, TypeCreditNote, "-100")

	_, err := NewMatchingEngine().Plan(s.invoice, s.matches, headerMap(s.credit, s.payment, extra), []MatchCandidate{
		{CounterpartID: extra.ID, Value: dec("-100")},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "between 0 and -1200.00")
}

func TestMatchingEngine_InvalidChoices(t *testing.T) {
	invoice := newHeader(t, TypeInvoice, "1200")
	payment := newHeader(t, TypePayment, "-1000")
	voided := newHeader(t, TypePayment, "-1000")
	voided.Status = StatusVoided
	otherSupplier := newHeader(t, TypePayment, "-1000")
	otherSupplier.SupplierID = uuid.New()
	stray := NewMatch(payment.ID, otherSupplier.ID, dec("1"), "202007")
	strayID := stray.ID

	tests := []struct {
		name      string
		candidate MatchCandidate
	}{
		{"unknown counterpart", MatchCandidate{CounterpartID: uuid.New(), Value: dec("-1")}},
		{"itself", MatchCandidate{CounterpartID: invoice.ID, Value: dec("-1")}},
		{"voided counterpart", MatchCandidate{CounterpartID: voided.ID, Value: dec("-1")}},
		{"other supplier", MatchCandidate{CounterpartID: otherSupplier.ID, Value: dec("-1")}},
		{"record of another header", MatchCandidate{ID: &strayID, CounterpartID: payment.ID, Value: dec("-1")}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewMatchingEngine().Plan(invoice, []*Match{stray},
				headerMap(invoice, payment, voided, otherSupplier), []MatchCandidate{tc.candidate})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "not a valid choice")
		})
	}

	t.Run("zero value new candidate is skipped", func(t *testing.T) {
		plan, err := NewMatchingEngine().Plan(invoice, nil, headerMap(payment),
			[]MatchCandidate{{CounterpartID: payment.ID, Value: decimal.Zero}})
		require.NoError(t, err)
		assert.True(t, plan.IsEmpty())
	})
}

func TestCounterpartIDs(t *testing.T) {
	h := uuid.New()
	a, b := uuid.New(), uuid.New()
	existing := []*Match{NewMatch(h, a, dec("-1"), "p"), NewMatch(b, h, dec("1"), "p")}
	ids := CounterpartIDs(h, existing, []MatchCandidate{{CounterpartID: a}, {CounterpartID: h}})

	require.Len(t, ids, 2)
	assert.ElementsMatch(t, []uuid.UUID{a, b}, ids)
	assert.True(t, ids[0].String() < ids[1].String())
}
