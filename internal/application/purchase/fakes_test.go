package purchase

import (
	"context"
	"sort"
	"sync"

	"github.com/erp/ledger/internal/domain/purchase"
	"github.com/erp/ledger/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// memoryLedger is an in-memory store behind every repository interface. It
// stores copies so callers cannot mutate state without saving it.
type memoryLedger struct {
	mu        sync.Mutex
	headers   map[uuid.UUID]purchase.Header
	lines     map[uuid.UUID]purchase.Line
	matches   map[uuid.UUID]purchase.Match
	postings  map[uuid.UUID]purchase.PostingBatch
	suppliers map[uuid.UUID]*purchase.Supplier
	nominals  map[uuid.UUID]*purchase.Nominal
	vatCodes  map[uuid.UUID]*purchase.VatCode
	cashBooks map[uuid.UUID]*purchase.CashBook

	// saveErr is returned by SaveWithLock when set
	saveErr error
}

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{
		headers:   map[uuid.UUID]purchase.Header{},
		lines:     map[uuid.UUID]purchase.Line{},
		matches:   map[uuid.UUID]purchase.Match{},
		postings:  map[uuid.UUID]purchase.PostingBatch{},
		suppliers: map[uuid.UUID]*purchase.Supplier{},
		nominals:  map[uuid.UUID]*purchase.Nominal{},
		vatCodes:  map[uuid.UUID]*purchase.VatCode{},
		cashBooks: map[uuid.UUID]*purchase.CashBook{},
	}
}

func (m *memoryLedger) scope() *NoOpTransactionScope {
	return NewNoOpTransactionScope(
		&memoryHeaders{m}, &memoryLines{m}, &memoryMatches{m}, &memoryPostings{m}, &memoryReferences{m},
	)
}

func (m *memoryLedger) header(id uuid.UUID) purchase.Header {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.headers[id]
}

type memoryHeaders struct{ *memoryLedger }

func (r *memoryHeaders) FindByID(_ context.Context, id uuid.UUID) (*purchase.Header, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.headers[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &h, nil
}

func (r *memoryHeaders) FindByIDsForUpdate(_ context.Context, ids []uuid.UUID) ([]*purchase.Header, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sorted := append([]uuid.UUID(nil), ids...)
	purchase.SortIDs(sorted)
	out := make([]*purchase.Header, 0, len(ids))
	for _, id := range sorted {
		if h, ok := r.headers[id]; ok {
			out = append(out, &h)
		}
	}
	return out, nil
}

func (r *memoryHeaders) FindOutstandingBySupplier(_ context.Context, supplierID uuid.UUID) ([]*purchase.Header, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*purchase.Header
	for _, h := range r.headers {
		if h.SupplierID == supplierID && h.IsOutstanding() {
			h := h
			out = append(out, &h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *memoryHeaders) Create(_ context.Context, h *purchase.Header) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.headers[h.ID] = *h
	return nil
}

func (r *memoryHeaders) SaveWithLock(_ context.Context, h *purchase.Header) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	stored, ok := r.headers[h.ID]
	if !ok || stored.Version != h.Version {
		return shared.ErrConcurrencyConflict
	}
	h.IncrementVersion()
	r.headers[h.ID] = *h
	return nil
}

type memoryLines struct{ *memoryLedger }

func (r *memoryLines) FindByHeader(_ context.Context, headerID uuid.UUID) ([]*purchase.Line, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*purchase.Line
	for _, l := range r.lines {
		if l.HeaderID == headerID {
			l := l
			out = append(out, &l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LineNo < out[j].LineNo })
	return out, nil
}

func (r *memoryLines) SaveAll(_ context.Context, lines []*purchase.Line) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range lines {
		r.lines[l.ID] = *l
	}
	return nil
}

func (r *memoryLines) DeleteByIDs(_ context.Context, ids []uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		delete(r.lines, id)
	}
	return nil
}

type memoryMatches struct{ *memoryLedger }

func (r *memoryMatches) filter(keep func(purchase.Match) bool) []*purchase.Match {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*purchase.Match
	for _, m := range r.matches {
		if keep(m) {
			m := m
			out = append(out, &m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out
}

func (r *memoryMatches) FindByMatchedBy(_ context.Context, id uuid.UUID) ([]*purchase.Match, error) {
	return r.filter(func(m purchase.Match) bool { return m.MatchedBy == id }), nil
}

func (r *memoryMatches) FindByMatchedTo(_ context.Context, id uuid.UUID) ([]*purchase.Match, error) {
	return r.filter(func(m purchase.Match) bool { return m.MatchedTo == id }), nil
}

func (r *memoryMatches) FindTouching(_ context.Context, id uuid.UUID) ([]*purchase.Match, error) {
	return r.filter(func(m purchase.Match) bool { return m.Touches(id) }), nil
}

func (r *memoryMatches) Create(_ context.Context, matches []*purchase.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range matches {
		r.matches[m.ID] = *m
	}
	return nil
}

func (r *memoryMatches) Update(_ context.Context, matches []*purchase.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range matches {
		if _, ok := r.matches[m.ID]; !ok {
			return shared.ErrNotFound
		}
		r.matches[m.ID] = *m
	}
	return nil
}

func (r *memoryMatches) Delete(_ context.Context, ids []uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		delete(r.matches, id)
	}
	return nil
}

type memoryPostings struct{ *memoryLedger }

func (r *memoryPostings) FindByHeader(_ context.Context, headerID uuid.UUID) (*purchase.PostingBatch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := r.postings[headerID]
	return &b, nil
}

func (r *memoryPostings) Replace(_ context.Context, headerID uuid.UUID, batch purchase.PostingBatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.postings[headerID] = batch
	return nil
}

func (r *memoryPostings) DeleteByHeader(_ context.Context, headerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.postings, headerID)
	return nil
}

type memoryReferences struct{ *memoryLedger }

func (r *memoryReferences) FindSupplier(_ context.Context, id uuid.UUID) (*purchase.Supplier, error) {
	if s, ok := r.suppliers[id]; ok {
		return s, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memoryReferences) FindNominals(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*purchase.Nominal, error) {
	out := map[uuid.UUID]*purchase.Nominal{}
	for _, id := range ids {
		if n, ok := r.nominals[id]; ok {
			out[id] = n
		}
	}
	return out, nil
}

func (r *memoryReferences) FindVatCodes(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*purchase.VatCode, error) {
	out := map[uuid.UUID]*purchase.VatCode{}
	for _, id := range ids {
		if v, ok := r.vatCodes[id]; ok {
			out[id] = v
		}
	}
	return out, nil
}

func (r *memoryReferences) FindCashBook(_ context.Context, id uuid.UUID) (*purchase.CashBook, error) {
	if cb, ok := r.cashBooks[id]; ok {
		return cb, nil
	}
	return nil, shared.ErrNotFound
}

// MockEventPublisher is a testify mock of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// ledgerData is the master data every service test runs against
type ledgerData struct {
	supplier        uuid.UUID
	nominal         uuid.UUID
	vatCode         uuid.UUID
	cashBook        uuid.UUID
	bankNominal     uuid.UUID
	purchaseControl uuid.UUID
	vatControl      uuid.UUID
}

func seedMemoryLedger(m *memoryLedger) ledgerData {
	d := ledgerData{
		supplier:        uuid.New(),
		nominal:         uuid.New(),
		vatCode:         uuid.New(),
		cashBook:        uuid.New(),
		bankNominal:     uuid.New(),
		purchaseControl: uuid.New(),
		vatControl:      uuid.New(),
	}
	m.suppliers[d.supplier] = &purchase.Supplier{ID: d.supplier, Code: "ACME", Name: "Acme Ltd"}
	m.nominals[d.nominal] = &purchase.Nominal{ID: d.nominal, Name: "Purchases"}
	m.vatCodes[d.vatCode] = &purchase.VatCode{ID: d.vatCode, Code: "S", Rate: decimal.NewFromInt(20)}
	m.cashBooks[d.cashBook] = &purchase.CashBook{ID: d.cashBook, Name: "Bank", NominalID: d.bankNominal}
	return d
}
