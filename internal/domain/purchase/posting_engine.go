package purchase

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PostingAccounts are the control accounts shared by every purchase posting.
type PostingAccounts struct {
	PurchaseControl uuid.UUID
	Vat             uuid.UUID
}

// PostingInput is the state postings are derived from.
type PostingInput struct {
	Header *Header
	Lines  []*Line
	// CashBook is required for payments and refunds.
	CashBook *CashBook
	// VatRates holds the rate of every VAT code used by Lines.
	VatRates map[uuid.UUID]decimal.Decimal
}

// PostingEngine derives the ledger postings of a header.
type PostingEngine struct {
	accounts PostingAccounts
}

// NewPostingEngine creates a PostingEngine posting to accounts
func NewPostingEngine(accounts PostingAccounts) *PostingEngine {
	return &PostingEngine{accounts: accounts}
}

// Accounts returns the control accounts in use
func (e *PostingEngine) Accounts() PostingAccounts {
	return e.accounts
}

// Derive computes the full posting batch for the input. It never fails and
// never reads existing postings; the caller replaces whatever was posted
// before with the result.
func (e *PostingEngine) Derive(in PostingInput) PostingBatch {
	h := in.Header
	var batch PostingBatch
	if h == nil || !h.Type.PostsToLedger() {
		return batch
	}
	if h.Type.IsCash() {
		return e.deriveCash(h, in.CashBook)
	}

	for _, l := range in.Lines {
		if l.IsZero() {
			continue
		}
		if !l.Goods.IsZero() && l.NominalID != nil {
			batch.Nominal = append(batch.Nominal, e.nominal(h, l.LineNo, *l.NominalID, l.Goods, FieldGoods))
		}
		if !l.Vat.IsZero() {
			batch.Nominal = append(batch.Nominal, e.nominal(h, l.LineNo, e.accounts.Vat, l.Vat, FieldVat))
		}
		batch.Nominal = append(batch.Nominal,
			e.nominal(h, l.LineNo, e.accounts.PurchaseControl, l.Total().Neg(), FieldTotal))

		if l.VatCodeID != nil {
			rate := decimal.Zero
			if r, ok := in.VatRates[*l.VatCodeID]; ok {
				rate = r
			}
			batch.Vat = append(batch.Vat, VatTransaction{
				ID:        uuid.New(),
				Module:    ModulePurchases,
				HeaderID:  h.ID,
				Line:      l.LineNo,
				VatCodeID: *l.VatCodeID,
				VatRate:   rate,
				VatType:   VatTypeInput,
				Goods:     l.Goods,
				Vat:       l.Vat,
				Field:     FieldVat,
				Type:      h.Type,
				Ref:       h.Ref,
				Date:      h.Date,
				Period:    h.Period,
			})
		}
	}
	return batch
}

func (e *PostingEngine) deriveCash(h *Header, cb *CashBook) PostingBatch {
	var batch PostingBatch
	if cb == nil || h.Total.IsZero() {
		return batch
	}
	batch.Nominal = []NominalTransaction{
		e.nominal(h, 1, cb.NominalID, h.Total, FieldTotal),
		e.nominal(h, 1, e.accounts.PurchaseControl, h.Total.Neg(), FieldTotal),
	}
	batch.CashBook = []CashBookTransaction{{
		ID:         uuid.New(),
		Module:     ModulePurchases,
		HeaderID:   h.ID,
		Line:       1,
		CashBookID: cb.ID,
		Value:      h.Total,
		Field:      FieldTotal,
		Type:       h.Type,
		Ref:        h.Ref,
		Date:       h.Date,
		Period:     h.Period,
	}}
	return batch
}

func (e *PostingEngine) nominal(h *Header, line int, nominal uuid.UUID, value decimal.Decimal, field PostingField) NominalTransaction {
	return NominalTransaction{
		ID:        uuid.New(),
		Module:    ModulePurchases,
		HeaderID:  h.ID,
		Line:      line,
		NominalID: nominal,
		Value:     value,
		Field:     field,
		Type:      h.Type,
		Ref:       h.Ref,
		Date:      h.Date,
		Period:    h.Period,
	}
}
