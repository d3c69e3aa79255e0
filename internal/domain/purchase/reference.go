package purchase

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Supplier is the master record a header belongs to.
type Supplier struct {
	ID   uuid.UUID
	Code string
	Name string
}

// Nominal is a general ledger account.
type Nominal struct {
	ID       uuid.UUID
	Name     string
	ParentID *uuid.UUID
}

// VatCode is a VAT rate lines are analysed against.
type VatCode struct {
	ID          uuid.UUID
	Code        string
	Description string
	Rate        decimal.Decimal
}

// CashBook is a bank or cash account with its own nominal.
type CashBook struct {
	ID        uuid.UUID
	Name      string
	NominalID uuid.UUID
}

// ReferenceReader resolves master data referenced by transactions. Master
// data is read only from the ledger's point of view.
type ReferenceReader interface {
	FindSupplier(ctx context.Context, id uuid.UUID) (*Supplier, error)
	FindNominals(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Nominal, error)
	FindVatCodes(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*VatCode, error)
	FindCashBook(ctx context.Context, id uuid.UUID) (*CashBook, error)
}
