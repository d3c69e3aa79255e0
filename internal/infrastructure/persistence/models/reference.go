package models

import (
	"github.com/erp/ledger/internal/domain/purchase"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SupplierModel is the persistence model for a supplier account.
type SupplierModel struct {
	BaseModel
	Code string `gorm:"type:varchar(10);not null;uniqueIndex"`
	Name string `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (SupplierModel) TableName() string {
	return "suppliers"
}

// ToDomain converts the persistence model to a domain Supplier.
func (m *SupplierModel) ToDomain() *purchase.Supplier {
	return &purchase.Supplier{ID: m.ID, Code: m.Code, Name: m.Name}
}

// NominalModel is a node in the nominal account tree.
type NominalModel struct {
	BaseModel
	Name     string     `gorm:"type:varchar(50);not null;uniqueIndex"`
	ParentID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (NominalModel) TableName() string {
	return "nominals"
}

// ToDomain converts the persistence model to a domain Nominal.
func (m *NominalModel) ToDomain() *purchase.Nominal {
	return &purchase.Nominal{ID: m.ID, Name: m.Name, ParentID: m.ParentID}
}

// VatCodeModel is the persistence model for a VAT rate code.
type VatCodeModel struct {
	BaseModel
	Code        string          `gorm:"type:varchar(10);not null;uniqueIndex"`
	Description string          `gorm:"type:varchar(100)"`
	Rate        decimal.Decimal `gorm:"type:decimal(7,4);not null"`
}

// TableName returns the table name for GORM
func (VatCodeModel) TableName() string {
	return "vat_codes"
}

// ToDomain converts the persistence model to a domain VatCode.
func (m *VatCodeModel) ToDomain() *purchase.VatCode {
	return &purchase.VatCode{ID: m.ID, Code: m.Code, Description: m.Description, Rate: m.Rate}
}

// CashBookModel is the persistence model for a bank or cash account.
type CashBookModel struct {
	BaseModel
	Name      string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	NominalID uuid.UUID `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (CashBookModel) TableName() string {
	return "cash_books"
}

// ToDomain converts the persistence model to a domain CashBook.
func (m *CashBookModel) ToDomain() *purchase.CashBook {
	return &purchase.CashBook{ID: m.ID, Name: m.Name, NominalID: m.NominalID}
}

// AllModels lists every model in migration order.
func AllModels() []any {
	return []any{
		&SupplierModel{},
		&NominalModel{},
		&VatCodeModel{},
		&CashBookModel{},
		&PurchaseHeaderModel{},
		&PurchaseLineModel{},
		&PurchaseMatchModel{},
		&NominalTransactionModel{},
		&CashBookTransactionModel{},
		&VatTransactionModel{},
	}
}
