package models

import (
	"time"

	"github.com/erp/ledger/internal/domain/purchase"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PostingColumns are the columns every ledger posting carries back to its source header.
type PostingColumns struct {
	ID        uuid.UUID             `gorm:"type:uuid;primary_key"`
	Module    string                `gorm:"type:varchar(2);not null;index:,composite:source,priority:1"`
	HeaderID  uuid.UUID             `gorm:"type:uuid;not null;index:,composite:source,priority:2"`
	Line      int                   `gorm:"not null"`
	Field     purchase.PostingField `gorm:"type:varchar(1);not null"`
	Type      purchase.HeaderType   `gorm:"type:varchar(3);not null"`
	Ref       string                `gorm:"type:varchar(20);not null"`
	Date      time.Time             `gorm:"not null"`
	Period    string                `gorm:"type:varchar(6);not null;index"`
	CreatedAt time.Time             `gorm:"not null"`
}

// NominalTransactionModel is a single general ledger posting.
type NominalTransactionModel struct {
	PostingColumns
	NominalID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Value     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (NominalTransactionModel) TableName() string {
	return "nominal_transactions"
}

// ToDomain converts the persistence model to a domain NominalTransaction.
func (m *NominalTransactionModel) ToDomain() purchase.NominalTransaction {
	return purchase.NominalTransaction{
		ID:        m.ID,
		Module:    m.Module,
		HeaderID:  m.HeaderID,
		Line:      m.Line,
		NominalID: m.NominalID,
		Value:     m.Value,
		Field:     m.Field,
		Type:      m.Type,
		Ref:       m.Ref,
		Date:      m.Date,
		Period:    m.Period,
	}
}

// NominalTransactionModelFromDomain creates a persistence model from a domain NominalTransaction.
func NominalTransactionModelFromDomain(t purchase.NominalTransaction, at time.Time) NominalTransactionModel {
	return NominalTransactionModel{
		PostingColumns: PostingColumns{
			ID:        t.ID,
			Module:    t.Module,
			HeaderID:  t.HeaderID,
			Line:      t.Line,
			Field:     t.Field,
			Type:      t.Type,
			Ref:       t.Ref,
			Date:      t.Date,
			Period:    t.Period,
			CreatedAt: at,
		},
		NominalID: t.NominalID,
		Value:     t.Value,
	}
}

// CashBookTransactionModel is a movement on a bank or cash account.
type CashBookTransactionModel struct {
	PostingColumns
	CashBookID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Value      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (CashBookTransactionModel) TableName() string {
	return "cash_book_transactions"
}

// ToDomain converts the persistence model to a domain CashBookTransaction.
func (m *CashBookTransactionModel) ToDomain() purchase.CashBookTransaction {
	return purchase.CashBookTransaction{
		ID:         m.ID,
		Module:     m.Module,
		HeaderID:   m.HeaderID,
		Line:       m.Line,
		CashBookID: m.CashBookID,
		Value:      m.Value,
		Field:      m.Field,
		Type:       m.Type,
		Ref:        m.Ref,
		Date:       m.Date,
		Period:     m.Period,
	}
}

// CashBookTransactionModelFromDomain creates a persistence model from a domain CashBookTransaction.
func CashBookTransactionModelFromDomain(t purchase.CashBookTransaction, at time.Time) CashBookTransactionModel {
	return CashBookTransactionModel{
		PostingColumns: PostingColumns{
			ID:        t.ID,
			Module:    t.Module,
			HeaderID:  t.HeaderID,
			Line:      t.Line,
			Field:     t.Field,
			Type:      t.Type,
			Ref:       t.Ref,
			Date:      t.Date,
			Period:    t.Period,
			CreatedAt: at,
		},
		CashBookID: t.CashBookID,
		Value:      t.Value,
	}
}

// VatTransactionModel is an entry in the VAT analysis.
type VatTransactionModel struct {
	PostingColumns
	VatCodeID uuid.UUID       `gorm:"type:uuid;not null;index"`
	VatRate   decimal.Decimal `gorm:"type:decimal(7,4);not null"`
	VatType   string          `gorm:"type:varchar(1);not null"`
	Goods     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Vat       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (VatTransactionModel) TableName() string {
	return "vat_transactions"
}

// ToDomain converts the persistence model to a domain VatTransaction.
func (m *VatTransactionModel) ToDomain() purchase.VatTransaction {
	return purchase.VatTransaction{
		ID:        m.ID,
		Module:    m.Module,
		HeaderID:  m.HeaderID,
		Line:      m.Line,
		VatCodeID: m.VatCodeID,
		VatRate:   m.VatRate,
		VatType:   m.VatType,
		Goods:     m.Goods,
		Vat:       m.Vat,
		Field:     m.Field,
		Type:      m.Type,
		Ref:       m.Ref,
		Date:      m.Date,
		Period:    m.Period,
	}
}

// VatTransactionModelFromDomain creates a persistence model from a domain VatTransaction.
func VatTransactionModelFromDomain(t purchase.VatTransaction, at time.Time) VatTransactionModel {
	return VatTransactionModel{
		PostingColumns: PostingColumns{
			ID:        t.ID,
			Module:    t.Module,
			HeaderID:  t.HeaderID,
			Line:      t.Line,
			Field:     t.Field,
			Type:      t.Type,
			Ref:       t.Ref,
			Date:      t.Date,
			Period:    t.Period,
			CreatedAt: at,
		},
		VatCodeID: t.VatCodeID,
		VatRate:   t.VatRate,
		VatType:   t.VatType,
		Goods:     t.Goods,
		Vat:       t.Vat,
	}
}
