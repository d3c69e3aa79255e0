package models

import (
	"time"

	"github.com/erp/ledger/internal/domain/purchase"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseHeaderModel is the persistence model for the purchase ledger Header aggregate.
type PurchaseHeaderModel struct {
	AggregateModel
	Type       purchase.HeaderType `gorm:"type:varchar(3);not null;index"`
	SupplierID uuid.UUID           `gorm:"type:uuid;not null;index:idx_purchase_header_supplier_due,priority:1"`
	CashBookID *uuid.UUID          `gorm:"type:uuid;index"`
	Ref        string              `gorm:"type:varchar(20);not null"`
	Date       time.Time           `gorm:"not null"`
	DueDate    *time.Time
	Period     string          `gorm:"type:varchar(6);not null;index"`
	Goods      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Vat        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Total      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Paid       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Due        decimal.Decimal `gorm:"type:decimal(18,2);not null;index:idx_purchase_header_supplier_due,priority:2"`
	Status     purchase.Status `gorm:"type:varchar(10);not null;default:'completed'"`
	VoidedAt   *time.Time
}

// TableName returns the table name for GORM
func (PurchaseHeaderModel) TableName() string {
	return "purchase_headers"
}

// ToDomain converts the persistence model to a domain Header.
func (m *PurchaseHeaderModel) ToDomain() *purchase.Header {
	return &purchase.Header{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Type:              m.Type,
		SupplierID:        m.SupplierID,
		CashBookID:        m.CashBookID,
		Ref:               m.Ref,
		Date:              m.Date,
		DueDate:           m.DueDate,
		Period:            m.Period,
		Goods:             m.Goods,
		Vat:               m.Vat,
		Total:             m.Total,
		Paid:              m.Paid,
		Due:               m.Due,
		Status:            m.Status,
		VoidedAt:          m.VoidedAt,
	}
}

// FromDomain populates the persistence model from a domain Header.
func (m *PurchaseHeaderModel) FromDomain(h *purchase.Header) {
	m.FromDomainAggregateRoot(h.BaseAggregateRoot)
	m.Type = h.Type
	m.SupplierID = h.SupplierID
	m.CashBookID = h.CashBookID
	m.Ref = h.Ref
	m.Date = h.Date
	m.DueDate = h.DueDate
	m.Period = h.Period
	m.Goods = h.Goods
	m.Vat = h.Vat
	m.Total = h.Total
	m.Paid = h.Paid
	m.Due = h.Due
	m.Status = h.Status
	m.VoidedAt = h.VoidedAt
}

// PurchaseHeaderModelFromDomain creates a new persistence model from a domain Header.
func PurchaseHeaderModelFromDomain(h *purchase.Header) *PurchaseHeaderModel {
	m := &PurchaseHeaderModel{}
	m.FromDomain(h)
	return m
}

// PurchaseLineModel is the persistence model for a header's analysis line.
type PurchaseLineModel struct {
	BaseModel
	HeaderID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_purchase_line_header_no,priority:1"`
	LineNo      int             `gorm:"not null;index:idx_purchase_line_header_no,priority:2"`
	Description string          `gorm:"type:varchar(100)"`
	Goods       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Vat         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	NominalID   *uuid.UUID      `gorm:"type:uuid"`
	VatCodeID   *uuid.UUID      `gorm:"type:uuid"`

	GoodsNominalTransactionID *uuid.UUID `gorm:"type:uuid"`
	VatNominalTransactionID   *uuid.UUID `gorm:"type:uuid"`
	TotalNominalTransactionID *uuid.UUID `gorm:"type:uuid"`
	VatTransactionID          *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (PurchaseLineModel) TableName() string {
	return "purchase_lines"
}

// ToDomain converts the persistence model to a domain Line.
func (m *PurchaseLineModel) ToDomain() *purchase.Line {
	return &purchase.Line{
		ID:                        m.ID,
		HeaderID:                  m.HeaderID,
		LineNo:                    m.LineNo,
		Description:               m.Description,
		Goods:                     m.Goods,
		Vat:                       m.Vat,
		NominalID:                 m.NominalID,
		VatCodeID:                 m.VatCodeID,
		GoodsNominalTransactionID: m.GoodsNominalTransactionID,
		VatNominalTransactionID:   m.VatNominalTransactionID,
		TotalNominalTransactionID: m.TotalNominalTransactionID,
		VatTransactionID:          m.VatTransactionID,
		CreatedAt:                 m.CreatedAt,
		UpdatedAt:                 m.UpdatedAt,
	}
}

// PurchaseLineModelFromDomain creates a new persistence model from a domain Line.
func PurchaseLineModelFromDomain(l *purchase.Line) *PurchaseLineModel {
	return &PurchaseLineModel{
		BaseModel: BaseModel{
			ID:        l.ID,
			CreatedAt: l.CreatedAt,
			UpdatedAt: l.UpdatedAt,
		},
		HeaderID:                  l.HeaderID,
		LineNo:                    l.LineNo,
		Description:               l.Description,
		Goods:                     l.Goods,
		Vat:                       l.Vat,
		NominalID:                 l.NominalID,
		VatCodeID:                 l.VatCodeID,
		GoodsNominalTransactionID: l.GoodsNominalTransactionID,
		VatNominalTransactionID:   l.VatNominalTransactionID,
		TotalNominalTransactionID: l.TotalNominalTransactionID,
		VatTransactionID:          l.VatTransactionID,
	}
}

// PurchaseMatchModel is the persistence model for a match record between two headers.
type PurchaseMatchModel struct {
	BaseModel
	MatchedBy uuid.UUID       `gorm:"type:uuid;not null;index"`
	MatchedTo uuid.UUID       `gorm:"type:uuid;not null;index"`
	Value     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Period    string          `gorm:"type:varchar(6);not null"`
}

// TableName returns the table name for GORM
func (PurchaseMatchModel) TableName() string {
	return "purchase_matches"
}

// ToDomain converts the persistence model to a domain Match.
func (m *PurchaseMatchModel) ToDomain() *purchase.Match {
	return &purchase.Match{
		ID:        m.ID,
		MatchedBy: m.MatchedBy,
		MatchedTo: m.MatchedTo,
		Value:     m.Value,
		Period:    m.Period,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// PurchaseMatchModelFromDomain creates a new persistence model from a domain Match.
func PurchaseMatchModelFromDomain(mt *purchase.Match) *PurchaseMatchModel {
	return &PurchaseMatchModel{
		BaseModel: BaseModel{
			ID:        mt.ID,
			CreatedAt: mt.CreatedAt,
			UpdatedAt: mt.UpdatedAt,
		},
		MatchedBy: mt.MatchedBy,
		MatchedTo: mt.MatchedTo,
		Value:     mt.Value,
		Period:    mt.Period,
	}
}
