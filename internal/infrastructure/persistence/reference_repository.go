package persistence

import (
	"context"
	"errors"

	"github.com/erp/ledger/internal/domain/purchase"
	"github.com/erp/ledger/internal/domain/shared"
	"github.com/erp/ledger/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormReferenceRepository reads the master data a purchase transaction points at.
type GormReferenceRepository struct {
	db *gorm.DB
}

// NewGormReferenceRepository creates a new GormReferenceRepository
func NewGormReferenceRepository(db *gorm.DB) *GormReferenceRepository {
	return &GormReferenceRepository{db: db}
}

// FindSupplier finds a supplier by ID
func (r *GormReferenceRepository) FindSupplier(ctx context.Context, id uuid.UUID) (*purchase.Supplier, error) {
	var model models.SupplierModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindNominals returns the nominals that exist among ids
func (r *GormReferenceRepository) FindNominals(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*purchase.Nominal, error) {
	out := make(map[uuid.UUID]*purchase.Nominal, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []models.NominalModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		out[rows[i].ID] = rows[i].ToDomain()
	}
	return out, nil
}

// FindVatCodes returns the VAT codes that exist among ids
func (r *GormReferenceRepository) FindVatCodes(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*purchase.VatCode, error) {
	out := make(map[uuid.UUID]*purchase.VatCode, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []models.VatCodeModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		out[rows[i].ID] = rows[i].ToDomain()
	}
	return out, nil
}

// FindCashBook finds a cash book by ID
func (r *GormReferenceRepository) FindCashBook(ctx context.Context, id uuid.UUID) (*purchase.CashBook, error) {
	var model models.CashBookModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Ensure GormReferenceRepository implements purchase.ReferenceReader
var _ purchase.ReferenceReader = (*GormReferenceRepository)(nil)
