package persistence

import (
	"context"
	"errors"

	"github.com/erp/ledger/internal/domain/purchase"
	"github.com/erp/ledger/internal/domain/shared"
	"github.com/erp/ledger/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPurchaseHeaderRepository implements purchase.HeaderRepository using GORM.
type GormPurchaseHeaderRepository struct {
	db *gorm.DB
}

// NewGormPurchaseHeaderRepository creates a new GormPurchaseHeaderRepository
func NewGormPurchaseHeaderRepository(db *gorm.DB) *GormPurchaseHeaderRepository {
	return &GormPurchaseHeaderRepository{db: db}
}

// FindByID finds a header by ID
func (r *GormPurchaseHeaderRepository) FindByID(ctx context.Context, id uuid.UUID) (*purchase.Header, error) {
	var model models.PurchaseHeaderModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDsForUpdate locks the given headers in ascending id order.
// Ids that do not exist are silently absent from the result.
func (r *GormPurchaseHeaderRepository) FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]*purchase.Header, error) {
	if len(ids) == 0 {
		return []*purchase.Header{}, nil
	}
	sorted := make([]uuid.UUID, len(ids))
	copy(sorted, ids)
	purchase.SortIDs(sorted)

	var rows []models.PurchaseHeaderModel
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", sorted).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	headers := make([]*purchase.Header, len(rows))
	for i := range rows {
		headers[i] = rows[i].ToDomain()
	}
	return headers, nil
}

// FindOutstandingBySupplier returns a supplier's live headers with a non-zero due, oldest first.
func (r *GormPurchaseHeaderRepository) FindOutstandingBySupplier(ctx context.Context, supplierID uuid.UUID) ([]*purchase.Header, error) {
	var rows []models.PurchaseHeaderModel
	err := r.db.WithContext(ctx).
		Where("supplier_id = ? AND status <> ? AND due <> 0", supplierID, purchase.StatusVoided).
		Order("date ASC, created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	headers := make([]*purchase.Header, len(rows))
	for i := range rows {
		headers[i] = rows[i].ToDomain()
	}
	return headers, nil
}

// Create inserts a new header
func (r *GormPurchaseHeaderRepository) Create(ctx context.Context, header *purchase.Header) error {
	model := models.PurchaseHeaderModelFromDomain(header)
	return r.db.WithContext(ctx).Create(model).Error
}

// SaveWithLock writes the header only if the stored version still equals header.Version,
// then bumps the version on both sides.
func (r *GormPurchaseHeaderRepository) SaveWithLock(ctx context.Context, header *purchase.Header) error {
	result := r.db.WithContext(ctx).
		Model(&models.PurchaseHeaderModel{}).
		Where("id = ? AND version = ?", header.ID, header.Version).
		Updates(map[string]any{
			"supplier_id":  header.SupplierID,
			"cash_book_id": header.CashBookID,
			"ref":          header.Ref,
			"date":         header.Date,
			"due_date":     header.DueDate,
			"goods":        header.Goods,
			"vat":          header.Vat,
			"total":        header.Total,
			"paid":         header.Paid,
			"due":          header.Due,
			"status":       header.Status,
			"voided_at":    header.VoidedAt,
			"version":      header.Version + 1,
			"updated_at":   header.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	header.IncrementVersion()
	return nil
}

// Ensure GormPurchaseHeaderRepository implements purchase.HeaderRepository
var _ purchase.HeaderRepository = (*GormPurchaseHeaderRepository)(nil)
