package persistence

import (
	"context"

	"github.com/erp/ledger/internal/domain/purchase"
	"github.com/erp/ledger/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPurchaseLineRepository implements purchase.LineRepository using GORM.
type GormPurchaseLineRepository struct {
	db *gorm.DB
}

// NewGormPurchaseLineRepository creates a new GormPurchaseLineRepository
func NewGormPurchaseLineRepository(db *gorm.DB) *GormPurchaseLineRepository {
	return &GormPurchaseLineRepository{db: db}
}

// FindByHeader returns a header's lines ordered by line number
func (r *GormPurchaseLineRepository) FindByHeader(ctx context.Context, headerID uuid.UUID) ([]*purchase.Line, error) {
	var rows []models.PurchaseLineModel
	err := r.db.WithContext(ctx).
		Where("header_id = ?", headerID).
		Order("line_no ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	lines := make([]*purchase.Line, len(rows))
	for i := range rows {
		lines[i] = rows[i].ToDomain()
	}
	return lines, nil
}

// SaveAll upserts lines by id
func (r *GormPurchaseLineRepository) SaveAll(ctx context.Context, lines []*purchase.Line) error {
	if len(lines) == 0 {
		return nil
	}
	rows := make([]*models.PurchaseLineModel, len(lines))
	for i, l := range lines {
		rows[i] = models.PurchaseLineModelFromDomain(l)
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&rows).Error
}

// DeleteByIDs removes lines
func (r *GormPurchaseLineRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&models.PurchaseLineModel{}).Error
}

// Ensure GormPurchaseLineRepository implements purchase.LineRepository
var _ purchase.LineRepository = (*GormPurchaseLineRepository)(nil)
