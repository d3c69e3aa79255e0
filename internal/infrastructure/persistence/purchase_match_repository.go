package persistence

import (
	"context"

	"github.com/erp/ledger/internal/domain/purchase"
	"github.com/erp/ledger/internal/domain/shared"
	"github.com/erp/ledger/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPurchaseMatchRepository implements purchase.MatchRepository using GORM.
type GormPurchaseMatchRepository struct {
	db *gorm.DB
}

// NewGormPurchaseMatchRepository creates a new GormPurchaseMatchRepository
func NewGormPurchaseMatchRepository(db *gorm.DB) *GormPurchaseMatchRepository {
	return &GormPurchaseMatchRepository{db: db}
}

// FindByMatchedBy returns the records where the header is the matching side
func (r *GormPurchaseMatchRepository) FindByMatchedBy(ctx context.Context, headerID uuid.UUID) ([]*purchase.Match, error) {
	return r.find(ctx, r.db.WithContext(ctx).Where("matched_by = ?", headerID))
}

// FindByMatchedTo returns the records where the header is the matched side
func (r *GormPurchaseMatchRepository) FindByMatchedTo(ctx context.Context, headerID uuid.UUID) ([]*purchase.Match, error) {
	return r.find(ctx, r.db.WithContext(ctx).Where("matched_to = ?", headerID))
}

// FindTouching returns every record on either side of the header: the
// matched_by lookup followed by the matched_to lookup, each index-backed.
func (r *GormPurchaseMatchRepository) FindTouching(ctx context.Context, headerID uuid.UUID) ([]*purchase.Match, error) {
	by, err := r.FindByMatchedBy(ctx, headerID)
	if err != nil {
		return nil, err
	}
	to, err := r.FindByMatchedTo(ctx, headerID)
	if err != nil {
		return nil, err
	}
	return append(by, to...), nil
}

func (r *GormPurchaseMatchRepository) find(_ context.Context, query *gorm.DB) ([]*purchase.Match, error) {
	var rows []models.PurchaseMatchModel
	if err := query.Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	matches := make([]*purchase.Match, len(rows))
	for i := range rows {
		matches[i] = rows[i].ToDomain()
	}
	return matches, nil
}

// Create inserts new match records
func (r *GormPurchaseMatchRepository) Create(ctx context.Context, matches []*purchase.Match) error {
	if len(matches) == 0 {
		return nil
	}
	rows := make([]*models.PurchaseMatchModel, len(matches))
	for i, m := range matches {
		rows[i] = models.PurchaseMatchModelFromDomain(m)
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// Update writes new values for existing records
func (r *GormPurchaseMatchRepository) Update(ctx context.Context, matches []*purchase.Match) error {
	for _, m := range matches {
		result := r.db.WithContext(ctx).
			Model(&models.PurchaseMatchModel{}).
			Where("id = ?", m.ID).
			Updates(map[string]any{
				"value":      m.Value,
				"updated_at": m.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
	}
	return nil
}

// Delete removes match records
func (r *GormPurchaseMatchRepository) Delete(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&models.PurchaseMatchModel{}).Error
}

// Ensure GormPurchaseMatchRepository implements purchase.MatchRepository
var _ purchase.MatchRepository = (*GormPurchaseMatchRepository)(nil)
