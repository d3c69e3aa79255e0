package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/erp/ledger/internal/domain/purchase"
	"github.com/erp/ledger/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// postingBatchSize bounds the rows per INSERT when replacing postings.
const postingBatchSize = 200

// GormPostingRepository implements purchase.PostingRepository over the nominal,
// cash book and VAT transaction tables.
type GormPostingRepository struct {
	db *gorm.DB
}

// NewGormPostingRepository creates a new GormPostingRepository
func NewGormPostingRepository(db *gorm.DB) *GormPostingRepository {
	return &GormPostingRepository{db: db}
}

// FindByHeader loads every posting that originated from the header
func (r *GormPostingRepository) FindByHeader(ctx context.Context, headerID uuid.UUID) (*purchase.PostingBatch, error) {
	batch := &purchase.PostingBatch{}

	var nominal []models.NominalTransactionModel
	if err := r.source(ctx, headerID).Find(&nominal).Error; err != nil {
		return nil, fmt.Errorf("failed to load nominal transactions: %w", err)
	}
	for i := range nominal {
		batch.Nominal = append(batch.Nominal, nominal[i].ToDomain())
	}

	var cash []models.CashBookTransactionModel
	if err := r.source(ctx, headerID).Find(&cash).Error; err != nil {
		return nil, fmt.Errorf("failed to load cash book transactions: %w", err)
	}
	for i := range cash {
		batch.CashBook = append(batch.CashBook, cash[i].ToDomain())
	}

	var vat []models.VatTransactionModel
	if err := r.source(ctx, headerID).Find(&vat).Error; err != nil {
		return nil, fmt.Errorf("failed to load vat transactions: %w", err)
	}
	for i := range vat {
		batch.Vat = append(batch.Vat, vat[i].ToDomain())
	}
	return batch, nil
}

func (r *GormPostingRepository) source(ctx context.Context, headerID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Where("module = ? AND header_id = ?", purchase.ModulePurchases, headerID).
		Order("line ASC, field ASC")
}

// Replace deletes the header's postings and inserts batch in their place
func (r *GormPostingRepository) Replace(ctx context.Context, headerID uuid.UUID, batch purchase.PostingBatch) error {
	if err := r.DeleteByHeader(ctx, headerID); err != nil {
		return err
	}
	now := time.Now()
	db := r.db.WithContext(ctx)

	if len(batch.Nominal) > 0 {
		rows := make([]models.NominalTransactionModel, len(batch.Nominal))
		for i, t := range batch.Nominal {
			rows[i] = models.NominalTransactionModelFromDomain(t, now)
		}
		if err := db.CreateInBatches(&rows, postingBatchSize).Error; err != nil {
			return fmt.Errorf("failed to insert nominal transactions: %w", err)
		}
	}
	if len(batch.CashBook) > 0 {
		rows := make([]models.CashBookTransactionModel, len(batch.CashBook))
		for i, t := range batch.CashBook {
			rows[i] = models.CashBookTransactionModelFromDomain(t, now)
		}
		if err := db.CreateInBatches(&rows, postingBatchSize).Error; err != nil {
			return fmt.Errorf("failed to insert cash book transactions: %w", err)
		}
	}
	if len(batch.Vat) > 0 {
		rows := make([]models.VatTransactionModel, len(batch.Vat))
		for i, t := range batch.Vat {
			rows[i] = models.VatTransactionModelFromDomain(t, now)
		}
		if err := db.CreateInBatches(&rows, postingBatchSize).Error; err != nil {
			return fmt.Errorf("failed to insert vat transactions: %w", err)
		}
	}
	return nil
}

// DeleteByHeader removes every posting that originated from the header
func (r *GormPostingRepository) DeleteByHeader(ctx context.Context, headerID uuid.UUID) error {
	db := r.db.WithContext(ctx)
	where := "module = ? AND header_id = ?"
	if err := db.Where(where, purchase.ModulePurchases, headerID).Delete(&models.NominalTransactionModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete nominal transactions: %w", err)
	}
	if err := db.Where(where, purchase.ModulePurchases, headerID).Delete(&models.CashBookTransactionModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete cash book transactions: %w", err)
	}
	if err := db.Where(where, purchase.ModulePurchases, headerID).Delete(&models.VatTransactionModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete vat transactions: %w", err)
	}
	return nil
}

// Ensure GormPostingRepository implements purchase.PostingRepository
var _ purchase.PostingRepository = (*GormPostingRepository)(nil)
