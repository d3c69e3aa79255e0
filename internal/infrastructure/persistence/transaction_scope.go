package persistence

import (
	"context"

	apppurchase "github.com/erp/ledger/internal/application/purchase"
	"github.com/erp/ledger/internal/domain/purchase"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// If fn returns an error the transaction is rolled back, otherwise committed.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos apppurchase.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories hands out repositories bound to one transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) Headers() purchase.HeaderRepository {
	return NewGormPurchaseHeaderRepository(r.tx)
}

func (r *gormTransactionalRepositories) Lines() purchase.LineRepository {
	return NewGormPurchaseLineRepository(r.tx)
}

func (r *gormTransactionalRepositories) Matches() purchase.MatchRepository {
	return NewGormPurchaseMatchRepository(r.tx)
}

func (r *gormTransactionalRepositories) Postings() purchase.PostingRepository {
	return NewGormPostingRepository(r.tx)
}

func (r *gormTransactionalRepositories) References() purchase.ReferenceReader {
	return NewGormReferenceRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ apppurchase.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ apppurchase.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
