package persistence

import (
	"context"
	"testing"

	"github.com/erp/ledger/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeeder_Seed(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	first, err := NewSeeder(db.DB, nil).Seed(ctx)
	require.NoError(t, err)
	second, err := NewSeeder(db.DB, nil).Seed(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	var nominals int64
	require.NoError(t, db.DB.Model(&models.NominalModel{}).Count(&nominals).Error)
	assert.Equal(t, int64(len(nominalChart)), nominals)

	var bank models.NominalModel
	require.NoError(t, db.DB.Where("id = ?", first.BankNominal).First(&bank).Error)
	assert.Equal(t, NominalBankAccount, bank.Name)
	require.NotNil(t, bank.ParentID)

	var parent models.NominalModel
	require.NoError(t, db.DB.Where("id = ?", *bank.ParentID).First(&parent).Error)
	assert.Equal(t, NominalCurrentAssets, parent.Name)

	refs := NewGormReferenceRepository(db.DB)
	cb, err := refs.FindCashBook(ctx, first.BankCashBook)
	require.NoError(t, err)
	assert.Equal(t, first.BankNominal, cb.NominalID)

	codes, err := refs.FindVatCodes(ctx, []uuid.UUID{first.StandardVatCode, uuid.New()})
	require.NoError(t, err)
	require.Len(t, codes, 1)
	assert.True(t, codes[first.StandardVatCode].Rate.Equal(decimal.NewFromInt(20)))

	supplier, err := refs.FindSupplier(ctx, first.DemoSupplier)
	require.NoError(t, err)
	assert.Equal(t, SeedSupplier, supplier.Code)
}
