package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/erp/ledger/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Names of the seeded master data. Seeding is keyed on these, so running
// it twice leaves the first run's ids in place.
const (
	NominalAssets          = "Assets"
	NominalCurrentAssets   = "Current Assets"
	NominalBankAccount     = "Bank Account"
	NominalLiabilities     = "Liabilities"
	NominalPurchaseControl = "Purchase Ledger Control"
	NominalVatControl      = "Vat Control"
	NominalExpenses        = "Expenses"
	NominalPurchases       = "Purchases"

	SeedVatCode   = "S"
	SeedCashBook  = "Bank"
	SeedSupplier  = "DEMO"
	seedVatRate   = "20"
	seedVatDesc   = "Standard rate"
	seedSupplierN = "Demo Supplier Ltd"
)

// SeedResult carries the ids a caller needs to wire posting.* config and
// to raise a first transaction.
type SeedResult struct {
	PurchaseControlNominal uuid.UUID
	VatNominal             uuid.UUID
	PurchasesNominal       uuid.UUID
	BankNominal            uuid.UUID
	StandardVatCode        uuid.UUID
	BankCashBook           uuid.UUID
	DemoSupplier           uuid.UUID
}

type nominalSeed struct {
	name   string
	parent string
}

// parents are listed before their children
var nominalChart = []nominalSeed{
	{NominalAssets, ""},
	{NominalCurrentAssets, NominalAssets},
	{NominalBankAccount, NominalCurrentAssets},
	{NominalLiabilities, ""},
	{NominalPurchaseControl, NominalLiabilities},
	{NominalVatControl, NominalLiabilities},
	{NominalExpenses, ""},
	{NominalPurchases, NominalExpenses},
}

// Seeder installs the minimum master data the ledger needs to post.
type Seeder struct {
	db     *gorm.DB
	logger *zap.Logger
	now    func() time.Time
}

// NewSeeder creates a Seeder over db.
func NewSeeder(db *gorm.DB, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{db: db, logger: logger, now: time.Now}
}

// Seed runs in one transaction and is idempotent.
func (s *Seeder) Seed(ctx context.Context) (*SeedResult, error) {
	var result SeedResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := make(map[string]uuid.UUID, len(nominalChart))
		for _, n := range nominalChart {
			var parent *uuid.UUID
			if n.parent != "" {
				p := ids[n.parent]
				parent = &p
			}
			m := models.NominalModel{Name: n.name, ParentID: parent}
			if err := s.firstOrCreate(tx, &m, "name = ?", n.name); err != nil {
				return fmt.Errorf("seed nominal %q: %w", n.name, err)
			}
			ids[n.name] = m.ID
		}

		vat := models.VatCodeModel{Code: SeedVatCode, Description: seedVatDesc, Rate: decimal.RequireFromString(seedVatRate)}
		if err := s.firstOrCreate(tx, &vat, "code = ?", SeedVatCode); err != nil {
			return fmt.Errorf("seed vat code: %w", err)
		}

		bank := models.CashBookModel{Name: SeedCashBook, NominalID: ids[NominalBankAccount]}
		if err := s.firstOrCreate(tx, &bank, "name = ?", SeedCashBook); err != nil {
			return fmt.Errorf("seed cash book: %w", err)
		}

		supplier := models.SupplierModel{Code: SeedSupplier, Name: seedSupplierN}
		if err := s.firstOrCreate(tx, &supplier, "code = ?", SeedSupplier); err != nil {
			return fmt.Errorf("seed supplier: %w", err)
		}

		result = SeedResult{
			PurchaseControlNominal: ids[NominalPurchaseControl],
			VatNominal:             ids[NominalVatControl],
			PurchasesNominal:       ids[NominalPurchases],
			BankNominal:            ids[NominalBankAccount],
			StandardVatCode:        vat.ID,
			BankCashBook:           bank.ID,
			DemoSupplier:           supplier.ID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Master data seeded",
		zap.String("purchase_control_nominal", result.PurchaseControlNominal.String()),
		zap.String("vat_nominal", result.VatNominal.String()),
		zap.String("bank_cash_book", result.BankCashBook.String()),
	)
	return &result, nil
}

// firstOrCreate loads the row matching cond into dest, or inserts dest with
// a fresh id when there is none.
func (s *Seeder) firstOrCreate(tx *gorm.DB, dest models.Stampable, cond string, arg any) error {
	var n int64
	if err := tx.Model(dest).Where(cond, arg).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return tx.Where(cond, arg).First(dest).Error
	}
	dest.Stamp(uuid.New(), s.now())
	return tx.Create(dest).Error
}
