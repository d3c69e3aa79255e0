package purchase

import (
	"context"
	"errors"
	"fmt"

	"github.com/erp/ledger/internal/domain/purchase"
	"github.com/erp/ledger/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type resolvedReferences struct {
	cashBook *purchase.CashBook
	vatRates map[uuid.UUID]decimal.Decimal
}

// resolveReferences checks every master data reference of a request before
// any domain logic runs.
func resolveReferences(ctx context.Context, refs purchase.ReferenceReader, h *purchase.Header, lines []purchase.LineCandidate) (*resolvedReferences, error) {
	if _, err := refs.FindSupplier(ctx, h.SupplierID); err != nil {
		return nil, referenceError("supplier", err)
	}

	resolved := &resolvedReferences{vatRates: map[uuid.UUID]decimal.Decimal{}}
	if h.CashBookID != nil {
		cb, err := refs.FindCashBook(ctx, *h.CashBookID)
		if err != nil {
			return nil, referenceError("cash_book", err)
		}
		resolved.cashBook = cb
	}

	var nominalIDs, vatCodeIDs []uuid.UUID
	for _, l := range lines {
		if l.Delete {
			continue
		}
		if l.NominalID != nil {
			nominalIDs = append(nominalIDs, *l.NominalID)
		}
		if l.VatCodeID != nil {
			vatCodeIDs = append(vatCodeIDs, *l.VatCodeID)
		}
	}

	if len(nominalIDs) > 0 {
		nominals, err := refs.FindNominals(ctx, nominalIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to load nominals: %w", err)
		}
		for _, id := range nominalIDs {
			if _, ok := nominals[id]; !ok {
				return nil, purchase.NewInvalidChoiceError("nominal")
			}
		}
	}
	if len(vatCodeIDs) > 0 {
		codes, err := refs.FindVatCodes(ctx, vatCodeIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to load vat codes: %w", err)
		}
		for _, id := range vatCodeIDs {
			code, ok := codes[id]
			if !ok {
				return nil, purchase.NewInvalidChoiceError("vat_code")
			}
			resolved.vatRates[id] = code.Rate
		}
	}
	return resolved, nil
}

func referenceError(field string, err error) error {
	if errors.Is(err, shared.ErrNotFound) {
		return purchase.NewInvalidChoiceError(field)
	}
	return fmt.Errorf("failed to load %s: %w", field, err)
}

// lockHeaderWithCounterparts locks the header and every header it is or
// will be matched with. All rows are locked in ascending id order so two
// edits touching the same headers cannot deadlock. The match records are
// read again once the header is locked, since they may have changed
// between the first read and the lock.
func lockHeaderWithCounterparts(ctx context.Context, repos TransactionalRepositories, id uuid.UUID, candidates []purchase.MatchCandidate) (*purchase.Header, map[uuid.UUID]*purchase.Header, []*purchase.Match, error) {
	existing, err := repos.Matches().FindTouching(ctx, id)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load matches: %w", err)
	}

	ids := append(purchase.CounterpartIDs(id, existing, candidates), id)
	purchase.SortIDs(ids)
	locked, err := lockCounterparts(ctx, repos.Headers(), ids)
	if err != nil {
		return nil, nil, nil, err
	}
	h, ok := locked[id]
	if !ok {
		return nil, nil, nil, shared.ErrNotFound
	}
	delete(locked, id)

	existing, err = repos.Matches().FindTouching(ctx, id)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load matches: %w", err)
	}
	var missing []uuid.UUID
	for _, cid := range purchase.CounterpartIDs(id, existing, candidates) {
		if _, ok := locked[cid]; !ok {
			missing = append(missing, cid)
		}
	}
	if len(missing) > 0 {
		more, err := lockCounterparts(ctx, repos.Headers(), missing)
		if err != nil {
			return nil, nil, nil, err
		}
		for cid, cp := range more {
			locked[cid] = cp
		}
	}
	return h, locked, existing, nil
}

// lockCounterparts locks ids and indexes them. Unknown ids are left out;
// the matching engine rejects candidates that point at them.
func lockCounterparts(ctx context.Context, headers purchase.HeaderRepository, ids []uuid.UUID) (map[uuid.UUID]*purchase.Header, error) {
	out := make(map[uuid.UUID]*purchase.Header, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	locked, err := headers.FindByIDsForUpdate(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to lock headers: %w", err)
	}
	for _, h := range locked {
		out[h.ID] = h
	}
	return out, nil
}

// persistPlan stores the match changes and the counterparts they moved.
func persistPlan(ctx context.Context, repos TransactionalRepositories, plan *purchase.MatchPlan) error {
	if len(plan.Delete) > 0 {
		ids := make([]uuid.UUID, len(plan.Delete))
		for i, m := range plan.Delete {
			ids[i] = m.ID
		}
		if err := repos.Matches().Delete(ctx, ids); err != nil {
			return fmt.Errorf("failed to delete matches: %w", err)
		}
	}
	if len(plan.Update) > 0 {
		if err := repos.Matches().Update(ctx, plan.Update); err != nil {
			return fmt.Errorf("failed to update matches: %w", err)
		}
	}
	if len(plan.Create) > 0 {
		if err := repos.Matches().Create(ctx, plan.Create); err != nil {
			return fmt.Errorf("failed to create matches: %w", err)
		}
	}
	return saveHeaders(ctx, repos.Headers(), plan.Touched)
}

func saveHeaders(ctx context.Context, repo purchase.HeaderRepository, headers []*purchase.Header) error {
	for _, h := range headers {
		if err := repo.SaveWithLock(ctx, h); err != nil {
			return err
		}
	}
	return nil
}

// mergeMatches returns the records touching a header after plan is applied.
func mergeMatches(existing []*purchase.Match, plan *purchase.MatchPlan) []*purchase.Match {
	replaced := make(map[uuid.UUID]*purchase.Match, len(plan.Update)+len(plan.Delete))
	for _, m := range plan.Update {
		replaced[m.ID] = m
	}
	for _, m := range plan.Delete {
		replaced[m.ID] = nil
	}
	out := make([]*purchase.Match, 0, len(existing)+len(plan.Create))
	for _, m := range existing {
		r, ok := replaced[m.ID]
		switch {
		case !ok:
			out = append(out, m)
		case r != nil:
			out = append(out, r)
		}
	}
	return append(out, plan.Create...)
}
