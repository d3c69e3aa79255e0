package purchase

import (
	"context"
	"fmt"
	"time"

	"github.com/erp/ledger/internal/domain/purchase"
	"github.com/erp/ledger/internal/domain/shared"
	"github.com/erp/ledger/internal/infrastructure/logger"
	"github.com/erp/ledger/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	operationCreate = "create"
	operationEdit   = "edit"
	operationVoid   = "void"
)

// TransactionService creates, edits and voids purchase ledger transactions.
// Each call is one unit of work: every header it touches is row locked and
// all changes commit together or not at all.
type TransactionService struct {
	scope     TransactionScope
	postings  *purchase.PostingEngine
	matching  *purchase.MatchingEngine
	voids     *purchase.VoidEngine
	publisher shared.EventPublisher
	metrics   *telemetry.LedgerMetrics
	logger    *zap.Logger
	now       func() time.Time
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(
	scope TransactionScope,
	accounts purchase.PostingAccounts,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *TransactionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TransactionService{
		scope:     scope,
		postings:  purchase.NewPostingEngine(accounts),
		matching:  purchase.NewMatchingEngine(),
		voids:     purchase.NewVoidEngine(),
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// SetLedgerMetrics sets the metrics recorder
func (s *TransactionService) SetLedgerMetrics(m *telemetry.LedgerMetrics) {
	s.metrics = m
}

// Create records a new header together with its lines and matches.
func (s *TransactionService) Create(ctx context.Context, req CreateTransactionRequest) (*TransactionView, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "purchase_transaction", operationCreate)
	defer span.End()
	defer s.observe(ctx, operationCreate, time.Now())
	telemetry.SetAttributes(span,
		telemetry.SpanAttrHeaderType, req.Type.String(),
		telemetry.SpanAttrSupplierID, req.Fields.SupplierID.String(),
		telemetry.SpanAttrLineCount, len(req.Lines),
		telemetry.SpanAttrMatchCount, len(req.Matches),
	)

	var view *TransactionView
	var header *purchase.Header
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		h, err := purchase.NewHeader(req.Type, req.Period, req.Fields)
		if err != nil {
			return err
		}
		refs, err := resolveReferences(ctx, repos.References(), h, req.Lines)
		if err != nil {
			return err
		}
		rec, err := purchase.ReconcileLines(h, nil, req.Lines)
		if err != nil {
			return err
		}

		counterparts, err := lockCounterparts(ctx, repos.Headers(), purchase.CounterpartIDs(h.ID, nil, req.Matches))
		if err != nil {
			return err
		}
		plan, err := s.matching.Plan(h, nil, counterparts, req.Matches)
		if err != nil {
			return err
		}

		if err := repos.Headers().Create(ctx, h); err != nil {
			return fmt.Errorf("failed to create header: %w", err)
		}
		batch, err := s.post(ctx, repos, h, rec, refs)
		if err != nil {
			return err
		}
		if err := persistPlan(ctx, repos, plan); err != nil {
			return err
		}

		h.AddDomainEvent(purchase.NewTransactionCreatedEvent(h, batch.Len()))
		header = h
		view = &TransactionView{Header: h, Lines: rec.Lines, Matches: plan.Create, Postings: &batch}
		return nil
	})
	if err != nil {
		s.reject(ctx, span, operationCreate, err)
		return nil, err
	}

	s.committed(ctx, operationCreate, header, view.Postings.Len())
	return view, nil
}

// Edit replaces a header's fields, lines and matches. Postings are derived
// again from scratch.
func (s *TransactionService) Edit(ctx context.Context, req EditTransactionRequest) (*TransactionView, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "purchase_transaction", operationEdit)
	defer span.End()
	defer s.observe(ctx, operationEdit, time.Now())
	telemetry.SetAttributes(span,
		telemetry.SpanAttrHeaderID, req.ID.String(),
		telemetry.SpanAttrLineCount, len(req.Lines),
		telemetry.SpanAttrMatchCount, len(req.Matches),
	)

	var view *TransactionView
	var header *purchase.Header
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		h, counterparts, existing, err := lockHeaderWithCounterparts(ctx, repos, req.ID, req.Matches)
		if err != nil {
			return err
		}
		if err := h.Amend(req.Type, req.Fields); err != nil {
			return err
		}
		refs, err := resolveReferences(ctx, repos.References(), h, req.Lines)
		if err != nil {
			return err
		}
		current, err := repos.Lines().FindByHeader(ctx, h.ID)
		if err != nil {
			return fmt.Errorf("failed to load lines: %w", err)
		}
		rec, err := purchase.ReconcileLines(h, current, req.Lines)
		if err != nil {
			return err
		}
		plan, err := s.matching.Plan(h, existing, counterparts, req.Matches)
		if err != nil {
			return err
		}

		if len(rec.Removed) > 0 {
			ids := make([]uuid.UUID, len(rec.Removed))
			for i, l := range rec.Removed {
				ids[i] = l.ID
			}
			if err := repos.Lines().DeleteByIDs(ctx, ids); err != nil {
				return fmt.Errorf("failed to delete lines: %w", err)
			}
		}
		batch, err := s.post(ctx, repos, h, rec, refs)
		if err != nil {
			return err
		}
		if err := persistPlan(ctx, repos, plan); err != nil {
			return err
		}
		if err := repos.Headers().SaveWithLock(ctx, h); err != nil {
			return err
		}

		h.AddDomainEvent(purchase.NewTransactionEditedEvent(h, plan))
		header = h
		view = &TransactionView{Header: h, Lines: rec.Lines, Matches: mergeMatches(existing, plan), Postings: &batch}
		return nil
	})
	if err != nil {
		s.reject(ctx, span, operationEdit, err)
		return nil, err
	}

	s.committed(ctx, operationEdit, header, view.Postings.Len())
	return view, nil
}

// Void reverses a header's postings and matches. Voiding a header twice is
// reported through VoidResult.Success rather than an error.
func (s *TransactionService) Void(ctx context.Context, id uuid.UUID) (*VoidResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "purchase_transaction", operationVoid)
	defer span.End()
	defer s.observe(ctx, operationVoid, time.Now())
	telemetry.SetAttribute(span, telemetry.SpanAttrHeaderID, id.String())

	var result *VoidResult
	var header *purchase.Header
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		h, counterparts, existing, err := lockHeaderWithCounterparts(ctx, repos, id, nil)
		if err != nil {
			return err
		}
		lines, err := repos.Lines().FindByHeader(ctx, h.ID)
		if err != nil {
			return fmt.Errorf("failed to load lines: %w", err)
		}

		outcome, err := s.voids.Void(h, lines, existing, counterparts, s.now())
		if err != nil {
			return err
		}
		if !outcome.Voided {
			result = &VoidResult{Success: false, Message: "Transaction has already been voided", Header: h}
			return nil
		}

		if err := repos.Postings().DeleteByHeader(ctx, h.ID); err != nil {
			return fmt.Errorf("failed to delete postings: %w", err)
		}
		if err := repos.Lines().SaveAll(ctx, lines); err != nil {
			return fmt.Errorf("failed to save lines: %w", err)
		}
		if len(outcome.Released) > 0 {
			ids := make([]uuid.UUID, len(outcome.Released))
			for i, m := range outcome.Released {
				ids[i] = m.ID
			}
			if err := repos.Matches().Delete(ctx, ids); err != nil {
				return fmt.Errorf("failed to delete matches: %w", err)
			}
		}
		if err := saveHeaders(ctx, repos.Headers(), outcome.Touched); err != nil {
			return err
		}
		if err := repos.Headers().SaveWithLock(ctx, h); err != nil {
			return err
		}

		h.AddDomainEvent(purchase.NewTransactionVoidedEvent(h, outcome))
		header = h
		result = &VoidResult{Success: true, Header: h}
		return nil
	})
	if err != nil {
		s.reject(ctx, span, operationVoid, err)
		return nil, err
	}

	if !result.Success {
		telemetry.AddEvent(span, "already_voided")
		logger.WithLogger(ctx, s.logger).Info("Void skipped, transaction already voided",
			zap.String("header_id", id.String()))
		return result, nil
	}
	s.committed(ctx, operationVoid, header, 0)
	return result, nil
}

// GetTransaction loads a header with its lines, matches and postings. A
// stored paid figure that no longer agrees with the matches is logged.
func (s *TransactionService) GetTransaction(ctx context.Context, id uuid.UUID) (*TransactionView, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "purchase_transaction", "get")
	defer span.End()

	var view *TransactionView
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		h, err := repos.Headers().FindByID(ctx, id)
		if err != nil {
			return err
		}
		lines, err := repos.Lines().FindByHeader(ctx, id)
		if err != nil {
			return err
		}
		matches, err := repos.Matches().FindTouching(ctx, id)
		if err != nil {
			return err
		}
		postings, err := repos.Postings().FindByHeader(ctx, id)
		if err != nil {
			return err
		}
		view = &TransactionView{Header: h, Lines: lines, Matches: matches, Postings: postings}
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if paid := purchase.ComputePaid(id, view.Matches); !paid.Equal(view.Header.Paid) {
		telemetry.AddEvent(span, "paid_drift", telemetry.SpanAttrHeaderID, id.String())
		logger.WithLogger(ctx, s.logger).Error("Stored paid disagrees with matches",
			zap.String("header_id", id.String()),
			zap.String("stored_paid", view.Header.Paid.StringFixed(2)),
			zap.String("matched_paid", paid.StringFixed(2)),
		)
	}
	return view, nil
}

// ListOutstanding lists a supplier's live headers that still have a balance.
func (s *TransactionService) ListOutstanding(ctx context.Context, supplierID uuid.UUID) ([]*purchase.Header, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "purchase_transaction", "list_outstanding")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrSupplierID, supplierID.String())

	var headers []*purchase.Header
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		headers, err = repos.Headers().FindOutstandingBySupplier(ctx, supplierID)
		return err
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return headers, nil
}

// post derives and stores the header's postings and saves the lines with
// their posting references.
func (s *TransactionService) post(ctx context.Context, repos TransactionalRepositories, h *purchase.Header, rec *purchase.LineReconciliation, refs *resolvedReferences) (purchase.PostingBatch, error) {
	batch := s.postings.Derive(purchase.PostingInput{
		Header:   h,
		Lines:    rec.Lines,
		CashBook: refs.cashBook,
		VatRates: refs.vatRates,
	})
	batch.Link(rec.Lines)

	if err := repos.Postings().Replace(ctx, h.ID, batch); err != nil {
		return batch, fmt.Errorf("failed to replace postings: %w", err)
	}
	if err := repos.Lines().SaveAll(ctx, rec.Lines); err != nil {
		return batch, fmt.Errorf("failed to save lines: %w", err)
	}
	if s.metrics != nil {
		s.metrics.RecordPostings(ctx, h.Type.String(), batch.Len())
	}
	return batch, nil
}

func (s *TransactionService) observe(ctx context.Context, operation string, start time.Time) {
	if s.metrics != nil {
		s.metrics.RecordDuration(ctx, operation, time.Since(start))
	}
}

func (s *TransactionService) committed(ctx context.Context, operation string, h *purchase.Header, postings int) {
	telemetry.SetOK(trace.SpanFromContext(ctx))
	if s.metrics != nil {
		s.metrics.RecordTransaction(ctx, operation, h.Type.String())
	}
	logger.WithLogger(ctx, s.logger).Info("Purchase transaction committed",
		zap.String("operation", operation),
		zap.String("header_id", h.ID.String()),
		zap.String("type", h.Type.String()),
		zap.String("total", h.Total.StringFixed(2)),
		zap.String("due", h.Due.StringFixed(2)),
		zap.Int("postings", postings),
	)

	events := h.GetDomainEvents()
	h.ClearDomainEvents()
	if s.publisher == nil || len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		logger.WithLogger(ctx, s.logger).Error("Failed to publish purchase events",
			zap.String("header_id", h.ID.String()),
			zap.Error(err),
		)
	}
}

func (s *TransactionService) reject(ctx context.Context, span trace.Span, operation string, err error) {
	telemetry.RecordError(span, err)
	log := logger.WithLogger(ctx, s.logger)
	de, ok := shared.AsDomainError(err)
	if !ok {
		log.Error("Purchase transaction failed",
			zap.String("operation", operation),
			zap.Error(err),
		)
		return
	}
	telemetry.SetAttribute(span, telemetry.SpanAttrErrorCode, de.Code)
	if s.metrics != nil {
		s.metrics.RecordRejection(ctx, operation, de.Code)
	}
	log.Warn("Purchase transaction rejected",
		zap.String("operation", operation),
		zap.String("code", de.Code),
		zap.String("reason", de.Message),
	)
}
