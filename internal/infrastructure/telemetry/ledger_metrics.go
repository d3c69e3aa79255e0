package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// LedgerMeterName is the meter the purchase ledger metrics are registered under.
const LedgerMeterName = "purchase-ledger"

// LedgerMetrics records purchase ledger business metrics.
//
// Metrics:
//   - ledger.transactions.total: committed creates, edits and voids by operation and header type
//   - ledger.rejections.total: requests refused with a domain error, by operation and error code
//   - ledger.postings.total: nominal, cash book and VAT rows written, by header type
//   - ledger.operation.duration: wall time of a create, edit or void
type LedgerMetrics struct {
	transactions *Counter
	rejections   *Counter
	postings     *Counter
	duration     *Histogram
	logger       *zap.Logger
}

// NewLedgerMetrics creates the ledger instruments on meter.
func NewLedgerMetrics(meter metric.Meter, logger *zap.Logger) (*LedgerMetrics, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	transactions, err := NewCounter(meter, "ledger.transactions.total",
		"Number of committed purchase ledger transactions", "{transaction}")
	if err != nil {
		return nil, fmt.Errorf("failed to create transactions counter: %w", err)
	}
	rejections, err := NewCounter(meter, "ledger.rejections.total",
		"Number of purchase ledger requests rejected by validation", "{request}")
	if err != nil {
		return nil, fmt.Errorf("failed to create rejections counter: %w", err)
	}
	postings, err := NewCounter(meter, "ledger.postings.total",
		"Number of ledger postings written", "{posting}")
	if err != nil {
		return nil, fmt.Errorf("failed to create postings counter: %w", err)
	}
	duration, err := NewHistogram(meter, HistogramOpts{
		Name:        "ledger.operation.duration",
		Description: "Duration of purchase ledger operations",
		Unit:        "s",
		Boundaries:  OperationDurationBuckets,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	logger.Info("Ledger metrics initialized")
	return &LedgerMetrics{
		transactions: transactions,
		rejections:   rejections,
		postings:     postings,
		duration:     duration,
		logger:       logger,
	}, nil
}

// RecordTransaction counts a committed operation.
func (m *LedgerMetrics) RecordTransaction(ctx context.Context, operation, headerType string) {
	m.transactions.Inc(ctx,
		AttrOperation.String(operation),
		AttrHeaderType.String(headerType),
	)
}

// RecordRejection counts an operation refused with a domain error code.
func (m *LedgerMetrics) RecordRejection(ctx context.Context, operation, code string) {
	m.rejections.Inc(ctx,
		AttrOperation.String(operation),
		AttrErrorCode.String(code),
	)
}

// RecordPostings counts the postings written for one header.
func (m *LedgerMetrics) RecordPostings(ctx context.Context, headerType string, n int) {
	if n <= 0 {
		return
	}
	m.postings.Add(ctx, int64(n),
		AttrHeaderType.String(headerType),
		AttrModule.String("PL"),
	)
}

// RecordDuration observes how long an operation took.
func (m *LedgerMetrics) RecordDuration(ctx context.Context, operation string, d time.Duration) {
	m.duration.RecordDuration(ctx, d, AttrOperation.String(operation))
}
