package purchase

import (
	"context"

	"github.com/google/uuid"
)

// HeaderRepository defines persistence for headers
type HeaderRepository interface {
	// FindByID finds a header without locking it
	FindByID(ctx context.Context, id uuid.UUID) (*Header, error)

	// FindByIDsForUpdate locks every header in ids, in ascending id order.
	// Missing ids are simply absent from the result.
	FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]*Header, error)

	// FindOutstandingBySupplier lists live headers with a non-zero due
	FindOutstandingBySupplier(ctx context.Context, supplierID uuid.UUID) ([]*Header, error)

	// Create inserts a new header
	Create(ctx context.Context, header *Header) error

	// SaveWithLock updates a header if its version is unchanged and bumps it
	SaveWithLock(ctx context.Context, header *Header) error
}

// LineRepository defines persistence for lines
type LineRepository interface {
	// FindByHeader returns a header's lines ordered by line number
	FindByHeader(ctx context.Context, headerID uuid.UUID) ([]*Line, error)

	// SaveAll inserts or updates lines
	SaveAll(ctx context.Context, lines []*Line) error

	// DeleteByIDs removes lines
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) error
}

// MatchRepository defines persistence for match records. The two sides are
// looked up independently.
type MatchRepository interface {
	FindByMatchedBy(ctx context.Context, headerID uuid.UUID) ([]*Match, error)
	FindByMatchedTo(ctx context.Context, headerID uuid.UUID) ([]*Match, error)

	// FindTouching returns records where the header is either side
	FindTouching(ctx context.Context, headerID uuid.UUID) ([]*Match, error)

	Create(ctx context.Context, matches []*Match) error
	Update(ctx context.Context, matches []*Match) error
	Delete(ctx context.Context, ids []uuid.UUID) error
}

// PostingRepository defines persistence for the postings of a header
type PostingRepository interface {
	// FindByHeader loads every posting a header made
	FindByHeader(ctx context.Context, headerID uuid.UUID) (*PostingBatch, error)

	// Replace deletes the header's postings and inserts batch
	Replace(ctx context.Context, headerID uuid.UUID, batch PostingBatch) error

	// DeleteByHeader deletes the header's postings
	DeleteByHeader(ctx context.Context, headerID uuid.UUID) error
}
