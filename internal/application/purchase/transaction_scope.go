package purchase

import (
	"context"

	"github.com/erp/ledger/internal/domain/purchase"
)

// TransactionScope provides transactional access to the ledger repositories.
// Everything done through one Execute call commits or rolls back together.
type TransactionScope interface {
	// Execute runs fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides the repositories bound to one transaction.
//
// Headers is the only aggregate root. Lines, matches and postings are stored
// separately so that matches can be looked up from either side and postings
// can be replaced wholesale.
type TransactionalRepositories interface {
	Headers() purchase.HeaderRepository
	Lines() purchase.LineRepository
	Matches() purchase.MatchRepository
	Postings() purchase.PostingRepository
	References() purchase.ReferenceReader
}

// NoOpTransactionScope runs functions without a real transaction.
// This is useful for testing with in-memory repositories.
type NoOpTransactionScope struct {
	headers    purchase.HeaderRepository
	lines      purchase.LineRepository
	matches    purchase.MatchRepository
	postings   purchase.PostingRepository
	references purchase.ReferenceReader
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	headers purchase.HeaderRepository,
	lines purchase.LineRepository,
	matches purchase.MatchRepository,
	postings purchase.PostingRepository,
	references purchase.ReferenceReader,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		headers:    headers,
		lines:      lines,
		matches:    matches,
		postings:   postings,
		references: references,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Headers returns the header repository.
func (s *NoOpTransactionScope) Headers() purchase.HeaderRepository { return s.headers }

// Lines returns the line repository.
func (s *NoOpTransactionScope) Lines() purchase.LineRepository { return s.lines }

// Matches returns the match repository.
func (s *NoOpTransactionScope) Matches() purchase.MatchRepository { return s.matches }

// Postings returns the posting repository.
func (s *NoOpTransactionScope) Postings() purchase.PostingRepository { return s.postings }

// References returns the master data reader.
func (s *NoOpTransactionScope) References() purchase.ReferenceReader { return s.references }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
