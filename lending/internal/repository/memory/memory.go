// Package memory is an in-process implementation of repository.Repository.
// A transaction works on a private copy of the state and swaps it in on
// success, so a failed transaction leaves nothing behind. The whole store is
// serialized by one mutex, which is fine for tests and local runs.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/Astemirdum/lending-service/lending/internal/model"
	"github.com/Astemirdum/lending-service/lending/internal/repository"
)

type state struct {
	books    map[int64]model.Book
	loans    map[int64]model.Loan
	requests map[int64]model.BorrowRequest

	bookSeq, loanSeq, requestSeq int64
}

func (s *state) clone() *state {
	c := *s
	c.books = maps.Clone(s.books)
	c.loans = maps.Clone(s.loans)
	c.requests = maps.Clone(s.requests)
	return &c
}

type Store struct {
	mu sync.Mutex
	st *state
}

var _ repository.Repository = (*Store)(nil)

func New() *Store {
	return &Store{st: &state{
		books:    make(map[int64]model.Book),
		loans:    make(map[int64]model.Loan),
		requests: make(map[int64]model.BorrowRequest),
	}}
}

func (s *Store) WithTx(ctx context.Context, fn func(q repository.Querier) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	work := s.st.clone()
	if err := fn(&txn{st: work}); err != nil {
		return err
	}
	s.st = work
	return nil
}

// do runs a single operation against the live state. Every txn method checks
// all of its preconditions before it writes, so no copy is needed here.
func do[T any](ctx context.Context, s *Store, fn func(t *txn) (T, error)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, err
	}
	return fn(&txn{st: s.st})
}

func exec(ctx context.Context, s *Store, fn func(t *txn) error) error {
	_, err := do(ctx, s, func(t *txn) (struct{}, error) { return struct{}{}, fn(t) })
	return err
}

func (s *Store) CreateBook(ctx context.Context, book model.Book) (model.Book, error) {
	return do(ctx, s, func(t *txn) (model.Book, error) { return t.CreateBook(ctx, book) })
}

func (s *Store) GetBook(ctx context.Context, id int64) (model.Book, error) {
	return do(ctx, s, func(t *txn) (model.Book, error) { return t.GetBook(ctx, id) })
}

func (s *Store) GetBookForUpdate(ctx context.Context, id int64) (model.Book, error) {
	return s.GetBook(ctx, id)
}

func (s *Store) ListBooks(ctx context.Context) ([]model.Book, error) {
	return do(ctx, s, func(t *txn) ([]model.Book, error) { return t.ListBooks(ctx) })
}

func (s *Store) UpdateBookInfo(ctx context.Context, book model.Book) (model.Book, error) {
	return do(ctx, s, func(t *txn) (model.Book, error) { return t.UpdateBookInfo(ctx, book) })
}

func (s *Store) ResizeBook(ctx context.Context, id int64, totalCopies int) (model.Book, error) {
	return do(ctx, s, func(t *txn) (model.Book, error) { return t.ResizeBook(ctx, id, totalCopies) })
}

func (s *Store) DeleteBook(ctx context.Context, id int64) error {
	return exec(ctx, s, func(t *txn) error { return t.DeleteBook(ctx, id) })
}

func (s *Store) CountOutstanding(ctx context.Context, bookID int64) (int, error) {
	return do(ctx, s, func(t *txn) (int, error) { return t.CountOutstanding(ctx, bookID) })
}

func (s *Store) ReserveCopy(ctx context.Context, bookID int64) error {
	return exec(ctx, s, func(t *txn) error { return t.ReserveCopy(ctx, bookID) })
}

func (s *Store) ReleaseCopy(ctx context.Context, bookID int64) error {
	return exec(ctx, s, func(t *txn) error { return t.ReleaseCopy(ctx, bookID) })
}

func (s *Store) CreateLoan(ctx context.Context, loan model.Loan) (model.Loan, error) {
	return do(ctx, s, func(t *txn) (model.Loan, error) { return t.CreateLoan(ctx, loan) })
}

func (s *Store) GetLoanForUpdate(ctx context.Context, id int64) (model.Loan, error) {
	return do(ctx, s, func(t *txn) (model.Loan, error) { return t.GetLoanForUpdate(ctx, id) })
}

func (s *Store) MarkReturned(ctx context.Context, id int64, at time.Time) error {
	return exec(ctx, s, func(t *txn) error { return t.MarkReturned(ctx, id, at) })
}

func (s *Store) ListLoans(ctx context.Context, filter model.LoanFilter) ([]model.Loan, error) {
	return do(ctx, s, func(t *txn) ([]model.Loan, error) { return t.ListLoans(ctx, filter) })
}

func (s *Store) CreateRequest(ctx context.Context, req model.BorrowRequest) (model.BorrowRequest, error) {
	return do(ctx, s, func(t *txn) (model.BorrowRequest, error) { return t.CreateRequest(ctx, req) })
}

func (s *Store) GetRequestForUpdate(ctx context.Context, id int64) (model.BorrowRequest, error) {
	return do(ctx, s, func(t *txn) (model.BorrowRequest, error) { return t.GetRequestForUpdate(ctx, id) })
}

func (s *Store) SetRequestStatus(ctx context.Context, id int64, from, to model.RequestStatus) error {
	return exec(ctx, s, func(t *txn) error { return t.SetRequestStatus(ctx, id, from, to) })
}

func (s *Store) ListRequests(ctx context.Context, filter model.RequestFilter) ([]model.BorrowRequest, error) {
	return do(ctx, s, func(t *txn) ([]model.BorrowRequest, error) { return t.ListRequests(ctx, filter) })
}

func (s *Store) Stats(ctx context.Context, now time.Time) (model.Stats, error) {
	return do(ctx, s, func(t *txn) (model.Stats, error) { return t.Stats(ctx, now) })
}
