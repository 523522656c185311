package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/Astemirdum/lending-service/lending/internal/errs"
	"github.com/Astemirdum/lending-service/lending/internal/model"
	"github.com/Astemirdum/lending-service/lending/internal/repository"
)

// txn implements repository.Querier over a state owned by the caller.
type txn struct {
	st *state
}

var _ repository.Querier = (*txn)(nil)

func (t *txn) CreateBook(_ context.Context, book model.Book) (model.Book, error) {
	t.st.bookSeq++
	book.ID = t.st.bookSeq
	t.st.books[book.ID] = book
	return book, nil
}

func (t *txn) GetBook(_ context.Context, id int64) (model.Book, error) {
	b, ok := t.st.books[id]
	if !ok {
		return model.Book{}, errs.ErrNotFound
	}
	return b, nil
}

func (t *txn) GetBookForUpdate(ctx context.Context, id int64) (model.Book, error) {
	return t.GetBook(ctx, id)
}

func (t *txn) ListBooks(_ context.Context) ([]model.Book, error) {
	books := make([]model.Book, 0, len(t.st.books))
	for _, b := range t.st.books {
		books = append(books, b)
	}
	slices.SortFunc(books, func(a, b model.Book) int { return cmp.Compare(a.ID, b.ID) })
	return books, nil
}

func (t *txn) UpdateBookInfo(_ context.Context, book model.Book) (model.Book, error) {
	b, ok := t.st.books[book.ID]
	if !ok {
		return model.Book{}, errs.ErrNotFound
	}
	b.Title, b.Author, b.Genre = book.Title, book.Author, book.Genre
	t.st.books[b.ID] = b
	return b, nil
}

func (t *txn) ResizeBook(_ context.Context, id int64, totalCopies int) (model.Book, error) {
	b, ok := t.st.books[id]
	if !ok {
		return model.Book{}, errs.ErrNotFound
	}
	b = b.Resize(totalCopies)
	t.st.books[id] = b
	return b, nil
}

func (t *txn) DeleteBook(_ context.Context, id int64) error {
	if _, ok := t.st.books[id]; !ok {
		return errs.ErrNotFound
	}
	delete(t.st.books, id)
	for lid, l := range t.st.loans {
		if l.BookID == id {
			delete(t.st.loans, lid)
		}
	}
	for rid, r := range t.st.requests {
		if r.BookID == id {
			delete(t.st.requests, rid)
		}
	}
	return nil
}

func (t *txn) CountOutstanding(_ context.Context, bookID int64) (int, error) {
	n := 0
	for _, l := range t.st.loans {
		if l.BookID == bookID && l.Status == model.LoanStatusIssued {
			n++
		}
	}
	for _, r := range t.st.requests {
		if r.BookID == bookID && r.Status == model.RequestStatusPending {
			n++
		}
	}
	return n, nil
}

func (t *txn) ReserveCopy(_ context.Context, bookID int64) error {
	b, ok := t.st.books[bookID]
	if !ok {
		return errs.ErrNotFound
	}
	if b.AvailableCopies <= 0 {
		return errs.ErrOutOfStock
	}
	b.AvailableCopies--
	t.st.books[bookID] = b
	return nil
}

func (t *txn) ReleaseCopy(_ context.Context, bookID int64) error {
	b, ok := t.st.books[bookID]
	if !ok {
		return errs.ErrNotFound
	}
	b.AvailableCopies = min(b.AvailableCopies+1, b.TotalCopies)
	t.st.books[bookID] = b
	return nil
}

func (t *txn) CreateLoan(_ context.Context, loan model.Loan) (model.Loan, error) {
	b, ok := t.st.books[loan.BookID]
	if !ok {
		return model.Loan{}, errs.ErrNotFound
	}
	t.st.loanSeq++
	loan.ID = t.st.loanSeq
	loan.Status = model.LoanStatusIssued
	loan.ReturnedAt = nil
	loan.BookTitle = b.Title
	t.st.loans[loan.ID] = loan
	return loan, nil
}

func (t *txn) GetLoanForUpdate(_ context.Context, id int64) (model.Loan, error) {
	l, ok := t.st.loans[id]
	if !ok {
		return model.Loan{}, errs.ErrNotFound
	}
	l.BookTitle = t.st.books[l.BookID].Title
	return l, nil
}

func (t *txn) MarkReturned(_ context.Context, id int64, at time.Time) error {
	l, ok := t.st.loans[id]
	if !ok {
		return errs.ErrNotFound
	}
	if l.Status != model.LoanStatusIssued {
		return errs.ErrAlreadyReturned
	}
	l.Status = model.LoanStatusReturned
	l.ReturnedAt = &at
	t.st.loans[id] = l
	return nil
}

func (t *txn) ListLoans(_ context.Context, f model.LoanFilter) ([]model.Loan, error) {
	loans := make([]model.Loan, 0)
	for _, l := range t.st.loans {
		switch {
		case f.StudentID != 0 && l.StudentID != f.StudentID,
			f.BookID != 0 && l.BookID != f.BookID,
			f.Status != "" && l.Status != f.Status,
			f.DueBefore != nil && (l.ReturnDate == nil || !l.ReturnDate.Before(*f.DueBefore)):
			continue
		}
		l.BookTitle = t.st.books[l.BookID].Title
		loans = append(loans, l)
	}
	slices.SortFunc(loans, compareLoans)
	return loans, nil
}

// compareLoans orders like "returned_at desc, issued_at desc, id desc" in
// Postgres, where nulls sort first under desc.
func compareLoans(a, b model.Loan) int {
	switch {
	case a.ReturnedAt == nil && b.ReturnedAt != nil:
		return -1
	case a.ReturnedAt != nil && b.ReturnedAt == nil:
		return 1
	case a.ReturnedAt != nil && b.ReturnedAt != nil && !a.ReturnedAt.Equal(*b.ReturnedAt):
		return b.ReturnedAt.Compare(*a.ReturnedAt)
	}
	if c := b.IssuedAt.Compare(a.IssuedAt); c != 0 {
		return c
	}
	return cmp.Compare(b.ID, a.ID)
}

func (t *txn) CreateRequest(_ context.Context, req model.BorrowRequest) (model.BorrowRequest, error) {
	b, ok := t.st.books[req.BookID]
	if !ok {
		return model.BorrowRequest{}, errs.ErrNotFound
	}
	t.st.requestSeq++
	req.ID = t.st.requestSeq
	req.Status = model.RequestStatusPending
	req.BookTitle = b.Title
	t.st.requests[req.ID] = req
	return req, nil
}

func (t *txn) GetRequestForUpdate(_ context.Context, id int64) (model.BorrowRequest, error) {
	r, ok := t.st.requests[id]
	if !ok {
		return model.BorrowRequest{}, errs.ErrNotFound
	}
	r.BookTitle = t.st.books[r.BookID].Title
	return r, nil
}

func (t *txn) SetRequestStatus(_ context.Context, id int64, from, to model.RequestStatus) error {
	r, ok := t.st.requests[id]
	if !ok {
		return errs.ErrNotFound
	}
	if r.Status != from {
		return errs.ErrInvalidState
	}
	r.Status = to
	t.st.requests[id] = r
	return nil
}

func (t *txn) ListRequests(_ context.Context, f model.RequestFilter) ([]model.BorrowRequest, error) {
	items := make([]model.BorrowRequest, 0)
	for _, r := range t.st.requests {
		switch {
		case f.StudentID != 0 && r.StudentID != f.StudentID,
			f.BookID != 0 && r.BookID != f.BookID,
			f.Status != "" && r.Status != f.Status:
			continue
		}
		r.BookTitle = t.st.books[r.BookID].Title
		items = append(items, r)
	}
	slices.SortFunc(items, func(a, b model.BorrowRequest) int { return cmp.Compare(b.ID, a.ID) })
	return items, nil
}

func (t *txn) Stats(_ context.Context, now time.Time) (model.Stats, error) {
	var st model.Stats
	st.TotalBooks = len(t.st.books)
	for _, b := range t.st.books {
		st.TotalCopies += b.TotalCopies
	}
	students := make(map[int64]struct{})
	for _, l := range t.st.loans {
		students[l.StudentID] = struct{}{}
		switch l.Status {
		case model.LoanStatusIssued:
			st.LoansIssued++
			if l.IsOverdue(now) {
				st.LoansOverdue++
			}
		case model.LoanStatusReturned:
			st.LoansReturned++
		}
	}
	for _, r := range t.st.requests {
		students[r.StudentID] = struct{}{}
		if r.Status == model.RequestStatusPending {
			st.PendingRequests++
		}
	}
	st.Students = len(students)
	return st, nil
}
