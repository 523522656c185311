package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Astemirdum/lending-service/lending/internal/errs"
	"github.com/Astemirdum/lending-service/lending/internal/model"
	"github.com/Astemirdum/lending-service/lending/internal/repository"
	"github.com/Astemirdum/lending-service/pkg/kafka"
)

// issue reserves a copy and records the loan inside the caller's transaction.
func issue(ctx context.Context, q repository.Querier, bookID, studentID int64, issuedAt, due time.Time) (model.Loan, error) {
	if err := q.ReserveCopy(ctx, bookID); err != nil {
		return model.Loan{}, err
	}
	return q.CreateLoan(ctx, model.Loan{
		BookID:     bookID,
		StudentID:  studentID,
		Status:     model.LoanStatusIssued,
		IssuedAt:   issuedAt,
		ReturnDate: &due,
	})
}

// IssueDirect lends a book without a borrow request.
func (s *Service) IssueDirect(ctx context.Context, req model.IssueRequest) (model.Loan, error) {
	if err := validateID("bookId", req.BookID); err != nil {
		return model.Loan{}, err
	}
	if err := validateID("studentId", req.StudentID); err != nil {
		return model.Loan{}, err
	}
	now := s.now()
	due := s.dueDate(now)
	if req.DueDate != nil {
		due = req.DueDate.Time
		if !due.After(now) {
			return model.Loan{}, errs.NewValidationError("dueDate", "must be in the future")
		}
	}

	var loan model.Loan
	err := s.repo.WithTx(ctx, func(q repository.Querier) error {
		var err error
		loan, err = issue(ctx, q, req.BookID, req.StudentID, now, due)
		return err
	})
	if err != nil {
		return model.Loan{}, err
	}

	s.publish(ctx, kafka.Event{
		Type:      kafka.EventLoanIssued,
		BookID:    loan.BookID,
		StudentID: loan.StudentID,
		LoanID:    loan.ID,
		DueDate:   loan.ReturnDate,
	})
	return loan, nil
}

// ReturnLoan closes an issued loan and releases its copy in one transaction.
// A second return of the same loan fails with errs.ErrAlreadyReturned and releases nothing.
func (s *Service) ReturnLoan(ctx context.Context, loanID int64) (model.Loan, error) {
	if err := validateID("loanId", loanID); err != nil {
		return model.Loan{}, err
	}
	now := s.now()

	var loan model.Loan
	err := s.repo.WithTx(ctx, func(q repository.Querier) error {
		var err error
		loan, err = q.GetLoanForUpdate(ctx, loanID)
		if err != nil {
			return err
		}
		if loan.Status != model.LoanStatusIssued {
			return errs.ErrAlreadyReturned
		}
		if err := q.MarkReturned(ctx, loanID, now); err != nil {
			return err
		}
		return q.ReleaseCopy(ctx, loan.BookID)
	})
	if err != nil {
		return model.Loan{}, err
	}
	loan.Status = model.LoanStatusReturned
	loan.ReturnedAt = &now

	s.publish(ctx, kafka.Event{
		Type:      kafka.EventLoanReturned,
		BookID:    loan.BookID,
		StudentID: loan.StudentID,
		LoanID:    loan.ID,
	})
	return loan, nil
}

func (s *Service) ListLoans(ctx context.Context, filter model.LoanFilter) ([]model.Loan, error) {
	loans, err := s.repo.ListLoans(ctx, filter)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for i := range loans {
		loans[i].Overdue = loans[i].IsOverdue(now)
	}
	return loans, nil
}

// StudentOverview splits a student's loans into current and past, next to their pending requests.
func (s *Service) StudentOverview(ctx context.Context, studentID int64) (model.StudentOverview, error) {
	if err := validateID("studentId", studentID); err != nil {
		return model.StudentOverview{}, err
	}
	var (
		loans    []model.Loan
		requests []model.BorrowRequest
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		loans, err = s.ListLoans(gctx, model.LoanFilter{StudentID: studentID})
		return err
	})
	g.Go(func() error {
		var err error
		requests, err = s.repo.ListRequests(gctx, model.RequestFilter{
			StudentID: studentID,
			Status:    model.RequestStatusPending,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return model.StudentOverview{}, err
	}

	overview := model.StudentOverview{
		CurrentLoans:    make([]model.Loan, 0),
		PastLoans:       make([]model.Loan, 0),
		PendingRequests: requests,
	}
	for _, l := range loans {
		if l.Status == model.LoanStatusReturned {
			overview.PastLoans = append(overview.PastLoans, l)
			continue
		}
		overview.CurrentLoans = append(overview.CurrentLoans, l)
	}
	overview.Borrowed = len(overview.CurrentLoans)
	return overview, nil
}

// NotifyOverdue publishes a reminder for every issued loan past its due date.
// Overdue is never written back; it stays a read-time predicate.
func (s *Service) NotifyOverdue(ctx context.Context) (int, error) {
	now := s.now()
	loans, err := s.repo.ListLoans(ctx, model.LoanFilter{
		Status:    model.LoanStatusIssued,
		DueBefore: &now,
	})
	if err != nil {
		return 0, err
	}
	for _, l := range loans {
		s.publish(ctx, kafka.Event{
			Type:      kafka.EventLoanOverdue,
			BookID:    l.BookID,
			StudentID: l.StudentID,
			LoanID:    l.ID,
			DueDate:   l.ReturnDate,
		})
	}
	return len(loans), nil
}
