package service

import (
	"context"
	"fmt"

	"github.com/Astemirdum/lending-service/lending/internal/errs"
	"github.com/Astemirdum/lending-service/lending/internal/model"
	"github.com/Astemirdum/lending-service/lending/internal/repository"
	"github.com/Astemirdum/lending-service/pkg/kafka"
)

// SubmitRequest queues a borrow request. Stock is not checked here; approval checks it.
func (s *Service) SubmitRequest(ctx context.Context, studentID, bookID int64) (model.BorrowRequest, error) {
	if err := validateID("studentId", studentID); err != nil {
		return model.BorrowRequest{}, err
	}
	if err := validateID("bookId", bookID); err != nil {
		return model.BorrowRequest{}, err
	}
	req, err := s.repo.CreateRequest(ctx, model.BorrowRequest{
		StudentID:   studentID,
		BookID:      bookID,
		Status:      model.RequestStatusPending,
		RequestedAt: s.now(),
	})
	if err != nil {
		return model.BorrowRequest{}, err
	}

	s.publish(ctx, kafka.Event{
		Type:      kafka.EventRequestSubmitted,
		BookID:    req.BookID,
		StudentID: req.StudentID,
		RequestID: req.ID,
	})
	return req, nil
}

// ApproveRequest turns a pending request into a loan. The status check, the
// reservation, the loan insert and the status change commit together; on
// errs.ErrOutOfStock the request stays pending.
func (s *Service) ApproveRequest(ctx context.Context, requestID int64) (model.Approval, error) {
	if err := validateID("requestId", requestID); err != nil {
		return model.Approval{}, err
	}
	now := s.now()

	var res model.Approval
	err := s.repo.WithTx(ctx, func(q repository.Querier) error {
		req, err := q.GetRequestForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		if req.Status != model.RequestStatusPending {
			return fmt.Errorf("request %d is %s: %w", req.ID, req.Status, errs.ErrInvalidState)
		}
		loan, err := issue(ctx, q, req.BookID, req.StudentID, now, s.dueDate(now))
		if err != nil {
			return err
		}
		if err := q.SetRequestStatus(ctx, req.ID, model.RequestStatusPending, model.RequestStatusApproved); err != nil {
			return err
		}
		req.Status = model.RequestStatusApproved
		loan.BookTitle = req.BookTitle
		res = model.Approval{Request: req, Loan: loan}
		return nil
	})
	if err != nil {
		return model.Approval{}, err
	}

	s.publish(ctx, kafka.Event{
		Type:      kafka.EventRequestApproved,
		BookID:    res.Loan.BookID,
		StudentID: res.Loan.StudentID,
		LoanID:    res.Loan.ID,
		RequestID: res.Request.ID,
		DueDate:   res.Loan.ReturnDate,
	})
	s.publish(ctx, kafka.Event{
		Type:      kafka.EventLoanIssued,
		BookID:    res.Loan.BookID,
		StudentID: res.Loan.StudentID,
		LoanID:    res.Loan.ID,
		DueDate:   res.Loan.ReturnDate,
	})
	return res, nil
}

func (s *Service) RejectRequest(ctx context.Context, requestID int64) (model.BorrowRequest, error) {
	if err := validateID("requestId", requestID); err != nil {
		return model.BorrowRequest{}, err
	}
	var req model.BorrowRequest
	err := s.repo.WithTx(ctx, func(q repository.Querier) error {
		var err error
		req, err = q.GetRequestForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		if err := q.SetRequestStatus(ctx, requestID, model.RequestStatusPending, model.RequestStatusRejected); err != nil {
			return err
		}
		req.Status = model.RequestStatusRejected
		return nil
	})
	if err != nil {
		return model.BorrowRequest{}, err
	}

	s.publish(ctx, kafka.Event{
		Type:      kafka.EventRequestRejected,
		BookID:    req.BookID,
		StudentID: req.StudentID,
		RequestID: req.ID,
	})
	return req, nil
}

func (s *Service) ListRequests(ctx context.Context, filter model.RequestFilter) ([]model.BorrowRequest, error) {
	return s.repo.ListRequests(ctx, filter)
}
