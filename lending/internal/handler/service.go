package handler

import (
	"context"

	"github.com/Astemirdum/lending-service/lending/internal/model"
	"github.com/Astemirdum/lending-service/lending/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type LendingService interface {
	CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error)
	GetBook(ctx context.Context, id int64) (model.Book, error)
	ListBooks(ctx context.Context) ([]model.Book, error)
	UpdateBook(ctx context.Context, req model.UpdateBookRequest) (model.Book, error)
	ResizeInventory(ctx context.Context, bookID int64, totalCopies int) (model.Book, error)
	DeleteBook(ctx context.Context, id int64) error
	Stats(ctx context.Context) (model.Stats, error)

	IssueDirect(ctx context.Context, req model.IssueRequest) (model.Loan, error)
	ReturnLoan(ctx context.Context, loanID int64) (model.Loan, error)
	ListLoans(ctx context.Context, filter model.LoanFilter) ([]model.Loan, error)
	StudentOverview(ctx context.Context, studentID int64) (model.StudentOverview, error)

	SubmitRequest(ctx context.Context, studentID, bookID int64) (model.BorrowRequest, error)
	ApproveRequest(ctx context.Context, requestID int64) (model.Approval, error)
	RejectRequest(ctx context.Context, requestID int64) (model.BorrowRequest, error)
	ListRequests(ctx context.Context, filter model.RequestFilter) ([]model.BorrowRequest, error)
}

var _ LendingService = (*service.Service)(nil)
