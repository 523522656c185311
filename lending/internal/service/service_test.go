package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Astemirdum/lending-service/lending/internal/errs"
	"github.com/Astemirdum/lending-service/lending/internal/model"
	"github.com/Astemirdum/lending-service/lending/internal/repository"
	"github.com/Astemirdum/lending-service/lending/internal/repository/memory"
	"github.com/Astemirdum/lending-service/lending/internal/service"
	service_mocks "github.com/Astemirdum/lending-service/lending/internal/service/mocks"
	"github.com/Astemirdum/lending-service/pkg/kafka"
)

var testNow = time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func newService(t *testing.T, repo repository.Repository) (*service.Service, *clock) {
	t.Helper()
	clk := &clock{now: testNow}
	return service.NewService(repo, nil, zap.NewNop(), service.WithClock(clk.Now)), clk
}

func createBook(t *testing.T, svc *service.Service, copies int) model.Book {
	t.Helper()
	b, err := svc.CreateBook(context.Background(), model.CreateBookRequest{
		Title:       "Dune",
		Author:      "Frank Herbert",
		Genre:       "Science Fiction",
		TotalCopies: copies,
	})
	require.NoError(t, err)
	return b
}

func TestService_LendingFlow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, clk := newService(t, memory.New())

	book := createBook(t, svc, 2)
	require.Equal(t, 2, book.AvailableCopies)

	req, err := svc.SubmitRequest(ctx, 7, book.ID)
	require.NoError(t, err)
	require.Equal(t, model.RequestStatusPending, req.Status)

	approval, err := svc.ApproveRequest(ctx, req.ID)
	require.NoError(t, err)
	require.Equal(t, model.RequestStatusApproved, approval.Request.Status)
	require.Equal(t, model.LoanStatusIssued, approval.Loan.Status)
	require.Equal(t, int64(7), approval.Loan.StudentID)
	require.NotNil(t, approval.Loan.ReturnDate)
	require.Equal(t, testNow.AddDate(0, 1, 0), *approval.Loan.ReturnDate)

	got, err := svc.GetBook(ctx, book.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.AvailableCopies)

	overview, err := svc.StudentOverview(ctx, 7)
	require.NoError(t, err)
	require.Len(t, overview.CurrentLoans, 1)
	require.Empty(t, overview.PastLoans)
	require.Empty(t, overview.PendingRequests)
	require.Equal(t, 1, overview.Borrowed)
	require.False(t, overview.CurrentLoans[0].Overdue)

	clk.Set(testNow.AddDate(0, 2, 0))
	loans, err := svc.ListLoans(ctx, model.LoanFilter{StudentID: 7})
	require.NoError(t, err)
	require.Len(t, loans, 1)
	require.True(t, loans[0].Overdue)

	returned, err := svc.ReturnLoan(ctx, approval.Loan.ID)
	require.NoError(t, err)
	require.Equal(t, model.LoanStatusReturned, returned.Status)
	require.NotNil(t, returned.ReturnedAt)

	got, err = svc.GetBook(ctx, book.ID)
	require.NoError(t, err)
	require.Equal(t, 2, got.AvailableCopies)

	overview, err = svc.StudentOverview(ctx, 7)
	require.NoError(t, err)
	require.Empty(t, overview.CurrentLoans)
	require.Len(t, overview.PastLoans, 1)
	require.False(t, overview.PastLoans[0].Overdue)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, model.Stats{
		TotalBooks:    1,
		TotalCopies:   2,
		Students:      1,
		LoansReturned: 1,
	}, stats)
}

func TestService_ReserveLastCopyConcurrently(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newService(t, memory.New())
	book := createBook(t, svc, 1)

	const workers = 8
	var (
		wg   sync.WaitGroup
		errc = make(chan error, workers)
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(student int64) {
			defer wg.Done()
			_, err := svc.IssueDirect(ctx, model.IssueRequest{BookID: book.ID, StudentID: student})
			errc <- err
		}(int64(i + 1))
	}
	wg.Wait()
	close(errc)

	var ok, outOfStock int
	for err := range errc {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, errs.ErrOutOfStock):
			outOfStock++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, ok)
	require.Equal(t, workers-1, outOfStock)

	got, err := svc.GetBook(ctx, book.ID)
	require.NoError(t, err)
	require.Equal(t, 0, got.AvailableCopies)
}

// failingLoans breaks CreateLoan inside transactions so the preceding reservation must roll back.
type failingLoans struct {
	repository.Repository
}

type failingQuerier struct {
	repository.Querier
}

func (failingQuerier) CreateLoan(context.Context, model.Loan) (model.Loan, error) {
	return model.Loan{}, errors.New("disk full")
}

func (f failingLoans) WithTx(ctx context.Context, fn func(q repository.Querier) error) error {
	return f.Repository.WithTx(ctx, func(q repository.Querier) error {
		return fn(failingQuerier{q})
	})
}

func TestService_FailedIssueLeavesNoTrace(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := memory.New()
	svc, _ := newService(t, failingLoans{store})
	book := createBook(t, svc, 1)

	_, err := svc.IssueDirect(ctx, model.IssueRequest{BookID: book.ID, StudentID: 1})
	require.EqualError(t, err, "disk full")

	req, err := svc.SubmitRequest(ctx, 1, book.ID)
	require.NoError(t, err)
	_, err = svc.ApproveRequest(ctx, req.ID)
	require.Error(t, err)

	got, err := store.GetBook(ctx, book.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.AvailableCopies)

	pending, err := store.ListRequests(ctx, model.RequestFilter{Status: model.RequestStatusPending})
	require.NoError(t, err)
	require.Len(t, pending, 1)

	loans, err := store.ListLoans(ctx, model.LoanFilter{})
	require.NoError(t, err)
	require.Empty(t, loans)
}

func TestService_ReturnLoan(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newService(t, memory.New())
	book := createBook(t, svc, 1)

	loan, err := svc.IssueDirect(ctx, model.IssueRequest{BookID: book.ID, StudentID: 3})
	require.NoError(t, err)

	_, err = svc.ReturnLoan(ctx, loan.ID)
	require.NoError(t, err)

	_, err = svc.ReturnLoan(ctx, loan.ID)
	require.ErrorIs(t, err, errs.ErrAlreadyReturned)
	require.ErrorIs(t, err, errs.ErrInvalidState)

	got, err := svc.GetBook(ctx, book.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.AvailableCopies)

	_, err = svc.ReturnLoan(ctx, 999)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestService_ReturnAfterShrinkStaysWithinTotal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newService(t, memory.New())
	book := createBook(t, svc, 2)

	loan, err := svc.IssueDirect(ctx, model.IssueRequest{BookID: book.ID, StudentID: 3})
	require.NoError(t, err)

	shrunk, err := svc.ResizeInventory(ctx, book.ID, 1)
	require.NoError(t, err)
	require.Equal(t, 0, shrunk.AvailableCopies)

	_, err = svc.ReturnLoan(ctx, loan.ID)
	require.NoError(t, err)

	got, err := svc.GetBook(ctx, book.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.TotalCopies)
	require.Equal(t, 1, got.AvailableCopies)
}

func TestService_RequestTransitions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newService(t, memory.New())
	book := createBook(t, svc, 1)

	first, err := svc.SubmitRequest(ctx, 1, book.ID)
	require.NoError(t, err)
	second, err := svc.SubmitRequest(ctx, 2, book.ID)
	require.NoError(t, err)

	_, err = svc.ApproveRequest(ctx, first.ID)
	require.NoError(t, err)

	_, err = svc.ApproveRequest(ctx, second.ID)
	require.ErrorIs(t, err, errs.ErrOutOfStock)

	pending, err := svc.ListRequests(ctx, model.RequestFilter{Status: model.RequestStatusPending})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, second.ID, pending[0].ID)

	rejected, err := svc.RejectRequest(ctx, second.ID)
	require.NoError(t, err)
	require.Equal(t, model.RequestStatusRejected, rejected.Status)

	_, err = svc.ApproveRequest(ctx, second.ID)
	require.ErrorIs(t, err, errs.ErrInvalidState)
	_, err = svc.RejectRequest(ctx, first.ID)
	require.ErrorIs(t, err, errs.ErrInvalidState)
	_, err = svc.RejectRequest(ctx, 404)
	require.ErrorIs(t, err, errs.ErrNotFound)

	_, err = svc.SubmitRequest(ctx, 1, 404)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestService_ResizeInventory(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name           string
		total, reserve int
		newTotal       int
		wantAvailable  int
		wantErr        error
	}{
		{name: "grow", total: 2, reserve: 1, newTotal: 5, wantAvailable: 4},
		{name: "shrink keeps loans", total: 5, reserve: 3, newTotal: 3, wantAvailable: 0},
		{name: "shrink with spare", total: 5, reserve: 1, newTotal: 4, wantAvailable: 3},
		{name: "to zero", total: 2, reserve: 0, newTotal: 0, wantAvailable: 0},
		{name: "negative", total: 2, newTotal: -1, wantErr: errs.ErrValidation},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			svc, _ := newService(t, memory.New())
			book := createBook(t, svc, tt.total)
			for i := 0; i < tt.reserve; i++ {
				_, err := svc.IssueDirect(ctx, model.IssueRequest{BookID: book.ID, StudentID: int64(i + 1)})
				require.NoError(t, err)
			}

			got, err := svc.ResizeInventory(ctx, book.ID, tt.newTotal)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.newTotal, got.TotalCopies)
			assert.Equal(t, tt.wantAvailable, got.AvailableCopies)
		})
	}
}

func TestService_IssueDirectValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newService(t, memory.New())
	book := createBook(t, svc, 1)

	past := model.Date{Time: testNow.AddDate(0, 0, -1)}
	_, err := svc.IssueDirect(ctx, model.IssueRequest{BookID: book.ID, StudentID: 1, DueDate: &past})
	require.ErrorIs(t, err, errs.ErrValidation)

	_, err = svc.IssueDirect(ctx, model.IssueRequest{BookID: 0, StudentID: 1})
	require.ErrorIs(t, err, errs.ErrValidation)

	_, err = svc.IssueDirect(ctx, model.IssueRequest{BookID: 404, StudentID: 1})
	require.ErrorIs(t, err, errs.ErrNotFound)

	due := model.Date{Time: testNow.AddDate(0, 0, 14)}
	loan, err := svc.IssueDirect(ctx, model.IssueRequest{BookID: book.ID, StudentID: 1, DueDate: &due})
	require.NoError(t, err)
	require.Equal(t, due.Time, *loan.ReturnDate)
	require.Equal(t, "Dune", loan.BookTitle)
}

func TestService_DeleteBook(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newService(t, memory.New())
	book := createBook(t, svc, 1)

	loan, err := svc.IssueDirect(ctx, model.IssueRequest{BookID: book.ID, StudentID: 1})
	require.NoError(t, err)
	require.ErrorIs(t, svc.DeleteBook(ctx, book.ID), errs.ErrInvalidState)

	_, err = svc.ReturnLoan(ctx, loan.ID)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteBook(ctx, book.ID))

	_, err = svc.GetBook(ctx, book.ID)
	require.ErrorIs(t, err, errs.ErrNotFound)
	loans, err := svc.ListLoans(ctx, model.LoanFilter{})
	require.NoError(t, err)
	require.Empty(t, loans)

	require.ErrorIs(t, svc.DeleteBook(ctx, book.ID), errs.ErrNotFound)
}

func TestService_UpdateBook(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newService(t, memory.New())
	book := createBook(t, svc, 3)
	_, err := svc.IssueDirect(ctx, model.IssueRequest{BookID: book.ID, StudentID: 1})
	require.NoError(t, err)

	got, err := svc.UpdateBook(ctx, model.UpdateBookRequest{
		ID:          book.ID,
		Title:       "Dune Messiah",
		Author:      "Frank Herbert",
		TotalCopies: 4,
	})
	require.NoError(t, err)
	require.Equal(t, model.Book{
		ID:              book.ID,
		Title:           "Dune Messiah",
		Author:          "Frank Herbert",
		TotalCopies:     4,
		AvailableCopies: 3,
	}, got)

	_, err = svc.UpdateBook(ctx, model.UpdateBookRequest{ID: 404, Title: "x", Author: "y"})
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestService_NotifyOverdue(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := gomock.NewController(t)
	pub := service_mocks.NewMockPublisher(c)

	clk := &clock{now: testNow}
	svc := service.NewService(memory.New(), pub, zap.NewNop(), service.WithClock(clk.Now))

	pub.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	book := createBook(t, svc, 2)
	late, err := svc.IssueDirect(ctx, model.IssueRequest{BookID: book.ID, StudentID: 1})
	require.NoError(t, err)
	due := model.Date{Time: testNow.AddDate(0, 3, 0)}
	_, err = svc.IssueDirect(ctx, model.IssueRequest{BookID: book.ID, StudentID: 2, DueDate: &due})
	require.NoError(t, err)

	clk.Set(testNow.AddDate(0, 2, 0))
	pub.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e kafka.Event) error {
		require.Equal(t, kafka.EventLoanOverdue, e.Type)
		require.Equal(t, late.ID, e.LoanID)
		require.NotEmpty(t, e.ID)
		return nil
	})
	n, err := svc.NotifyOverdue(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	loans, err := svc.ListLoans(ctx, model.LoanFilter{Status: model.LoanStatusIssued})
	require.NoError(t, err)
	require.Len(t, loans, 2)
}

func TestService_PublishesAfterCommit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := gomock.NewController(t)
	pub := service_mocks.NewMockPublisher(c)
	svc := service.NewService(memory.New(), pub, zap.NewNop(), service.WithClock(func() time.Time { return testNow }))

	book := createBook(t, svc, 0)

	pub.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e kafka.Event) error {
		require.Equal(t, kafka.EventRequestSubmitted, e.Type)
		return errors.New("broker down")
	})
	req, err := svc.SubmitRequest(ctx, 5, book.ID)
	require.NoError(t, err)

	_, err = svc.ApproveRequest(ctx, req.ID)
	require.ErrorIs(t, err, errs.ErrOutOfStock)

	_, err = svc.ResizeInventory(ctx, book.ID, 1)
	require.NoError(t, err)

	gomock.InOrder(
		pub.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e kafka.Event) error {
			require.Equal(t, kafka.EventRequestApproved, e.Type)
			require.Equal(t, req.ID, e.RequestID)
			return nil
		}),
		pub.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e kafka.Event) error {
			require.Equal(t, kafka.EventLoanIssued, e.Type)
			require.Equal(t, int64(5), e.StudentID)
			return nil
		}),
	)
	_, err = svc.ApproveRequest(ctx, req.ID)
	require.NoError(t, err)
}
