package repository_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/Astemirdum/lending-service/lending/internal/errs"
	"github.com/Astemirdum/lending-service/lending/internal/model"
	"github.com/Astemirdum/lending-service/lending/internal/repository"
	"github.com/Astemirdum/lending-service/lending/migrations"
	"github.com/Astemirdum/lending-service/pkg/postgres"
)

func dockerAvailable() (available bool) {
	defer func() {
		if r := recover(); r != nil {
			available = false
		}
	}()
	provider, err := testcontainers.ProviderDocker.GetProvider()
	if err != nil {
		return false
	}
	defer provider.Close()
	if err := provider.Health(context.Background()); err != nil {
		return false
	}
	return true
}

func newPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if !dockerAvailable() {
		t.Skip("skipping integration test: docker is not available")
	}
	ctx := context.Background()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "postgres",
				"POSTGRES_DB":       "lending",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, c.Terminate(ctx))
	})

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	db, err := postgres.NewPostgresDB(ctx, &postgres.DB{
		Host:     host,
		Port:     port.Int(),
		Username: "postgres",
		Password: "postgres",
		NameDB:   "lending",
		SSLMode:  "disable",
		MaxConns: 16,
		MinConns: 1,
	}, migrations.MigrationFiles)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

func TestRepository_Postgres(t *testing.T) {
	db := newPostgres(t)
	repo, err := repository.NewRepository(db, zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

	newBook := func(t *testing.T, copies int) model.Book {
		t.Helper()
		b, err := repo.CreateBook(ctx, model.Book{
			Title:           "Solaris",
			Author:          "Stanislaw Lem",
			TotalCopies:     copies,
			AvailableCopies: copies,
		})
		require.NoError(t, err)
		return b
	}

	t.Run("reserve last copy concurrently", func(t *testing.T) {
		book := newBook(t, 1)
		const workers = 10
		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			okN  int
			oosN int
		)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := repo.WithTx(ctx, func(q repository.Querier) error {
					return q.ReserveCopy(ctx, book.ID)
				})
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					okN++
				case errors.Is(err, errs.ErrOutOfStock):
					oosN++
				default:
					t.Errorf("unexpected error: %v", err)
				}
			}()
		}
		wg.Wait()
		require.Equal(t, 1, okN)
		require.Equal(t, workers-1, oosN)

		got, err := repo.GetBook(ctx, book.ID)
		require.NoError(t, err)
		require.Equal(t, 0, got.AvailableCopies)

		require.ErrorIs(t, repo.ReserveCopy(ctx, -1), errs.ErrNotFound)
	})

	t.Run("resize clamps available", func(t *testing.T) {
		book := newBook(t, 5)
		for i := 0; i < 3; i++ {
			require.NoError(t, repo.ReserveCopy(ctx, book.ID))
		}
		got, err := repo.ResizeBook(ctx, book.ID, 3)
		require.NoError(t, err)
		require.Equal(t, 3, got.TotalCopies)
		require.Equal(t, 0, got.AvailableCopies)

		got, err = repo.ResizeBook(ctx, book.ID, 6)
		require.NoError(t, err)
		require.Equal(t, 3, got.AvailableCopies)

		require.NoError(t, repo.ReleaseCopy(ctx, book.ID))
		require.NoError(t, repo.ReleaseCopy(ctx, book.ID))
		require.NoError(t, repo.ReleaseCopy(ctx, book.ID))
		require.NoError(t, repo.ReleaseCopy(ctx, book.ID))
		got, err = repo.GetBook(ctx, book.ID)
		require.NoError(t, err)
		require.Equal(t, 6, got.AvailableCopies)

		_, err = repo.ResizeBook(ctx, -1, 1)
		require.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("loan lifecycle", func(t *testing.T) {
		book := newBook(t, 2)
		due := now.AddDate(0, 1, 0)
		loan, err := repo.CreateLoan(ctx, model.Loan{
			BookID:     book.ID,
			StudentID:  11,
			IssuedAt:   now,
			ReturnDate: &due,
		})
		require.NoError(t, err)
		require.NotZero(t, loan.ID)

		_, err = repo.CreateLoan(ctx, model.Loan{BookID: -1, StudentID: 11, IssuedAt: now})
		require.ErrorIs(t, err, errs.ErrNotFound)

		got, err := repo.GetLoanForUpdate(ctx, loan.ID)
		require.NoError(t, err)
		require.Equal(t, "Solaris", got.BookTitle)
		require.Equal(t, model.LoanStatusIssued, got.Status)

		overdue, err := repo.ListLoans(ctx, model.LoanFilter{StudentID: 11, DueBefore: ptr(now.AddDate(0, 2, 0))})
		require.NoError(t, err)
		require.Len(t, overdue, 1)

		require.NoError(t, repo.MarkReturned(ctx, loan.ID, now.Add(time.Hour)))
		require.ErrorIs(t, repo.MarkReturned(ctx, loan.ID, now), errs.ErrAlreadyReturned)
		require.ErrorIs(t, repo.MarkReturned(ctx, -1, now), errs.ErrNotFound)

		open, err := repo.CreateLoan(ctx, model.Loan{BookID: book.ID, StudentID: 11, IssuedAt: now})
		require.NoError(t, err)

		loans, err := repo.ListLoans(ctx, model.LoanFilter{StudentID: 11})
		require.NoError(t, err)
		require.Len(t, loans, 2)
		require.Equal(t, open.ID, loans[0].ID)
		require.Equal(t, loan.ID, loans[1].ID)
		require.Equal(t, model.LoanStatusReturned, loans[1].Status)
	})

	t.Run("request transitions", func(t *testing.T) {
		book := newBook(t, 1)
		req, err := repo.CreateRequest(ctx, model.BorrowRequest{StudentID: 21, BookID: book.ID, RequestedAt: now})
		require.NoError(t, err)

		err = repo.WithTx(ctx, func(q repository.Querier) error {
			r, err := q.GetRequestForUpdate(ctx, req.ID)
			if err != nil {
				return err
			}
			require.Equal(t, model.RequestStatusPending, r.Status)
			return q.SetRequestStatus(ctx, r.ID, model.RequestStatusPending, model.RequestStatusRejected)
		})
		require.NoError(t, err)

		err = repo.SetRequestStatus(ctx, req.ID, model.RequestStatusPending, model.RequestStatusApproved)
		require.ErrorIs(t, err, errs.ErrInvalidState)
		err = repo.SetRequestStatus(ctx, -1, model.RequestStatusPending, model.RequestStatusApproved)
		require.ErrorIs(t, err, errs.ErrNotFound)

		items, err := repo.ListRequests(ctx, model.RequestFilter{StudentID: 21})
		require.NoError(t, err)
		require.Len(t, items, 1)
		require.Equal(t, model.RequestStatusRejected, items[0].Status)
	})

	t.Run("failed transaction rolls back", func(t *testing.T) {
		book := newBook(t, 1)
		boom := errors.New("boom")
		err := repo.WithTx(ctx, func(q repository.Querier) error {
			if err := q.ReserveCopy(ctx, book.ID); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		got, err := repo.GetBook(ctx, book.ID)
		require.NoError(t, err)
		require.Equal(t, 1, got.AvailableCopies)
	})

	t.Run("delete cascades history", func(t *testing.T) {
		book := newBook(t, 1)
		_, err := repo.CreateRequest(ctx, model.BorrowRequest{StudentID: 31, BookID: book.ID, RequestedAt: now})
		require.NoError(t, err)
		n, err := repo.CountOutstanding(ctx, book.ID)
		require.NoError(t, err)
		require.Equal(t, 1, n)

		require.NoError(t, repo.DeleteBook(ctx, book.ID))
		require.ErrorIs(t, repo.DeleteBook(ctx, book.ID), errs.ErrNotFound)

		items, err := repo.ListRequests(ctx, model.RequestFilter{StudentID: 31})
		require.NoError(t, err)
		require.Empty(t, items)
	})

	t.Run("stats", func(t *testing.T) {
		stats, err := repo.Stats(ctx, now)
		require.NoError(t, err)
		require.Positive(t, stats.TotalBooks)
		require.GreaterOrEqual(t, stats.TotalCopies, stats.TotalBooks)
	})
}

func ptr[T any](v T) *T {
	return &v
}
