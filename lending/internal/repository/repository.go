package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/lending-service/lending/internal/errs"
	"github.com/Astemirdum/lending-service/lending/internal/model"
)

// Querier is the data access surface. Every method is atomic on its own;
// compound operations go through Repository.WithTx.
type Querier interface {
	CreateBook(ctx context.Context, book model.Book) (model.Book, error)
	GetBook(ctx context.Context, id int64) (model.Book, error)
	GetBookForUpdate(ctx context.Context, id int64) (model.Book, error)
	ListBooks(ctx context.Context) ([]model.Book, error)
	UpdateBookInfo(ctx context.Context, book model.Book) (model.Book, error)
	ResizeBook(ctx context.Context, id int64, totalCopies int) (model.Book, error)
	DeleteBook(ctx context.Context, id int64) error
	CountOutstanding(ctx context.Context, bookID int64) (int, error)

	// ReserveCopy takes one available copy or fails with errs.ErrOutOfStock.
	ReserveCopy(ctx context.Context, bookID int64) error
	// ReleaseCopy gives one copy back, never above total_copies.
	ReleaseCopy(ctx context.Context, bookID int64) error

	CreateLoan(ctx context.Context, loan model.Loan) (model.Loan, error)
	GetLoanForUpdate(ctx context.Context, id int64) (model.Loan, error)
	MarkReturned(ctx context.Context, id int64, at time.Time) error
	ListLoans(ctx context.Context, filter model.LoanFilter) ([]model.Loan, error)

	CreateRequest(ctx context.Context, req model.BorrowRequest) (model.BorrowRequest, error)
	GetRequestForUpdate(ctx context.Context, id int64) (model.BorrowRequest, error)
	SetRequestStatus(ctx context.Context, id int64, from, to model.RequestStatus) error
	ListRequests(ctx context.Context, filter model.RequestFilter) ([]model.BorrowRequest, error)

	Stats(ctx context.Context, now time.Time) (model.Stats, error)
}

type Repository interface {
	Querier
	// WithTx runs fn in one transaction: all of its writes commit, or none do.
	WithTx(ctx context.Context, fn func(q Querier) error) error
}

// dbtx is satisfied by both *pgxpool.Pool and pgx.Tx.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type queries struct {
	conn dbtx
	log  *zap.Logger
}

type repository struct {
	*queries
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool, log *zap.Logger) (*repository, error) {
	log = log.Named("repo")
	return &repository{
		queries: &queries{conn: db, log: log},
		db:      db,
	}, nil
}

func (r *repository) WithTx(ctx context.Context, fn func(q Querier) error) error {
	return pgx.BeginTxFunc(ctx, r.db, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(tx pgx.Tx) error {
		return fn(&queries{conn: tx, log: r.log})
	})
}

const (
	booksTableName    = `books`
	loansTableName    = `loans`
	requestsTableName = `borrow_requests`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation
}

func notFoundOr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return errs.ErrNotFound
	}
	return err
}

func (q *queries) exists(ctx context.Context, table string, id int64) (bool, error) {
	var ok bool
	err := q.conn.QueryRow(ctx, `select exists(select 1 from `+table+` where id = $1)`, id).Scan(&ok)
	return ok, err
}

// missingOr resolves a zero-rows conditional update: the row is either gone or in the wrong state.
func (q *queries) missingOr(ctx context.Context, table string, id int64, stateErr error) error {
	ok, err := q.exists(ctx, table, id)
	if err != nil {
		return err
	}
	if !ok {
		return errs.ErrNotFound
	}
	return stateErr
}

func (q *queries) Stats(ctx context.Context, now time.Time) (model.Stats, error) {
	const query = `
	select (select count(*) from books)                                          as total_books,
	       (select coalesce(sum(total_copies), 0) from books)                    as total_copies,
	       (select count(*) from (select student_id from loans
	                              union
	                              select student_id from borrow_requests) s)    as students,
	       (select count(*) from loans where status = 'issued')                  as loans_issued,
	       (select count(*) from loans where status = 'returned')                as loans_returned,
	       (select count(*) from loans where status = 'issued' and return_date < $1) as loans_overdue,
	       (select count(*) from borrow_requests where status = 'pending')       as pending_requests
`
	rows, err := q.conn.Query(ctx, query, now)
	if err != nil {
		return model.Stats{}, err
	}
	stats, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Stats])
	if err != nil {
		return model.Stats{}, errors.Wrap(err, "pgx.CollectOneRow")
	}
	return stats, nil
}
