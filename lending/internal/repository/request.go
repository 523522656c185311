package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/lending-service/lending/internal/errs"
	"github.com/Astemirdum/lending-service/lending/internal/model"
)

var requestColumns = []string{
	"r.id", "r.student_id", "r.book_id", "r.status", "r.requested_at", "b.title as book_title",
}

func requestSelect() sq.SelectBuilder {
	return qb.Select(requestColumns...).
		From(requestsTableName + " r").
		Join(booksTableName + " b on b.id = r.book_id")
}

func (q *queries) CreateRequest(ctx context.Context, req model.BorrowRequest) (model.BorrowRequest, error) {
	query, args, err := qb.Insert(requestsTableName).
		Columns("student_id", "book_id", "status", "requested_at").
		Values(req.StudentID, req.BookID, model.RequestStatusPending, req.RequestedAt).
		Suffix("returning id").
		ToSql()
	if err != nil {
		return model.BorrowRequest{}, err
	}
	if err := q.conn.QueryRow(ctx, query, args...).Scan(&req.ID); err != nil {
		if isForeignKeyViolation(err) {
			return model.BorrowRequest{}, errs.ErrNotFound
		}
		q.log.Error("CreateRequest", zap.String("q", query), zap.Any("args", args))
		return model.BorrowRequest{}, err
	}
	req.Status = model.RequestStatusPending
	return req, nil
}

func (q *queries) GetRequestForUpdate(ctx context.Context, id int64) (model.BorrowRequest, error) {
	query, args, err := requestSelect().
		Where(sq.Eq{"r.id": id}).
		Suffix("for update of r").
		ToSql()
	if err != nil {
		return model.BorrowRequest{}, err
	}
	rows, err := q.conn.Query(ctx, query, args...)
	if err != nil {
		return model.BorrowRequest{}, err
	}
	defer rows.Close()

	req, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.BorrowRequest])
	if err != nil {
		return model.BorrowRequest{}, notFoundOr(err)
	}
	return req, nil
}

// SetRequestStatus moves a request from one status to another, failing with
// errs.ErrInvalidState when it is no longer in the expected status.
func (q *queries) SetRequestStatus(ctx context.Context, id int64, from, to model.RequestStatus) error {
	query, args, err := qb.Update(requestsTableName).
		Set("status", to).
		Where(sq.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return err
	}
	tag, err := q.conn.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	return q.missingOr(ctx, requestsTableName, id, errs.ErrInvalidState)
}

func (q *queries) ListRequests(ctx context.Context, filter model.RequestFilter) ([]model.BorrowRequest, error) {
	sb := requestSelect()
	if filter.StudentID != 0 {
		sb = sb.Where(sq.Eq{"r.student_id": filter.StudentID})
	}
	if filter.BookID != 0 {
		sb = sb.Where(sq.Eq{"r.book_id": filter.BookID})
	}
	if filter.Status != "" {
		sb = sb.Where(sq.Eq{"r.status": filter.Status})
	}
	query, args, err := sb.OrderBy("r.id desc").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := q.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.BorrowRequest])
	if err != nil {
		return nil, errors.Wrap(err, "pgx.CollectRows")
	}
	return items, nil
}
