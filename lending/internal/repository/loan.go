package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/lending-service/lending/internal/errs"
	"github.com/Astemirdum/lending-service/lending/internal/model"
)

var loanColumns = []string{
	"l.id", "l.book_id", "l.student_id", "l.status",
	"l.issued_at", "l.return_date", "l.returned_at", "b.title as book_title",
}

func loanSelect() sq.SelectBuilder {
	return qb.Select(loanColumns...).
		From(loansTableName + " l").
		Join(booksTableName + " b on b.id = l.book_id")
}

func (q *queries) CreateLoan(ctx context.Context, loan model.Loan) (model.Loan, error) {
	query, args, err := qb.Insert(loansTableName).
		Columns("book_id", "student_id", "status", "issued_at", "return_date").
		Values(loan.BookID, loan.StudentID, model.LoanStatusIssued, loan.IssuedAt, loan.ReturnDate).
		Suffix("returning id").
		ToSql()
	if err != nil {
		return model.Loan{}, err
	}
	if err := q.conn.QueryRow(ctx, query, args...).Scan(&loan.ID); err != nil {
		if isForeignKeyViolation(err) {
			return model.Loan{}, errs.ErrNotFound
		}
		q.log.Error("CreateLoan", zap.String("q", query), zap.Any("args", args))
		return model.Loan{}, err
	}
	loan.Status = model.LoanStatusIssued
	loan.ReturnedAt = nil
	return loan, nil
}

func (q *queries) GetLoanForUpdate(ctx context.Context, id int64) (model.Loan, error) {
	query, args, err := loanSelect().
		Where(sq.Eq{"l.id": id}).
		Suffix("for update of l").
		ToSql()
	if err != nil {
		return model.Loan{}, err
	}
	rows, err := q.conn.Query(ctx, query, args...)
	if err != nil {
		return model.Loan{}, err
	}
	defer rows.Close()

	loan, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Loan])
	if err != nil {
		return model.Loan{}, notFoundOr(err)
	}
	return loan, nil
}

// MarkReturned closes an issued loan; a loan that is already returned yields errs.ErrAlreadyReturned.
func (q *queries) MarkReturned(ctx context.Context, id int64, at time.Time) error {
	query, args, err := qb.Update(loansTableName).
		Set("status", model.LoanStatusReturned).
		Set("returned_at", at).
		Where(sq.Eq{"id": id, "status": model.LoanStatusIssued}).
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
	return q.missingOr(ctx, loansTableName, id, errs.ErrAlreadyReturned)
}

func (q *queries) ListLoans(ctx context.Context, filter model.LoanFilter) ([]model.Loan, error) {
	sb := loanSelect()
	if filter.StudentID != 0 {
		sb = sb.Where(sq.Eq{"l.student_id": filter.StudentID})
	}
	if filter.BookID != 0 {
		sb = sb.Where(sq.Eq{"l.book_id": filter.BookID})
	}
	if filter.Status != "" {
		sb = sb.Where(sq.Eq{"l.status": filter.Status})
	}
	if filter.DueBefore != nil {
		sb = sb.Where(sq.Lt{"l.return_date": *filter.DueBefore})
	}
	// desc puts open loans (null returned_at) first
	query, args, err := sb.OrderBy("l.returned_at desc", "l.issued_at desc", "l.id desc").ToSql()
	if err != nil {
		return nil, err
	}
	q.log.Debug("ListLoans", zap.String("query", query), zap.Any("args", args))

	rows, err := q.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	loans, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Loan])
	if err != nil {
		return nil, errors.Wrap(err, "pgx.CollectRows")
	}
	return loans, nil
}
