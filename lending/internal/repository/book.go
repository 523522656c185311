package repository

import (
	"context"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/lending-service/lending/internal/errs"
	"github.com/Astemirdum/lending-service/lending/internal/model"
)

var bookColumns = []string{"id", "title", "author", "genre", "total_copies", "available_copies"}

func (q *queries) CreateBook(ctx context.Context, book model.Book) (model.Book, error) {
	query, args, err := qb.Insert(booksTableName).
		Columns("title", "author", "genre", "total_copies", "available_copies").
		Values(book.Title, book.Author, book.Genre, book.TotalCopies, book.AvailableCopies).
		Suffix("returning " + strings.Join(bookColumns, ", ")).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}
	rows, err := q.conn.Query(ctx, query, args...)
	if err != nil {
		q.log.Error("CreateBook", zap.String("q", query), zap.Any("args", args))
		return model.Book{}, err
	}
	return pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Book])
}

func (q *queries) GetBook(ctx context.Context, id int64) (model.Book, error) {
	return q.getBook(ctx, id, false)
}

func (q *queries) GetBookForUpdate(ctx context.Context, id int64) (model.Book, error) {
	return q.getBook(ctx, id, true)
}

func (q *queries) getBook(ctx context.Context, id int64, forUpdate bool) (model.Book, error) {
	sb := qb.Select(bookColumns...).
		From(booksTableName).
		Where(sq.Eq{"id": id})
	if forUpdate {
		sb = sb.Suffix("for update")
	}
	query, args, err := sb.ToSql()
	if err != nil {
		return model.Book{}, err
	}

	rows, err := q.conn.Query(ctx, query, args...)
	if err != nil {
		return model.Book{}, err
	}
	defer rows.Close()

	book, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Book])
	if err != nil {
		return model.Book{}, notFoundOr(err)
	}
	return book, nil
}

func (q *queries) ListBooks(ctx context.Context) ([]model.Book, error) {
	query, args, err := qb.Select(bookColumns...).
		From(booksTableName).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := q.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Book])
	if err != nil {
		return nil, errors.Wrap(err, "pgx.CollectRows")
	}
	return books, nil
}

// UpdateBookInfo touches metadata only; copy counters change through ResizeBook.
func (q *queries) UpdateBookInfo(ctx context.Context, book model.Book) (model.Book, error) {
	query, args, err := qb.Update(booksTableName).
		Set("title", book.Title).
		Set("author", book.Author).
		Set("genre", book.Genre).
		Where(sq.Eq{"id": book.ID}).
		Suffix("returning " + strings.Join(bookColumns, ", ")).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}
	rows, err := q.conn.Query(ctx, query, args...)
	if err != nil {
		return model.Book{}, err
	}
	updated, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Book])
	if err != nil {
		return model.Book{}, notFoundOr(err)
	}
	return updated, nil
}

// ResizeBook applies model.Book.Resize as a single statement; set expressions read pre-update values.
func (q *queries) ResizeBook(ctx context.Context, id int64, totalCopies int) (model.Book, error) {
	query := `
update books
    set available_copies = greatest(least(available_copies + (@total - total_copies), @total), 0),
        total_copies     = @total
where id = @id
returning ` + strings.Join(bookColumns, ", ")
	args := pgx.NamedArgs{
		"id":    id,
		"total": totalCopies,
	}
	rows, err := q.conn.Query(ctx, query, args)
	if err != nil {
		return model.Book{}, err
	}
	book, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Book])
	if err != nil {
		return model.Book{}, notFoundOr(err)
	}
	return book, nil
}

func (q *queries) DeleteBook(ctx context.Context, id int64) error {
	tag, err := q.conn.Exec(ctx, `delete from books where id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// CountOutstanding counts issued loans and pending requests that still reference the book.
func (q *queries) CountOutstanding(ctx context.Context, bookID int64) (int, error) {
	const query = `
	select (select count(*) from loans where book_id = $1 and status = 'issued')
	     + (select count(*) from borrow_requests where book_id = $1 and status = 'pending')`
	var n int
	if err := q.conn.QueryRow(ctx, query, bookID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (q *queries) ReserveCopy(ctx context.Context, bookID int64) error {
	const query = `
update books
    set available_copies = available_copies - 1
where id = $1 and available_copies > 0`
	tag, err := q.conn.Exec(ctx, query, bookID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	return q.missingOr(ctx, booksTableName, bookID, errs.ErrOutOfStock)
}

func (q *queries) ReleaseCopy(ctx context.Context, bookID int64) error {
	const query = `
update books
    set available_copies = least(available_copies + 1, total_copies)
where id = $1`
	tag, err := q.conn.Exec(ctx, query, bookID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
