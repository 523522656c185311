package service

import (
	"context"
	"fmt"

	"github.com/Astemirdum/lending-service/lending/internal/errs"
	"github.com/Astemirdum/lending-service/lending/internal/model"
	"github.com/Astemirdum/lending-service/lending/internal/repository"
)

func validateCopies(total int) error {
	if total < 0 {
		return errs.NewValidationError("totalCopies", "must not be negative")
	}
	return nil
}

func validateID(field string, id int64) error {
	if id <= 0 {
		return errs.NewValidationError(field, "must be positive")
	}
	return nil
}

func (s *Service) CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error) {
	if err := validateCopies(req.TotalCopies); err != nil {
		return model.Book{}, err
	}
	return s.repo.CreateBook(ctx, model.Book{
		Title:           req.Title,
		Author:          req.Author,
		Genre:           req.Genre,
		TotalCopies:     req.TotalCopies,
		AvailableCopies: req.TotalCopies,
	})
}

func (s *Service) GetBook(ctx context.Context, id int64) (model.Book, error) {
	return s.repo.GetBook(ctx, id)
}

func (s *Service) ListBooks(ctx context.Context) ([]model.Book, error) {
	return s.repo.ListBooks(ctx)
}

// UpdateBook edits metadata and total copies together; available copies follow the resize rule.
func (s *Service) UpdateBook(ctx context.Context, req model.UpdateBookRequest) (model.Book, error) {
	if err := validateID("id", req.ID); err != nil {
		return model.Book{}, err
	}
	if err := validateCopies(req.TotalCopies); err != nil {
		return model.Book{}, err
	}
	var book model.Book
	err := s.repo.WithTx(ctx, func(q repository.Querier) error {
		if _, err := q.UpdateBookInfo(ctx, model.Book{
			ID:     req.ID,
			Title:  req.Title,
			Author: req.Author,
			Genre:  req.Genre,
		}); err != nil {
			return err
		}
		var err error
		book, err = q.ResizeBook(ctx, req.ID, req.TotalCopies)
		return err
	})
	return book, err
}

func (s *Service) ResizeInventory(ctx context.Context, bookID int64, totalCopies int) (model.Book, error) {
	if err := validateID("bookId", bookID); err != nil {
		return model.Book{}, err
	}
	if err := validateCopies(totalCopies); err != nil {
		return model.Book{}, err
	}
	return s.repo.ResizeBook(ctx, bookID, totalCopies)
}

// DeleteBook refuses while any loan is issued or any request is pending for
// the book; closed history goes with it.
func (s *Service) DeleteBook(ctx context.Context, id int64) error {
	return s.repo.WithTx(ctx, func(q repository.Querier) error {
		if _, err := q.GetBookForUpdate(ctx, id); err != nil {
			return err
		}
		n, err := q.CountOutstanding(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("book %d has %d outstanding loans or requests: %w", id, n, errs.ErrInvalidState)
		}
		return q.DeleteBook(ctx, id)
	})
}

func (s *Service) Stats(ctx context.Context) (model.Stats, error) {
	return s.repo.Stats(ctx, s.now())
}
