package model

import (
	"strings"
	"time"
)

type Book struct {
	ID              int64  `json:"id" db:"id"`
	Title           string `json:"title" db:"title"`
	Author          string `json:"author" db:"author"`
	Genre           string `json:"genre" db:"genre"`
	TotalCopies     int    `json:"totalCopies" db:"total_copies"`
	AvailableCopies int    `json:"availableCopies" db:"available_copies"`
}

// Resize returns the book with newTotal copies, shifting available by the same
// delta and clamping it into [0, newTotal].
func (b Book) Resize(newTotal int) Book {
	available := b.AvailableCopies + (newTotal - b.TotalCopies)
	if available < 0 {
		available = 0
	}
	if available > newTotal {
		available = newTotal
	}
	b.TotalCopies = newTotal
	b.AvailableCopies = available
	return b
}

type CreateBookRequest struct {
	Title       string `json:"title" validate:"required"`
	Author      string `json:"author" validate:"required"`
	Genre       string `json:"genre"`
	TotalCopies int    `json:"totalCopies" validate:"gte=0"`
}

type UpdateBookRequest struct {
	ID          int64  `json:"-"`
	Title       string `json:"title" validate:"required"`
	Author      string `json:"author" validate:"required"`
	Genre       string `json:"genre"`
	TotalCopies int    `json:"totalCopies" validate:"gte=0"`
}

type ResizeRequest struct {
	TotalCopies int `json:"totalCopies" validate:"gte=0"`
}

type LoanStatus string

const (
	LoanStatusIssued   LoanStatus = "issued"
	LoanStatusReturned LoanStatus = "returned"
)

type Loan struct {
	ID         int64      `json:"id" db:"id"`
	BookID     int64      `json:"bookId" db:"book_id"`
	StudentID  int64      `json:"studentId" db:"student_id"`
	Status     LoanStatus `json:"status" db:"status"`
	IssuedAt   time.Time  `json:"issuedAt" db:"issued_at"`
	ReturnDate *time.Time `json:"returnDate,omitempty" db:"return_date"`
	ReturnedAt *time.Time `json:"returnedAt,omitempty" db:"returned_at"`
	BookTitle  string     `json:"bookTitle,omitempty" db:"book_title"`
	Overdue    bool       `json:"overdue" db:"-"`
}

// IsOverdue is derived on read and never stored.
func (l Loan) IsOverdue(now time.Time) bool {
	return l.Status == LoanStatusIssued && l.ReturnDate != nil && l.ReturnDate.Before(now)
}

type IssueRequest struct {
	BookID    int64 `json:"bookId" validate:"required,gt=0"`
	StudentID int64 `json:"studentId" validate:"required,gt=0"`
	DueDate   *Date `json:"dueDate,omitempty" swaggertype:"string" format:"date" example:"2024-09-01"`
}

type LoanFilter struct {
	StudentID int64
	BookID    int64
	Status    LoanStatus
	// DueBefore keeps loans whose due date is strictly before it.
	DueBefore *time.Time
}

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

type BorrowRequest struct {
	ID          int64         `json:"id" db:"id"`
	StudentID   int64         `json:"studentId" db:"student_id"`
	BookID      int64         `json:"bookId" db:"book_id"`
	Status      RequestStatus `json:"status" db:"status"`
	RequestedAt time.Time     `json:"requestedAt" db:"requested_at"`
	BookTitle   string        `json:"bookTitle,omitempty" db:"book_title"`
}

type SubmitRequest struct {
	BookID int64 `json:"bookId" validate:"required,gt=0"`
}

type RequestFilter struct {
	StudentID int64
	BookID    int64
	Status    RequestStatus
}

type Approval struct {
	Request BorrowRequest `json:"request"`
	Loan    Loan          `json:"loan"`
}

type StudentOverview struct {
	CurrentLoans    []Loan          `json:"currentLoans"`
	PastLoans       []Loan          `json:"pastLoans"`
	PendingRequests []BorrowRequest `json:"pendingRequests"`
	Borrowed        int             `json:"borrowed"`
}

type Stats struct {
	TotalBooks      int `json:"totalBooks" db:"total_books"`
	TotalCopies     int `json:"totalCopies" db:"total_copies"`
	Students        int `json:"students" db:"students"`
	LoansIssued     int `json:"booksLoaned" db:"loans_issued"`
	LoansReturned   int `json:"booksReturned" db:"loans_returned"`
	LoansOverdue    int `json:"overdueBooks" db:"loans_overdue"`
	PendingRequests int `json:"pendingRequests" db:"pending_requests"`
}

type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) (err error) {
	s := strings.Trim(string(b), "\"")
	date, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return err
	}
	d.Time = date
	return
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(time.DateOnly) + `"`), nil
}
