package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Astemirdum/lending-service/lending/internal/model"
)

// CreateBook godoc
// @Summary Create a book
// @Description Adds a title to the catalog with every copy available.
// @Tags books
// @Accept json
// @Produce json
// @Param X-User-Id header integer true "Caller id"
// @Param X-User-Role header string true "Caller role" Enums(admin)
// @Param book body model.CreateBookRequest true "Book to create"
// @Success 201 {object} model.Book "Created book"
// @Failure 400 {object} echo.HTTPError "Bad request"
// @Failure 401 {object} echo.HTTPError "Missing or invalid identity headers"
// @Failure 403 {object} echo.HTTPError "Caller has the wrong role"
// @Failure 500 {object} echo.HTTPError "Internal Server Error"
// @Router /api/v1/admin/books [post]
func (h *Handler) CreateBook(c echo.Context) error {
	var req model.CreateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	book, err := h.lendingSvc.CreateBook(c.Request().Context(), req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusCreated, book)
}

// ListBooks godoc
// @Summary List books
// @Description Returns the catalog with current availability.
// @Tags books
// @Produce json
// @Param X-User-Id header integer true "Caller id"
// @Param X-User-Role header string true "Caller role" Enums(admin,student)
// @Success 200 {array} model.Book "Books"
// @Failure 401 {object} echo.HTTPError "Missing or invalid identity headers"
// @Failure 403 {object} echo.HTTPError "Caller has the wrong role"
// @Failure 500 {object} echo.HTTPError "Internal Server Error"
// @Router /api/v1/admin/books [get]
// @Router /api/v1/student/books [get]
func (h *Handler) ListBooks(c echo.Context) error {
	books, err := h.lendingSvc.ListBooks(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, books)
}

// GetBook godoc
// @Summary Get a book
// @Description Returns one book by id.
// @Tags books
// @Produce json
// @Param X-User-Id header integer true "Caller id"
// @Param X-User-Role header string true "Caller role" Enums(admin)
// @Param id path integer true "Book ID"
// @Success 200 {object} model.Book "Book"
// @Failure 400 {object} echo.HTTPError "Bad request"
// @Failure 401 {object} echo.HTTPError "Missing or invalid identity headers"
// @Failure 403 {object} echo.HTTPError "Caller has the wrong role"
// @Failure 404 {object} echo.HTTPError "Not found"
// @Failure 500 {object} echo.HTTPError "Internal Server Error"
// @Router /api/v1/admin/books/{id} [get]
func (h *Handler) GetBook(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	book, err := h.lendingSvc.GetBook(c.Request().Context(), id)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, book)
}

// UpdateBook godoc
// @Summary Update a book
// @Description Replaces title, author and genre and resizes the inventory to totalCopies.
// @Tags books
// @Accept json
// @Produce json
// @Param X-User-Id header integer true "Caller id"
// @Param X-User-Role header string true "Caller role" Enums(admin)
// @Param id path integer true "Book ID"
// @Param book body model.UpdateBookRequest true "New book fields"
// @Success 200 {object} model.Book "Updated book"
// @Failure 400 {object} echo.HTTPError "Bad request"
// @Failure 401 {object} echo.HTTPError "Missing or invalid identity headers"
// @Failure 403 {object} echo.HTTPError "Caller has the wrong role"
// @Failure 404 {object} echo.HTTPError "Not found"
// @Failure 500 {object} echo.HTTPError "Internal Server Error"
// @Router /api/v1/admin/books/{id} [put]
func (h *Handler) UpdateBook(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req model.UpdateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	req.ID = id
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	book, err := h.lendingSvc.UpdateBook(c.Request().Context(), req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, book)
}

// ResizeInventory godoc
// @Summary Resize inventory
// @Description Sets the total number of copies; available copies shift by the same delta, clamped to [0, totalCopies].
// @Tags books
// @Accept json
// @Produce json
// @Param X-User-Id header integer true "Caller id"
// @Param X-User-Role header string true "Caller role" Enums(admin)
// @Param id path integer true "Book ID"
// @Param copies body model.ResizeRequest true "New total"
// @Success 200 {object} model.Book "Resized book"
// @Failure 400 {object} echo.HTTPError "Bad request"
// @Failure 401 {object} echo.HTTPError "Missing or invalid identity headers"
// @Failure 403 {object} echo.HTTPError "Caller has the wrong role"
// @Failure 404 {object} echo.HTTPError "Not found"
// @Failure 500 {object} echo.HTTPError "Internal Server Error"
// @Router /api/v1/admin/books/{id}/copies [put]
func (h *Handler) ResizeInventory(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req model.ResizeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	book, err := h.lendingSvc.ResizeInventory(c.Request().Context(), id, req.TotalCopies)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, book)
}

// DeleteBook godoc
// @Summary Delete a book
// @Description Removes a book that has no outstanding loans or pending requests.
// @Tags books
// @Produce json
// @Param X-User-Id header integer true "Caller id"
// @Param X-User-Role header string true "Caller role" Enums(admin)
// @Param id path integer true "Book ID"
// @Success 204 "Deleted"
// @Failure 400 {object} echo.HTTPError "Bad request"
// @Failure 401 {object} echo.HTTPError "Missing or invalid identity headers"
// @Failure 403 {object} echo.HTTPError "Caller has the wrong role"
// @Failure 404 {object} echo.HTTPError "Not found"
// @Failure 409 {object} echo.HTTPError "Book has outstanding loans or requests"
// @Failure 500 {object} echo.HTTPError "Internal Server Error"
// @Router /api/v1/admin/books/{id} [delete]
func (h *Handler) DeleteBook(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.lendingSvc.DeleteBook(c.Request().Context(), id); err != nil {
		return h.httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListLoans godoc
// @Summary List loans
// @Description Returns loans, optionally filtered by student, book and status.
// @Tags loans
// @Produce json
// @Param X-User-Id header integer true "Caller id"
// @Param X-User-Role header string true "Caller role" Enums(admin)
// @Param studentId query integer false "Student ID"
// @Param bookId query integer false "Book ID"
// @Param status query string false "Loan status" Enums(issued,returned)
// @Success 200 {array} model.Loan "Loans"
// @Failure 400 {object} echo.HTTPError "Bad request"
// @Failure 401 {object} echo.HTTPError "Missing or invalid identity headers"
// @Failure 403 {object} echo.HTTPError "Caller has the wrong role"
// @Failure 500 {object} echo.HTTPError "Internal Server Error"
// @Router /api/v1/admin/loans [get]
func (h *Handler) ListLoans(c echo.Context) error {
	studentID, err := queryID(c, "studentId")
	if err != nil {
		return err
	}
	bookID, err := queryID(c, "bookId")
	if err != nil {
		return err
	}
	filter := model.LoanFilter{
		StudentID: studentID,
		BookID:    bookID,
		Status:    model.LoanStatus(c.QueryParam("status")),
	}
	switch filter.Status {
	case "", model.LoanStatusIssued, model.LoanStatusReturned:
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "status is invalid")
	}
	loans, err := h.lendingSvc.ListLoans(c.Request().Context(), filter)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, loans)
}

// IssueLoan godoc
// @Summary Issue a loan
// @Description Lends a copy directly to a student, bypassing the request queue.
// @Tags loans
// @Accept json
// @Produce json
// @Param X-User-Id header integer true "Caller id"
// @Param X-User-Role header string true "Caller role" Enums(admin)
// @Param loan body model.IssueRequest true "Loan to issue"
// @Success 201 {object} model.Loan "Issued loan"
// @Failure 400 {object} echo.HTTPError "Bad request"
// @Failure 401 {object} echo.HTTPError "Missing or invalid identity headers"
// @Failure 403 {object} echo.HTTPError "Caller has the wrong role"
// @Failure 404 {object} echo.HTTPError "Not found"
// @Failure 409 {object} echo.HTTPError "No available copies"
// @Failure 500 {object} echo.HTTPError "Internal Server Error"
// @Router /api/v1/admin/loans [post]
func (h *Handler) IssueLoan(c echo.Context) error {
	var req model.IssueRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	loan, err := h.lendingSvc.IssueDirect(c.Request().Context(), req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusCreated, loan)
}

// ReturnLoan godoc
// @Summary Return a loan
// @Description Marks the loan returned and puts the copy back on the shelf.
// @Tags loans
// @Produce json
// @Param X-User-Id header integer true "Caller id"
// @Param X-User-Role header string true "Caller role" Enums(admin)
// @Param id path integer true "Loan ID"
// @Success 200 {object} model.Loan "Returned loan"
// @Failure 400 {object} echo.HTTPError "Bad request"
// @Failure 401 {object} echo.HTTPError "Missing or invalid identity headers"
// @Failure 403 {object} echo.HTTPError "Caller has the wrong role"
// @Failure 404 {object} echo.HTTPError "Not found"
// @Failure 409 {object} echo.HTTPError "Loan already returned"
// @Failure 500 {object} echo.HTTPError "Internal Server Error"
// @Router /api/v1/admin/loans/{id}/return [post]
func (h *Handler) ReturnLoan(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	loan, err := h.lendingSvc.ReturnLoan(c.Request().Context(), id)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, loan)
}

// ListRequests godoc
// @Summary List borrow requests
// @Description Returns borrow requests, optionally filtered by status.
// @Tags requests
// @Produce json
// @Param X-User-Id header integer true "Caller id"
// @Param X-User-Role header string true "Caller role" Enums(admin)
// @Param status query string false "Request status" Enums(pending,approved,rejected)
// @Success 200 {array} model.BorrowRequest "Requests"
// @Failure 400 {object} echo.HTTPError "Bad request"
// @Failure 401 {object} echo.HTTPError "Missing or invalid identity headers"
// @Failure 403 {object} echo.HTTPError "Caller has the wrong role"
// @Failure 500 {object} echo.HTTPError "Internal Server Error"
// @Router /api/v1/admin/requests [get]
func (h *Handler) ListRequests(c echo.Context) error {
	filter := model.RequestFilter{Status: model.RequestStatus(c.QueryParam("status"))}
	switch filter.Status {
	case "", model.RequestStatusPending, model.RequestStatusApproved, model.RequestStatusRejected:
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "status is invalid")
	}
	items, err := h.lendingSvc.ListRequests(c.Request().Context(), filter)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

// ApproveRequest godoc
// @Summary Approve a borrow request
// @Description Issues a loan for a pending request. The request stays pending when no copy is available.
// @Tags requests
// @Produce json
// @Param X-User-Id header integer true "Caller id"
// @Param X-User-Role header string true "Caller role" Enums(admin)
// @Param id path integer true "Request ID"
// @Success 200 {object} model.Approval "Approved request and issued loan"
// @Failure 400 {object} echo.HTTPError "Bad request"
// @Failure 401 {object} echo.HTTPError "Missing or invalid identity headers"
// @Failure 403 {object} echo.HTTPError "Caller has the wrong role"
// @Failure 404 {object} echo.HTTPError "Not found"
// @Failure 409 {object} echo.HTTPError "Request is not pending or book is out of stock"
// @Failure 500 {object} echo.HTTPError "Internal Server Error"
// @Router /api/v1/admin/requests/{id}/approve [post]
func (h *Handler) ApproveRequest(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	res, err := h.lendingSvc.ApproveRequest(c.Request().Context(), id)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, res)
}

// RejectRequest godoc
// @Summary Reject a borrow request
// @Description Rejects a pending request.
// @Tags requests
// @Produce json
// @Param X-User-Id header integer true "Caller id"
// @Param X-User-Role header string true "Caller role" Enums(admin)
// @Param id path integer true "Request ID"
// @Success 200 {object} model.BorrowRequest "Rejected request"
// @Failure 400 {object} echo.HTTPError "Bad request"
// @Failure 401 {object} echo.HTTPError "Missing or invalid identity headers"
// @Failure 403 {object} echo.HTTPError "Caller has the wrong role"
// @Failure 404 {object} echo.HTTPError "Not found"
// @Failure 409 {object} echo.HTTPError "Request is not pending"
// @Failure 500 {object} echo.HTTPError "Internal Server Error"
// @Router /api/v1/admin/requests/{id}/reject [post]
func (h *Handler) RejectRequest(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	req, err := h.lendingSvc.RejectRequest(c.Request().Context(), id)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, req)
}

// Dashboard godoc
// @Summary Library statistics
// @Description Returns catalog, loan and request counters.
// @Tags dashboard
// @Produce json
// @Param X-User-Id header integer true "Caller id"
// @Param X-User-Role header string true "Caller role" Enums(admin)
// @Success 200 {object} model.Stats "Statistics"
// @Failure 401 {object} echo.HTTPError "Missing or invalid identity headers"
// @Failure 403 {object} echo.HTTPError "Caller has the wrong role"
// @Failure 500 {object} echo.HTTPError "Internal Server Error"
// @Router /api/v1/admin/dashboard [get]
func (h *Handler) Dashboard(c echo.Context) error {
	stats, err := h.lendingSvc.Stats(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, stats)
}
