package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Astemirdum/lending-service/lending/internal/model"
)

// SubmitRequest godoc
// @Summary Submit a borrow request
// @Description Queues a request to borrow a book for the calling student.
// @Tags student
// @Accept json
// @Produce json
// @Param X-User-Id header integer true "Caller id"
// @Param X-User-Role header string true "Caller role" Enums(student)
// @Param request body model.SubmitRequest true "Book to borrow"
// @Success 201 {object} model.BorrowRequest "Pending request"
// @Failure 400 {object} echo.HTTPError "Bad request"
// @Failure 401 {object} echo.HTTPError "Missing or invalid identity headers"
// @Failure 403 {object} echo.HTTPError "Caller has the wrong role"
// @Failure 404 {object} echo.HTTPError "Not found"
// @Failure 500 {object} echo.HTTPError "Internal Server Error"
// @Router /api/v1/student/requests [post]
func (h *Handler) SubmitRequest(c echo.Context) error {
	var req model.SubmitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	created, err := h.lendingSvc.SubmitRequest(c.Request().Context(), principal(c).ID, req.BookID)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// MyRequests godoc
// @Summary My borrow requests
// @Description Returns the calling student's requests.
// @Tags student
// @Produce json
// @Param X-User-Id header integer true "Caller id"
// @Param X-User-Role header string true "Caller role" Enums(student)
// @Success 200 {array} model.BorrowRequest "Requests"
// @Failure 401 {object} echo.HTTPError "Missing or invalid identity headers"
// @Failure 403 {object} echo.HTTPError "Caller has the wrong role"
// @Failure 500 {object} echo.HTTPError "Internal Server Error"
// @Router /api/v1/student/requests [get]
func (h *Handler) MyRequests(c echo.Context) error {
	items, err := h.lendingSvc.ListRequests(c.Request().Context(), model.RequestFilter{
		StudentID: principal(c).ID,
	})
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

// MyLoans godoc
// @Summary My loans
// @Description Returns the calling student's loans.
// @Tags student
// @Produce json
// @Param X-User-Id header integer true "Caller id"
// @Param X-User-Role header string true "Caller role" Enums(student)
// @Success 200 {array} model.Loan "Loans"
// @Failure 401 {object} echo.HTTPError "Missing or invalid identity headers"
// @Failure 403 {object} echo.HTTPError "Caller has the wrong role"
// @Failure 500 {object} echo.HTTPError "Internal Server Error"
// @Router /api/v1/student/loans [get]
func (h *Handler) MyLoans(c echo.Context) error {
	loans, err := h.lendingSvc.ListLoans(c.Request().Context(), model.LoanFilter{
		StudentID: principal(c).ID,
	})
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, loans)
}

// Overview godoc
// @Summary My overview
// @Description Returns current and past loans and pending requests of the calling student.
// @Tags student
// @Produce json
// @Param X-User-Id header integer true "Caller id"
// @Param X-User-Role header string true "Caller role" Enums(student)
// @Success 200 {object} model.StudentOverview "Overview"
// @Failure 401 {object} echo.HTTPError "Missing or invalid identity headers"
// @Failure 403 {object} echo.HTTPError "Caller has the wrong role"
// @Failure 500 {object} echo.HTTPError "Internal Server Error"
// @Router /api/v1/student/overview [get]
func (h *Handler) Overview(c echo.Context) error {
	overview, err := h.lendingSvc.StudentOverview(c.Request().Context(), principal(c).ID)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, overview)
}
