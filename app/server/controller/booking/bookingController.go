package bookingctrl

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"shareit/app/identity"
	"shareit/model"
	bs "shareit/service/booking"
)

type Controller struct {
	Svc bs.Service
	Log *slog.Logger
}

// POST /bookings
func (h *Controller) Create(c echo.Context) error {
	uid, err := identity.FromHeader(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var req model.BookingCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if req.Start == nil || req.End == nil || req.ItemID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "itemId, start and end are required"})
	}

	out, err := h.Svc.Create(c.Request().Context(), uid, req)
	if err != nil {
		return h.mapError(c, "booking create", err)
	}
	return c.JSON(http.StatusCreated, out)
}

// PATCH /bookings/:bookingId?approved=
func (h *Controller) SetApproved(c echo.Context) error {
	uid, err := identity.FromHeader(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	id, err := strconv.ParseInt(c.Param("bookingId"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	approved, err := strconv.ParseBool(c.QueryParam("approved"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "approved must be true or false"})
	}

	out, err := h.Svc.SetApproved(c.Request().Context(), id, uid, approved)
	if err != nil {
		return h.mapError(c, "booking approve", err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /bookings/:bookingId
func (h *Controller) Get(c echo.Context) error {
	uid, err := identity.FromHeader(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	id, err := strconv.ParseInt(c.Param("bookingId"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	out, err := h.Svc.Get(c.Request().Context(), id, uid)
	if err != nil {
		return h.mapError(c, "booking get", err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /bookings?state=
func (h *Controller) ListByBooker(c echo.Context) error {
	return h.list(c, h.Svc.ListByBooker)
}

// GET /bookings/owner?state=
func (h *Controller) ListByOwner(c echo.Context) error {
	return h.list(c, h.Svc.ListByOwner)
}

func (h *Controller) list(c echo.Context,
	fn func(ctx context.Context, userID int64, state model.BookingState) ([]model.BookingResponse, error)) error {
	uid, err := identity.FromHeader(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	state, err := model.ParseBookingState(c.QueryParam("state"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	out, err := fn(c.Request().Context(), uid, state)
	if err != nil {
		return h.mapError(c, "booking list", err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Controller) mapError(c echo.Context, op string, err error) error {
	switch {
	case errors.Is(err, bs.ErrUserNotFound),
		errors.Is(err, bs.ErrItemNotFound),
		errors.Is(err, bs.ErrBookingNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, bs.ErrNotOwner), errors.Is(err, bs.ErrOwnsNothing):
		return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})
	case errors.Is(err, bs.ErrOverlap):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, bs.ErrUnavailable),
		errors.Is(err, bs.ErrDates),
		errors.Is(err, bs.ErrNotWaiting):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	default:
		rid := c.Response().Header().Get(echo.HeaderXRequestID)
		h.Log.Error(op, "err", err, "req_id", rid, "path", c.Path())
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
