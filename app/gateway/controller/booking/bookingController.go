package bookingctrl

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"shareit/app/gateway/client"
	"shareit/app/gateway/controller"
	"shareit/app/gateway/validation"
	"shareit/app/identity"
	"shareit/model"
)

type Controller struct {
	Cl  *client.Client
	V   *validator.Validate
	Log *slog.Logger
}

// POST /bookings — the gateway is the stricter validator here: it also
// rejects a start date in the past, which the server does not.
func (h *Controller) Create(c echo.Context) error {
	uid, err := identity.FromHeader(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req model.BookingCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, validation.FieldErrors(err))
	}
	if !req.Start.Time.Before(req.End.Time) {
		return c.JSON(http.StatusBadRequest, echo.Map{"start": "must be before end"})
	}
	if req.Start.Time.Before(time.Now()) {
		return c.JSON(http.StatusBadRequest, echo.Map{"start": "must not be in the past"})
	}

	resp, err := h.Cl.Post(c.Request().Context(), "/bookings", uid, req)
	if err != nil {
		return controller.Unavailable(c, h.Log, "booking create", err)
	}
	return controller.Relay(c, resp)
}

// PATCH /bookings/:bookingId?approved=
func (h *Controller) SetApproved(c echo.Context) error {
	uid, err := identity.FromHeader(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if _, err := strconv.ParseBool(c.QueryParam("approved")); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"approved": "must be true or false"})
	}

	q := url.Values{"approved": {c.QueryParam("approved")}}
	resp, err := h.Cl.Patch(c.Request().Context(), "/bookings/"+c.Param("bookingId"), q, uid, nil)
	if err != nil {
		return controller.Unavailable(c, h.Log, "booking approve", err)
	}
	return controller.Relay(c, resp)
}

// GET /bookings/:bookingId
func (h *Controller) Get(c echo.Context) error {
	uid, err := identity.FromHeader(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	resp, err := h.Cl.Get(c.Request().Context(), "/bookings/"+c.Param("bookingId"), nil, uid)
	if err != nil {
		return controller.Unavailable(c, h.Log, "booking get", err)
	}
	return controller.Relay(c, resp)
}

// GET /bookings?state=
func (h *Controller) ListByBooker(c echo.Context) error {
	return h.list(c, "/bookings", "booking list")
}

// GET /bookings/owner?state=
func (h *Controller) ListByOwner(c echo.Context) error {
	return h.list(c, "/bookings/owner", "booking list owner")
}

func (h *Controller) list(c echo.Context, path, op string) error {
	uid, err := identity.FromHeader(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if _, err := model.ParseBookingState(c.QueryParam("state")); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"state": err.Error()})
	}

	var q url.Values
	if s := c.QueryParam("state"); s != "" {
		q = url.Values{"state": {s}}
	}
	resp, err := h.Cl.Get(c.Request().Context(), path, q, uid)
	if err != nil {
		return controller.Unavailable(c, h.Log, op, err)
	}
	return controller.Relay(c, resp)
}
