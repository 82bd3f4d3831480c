package requestctrl

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"shareit/app/identity"
	"shareit/model"
	rqs "shareit/service/request"
)

type Controller struct {
	Svc rqs.Service
	Log *slog.Logger
}

// POST /requests
func (h *Controller) Create(c echo.Context) error {
	uid, err := identity.FromHeader(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req model.RequestCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}

	out, err := h.Svc.Create(c.Request().Context(), uid, req)
	if err != nil {
		return h.mapError(c, "request create", err)
	}
	return c.JSON(http.StatusCreated, out)
}

// GET /requests
func (h *Controller) GetOwn(c echo.Context) error {
	uid, err := identity.FromHeader(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	out, err := h.Svc.GetOwn(c.Request().Context(), uid)
	if err != nil {
		return h.mapError(c, "request list", err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /requests/all
func (h *Controller) GetAll(c echo.Context) error {
	uid, err := identity.FromHeader(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	out, err := h.Svc.GetAll(c.Request().Context(), uid)
	if err != nil {
		return h.mapError(c, "request list all", err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /requests/:requestId
func (h *Controller) Get(c echo.Context) error {
	uid, err := identity.FromHeader(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	id, err := strconv.ParseInt(c.Param("requestId"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request id"})
	}
	out, err := h.Svc.Get(c.Request().Context(), id, uid)
	if err != nil {
		return h.mapError(c, "request get", err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Controller) mapError(c echo.Context, op string, err error) error {
	switch {
	case errors.Is(err, rqs.ErrUserNotFound), errors.Is(err, rqs.ErrRequestNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	default:
		rid := c.Response().Header().Get(echo.HeaderXRequestID)
		h.Log.Error(op, "err", err, "req_id", rid, "path", c.Path())
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
