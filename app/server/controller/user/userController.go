package userctrl

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"shareit/model"
	us "shareit/service/user"
)

type Controller struct {
	Svc us.Service
	Log *slog.Logger
}

// POST /users
func (h *Controller) Create(c echo.Context) error {
	var req model.UserCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}

	u, err := h.Svc.Create(c.Request().Context(), req)
	if err != nil {
		return h.mapError(c, "user create", err)
	}
	return c.JSON(http.StatusCreated, u)
}

// GET /users
func (h *Controller) List(c echo.Context) error {
	users, err := h.Svc.List(c.Request().Context())
	if err != nil {
		return h.mapError(c, "user list", err)
	}
	if users == nil {
		users = []model.User{}
	}
	return c.JSON(http.StatusOK, users)
}

// GET /users/:id
func (h *Controller) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	u, err := h.Svc.GetByID(c.Request().Context(), id)
	if err != nil {
		return h.mapError(c, "user get", err)
	}
	return c.JSON(http.StatusOK, u)
}

// PATCH /users/:id
func (h *Controller) Patch(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	var req model.UserPatchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}

	u, err := h.Svc.Patch(c.Request().Context(), id, req)
	if err != nil {
		return h.mapError(c, "user patch", err)
	}
	return c.JSON(http.StatusOK, u)
}

// DELETE /users/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return h.mapError(c, "user delete", err)
	}
	return c.NoContent(http.StatusOK)
}

func (h *Controller) mapError(c echo.Context, op string, err error) error {
	switch {
	case errors.Is(err, us.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, us.ErrEmailTaken):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	default:
		rid := c.Response().Header().Get(echo.HeaderXRequestID)
		h.Log.Error(op, "err", err, "req_id", rid, "path", c.Path())
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}
