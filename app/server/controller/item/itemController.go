package itemctrl

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"shareit/app/identity"
	"shareit/model"
	is "shareit/service/item"
)

type Controller struct {
	Svc is.Service
	Log *slog.Logger
}

// GET /items
func (h *Controller) GetAll(c echo.Context) error {
	uid, err := identity.FromHeader(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	views, err := h.Svc.GetAll(c.Request().Context(), uid)
	if err != nil {
		return h.mapError(c, "item list", err)
	}
	return c.JSON(http.StatusOK, views)
}

// GET /items/:id — the identity header is optional here: anonymous
// viewers get the item without the booking markers.
func (h *Controller) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}
	view, err := h.Svc.Get(c.Request().Context(), id, identity.Optional(c))
	if err != nil {
		return h.mapError(c, "item get", err)
	}
	return c.JSON(http.StatusOK, view)
}

// GET /items/search?text=
func (h *Controller) Search(c echo.Context) error {
	items, err := h.Svc.Search(c.Request().Context(), c.QueryParam("text"))
	if err != nil {
		return h.mapError(c, "item search", err)
	}
	return c.JSON(http.StatusOK, items)
}

// POST /items
func (h *Controller) Create(c echo.Context) error {
	uid, err := identity.FromHeader(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req model.ItemCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if req.Available == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "available is required"})
	}

	it, err := h.Svc.Create(c.Request().Context(), uid, req)
	if err != nil {
		return h.mapError(c, "item create", err)
	}
	return c.JSON(http.StatusCreated, it)
}

// PATCH /items/:id
func (h *Controller) Patch(c echo.Context) error {
	uid, err := identity.FromHeader(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}
	var req model.ItemPatchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}

	it, err := h.Svc.Patch(c.Request().Context(), id, uid, req)
	if err != nil {
		return h.mapError(c, "item patch", err)
	}
	return c.JSON(http.StatusOK, it)
}

// POST /items/:itemId/comment
func (h *Controller) CreateComment(c echo.Context) error {
	uid, err := identity.FromHeader(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	itemID, err := strconv.ParseInt(c.Param("itemId"), 10, 64)
	if err != nil || itemID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}
	var req model.CommentCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}

	out, err := h.Svc.CreateComment(c.Request().Context(), uid, itemID, req)
	if err != nil {
		return h.mapError(c, "comment create", err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *Controller) mapError(c echo.Context, op string, err error) error {
	switch {
	case errors.Is(err, is.ErrUserNotFound),
		errors.Is(err, is.ErrItemNotFound),
		errors.Is(err, is.ErrRequestNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, is.ErrNotOwner):
		return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})
	case errors.Is(err, is.ErrNoBooking):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	default:
		rid := c.Response().Header().Get(echo.HeaderXRequestID)
		h.Log.Error(op, "err", err, "req_id", rid, "path", c.Path())
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
