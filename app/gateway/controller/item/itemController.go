package itemctrl

import (
	"log/slog"
	"net/http"
	"net/url"

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

// GET /items
func (h *Controller) GetAll(c echo.Context) error {
	uid, err := identity.FromHeader(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	resp, err := h.Cl.Get(c.Request().Context(), "/items", nil, uid)
	if err != nil {
		return controller.Unavailable(c, h.Log, "item list", err)
	}
	return controller.Relay(c, resp)
}

// GET /items/:id
func (h *Controller) Get(c echo.Context) error {
	resp, err := h.Cl.Get(c.Request().Context(), "/items/"+c.Param("id"), nil, identity.Optional(c))
	if err != nil {
		return controller.Unavailable(c, h.Log, "item get", err)
	}
	return controller.Relay(c, resp)
}

// GET /items/search?text=
func (h *Controller) Search(c echo.Context) error {
	q := url.Values{"text": {c.QueryParam("text")}}
	resp, err := h.Cl.Get(c.Request().Context(), "/items/search", q, identity.Optional(c))
	if err != nil {
		return controller.Unavailable(c, h.Log, "item search", err)
	}
	return controller.Relay(c, resp)
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
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, validation.FieldErrors(err))
	}

	resp, err := h.Cl.Post(c.Request().Context(), "/items", uid, req)
	if err != nil {
		return controller.Unavailable(c, h.Log, "item create", err)
	}
	return controller.Relay(c, resp)
}

// PATCH /items/:id
func (h *Controller) Patch(c echo.Context) error {
	uid, err := identity.FromHeader(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req model.ItemPatchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, validation.FieldErrors(err))
	}

	resp, err := h.Cl.Patch(c.Request().Context(), "/items/"+c.Param("id"), nil, uid, req)
	if err != nil {
		return controller.Unavailable(c, h.Log, "item patch", err)
	}
	return controller.Relay(c, resp)
}

// POST /items/:itemId/comment
func (h *Controller) CreateComment(c echo.Context) error {
	uid, err := identity.FromHeader(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req model.CommentCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, validation.FieldErrors(err))
	}

	resp, err := h.Cl.Post(c.Request().Context(), "/items/"+c.Param("itemId")+"/comment", uid, req)
	if err != nil {
		return controller.Unavailable(c, h.Log, "comment create", err)
	}
	return controller.Relay(c, resp)
}
