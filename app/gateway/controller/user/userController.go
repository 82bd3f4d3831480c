package userctrl

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"shareit/app/gateway/client"
	"shareit/app/gateway/controller"
	"shareit/app/gateway/validation"
	"shareit/model"
)

type Controller struct {
	Cl  *client.Client
	V   *validator.Validate
	Log *slog.Logger
}

// POST /users
func (h *Controller) Create(c echo.Context) error {
	var req model.UserCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, validation.FieldErrors(err))
	}

	resp, err := h.Cl.Post(c.Request().Context(), "/users", 0, req)
	if err != nil {
		return controller.Unavailable(c, h.Log, "user create", err)
	}
	return controller.Relay(c, resp)
}

// GET /users/:id
func (h *Controller) Get(c echo.Context) error {
	resp, err := h.Cl.Get(c.Request().Context(), "/users/"+c.Param("id"), nil, 0)
	if err != nil {
		return controller.Unavailable(c, h.Log, "user get", err)
	}
	return controller.Relay(c, resp)
}

// PATCH /users/:id
func (h *Controller) Patch(c echo.Context) error {
	var req model.UserPatchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, validation.FieldErrors(err))
	}

	resp, err := h.Cl.Patch(c.Request().Context(), "/users/"+c.Param("id"), nil, 0, req)
	if err != nil {
		return controller.Unavailable(c, h.Log, "user patch", err)
	}
	return controller.Relay(c, resp)
}

// DELETE /users/:id
func (h *Controller) Delete(c echo.Context) error {
	resp, err := h.Cl.Delete(c.Request().Context(), "/users/"+c.Param("id"), 0)
	if err != nil {
		return controller.Unavailable(c, h.Log, "user delete", err)
	}
	return controller.Relay(c, resp)
}
