package requestctrl

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"shareit/app/gateway/cache"
	"shareit/app/gateway/client"
	"shareit/app/gateway/controller"
	"shareit/app/gateway/validation"
	"shareit/app/identity"
	"shareit/model"
)

const (
	cacheTTL      = 5 * time.Minute
	cacheCapacity = 512
)

// Controller caches the read endpoints for item requests. Every write
// through the gateway invalidates the cache, so a cached read never
// outlives a change it should reflect.
type Controller struct {
	Cl    *client.Client
	V     *validator.Validate
	Log   *slog.Logger
	cache *cache.Cache[client.Response]
}

func New(cl *client.Client, v *validator.Validate, log *slog.Logger) *Controller {
	return &Controller{
		Cl:    cl,
		V:     v,
		Log:   log,
		cache: cache.New[client.Response](cacheTTL, cacheCapacity),
	}
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
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, validation.FieldErrors(err))
	}

	resp, err := h.Cl.Post(c.Request().Context(), "/requests", uid, req)
	if err != nil {
		return controller.Unavailable(c, h.Log, "request create", err)
	}
	h.cache.Invalidate()
	return controller.Relay(c, resp)
}

// GET /requests
func (h *Controller) GetOwn(c echo.Context) error {
	return h.cached(c, "/requests", "own", "request list")
}

// GET /requests/all
func (h *Controller) GetAll(c echo.Context) error {
	return h.cached(c, "/requests/all", "all", "request list all")
}

// GET /requests/:requestId
func (h *Controller) Get(c echo.Context) error {
	return h.cached(c, "/requests/"+c.Param("requestId"), "byid:"+c.Param("requestId"), "request get")
}

func (h *Controller) cached(c echo.Context, path, channel, op string) error {
	uid, err := identity.FromHeader(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	key := fmt.Sprintf("%s:%d", channel, uid)
	resp, err := h.cache.GetOrCompute(key, func() (client.Response, error) {
		r, err := h.Cl.Get(c.Request().Context(), path, nil, uid)
		if err != nil {
			return client.Response{}, err
		}
		return *r, nil
	})
	if err != nil {
		return controller.Unavailable(c, h.Log, op, err)
	}
	return controller.Relay(c, &resp)
}
