// app/gateway/controller/relay.go
package controller

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"shareit/app/gateway/client"
)

// Relay writes the server's response back to the caller unchanged.
func Relay(c echo.Context, resp *client.Response) error {
	if len(resp.Body) == 0 {
		return c.NoContent(resp.Status)
	}
	return c.Blob(resp.Status, echo.MIMEApplicationJSON, resp.Body)
}

// Unavailable reports a failed forward attempt: the server did not
// answer at all.
func Unavailable(c echo.Context, log *slog.Logger, op string, err error) error {
	rid := c.Response().Header().Get(echo.HeaderXRequestID)
	log.Error(op, "err", err, "req_id", rid, "path", c.Path())
	return c.JSON(http.StatusBadGateway, echo.Map{"error": "shareit server unavailable"})
}
