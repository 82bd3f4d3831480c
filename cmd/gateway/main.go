// Package main ShareIt gateway.
//
// Thin front door for the ShareIt server: validates request shape and
// forwards everything else.
package main

import (
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"shareit/app/gateway"
	"shareit/app/gateway/client"
	bookingctrl "shareit/app/gateway/controller/booking"
	itemctrl "shareit/app/gateway/controller/item"
	requestctrl "shareit/app/gateway/controller/request"
	userctrl "shareit/app/gateway/controller/user"
	"shareit/app/gateway/validation"
	"shareit/app/mw"
	"shareit/config"
)

func main() {

	cfg := config.LoadGateway()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cl := client.New(cfg.ServerURL)

	// controllers
	v := validator.New()
	userC := &userctrl.Controller{Cl: cl, V: v, Log: log}
	itemC := &itemctrl.Controller{Cl: cl, V: v, Log: log}
	bookingC := &bookingctrl.Controller{Cl: cl, V: v, Log: log}
	requestC := requestctrl.New(cl, v, log)

	// echo
	e := echo.New()
	mw.Register(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Gateway is healthy",
		})
	})

	gateway.Register(e, gateway.C{
		User:    userC,
		Item:    itemC,
		Booking: bookingC,
		Request: requestC,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Info("starting gateway", "port", port, "server_url", cfg.ServerURL)

	e.Logger.Fatal(e.Start(":" + port))
}
