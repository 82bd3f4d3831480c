// Package main ShareIt server API.
//
// @title           ShareIt Server API
// @version         1.0
// @description     ShareIt server (users, items, bookings, item requests).
// @BasePath        /
// @schemes         http
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"shareit/app/mw"
	"shareit/app/server"
	bookingctrl "shareit/app/server/controller/booking"
	itemctrl "shareit/app/server/controller/item"
	requestctrl "shareit/app/server/controller/request"
	userctrl "shareit/app/server/controller/user"
	"shareit/config"
	bookingrepo "shareit/repository/booking"
	itemrepo "shareit/repository/item"
	requestrepo "shareit/repository/request"
	userrepo "shareit/repository/user"
	bookingsvc "shareit/service/booking"
	itemsvc "shareit/service/item"
	requestsvc "shareit/service/request"
	usersvc "shareit/service/user"
	"shareit/util/database"
)

func main() {

	cfg := config.LoadServer()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := database.Migrate(ctx, cfg.DatabaseURL); err != nil {
		log.Error("migrations failed", "err", err)
		os.Exit(1)
	}

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	ur := userrepo.New(db)
	ir := itemrepo.New(db)
	br := bookingrepo.New(db)
	rr := requestrepo.New(db)

	// services
	us := usersvc.New(ur)
	is := itemsvc.New(ir)
	bs := bookingsvc.New(db.Pool, br)
	rs := requestsvc.New(rr)

	// controllers
	userC := &userctrl.Controller{Svc: us, Log: log}
	itemC := &itemctrl.Controller{Svc: is, Log: log}
	bookingC := &bookingctrl.Controller{Svc: bs, Log: log}
	requestC := &requestctrl.Controller{Svc: rs, Log: log}

	// echo
	e := echo.New()
	mw.Register(e)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	server.Register(e, server.C{
		User:    userC,
		Item:    itemC,
		Booking: bookingC,
		Request: requestC,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Info("starting server", "port", port)

	e.Logger.Fatal(e.Start(":" + port))
}
