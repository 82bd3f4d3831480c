package server

import (
	"github.com/labstack/echo/v4"

	bookingctrl "shareit/app/server/controller/booking"
	itemctrl "shareit/app/server/controller/item"
	requestctrl "shareit/app/server/controller/request"
	userctrl "shareit/app/server/controller/user"
)

type C struct {
	User    *userctrl.Controller
	Item    *itemctrl.Controller
	Booking *bookingctrl.Controller
	Request *requestctrl.Controller
}

func Register(e *echo.Echo, c C) {
	// Users
	e.POST("/users", c.User.Create)
	e.GET("/users", c.User.List)
	e.GET("/users/:id", c.User.Get)
	e.PATCH("/users/:id", c.User.Patch)
	e.DELETE("/users/:id", c.User.Delete)

	// Items
	e.GET("/items", c.Item.GetAll)
	e.GET("/items/search", c.Item.Search)
	e.GET("/items/:id", c.Item.Get)
	e.POST("/items", c.Item.Create)
	e.PATCH("/items/:id", c.Item.Patch)
	e.POST("/items/:itemId/comment", c.Item.CreateComment)

	// Bookings
	e.POST("/bookings", c.Booking.Create)
	e.PATCH("/bookings/:bookingId", c.Booking.SetApproved)
	e.GET("/bookings/owner", c.Booking.ListByOwner)
	e.GET("/bookings/:bookingId", c.Booking.Get)
	e.GET("/bookings", c.Booking.ListByBooker)

	// Requests
	e.POST("/requests", c.Request.Create)
	e.GET("/requests", c.Request.GetOwn)
	e.GET("/requests/all", c.Request.GetAll)
	e.GET("/requests/:requestId", c.Request.Get)
}
