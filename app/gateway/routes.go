package gateway

import (
	"github.com/labstack/echo/v4"

	"github.com/ds-skoropad/java-shareit/app/gateway/controller/booking"
	"github.com/ds-skoropad/java-shareit/app/gateway/controller/item"
	"github.com/ds-skoropad/java-shareit/app/gateway/controller/request"
	"github.com/ds-skoropad/java-shareit/app/gateway/controller/user"
)

type C struct {
	User    *user.Controller
	Item    *item.Controller
	Booking *booking.Controller
	Request *request.Controller
}

func Register(e *echo.Echo, c C) {
	users := e.Group("/users")
	users.POST("", c.User.Create)
	users.GET("", c.User.List)
	users.GET("/:id", c.User.Get)
	users.PATCH("/:id", c.User.Update)
	users.DELETE("/:id", c.User.Delete)

	items := e.Group("/items", UserID())
	items.POST("", c.Item.Create)
	items.PATCH("/:id", c.Item.Update)
	items.GET("/:id", c.Item.Get)
	items.GET("", c.Item.ByOwner)
	items.GET("/search", c.Item.Search)
	items.POST("/:id/comment", c.Item.CreateComment)

	bookings := e.Group("/bookings", UserID())
	bookings.POST("", c.Booking.Create)
	bookings.PATCH("/:id", c.Booking.Decide)
	bookings.GET("/:id", c.Booking.Get)
	bookings.GET("", c.Booking.ByBooker)
	bookings.GET("/owner", c.Booking.ByOwner)

	requests := e.Group("/requests", UserID())
	requests.POST("", c.Request.Create)
	requests.GET("", c.Request.ByRequestor)
	requests.GET("/all", c.Request.ByOthers)
	requests.GET("/:id", c.Request.Get)
}
