// Package main ShareIt API.
//
// @title           ShareIt API
// @version         1.0
// @description     Item sharing service (users, items, bookings, requests).
// @BasePath        /
// @schemes         http
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/ds-skoropad/java-shareit/app/echoServer"
	bookingctrl "github.com/ds-skoropad/java-shareit/app/echoServer/controller/booking"
	itemctrl "github.com/ds-skoropad/java-shareit/app/echoServer/controller/item"
	requestctrl "github.com/ds-skoropad/java-shareit/app/echoServer/controller/request"
	userctrl "github.com/ds-skoropad/java-shareit/app/echoServer/controller/user"
	"github.com/ds-skoropad/java-shareit/config"
	bookingrepo "github.com/ds-skoropad/java-shareit/repository/booking"
	commentrepo "github.com/ds-skoropad/java-shareit/repository/comment"
	itemrepo "github.com/ds-skoropad/java-shareit/repository/item"
	requestrepo "github.com/ds-skoropad/java-shareit/repository/request"
	userrepo "github.com/ds-skoropad/java-shareit/repository/user"
	bookingsvc "github.com/ds-skoropad/java-shareit/service/booking"
	itemsvc "github.com/ds-skoropad/java-shareit/service/item"
	requestsvc "github.com/ds-skoropad/java-shareit/service/request"
	usersvc "github.com/ds-skoropad/java-shareit/service/user"
	"github.com/ds-skoropad/java-shareit/util/database"
)

func main() {

	cfg := config.LoadServer()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

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
	cr := commentrepo.New(db)
	rr := requestrepo.New(db)

	// services
	us := usersvc.New(ur)
	rs := requestsvc.New(rr, ur, ir)
	is := itemsvc.New(ir, ur, rr, cr, br)
	bs := bookingsvc.New(db.Pool, br, ir, ur)

	// controllers
	userC := &userctrl.Controller{Svc: us, Log: log}
	itemC := &itemctrl.Controller{Svc: is, Log: log}
	bookingC := &bookingctrl.Controller{Svc: bs, Log: log}
	requestC := &requestctrl.Controller{Svc: rs, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{"status": "ok"})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		User:    userC,
		Item:    itemC,
		Booking: bookingC,
		Request: requestC,
	})

	slog.Info("starting server", "port", cfg.Port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
