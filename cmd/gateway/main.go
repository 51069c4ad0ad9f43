package main

import (
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/ds-skoropad/java-shareit/app/gateway"
	"github.com/ds-skoropad/java-shareit/app/gateway/client"
	bookingctrl "github.com/ds-skoropad/java-shareit/app/gateway/controller/booking"
	itemctrl "github.com/ds-skoropad/java-shareit/app/gateway/controller/item"
	requestctrl "github.com/ds-skoropad/java-shareit/app/gateway/controller/request"
	userctrl "github.com/ds-skoropad/java-shareit/app/gateway/controller/user"
	"github.com/ds-skoropad/java-shareit/app/gateway/validation"
	"github.com/ds-skoropad/java-shareit/config"
)

func main() {

	cfg := config.LoadGateway()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	cl := client.New(cfg.ServerURL)

	userC := &userctrl.Controller{Cl: cl, Log: log}
	itemC := &itemctrl.Controller{Cl: cl, Log: log}
	bookingC := &bookingctrl.Controller{Cl: cl, Log: log}
	requestC := &requestctrl.Controller{Cl: cl, Log: log}

	e := echo.New()
	gateway.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{"status": "ok"})
	})

	gateway.Register(e, gateway.C{
		User:    userC,
		Item:    itemC,
		Booking: bookingC,
		Request: requestC,
	})

	slog.Info("starting gateway", "port", cfg.Port, "server_url", cfg.ServerURL, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
