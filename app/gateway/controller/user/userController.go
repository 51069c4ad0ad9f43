package user

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ds-skoropad/java-shareit/app/gateway/client"
)

type Controller struct {
	Cl  *client.Client
	Log *slog.Logger
}

type CreateUserReq struct {
	Name  string `json:"name" validate:"required,min=4,max=255"`
	Email string `json:"email" validate:"required,email,max=255"`
}

type PatchUserReq struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=4,max=255"`
	Email *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
}

func (h *Controller) relay(c echo.Context, resp *client.Response, err error) error {
	if err != nil {
		h.Log.Error("forward to server", "err", err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "server unavailable"})
	}
	return c.Blob(resp.Status, echo.MIMEApplicationJSON, resp.Body)
}

// POST /users
func (h *Controller) Create(c echo.Context) error {
	var req CreateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation error", "message": err.Error()})
	}
	resp, err := h.Cl.Do(c.Request().Context(), http.MethodPost, "/users", 0, nil, req)
	return h.relay(c, resp, err)
}

// GET /users
func (h *Controller) List(c echo.Context) error {
	resp, err := h.Cl.Do(c.Request().Context(), http.MethodGet, "/users", 0, nil, nil)
	return h.relay(c, resp, err)
}

// GET /users/:id
func (h *Controller) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	resp, err := h.Cl.Do(c.Request().Context(), http.MethodGet, "/users/"+c.Param("id"), 0, nil, nil)
	return h.relay(c, resp, err)
}

// PATCH /users/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req PatchUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation error", "message": err.Error()})
	}
	resp, err := h.Cl.Do(c.Request().Context(), http.MethodPatch, "/users/"+c.Param("id"), 0, nil, req)
	return h.relay(c, resp, err)
}

// DELETE /users/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	resp, err := h.Cl.Do(c.Request().Context(), http.MethodDelete, "/users/"+c.Param("id"), 0, nil, nil)
	return h.relay(c, resp, err)
}
