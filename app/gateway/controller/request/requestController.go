package request

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

type CreateRequestReq struct {
	Description string `json:"description" validate:"required,min=4,max=1024"`
}

func (h *Controller) relay(c echo.Context, resp *client.Response, err error) error {
	if err != nil {
		h.Log.Error("forward to server", "err", err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "server unavailable"})
	}
	return c.Blob(resp.Status, echo.MIMEApplicationJSON, resp.Body)
}

// POST /requests
func (h *Controller) Create(c echo.Context) error {
	var req CreateRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation error", "message": err.Error()})
	}
	uid, _ := c.Get("user_id").(int64)

	resp, err := h.Cl.Do(c.Request().Context(), http.MethodPost, "/requests", uid, nil, req)
	return h.relay(c, resp, err)
}

// GET /requests
func (h *Controller) ByRequestor(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)

	resp, err := h.Cl.Do(c.Request().Context(), http.MethodGet, "/requests", uid, nil, nil)
	return h.relay(c, resp, err)
}

// GET /requests/all
func (h *Controller) ByOthers(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)

	resp, err := h.Cl.Do(c.Request().Context(), http.MethodGet, "/requests/all", uid, nil, nil)
	return h.relay(c, resp, err)
}

// GET /requests/:id
func (h *Controller) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)

	resp, err := h.Cl.Do(c.Request().Context(), http.MethodGet, "/requests/"+c.Param("id"), uid, nil, nil)
	return h.relay(c, resp, err)
}
