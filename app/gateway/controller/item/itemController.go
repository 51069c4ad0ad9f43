package item

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ds-skoropad/java-shareit/app/gateway/client"
)

type Controller struct {
	Cl  *client.Client
	Log *slog.Logger
}

type CreateItemReq struct {
	Name        string `json:"name" validate:"required,min=4,max=60"`
	Description string `json:"description" validate:"required,min=4,max=200"`
	Available   *bool  `json:"available" validate:"required"`
	RequestID   *int64 `json:"requestId" validate:"omitempty,gt=0"`
}

type PatchItemReq struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=4,max=60"`
	Description *string `json:"description,omitempty" validate:"omitempty,min=4,max=200"`
	Available   *bool   `json:"available,omitempty"`
}

type CreateCommentReq struct {
	Text string `json:"text" validate:"required,min=4,max=1024"`
}

func (h *Controller) relay(c echo.Context, resp *client.Response, err error) error {
	if err != nil {
		h.Log.Error("forward to server", "err", err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "server unavailable"})
	}
	return c.Blob(resp.Status, echo.MIMEApplicationJSON, resp.Body)
}

// POST /items
func (h *Controller) Create(c echo.Context) error {
	var req CreateItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation error", "message": err.Error()})
	}
	uid, _ := c.Get("user_id").(int64)

	resp, err := h.Cl.Do(c.Request().Context(), http.MethodPost, "/items", uid, nil, req)
	return h.relay(c, resp, err)
}

// PATCH /items/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req PatchItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation error", "message": err.Error()})
	}
	uid, _ := c.Get("user_id").(int64)

	resp, err := h.Cl.Do(c.Request().Context(), http.MethodPatch, "/items/"+c.Param("id"), uid, nil, req)
	return h.relay(c, resp, err)
}

// GET /items/:id
func (h *Controller) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)

	resp, err := h.Cl.Do(c.Request().Context(), http.MethodGet, "/items/"+c.Param("id"), uid, nil, nil)
	return h.relay(c, resp, err)
}

// GET /items
func (h *Controller) ByOwner(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)

	resp, err := h.Cl.Do(c.Request().Context(), http.MethodGet, "/items", uid, nil, nil)
	return h.relay(c, resp, err)
}

// GET /items/search?text=
func (h *Controller) Search(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)

	query := url.Values{"text": {c.QueryParam("text")}}
	resp, err := h.Cl.Do(c.Request().Context(), http.MethodGet, "/items/search", uid, query, nil)
	return h.relay(c, resp, err)
}

// POST /items/:id/comment
func (h *Controller) CreateComment(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req CreateCommentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation error", "message": err.Error()})
	}
	if strings.TrimSpace(req.Text) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "text must not be blank"})
	}
	uid, _ := c.Get("user_id").(int64)

	resp, err := h.Cl.Do(c.Request().Context(), http.MethodPost, "/items/"+c.Param("id")+"/comment", uid, nil, req)
	return h.relay(c, resp, err)
}
