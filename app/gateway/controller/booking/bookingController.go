package booking

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ds-skoropad/java-shareit/app/gateway/client"
	"github.com/ds-skoropad/java-shareit/model"
)

type Controller struct {
	Cl  *client.Client
	Log *slog.Logger
}

type CreateBookingReq struct {
	ItemID int64           `json:"itemId" validate:"required,gt=0"`
	Start  *model.DateTime `json:"start" validate:"required"`
	End    *model.DateTime `json:"end" validate:"required"`
}

func (h *Controller) relay(c echo.Context, resp *client.Response, err error) error {
	if err != nil {
		h.Log.Error("forward to server", "err", err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "server unavailable"})
	}
	return c.Blob(resp.Status, echo.MIMEApplicationJSON, resp.Body)
}

// POST /bookings
func (h *Controller) Create(c echo.Context) error {
	var req CreateBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation error", "message": err.Error()})
	}
	start, end := req.Start.Time(), req.End.Time()
	if !end.After(start) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start must be before end"})
	}
	if start.Before(time.Now()) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start must not be in the past"})
	}
	uid, _ := c.Get("user_id").(int64)

	resp, err := h.Cl.Do(c.Request().Context(), http.MethodPost, "/bookings", uid, nil, req)
	return h.relay(c, resp, err)
}

// PATCH /bookings/:id?approved=bool
func (h *Controller) Decide(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if _, err := strconv.ParseBool(c.QueryParam("approved")); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid approved param"})
	}
	uid, _ := c.Get("user_id").(int64)

	query := url.Values{"approved": {c.QueryParam("approved")}}
	resp, err := h.Cl.Do(c.Request().Context(), http.MethodPatch, "/bookings/"+c.Param("id"), uid, query, nil)
	return h.relay(c, resp, err)
}

// GET /bookings/:id
func (h *Controller) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)

	resp, err := h.Cl.Do(c.Request().Context(), http.MethodGet, "/bookings/"+c.Param("id"), uid, nil, nil)
	return h.relay(c, resp, err)
}

// GET /bookings?state=
func (h *Controller) ByBooker(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)

	resp, err := h.Cl.Do(c.Request().Context(), http.MethodGet, "/bookings", uid, stateQuery(c), nil)
	return h.relay(c, resp, err)
}

// GET /bookings/owner?state=
func (h *Controller) ByOwner(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)

	resp, err := h.Cl.Do(c.Request().Context(), http.MethodGet, "/bookings/owner", uid, stateQuery(c), nil)
	return h.relay(c, resp, err)
}

// stateQuery forwards the state filter untouched. The server owns the
// closed filter set and rejects unknown values.
func stateQuery(c echo.Context) url.Values {
	if s := c.QueryParam("state"); s != "" {
		return url.Values{"state": {s}}
	}
	return nil
}
