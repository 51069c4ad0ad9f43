package booking

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ds-skoropad/java-shareit/model"
	bs "github.com/ds-skoropad/java-shareit/service/booking"
)

type Controller struct {
	Svc bs.Service
	Log *slog.Logger
}

// POST /bookings
func (h *Controller) Create(c echo.Context) error {
	var req CreateBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	uid, _ := c.Get("user_id").(int64)

	row, err := h.Svc.Create(c.Request().Context(), uid, req.ItemID, req.Start.Time(), req.End.Time())
	if err != nil {
		h.Log.Error("booking create", "err", err)
		switch bs.Code(err) {
		case bs.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "item or user not found"})
		case bs.ErrInvalidRange:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "start must be before end"})
		case bs.ErrNotAvailable:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "item is not available"})
		case bs.ErrSelfBooking:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot book own item"})
		case bs.ErrTimeConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "item already booked for this period"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, toResp(row))
}

// PATCH /bookings/:id?approved=bool
func (h *Controller) Decide(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	approve, err := strconv.ParseBool(c.QueryParam("approved"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid approved param"})
	}
	uid, _ := c.Get("user_id").(int64)

	row, err := h.Svc.Decide(c.Request().Context(), uid, id, approve)
	if err != nil {
		h.Log.Error("booking decide", "err", err)
		switch bs.Code(err) {
		case bs.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case bs.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "only the item owner can decide"})
		case bs.ErrAlreadyDecided:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "booking already decided"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, toResp(row))
}

// GET /bookings/:id
func (h *Controller) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)

	row, err := h.Svc.GetByID(c.Request().Context(), uid, id)
	if err != nil {
		h.Log.Error("booking get", "err", err)
		switch bs.Code(err) {
		case bs.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case bs.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not the booker or owner"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, toResp(row))
}

// GET /bookings?state=
func (h *Controller) ByBooker(c echo.Context) error {
	return h.list(c, h.Svc.ByBooker)
}

// GET /bookings/owner?state=
func (h *Controller) ByOwner(c echo.Context) error {
	return h.list(c, h.Svc.ByOwner)
}

func (h *Controller) list(c echo.Context, fetch func(ctx context.Context, userID int64, state model.BookingState) ([]bs.Row, error)) error {
	raw := c.QueryParam("state")
	if raw == "" {
		raw = string(model.StateAll)
	}
	state, err := model.ParseBookingState(raw)
	if err != nil {
		if errors.Is(err, model.ErrUnknownState) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Unknown state: " + raw})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	uid, _ := c.Get("user_id").(int64)

	rows, err := fetch(c.Request().Context(), uid, state)
	if err != nil {
		h.Log.Error("booking list", "err", err)
		if bs.Code(err) == bs.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, toResps(rows))
}
