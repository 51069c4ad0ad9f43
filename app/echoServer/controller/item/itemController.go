package item

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ds-skoropad/java-shareit/model"
	is "github.com/ds-skoropad/java-shareit/service/item"
)

type Controller struct {
	Svc is.Service
	Log *slog.Logger
}

// POST /items
func (h *Controller) Create(c echo.Context) error {
	var req CreateItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if req.Available == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "available is required"})
	}
	uid, _ := c.Get("user_id").(int64)

	it, err := h.Svc.Create(c.Request().Context(), uid, model.Item{
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
		RequestID:   req.RequestID,
	})
	if err != nil {
		h.Log.Error("item create", "err", err)
		if is.Code(err) == is.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user or request not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	return c.JSON(http.StatusCreated, it)
}

// PATCH /items/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var patch model.ItemPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	uid, _ := c.Get("user_id").(int64)

	it, err := h.Svc.Update(c.Request().Context(), uid, id, patch)
	if err != nil {
		h.Log.Error("item update", "err", err)
		switch is.Code(err) {
		case is.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "item or user not found"})
		case is.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "only the owner can edit an item"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, it)
}

// GET /items/:id
func (h *Controller) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)

	view, err := h.Svc.GetByID(c.Request().Context(), uid, id)
	if err != nil {
		h.Log.Error("item get", "err", err)
		if is.Code(err) == is.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, toViewResp(view))
}

// GET /items
func (h *Controller) ByOwner(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)

	views, err := h.Svc.ByOwner(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("item list", "err", err)
		if is.Code(err) == is.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, toViewResps(views))
}

// GET /items/search?text=
func (h *Controller) Search(c echo.Context) error {
	items, err := h.Svc.Search(c.Request().Context(), c.QueryParam("text"))
	if err != nil {
		h.Log.Error("item search", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, items)
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
	uid, _ := c.Get("user_id").(int64)

	comment, err := h.Svc.CreateComment(c.Request().Context(), uid, id, req.Text)
	if err != nil {
		h.Log.Error("comment create", "err", err)
		switch is.Code(err) {
		case is.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "item or user not found"})
		case is.ErrNotEligible:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "not booked or booking not completed"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, toCommentResp(comment))
}
