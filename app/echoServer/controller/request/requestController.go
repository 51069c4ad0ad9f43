package request

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ds-skoropad/java-shareit/model"
	rs "github.com/ds-skoropad/java-shareit/service/request"
)

type Controller struct {
	Svc rs.Service
	Log *slog.Logger
}

type CreateRequestReq struct {
	Description string `json:"description"`
}

type ViewResp struct {
	ID          int64               `json:"id"`
	Description string              `json:"description"`
	Created     model.DateTime      `json:"created"`
	Items       []rs.FulfillingItem `json:"items"`
}

func toViewResp(v *rs.View) ViewResp {
	return ViewResp{
		ID:          v.ID,
		Description: v.Description,
		Created:     model.NewDateTime(v.Created),
		Items:       v.Items,
	}
}

func toViewResps(views []rs.View) []ViewResp {
	out := make([]ViewResp, 0, len(views))
	for i := range views {
		out = append(out, toViewResp(&views[i]))
	}
	return out
}

// POST /requests
func (h *Controller) Create(c echo.Context) error {
	var req CreateRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	uid, _ := c.Get("user_id").(int64)

	view, err := h.Svc.Create(c.Request().Context(), uid, req.Description)
	if err != nil {
		h.Log.Error("request create", "err", err)
		if rs.Code(err) == rs.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	return c.JSON(http.StatusCreated, toViewResp(view))
}

// GET /requests
func (h *Controller) ByRequestor(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)

	views, err := h.Svc.ByRequestor(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("request list", "err", err)
		if rs.Code(err) == rs.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, toViewResps(views))
}

// GET /requests/all
func (h *Controller) ByOthers(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)

	views, err := h.Svc.ByOthers(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("request list all", "err", err)
		if rs.Code(err) == rs.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, toViewResps(views))
}

// GET /requests/:id
func (h *Controller) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)

	view, err := h.Svc.GetByID(c.Request().Context(), uid, id)
	if err != nil {
		h.Log.Error("request get", "err", err)
		if rs.Code(err) == rs.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "request or user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, toViewResp(view))
}
