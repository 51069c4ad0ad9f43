package booking

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/ds-skoropad/java-shareit/model"
	bs "github.com/ds-skoropad/java-shareit/service/booking"
)

type codeErr struct{ code bs.ErrCode }

func (e codeErr) Error() string    { return string(e.code) }
func (e codeErr) Code() bs.ErrCode { return e.code }
func failWith(c bs.ErrCode) error  { return codeErr{code: c} }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type svcMock struct {
	createFn func(ctx context.Context, requesterID, itemID int64, start, end time.Time) (*bs.Row, error)
	decideFn func(ctx context.Context, actorID, bookingID int64, approve bool) (*bs.Row, error)
	getFn    func(ctx context.Context, requesterID, bookingID int64) (*bs.Row, error)
	listFn   func(ctx context.Context, userID int64, state model.BookingState) ([]bs.Row, error)
}

var _ bs.Service = (*svcMock)(nil)

func (m *svcMock) Create(ctx context.Context, requesterID, itemID int64, start, end time.Time) (*bs.Row, error) {
	return m.createFn(ctx, requesterID, itemID, start, end)
}

func (m *svcMock) Decide(ctx context.Context, actorID, bookingID int64, approve bool) (*bs.Row, error) {
	return m.decideFn(ctx, actorID, bookingID, approve)
}

func (m *svcMock) GetByID(ctx context.Context, requesterID, bookingID int64) (*bs.Row, error) {
	return m.getFn(ctx, requesterID, bookingID)
}

func (m *svcMock) ByBooker(ctx context.Context, bookerID int64, state model.BookingState) ([]bs.Row, error) {
	return m.listFn(ctx, bookerID, state)
}

func (m *svcMock) ByOwner(ctx context.Context, ownerID int64, state model.BookingState) ([]bs.Row, error) {
	return m.listFn(ctx, ownerID, state)
}

func newCtx(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", int64(7))
	return c, rec
}

func handler(svc bs.Service) *Controller {
	return &Controller{Svc: svc, Log: discardLogger()}
}

func sampleRow() *bs.Row {
	return &bs.Row{
		ID:          5,
		Start:       time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
		End:         time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
		Status:      model.StatusWaiting,
		ItemID:      3,
		ItemName:    "drill",
		ItemOwnerID: 1,
		BookerID:    7,
		BookerName:  "renter",
		BookerEmail: "renter@example.com",
	}
}

func TestCreate_WireFormat(t *testing.T) {
	m := &svcMock{createFn: func(ctx context.Context, requesterID, itemID int64, start, end time.Time) (*bs.Row, error) {
		require.Equal(t, int64(7), requesterID)
		require.Equal(t, int64(3), itemID)
		return sampleRow(), nil
	}}
	c, rec := newCtx(t, http.MethodPost, "/bookings",
		`{"itemId":3,"start":"2025-01-01T10:00:00","end":"2025-01-01T12:00:00"}`)

	require.NoError(t, handler(m).Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.JSONEq(t, `{
		"id": 5,
		"start": "2025-01-01T10:00:00",
		"end": "2025-01-01T12:00:00",
		"status": "WAITING",
		"item": {"id": 3, "name": "drill"},
		"booker": {"id": 7, "name": "renter", "email": "renter@example.com"}
	}`, rec.Body.String())
}

func TestCreate_StatusMapping(t *testing.T) {
	cases := []struct {
		code bs.ErrCode
		want int
	}{
		{bs.ErrNotFound, http.StatusNotFound},
		{bs.ErrInvalidRange, http.StatusBadRequest},
		{bs.ErrNotAvailable, http.StatusBadRequest},
		{bs.ErrSelfBooking, http.StatusBadRequest},
		{bs.ErrTimeConflict, http.StatusConflict},
	}
	for _, tc := range cases {
		m := &svcMock{createFn: func(ctx context.Context, requesterID, itemID int64, start, end time.Time) (*bs.Row, error) {
			return nil, failWith(tc.code)
		}}
		c, rec := newCtx(t, http.MethodPost, "/bookings",
			`{"itemId":3,"start":"2025-01-01T10:00:00","end":"2025-01-01T12:00:00"}`)

		require.NoError(t, handler(m).Create(c))
		require.Equal(t, tc.want, rec.Code, "code %s", tc.code)
	}
}

func TestDecide_StatusMapping(t *testing.T) {
	cases := []struct {
		code bs.ErrCode
		want int
	}{
		{bs.ErrNotFound, http.StatusNotFound},
		{bs.ErrForbidden, http.StatusForbidden},
		{bs.ErrAlreadyDecided, http.StatusBadRequest},
	}
	for _, tc := range cases {
		m := &svcMock{decideFn: func(ctx context.Context, actorID, bookingID int64, approve bool) (*bs.Row, error) {
			return nil, failWith(tc.code)
		}}
		c, rec := newCtx(t, http.MethodPatch, "/bookings/5?approved=true", "")
		c.SetParamNames("id")
		c.SetParamValues("5")

		require.NoError(t, handler(m).Decide(c))
		require.Equal(t, tc.want, rec.Code, "code %s", tc.code)
	}
}

func TestDecide_InvalidApprovedParam(t *testing.T) {
	m := &svcMock{}
	c, rec := newCtx(t, http.MethodPatch, "/bookings/5?approved=maybe", "")
	c.SetParamNames("id")
	c.SetParamValues("5")

	require.NoError(t, handler(m).Decide(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestList_UnknownStateRejected(t *testing.T) {
	called := false
	m := &svcMock{listFn: func(ctx context.Context, userID int64, state model.BookingState) ([]bs.Row, error) {
		called = true
		return nil, nil
	}}
	c, rec := newCtx(t, http.MethodGet, "/bookings?state=SOMETIMES", "")

	require.NoError(t, handler(m).ByBooker(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "Unknown state: SOMETIMES")
	require.False(t, called)
}

func TestList_DefaultStateIsAll(t *testing.T) {
	var got model.BookingState
	m := &svcMock{listFn: func(ctx context.Context, userID int64, state model.BookingState) ([]bs.Row, error) {
		got = state
		return []bs.Row{*sampleRow()}, nil
	}}
	c, rec := newCtx(t, http.MethodGet, "/bookings", "")

	require.NoError(t, handler(m).ByBooker(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, model.StateAll, got)
}
