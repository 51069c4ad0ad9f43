package booking

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/ds-skoropad/java-shareit/app/gateway/client"
	"github.com/ds-skoropad/java-shareit/app/gateway/validation"
	"github.com/ds-skoropad/java-shareit/model"
)

func newCtx(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = validation.New()
	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", int64(7))
	return c, rec
}

func handler(cl *client.Client) *Controller {
	return &Controller{Cl: cl, Log: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func wire(t time.Time) string {
	return t.Format(model.DateTimeLayout)
}

func TestCreate_RejectsBadShapes(t *testing.T) {
	future := time.Now().Add(24 * time.Hour)
	later := future.Add(2 * time.Hour)

	cases := []struct {
		name string
		body string
	}{
		{"missing itemId", `{"start":"` + wire(future) + `","end":"` + wire(later) + `"}`},
		{"missing start", `{"itemId":3,"end":"` + wire(later) + `"}`},
		{"end before start", `{"itemId":3,"start":"` + wire(later) + `","end":"` + wire(future) + `"}`},
		{"start equals end", `{"itemId":3,"start":"` + wire(future) + `","end":"` + wire(future) + `"}`},
		{"start in the past", `{"itemId":3,"start":"2020-01-01T10:00:00","end":"` + wire(later) + `"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// No backend: a forwarded request would fail loudly with 502.
			c, rec := newCtx(t, tc.body)
			require.NoError(t, handler(client.New("http://127.0.0.1:0")).Create(c))
			require.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCreate_ForwardsValidRequest(t *testing.T) {
	var gotUser, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = r.Header.Get(client.HeaderUserID)
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":5}`))
	}))
	defer srv.Close()

	future := time.Now().Add(24 * time.Hour)
	later := future.Add(2 * time.Hour)
	body := `{"itemId":3,"start":"` + wire(future) + `","end":"` + wire(later) + `"}`

	c, rec := newCtx(t, body)
	require.NoError(t, handler(client.New(srv.URL)).Create(c))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.JSONEq(t, `{"id":5}`, rec.Body.String())
	require.Equal(t, "7", gotUser)
	require.Contains(t, gotBody, `"itemId":3`)
	require.Contains(t, gotBody, wire(future))
}
