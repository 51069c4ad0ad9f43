package echoServer

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestUserID(t *testing.T) {
	e := echo.New()
	h := UserID()(func(c echo.Context) error {
		id, _ := c.Get("user_id").(int64)
		return c.JSON(http.StatusOK, echo.Map{"id": id})
	})

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusBadRequest},
		{"not a number", "abc", http.StatusBadRequest},
		{"zero", "0", http.StatusBadRequest},
		{"negative", "-3", http.StatusBadRequest},
		{"valid", "42", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/items", nil)
			if tc.header != "" {
				req.Header.Set(HeaderUserID, tc.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			require.NoError(t, h(c))
			require.Equal(t, tc.want, rec.Code)
			if tc.want == http.StatusOK {
				require.JSONEq(t, `{"id":42}`, rec.Body.String())
			}
		})
	}
}
