package transport

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func operatorApp(token string) *echo.Echo {
	e := echo.New()
	operator := e.Group("", OperatorTokenMiddleware(token))
	operator.GET("/v2/refund_wizard/:id", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	return e
}

func TestOperatorTokenRequired(t *testing.T) {
	e := operatorApp("secret-token")

	// no token at all
	req := httptest.NewRequest(http.MethodGet, "/v2/refund_wizard/abc", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// wrong token
	req = httptest.NewRequest(http.MethodGet, "/v2/refund_wizard/abc", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer wrong-token")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// correct token
	req = httptest.NewRequest(http.MethodGet, "/v2/refund_wizard/abc", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer secret-token")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestOperatorTokenEmptyDisablesGuard(t *testing.T) {
	e := operatorApp("")

	req := httptest.NewRequest(http.MethodGet, "/v2/refund_wizard/abc", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
