package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newGuardedRouter(accessKey string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Auth(accessKey))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func doGet(r *gin.Engine, headers map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_DisabledWithoutKey(t *testing.T) {
	r := newGuardedRouter("")
	assert.Equal(t, http.StatusOK, doGet(r, nil).Code)
}

func TestAuth_RejectsMissingOrWrongKey(t *testing.T) {
	r := newGuardedRouter("secret")
	assert.Equal(t, http.StatusUnauthorized, doGet(r, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, map[string]string{"X-API-Key": "wrong"}).Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, map[string]string{"Authorization": "Bearer wrong"}).Code)
}

func TestAuth_AcceptsEitherHeader(t *testing.T) {
	r := newGuardedRouter("secret")
	assert.Equal(t, http.StatusOK, doGet(r, map[string]string{"X-API-Key": "secret"}).Code)
	assert.Equal(t, http.StatusOK, doGet(r, map[string]string{"Authorization": "Bearer secret"}).Code)
}
