package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	store := cookie.NewStore([]byte("test-secret-key-0123456789"))
	router.Use(sessions.Sessions("test-session", store))

	router.GET("/add", func(c *gin.Context) {
		_ = Add(c, "saved", Success)
		_ = Add(c, "careful", Danger)
		c.Status(http.StatusNoContent)
	})
	router.GET("/drain", func(c *gin.Context) {
		c.JSON(http.StatusOK, Drain(c))
	})
	router.GET("/set", func(c *gin.Context) {
		_ = SetString(c, "name", c.Query("v"))
		c.Status(http.StatusNoContent)
	})
	router.GET("/get", func(c *gin.Context) {
		v, ok := GetString(c, "name")
		if !ok {
			c.String(http.StatusNotFound, "")
			return
		}
		c.String(http.StatusOK, v)
	})
	return router
}

func do(t *testing.T, router *gin.Engine, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest("GET", path, nil)
	require.NoError(t, err)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestFlash_DrainedOnce(t *testing.T) {
	router := setupTestRouter()

	w := do(t, router, "/add", nil)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	w = do(t, router, "/drain", cookies)
	assert.JSONEq(t, `[{"Text":"saved","Category":"success"},{"Text":"careful","Category":"danger"}]`, w.Body.String())

	w = do(t, router, "/drain", w.Result().Cookies())
	assert.Equal(t, "null", w.Body.String())
}

func TestSessionValue_RoundTrip(t *testing.T) {
	router := setupTestRouter()

	w := do(t, router, "/get", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, router, "/set?v=Ada", nil)
	w = do(t, router, "/get", w.Result().Cookies())
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ada", w.Body.String())
}

func TestSessionValue_TamperedCookieIgnored(t *testing.T) {
	router := setupTestRouter()

	w := do(t, router, "/set?v=Ada", nil)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	cookies[0].Value = "x" + cookies[0].Value

	w = do(t, router, "/get", cookies)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
