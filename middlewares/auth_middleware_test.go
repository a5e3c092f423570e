package middlewares

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/appdotbuilder/food-catalog/models"
	"github.com/appdotbuilder/food-catalog/services"
	"github.com/appdotbuilder/food-catalog/utils"
)

type stubUsers map[uint]*models.User

func (s stubUsers) FindByID(_ context.Context, id uint) (*models.User, error) {
	if id == 500 {
		return nil, errors.New("connection reset")
	}
	u, ok := s[id]
	if !ok {
		return nil, &services.NotFoundError{Resource: "user", Key: id}
	}
	return u, nil
}

func chef() stubUsers {
	u := &models.User{Email: "chef@example.com"}
	u.ID = 7
	return stubUsers{7: u}
}

func protected(secret string) *gin.Engine {
	return protectedWith(secret, chef())
}

func protectedWith(secret string, users UserLookup) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", AuthMiddleware(secret, users), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetUint("userID"), "email": c.GetString("email")})
	})
	return r
}

func call(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := protected("s3cret")

	good, err := utils.GenerateJWT([]byte("s3cret"), 7, "chef@example.com", time.Hour)
	require.NoError(t, err)
	expired, err := utils.GenerateJWT([]byte("s3cret"), 7, "chef@example.com", -time.Minute)
	require.NoError(t, err)
	foreign, err := utils.GenerateJWT([]byte("other"), 7, "chef@example.com", time.Hour)
	require.NoError(t, err)

	w := call(r, "Bearer "+good)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":7,"email":"chef@example.com"}`, w.Body.String())

	for name, header := range map[string]string{
		"missing":   "",
		"no bearer": good,
		"expired":   "Bearer " + expired,
		"foreign":   "Bearer " + foreign,
		"garbage":   "Bearer abc.def.ghi",
	} {
		w := call(r, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, name)
	}
}

func TestAuthMiddleware_AccountMustStillExist(t *testing.T) {
	token, err := utils.GenerateJWT([]byte("s3cret"), 7, "chef@example.com", time.Hour)
	require.NoError(t, err)

	w := call(protectedWith("s3cret", stubUsers{}), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "deleted admin keeps no access")

	broken, err := utils.GenerateJWT([]byte("s3cret"), 500, "chef@example.com", time.Hour)
	require.NoError(t, err)
	w = call(protectedWith("s3cret", chef()), "Bearer "+broken)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAuthMiddleware_NoSecret(t *testing.T) {
	w := call(protected(""), "Bearer whatever")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", RateLimit(rate.Every(time.Hour), 2), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code, "limits are per client")
}
