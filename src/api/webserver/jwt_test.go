package webserver

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/civiguard/civiguard/src/api/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("secret-de-test")

func authedRequest(t *testing.T, r http.Handler, method, path string, user *types.User) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if user != nil {
		token, err := issueJWT(user, testSecret)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func protectedRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{JWTMiddleware(testSecret)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": currentUID(c), "role": c.GetString("role")})
	})
	r.GET("/secret", handlers...)
	return r
}

func TestJWTRoundTrip(t *testing.T) {
	r := protectedRouter()
	user := &types.User{ID: 42, Role: "agent-justice"}

	w := authedRequest(t, r, "GET", "/secret", user)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"uid":42`)
	assert.Contains(t, w.Body.String(), `"role":"agent-justice"`)
}

func TestJWTMissingToken(t *testing.T) {
	r := protectedRouter()
	w := authedRequest(t, r, "GET", "/secret", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTGarbageToken(t *testing.T) {
	r := protectedRouter()
	req := httptest.NewRequest("GET", "/secret", nil)
	req.Header.Set("Authorization", "Bearer pas.un.jeton")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoleMiddleware(t *testing.T) {
	r := protectedRouter(RoleMiddleware(types.RoleAdmin, types.RoleSuperAdmin))

	w := authedRequest(t, r, "GET", "/secret", &types.User{ID: 1, Role: types.RoleAdmin})
	assert.Equal(t, http.StatusOK, w.Code)

	w = authedRequest(t, r, "GET", "/secret", &types.User{ID: 2, Role: types.RoleCitoyen})
	assert.Equal(t, http.StatusForbidden, w.Code)
}
