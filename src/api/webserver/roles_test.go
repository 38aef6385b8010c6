package webserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rolesRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/roles", Roles)
	r.GET("/roles/category/:category", RoleForCategory)
	return r
}

func TestRolesEndpoint(t *testing.T) {
	r := rolesRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/roles", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var out []struct {
		Role       string   `json:"role"`
		Label      string   `json:"label"`
		Categories []string `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Len(t, out, 6)
	for _, p := range out {
		assert.NotEmpty(t, p.Label, "role %s", p.Role)
	}
}

func TestRoleForCategoryEndpoint(t *testing.T) {
	tests := []struct {
		category string
		want     string
	}{
		{"corruption", "agent-anticorruption"},
		{"renseignement", "sous-admin-renseignement"},
		{"categorie-inventee", "agent-interieur"},
	}
	r := rolesRouter()
	for _, tt := range tests {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/roles/category/"+tt.category, nil))
		require.Equal(t, http.StatusOK, w.Code)

		var out struct {
			Role string `json:"role"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		assert.Equal(t, tt.want, out.Role, "category %s", tt.category)
	}
}
