package webserver

import (
	"net/http"

	"github.com/civiguard/civiguard/src/api/routing"
	"github.com/gin-gonic/gin"
)

// Roles exposes the static routing policy so dashboards render the same
// category→role assignment the backend filters by.
func Roles(c *gin.Context) {
	out := make([]gin.H, 0, len(routing.Profiles))
	for _, p := range routing.Profiles {
		out = append(out, gin.H{
			"role":        p.Role,
			"label":       p.Label,
			"icon":        p.Icon,
			"color":       p.Color,
			"description": p.Description,
			"categories":  p.Categories,
		})
	}
	c.JSON(http.StatusOK, out)
}

// RoleForCategory answers which role owns a category, fallback included.
func RoleForCategory(c *gin.Context) {
	category := routing.ReportCategory(c.Param("category"))
	role := routing.RoleForCategory(category)
	profile, _ := routing.ProfileForRole(role)
	c.JSON(http.StatusOK, gin.H{
		"category": category,
		"role":     role,
		"label":    profile.Label,
	})
}
