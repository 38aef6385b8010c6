package webserver

import (
	"log"
	"net/http"

	"github.com/civiguard/civiguard/src/api/data"
	"github.com/civiguard/civiguard/src/api/routing"
	"github.com/civiguard/civiguard/src/api/types"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Admin struct {
	db *gorm.DB
}

func NewAdmin(db *gorm.DB) Admin {
	return Admin{db: db}
}

// CreateAgent provisions a specialized agent or sub-admin account. Only
// super-admins may create admin accounts.
func (a Admin) CreateAgent(c *gin.Context) {
	var req struct {
		Email    string `json:"email"    binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
		Name     string `json:"name"`
		Role     string `json:"role"     binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	if _, ok := routing.ProfileForRole(routing.AgentRole(req.Role)); !ok {
		if req.Role != types.RoleAdmin || c.GetString("role") != types.RoleSuperAdmin {
			c.JSON(http.StatusBadRequest, gin.H{"err": "invalid role"})
			return
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	user := types.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         req.Role,
	}
	if err := a.db.Create(&user).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"err": "email already registered"})
		return
	}

	log.Printf("Admin %d created account %s with role %s", currentUID(c), req.Email, req.Role)
	c.JSON(http.StatusOK, gin.H{"id": user.ID, "role": user.Role})
}

// SetSetting updates a runtime setting (discord channels, etc) and reloads
// the cache so running services observe it.
func (a Admin) SetSetting(c *gin.Context) {
	var req struct {
		Name  string `json:"name"  binding:"required,max=64"`
		Value string `json:"value" binding:"max=512"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	setting := types.Setting{Name: req.Name, Value: req.Value}
	if err := a.db.Save(&setting).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	if err := data.LoadSettings(a.db); err != nil {
		log.Printf("settings reload: %v", err)
	}

	log.Printf("Admin %d set %s", currentUID(c), req.Name)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
