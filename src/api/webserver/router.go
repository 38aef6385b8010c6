package webserver

import (
	"github.com/civiguard/civiguard/src/api/config"
	"github.com/civiguard/civiguard/src/api/notify"
	"github.com/civiguard/civiguard/src/api/types"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func New(cfg config.Config, db *gorm.DB, rdb *redis.Client, n *notify.Notifier) *gin.Engine {
	r := gin.Default()
	attachRoutes(r, cfg, db, rdb, n)
	return r
}

func attachRoutes(r *gin.Engine, cfg config.Config, db *gorm.DB, rdb *redis.Client, n *notify.Notifier) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://civiguard.org"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	secret := []byte(cfg.JWTSecret)
	authH := NewAuth(db, secret)
	reportH := NewReports(db, rdb)
	protectH := NewProtection(db)
	liveH := NewLive(n)

	v1 := r.Group("/v1")
	{
		v1.POST("/auth/register", authH.Register)
		v1.POST("/auth/login", authH.Login)

		v1.GET("/roles", Roles)
		v1.GET("/roles/category/:category", RoleForCategory)

		v1.POST("/reports/anonymous", reportH.CreateAnonymous)
		v1.GET("/reports/track/:code", reportH.Track)

		secured := v1.Use(JWTMiddleware(secret))
		secured.POST("/reports", reportH.Create)
		secured.GET("/reports", reportH.List)
		secured.GET("/reports/:id", reportH.Get)
		secured.PATCH("/reports/:id/status", reportH.UpdateStatus)

		secured.POST("/protection", protectH.Deposit)
		secured.POST("/protection/verify", protectH.Verify)

		secured.GET("/live/critical", liveH.Critical)
	}

	admin := v1.Group("/admin")
	admin.Use(JWTMiddleware(secret), RoleMiddleware(types.RoleAdmin, types.RoleSuperAdmin))
	{
		adminH := NewAdmin(db)
		admin.POST("/agents", adminH.CreateAgent)
		admin.POST("/settings", adminH.SetSetting)
	}
}
