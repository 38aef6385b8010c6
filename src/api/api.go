package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/civiguard/civiguard/src/api/config"
	"github.com/civiguard/civiguard/src/api/data"
	"github.com/civiguard/civiguard/src/api/notify"
	"github.com/civiguard/civiguard/src/api/types"
	"github.com/civiguard/civiguard/src/api/webserver"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var allModels = []interface{}{
	&types.User{}, &types.Report{},
	&types.Protection{}, &types.Setting{}, &types.AlertLog{},
}

func migrate(db *gorm.DB) {
	err := db.AutoMigrate(allModels...)

	if err == nil {
		return
	}

	log.Printf("auto-migrate failed (%v) – dropping & recreating schema", err)
	_ = db.Migrator().DropTable(
		"alert_logs", "protections", "reports", "users", "settings",
	)
	if err := db.AutoMigrate(allModels...); err != nil {
		log.Fatalf("migrate after drop: %v", err)
	}
}

func seedSuperAdmin(db *gorm.DB) {
	email := os.Getenv("SUPERADMIN_EMAIL")
	password := os.Getenv("SUPERADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	user := types.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         "Super administrateur",
		Role:         types.RoleSuperAdmin,
	}
	_ = db.Where("email = ?", email).FirstOrCreate(&user).Error
}

func main() {
	cfg := config.Load()

	db := data.MustMySQL(cfg.MySQLDSN)
	migrate(db)
	seedSuperAdmin(db)

	if err := data.LoadSettings(db); err != nil {
		log.Printf("settings: %v", err)
	}

	rdb := data.MustRedis(cfg.RedisURL)

	// One notifier per process; websocket dashboards are its subscribers.
	// No native surface here, the alert bot owns that side.
	notifier := notify.NewNotifier(notify.NewStreamFeed(rdb), notify.NoopGateway{})

	router := webserver.New(cfg, db, rdb, notifier)
	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()
	log.Printf("CiviGuard API listening on %s", cfg.Port)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	notifier.Unsubscribe()

	shutCtx, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()
	_ = httpSrv.Shutdown(shutCtx)
}
