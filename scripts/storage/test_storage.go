// Publishes a synthetic critical case on the redis stream so dashboards
// and the alert bot can be watched reacting without touching MySQL.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/civiguard/civiguard/src/api/data"
	"github.com/civiguard/civiguard/src/api/types"
)

func main() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://127.0.0.1:6379/0"
	}
	rdb := data.MustRedis(redisURL)
	defer rdb.Close()

	score := 0.87
	report := types.Report{
		ID:        999999,
		Title:     "Cas critique de démonstration",
		Category:  "corruption",
		Priority:  types.PriorityCritique,
		Location:  "Libreville",
		AIScore:   &score,
		CreatedAt: time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := data.PublishCriticalCase(ctx, rdb, "insert", &report); err != nil {
		log.Fatalf("publish: %v", err)
	}
	log.Println("critical case published on the stream")
}
