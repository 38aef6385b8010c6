package data

import (
	"context"
	"log"
	"strconv"

	"github.com/civiguard/civiguard/src/api/notify"
	"github.com/civiguard/civiguard/src/api/types"
	"github.com/redis/go-redis/v9"
)

func MustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

// PublishCriticalCase emits one insert/update row event on the critical
// stream. Optional fields are left out of the payload entirely so the
// consumer side can tell absent from zero.
func PublishCriticalCase(ctx context.Context, rdb *redis.Client, kind string, r *types.Report) error {
	values := map[string]interface{}{
		"kind":       kind,
		"id":         strconv.FormatUint(r.ID, 10),
		"title":      r.Title,
		"category":   r.Category,
		"priority":   r.Priority,
		"location":   r.Location,
		"created_at": strconv.FormatInt(r.CreatedAt.Unix(), 10),
	}
	if r.AIScore != nil {
		values["ai_score"] = strconv.FormatFloat(*r.AIScore, 'f', -1, 64)
	}
	_, err := rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: notify.StreamName,
		Values: values,
	}).Result()
	return err
}
