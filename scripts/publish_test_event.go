//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type AgencyEvent struct {
	Type       string    `json:"type"`
	AgencyID   uuid.UUID `json:"agency_id"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	eventType := flag.String("type", "agency.registered", "Event type to publish")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	event := AgencyEvent{
		Type:       *eventType,
		AgencyID:   uuid.New(),
		Email:      "test@example.org",
		OccurredAt: time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: "stream:agency:events",
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Published %s event %s for agency %s\n", event.Type, result, event.AgencyID)
}
