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

type DivisionGenerateEvent struct {
	IncidentID   uuid.UUID    `json:"incident_id"`
	SearchArea   [][2]float64 `json:"search_area"`
	TargetAreaM2 float64      `json:"target_area_m2"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Тестовое событие: квадрат ~1.2 км около Louisville KY
	event := DivisionGenerateEvent{
		IncidentID: uuid.New(),
		SearchArea: [][2]float64{
			{-85.449, 38.391},
			{-85.435, 38.391},
			{-85.435, 38.401},
			{-85.449, 38.401},
		},
		TargetAreaM2: 40000,
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	id, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: "stream:division:generate",
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Published division generate event %s for incident %s\n", id, event.IncidentID)

	// Ждём результат из stream:division:done
	fmt.Println("Waiting for result on stream:division:done (10s)...")
	deadline := time.Now().Add(10 * time.Second)
	lastID := "$"

	for time.Now().Before(deadline) {
		streams, err := client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{"stream:division:done", lastID},
			Count:   1,
			Block:   time.Second,
		}).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			log.Fatalf("Failed to read done stream: %v", err)
		}

		for _, s := range streams {
			for _, msg := range s.Messages {
				fmt.Printf("Done event %s: %v\n", msg.ID, msg.Values["data"])
				return
			}
		}
	}

	fmt.Println("No done event received (is the worker running?)")
}
