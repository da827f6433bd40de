//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type MapCommand struct {
	ID     uuid.UUID `json:"id"`
	Action string    `json:"action"`
	Year   string    `json:"year,omitempty"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	action := flag.String("action", "update", "reset or update")
	year := flag.String("year", "2025", "year for update")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	cmd := MapCommand{ID: uuid.New(), Action: *action}
	if *action == "update" {
		cmd.Year = *year
	}

	data, err := json.Marshal(cmd)
	if err != nil {
		log.Fatalf("Failed to marshal command: %v", err)
	}

	// Запоминаем хвост стрима событий до публикации команды
	lastEventID := "$"
	if msgs, err := client.XRevRangeN(ctx, "stream:riskmap:events", "+", "-", 1).Result(); err == nil && len(msgs) > 0 {
		lastEventID = msgs[0].ID
	}

	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: "stream:riskmap:commands",
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish command: %v", err)
	}

	fmt.Printf("Command published\n")
	fmt.Printf("   Stream: stream:riskmap:commands\n")
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Command ID: %s\n", cmd.ID)
	fmt.Printf("   Action: %s %s\n", cmd.Action, cmd.Year)

	fmt.Printf("\nWaiting for event in stream:riskmap:events...\n")

	deadline := time.Now().Add(30 * time.Second)
	for time.Now().Before(deadline) {
		streams, err := client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{"stream:riskmap:events", lastEventID},
			Count:   10,
			Block:   time.Second,
		}).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			log.Fatalf("Failed to read events: %v", err)
		}

		for _, stream := range streams {
			for _, msg := range stream.Messages {
				lastEventID = msg.ID

				dataStr, ok := msg.Values["data"].(string)
				if !ok {
					continue
				}

				var event map[string]interface{}
				if err := json.Unmarshal([]byte(dataStr), &event); err != nil {
					continue
				}

				if event["command_id"] == cmd.ID.String() {
					pretty, _ := json.MarshalIndent(event, "", "  ")
					fmt.Printf("\nEvent received:\n%s\n", pretty)
					if applied, _ := event["applied"].(bool); !applied {
						continue
					}
					return
				}
			}
		}
	}

	fmt.Println("Timeout waiting for event")
}
