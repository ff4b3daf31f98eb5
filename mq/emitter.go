package mq

import (
	"context"
	"encoding/json"
	"log"

	"vesna/models"
	"vesna/rdx"
)

const channel = "indexing-events"

// Emit publishes an entity-mutation event to the indexing channel.
// Publishing is best-effort; a dead Redis never blocks a request.
func Emit(eventName string, content models.Index) {
	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event content: %v", err)
		return
	}

	if err := rdx.Conn.Publish(context.Background(), channel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish %s: %v", eventName, err)
	}
}

// StartIndexingWorker consumes indexing events; the handler receives each
// decoded message. Runs until the subscription channel closes.
func StartIndexingWorker(handle func(ctx context.Context, event models.Index) error) {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, channel)
	ch := sub.Channel()

	log.Println("[IndexingWorker] Listening for indexing events...")

	for msg := range ch {
		var event models.Index
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[IndexingWorker] Failed to parse event: %v", err)
			continue
		}
		if err := handle(ctx, event); err != nil {
			log.Printf("[IndexingWorker] handler error: %v", err)
		}
	}
}
