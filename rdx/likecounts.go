package rdx

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"vesna/globals"
)

// LikeCountKey builds the Redis key holding the cached like count of an
// event.
func LikeCountKey(eventID string) string {
	return "like:count:event:" + eventID
}

// FlushLikeCounts periodically copies cached like counters onto the event
// documents so the counts survive a Redis restart. Runs until the process
// exits.
func FlushLikeCounts(events *mongo.Collection) {
	ticker := time.NewTicker(30 * time.Second)
	for range ticker.C {
		keys, err := Conn.Keys(globals.Ctx, "like:count:event:*").Result()
		if err != nil {
			log.Println("Redis scan error:", err)
			continue
		}

		for _, key := range keys {
			parts := strings.Split(key, ":")
			if len(parts) != 4 {
				continue
			}
			eventID := parts[3]

			countStr, err := Conn.Get(globals.Ctx, key).Result()
			if err != nil {
				continue
			}
			count, err := strconv.ParseInt(countStr, 10, 64)
			if err != nil {
				log.Println("Failed to parse like count:", countStr)
				continue
			}

			_, err = events.UpdateOne(context.Background(),
				bson.M{"eventid": eventID},
				bson.M{"$set": bson.M{"likes": count}},
			)
			if err != nil {
				log.Println("MongoDB like-count update error for", eventID, ":", err)
			}
		}
	}
}
