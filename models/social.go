package models

import "time"

// Tag names are stored lowercased so lookups stay case-insensitive.
type Tag struct {
	TagID     string    `json:"tagid" bson:"tagid"`
	Name      string    `json:"name" bson:"name"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

type Like struct {
	UserID    string    `json:"userid" bson:"userid"`
	EventID   string    `json:"eventid" bson:"eventid"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

type Bookmark struct {
	UserID    string    `json:"userid" bson:"userid"`
	EventID   string    `json:"eventid" bson:"eventid"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

type Comment struct {
	ID        string    `json:"commentid" bson:"commentid"`
	EventID   string    `json:"eventid" bson:"eventid"`
	UserID    string    `json:"userid" bson:"userid"`
	Content   string    `json:"content" bson:"content"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Index is an entity-mutation message published to the indexing channel.
type Index struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityId   string `json:"entity_id"`
	ItemId     string `json:"item_id,omitempty"`
	ItemType   string `json:"item_type,omitempty"`
}
