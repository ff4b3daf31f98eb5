package models

import "time"

// Account statuses. VERIFIED_USER accounts get their events auto-verified.
const (
	StatusAdmin        = "ADMIN"
	StatusUser         = "USER"
	StatusVerifiedUser = "VERIFIED_USER"
)

type User struct {
	UserID      string    `json:"userid" bson:"userid"`
	Name        string    `json:"name" bson:"name"`
	Email       string    `json:"email" bson:"email"`
	Password    string    `json:"-" bson:"password"`
	Status      string    `json:"status" bson:"status"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	AvatarURL   string    `json:"avatar_url,omitempty" bson:"avatar_url,omitempty"`
	PhoneNumber string    `json:"phone_number,omitempty" bson:"phone_number,omitempty"`
	Interests   []string  `json:"interests,omitempty" bson:"interests,omitempty"`
	LastLogin   time.Time `json:"last_login,omitempty" bson:"last_login,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}
