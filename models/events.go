package models

import "time"

// Moderation states an event moves through.
const (
	EventCreated  = "CREATED"
	EventVerified = "VERIFIED"
	EventDeclined = "DECLINED"
)

type Event struct {
	EventID        string    `json:"eventid" bson:"eventid"`
	Name           string    `json:"name" bson:"name"`
	Description    string    `json:"description" bson:"description"`
	EventType      string    `json:"event_type" bson:"event_type"`
	TargetAudience string    `json:"target_audience,omitempty" bson:"target_audience,omitempty"`
	Tags           []string  `json:"tags" bson:"tags"`
	Location       string    `json:"location" bson:"location"`
	Address        string    `json:"address,omitempty" bson:"address,omitempty"`
	Online         bool      `json:"online" bson:"online"`
	Price          float64   `json:"price" bson:"price"`
	StartDate      time.Time `json:"start_date" bson:"start_date"`
	EndDate        time.Time `json:"end_date" bson:"end_date"`
	TotalSeats     int       `json:"total_seats" bson:"total_seats"`
	AvailableSeats int       `json:"available_seats" bson:"available_seats"`
	Status         string    `json:"status" bson:"status"`
	MoodScore      int       `json:"mood_score" bson:"mood_score"`
	Likes          int64     `json:"likes" bson:"likes"`
	BannerImage    string    `json:"banner_image,omitempty" bson:"banner_image,omitempty"`
	CreatedBy      string    `json:"created_by" bson:"created_by"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`

	// Personalization flags for the requesting user, never stored.
	Liked      bool `json:"liked,omitempty" bson:"-"`
	Bookmarked bool `json:"bookmarked,omitempty" bson:"-"`
}

// BookedSeats returns how many seats are currently claimed by bookings.
func (e *Event) BookedSeats() int {
	return e.TotalSeats - e.AvailableSeats
}
