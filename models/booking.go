package models

import "time"

type Booking struct {
	BookingID    string    `json:"bookingid" bson:"bookingid"`
	EventID      string    `json:"eventid" bson:"eventid"`
	UserID       string    `json:"userid" bson:"userid"`
	Tickets      int       `json:"tickets" bson:"tickets"`
	ContactName  string    `json:"contact_name,omitempty" bson:"contact_name,omitempty"`
	ContactPhone string    `json:"contact_phone,omitempty" bson:"contact_phone,omitempty"`
	BookedAt     time.Time `json:"booked_at" bson:"booked_at"`
}
