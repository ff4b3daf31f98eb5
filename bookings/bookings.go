package bookings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vesna/db"
	"vesna/ledger"
	"vesna/live"
	"vesna/models"
	"vesna/mq"
	"vesna/utils"
)

// Seat is the shared seat ledger. All seat mutations in the process
// must go through this one instance so its per-event locks hold.
var Seat = ledger.New(ledger.NewMongoStore(db.EventsCollection, db.BookingsCollection))

type bookingPayload struct {
	Tickets      int    `json:"tickets"`
	ContactName  string `json:"contact_name"`
	ContactPhone string `json:"contact_phone"`
}

// BookEvent reserves seats for the caller on one event.
func BookEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid user")
		return
	}

	var payload bookingPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	booking, err := Seat.CreateBooking(r.Context(), eventID, userID, payload.Tickets, ledger.Contact{
		Name:  payload.ContactName,
		Phone: payload.ContactPhone,
	})
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrInvalidTickets):
			utils.RespondWithError(w, http.StatusBadRequest, "Ticket count must be at least 1")
		case errors.Is(err, ledger.ErrEventNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		case errors.Is(err, ledger.ErrDuplicateBooking):
			utils.RespondWithError(w, http.StatusConflict, "You already have a booking for this event")
		case errors.Is(err, ledger.ErrInsufficientSeats):
			utils.RespondWithError(w, http.StatusConflict, "Not enough seats available")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create booking")
		}
		return
	}

	go announceSeats(eventID)
	go mq.Emit("booking-created", models.Index{
		EntityType: "booking", EntityId: booking.BookingID, Method: "POST",
		ItemId: eventID, ItemType: "event",
	})

	utils.RespondWithJSON(w, http.StatusCreated, booking)
}

// CancelBooking releases the caller's seats on an event.
func CancelBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid user")
		return
	}

	available, err := Seat.CancelBooking(r.Context(), eventID, userID)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrBookingNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "No booking found for this event")
		case errors.Is(err, ledger.ErrEventNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to cancel booking")
		}
		return
	}

	go live.BroadcastSeats(eventID, available)
	go mq.Emit("booking-cancelled", models.Index{
		EntityType: "booking", EntityId: eventID, Method: "DELETE",
		ItemId: eventID, ItemType: "event",
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"eventid":         eventID,
		"available_seats": available,
	})
}

// GetBookedUsers lists the bookings on an event. Owner or admin only.
func GetBookedUsers(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid user")
		return
	}

	var event models.Event
	if err := db.EventsCollection.FindOne(r.Context(), bson.M{"eventid": eventID}).Decode(&event); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	}
	if event.CreatedBy != userID && utils.GetUserStatusFromRequest(r) != models.StatusAdmin {
		utils.RespondWithError(w, http.StatusForbidden, "Only the event owner can view bookings")
		return
	}

	cursor, err := db.BookingsCollection.Find(r.Context(),
		bson.M{"eventid": eventID},
		options.Find().SetSort(bson.D{{Key: "booked_at", Value: 1}}),
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch bookings")
		return
	}
	defer cursor.Close(r.Context())

	var list []models.Booking
	if err := cursor.All(r.Context(), &list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode bookings")
		return
	}
	if list == nil {
		list = []models.Booking{}
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// GetMyBookings lists the caller's bookings, newest first.
func GetMyBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid user")
		return
	}

	cursor, err := db.BookingsCollection.Find(r.Context(),
		bson.M{"userid": userID},
		options.Find().SetSort(bson.D{{Key: "booked_at", Value: -1}}),
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch bookings")
		return
	}
	defer cursor.Close(r.Context())

	var list []models.Booking
	if err := cursor.All(r.Context(), &list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode bookings")
		return
	}
	if list == nil {
		list = []models.Booking{}
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// announceSeats reads the fresh availability and broadcasts it.
func announceSeats(eventID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var event models.Event
	if err := db.EventsCollection.FindOne(ctx, bson.M{"eventid": eventID}).Decode(&event); err != nil {
		return
	}
	live.BroadcastSeats(eventID, event.AvailableSeats)
}
