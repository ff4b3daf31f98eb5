package events

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"

	"vesna/bookings"
	"vesna/db"
	"vesna/ledger"
	"vesna/models"
	"vesna/mq"
	"vesna/tags"
	"vesna/utils"
)

// loadOwnedEvent fetches the event and checks the caller may mutate it
// (owner or admin).
func loadOwnedEvent(ctx context.Context, r *http.Request, eventID string) (*models.Event, int, string) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		return nil, http.StatusUnauthorized, "Invalid user"
	}

	var event models.Event
	if err := db.EventsCollection.FindOne(ctx, bson.M{"eventid": eventID}).Decode(&event); err != nil {
		return nil, http.StatusNotFound, "Event not found"
	}

	if event.CreatedBy != userID && utils.GetUserStatusFromRequest(r) != models.StatusAdmin {
		return nil, http.StatusForbidden, "You are not authorized to modify this event"
	}
	return &event, 0, ""
}

func EditEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	event, code, msg := loadOwnedEvent(ctx, r, eventID)
	if event == nil {
		utils.RespondWithError(w, code, msg)
		return
	}

	var payload eventPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if msg := payload.validate(); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	tagNames, err := tags.ParseList(payload.Tags)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Tags must be a list of strings")
		return
	}
	tagNames, err = tags.Ensure(ctx, tagNames)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save tags")
		return
	}

	// Capacity first: if the new total cannot hold the seats already
	// booked the whole edit is rejected.
	if payload.TotalSeats != event.TotalSeats {
		if _, err := bookings.Seat.RecomputeCapacity(ctx, eventID, payload.TotalSeats); err != nil {
			if errors.Is(err, ledger.ErrCapacityUnderBooked) {
				utils.RespondWithError(w, http.StatusConflict, "Booked seats exceed the new capacity")
				return
			}
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update capacity")
			return
		}
	}

	moodScore := lexicon.Evaluate(payload.Name, payload.Description, payload.EventType, tagNames)

	update := bson.M{"$set": bson.M{
		"name":            payload.Name,
		"description":     payload.Description,
		"event_type":      payload.EventType,
		"target_audience": payload.TargetAudience,
		"tags":            tagNames,
		"location":        payload.Location,
		"address":         payload.Address,
		"online":          payload.Online,
		"price":           payload.Price,
		"start_date":      payload.StartDate.UTC(),
		"end_date":        payload.EndDate.UTC(),
		"mood_score":      moodScore,
		"updated_at":      time.Now().UTC(),
	}}

	if _, err := db.EventsCollection.UpdateOne(ctx, bson.M{"eventid": eventID}, update); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating event")
		return
	}

	go mq.Emit("event-updated", models.Index{
		EntityType: "event", EntityId: eventID, Method: "PUT",
	})

	var updated models.Event
	if err := db.EventsCollection.FindOne(ctx, bson.M{"eventid": eventID}).Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch updated event")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

func DeleteEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	event, code, msg := loadOwnedEvent(ctx, r, eventID)
	if event == nil {
		utils.RespondWithError(w, code, msg)
		return
	}

	if _, err := db.EventsCollection.DeleteOne(ctx, bson.M{"eventid": eventID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error deleting event")
		return
	}

	// Bookings, likes and bookmarks hanging off the event go with it.
	db.BookingsCollection.DeleteMany(ctx, bson.M{"eventid": eventID})
	db.LikesCollection.DeleteMany(ctx, bson.M{"eventid": eventID})
	db.BookmarksCollection.DeleteMany(ctx, bson.M{"eventid": eventID})
	db.CommentsCollection.DeleteMany(ctx, bson.M{"eventid": eventID})

	go mq.Emit("event-deleted", models.Index{
		EntityType: "event", EntityId: eventID, Method: "DELETE",
	})

	utils.SendResponse(w, http.StatusOK, nil, "Event deleted successfully", nil)
}

// VerifyEvent moves an event to VERIFIED. Admin only.
func VerifyEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	setModerationStatus(w, r, ps.ByName("eventid"), models.EventVerified)
}

// DeclineEvent moves an event to DECLINED. Admin only.
func DeclineEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	setModerationStatus(w, r, ps.ByName("eventid"), models.EventDeclined)
}

func setModerationStatus(w http.ResponseWriter, r *http.Request, eventID, status string) {
	if utils.GetUserStatusFromRequest(r) != models.StatusAdmin {
		utils.RespondWithError(w, http.StatusForbidden, "Only admins can moderate events")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.EventsCollection.UpdateOne(ctx,
		bson.M{"eventid": eventID},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating event")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"eventid": eventID, "status": status})
}
