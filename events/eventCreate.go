package events

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"

	"vesna/db"
	"vesna/models"
	"vesna/mood"
	"vesna/mq"
	"vesna/tags"
	"vesna/utils"
)

var lexicon = mood.DefaultLexicon()

type eventPayload struct {
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	EventType      string          `json:"event_type"`
	TargetAudience string          `json:"target_audience"`
	Tags           json.RawMessage `json:"tags"`
	Location       string          `json:"location"`
	Address        string          `json:"address"`
	Online         bool            `json:"online"`
	Price          float64         `json:"price"`
	StartDate      time.Time       `json:"start_date"`
	EndDate        time.Time       `json:"end_date"`
	TotalSeats     int             `json:"total_seats"`
}

func (p *eventPayload) validate() string {
	switch {
	case len(p.Name) < 3:
		return "Name must be at least 3 characters"
	case len(p.Description) < 10:
		return "Description must be at least 10 characters"
	case p.StartDate.IsZero() || p.EndDate.IsZero():
		return "Start and end dates are required"
	case !p.EndDate.After(p.StartDate):
		return "End date must be after start date"
	case p.Location == "" && !p.Online:
		return "Location is required for offline events"
	case p.TotalSeats < 1:
		return "Total seats must be at least 1"
	case p.Price < 0:
		return "Price cannot be negative"
	}
	return ""
}

func CreateEvent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestingUserID := utils.GetUserIDFromRequest(r)
	if requestingUserID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid user")
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

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	tagNames, err = tags.Ensure(ctx, tagNames)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save tags")
		return
	}

	now := time.Now().UTC()
	event := models.Event{
		EventID:        "e" + utils.GenerateRandomString(13),
		Name:           payload.Name,
		Description:    payload.Description,
		EventType:      payload.EventType,
		TargetAudience: payload.TargetAudience,
		Tags:           tagNames,
		Location:       payload.Location,
		Address:        payload.Address,
		Online:         payload.Online,
		Price:          payload.Price,
		StartDate:      payload.StartDate.UTC(),
		EndDate:        payload.EndDate.UTC(),
		TotalSeats:     payload.TotalSeats,
		AvailableSeats: payload.TotalSeats,
		Status:         models.EventCreated,
		CreatedBy:      requestingUserID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	// Events from pre-verified accounts skip moderation.
	if utils.GetUserStatusFromRequest(r) == models.StatusVerifiedUser {
		event.Status = models.EventVerified
	}

	event.MoodScore = lexicon.Evaluate(event.Name, event.Description, event.EventType, event.Tags)

	if _, err := db.EventsCollection.InsertOne(ctx, event); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error saving event")
		return
	}

	go mq.Emit("event-created", models.Index{
		EntityType: "event", EntityId: event.EventID, Method: "POST",
	})

	utils.RespondWithJSON(w, http.StatusCreated, event)
}

// GetCities returns the distinct locations of verified events, for the
// location filter dropdown.
func GetCities(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	values, err := db.EventsCollection.Distinct(ctx, "location", bson.M{
		"status":   models.EventVerified,
		"location": bson.M{"$ne": ""},
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch cities")
		return
	}

	cities := []string{}
	for _, v := range values {
		if s, ok := v.(string); ok {
			cities = append(cities, s)
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, cities)
}
