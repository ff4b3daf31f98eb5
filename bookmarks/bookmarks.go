package bookmarks

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vesna/db"
	"vesna/models"
	"vesna/utils"
)

// SaveEvent bookmarks an event for the caller. Saving twice is a no-op.
func SaveEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid user")
		return
	}

	if err := db.EventsCollection.FindOne(r.Context(), bson.M{"eventid": eventID}).Err(); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	}

	bookmark := models.Bookmark{
		EventID:   eventID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := db.BookmarksCollection.InsertOne(r.Context(), bookmark); err != nil && !mongo.IsDuplicateKeyError(err) {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save event")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"eventid": eventID, "bookmarked": true})
}

// UnsaveEvent removes the caller's bookmark. Removing a missing
// bookmark is a no-op.
func UnsaveEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid user")
		return
	}

	if _, err := db.BookmarksCollection.DeleteOne(r.Context(), bson.M{"eventid": eventID, "userid": userID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to remove bookmark")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"eventid": eventID, "bookmarked": false})
}

// GetSavedEvents lists the events the caller bookmarked, newest
// bookmark first.
func GetSavedEvents(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid user")
		return
	}

	cursor, err := db.BookmarksCollection.Find(r.Context(),
		bson.M{"userid": userID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch bookmarks")
		return
	}
	defer cursor.Close(r.Context())

	var marks []models.Bookmark
	if err := cursor.All(r.Context(), &marks); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode bookmarks")
		return
	}

	ids := make([]string, 0, len(marks))
	for _, m := range marks {
		ids = append(ids, m.EventID)
	}

	events := []models.Event{}
	if len(ids) > 0 {
		cur, err := db.EventsCollection.Find(r.Context(), bson.M{"eventid": bson.M{"$in": ids}})
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch events")
			return
		}
		defer cur.Close(r.Context())
		if err := cur.All(r.Context(), &events); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode events")
			return
		}

		// Keep the bookmark order, newest first.
		byID := make(map[string]models.Event, len(events))
		for _, e := range events {
			byID[e.EventID] = e
		}
		ordered := make([]models.Event, 0, len(events))
		for _, id := range ids {
			if e, ok := byID[id]; ok {
				e.Bookmarked = true
				ordered = append(ordered, e)
			}
		}
		events = ordered
	}

	utils.RespondWithJSON(w, http.StatusOK, events)
}
