package events

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vesna/db"
	"vesna/models"
	"vesna/utils"
)

func GetEvents(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	// Parse pagination query parameters (page and limit)
	page := 1
	limit := 10
	if parsed, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && parsed > 0 {
		page = parsed
	}
	if parsed, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && parsed > 0 && parsed <= 100 {
		limit = parsed
	}

	int64Limit := int64(limit)
	int64Skip := int64((page - 1) * limit)

	filter := bson.M{}
	// Anonymous browsing only sees verified events; admins see everything.
	if utils.GetUserStatusFromRequest(r) != models.StatusAdmin {
		filter["status"] = models.EventVerified
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := db.EventsCollection.Find(ctx, filter, &options.FindOptions{
		Skip:  &int64Skip,
		Limit: &int64Limit,
		Sort:  bson.D{{Key: "start_date", Value: 1}},
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer cursor.Close(ctx)

	var events []models.Event
	if err = cursor.All(ctx, &events); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if events == nil {
		events = []models.Event{}
	}

	attachUserFlags(ctx, events, utils.GetUserIDFromRequest(r))

	utils.RespondWithJSON(w, http.StatusOK, events)
}

func GetEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var event models.Event
	err := db.EventsCollection.FindOne(ctx, bson.M{"eventid": ps.ByName("eventid")}).Decode(&event)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	}

	events := []models.Event{event}
	attachUserFlags(ctx, events, utils.GetUserIDFromRequest(r))

	utils.RespondWithJSON(w, http.StatusOK, events[0])
}

// attachUserFlags marks which of the events the user has liked or
// bookmarked. No-op for anonymous requests.
func attachUserFlags(ctx context.Context, events []models.Event, userID string) {
	if userID == "" || len(events) == 0 {
		return
	}

	ids := make([]string, len(events))
	for i := range events {
		ids[i] = events[i].EventID
	}
	filter := bson.M{"userid": userID, "eventid": bson.M{"$in": ids}}

	liked := memberSet(ctx, db.LikesCollection, filter)
	bookmarked := memberSet(ctx, db.BookmarksCollection, filter)

	for i := range events {
		events[i].Liked = liked[events[i].EventID]
		events[i].Bookmarked = bookmarked[events[i].EventID]
	}
}

// memberSet collects the event IDs present in a (user,event) membership
// collection for the given filter.
func memberSet(ctx context.Context, collection *mongo.Collection, filter bson.M) map[string]bool {
	set := make(map[string]bool)
	cursor, err := collection.Find(ctx, filter)
	if err != nil {
		return set
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var member struct {
			EventID string `bson:"eventid"`
		}
		if cursor.Decode(&member) == nil {
			set[member.EventID] = true
		}
	}
	return set
}
