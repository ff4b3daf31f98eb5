// Package discover serves event recommendations over HTTP.
package discover

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vesna/db"
	"vesna/models"
	"vesna/recommend"
	"vesna/utils"
)

// RecommendEvents answers GET /api/discover. Every supplied query
// parameter narrows the result; an empty list is a normal answer.
//
// Parameters: mood, age_group, location, online (true/false), date
// (TODAY|TOMORROW|THIS_WEEK), specific_date (YYYY-MM-DD), price
// (FREE|PAID).
func RecommendEvents(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()

	criteria := recommend.Criteria{
		Mood:        q.Get("mood"),
		AgeGroup:    q.Get("age_group"),
		Location:    q.Get("location"),
		DateOption:  q.Get("date"),
		PriceOption: q.Get("price"),
	}

	if v := q.Get("online"); v != "" {
		online := v == "true" || v == "1"
		criteria.Online = &online
	}

	if v := q.Get("specific_date"); v != "" {
		day, err := time.Parse("2006-01-02", v)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "specific_date must be YYYY-MM-DD")
			return
		}
		criteria.SpecificDate = day
	}

	filter := recommend.Filter(criteria, time.Now().UTC())

	cursor, err := db.EventsCollection.Find(r.Context(), filter,
		options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}}).SetLimit(100),
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch recommendations")
		return
	}
	defer cursor.Close(r.Context())

	events := []models.Event{}
	if err := cursor.All(r.Context(), &events); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode recommendations")
		return
	}

	markUserFlags(r, events)

	utils.RespondWithJSON(w, http.StatusOK, events)
}

// markUserFlags sets the liked/bookmarked flags when the caller is
// logged in.
func markUserFlags(r *http.Request, events []models.Event) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" || len(events) == 0 {
		return
	}

	ids := make([]string, 0, len(events))
	for i := range events {
		ids = append(ids, events[i].EventID)
	}
	filter := bson.M{"userid": userID, "eventid": bson.M{"$in": ids}}

	liked := idSet(r, db.LikesCollection, filter)
	bookmarked := idSet(r, db.BookmarksCollection, filter)

	for i := range events {
		events[i].Liked = liked[events[i].EventID]
		events[i].Bookmarked = bookmarked[events[i].EventID]
	}
}

func idSet(r *http.Request, collection *mongo.Collection, filter bson.M) map[string]bool {
	set := make(map[string]bool)
	cursor, err := collection.Find(r.Context(), filter)
	if err != nil {
		return set
	}
	defer cursor.Close(r.Context())

	for cursor.Next(r.Context()) {
		var doc struct {
			EventID string `bson:"eventid"`
		}
		if err := cursor.Decode(&doc); err == nil {
			set[doc.EventID] = true
		}
	}
	return set
}
