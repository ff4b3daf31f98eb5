package likes

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"vesna/db"
	"vesna/globals"
	"vesna/models"
	"vesna/rdx"
	"vesna/utils"
)

// LikeEvent records a like for the caller. Liking twice is a no-op.
func LikeEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid user")
		return
	}

	res := db.EventsCollection.FindOne(r.Context(), bson.M{"eventid": eventID})
	if res.Err() != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	}

	like := models.Like{
		EventID:   eventID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	_, err := db.LikesCollection.InsertOne(r.Context(), like)
	switch {
	case err == nil:
		rdx.Conn.Incr(globals.Ctx, rdx.LikeCountKey(eventID))
	case mongo.IsDuplicateKeyError(err):
		// already liked
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to like event")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"eventid": eventID,
		"liked":   true,
		"likes":   likeCount(r, eventID),
	})
}

// UnlikeEvent removes the caller's like. Removing a missing like is a
// no-op.
func UnlikeEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid user")
		return
	}

	res, err := db.LikesCollection.DeleteOne(r.Context(), bson.M{"eventid": eventID, "userid": userID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to unlike event")
		return
	}
	if res.DeletedCount > 0 {
		rdx.Conn.Decr(globals.Ctx, rdx.LikeCountKey(eventID))
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"eventid": eventID,
		"liked":   false,
		"likes":   likeCount(r, eventID),
	})
}

// GetLikeCount reports the current like total for an event.
func GetLikeCount(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"eventid": eventID,
		"likes":   likeCount(r, eventID),
	})
}

// likeCount prefers the cached counter and falls back to counting the
// like documents when the cache is cold.
func likeCount(r *http.Request, eventID string) int64 {
	if n, err := rdx.Conn.Get(globals.Ctx, rdx.LikeCountKey(eventID)).Int64(); err == nil {
		return n
	}

	n, err := db.LikesCollection.CountDocuments(r.Context(), bson.M{"eventid": eventID})
	if err != nil {
		return 0
	}
	rdx.Conn.Set(globals.Ctx, rdx.LikeCountKey(eventID), n, 0)
	return n
}
