package comments

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vesna/db"
	"vesna/models"
	"vesna/utils"
)

const maxCommentLength = 1000

type commentPayload struct {
	Content string `json:"content"`
}

func (p *commentPayload) validate() string {
	p.Content = strings.TrimSpace(p.Content)
	if p.Content == "" {
		return "Comment cannot be empty"
	}
	if len(p.Content) > maxCommentLength {
		return "Comment is too long"
	}
	return ""
}

// CreateComment adds a comment to an event.
func CreateComment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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

	var payload commentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if msg := payload.validate(); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	now := time.Now().UTC()
	comment := models.Comment{
		ID:        "c" + utils.GenerateRandomString(12),
		EventID:   eventID,
		UserID:    userID,
		Content:   payload.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := db.CommentsCollection.InsertOne(r.Context(), comment); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create comment")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, comment)
}

// GetComments lists an event's comments, newest first.
func GetComments(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")

	cursor, err := db.CommentsCollection.Find(r.Context(),
		bson.M{"eventid": eventID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch comments")
		return
	}
	defer cursor.Close(r.Context())

	var list []models.Comment
	if err := cursor.All(r.Context(), &list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode comments")
		return
	}
	if list == nil {
		list = []models.Comment{}
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// UpdateComment edits a comment. Author only.
func UpdateComment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	commentID := ps.ByName("commentid")
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid user")
		return
	}

	var payload commentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if msg := payload.validate(); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	res, err := db.CommentsCollection.UpdateOne(r.Context(),
		bson.M{"commentid": commentID, "userid": userID},
		bson.M{"$set": bson.M{"content": payload.Content, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update comment")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Comment not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Comment updated", nil)
}

// DeleteComment removes a comment. Author or admin only.
func DeleteComment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	commentID := ps.ByName("commentid")
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid user")
		return
	}

	filter := bson.M{"commentid": commentID}
	if utils.GetUserStatusFromRequest(r) != models.StatusAdmin {
		filter["userid"] = userID
	}

	res, err := db.CommentsCollection.DeleteOne(r.Context(), filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete comment")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Comment not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Comment deleted", nil)
}
