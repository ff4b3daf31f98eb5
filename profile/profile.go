package profile

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"

	"vesna/db"
	"vesna/models"
	"vesna/tags"
	"vesna/utils"
)

// GetMyData returns the caller's own account.
func GetMyData(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid user")
		return
	}

	var user models.User
	if err := db.UserCollection.FindOne(r.Context(), bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, user)
}

// GetUser returns a public view of an account.
func GetUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var user models.User
	if err := db.UserCollection.FindOne(r.Context(), bson.M{"userid": ps.ByName("userid")}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	// Email stays private between the account and admins.
	if utils.GetUserIDFromRequest(r) != user.UserID && utils.GetUserStatusFromRequest(r) != models.StatusAdmin {
		user.Email = ""
	}
	utils.RespondWithJSON(w, http.StatusOK, user)
}

type profilePayload struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	PhoneNumber *string `json:"phone_number"`
	AvatarURL   *string `json:"avatar_url"`
}

// UpdateProfile changes the caller's own profile fields. Absent fields
// are left as they were.
func UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid user")
		return
	}

	var payload profilePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if payload.Name != nil {
		name := strings.TrimSpace(*payload.Name)
		if len(name) < 3 {
			utils.RespondWithError(w, http.StatusBadRequest, "Name must be at least 3 characters")
			return
		}
		set["name"] = name
	}
	if payload.Description != nil {
		set["description"] = strings.TrimSpace(*payload.Description)
	}
	if payload.PhoneNumber != nil {
		set["phone_number"] = strings.TrimSpace(*payload.PhoneNumber)
	}
	if payload.AvatarURL != nil {
		set["avatar_url"] = strings.TrimSpace(*payload.AvatarURL)
	}

	if _, err := db.UserCollection.UpdateOne(r.Context(), bson.M{"userid": userID}, bson.M{"$set": set}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	var user models.User
	if err := db.UserCollection.FindOne(r.Context(), bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, user)
}

type interestsPayload struct {
	Interests []string `json:"interests"`
}

// SetInterests replaces the caller's interest tags. Names are run
// through the shared tag registry so they stay canonical.
func SetInterests(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid user")
		return
	}

	var payload interestsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	interests, err := tags.Ensure(r.Context(), payload.Interests)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save interests")
		return
	}

	if _, err := db.UserCollection.UpdateOne(r.Context(),
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"interests": interests, "updated_at": time.Now().UTC()}},
	); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save interests")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"interests": interests})
}

type statusPayload struct {
	Status string `json:"status"`
}

// ChangeUserStatus promotes or demotes an account. Admin only.
func ChangeUserStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if utils.GetUserStatusFromRequest(r) != models.StatusAdmin {
		utils.RespondWithError(w, http.StatusForbidden, "Only admins can change account status")
		return
	}

	var payload statusPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	switch payload.Status {
	case models.StatusAdmin, models.StatusUser, models.StatusVerifiedUser:
	default:
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown status")
		return
	}

	res, err := db.UserCollection.UpdateOne(r.Context(),
		bson.M{"userid": ps.ByName("userid")},
		bson.M{"$set": bson.M{"status": payload.Status, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update status")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"userid": ps.ByName("userid"),
		"status": payload.Status,
	})
}
