// Package tags manages the deduplicated, case-insensitive event labels.
// Names are stored lowercased; a unique index on name backs up the
// check-then-insert so a racing duplicate is cosmetic at worst.
package tags

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"vesna/db"
	"vesna/models"
	"vesna/utils"
)

// ErrTagListInvalid flags a tag payload that is not a list of strings.
var ErrTagListInvalid = errors.New("tags must be a list of strings")

// ParseList validates a raw JSON tag field. A missing field is an empty
// list, anything but an array of strings is rejected.
func ParseList(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 {
		return []string{}, nil
	}
	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		return nil, ErrTagListInvalid
	}
	return names, nil
}

// Ensure normalizes the given tag names and creates any that do not exist
// yet. Returns the normalized names.
func Ensure(ctx context.Context, names []string) ([]string, error) {
	normalized := []string{}
	seen := make(map[string]bool)

	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		normalized = append(normalized, name)

		err := db.TagsCollection.FindOne(ctx, bson.M{"name": name}).Err()
		if err == nil {
			continue
		}
		if err != mongo.ErrNoDocuments {
			return nil, err
		}

		tag := models.Tag{
			TagID:     "t" + utils.GenerateRandomString(10),
			Name:      name,
			CreatedAt: time.Now().UTC(),
		}
		if _, err := db.TagsCollection.InsertOne(ctx, tag); err != nil {
			// A concurrent insert of the same name trips the unique
			// index; the tag exists either way.
			if !mongo.IsDuplicateKeyError(err) {
				return nil, err
			}
		}
	}

	return normalized, nil
}

func GetTags(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := db.TagsCollection.Find(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch tags")
		return
	}
	defer cursor.Close(ctx)

	var tags []models.Tag
	if err := cursor.All(ctx, &tags); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode tags")
		return
	}
	if tags == nil {
		tags = []models.Tag{}
	}
	utils.RespondWithJSON(w, http.StatusOK, tags)
}

func GetTag(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var tag models.Tag
	err := db.TagsCollection.FindOne(ctx, bson.M{"tagid": ps.ByName("tagid")}).Decode(&tag)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Tag not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tag)
}

func CreateTag(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Name) == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Tag name is required")
		return
	}

	name := strings.ToLower(strings.TrimSpace(body.Name))
	if err := db.TagsCollection.FindOne(ctx, bson.M{"name": name}).Err(); err == nil {
		utils.RespondWithError(w, http.StatusConflict, "Tag already exists")
		return
	}

	tag := models.Tag{
		TagID:     "t" + utils.GenerateRandomString(10),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := db.TagsCollection.InsertOne(ctx, tag); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create tag")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, tag)
}

// UpdateTag renames a tag. Admin only.
func UpdateTag(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if utils.GetUserStatusFromRequest(r) != models.StatusAdmin {
		utils.RespondWithError(w, http.StatusForbidden, "Not allowed action")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Name) == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Tag name is required")
		return
	}

	res := db.TagsCollection.FindOneAndUpdate(ctx,
		bson.M{"tagid": ps.ByName("tagid")},
		bson.M{"$set": bson.M{"name": strings.ToLower(strings.TrimSpace(body.Name))}},
	)
	if res.Err() != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Tag not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

// DeleteTag removes a tag. Admin only.
func DeleteTag(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if utils.GetUserStatusFromRequest(r) != models.StatusAdmin {
		utils.RespondWithError(w, http.StatusForbidden, "Not allowed action")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.TagsCollection.DeleteOne(ctx, bson.M{"tagid": ps.ByName("tagid")})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete tag")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Tag not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}
