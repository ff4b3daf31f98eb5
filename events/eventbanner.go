package events

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"

	"vesna/db"
	"vesna/utils"
)

const bannerDir = "./static/eventpic"

// UploadBanner stores a banner image for an event and generates a
// thumbnail. Owner or admin only, JPEG and PNG accepted, 10 MB cap.
func UploadBanner(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	event, code, msg := loadOwnedEvent(ctx, r, eventID)
	if event == nil {
		utils.RespondWithError(w, code, msg)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	file, _, err := r.FormFile("banner")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Banner file is required")
		return
	}
	defer file.Close()

	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to read banner")
		return
	}

	var ext string
	switch http.DetectContentType(head[:n]) {
	case "image/jpeg":
		ext = ".jpg"
	case "image/png":
		ext = ".png"
	default:
		utils.RespondWithError(w, http.StatusBadRequest, "Banner must be a JPEG or PNG image")
		return
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to read banner")
		return
	}

	if err := os.MkdirAll(bannerDir, 0o755); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save banner")
		return
	}

	dst, err := os.Create(filepath.Join(bannerDir, eventID+ext))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save banner")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save banner")
		return
	}

	if err := utils.CreateThumb(eventID, bannerDir, ext, 300); err != nil {
		log.Printf("events: thumbnail for %s failed: %v", eventID, err)
	}

	bannerURL := "/static/eventpic/" + eventID + ext
	if _, err := db.EventsCollection.UpdateOne(ctx,
		bson.M{"eventid": eventID},
		bson.M{"$set": bson.M{"banner_image": bannerURL, "updated_at": time.Now().UTC()}},
	); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update event")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"eventid": eventID, "banner_image": bannerURL})
}
