package tickets

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"

	"vesna/db"
	"vesna/models"
	"vesna/utils"
)

var passSecret = func() []byte {
	if s := os.Getenv("PASS_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("dev_only_pass_secret")
}()

// SignPassPayload builds the QR payload for a booking:
// eventID|bookingID|timestamp|signature.
func SignPassPayload(eventID, bookingID string, issuedAt time.Time) string {
	data := fmt.Sprintf("%s|%s|%d", eventID, bookingID, issuedAt.Unix())
	h := hmac.New(sha256.New, passSecret)
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return data + "|" + sig
}

// VerifyPassPayload checks the signature of a scanned QR payload and
// returns the event and booking IDs it carries.
func VerifyPassPayload(payload string) (eventID, bookingID string, ok bool) {
	parts := strings.Split(payload, "|")
	if len(parts) != 4 {
		return "", "", false
	}
	data := strings.Join(parts[:3], "|")

	h := hmac.New(sha256.New, passSecret)
	h.Write([]byte(data))
	want := base64.StdEncoding.EncodeToString(h.Sum(nil))
	if !hmac.Equal([]byte(parts[3]), []byte(want)) {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// PrintBookingPass renders the caller's booking as a PDF pass with a
// signed QR code.
func PrintBookingPass(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid user")
		return
	}

	var booking models.Booking
	if err := db.BookingsCollection.FindOne(r.Context(),
		bson.M{"eventid": eventID, "userid": userID},
	).Decode(&booking); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "No booking found for this event")
		return
	}

	var event models.Event
	if err := db.EventsCollection.FindOne(r.Context(), bson.M{"eventid": eventID}).Decode(&event); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	}

	qrPayload := SignPassPayload(eventID, booking.BookingID, time.Now())
	qrPNG, err := qrcode.Encode(qrPayload, qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Booking Pass")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Event: %s", event.Name))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Location: %s", event.Location))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Starts: %s", event.StartDate.Format("2 Jan 2006 15:04 MST")))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Name: %s", booking.ContactName))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Tickets: %d", booking.Tickets))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Booking ID: %s", booking.BookingID))
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=pass-"+booking.BookingID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// VerifyBookingPass validates a scanned QR payload at the door. Event
// owner or admin only.
func VerifyBookingPass(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid user")
		return
	}

	payload := r.URL.Query().Get("payload")
	if payload == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Payload is required")
		return
	}

	eventID, bookingID, ok := VerifyPassPayload(payload)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid or tampered pass")
		return
	}

	var event models.Event
	if err := db.EventsCollection.FindOne(r.Context(), bson.M{"eventid": eventID}).Decode(&event); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	}
	if event.CreatedBy != userID && utils.GetUserStatusFromRequest(r) != models.StatusAdmin {
		utils.RespondWithError(w, http.StatusForbidden, "Only the event owner can verify passes")
		return
	}

	var booking models.Booking
	if err := db.BookingsCollection.FindOne(r.Context(),
		bson.M{"eventid": eventID, "bookingid": bookingID},
	).Decode(&booking); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"valid":   true,
		"eventid": eventID,
		"booking": booking,
	})
}
