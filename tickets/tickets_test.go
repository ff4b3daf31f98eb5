package tickets

import (
	"strings"
	"testing"
	"time"
)

func TestPassPayloadRoundTrip(t *testing.T) {
	payload := SignPassPayload("e123", "b456", time.Unix(1700000000, 0))

	eventID, bookingID, ok := VerifyPassPayload(payload)
	if !ok {
		t.Fatal("signed payload did not verify")
	}
	if eventID != "e123" || bookingID != "b456" {
		t.Fatalf("got event %q booking %q, want e123 b456", eventID, bookingID)
	}
}

func TestPassPayloadRejectsTampering(t *testing.T) {
	payload := SignPassPayload("e123", "b456", time.Now())

	tampered := strings.Replace(payload, "b456", "b999", 1)
	if _, _, ok := VerifyPassPayload(tampered); ok {
		t.Fatal("tampered payload verified")
	}
}

func TestPassPayloadRejectsGarbage(t *testing.T) {
	for _, payload := range []string{"", "abc", "a|b", "a|b|c|d|e"} {
		if _, _, ok := VerifyPassPayload(payload); ok {
			t.Fatalf("payload %q verified", payload)
		}
	}
}
