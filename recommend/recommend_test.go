package recommend

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"vesna/models"
)

var testNow = time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)

func verifiedEvent(id string, mood int, start time.Time) models.Event {
	return models.Event{
		EventID:   id,
		Status:    models.EventVerified,
		MoodScore: mood,
		StartDate: start,
	}
}

func TestSelectByMoodBand(t *testing.T) {
	later := testNow.Add(48 * time.Hour)
	earlier := testNow.Add(24 * time.Hour)

	events := []models.Event{
		verifiedEvent("gloomy", -10, earlier),
		verifiedEvent("even", 0, later),
		verifiedEvent("upbeat", 50, earlier.Add(time.Hour)),
	}

	got := Select(events, Criteria{Mood: MoodHappy}, testNow)

	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	// Ascending by start date: "upbeat" starts before "even".
	if got[0].EventID != "upbeat" || got[1].EventID != "even" {
		t.Fatalf("wrong order: %s, %s", got[0].EventID, got[1].EventID)
	}
}

func TestBandsOverlap(t *testing.T) {
	e := verifiedEvent("e", 3, testNow.Add(time.Hour))

	for _, mood := range []string{MoodHappy, MoodNeutral} {
		if !Matches(&e, Criteria{Mood: mood}, testNow) {
			t.Errorf("score 3 should fall in %s band", mood)
		}
	}
	if Matches(&e, Criteria{Mood: MoodSad}, testNow) {
		t.Error("score 3 should not fall in SAD band")
	}

	zero := verifiedEvent("z", 0, testNow.Add(time.Hour))
	for _, mood := range []string{MoodHappy, MoodNeutral, MoodSad} {
		if !Matches(&zero, Criteria{Mood: mood}, testNow) {
			t.Errorf("score 0 should fall in %s band", mood)
		}
	}
}

func TestOnlyVerifiedEventsMatch(t *testing.T) {
	for _, status := range []string{models.EventCreated, models.EventDeclined} {
		e := models.Event{EventID: "e", Status: status, StartDate: testNow.Add(time.Hour)}
		if Matches(&e, Criteria{}, testNow) {
			t.Errorf("status %s matched", status)
		}
	}
}

func TestDateWindows(t *testing.T) {
	tonight := time.Date(2026, time.March, 10, 20, 0, 0, 0, time.UTC)
	tomorrowMorning := time.Date(2026, time.March, 11, 9, 0, 0, 0, time.UTC)
	inFiveDays := testNow.AddDate(0, 0, 5)
	inTenDays := testNow.AddDate(0, 0, 10)
	thisAfternoonPast := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		criteria Criteria
		start    time.Time
		want     bool
	}{
		{"today matches tonight", Criteria{DateOption: DateToday}, tonight, true},
		{"today excludes tomorrow", Criteria{DateOption: DateToday}, tomorrowMorning, false},
		{"today excludes already started", Criteria{DateOption: DateToday}, thisAfternoonPast, false},
		{"tomorrow matches tomorrow", Criteria{DateOption: DateTomorrow}, tomorrowMorning, true},
		{"tomorrow is open ended", Criteria{DateOption: DateTomorrow}, inTenDays, true},
		{"tomorrow excludes today", Criteria{DateOption: DateTomorrow}, tonight, false},
		{"this week matches day 5", Criteria{DateOption: DateThisWeek}, inFiveDays, true},
		{"this week excludes day 10", Criteria{DateOption: DateThisWeek}, inTenDays, false},
		{"specific date matches its day", Criteria{SpecificDate: inFiveDays}, inFiveDays.Add(2 * time.Hour), true},
		{"specific date excludes next day", Criteria{SpecificDate: inFiveDays}, inFiveDays.AddDate(0, 0, 1), false},
		{"specific date overrides option", Criteria{DateOption: DateToday, SpecificDate: inFiveDays}, inFiveDays, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := verifiedEvent("e", 0, tt.start)
			if got := Matches(&e, tt.criteria, testNow); got != tt.want {
				t.Fatalf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLocationAndPrice(t *testing.T) {
	online := true
	kyiv := verifiedEvent("kyiv", 0, testNow.Add(time.Hour))
	kyiv.Location = "Kyiv"
	kyiv.Price = 250

	webinar := verifiedEvent("web", 0, testNow.Add(time.Hour))
	webinar.Online = true

	if !Matches(&kyiv, Criteria{Location: "Kyiv"}, testNow) {
		t.Error("city filter should match")
	}
	if Matches(&kyiv, Criteria{Location: "Lviv"}, testNow) {
		t.Error("other city should not match")
	}
	if !Matches(&webinar, Criteria{Location: "online"}, testNow) {
		t.Error("\"online\" location should match online events")
	}
	if !Matches(&webinar, Criteria{Online: &online}, testNow) {
		t.Error("online flag should match")
	}
	if Matches(&kyiv, Criteria{Online: &online}, testNow) {
		t.Error("offline event matched online filter")
	}
	if !Matches(&kyiv, Criteria{PriceOption: PricePaid}, testNow) {
		t.Error("paid filter should match priced event")
	}
	if Matches(&kyiv, Criteria{PriceOption: PriceFree}, testNow) {
		t.Error("free filter matched priced event")
	}
	if !Matches(&webinar, Criteria{PriceOption: PriceFree}, testNow) {
		t.Error("free filter should match zero-price event")
	}
}

func TestCriteriaAreConjunctive(t *testing.T) {
	e := verifiedEvent("e", 10, testNow.Add(time.Hour))
	e.Location = "Kyiv"
	e.TargetAudience = "ADULTS"

	if !Matches(&e, Criteria{Mood: MoodHappy, Location: "Kyiv", AgeGroup: "ADULTS"}, testNow) {
		t.Fatal("all criteria hold, should match")
	}
	if Matches(&e, Criteria{Mood: MoodHappy, Location: "Kyiv", AgeGroup: "KIDS"}, testNow) {
		t.Fatal("one failing criterion must exclude the event")
	}
}

func TestEmptyResultIsNotAnError(t *testing.T) {
	got := Select(nil, Criteria{Mood: MoodHappy}, testNow)
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty slice, got %#v", got)
	}
}

func TestFilterShape(t *testing.T) {
	online := false
	f := Filter(Criteria{
		Mood:        MoodSad,
		AgeGroup:    "TEENS",
		Location:    "Odesa",
		Online:      &online,
		DateOption:  DateThisWeek,
		PriceOption: PriceFree,
	}, testNow)

	if f["status"] != models.EventVerified {
		t.Fatalf("status filter = %v", f["status"])
	}
	if f["target_audience"] != "TEENS" {
		t.Fatalf("target_audience = %v", f["target_audience"])
	}
	mood, ok := f["mood_score"].(bson.M)
	if !ok || mood["$gte"] != -100 || mood["$lte"] != 0 {
		t.Fatalf("mood_score filter = %v", f["mood_score"])
	}
	if f["location"] != "Odesa" {
		t.Fatalf("location = %v", f["location"])
	}
	if f["online"] != false {
		t.Fatalf("online = %v", f["online"])
	}
	if f["price"] != 0 {
		t.Fatalf("price = %v", f["price"])
	}
	window, ok := f["start_date"].(bson.M)
	if !ok {
		t.Fatalf("start_date filter missing")
	}
	if window["$gte"] != testNow {
		t.Fatalf("window start = %v", window["$gte"])
	}
	if window["$lt"] != testNow.AddDate(0, 0, 7) {
		t.Fatalf("window end = %v", window["$lt"])
	}
}
