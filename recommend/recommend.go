// Package recommend selects verified events matching a caller-supplied
// criteria set: mood band, audience, location, date window, price. Every
// supplied criterion narrows the candidate set; an empty result is a
// normal outcome, not an error.
package recommend

import (
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"vesna/models"
)

// Mood bands. The ranges overlap on purpose: a score of 3 is both HAPPY
// and NEUTRAL, and 0 sits in all three.
const (
	MoodHappy   = "HAPPY"
	MoodNeutral = "NEUTRAL"
	MoodSad     = "SAD"
)

const (
	DateToday    = "TODAY"
	DateTomorrow = "TOMORROW"
	DateThisWeek = "THIS_WEEK"
)

const (
	PriceFree = "FREE"
	PricePaid = "PAID"
)

// Criteria is the caller's filter set. Zero values mean "not supplied".
type Criteria struct {
	AgeGroup     string
	Mood         string
	Location     string // city name, or the literal "online"
	Online       *bool
	DateOption   string // TODAY | TOMORROW | THIS_WEEK
	SpecificDate time.Time
	PriceOption  string // FREE | PAID
}

type moodBand struct{ min, max int }

var moodBands = map[string]moodBand{
	MoodHappy:   {0, 100},
	MoodNeutral: {-5, 5},
	MoodSad:     {-100, 0},
}

// Filter builds the Mongo query for the criteria, relative to now. Events
// are always restricted to VERIFIED status.
func Filter(c Criteria, now time.Time) bson.M {
	filter := bson.M{"status": models.EventVerified}

	if c.AgeGroup != "" {
		filter["target_audience"] = c.AgeGroup
	}

	if band, ok := moodBands[strings.ToUpper(c.Mood)]; ok {
		filter["mood_score"] = bson.M{"$gte": band.min, "$lte": band.max}
	}

	if c.Location != "" {
		if strings.EqualFold(c.Location, "online") {
			filter["online"] = true
		} else {
			filter["location"] = c.Location
		}
	}

	if c.Online != nil {
		filter["online"] = *c.Online
	}

	if from, to, ok := dateWindow(c, now); ok {
		window := bson.M{"$gte": from}
		if !to.IsZero() {
			window["$lt"] = to
		}
		filter["start_date"] = window
	}

	switch strings.ToUpper(c.PriceOption) {
	case PriceFree:
		filter["price"] = 0
	case PricePaid:
		filter["price"] = bson.M{"$gt": 0}
	}

	return filter
}

// dateWindow resolves the criteria's date constraint to a [from, to)
// window. A zero "to" means the window is open-ended. SpecificDate
// overrides DateOption.
func dateWindow(c Criteria, now time.Time) (from, to time.Time, ok bool) {
	if !c.SpecificDate.IsZero() {
		day := time.Date(c.SpecificDate.Year(), c.SpecificDate.Month(), c.SpecificDate.Day(), 0, 0, 0, 0, c.SpecificDate.Location())
		return day, day.AddDate(0, 0, 1), true
	}

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)

	switch strings.ToUpper(c.DateOption) {
	case DateToday:
		return now, midnight, true
	case DateTomorrow:
		return midnight, time.Time{}, true
	case DateThisWeek:
		return now, now.AddDate(0, 0, 7), true
	}
	return time.Time{}, time.Time{}, false
}

// Matches reports whether a single event satisfies the criteria at the
// given time. It must agree with Filter; it exists so selection logic can
// run over in-memory candidates and be tested without a database.
func Matches(e *models.Event, c Criteria, now time.Time) bool {
	if e.Status != models.EventVerified {
		return false
	}

	if c.AgeGroup != "" && e.TargetAudience != c.AgeGroup {
		return false
	}

	if band, ok := moodBands[strings.ToUpper(c.Mood)]; ok {
		if e.MoodScore < band.min || e.MoodScore > band.max {
			return false
		}
	}

	if c.Location != "" {
		if strings.EqualFold(c.Location, "online") {
			if !e.Online {
				return false
			}
		} else if e.Location != c.Location {
			return false
		}
	}

	if c.Online != nil && e.Online != *c.Online {
		return false
	}

	if from, to, ok := dateWindow(c, now); ok {
		if e.StartDate.Before(from) {
			return false
		}
		if !to.IsZero() && !e.StartDate.Before(to) {
			return false
		}
	}

	switch strings.ToUpper(c.PriceOption) {
	case PriceFree:
		if e.Price != 0 {
			return false
		}
	case PricePaid:
		if e.Price <= 0 {
			return false
		}
	}

	return true
}

// Select filters and orders candidates: every active criterion must hold,
// soonest start date first.
func Select(events []models.Event, c Criteria, now time.Time) []models.Event {
	matched := []models.Event{}
	for i := range events {
		if Matches(&events[i], c, now) {
			matched = append(matched, events[i])
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].StartDate.Before(matched[j].StartDate)
	})
	return matched
}
