// Package mood derives a signed sentiment score for an event from its
// free-text fields, its type, and its tags. The score is computed once at
// event creation/update and stored on the event document; the discover
// filter later buckets it into HAPPY/NEUTRAL/SAD bands.
package mood

import "strings"

// Lexicon holds the word scores and per-event-type adjustments. It is
// built once and injected; scoring never mutates it.
type Lexicon struct {
	Words      map[string]int
	EventTypes map[string]int
}

// DefaultLexicon returns the stock scoring tables.
func DefaultLexicon() *Lexicon {
	return &Lexicon{
		Words:      defaultWordScores,
		EventTypes: defaultEventTypeScores,
	}
}

// Evaluate sums word scores over the event name and description, adds the
// event-type adjustment, and scores each tag through the same word table.
// Unknown words contribute 0; empty inputs contribute 0. Pure function.
func (l *Lexicon) Evaluate(name, description, eventType string, tags []string) int {
	score := l.analyzeText(name) + l.analyzeText(description)
	score += l.EventTypes[strings.ToUpper(eventType)]
	for _, tag := range tags {
		score += l.analyzeText(tag)
	}
	return score
}

func (l *Lexicon) analyzeText(text string) int {
	if text == "" {
		return 0
	}
	score := 0
	for _, word := range strings.Fields(strings.ToLower(text)) {
		score += l.Words[word]
	}
	return score
}

var defaultEventTypeScores = map[string]int{
	"CONCERT":    2,
	"LECTURE":    -1,
	"WEBINAR":    -1,
	"WORKSHOP":   -1,
	"SEMINAR":    0,
	"MEETUP":     -1,
	"EXHIBITION": -1,
	"CONFERENCE": -1,
	"FESTIVAL":   2,
	"PARTY":      2,
	"GALA":       1,
	"SPORTS":     1,
	"CHARITY":    -1,
}

var defaultWordScores = map[string]int{
	"happy":       3,
	"joy":         3,
	"joyful":      3,
	"fun":         3,
	"party":       2,
	"celebrate":   2,
	"celebration": 2,
	"amazing":     2,
	"awesome":     2,
	"great":       2,
	"exciting":    2,
	"festive":     2,
	"dance":       2,
	"dancing":     2,
	"music":       1,
	"live":        1,
	"friends":     1,
	"love":        2,
	"summer":      1,
	"free":        1,
	"win":         1,
	"winner":      1,
	"laugh":       2,
	"smile":       2,
	"bright":      1,
	"colorful":    1,
	"sad":         -3,
	"grief":       -3,
	"mourning":    -3,
	"memorial":    -2,
	"funeral":     -3,
	"loss":        -2,
	"crisis":      -2,
	"war":         -2,
	"serious":     -1,
	"strict":      -1,
	"exam":        -2,
	"deadline":    -2,
	"boring":      -2,
	"lonely":      -2,
	"dark":        -1,
	"cold":        -1,
	"difficult":   -1,
	"problem":     -1,
	"problems":    -1,
	"stress":      -2,
	"tired":       -1,
}
