package mood

import "testing"

func TestEvaluateDeterministic(t *testing.T) {
	lex := DefaultLexicon()

	first := lex.Evaluate("happy party", "", "PARTY", nil)
	second := lex.Evaluate("happy party", "", "PARTY", nil)

	if first != second {
		t.Fatalf("same input scored differently: %d vs %d", first, second)
	}

	// happy(3) + party(2) + PARTY type bonus(2)
	if first != 7 {
		t.Fatalf("expected score 7, got %d", first)
	}
}

func TestEvaluateTable(t *testing.T) {
	lex := DefaultLexicon()

	tests := []struct {
		name        string
		eventName   string
		description string
		eventType   string
		tags        []string
		want        int
	}{
		{"empty event", "", "", "", nil, 0},
		{"unknown words only", "quarterly sync", "agenda attached", "", nil, 0},
		{"type bonus only", "", "", "CONCERT", nil, 2},
		{"type penalty only", "", "", "LECTURE", nil, -1},
		{"lowercase type matches", "", "", "festival", nil, 2},
		{"unknown type", "", "", "HACKATHON", nil, 0},
		{"description counts", "", "fun and exciting night", "", nil, 5},
		{"tags scored by lexicon", "", "", "", []string{"happy", "sad"}, 0},
		{"multi word tag", "", "", "", []string{"happy dance"}, 5},
		{"mixed case tokens", "HAPPY Party", "", "", nil, 5},
		{"negative total", "memorial service", "grief support", "SEMINAR", nil, -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lex.Evaluate(tt.eventName, tt.description, tt.eventType, tt.tags)
			if got != tt.want {
				t.Fatalf("Evaluate() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEvaluateDoesNotMutateLexicon(t *testing.T) {
	lex := DefaultLexicon()
	before := len(lex.Words)

	lex.Evaluate("totally new words here", "never seen tokens", "MYSTERY", []string{"fresh"})

	if len(lex.Words) != before {
		t.Fatalf("lexicon grew from %d to %d entries", before, len(lex.Words))
	}
}
