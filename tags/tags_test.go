package tags

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseList(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []string
		wantErr bool
	}{
		{"list of strings", `["music","live"]`, []string{"music", "live"}, false},
		{"empty list", `[]`, []string{}, false},
		{"absent", ``, []string{}, false},
		{"null", `null`, []string{}, false},
		{"single string", `"music"`, nil, true},
		{"list of numbers", `[1,2]`, nil, true},
		{"mixed list", `["music",2]`, nil, true},
		{"object", `{"a":1}`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var raw json.RawMessage
			if tt.raw != "" {
				raw = json.RawMessage(tt.raw)
			}
			got, err := ParseList(raw)
			if tt.wantErr {
				if !errors.Is(err, ErrTagListInvalid) {
					t.Fatalf("ParseList(%s) error = %v, want ErrTagListInvalid", tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseList(%s) unexpected error: %v", tt.raw, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseList(%s) = %v, want %v", tt.raw, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("ParseList(%s) = %v, want %v", tt.raw, got, tt.want)
				}
			}
		})
	}
}
