package extract

import (
	"reflect"
	"testing"
)

func TestPrefsBudget(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"somewhere cheap please", "budget"},
		{"low-cost options only", "budget"},
		{"mid-range hotels are fine", "mid"},
		{"we want a luxury resort", "luxury"},
		{"a 5-star place", "luxury"},
		// Budget wins when a turn mentions several tiers.
		{"cheap flights but a luxury hotel", "budget"},
		{"no price mentioned", ""},
	}
	for _, tt := range tests {
		if got := Prefs(tt.text).Budget; got != tt.want {
			t.Errorf("Prefs(%q).Budget = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestPrefsKidFriendly(t *testing.T) {
	tests := []struct {
		text string
		want *bool
	}{
		{"traveling with kids", boolPtr(true)},
		{"family trip to the coast", boolPtr(true)},
		{"adults only please", boolPtr(false)},
		{"no kids this time", boolPtr(false)},
		{"just me", nil},
	}
	for _, tt := range tests {
		got := Prefs(tt.text).KidFriendly
		switch {
		case tt.want == nil && got != nil:
			t.Errorf("Prefs(%q).KidFriendly = %v, want nil", tt.text, *got)
		case tt.want != nil && (got == nil || *got != *tt.want):
			t.Errorf("Prefs(%q).KidFriendly = %v, want %v", tt.text, got, *tt.want)
		}
	}
}

func TestPrefsInterests(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"beaches and museums", []string{"beach", "museum"}},
		{"great street food and nightlife", []string{"food", "nightlife"}},
		{"hiking trails near a castle", []string{"hiking", "history"}},
		{"shopping at the market", []string{"shopping"}},
		{"nothing special", nil},
	}
	for _, tt := range tests {
		got := Prefs(tt.text).Interests
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Prefs(%q).Interests = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func boolPtr(b bool) *bool { return &b }
