package extract

import "testing"

func TestCity(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		source Confidence
	}{
		// Preposition and motion cues
		{name: "going to", text: "I'm going to Rome next week", want: "Rome", source: ConfidencePrep},
		{name: "weather in", text: "what's the weather in Paris?", want: "Paris", source: ConfidencePrep},
		{name: "leading city", text: "Rome in June sounds lovely", want: "Rome", source: ConfidencePrep},
		{name: "flying to", text: "flying to Tokyo on Friday", want: "Tokyo", source: ConfidencePrep},
		{name: "visit", text: "I want to visit Barcelona", want: "Barcelona", source: ConfidencePrep},
		{name: "near", text: "near Lisbon for a beach trip", want: "Lisbon", source: ConfidencePrep},
		{name: "multi word city", text: "we're heading to San Diego this weekend", want: "San Diego", source: ConfidencePrep},
		{name: "stops at date words", text: "going to Rome for a week", want: "Rome", source: ConfidencePrep},
		{name: "stops before month", text: "in Rome December maybe", want: "Rome", source: ConfidencePrep},

		// Aliases
		{name: "nyc", text: "nyc", want: "New York", source: ConfidencePrep},
		{name: "alias anywhere", text: "la is calling me", want: "Los Angeles", source: ConfidencePrep},
		{name: "sf", text: "how about sf", want: "San Francisco", source: ConfidencePrep},
		{name: "country alias", text: "thinking about israel", want: "Israel", source: ConfidencePrep},

		// Terse fallback
		{name: "bare city", text: "Paris", want: "Paris", source: ConfidenceFallback},
		{name: "two word fallback", text: "Buenos Aires", want: "Buenos Aires", source: ConfidenceFallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, source, ok := City(tt.text)
			if !ok {
				t.Fatalf("City(%q) = not ok, want %q", tt.text, tt.want)
			}
			if got != tt.want || source != tt.source {
				t.Errorf("City(%q) = (%q, %s), want (%q, %s)", tt.text, got, source, tt.want, tt.source)
			}
		})
	}
}

func TestCityRejects(t *testing.T) {
	for _, text := range []string{
		"",
		"nice",    // smalltalk, not the French city
		"awesome", // smalltalk
		"hiking",  // activity noun
		"museums",
		"packing",
		"just relaxing on a beach somewhere far away", // too long for fallback, no cues
	} {
		if got, _, ok := City(text); ok {
			t.Errorf("City(%q) = %q, want no candidate", text, got)
		}
	}
}

func TestPickAfterSkipsFiller(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"visiting Rome", "Rome"},
		{"Rome next week", "Rome"},
		{"Tel Aviv in summer", "Tel Aviv"},
		{"going Lisbon", "Lisbon"},
	}
	for _, tt := range tests {
		got, ok := pickAfter(tt.raw)
		if !ok || got != tt.want {
			t.Errorf("pickAfter(%q) = (%q, %v), want %q", tt.raw, got, ok, tt.want)
		}
	}
}

func TestPickAfterAllFiller(t *testing.T) {
	// Filler and stop words alone never produce a candidate.
	for _, raw := range []string{"top places in", "visit", "going to", ""} {
		if got, ok := pickAfter(raw); ok {
			t.Errorf("pickAfter(%q) = %q, want no candidate", raw, got)
		}
	}
}
