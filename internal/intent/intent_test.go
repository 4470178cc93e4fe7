package intent

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Intent
	}{
		// Strong attractions phrasing beats everything, including weather.
		{name: "top 3", text: "top 3 things for a rainy day", want: Attractions},
		{name: "what to see", text: "what to see in Rome", want: Attractions},
		{name: "where to visit", text: "where to visit", want: Attractions},

		// Weather outranks the generic verb rules.
		{name: "weather basic", text: "what's the weather like?", want: Weather},
		{name: "weather with see", text: "what's the weather, I want to see it rain", want: Weather},
		{name: "misspelled", text: "hows the wetaher", want: Weather},
		{name: "forecast", text: "forecast for next week please", want: Weather},
		{name: "temcoverage", text: "will it be cold there", want: Weather},

		// Meta questions about remembered context.
		{name: "which city", text: "which city am I going to again?", want: Meta},
		{name: "remember", text: "do you remember my dates", want: Meta},
		{name: "recap", text: "give me a recap", want: Meta},

		// End of conversation.
		{name: "done", text: "ok we're good, bye", want: End},
		{name: "no thanks", text: "no thanks, maybe later", want: End},

		// Frustration lands on neutral so the resolver can carry over.
		{name: "frustration punctuation", text: "why is this happening!!!", want: Neutral},
		{name: "frustration words", text: "you're so dumb", want: Neutral},

		// Short greetings are support.
		{name: "hello", text: "hello there", want: Support},
		{name: "thanks", text: "thanks so much!", want: Support},

		// Motion verbs mean a destination conversation.
		{name: "going to", text: "I'm going to Lisbon", want: Destination},
		{name: "visiting", text: "we're visiting Osaka", want: Destination},

		// Packing and attractions hints.
		{name: "packing", text: "help me pack for the trip", want: Packing},
		{name: "what to bring", text: "any idea what to bring?", want: Packing},
		{name: "museum", text: "is the museum worth it", want: Attractions},
		{name: "sights", text: "best sights around", want: Attractions},

		// Destination ideas.
		{name: "suggest", text: "suggest somewhere warm", want: Destination},
		{name: "vacation", text: "I need a vacation", want: Destination},

		// Nothing matches.
		{name: "neutral", text: "my budget is flexible", want: Neutral},
		{name: "empty", text: "", want: Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.text); got != tt.want {
				t.Errorf("Detect(%q) = %s, want %s", tt.text, got, tt.want)
			}
		})
	}
}

func TestDetectWordBoundaries(t *testing.T) {
	// Single-token hints only match whole words.
	tests := []struct {
		text string
		want Intent
	}{
		{"the door is open", Neutral},          // "do" must not match inside "door"
		{"what can we do there", Attractions},  // standalone "do" still counts
		{"this is so niccceeee", Support},        // long-tail spellings are whole tokens anyway
		{"checking the temperature there", Weather},
		{"a parking spot near the inn", Neutral}, // "park" must not match inside "parking"
	}
	for _, tt := range tests {
		if got := Detect(tt.text); got != tt.want {
			t.Errorf("Detect(%q) = %s, want %s", tt.text, got, tt.want)
		}
	}
}

func TestIsSmalltalk(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"hi", true},
		{"thanks!", true},
		{"hey, my name is Dana", true},
		{"hello, what's the weather in Rome", false}, // weather vocabulary excludes smalltalk
		{"thanks, now help me pack", false},
		{"hey everyone this is a really long greeting message overall", false}, // too long
		// Substring matching: "ok" and "hi" count even when embedded
		// in bigger words, so these short turns read as smalltalk.
		{"ok we're good, bye", true},
		{"this is so annoying!!!", true},
		{"tell me about Prague", false},
	}
	for _, tt := range tests {
		if got := IsSmalltalk(tt.text); got != tt.want {
			t.Errorf("IsSmalltalk(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		text string
		prev Intent
		want Intent
	}{
		{name: "weather hint overrides", text: "pack for the rain", prev: "", want: Weather},
		{name: "smalltalk is support", text: "thanks!", prev: Weather, want: Support},
		{name: "neutral inherits prev", text: "and with kids?", prev: Attractions, want: Attractions},
		{name: "neutral without prev stays neutral", text: "my budget is flexible", prev: "", want: Neutral},
		{name: "new topic replaces prev", text: "what should I pack", prev: Weather, want: Packing},
		{name: "frustration keeps topic", text: "wtf, that was wrong!!!", prev: Packing, want: Packing},
		// Smalltalk matching is substring-based, so "hi" inside "this"
		// routes an otherwise frustrated turn to support.
		{name: "smalltalk substring beats frustration", text: "this is so annoying!!!", prev: Packing, want: Support},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.text, tt.prev); got != tt.want {
				t.Errorf("Resolve(%q, %s) = %s, want %s", tt.text, tt.prev, got, tt.want)
			}
		})
	}
}

func TestPersistable(t *testing.T) {
	persist := []Intent{Destination, Packing, Attractions, Weather}
	for _, in := range persist {
		if !Persistable(in) {
			t.Errorf("Persistable(%s) = false, want true", in)
		}
	}
	for _, in := range []Intent{Support, Meta, End, Neutral} {
		if Persistable(in) {
			t.Errorf("Persistable(%s) = true, want false", in)
		}
	}
}
