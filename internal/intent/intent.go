// Package intent classifies user turns into a closed set of travel
// intents via a strict ordered rule cascade: the first matching rule
// wins and later rules are never evaluated. Ordering is load-bearing —
// the weather check runs before the generic verb rules so "what's the
// weather, I want to see it rain" is not misrouted through "see".
package intent

import (
	"regexp"
	"strings"
)

// Intent is the classified purpose of a user turn.
type Intent string

const (
	Destination Intent = "destination"
	Packing     Intent = "packing"
	Attractions Intent = "attractions"
	Weather     Intent = "weather"
	Meta        Intent = "meta"
	End         Intent = "end"
	Support     Intent = "support"
	Neutral     Intent = "neutral"
)

var packingHints = []string{
	"pack", "packing", "suitcase", "what to bring", "bring", "wear", "clothes", "clothing",
}

var attractionsHints = []string{
	"see", "do", "attractions", "museum", "park", "things to do", "things to see",
	"place", "places", "spots", "sights", "landmarks", "recommendations", "recommendation",
	"reccomendations", "visit",
}

// weatherHints includes common misspellings seen in real transcripts.
var weatherHints = []string{
	"weather", "forecast", "temperature", "temp", "rain", "precip", "precipitation",
	"snow", "hot", "cold", "humid", "humidity", "wind", "windy", "sunny", "cloudy",
	"climate", "conditions", "wetaher", "wheather", "wether",
}

var metaHints = []string{
	"remember", "do you remember", "which city", "what city", "which dates", "what dates",
	"what am i traveling", "where am i going", "what am i going", "recap", "summary", "context",
}

var destinationHints = []string{
	"destination", "recommend", "suggest", "ideas", "where to go", "trip ideas", "vacation",
	"destinations", "recommendations", "recommendation",
}

var smalltalkHints = []string{
	"hi", "hello", "hey", "yo", "thanks", "thank you", "ok", "okay", "my name is", "hii", "heyy",
	"nice", "cool", "great", "awesome", "amazing", "niccce", "niccceeee",
}

var endHints = []string{
	"nothing", "no thanks", "no thank you", "not now", "later", "that's all", "thats all",
	"that's it", "thats it", "bye", "goodbye", "gtg", "i'm good", "im good", "we're good",
	"were good", "all good", "done",
}

var frustrationHints = []string{
	"wtf", "dumb", "stupid", "you don't", "not understand", "annoying", "!!!", "????",
}

var (
	strongAttractionsRx = regexp.MustCompile(`\b(top\s*(3|three)|3\s*(places|attractions)|where\s+to\s+visit|what\s+to\s+see)\b`)
	metaCityDatesRx     = regexp.MustCompile(`\b(which|what)\s+(city|dates?)\b`)
	travelToRx          = regexp.MustCompile(`\b(?:travel(?:ling|ing)?|go(?:ing)?|head(?:ing)?)\s+to\s+[a-z]`)
	visitRx             = regexp.MustCompile(`\bvisit(?:ing)?\s+[a-z]`)
	wordRx              = regexp.MustCompile(`\w`)
)

// boundaryRx caches compiled word-boundary patterns per single-token hint.
var boundaryRx = map[string]*regexp.Regexp{}

func init() {
	for _, hints := range [][]string{
		packingHints, attractionsHints, weatherHints, metaHints,
		destinationHints, smalltalkHints, endHints, frustrationHints,
	} {
		for _, h := range hints {
			if strings.Contains(h, " ") || !wordRx.MatchString(h) {
				continue
			}
			if _, ok := boundaryRx[h]; !ok {
				boundaryRx[h] = regexp.MustCompile(`\b` + regexp.QuoteMeta(h) + `\b`)
			}
		}
	}
}

// containsHint reports whether any hint appears in the lowercased text.
// Single-token hints must match at word boundaries (so "do" never
// matches inside "door"); multi-word phrases and pure-punctuation hints
// ("!!!") match as plain substrings.
func containsHint(low string, hints []string) bool {
	for _, h := range hints {
		if rx, ok := boundaryRx[h]; ok {
			if rx.MatchString(low) {
				return true
			}
			continue
		}
		if strings.Contains(low, h) {
			return true
		}
	}
	return false
}

// rule is one predicate→label pair in the cascade.
type rule struct {
	name   string
	match  func(low string, words int) bool
	intent Intent
}

// cascade is evaluated strictly in order; the first match wins.
var cascade = []rule{
	{"strong_attractions", func(low string, _ int) bool {
		return strongAttractionsRx.MatchString(low)
	}, Attractions},
	{"weather", func(low string, _ int) bool {
		return containsHint(low, weatherHints)
	}, Weather},
	{"meta", func(low string, _ int) bool {
		return containsHint(low, metaHints) || metaCityDatesRx.MatchString(low)
	}, Meta},
	{"end", func(low string, _ int) bool {
		return containsHint(low, endHints)
	}, End},
	// Frustration does not force a new topic; the resolver keeps the
	// prior intent when this yields neutral.
	{"frustration", func(low string, _ int) bool {
		return containsHint(low, frustrationHints)
	}, Neutral},
	{"smalltalk", func(low string, words int) bool {
		return containsHint(low, smalltalkHints) && words <= 6
	}, Support},
	{"travel_motion", func(low string, _ int) bool {
		return travelToRx.MatchString(low) || visitRx.MatchString(low)
	}, Destination},
	{"packing", func(low string, _ int) bool {
		return containsHint(low, packingHints)
	}, Packing},
	{"attractions", func(low string, _ int) bool {
		return containsHint(low, attractionsHints)
	}, Attractions},
	{"destination", func(low string, _ int) bool {
		return containsHint(low, destinationHints)
	}, Destination},
}

// Detect classifies text into an intent via the ordered cascade,
// returning Neutral when no rule matches.
func Detect(text string) Intent {
	low := strings.ToLower(text)
	words := len(strings.Fields(low))
	for _, r := range cascade {
		if r.match(low, words) {
			return r.intent
		}
	}
	return Neutral
}

// HasWeatherHint reports whether the text mentions weather concepts.
func HasWeatherHint(text string) bool {
	return containsHint(strings.ToLower(text), weatherHints)
}

// IsSmalltalk reports whether the text is a brief greeting or
// acknowledgement without any travel content. Vocabulary-exclusive:
// a turn that also mentions weather, packing, attractions, destination,
// or meta vocabulary is never smalltalk.
func IsSmalltalk(text string) bool {
	low := strings.ToLower(strings.TrimSpace(text))
	words := len(strings.Fields(low))
	for _, hints := range [][]string{weatherHints, packingHints, attractionsHints, destinationHints, metaHints} {
		for _, h := range hints {
			if strings.Contains(low, h) {
				return false
			}
		}
	}
	for _, h := range smalltalkHints {
		if strings.Contains(low, h) {
			return words <= 6
		}
	}
	return false
}

// Resolve turns a raw classification into the effective intent for a
// turn: explicit weather hints override any other rule, smalltalk forces
// support, and a neutral result inherits the previous turn's intent.
func Resolve(text string, prev Intent) Intent {
	detected := Detect(text)
	if HasWeatherHint(text) {
		detected = Weather
	}
	if IsSmalltalk(text) {
		return Support
	}
	if detected == Neutral && prev != "" {
		return prev
	}
	return detected
}

// Persistable reports whether in may be carried over to later ambiguous
// turns. Control intents (support, meta, end, neutral) never persist.
func Persistable(in Intent) bool {
	switch in {
	case Destination, Packing, Attractions, Weather:
		return true
	}
	return false
}
