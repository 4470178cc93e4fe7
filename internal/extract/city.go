// Package extract pulls structured slot values out of free-text turns:
// a likely destination city and budget/family/interest preferences.
//
// City extraction is a fixed priority list of independent strategies.
// Syntactic cues (prepositions, motion verbs, known aliases) are trusted
// enough to overwrite an existing city slot; the short-utterance fallback
// is not, and callers must respect the confidence tag.
package extract

import (
	"regexp"
	"strings"
)

// Confidence tags how strongly a city candidate was signalled.
type Confidence string

const (
	// ConfidencePrep marks a candidate backed by a preposition, verb, or
	// alias cue. Trusted enough to overwrite an existing city slot.
	ConfidencePrep Confidence = "prep"

	// ConfidenceFallback marks a whole-utterance guess on a terse input.
	// Must never overwrite an existing city slot.
	ConfidenceFallback Confidence = "fallback"
)

// stopAfter terminates candidate collection: connectives, question
// words, and travel vocabulary that never belongs in a place name.
var stopAfter = map[string]bool{
	"for": true, "next": true, "this": true, "week": true, "month": true,
	"today": true, "tomorrow": true, "on": true, "from": true, "to": true,
	"in": true, "at": true, "with": true, "and": true, "or": true, "the": true,
	"what": true, "whats": true, "what’s": true, "is": true, "are": true,
	"was": true, "were": true, "how": true, "where": true, "which": true,
	"who": true, "whom": true, "whose": true, "do": true, "does": true,
	"did": true, "there": true, "here": true, "please": true, "pls": true,
	"about": true, "of": true, "weather": true, "forecast": true,
	"city": true, "date": true, "dates": true,
}

// bannedFallback are smalltalk words that look like city names ("Nice").
var bannedFallback = map[string]bool{
	"nice": true, "cool": true, "great": true, "awesome": true, "amazing": true,
}

// bannedActivity are activity nouns that must not become destinations.
var bannedActivity = map[string]bool{
	"hiking": true, "museum": true, "museums": true, "packing": true,
	"weather": true, "ideas": true, "attractions": true, "places": true,
	"recommendations": true, "recommendation": true, "visit": true,
	"visiting": true, "top": true,
}

var monthTokens = map[string]bool{
	"jan": true, "january": true, "feb": true, "february": true,
	"mar": true, "march": true, "apr": true, "april": true, "may": true,
	"jun": true, "june": true, "jul": true, "july": true,
	"aug": true, "august": true, "sep": true, "sept": true, "september": true,
	"oct": true, "october": true, "nov": true, "november": true,
	"dec": true, "december": true,
}

// leadingSkip are verbs and filler that may precede the actual name
// inside a captured phrase ("visiting beautiful Rome").
var leadingSkip = map[string]bool{
	"visit": true, "visiting": true, "top": true, "places": true,
	"travel": true, "travelling": true, "traveling": true,
	"go": true, "going": true, "head": true, "heading": true, "want": true,
}

var aliases = map[string]string{
	"nyc":              "New York",
	"new york city":    "New York",
	"la":               "Los Angeles",
	"sf":               "San Francisco",
	"sfo":              "San Francisco",
	"saint petersburg": "St Petersburg",
}

var aliasPatterns = []struct {
	rx   *regexp.Regexp
	city string
}{
	{regexp.MustCompile(`(?i)\bnyc\b`), "New York"},
	{regexp.MustCompile(`(?i)\bnew\s+york\s+city\b`), "New York"},
	{regexp.MustCompile(`(?i)\bnew\s+york\b`), "New York"},
	{regexp.MustCompile(`(?i)\bla\b`), "Los Angeles"},
	{regexp.MustCompile(`(?i)\blos\s+angeles\b`), "Los Angeles"},
	{regexp.MustCompile(`(?i)\bsf\b`), "San Francisco"},
	{regexp.MustCompile(`(?i)\bsfo\b`), "San Francisco"},
	{regexp.MustCompile(`(?i)\bsan\s+francisco\b`), "San Francisco"},
	{regexp.MustCompile(`(?i)\bisrael\b`), "Israel"},
}

var (
	leadingCityRx = regexp.MustCompile(`(?i)^\s*([A-Za-z][A-Za-z\-\s]{2,}?)\s+(?:in|at|near|around)\b`)
	prepositionRx = regexp.MustCompile(`(?i)\b(?:in|at|near|around|going to)\s+([A-Za-z][A-Za-z\-\s]{2,})`)
	motionVerbRx  = regexp.MustCompile(`(?i)\b(?:visiting|visit|to|go to|going to|heading to|travelling to|traveling to|want(?:\s+to)?)\s+([A-Za-z][A-Za-z\-\s]{2,})`)
	wordChunkRx   = regexp.MustCompile(`[A-Za-z0-9\-]+`)
)

// City extracts a likely city (or country alias) from free text.
// Strategies run in a fixed priority order; the first hit wins.
// Returns ok=false when nothing plausible is found.
func City(text string) (name string, source Confidence, ok bool) {
	for _, strat := range []func(string) (string, bool){
		leadingCity,
		afterPreposition,
		afterMotionVerb,
		aliasAnywhere,
	} {
		if cand, hit := strat(text); hit {
			return cand, ConfidencePrep, true
		}
	}
	if cand, hit := shortFallback(text); hit {
		return cand, ConfidenceFallback, true
	}
	return "", "", false
}

// leadingCity matches text that opens with a place name immediately
// followed by a location preposition ("Rome in June...").
func leadingCity(text string) (string, bool) {
	m := leadingCityRx.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return pickAfter(m[1])
}

// afterPreposition matches explicit location prepositions.
func afterPreposition(text string) (string, bool) {
	m := prepositionRx.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return pickAfter(m[1])
}

// afterMotionVerb matches verbs of motion ("heading to Lisbon").
func afterMotionVerb(text string) (string, bool) {
	m := motionVerbRx.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return pickAfter(m[1])
}

// aliasAnywhere matches a known alias as a whole word anywhere in the text.
func aliasAnywhere(text string) (string, bool) {
	for _, p := range aliasPatterns {
		if p.rx.MatchString(text) {
			return p.city, true
		}
	}
	return "", false
}

// shortFallback treats a terse 1-3 word utterance as a raw candidate,
// rejecting smalltalk words and activity nouns.
func shortFallback(text string) (string, bool) {
	raw := strings.TrimSpace(text)
	words := len(strings.Fields(raw))
	if words < 1 || words > 3 {
		return "", false
	}
	cand, ok := pickAfter(raw)
	if !ok {
		return "", false
	}
	low := strings.ToLower(cand)
	if bannedFallback[low] || bannedActivity[low] {
		return "", false
	}
	return cand, true
}

// pickAfter refines a captured phrase into a city candidate: skip
// leading filler, stop at the first stop-word, month name, or
// digit-bearing token, cap at 3 tokens, and reject pure activity nouns.
func pickAfter(raw string) (string, bool) {
	tokens := wordChunkRx.FindAllString(strings.TrimSpace(raw), -1)

	var picked []string
	started := false
	for _, t := range tokens {
		tl := strings.ToLower(t)
		if !started && (leadingSkip[tl] || stopAfter[tl]) {
			continue
		}
		if started && (stopAfter[tl] || monthTokens[tl]) {
			break
		}
		if strings.ContainsAny(t, "0123456789") {
			if !started {
				continue
			}
			break
		}
		if monthTokens[tl] {
			if !started {
				continue
			}
			break
		}
		if !started && bannedActivity[tl] {
			continue
		}
		picked = append(picked, t)
		started = true
		if len(picked) >= 3 {
			break
		}
	}

	if len(picked) == 0 {
		return "", false
	}
	candidate := normalizeAlias(strings.Join(picked, " "))
	if bannedActivity[strings.ToLower(candidate)] {
		return "", false
	}
	return candidate, true
}

// normalizeAlias maps informal names to canonical forms ("nyc" → "New York").
func normalizeAlias(name string) string {
	if canonical, ok := aliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return canonical
	}
	return name
}
