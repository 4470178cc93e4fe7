// Package dates parses trip dates out of free text.
//
// Free-text turns rarely contain machine-friendly dates, so parsing is
// layered: relative phrases ("next week", "this weekend") are expanded
// into literal ISO tokens first, then every whitespace token is tried
// against a closed set of date layouts. When no concrete date is found,
// callers fall back to ParseMonth for month-granularity slots.
package dates

import (
	"regexp"
	"sort"
	"strings"
	"time"
)

// ISODate is the wire format for all date slots.
const ISODate = "2006-01-02"

// DateRange is a concrete trip window.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ISO returns the range endpoints as ISO date strings.
func (r DateRange) ISO() (string, string) {
	return r.Start.Format(ISODate), r.End.Format(ISODate)
}

const (
	// singleDateWindow is the assumed trip length when only one date is mentioned.
	singleDateWindow = 4
	// maxSpanDays caps the window when two mentioned dates are far apart.
	maxSpanDays = 14
)

var isoTokenRx = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)

// tokenLayouts is the closed set of layouts a single token may match.
// Bare month names and bare numbers are deliberately not dates here;
// month-only utterances are handled by ParseMonth.
var tokenLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
}

// ParseDates parses one or two dates from free text. The now instant
// anchors relative phrases; a zero now means the current UTC time.
//
// Returns nil if no dates are found. A single date becomes the start of
// a 4-day window; two or more dates become an earliest→latest range
// clamped to 14 days.
func ParseDates(text string, now time.Time) *DateRange {
	if now.IsZero() {
		now = time.Now().UTC()
	}
	anchor := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	text = expandRelative(text, anchor)

	var candidates []time.Time

	// ISO tokens are collected before separator normalization splits
	// their hyphens apart.
	for _, tok := range isoTokenRx.FindAllString(text, -1) {
		if dt, err := time.ParseInLocation(ISODate, tok, time.UTC); err == nil {
			candidates = append(candidates, dt)
		}
	}
	text = isoTokenRx.ReplaceAllString(text, " ")

	for _, tok := range tokenize(text) {
		if dt, ok := parseToken(tok); ok {
			candidates = append(candidates, dt)
		}
	}

	if len(candidates) == 0 {
		return nil
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Before(candidates[j]) })
	if len(candidates) == 1 {
		start := candidates[0]
		return &DateRange{Start: start, End: start.AddDate(0, 0, singleDateWindow)}
	}

	start, end := candidates[0], candidates[len(candidates)-1]
	if end.Sub(start) > maxSpanDays*24*time.Hour {
		end = start.AddDate(0, 0, maxSpanDays)
	}
	return &DateRange{Start: start, End: end}
}

var wordToRx = regexp.MustCompile(`\bto\b`)

// tokenize normalizes range separators (arrows, "to", hyphens) to
// spaces and splits on whitespace.
func tokenize(text string) []string {
	text = strings.ReplaceAll(text, "→", " ")
	text = wordToRx.ReplaceAllString(text, " ")
	text = strings.ReplaceAll(text, "-", " ")
	return strings.Fields(text)
}

func parseToken(tok string) (time.Time, bool) {
	tok = strings.Trim(tok, ",.!?;:()")
	if tok == "" {
		return time.Time{}, false
	}
	for _, layout := range tokenLayouts {
		if dt, err := time.ParseInLocation(layout, tok, time.UTC); err == nil {
			return dt, true
		}
	}
	return time.Time{}, false
}

// relativePhrases maps phrases to their concrete windows, longest phrase
// first so "this weekend" never fires the "this week" expansion too.
var relativePhrases = []struct {
	phrase string
	window func(anchor time.Time) (time.Time, time.Time)
}{
	{"next weekend", func(a time.Time) (time.Time, time.Time) {
		fri := fridayOfWeek(a).AddDate(0, 0, 7)
		return fri, fri.AddDate(0, 0, 2)
	}},
	{"this weekend", func(a time.Time) (time.Time, time.Time) {
		fri := fridayOfWeek(a)
		return fri, fri.AddDate(0, 0, 2)
	}},
	{"next week", func(a time.Time) (time.Time, time.Time) {
		start := a.AddDate(0, 0, 7)
		return start, start.AddDate(0, 0, 6)
	}},
	{"this week", func(a time.Time) (time.Time, time.Time) {
		return a, a.AddDate(0, 0, 6)
	}},
	{"this month", func(a time.Time) (time.Time, time.Time) {
		first := time.Date(a.Year(), a.Month(), 1, 0, 0, 0, 0, time.UTC)
		return first, first.AddDate(0, 1, -1)
	}},
	{"tomorrow", func(a time.Time) (time.Time, time.Time) {
		d := a.AddDate(0, 0, 1)
		return d, d
	}},
	{"today", func(a time.Time) (time.Time, time.Time) {
		return a, a
	}},
}

// expandRelative appends literal ISO tokens for each relative phrase in
// the text, consuming the phrase so shorter phrases cannot re-match it.
func expandRelative(text string, anchor time.Time) string {
	low := strings.ToLower(text)
	var extra []string
	for _, rp := range relativePhrases {
		idx := strings.Index(low, rp.phrase)
		if idx < 0 {
			continue
		}
		start, end := rp.window(anchor)
		if start.Equal(end) {
			extra = append(extra, start.Format(ISODate))
		} else {
			extra = append(extra, start.Format(ISODate), end.Format(ISODate))
		}
		low = low[:idx] + " " + low[idx+len(rp.phrase):]
		text = text[:idx] + " " + text[idx+len(rp.phrase):]
	}
	if len(extra) == 0 {
		return text
	}
	return text + " " + strings.Join(extra, " ")
}

// fridayOfWeek returns the Friday of the anchor's Monday-based calendar week.
func fridayOfWeek(a time.Time) time.Time {
	wd := int(a.Weekday())
	if wd == 0 {
		wd = 7 // Sunday closes the week
	}
	return a.AddDate(0, 0, 5-wd)
}

var monthNames = map[string]int{
	"jan": 1, "january": 1,
	"feb": 2, "february": 2,
	"mar": 3, "march": 3,
	"apr": 4, "april": 4,
	"may": 5,
	"jun": 6, "june": 6,
	"jul": 7, "july": 7,
	"aug": 8, "august": 8,
	"sep": 9, "sept": 9, "september": 9,
	"oct": 10, "october": 10,
	"nov": 11, "november": 11,
	"dec": 12, "december": 12,
}

// ParseMonth extracts a month mentioned anywhere in the text.
// Returns (0, false) if no month name appears.
func ParseMonth(text string) (int, bool) {
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		tok = strings.Trim(tok, ",.!?;:()")
		if m, ok := monthNames[tok]; ok {
			return m, true
		}
	}
	return 0, false
}

// Season names a month's season for display. A southern-hemisphere
// latitude (lat < 0) shifts the mapping by two seasons; a nil latitude
// defaults to the northern mapping.
func Season(month int, lat *float64) string {
	seasons := []string{"winter", "spring", "summer", "autumn"}
	var idx int
	switch {
	case month == 12 || month == 1 || month == 2:
		idx = 0
	case month >= 3 && month <= 5:
		idx = 1
	case month >= 6 && month <= 8:
		idx = 2
	default:
		idx = 3
	}
	if lat != nil && *lat < 0 {
		idx = (idx + 2) % 4
	}
	return seasons[idx]
}
