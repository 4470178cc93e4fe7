package extract

import "strings"

// Preferences are the keyword-derived preference hints for one turn.
// Zero values mean the turn said nothing about that bucket.
type Preferences struct {
	Budget      string // budget, mid, or luxury
	KidFriendly *bool
	Interests   []string // matched interest tags, unsorted
}

// budgetGroups are checked in priority order; the first group with a hit
// wins, with no attempt to detect conflicting mentions in one turn.
var budgetGroups = []struct {
	tier string
	kws  []string
}{
	{"budget", []string{"budget", "cheap", "affordable", "low cost", "low-cost", "inexpensive"}},
	{"mid", []string{"mid-range", "midrange", "moderate"}},
	{"luxury", []string{"luxury", "upscale", "5 star", "5-star"}},
}

var kidYes = []string{"kid", "kids", "child", "children", "stroller", "family"}
var kidNo = []string{"adults only", "adult-only", "no kids"}

// interestBuckets map an interest tag to its trigger keywords.
var interestBuckets = []struct {
	tag string
	kws []string
}{
	{"beach", []string{"beach", "coast", "island", "surf"}},
	{"museum", []string{"museum", "gallery", "exhibit"}},
	{"food", []string{"food", "restaurant", "eat", "cuisine", "street food"}},
	{"hiking", []string{"hike", "hiking", "trail", "trek", "mountain"}},
	{"nightlife", []string{"bar", "club", "nightlife", "party"}},
	{"history", []string{"history", "historic", "castle", "ruins"}},
	{"shopping", []string{"shopping", "market", "mall", "boutique"}},
}

// Prefs scans the text for budget, kid-friendliness, and interest hints.
func Prefs(text string) Preferences {
	low := strings.ToLower(text)
	var p Preferences

	for _, g := range budgetGroups {
		if containsAny(low, g.kws) {
			p.Budget = g.tier
			break
		}
	}

	if containsAny(low, kidYes) {
		yes := true
		p.KidFriendly = &yes
	}
	if containsAny(low, kidNo) {
		no := false
		p.KidFriendly = &no
	}

	for _, b := range interestBuckets {
		if containsAny(low, b.kws) {
			p.Interests = append(p.Interests, b.tag)
		}
	}
	return p
}

func containsAny(low string, kws []string) bool {
	for _, k := range kws {
		if strings.Contains(low, k) {
			return true
		}
	}
	return false
}
