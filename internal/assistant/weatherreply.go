package assistant

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/navan-labs/navan/internal/session"
)

// factsRx pulls the numeric summary out of the cached weather facts.
var factsRx = regexp.MustCompile(`highs\s+(-?\d+)°C,\s*lows\s+(-?\d+)°C,\s*rain\s+(\d+)%`)

// weatherReply synthesizes the weather answer directly from cached
// facts. Weather turns never reach the generation model: numbers must
// be repeated exactly, so no paraphrasing layer is allowed near them.
func (a *Assistant) weatherReply(sess *session.Session) string {
	slots := &sess.Slots

	city := slots.City
	if city == "" {
		city = "your destination"
	}
	when := "your dates"
	switch {
	case slots.HasWindow():
		when = slots.StartDate + "→" + slots.EndDate
	case slots.Month != "":
		when = "month " + slots.Month
	}

	facts := sess.ToolFacts
	if facts == "" {
		return fmt.Sprintf("I don't have live weather details for %s (%s) yet. Please confirm the city and your travel dates.", city, when)
	}

	m := factsRx.FindStringSubmatch(facts)
	if m == nil {
		// Facts exist but the summary is in the unavailable form; pass
		// it through without the internal prefix.
		return strings.TrimSpace(strings.TrimPrefix(facts, "Tool facts:"))
	}

	high, _ := strconv.Atoi(m[1])
	low, _ := strconv.Atoi(m[2])
	rain, _ := strconv.Atoi(m[3])

	var tips []string
	if high >= 30 {
		tips = append(tips, "light, breathable clothing")
	}
	if low <= 12 {
		tips = append(tips, "a light jacket for evenings")
	}
	if rain >= 40 {
		tips = append(tips, "a compact rain jacket or umbrella")
	}
	if len(tips) > 2 {
		tips = tips[:2]
	}
	advice := "layered clothing"
	if len(tips) > 0 {
		advice = strings.Join(tips, "; ")
	}

	return fmt.Sprintf("Based on live data for %s (%s): highs ~%d°C, lows ~%d°C, rain ~%d%%. Pack %s.", city, when, high, low, rain, advice)
}
