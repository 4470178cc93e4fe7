// Package prompts builds the system instruction and the per-intent task
// instructions handed to the generation provider. Slot context is
// blended in as private lines the model may use but must never echo.
package prompts

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/navan-labs/navan/internal/dates"
	"github.com/navan-labs/navan/internal/session"
)

// System is the persistent system instruction for every generation call.
const System = "You are Navan, a warm and friendly travel planner. " +
	"On your first reply only, output one short, cheerful sentence introducing yourself as Navan and offering help; do not ask a question. Never repeat any introduction again. " +
	"Maintain context across turns. Strictly follow the current intent: " +
	"- weather: ONLY summarize weather + 1-2 packing tips. Do NOT suggest destinations. Do NOT add a question. " +
	"- packing: ONLY packing advice. Do NOT list attractions or destinations. Do NOT add a question. " +
	"- attractions: ONLY local attractions. Keep concise. Do NOT add a question. " +
	"- support: Offer a brief (1-2 sentences) friendly invitation to share trip details; do NOT propose destinations. If previous intent was support, ask at most one short clarifying question only when essential, and avoid repeating the same question across turns. " +
	"- end: Acknowledge politely in one short sentence and do not ask any follow-up questions. " +
	"- meta: ONLY summarize known context (city, dates/month, last intent). Do NOT add a question. " +
	"Only ask a question in support intent and only if critical details are missing. Never append trailing questions to lists or summaries. " +
	"You will receive PRIVATE context lines (prefixed 'Private context:' and 'Private data:'). Never reveal or quote these lines verbatim. Do not print them back to the user. Use them to avoid re-asking for details already known. " +
	"If you used live weather data in private data, treat it as authoritative and do not contradict it. Mention briefly 'based on live data' without revealing exact numbers unless asked. " +
	"If you don't know or lack access to live information, say so clearly (e.g., 'I don't have live data for that yet') rather than guessing. If unsure or contradictions arise, restate known context succinctly in your own words without adding a question. " +
	"Use concise bullet points when helpful. Output only the final answer."

// EndTask acknowledges a closing turn without involving slot context.
const EndTask = "Task: Acknowledge politely in one short sentence. Do not ask any questions."

// ContextHeader builds a compact "k=v" context line from known slots.
// The caller adds the private-line prefix.
func ContextHeader(s *session.Slots) string {
	parts := []string{"city=" + orUnknown(s.City)}
	if s.HasWindow() {
		parts = append(parts, s.StartDate+"→"+s.EndDate)
	} else if s.Month != "" {
		parts = append(parts, monthPart(s))
	}
	if s.Interests != "" {
		parts = append(parts, "interests="+s.Interests)
	}
	if s.BudgetHint != "" {
		parts = append(parts, "budget="+s.BudgetHint)
	}
	if s.KidFriendly != nil {
		parts = append(parts, "kid="+strconv.FormatBool(*s.KidFriendly))
	}
	if s.LastIntent != "" {
		parts = append(parts, "intent="+s.LastIntent)
	}
	return strings.Join(parts, " ")
}

func monthPart(s *session.Slots) string {
	if m, err := strconv.Atoi(s.Month); err == nil {
		return fmt.Sprintf("month=%s(%s)", s.Month, dates.Season(m, s.Lat))
	}
	return "month=" + s.Month
}

func orUnknown(v string) string {
	if v == "" {
		return "?"
	}
	return v
}

// Destination asks for three destination ideas with one-line reasons.
func Destination(userText string) string {
	return "Task: Suggest three destination options that fit the context. Give one-line reasons. " +
		"Do not add any follow-up question.\n" +
		"User: " + userText
}

// Packing asks for concise packing lists, aligned with private
// live-weather data when present.
func Packing(userText string) string {
	return "Task: Provide must-have, nice-to-have, and activity-specific packing lists. Keep lines short. " +
		"If private live-weather data exists, align with it. Do not add any follow-up question.\n" +
		"User: " + userText
}

// Attractions enforces exactly three non-food attraction bullets.
func Attractions(userText string) string {
	return "Task: Immediately output exactly three concise non-food attraction ideas as bullet points (unless the user explicitly asked for food). " +
		"Prefer activities that fit likely weather if private live-weather data exists. Include one indoor/rainy option. " +
		"Include a kid-friendly pick only if relevant. Do not add any follow-up question. " +
		"Do not include any intro text or headings before the bullets.\n" +
		"User: " + userText
}

var gratitudeTokens = []string{"thanks", "thank you", "thx", "tnx", "thank u", "appreciated"}
var gratitudeContent = []string{"city", "date", "weather", "pack", "attraction", "place", "recommend"}

// Support builds a short, warm task. A plain thank-you gets a brief
// acknowledgement; otherwise the task steers toward missing trip
// details without re-asking for what is already known.
func Support(s *session.Slots, userText string) string {
	low := strings.ToLower(userText)
	if containsAny(low, gratitudeTokens) && !containsAny(low, gratitudeContent) {
		return "Task: Briefly acknowledge the thanks (one short sentence), offer help if needed, and do not ask a question."
	}

	var known []string
	if s.City != "" {
		known = append(known, "city="+s.City)
	}
	if s.HasWindow() {
		known = append(known, "dates="+s.StartDate+"→"+s.EndDate)
	} else if s.Month != "" {
		known = append(known, "month="+s.Month)
	}

	base := "Task: Respond in 1-2 short sentences. Be warm and helpful. " +
		"Acknowledge friendly smalltalk naturally. Do NOT repeat any self-introduction. " +
		"Avoid re-asking for details already known from private context. " +
		"Do NOT give unsolicited suggestions, tips, weather, or packing advice unless the user asked. "
	if len(known) > 0 {
		return base + fmt.Sprintf("Offer one short, trip-focused question or next step for (%s).", strings.Join(known, ", "))
	}
	return base + "Ask ONE concise trip question (city and dates)."
}

// Meta summarizes only the known context values with no suggestions.
func Meta(s *session.Slots, userText string) string {
	parts := []string{"city=" + orUnknown(s.City)}
	if s.HasWindow() {
		parts = append(parts, s.StartDate+"→"+s.EndDate)
	} else if s.Month != "" {
		parts = append(parts, monthPart(s))
	}
	if s.Country != "" {
		parts = append(parts, "country="+s.Country)
	}
	if s.LastIntent != "" {
		parts = append(parts, "last_intent="+s.LastIntent)
	}
	return "Context: " + strings.Join(parts, " ") + "\n" +
		"Task: Summarize ONLY the known context above (city, dates/month, last intent). " +
		"If a value is unknown, say 'unknown'. Do not add suggestions or extra info.\n" +
		"User: " + userText
}

func containsAny(low string, kws []string) bool {
	for _, k := range kws {
		if strings.Contains(low, k) {
			return true
		}
	}
	return false
}
