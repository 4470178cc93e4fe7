// Package postprocess normalizes generated replies before they are
// shown to the user. The attractions intent promises exactly three
// ideas, so its replies are reshaped into a fixed three-bullet list.
package postprocess

import (
	"regexp"
	"strings"
)

const placeholderIdea = "(no ideas available)"

var foodKeywords = []string{
	"food", "restaurant", "cuisine", "eat", "trattoria", "pizzeria", "gelato", "market", "street food",
}

var metaPhrases = []string{"here are", "based on", "summary", "weather", "packing"}

var sentenceSplitRx = regexp.MustCompile(`([.!?])\s+`)

// LimitToThree normalizes a reply to exactly three attraction ideas.
//
// Bullet-like lines are preferred; otherwise ideas are harvested from
// sentences, discarding questions and meta chatter. Food ideas are
// filtered out unless the user's own text asked for food. The output is
// always exactly three "- " lines, padding with the last idea (or a
// placeholder) when fewer survive.
func LimitToThree(text, userText string) string {
	var ideas []string
	var nonBullet []string

	for _, line := range strings.Split(text, "\n") {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}
		if content, ok := bulletContent(stripped); ok {
			ideas = append(ideas, content)
		} else {
			nonBullet = append(nonBullet, stripped)
		}
	}

	ut := strings.ToLower(userText)
	userAskedFood := strings.Contains(ut, "food") || strings.Contains(ut, "restaurant")

	if len(ideas) >= 3 {
		chosen := ideas
		if !userAskedFood {
			if filtered := withoutFood(ideas); len(filtered) >= 3 {
				chosen = filtered
			}
		}
		return render(chosen[:3])
	}

	// Not enough bullets: harvest sentences from the prose parts.
	if extra := strings.TrimSpace(strings.Join(nonBullet, " ")); extra != "" {
		for _, s := range splitSentences(extra) {
			if len(ideas) >= 3 {
				break
			}
			if goodSentence(s) && !contains(ideas, s) {
				ideas = append(ideas, s)
			}
		}
	}

	if len(ideas) == 0 {
		return render([]string{placeholderIdea, placeholderIdea, placeholderIdea})
	}

	chosen := ideas
	if !userAskedFood {
		if filtered := withoutFood(ideas); len(filtered) > 0 {
			chosen = filtered
		}
	}
	for len(chosen) < 3 {
		chosen = append(chosen, chosen[len(chosen)-1])
	}
	return render(chosen[:3])
}

// bulletContent reports whether a trimmed line is bullet-like and
// returns the idea text with its marker stripped.
func bulletContent(stripped string) (string, bool) {
	isBullet := false
	switch {
	case strings.HasPrefix(stripped, "-"), strings.HasPrefix(stripped, "*"),
		strings.HasPrefix(stripped, "•"), strings.HasPrefix(stripped, "–"),
		strings.HasPrefix(stripped, "—"):
		isBullet = true
	default:
		r := []rune(stripped)
		if len(r) > 1 && r[0] >= '0' && r[0] <= '9' && (r[1] == ')' || r[1] == '.') {
			isBullet = true
		}
	}
	if !isBullet {
		return "", false
	}

	content := strings.TrimLeft(stripped, "-*•–— ")
	// A numbered item may survive inside a dash bullet ("- 1. Colosseum").
	r := []rune(content)
	if len(r) > 1 && r[0] >= '0' && r[0] <= '9' && (r[1] == ')' || r[1] == '.') {
		content = strings.TrimSpace(string(r[2:]))
	}
	return strings.TrimSpace(content), true
}

func withoutFood(ideas []string) []string {
	var out []string
	for _, s := range ideas {
		if !mentionsFood(s) {
			out = append(out, s)
		}
	}
	return out
}

func mentionsFood(text string) bool {
	low := strings.ToLower(text)
	for _, k := range foodKeywords {
		if strings.Contains(low, k) {
			return true
		}
	}
	return false
}

// splitSentences splits prose on sentence-ending punctuation followed
// by whitespace, keeping the punctuation with its sentence.
func splitSentences(text string) []string {
	marked := sentenceSplitRx.ReplaceAllString(text, "$1\x00")
	var out []string
	for _, s := range strings.Split(marked, "\x00") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func goodSentence(s string) bool {
	if strings.Contains(s, "?") {
		return false
	}
	low := strings.ToLower(s)
	for _, p := range metaPhrases {
		if strings.Contains(low, p) {
			return false
		}
	}
	return true
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

func render(ideas []string) string {
	lines := make([]string, len(ideas))
	for i, s := range ideas {
		lines[i] = "- " + s
	}
	return strings.TrimRight(strings.Join(lines, "\n"), " \n")
}
