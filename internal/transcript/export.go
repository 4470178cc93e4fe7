package transcript

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
)

// ExportMarkdown renders a session's transcript as a markdown document.
func (s *Store) ExportMarkdown(sessionID string) (string, error) {
	turns, err := s.Turns(sessionID)
	if err != nil {
		return "", err
	}
	if len(turns) == 0 {
		return "", fmt.Errorf("no transcript for session %s", sessionID)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Conversation %s\n\n", sessionID)
	for _, t := range turns {
		speaker := "Navan"
		if t.Role == "user" {
			speaker = "You"
		}
		fmt.Fprintf(&b, "**%s** (%s):\n\n%s\n\n", speaker, t.CreatedAt.Format("2006-01-02 15:04"), t.Content)
	}
	return b.String(), nil
}

// ExportHTML renders a session's transcript as an HTML document.
func (s *Store) ExportHTML(sessionID string) (string, error) {
	md, err := s.ExportMarkdown(sessionID)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}
