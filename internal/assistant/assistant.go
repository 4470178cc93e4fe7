// Package assistant orchestrates one conversation turn: slot
// extraction, intent resolution, optional weather enrichment, prompt
// construction, the generation call, and reply shaping.
//
// Every turn produces a reply. Collaborator failures are degraded to
// honest fallbacks (skipped enrichment, a templated retry message),
// never surfaced as faults.
package assistant

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/navan-labs/navan/internal/dates"
	"github.com/navan-labs/navan/internal/extract"
	"github.com/navan-labs/navan/internal/intent"
	"github.com/navan-labs/navan/internal/llm"
	"github.com/navan-labs/navan/internal/postprocess"
	"github.com/navan-labs/navan/internal/prompts"
	"github.com/navan-labs/navan/internal/session"
	"github.com/navan-labs/navan/internal/transcript"
	"github.com/navan-labs/navan/internal/weather"
)

// retryReply is shown when the generation collaborator fails.
const retryReply = "Sorry, I had trouble putting a reply together just now. Please try again."

// Assistant processes user turns against per-session state.
type Assistant struct {
	logger       *slog.Logger
	gen          llm.Client
	weather      weather.Service
	sessions     *session.Store
	transcripts  *transcript.Store // optional
	historyTurns int
	now          func() time.Time
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithTranscripts enables durable transcript logging.
func WithTranscripts(ts *transcript.Store) Option {
	return func(a *Assistant) { a.transcripts = ts }
}

// WithHistoryTurns sets how many past messages accompany each
// generation request.
func WithHistoryTurns(n int) Option {
	return func(a *Assistant) {
		if n > 0 {
			a.historyTurns = n
		}
	}
}

// WithClock overrides the time source used to anchor relative dates.
func WithClock(now func() time.Time) Option {
	return func(a *Assistant) { a.now = now }
}

// New creates an Assistant.
func New(logger *slog.Logger, gen llm.Client, weatherSvc weather.Service, opts ...Option) *Assistant {
	if logger == nil {
		logger = slog.Default()
	}
	a := &Assistant{
		logger:       logger.With("component", "assistant"),
		gen:          gen,
		weather:      weatherSvc,
		sessions:     session.NewStore(),
		historyTurns: 6,
		now:          func() time.Time { return time.Now().UTC() },
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Sessions exposes the session store for transports.
func (a *Assistant) Sessions() *session.Store {
	return a.sessions
}

// TurnResult is the outcome of one processed turn.
type TurnResult struct {
	SessionID  string
	Reply      string
	Intent     intent.Intent
	Enrichment Enrichment
}

// ProcessTurn handles one user turn against the session's state and
// produces a reply. An empty sessionID starts a fresh session; the
// generated ID comes back in the result.
func (a *Assistant) ProcessTurn(ctx context.Context, sessionID, message string) TurnResult {
	sess := a.sessions.Get(sessionID)
	sess.LockTurn()
	defer sess.UnlockTurn()

	res := TurnResult{SessionID: sess.ID}

	user := strings.TrimSpace(message)
	if user == "" {
		return res
	}

	a.record(sess, "user", user)
	a.updateSlots(ctx, sess, user)

	prev := intent.Intent(sess.Slots.LastIntent)
	eff := intent.Resolve(user, prev)
	if intent.Persistable(eff) {
		sess.Slots.LastIntent = string(eff)
	}
	res.Intent = eff

	// Private lines use the facts cached by earlier turns; this turn's
	// enrichment result feeds the next turn's prompt.
	var private []string
	private = append(private, "Private context: "+prompts.ContextHeader(&sess.Slots))
	switch eff {
	case intent.Weather, intent.Packing, intent.Attractions:
		if sess.ToolFacts != "" {
			private = append(private, "Private data: "+sess.ToolFacts)
		}
	}

	var task string
	switch eff {
	case intent.Packing:
		res.Enrichment = a.enrich(ctx, sess)
		task = prompts.Packing(user)
	case intent.Attractions:
		res.Enrichment = a.enrich(ctx, sess)
		task = prompts.Attractions(user)
	case intent.Destination:
		task = prompts.Destination(user)
	case intent.Meta:
		task = prompts.Meta(&sess.Slots, user)
	case intent.Weather:
		res.Enrichment = a.enrich(ctx, sess)
		res.Reply = a.weatherReply(sess)
		a.record(sess, "assistant", res.Reply)
		return res
	case intent.End:
		task = prompts.EndTask
	default: // support and anything unclassified
		task = prompts.Support(&sess.Slots, user)
	}

	system := prompts.System + "\n" + strings.Join(private, "\n")
	history := toLLMHistory(sess.Recent(a.historyTurns))

	reply, err := a.gen.Chat(ctx, system, task, history)
	if err != nil {
		a.logger.Warn("generation failed", "session", sess.ID, "intent", eff, "error", err)
		reply = retryReply
	} else if eff == intent.Attractions {
		reply = postprocess.LimitToThree(reply, user)
	}

	res.Reply = reply
	a.record(sess, "assistant", reply)
	return res
}

// updateSlots folds the turn's extractions into the session slots.
func (a *Assistant) updateSlots(ctx context.Context, sess *session.Session, text string) {
	slots := &sess.Slots

	if dr := dates.ParseDates(text, a.now()); dr != nil {
		slots.SetWindow(dr.ISO())
	} else if m, ok := dates.ParseMonth(text); ok {
		slots.Month = strconv.Itoa(m)
	}

	if name, source, ok := extract.City(text); ok {
		geo, err := a.weather.Geocode(ctx, name)
		if err != nil {
			a.logger.Debug("geocode failed during extraction", "city", name, "error", err)
			geo = nil
		}
		if geo != nil {
			// A weak whole-utterance guess never overwrites a known city.
			if source == extract.ConfidenceFallback && slots.City != "" {
				a.logger.Debug("fallback city ignored", "candidate", geo.Name, "kept", slots.City)
			} else {
				slots.SetPlace(geo.Name, geo.Country, geo.Lat, geo.Lon)
			}
		}
	}

	p := extract.Prefs(text)
	if p.Budget != "" {
		slots.BudgetHint = p.Budget
	}
	if p.KidFriendly != nil {
		slots.KidFriendly = p.KidFriendly
	}
	slots.AddInterests(p.Interests)
}

func (a *Assistant) record(sess *session.Session, role, content string) {
	sess.Add(role, content)
	if a.transcripts == nil {
		return
	}
	if err := a.transcripts.Append(sess.ID, role, content); err != nil {
		a.logger.Warn("transcript append failed", "session", sess.ID, "error", err)
	}
}

func toLLMHistory(msgs []session.Message) []llm.Message {
	out := make([]llm.Message, len(msgs))
	for i, m := range msgs {
		out[i] = llm.Message{Role: m.Role, Content: m.Content}
	}
	return out
}
