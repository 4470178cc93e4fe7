// Package session holds per-conversation state: message history plus
// the slot memory the extractors write into and the prompt builders
// read from.
package session

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Message is one turn of conversation history.
type Message struct {
	Role    string `json:"role"` // user or assistant
	Content string `json:"content"`
}

// Slots is the structured memory for one conversation. Zero values mean
// "not known yet"; tri-state and coordinate fields use pointers so that
// "unset" is distinguishable from a legitimate zero.
type Slots struct {
	City        string
	Country     string
	StartDate   string // ISO YYYY-MM-DD
	EndDate     string // ISO YYYY-MM-DD
	Month       string // fallback granularity, "1".."12"
	Interests   string // sorted, comma-joined interest tags
	BudgetHint  string // budget, mid, or luxury
	KidFriendly *bool
	Lat, Lon    *float64
	LastIntent  string // carried across ambiguous turns
}

// SetWindow records a concrete trip window. Concrete dates and a bare
// month are mutually exclusive, so the month slot is cleared.
func (s *Slots) SetWindow(start, end string) {
	s.StartDate = start
	s.EndDate = end
	s.Month = ""
}

// SetPlace records a resolved location.
func (s *Slots) SetPlace(city, country string, lat, lon float64) {
	s.City = city
	s.Country = country
	s.Lat, s.Lon = &lat, &lon
}

// HasWindow reports whether a concrete trip window is known.
func (s *Slots) HasWindow() bool {
	return s.StartDate != "" && s.EndDate != ""
}

// HasCoords reports whether coordinates have been resolved.
func (s *Slots) HasCoords() bool {
	return s.Lat != nil && s.Lon != nil
}

// AddInterests merges tags into the accumulated interest set.
// Interests accumulate for the life of the conversation and are never
// cleared; a one-off mention keeps contributing to later turns.
func (s *Slots) AddInterests(tags []string) {
	if len(tags) == 0 {
		return
	}
	set := make(map[string]bool)
	if s.Interests != "" {
		for _, t := range strings.Split(s.Interests, ",") {
			set[t] = true
		}
	}
	for _, t := range tags {
		set[t] = true
	}
	merged := make([]string, 0, len(set))
	for t := range set {
		merged = append(merged, t)
	}
	sort.Strings(merged)
	s.Interests = strings.Join(merged, ",")
}

// Session is the conversation state for one session ID. Turns within a
// session are processed one at a time; callers hold the turn mutex for
// the duration of a turn so no turn observes half-updated slots.
type Session struct {
	ID        string
	History   []Message
	Slots     Slots
	ToolFacts string // cached weather summary, replaced wholesale on each enrichment
	CreatedAt time.Time
	UpdatedAt time.Time

	turnMu sync.Mutex
}

// LockTurn serializes turn processing for this session.
func (s *Session) LockTurn() { s.turnMu.Lock() }

// UnlockTurn releases the turn lock.
func (s *Session) UnlockTurn() { s.turnMu.Unlock() }

// Add appends a message to the conversation history.
func (s *Session) Add(role, content string) {
	s.History = append(s.History, Message{Role: role, Content: content})
	s.UpdatedAt = time.Now().UTC()
}

// Recent returns the last limit messages from the history.
func (s *Session) Recent(limit int) []Message {
	if limit <= 0 || limit >= len(s.History) {
		return s.History
	}
	return s.History[len(s.History)-limit:]
}

// Store manages sessions by ID. Sessions live in memory for the life of
// the process; transcript persistence is handled separately.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Get returns the session for id, creating it on first use.
// An empty id creates a fresh session with a generated UUID.
func (st *Store) Get(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	if id == "" {
		id = uuid.NewString()
	}
	sess, ok := st.sessions[id]
	if !ok {
		now := time.Now().UTC()
		sess = &Session{ID: id, CreatedAt: now, UpdatedAt: now}
		st.sessions[id] = sess
	}
	return sess
}

// Lookup returns the session for id, or nil if it does not exist.
func (st *Store) Lookup(id string) *Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.sessions[id]
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
