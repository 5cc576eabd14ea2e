package campaign

import (
	"sync"

	"github.com/SimplyAgenticAI/Simply-Agentic-Ai-Dashboard/models"
)

// Session holds the state both automation controllers share: the
// ordered prospect sequence, the cursor, the prompt document, and the
// pending draft awaiting approval or dispatch. It lives for the
// process only; nothing here survives a restart.
//
// At most one cycle runs at a time, so the mutex only fences the gaps
// between steps (HTTP handlers poking at the cursor while an
// automation loop is between network calls), never a call in flight.
type Session struct {
	mu        sync.Mutex
	prospects []models.Prospect
	cursor    int
	doc       string
	pending   models.Draft
}

func NewSession() *Session {
	return &Session{cursor: -1}
}

// SetProspects replaces the sequence wholesale. The cursor is kept if
// it still points inside the new list, otherwise cleared.
func (s *Session) SetProspects(items []models.Prospect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prospects = items
	if s.cursor >= len(items) {
		s.cursor = -1
	}
}

func (s *Session) Prospects() []models.Prospect {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Prospect, len(s.prospects))
	copy(out, s.prospects)
	return out
}

func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prospects)
}

func (s *Session) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// Select moves the cursor and swaps the document's recipient header to
// the selected prospect. It never touches the campaign body and never
// triggers generation.
func (s *Session) Select(index int) (models.Prospect, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.prospects) {
		return models.Prospect{}, models.NewValidationError("prospect index %d out of range", index)
	}
	s.cursor = index
	p := s.prospects[index]
	s.doc = MergeRecipient(s.doc, p.Email, p.Name)
	return p, nil
}

// Current returns the prospect under the cursor.
func (s *Session) Current() (models.Prospect, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor < 0 || s.cursor >= len(s.prospects) {
		return models.Prospect{}, false
	}
	return s.prospects[s.cursor], true
}

// AtEnd reports whether the cursor sits on the last prospect.
func (s *Session) AtEnd() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prospects) > 0 && s.cursor == len(s.prospects)-1
}

func (s *Session) Document() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

func (s *Session) SetDocument(doc string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc
}

// SetCampaignBody replaces only the campaign portion of the document,
// e.g. when a template is loaded.
func (s *Session) SetCampaignBody(body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = MergeCampaignBody(s.doc, body)
}

func (s *Session) Pending() models.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

func (s *Session) SetPending(d models.Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = d
}

func (s *Session) ClearPending() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = models.Draft{}
}
