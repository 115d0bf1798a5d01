package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"carpet-estimator/internal/estimator/capture"
	"carpet-estimator/internal/estimator/engine"
	"carpet-estimator/internal/estimator/metrics"
	"carpet-estimator/internal/estimator/models"
)

// ============================================================
// Session
// ============================================================

// Session is one estimating workspace: the live room set with its undo
// history, the manual capture in progress and the customer details.
type Session struct {
	ID      string
	Created time.Time

	mu        sync.Mutex
	workspace *engine.Workspace
	capture   *capture.Capture
	customer  models.Customer
}

// State is the data a session operation works on. It is only valid inside
// Session.Do.
type State struct {
	Workspace *engine.Workspace
	Capture   *capture.Capture
	Customer  *models.Customer
}

// CaptureView is the serializable state of the manual capture.
type CaptureView struct {
	State  capture.State  `json:"state"`
	Points []models.Point `json:"points"`
	Draft  *models.Room   `json:"draft,omitempty"`
}

// View is a consistent snapshot of a session.
type View struct {
	ID        string          `json:"id"`
	Created   time.Time       `json:"created"`
	Customer  models.Customer `json:"customer"`
	RoomSet   models.RoomSet  `json:"roomSet"`
	Capture   CaptureView     `json:"capture"`
	UndoDepth int             `json:"undoDepth"`
}

// Do runs fn with the session locked. Operations on one session are
// serialized; different sessions run independently.
func (s *Session) Do(fn func(st State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(State{
		Workspace: s.workspace,
		Capture:   s.capture,
		Customer:  &s.customer,
	})
}

// View returns a snapshot of the session.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.viewLocked()
}

func (s *Session) viewLocked() View {
	cv := CaptureView{
		State:  s.capture.State(),
		Points: s.capture.Points(),
	}
	if draft, ok := s.capture.Draft(); ok {
		cv.Draft = &draft
	}
	if cv.Points == nil {
		cv.Points = []models.Point{}
	}

	return View{
		ID:        s.ID,
		Created:   s.Created,
		Customer:  s.customer,
		RoomSet:   s.workspace.RoomSet(),
		Capture:   cv,
		UndoDepth: s.workspace.UndoDepth(),
	}
}

// Resize records a new canvas and rescales both the stored boundaries and
// the points of a capture in progress.
func (s *Session) Resize(canvas models.Canvas) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sx, sy, ok := s.workspace.Resize(canvas); ok {
		s.capture.Rescale(sx, sy)
	}
	return s.viewLocked()
}

// ============================================================
// Session Manager
// ============================================================

type SessionManager struct {
	mu       sync.Mutex
	settings engine.Settings
	sessions map[string]*Session
}

func NewSessionManager(settings engine.Settings) *SessionManager {
	return &SessionManager{
		settings: settings,
		sessions: make(map[string]*Session),
	}
}

func (m *SessionManager) Create() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := &Session{
		ID:        uuid.NewString(),
		Created:   time.Now().UTC(),
		workspace: engine.New(m.settings),
		capture:   capture.New(),
	}
	m.sessions[s.ID] = s
	metrics.SetActiveSessions(len(m.sessions))
	return s
}

func (m *SessionManager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	return s, ok
}

func (m *SessionManager) Remove(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	metrics.SetActiveSessions(len(m.sessions))
	return true
}

func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.sessions)
}

// Settings are the engine settings every new session starts with.
func (m *SessionManager) Settings() engine.Settings {
	return m.settings
}
