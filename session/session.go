// session/session.go
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/wfunc/arena/deposit"
	"github.com/wfunc/arena/logger"
	"github.com/wfunc/arena/models"
	"github.com/wfunc/arena/monitor"
	"github.com/wfunc/arena/network"
	"github.com/wfunc/arena/notify"
	"github.com/wfunc/arena/state"
	"github.com/wfunc/arena/timer"
)

// DefaultSubmitDelay simulates the payment check before a deposit request
// reaches the queue.
const DefaultSubmitDelay = 1500 * time.Millisecond

// ErrSchedulerStopped is returned when a delayed submission cannot be armed.
var ErrSchedulerStopped = errors.New("scheduler stopped")

type Options struct {
	Env         state.Env
	NoticeTTL   time.Duration
	SubmitDelay time.Duration
	Monitor     *monitor.Monitor
}

// Session is one connected client and the application state it owns.
// All state changes go through the reducer under mutex.
type Session struct {
	ID        string
	Conn      network.Connection
	CreatedAt time.Time

	mutex       sync.Mutex
	lastActive  time.Time
	state       state.AppState
	env         state.Env
	signal      *notify.Signal
	scheduler   *timer.Scheduler
	submitDelay time.Duration
	submitting  bool
	monitor     *monitor.Monitor
}

func NewSession(id string, conn network.Connection, scheduler *timer.Scheduler, opts Options) *Session {
	now := scheduler.Clock().Now()
	if opts.SubmitDelay <= 0 {
		opts.SubmitDelay = DefaultSubmitDelay
	}
	if opts.Env.Now == nil {
		opts.Env.Now = scheduler.Clock().Now
	}
	if opts.Env.NewID == nil {
		opts.Env.NewID = state.DefaultEnv(0, "").NewID
	}
	s := &Session{
		ID:          id,
		Conn:        conn,
		CreatedAt:   now,
		lastActive:  now,
		state:       state.Initial(),
		env:         opts.Env,
		scheduler:   scheduler,
		submitDelay: opts.SubmitDelay,
		monitor:     opts.Monitor,
	}
	s.signal = notify.NewSignal(scheduler, s.key("notice"), opts.NoticeTTL, s.pushNotice)
	return s
}

func (s *Session) key(name string) string {
	return s.ID + "/" + name
}

func (s *Session) GetID() string {
	return s.ID
}

// Touch records client activity.
func (s *Session) Touch() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.lastActive = s.scheduler.Clock().Now()
}

func (s *Session) LastActive() time.Time {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.lastActive
}

// State returns the current application state. Treat it as read-only.
func (s *Session) State() state.AppState {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.state
}

// Username is empty until the session registers.
func (s *Session) Username() string {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.state.User == nil {
		return ""
	}
	return s.state.User.Username
}

// Notice returns the visible notice, if any.
func (s *Session) Notice() (models.Notice, bool) {
	return s.signal.Current()
}

// Dispatch runs a through the reducer and publishes the result.
func (s *Session) Dispatch(a state.Action) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.dispatchLocked(a)
}

func (s *Session) dispatchLocked(a state.Action) error {
	next, out, err := state.Reduce(s.state, a, s.env)
	s.state = next

	if s.monitor != nil {
		s.monitor.ObserveCommand(a.Name(), err)
		if req, ok := a.(state.RequestDeposit); ok && err == nil {
			s.monitor.ObserveDeposit(req.Amount)
		}
	}
	if err != nil {
		logger.Log.Infow("Command refused", "session", s.ID, "action", a.Name(), "error", err)
	} else {
		logger.Log.Debugw("Command applied", "session", s.ID, "action", a.Name())
	}

	if out.Notice != nil {
		s.signal.Set(*out.Notice)
	}
	if err == nil || out.Notice != nil {
		s.pushSnapshotLocked()
	}
	return err
}

// SubmitDeposit validates a deposit request, then queues it after the
// simulated submission delay. A second submission while one is waiting is
// refused with ErrSubmissionInFlight.
func (s *Session) SubmitDeposit(amount int64, reference string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.state.Registered() {
		return models.ErrNotRegistered
	}
	if err := deposit.Validate(amount, reference); err != nil {
		return err
	}
	if s.submitting {
		return models.ErrSubmissionInFlight
	}

	s.submitting = true
	gen := s.scheduler.Schedule(s.key("submit"), s.submitDelay, func() {
		s.mutex.Lock()
		defer s.mutex.Unlock()
		s.submitting = false
		if err := s.dispatchLocked(state.RequestDeposit{Amount: amount, Reference: reference}); err != nil {
			logger.Log.Warnw("Delayed deposit request failed", "session", s.ID, "error", err)
		}
	})
	if gen == 0 {
		s.submitting = false
		return ErrSchedulerStopped
	}
	return nil
}

// Submitting reports whether a deposit submission is waiting.
func (s *Session) Submitting() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.submitting
}

// PushSnapshot sends the state to the client, with long lists cut to
// state.SnapshotWindow.
func (s *Session) PushSnapshot() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.pushSnapshotLocked()
}

func (s *Session) pushSnapshotLocked() error {
	if err := network.SendJSON(s.Conn, network.MsgTypeSnapshot, state.Snapshot(s.state)); err != nil {
		logger.Log.Warnw("Failed to push snapshot", "session", s.ID, "error", err)
		return err
	}
	return nil
}

func (s *Session) pushNotice(n *models.Notice) {
	if n != nil && s.monitor != nil {
		s.monitor.ObserveNotice(n.Kind)
	}
	if err := network.SendJSON(s.Conn, network.MsgTypeNotice, n); err != nil {
		logger.Log.Warnw("Failed to push notice", "session", s.ID, "error", err)
	}
}

func (s *Session) Send(msgID uint16, data []byte) error {
	s.Touch()
	return s.Conn.Send(msgID, data)
}

// SendError reports a refused command to the client.
func (s *Session) SendError(msgID uint16, err error) error {
	return network.SendJSON(s.Conn, network.MsgTypeError, network.ErrorReply{
		MsgID:   msgID,
		Code:    monitor.Result(err),
		Message: err.Error(),
	})
}

// Close disarms the session's timers and closes the connection.
func (s *Session) Close() error {
	s.scheduler.Cancel(s.key("notice"))
	s.scheduler.Cancel(s.key("submit"))
	return s.Conn.Close()
}

// Session管理器
type Manager struct {
	sessions map[string]*Session
	mutex    sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
	}
}

func (m *Manager) Add(session *Session) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.sessions[session.ID] = session
}

func (m *Manager) Remove(sessionID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.sessions, sessionID)
}

func (m *Manager) Get(sessionID string) (*Session, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	session, exists := m.sessions[sessionID]
	return session, exists
}

func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.sessions)
}

// All returns a snapshot of the connected sessions.
func (m *Manager) All() []*Session {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	result := make([]*Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}
