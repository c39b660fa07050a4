// notify/signal.go
package notify

import (
	"sync"
	"time"

	"github.com/wfunc/arena/models"
	"github.com/wfunc/arena/timer"
)

// DefaultTTL is how long a notice stays visible unless replaced.
const DefaultTTL = 3 * time.Second

// Observer receives the slot after every change; nil means the slot was
// cleared. It runs with the signal locked and must not call back into it.
type Observer func(n *models.Notice)

// Signal is a single-slot notice that clears itself ttl after it was set.
// Setting a new notice re-arms the expiry, so only the latest notice is
// ever shown and an older timer can never clear a newer notice.
type Signal struct {
	mutex     sync.Mutex
	scheduler *timer.Scheduler
	key       string
	ttl       time.Duration
	current   *models.Notice
	gen       uint64
	observer  Observer
}

// NewSignal creates a signal arming its expiry on scheduler under key. Keys
// must be unique per scheduler.
func NewSignal(scheduler *timer.Scheduler, key string, ttl time.Duration, observer Observer) *Signal {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Signal{
		scheduler: scheduler,
		key:       key,
		ttl:       ttl,
		observer:  observer,
	}
}

// Set replaces the slot with n and returns its generation.
func (s *Signal) Set(n models.Notice) uint64 {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.gen++
	gen := s.gen
	notice := n
	s.current = &notice
	s.scheduler.Schedule(s.key, s.ttl, func() {
		s.expire(gen)
	})
	s.emit(&notice)
	return gen
}

func (s *Signal) expire(gen uint64) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if gen != s.gen || s.current == nil {
		return
	}
	s.current = nil
	s.emit(nil)
}

// Current returns the visible notice, if any.
func (s *Signal) Current() (models.Notice, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.current == nil {
		return models.Notice{}, false
	}
	return *s.current, true
}

// Clear empties the slot immediately and disarms its expiry.
func (s *Signal) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.gen++
	s.scheduler.Cancel(s.key)
	if s.current == nil {
		return
	}
	s.current = nil
	s.emit(nil)
}

func (s *Signal) emit(n *models.Notice) {
	if s.observer != nil {
		s.observer(n)
	}
}
