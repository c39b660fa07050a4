// timer/timer.go
package timer

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// task is one armed timer. gen is the generation it was scheduled under.
type task struct {
	gen   uint64
	timer clockwork.Timer
}

// Scheduler runs delayed callbacks keyed by name. Scheduling a key again
// cancels the previous task for that key and bumps its generation; a
// callback whose generation is no longer current is dropped even if its
// timer already fired, so a stale timer can never act on newer state.
type Scheduler struct {
	clock   clockwork.Clock
	mutex   sync.Mutex
	tasks   map[string]*task
	gens    map[string]uint64
	stopped bool
}

func NewScheduler(clock clockwork.Clock) *Scheduler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Scheduler{
		clock: clock,
		tasks: make(map[string]*task),
		gens:  make(map[string]uint64),
	}
}

// Clock returns the clock the scheduler arms its timers on.
func (s *Scheduler) Clock() clockwork.Clock {
	return s.clock
}

// Schedule arms callback to run after delay under key and returns the new
// generation of key. It returns 0 once the scheduler is stopped.
func (s *Scheduler) Schedule(key string, delay time.Duration, callback func()) uint64 {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.stopped {
		return 0
	}
	if old, ok := s.tasks[key]; ok {
		old.timer.Stop()
	}

	s.gens[key]++
	gen := s.gens[key]
	t := &task{gen: gen}
	s.tasks[key] = t
	// AfterFunc runs the callback on its own goroutine, so fire can take
	// the mutex we are holding here.
	t.timer = s.clock.AfterFunc(delay, func() {
		s.fire(key, gen, callback)
	})
	return gen
}

func (s *Scheduler) fire(key string, gen uint64, callback func()) {
	s.mutex.Lock()
	t, ok := s.tasks[key]
	if !ok || t.gen != gen {
		s.mutex.Unlock()
		return
	}
	delete(s.tasks, key)
	s.mutex.Unlock()

	callback()
}

// Cancel disarms the task under key. It reports whether one was pending.
func (s *Scheduler) Cancel(key string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	t, ok := s.tasks[key]
	if !ok {
		return false
	}
	t.timer.Stop()
	delete(s.tasks, key)
	s.gens[key]++
	return true
}

// Pending reports whether a task is armed under key.
func (s *Scheduler) Pending(key string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	_, ok := s.tasks[key]
	return ok
}

// Len returns the number of armed tasks.
func (s *Scheduler) Len() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.tasks)
}

// Stop disarms every task and refuses new ones.
func (s *Scheduler) Stop() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for key, t := range s.tasks {
		t.timer.Stop()
		delete(s.tasks, key)
	}
	s.stopped = true
}
