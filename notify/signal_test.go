package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/wfunc/arena/models"
	"github.com/wfunc/arena/timer"
)

// recorder is a thread-safe observer collecting every emitted slot.
type recorder struct {
	mutex  sync.Mutex
	events []*models.Notice
}

func (r *recorder) observe(n *models.Notice) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.events = append(r.events, n)
}

func (r *recorder) snapshot() []*models.Notice {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	out := make([]*models.Notice, len(r.events))
	copy(out, r.events)
	return out
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func cleared(s *Signal) func() bool {
	return func() bool {
		_, ok := s.Current()
		return !ok
	}
}

func TestSignal_SetAndExpire(t *testing.T) {
	clock := clockwork.NewFakeClock()
	rec := &recorder{}
	s := NewSignal(timer.NewScheduler(clock), "notice", 3*time.Second, rec.observe)

	s.Set(models.Notice{Message: "hello", Kind: models.NoticeSuccess})
	got, ok := s.Current()
	if !ok || got.Message != "hello" {
		t.Fatalf("Expected notice hello, got %+v (present=%v)", got, ok)
	}

	clock.Advance(2 * time.Second)
	time.Sleep(20 * time.Millisecond)
	if _, ok := s.Current(); !ok {
		t.Fatal("Notice cleared before its expiry")
	}

	clock.Advance(time.Second)
	waitFor(t, cleared(s), "Notice did not clear after its expiry")

	events := rec.snapshot()
	if len(events) != 2 || events[0] == nil || events[1] != nil {
		t.Errorf("Expected a set then a clear event, got %v", events)
	}
}

func TestSignal_OverwriteRearmsExpiry(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := NewSignal(timer.NewScheduler(clock), "notice", 3*time.Second, nil)

	s.Set(models.Notice{Message: "A", Kind: models.NoticeSuccess})
	clock.Advance(2 * time.Second)
	s.Set(models.Notice{Message: "B", Kind: models.NoticeError})

	// A's deadline has passed; B must still be visible.
	clock.Advance(1500 * time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	got, ok := s.Current()
	if !ok || got.Message != "B" {
		t.Fatalf("Expected B to still be visible, got %+v (present=%v)", got, ok)
	}
	if got.Kind != models.NoticeError {
		t.Errorf("Expected kind error, got %s", got.Kind)
	}

	// B's own deadline is 5s after start.
	clock.Advance(1500 * time.Millisecond)
	waitFor(t, cleared(s), "B did not clear at its own expiry")
}

func TestSignal_StaleExpiryIgnored(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := NewSignal(timer.NewScheduler(clock), "notice", time.Second, nil)

	first := s.Set(models.Notice{Message: "A"})
	second := s.Set(models.Notice{Message: "B"})
	if second <= first {
		t.Fatalf("Expected generation to grow, got %d then %d", first, second)
	}

	// Fire the first generation's callback by hand, as a late timer would.
	s.expire(first)
	if got, ok := s.Current(); !ok || got.Message != "B" {
		t.Errorf("Stale expiry cleared the newer notice, got %+v (present=%v)", got, ok)
	}
}

func TestSignal_Clear(t *testing.T) {
	clock := clockwork.NewFakeClock()
	scheduler := timer.NewScheduler(clock)
	rec := &recorder{}
	s := NewSignal(scheduler, "notice", time.Second, rec.observe)

	s.Set(models.Notice{Message: "A"})
	s.Clear()
	if _, ok := s.Current(); ok {
		t.Fatal("Notice still present after Clear")
	}
	if scheduler.Pending("notice") {
		t.Error("Expiry still armed after Clear")
	}

	// Clearing an empty slot emits nothing.
	s.Clear()
	if events := rec.snapshot(); len(events) != 2 {
		t.Errorf("Expected 2 events, got %d", len(events))
	}
}

func TestNewSignal_DefaultTTL(t *testing.T) {
	s := NewSignal(timer.NewScheduler(clockwork.NewFakeClock()), "notice", 0, nil)
	if s.ttl != DefaultTTL {
		t.Errorf("Expected default ttl %v, got %v", DefaultTTL, s.ttl)
	}
}
