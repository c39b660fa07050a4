package deposit

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/wfunc/arena/models"
)

var testTime = time.Date(2024, 6, 14, 18, 0, 0, 0, time.UTC)

func mustRequest(t *testing.T, id string, amount int64, ref string) models.DepositRequest {
	t.Helper()
	req, err := NewRequest(id, "FF_Warrior_07", amount, ref, testTime)
	if err != nil {
		t.Fatalf("NewRequest(%s) failed: %v", id, err)
	}
	return req
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name      string
		amount    int64
		reference string
		wantErr   bool
	}{
		{"valid", 500, "ABC123", false},
		{"zero amount", 0, "ABC123", true},
		{"negative amount", -5, "ABC123", true},
		{"empty reference", 100, "", true},
		{"blank reference", 100, "   ", true},
		{"at the cap", MaxAmount, "ABC123", false},
		{"above the cap", MaxAmount + 1, "ABC123", true},
		{"max int64", math.MaxInt64, "ABC123", true},
	}
	for _, tc := range cases {
		err := Validate(tc.amount, tc.reference)
		if tc.wantErr && !errors.Is(err, models.ErrInvalidInput) {
			t.Errorf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("%s: unexpected error %v", tc.name, err)
		}
	}
}

func TestQueue_SubmitKeepsMostRecentFirst(t *testing.T) {
	var q Queue
	q = q.Submit(mustRequest(t, "d1", 100, "REF1"))
	q = q.Submit(mustRequest(t, "d2", 500, "ABC123"))

	if len(q) != 2 {
		t.Fatalf("Expected 2 pending requests, got %d", len(q))
	}
	if q[0].ID != "d2" || q[1].ID != "d1" {
		t.Errorf("Expected order d2, d1; got %s, %s", q[0].ID, q[1].ID)
	}
	if q[0].Amount != 500 || q[0].Reference != "ABC123" {
		t.Errorf("Request fields not preserved: %+v", q[0])
	}
	if q[0].Status != models.DepositRequested {
		t.Errorf("New request should be REQUESTED, got %s", q[0].Status)
	}
}

func TestQueue_Resolve(t *testing.T) {
	q := Queue{}.Submit(mustRequest(t, "d1", 100, "R1")).
		Submit(mustRequest(t, "d2", 200, "R2")).
		Submit(mustRequest(t, "d3", 300, "R3"))

	next, resolved, err := q.Resolve("d2", models.DepositApproved)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if resolved.Status != models.DepositApproved || resolved.Amount != 200 {
		t.Errorf("Unexpected resolved request: %+v", resolved)
	}
	if len(next) != 2 || next[0].ID != "d3" || next[1].ID != "d1" {
		t.Errorf("Expected remaining d3, d1; got %+v", next)
	}
	if len(q) != 3 {
		t.Errorf("Resolve must not modify the original queue, len is %d", len(q))
	}

	// Second resolution of the same id fails either way.
	if _, _, err := next.Resolve("d2", models.DepositApproved); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Second approve: expected ErrNotFound, got %v", err)
	}
	if _, _, err := next.Resolve("d2", models.DepositRejected); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Reject after approve: expected ErrNotFound, got %v", err)
	}
}

func TestQueue_ResolveRejectLeavesOthersIntact(t *testing.T) {
	q := Queue{}.Submit(mustRequest(t, "d1", 100, "R1")).Submit(mustRequest(t, "d2", 200, "R2"))

	next, _, err := q.Resolve("d1", models.DepositRejected)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(next) != len(q)-1 {
		t.Fatalf("Expected exactly one fewer entry, got %d", len(next))
	}
	if next[0] != q[0] {
		t.Errorf("Untouched entry changed: %+v vs %+v", next[0], q[0])
	}
}

func TestQueue_ResolveToRequestedNotAllowed(t *testing.T) {
	q := Queue{}.Submit(mustRequest(t, "d1", 100, "R1"))
	next, _, err := q.Resolve("d1", models.DepositRequested)
	if !errors.Is(err, ErrTransitionNotAllowed) {
		t.Fatalf("Expected ErrTransitionNotAllowed, got %v", err)
	}
	if len(next) != 1 {
		t.Errorf("Queue should be unchanged after a refused transition")
	}
}

func TestTransition_TerminalStates(t *testing.T) {
	approved := models.DepositRequest{Status: models.DepositApproved}
	if _, err := Transition(approved, models.DepositRejected); err != ErrTransitionNotAllowed {
		t.Errorf("Approved -> Rejected should be refused, got %v", err)
	}
	rejected := models.DepositRequest{Status: models.DepositRejected}
	if CanTransition(rejected.Status, models.DepositApproved) {
		t.Error("Rejected -> Approved should be refused")
	}
}

func TestQueue_Total(t *testing.T) {
	q := Queue{}.Submit(mustRequest(t, "d1", 100, "R1")).Submit(mustRequest(t, "d2", 250, "R2"))
	if q.Total() != 350 {
		t.Errorf("Expected total 350, got %d", q.Total())
	}
}
