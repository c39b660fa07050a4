package state

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/wfunc/arena/models"
	"github.com/wfunc/arena/tournament"
)

// testEnv returns a deterministic env: fixed clock, sequential ids.
func testEnv(role models.Role) Env {
	n := 0
	return Env{
		Now: func() time.Time { return time.Date(2024, 6, 14, 18, 30, 0, 0, time.UTC) },
		NewID: func() string {
			n++
			return fmt.Sprintf("id%d", n)
		},
		Balance: 250,
		Role:    role,
	}
}

func registered(t *testing.T, role models.Role) (AppState, Env) {
	t.Helper()
	env := testEnv(role)
	s, _, err := Reduce(Initial(), Register{Username: "FF Warrior", FFID: "987654321"}, env)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	return s, env
}

func mustReduce(t *testing.T, s AppState, a Action, env Env) (AppState, Outcome) {
	t.Helper()
	next, out, err := Reduce(s, a, env)
	if err != nil {
		t.Fatalf("%s failed: %v", a.Name(), err)
	}
	return next, out
}

func TestReduce_Register(t *testing.T) {
	s, out, err := Reduce(Initial(), Register{Username: "  Shadow Hunter ", FFID: "123"}, testEnv(models.RolePlayer))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if !s.Registered() {
		t.Fatal("Expected session to be registered")
	}
	u := s.User
	if u.Username != "Shadow Hunter" || u.FFID != "123" {
		t.Errorf("Expected trimmed identity, got %q / %q", u.Username, u.FFID)
	}
	if u.Balance != 250 || u.Role != models.RolePlayer {
		t.Errorf("Expected balance 250 and role PLAYER, got %d and %s", u.Balance, u.Role)
	}
	if u.Avatar != "https://picsum.photos/seed/shadow-hunter/200" {
		t.Errorf("Unexpected avatar %s", u.Avatar)
	}
	if u.ID == "" {
		t.Error("Expected a generated user id")
	}
	if out.Notice == nil || out.Notice.Kind != models.NoticeSuccess {
		t.Errorf("Expected a success notice, got %+v", out.Notice)
	}

	if _, _, err := Reduce(s, Register{Username: "x", FFID: "y"}, testEnv(models.RolePlayer)); !errors.Is(err, models.ErrAlreadyRegistered) {
		t.Errorf("Expected ErrAlreadyRegistered, got %v", err)
	}
}

func TestReduce_Register_EmptyFields(t *testing.T) {
	cases := []Register{
		{Username: "", FFID: "123"},
		{Username: "name", FFID: "   "},
		{},
	}
	for _, c := range cases {
		initial := Initial()
		s, out, err := Reduce(initial, c, testEnv(models.RolePlayer))
		if !errors.Is(err, models.ErrInvalidInput) {
			t.Errorf("%+v: expected ErrInvalidInput, got %v", c, err)
		}
		if s.Registered() || out.Notice != nil {
			t.Errorf("%+v: rejected registration must not mutate state", c)
		}
		if !reflect.DeepEqual(s, initial) {
			t.Errorf("%+v: state changed on rejection", c)
		}
	}
}

func TestReduce_RequiresRegistration(t *testing.T) {
	actions := []Action{
		SelectTab{Tab: TabWallet},
		Join{TournamentID: "t1"},
		RequestDeposit{Amount: 100, Reference: "ABC"},
		ApproveDeposit{RequestID: "x"},
		RejectDeposit{RequestID: "x"},
		CreditDeposit{Amount: 100},
	}
	for _, a := range actions {
		if _, _, err := Reduce(Initial(), a, testEnv(models.RoleAdmin)); !errors.Is(err, models.ErrNotRegistered) {
			t.Errorf("%s: expected ErrNotRegistered, got %v", a.Name(), err)
		}
	}
}

func TestReduce_SelectTab(t *testing.T) {
	s, env := registered(t, models.RolePlayer)

	s, _ = mustReduce(t, s, SelectTab{Tab: TabTournaments}, env)
	if s.Tab != TabTournaments {
		t.Errorf("Expected tab tournaments, got %s", s.Tab)
	}

	if _, _, err := Reduce(s, SelectTab{Tab: TabAdmin}, env); !errors.Is(err, models.ErrForbidden) {
		t.Errorf("Expected ErrForbidden for a player, got %v", err)
	}
	if _, _, err := Reduce(s, SelectTab{Tab: "casino"}, env); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for an unknown tab, got %v", err)
	}

	admin, env := registered(t, models.RoleAdmin)
	admin, _ = mustReduce(t, admin, SelectTab{Tab: TabAdmin}, env)
	if admin.Tab != TabAdmin {
		t.Errorf("Expected admin to reach the admin tab, got %s", admin.Tab)
	}
}

func TestReduce_Join(t *testing.T) {
	s, env := registered(t, models.RolePlayer)
	s.Tournaments = tournament.NewRegistry([]models.Tournament{{
		ID: "a", Title: "Night Cup", Status: models.StatusUpcoming, EntryFee: 100, Participants: 23, MaxParticipants: 24,
	}})

	next, out := mustReduce(t, s, Join{TournamentID: "a"}, env)
	if next.User.Balance != 150 {
		t.Errorf("Expected balance 150, got %d", next.User.Balance)
	}
	if next.Tournaments[0].Participants != 24 {
		t.Errorf("Expected 24/24, got %d", next.Tournaments[0].Participants)
	}
	if out.Notice == nil || out.Notice.Message != "Successfully joined Night Cup!" || out.Notice.Kind != models.NoticeSuccess {
		t.Errorf("Unexpected notice %+v", out.Notice)
	}
	if len(next.History) != len(s.History)+1 {
		t.Fatalf("Expected one new history entry, got %d -> %d", len(s.History), len(next.History))
	}
	if tx := next.History[0]; tx.Type != models.TxEntryFee || tx.Amount != 100 || tx.Date != "2024-06-14" {
		t.Errorf("Unexpected entry fee transaction %+v", tx)
	}

	// The input state is untouched.
	if s.User.Balance != 250 || s.Tournaments[0].Participants != 23 {
		t.Errorf("Reduce modified its input: balance %d, participants %d", s.User.Balance, s.Tournaments[0].Participants)
	}

	// Full now, even though still UPCOMING.
	again, out, err := Reduce(next, Join{TournamentID: "a"}, env)
	if !errors.Is(err, models.ErrNotJoinable) {
		t.Fatalf("Expected ErrNotJoinable, got %v", err)
	}
	if out.Notice != nil {
		t.Errorf("Silent rejection must not set a notice, got %+v", out.Notice)
	}
	if again.User.Balance != 150 || again.Tournaments[0].Participants != 24 {
		t.Error("Rejected join mutated state")
	}
}

func TestReduce_Join_InsufficientFunds(t *testing.T) {
	s, env := registered(t, models.RolePlayer)
	s.Tournaments = tournament.NewRegistry([]models.Tournament{{
		ID: "a", Title: "Big Cup", Status: models.StatusUpcoming, EntryFee: 300, Participants: 1, MaxParticipants: 48,
	}})

	next, out, err := Reduce(s, Join{TournamentID: "a"}, env)
	if !errors.Is(err, models.ErrInsufficientFunds) {
		t.Fatalf("Expected ErrInsufficientFunds, got %v", err)
	}
	if next.User.Balance != 250 || next.Tournaments[0].Participants != 1 {
		t.Errorf("Expected nothing to change, got balance %d and %d participants", next.User.Balance, next.Tournaments[0].Participants)
	}
	if out.Notice == nil || out.Notice.Kind != models.NoticeError || out.Notice.Message != "Insufficient balance! Please deposit money." {
		t.Errorf("Unexpected notice %+v", out.Notice)
	}
	if next.Tab != TabWallet {
		t.Errorf("Expected redirect to wallet, got %s", next.Tab)
	}
	if len(next.History) != len(s.History) {
		t.Error("Failed join recorded a transaction")
	}
}

func TestReduce_Join_NotFound(t *testing.T) {
	s, env := registered(t, models.RolePlayer)
	if _, _, err := Reduce(s, Join{TournamentID: "nope"}, env); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestReduce_DepositApproval(t *testing.T) {
	s, env := registered(t, models.RoleAdmin)

	s, out := mustReduce(t, s, RequestDeposit{Amount: 500, Reference: "ABC123"}, env)
	if out.Notice == nil || out.Notice.Message != "Deposit request of ₹500 sent to admin" {
		t.Errorf("Unexpected notice %+v", out.Notice)
	}
	if len(s.Pending) != 1 {
		t.Fatalf("Expected 1 pending request, got %d", len(s.Pending))
	}
	req := s.Pending[0]
	if req.Amount != 500 || req.Reference != "ABC123" || req.Username != "FF Warrior" {
		t.Errorf("Unexpected request %+v", req)
	}
	if s.User.Balance != 250 {
		t.Errorf("A request alone must not credit, got balance %d", s.User.Balance)
	}

	logLen := len(s.DepositLog)
	s, out = mustReduce(t, s, ApproveDeposit{RequestID: req.ID}, env)
	if s.User.Balance != 750 {
		t.Errorf("Expected balance 750, got %d", s.User.Balance)
	}
	if len(s.Pending) != 0 {
		t.Errorf("Approved request still pending: %+v", s.Pending)
	}
	if out.Notice == nil || out.Notice.Message != "₹500 deposit approved" {
		t.Errorf("Unexpected notice %+v", out.Notice)
	}
	if len(s.DepositLog) != logLen+1 || s.DepositLog[logLen].Amount != 500 {
		t.Errorf("Approval not recorded in the deposit log")
	}
	if s.History[0].Type != models.TxDeposit || s.History[0].ID != req.ID {
		t.Errorf("Approval not recorded in history, got %+v", s.History[0])
	}

	for _, a := range []Action{ApproveDeposit{RequestID: req.ID}, RejectDeposit{RequestID: req.ID}} {
		next, _, err := Reduce(s, a, env)
		if !errors.Is(err, models.ErrNotFound) {
			t.Errorf("%s after approval: expected ErrNotFound, got %v", a.Name(), err)
		}
		if next.User.Balance != 750 {
			t.Errorf("%s after approval changed balance to %d", a.Name(), next.User.Balance)
		}
	}
}

func TestReduce_DepositReject(t *testing.T) {
	s, env := registered(t, models.RoleAdmin)
	s, _ = mustReduce(t, s, RequestDeposit{Amount: 100, Reference: "R1"}, env)
	s, _ = mustReduce(t, s, RequestDeposit{Amount: 200, Reference: "R2"}, env)
	s, _ = mustReduce(t, s, RequestDeposit{Amount: 300, Reference: "R3"}, env)
	target := s.Pending[1]

	next, out := mustReduce(t, s, RejectDeposit{RequestID: target.ID}, env)
	if next.User.Balance != 250 {
		t.Errorf("Reject changed balance to %d", next.User.Balance)
	}
	if out.Notice == nil || out.Notice.Kind != models.NoticeError || out.Notice.Message != "Deposit request rejected" {
		t.Errorf("Unexpected notice %+v", out.Notice)
	}
	if len(next.Pending) != 2 || next.Pending[0] != s.Pending[0] || next.Pending[1] != s.Pending[2] {
		t.Errorf("Reject altered other entries: %+v", next.Pending)
	}
}

func TestReduce_DepositAdminOnly(t *testing.T) {
	s, env := registered(t, models.RolePlayer)
	s, _ = mustReduce(t, s, RequestDeposit{Amount: 100, Reference: "R1"}, env)
	id := s.Pending[0].ID

	if _, _, err := Reduce(s, ApproveDeposit{RequestID: id}, env); !errors.Is(err, models.ErrForbidden) {
		t.Errorf("Expected ErrForbidden on approve, got %v", err)
	}
	if _, _, err := Reduce(s, RejectDeposit{RequestID: id}, env); !errors.Is(err, models.ErrForbidden) {
		t.Errorf("Expected ErrForbidden on reject, got %v", err)
	}
}

func TestReduce_RequestDeposit_Invalid(t *testing.T) {
	s, env := registered(t, models.RolePlayer)
	for _, a := range []RequestDeposit{{Amount: 0, Reference: "R"}, {Amount: 100, Reference: " "}} {
		next, _, err := Reduce(s, a, env)
		if !errors.Is(err, models.ErrInvalidInput) {
			t.Errorf("%+v: expected ErrInvalidInput, got %v", a, err)
		}
		if len(next.Pending) != 0 {
			t.Errorf("%+v: invalid request was queued", a)
		}
	}
}

func TestReduce_CreditDeposit(t *testing.T) {
	s, env := registered(t, models.RolePlayer)

	next, out := mustReduce(t, s, CreditDeposit{Amount: 100}, env)
	if next.User.Balance != 350 {
		t.Errorf("Expected balance 350, got %d", next.User.Balance)
	}
	if out.Notice == nil || out.Notice.Message != "₹100 added to your wallet!" {
		t.Errorf("Unexpected notice %+v", out.Notice)
	}

	if _, _, err := Reduce(s, CreditDeposit{Amount: -5}, env); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestReduce_CreditDepositRejectsHugeAmounts(t *testing.T) {
	s, env := registered(t, models.RolePlayer)

	for _, amount := range []int64{math.MaxInt64, 100001} {
		next, out, err := Reduce(s, CreditDeposit{Amount: amount}, env)
		if !errors.Is(err, models.ErrInvalidInput) {
			t.Errorf("CreditDeposit(%d): expected ErrInvalidInput, got %v", amount, err)
		}
		if next.User.Balance != 250 || len(next.History) != len(s.History) {
			t.Errorf("CreditDeposit(%d): state changed, balance %d", amount, next.User.Balance)
		}
		if out.Notice != nil {
			t.Errorf("CreditDeposit(%d): unexpected notice %+v", amount, out.Notice)
		}
	}
}

func TestReduce_NilAction(t *testing.T) {
	if _, _, err := Reduce(Initial(), nil, testEnv(models.RolePlayer)); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}
