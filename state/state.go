// state/state.go
package state

import (
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/wfunc/arena/deposit"
	"github.com/wfunc/arena/models"
	"github.com/wfunc/arena/tournament"
)

// Tab 当前页面
type Tab string

const (
	TabDashboard   Tab = "dashboard"
	TabTournaments Tab = "tournaments"
	TabWallet      Tab = "wallet"
	TabAdmin       Tab = "admin"
	TabProfile     Tab = "profile"
)

var tabs = map[Tab]bool{
	TabDashboard:   true,
	TabTournaments: true,
	TabWallet:      true,
	TabAdmin:       true,
	TabProfile:     true,
}

// AppState is everything one session knows. It is a value: Reduce never
// modifies the state it is given, it returns the next one.
type AppState struct {
	User        *models.User         `json:"user"`
	Tournaments tournament.Registry  `json:"tournaments"`
	Pending     deposit.Queue        `json:"pending"`
	History     []models.Transaction `json:"history"`    // most recent first
	DepositLog  []models.Transaction `json:"depositLog"` // oldest first
	Tab         Tab                  `json:"tab"`
}

// Initial returns the state a fresh session starts from: seeded catalog
// and histories, nobody registered yet.
func Initial() AppState {
	return AppState{
		Tournaments: tournament.NewRegistry(models.SeedTournaments()),
		Pending:     deposit.Queue{},
		History:     models.SeedWalletHistory(),
		DepositLog:  models.SeedDepositLog(),
		Tab:         TabDashboard,
	}
}

// Registered reports whether the session has completed registration.
func (s AppState) Registered() bool {
	return s.User != nil
}

// Env carries everything impure the reducer needs.
type Env struct {
	Now   func() time.Time
	NewID func() string
	// Balance and Role are given to newly registered users.
	Balance int64
	Role    models.Role
}

// DefaultEnv uses the wall clock and nanoid ids.
func DefaultEnv(balance int64, role models.Role) Env {
	return Env{
		Now:     time.Now,
		NewID:   func() string { return gonanoid.Must(12) },
		Balance: balance,
		Role:    role,
	}
}
