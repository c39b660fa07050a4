// state/views.go
package state

import (
	"fmt"
	"math"

	"github.com/wfunc/arena/deposit"
	"github.com/wfunc/arena/models"
)

// StatPoint is one bar of the dashboard stats chart.
type StatPoint struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// DashboardView is the landing page.
type DashboardView struct {
	User        models.User             `json:"user"`
	WinRate     int                     `json:"winRate"`
	Stats       []StatPoint             `json:"stats"`
	Live        []models.Tournament     `json:"live"`
	Leaderboard []models.LiveMatchEntry `json:"leaderboard"`
}

// Dashboard builds the landing page of a registered session.
func Dashboard(s AppState) (DashboardView, error) {
	if !s.Registered() {
		return DashboardView{}, models.ErrNotRegistered
	}
	u := *s.User
	return DashboardView{
		User:    u,
		WinRate: WinRate(u),
		Stats: []StatPoint{
			{Name: "Kills", Value: u.TotalKills},
			{Name: "Wins", Value: u.Wins * 10}, // weighted so wins show up next to kills
			{Name: "Matches", Value: u.TournamentsPlayed},
		},
		Live:        s.Tournaments.ListByStatus(models.StatusLive),
		Leaderboard: models.SeedLiveLeaderboard(),
	}, nil
}

// WinRate is wins over tournaments played as a rounded percentage, 0 for a
// player with no tournaments.
func WinRate(u models.User) int {
	if u.TournamentsPlayed <= 0 {
		return 0
	}
	return int(math.Round(float64(u.Wins) * 100 / float64(u.TournamentsPlayed)))
}

// TrendPoint is one day of the admin deposit trend.
type TrendPoint struct {
	Day    string `json:"day"`
	Amount int64  `json:"amount"`
}

// AdminSummaryView aggregates the platform deposit log.
type AdminSummaryView struct {
	TotalDeposits int64                `json:"totalDeposits"`
	DepositCount  int                  `json:"depositCount"`
	PendingTotal  int64                `json:"pendingTotal"`
	Trend         []TrendPoint         `json:"trend"`
	Log           []models.Transaction `json:"log"`
	Pending       deposit.Queue        `json:"pending"`
}

// trend holds the fixed Mon-Thu figures; Friday is the live total.
var trend = []TrendPoint{
	{Day: "Mon", Amount: 4000},
	{Day: "Tue", Amount: 3000},
	{Day: "Wed", Amount: 2000},
	{Day: "Thu", Amount: 5500},
}

// AdminSummary builds the admin page. Players get ErrForbidden.
func AdminSummary(s AppState) (AdminSummaryView, error) {
	if !s.Registered() {
		return AdminSummaryView{}, models.ErrNotRegistered
	}
	if !s.User.IsAdmin() {
		return AdminSummaryView{}, fmt.Errorf("admin summary: %w", models.ErrForbidden)
	}

	var total int64
	for _, tx := range s.DepositLog {
		total += tx.Amount
	}
	points := make([]TrendPoint, 0, len(trend)+1)
	points = append(points, trend...)
	points = append(points, TrendPoint{Day: "Fri", Amount: total})

	return AdminSummaryView{
		TotalDeposits: total,
		DepositCount:  len(s.DepositLog),
		PendingTotal:  s.Pending.Total(),
		Trend:         points,
		Log:           s.DepositLog,
		Pending:       s.Pending,
	}, nil
}

// WalletView is the wallet page.
type WalletView struct {
	Balance int64                   `json:"balance"`
	History []models.Transaction    `json:"history"`
	Pending []models.DepositRequest `json:"pending"`
}

// Wallet builds the wallet page; Pending lists only the user's own requests.
func Wallet(s AppState) (WalletView, error) {
	if !s.Registered() {
		return WalletView{}, models.ErrNotRegistered
	}
	mine := make([]models.DepositRequest, 0, len(s.Pending))
	for _, req := range s.Pending {
		if req.Username == s.User.Username {
			mine = append(mine, req)
		}
	}
	return WalletView{
		Balance: s.User.Balance,
		History: s.History,
		Pending: mine,
	}, nil
}

// SnapshotWindow bounds the lists carried by a pushed snapshot. Full
// history is served by the wallet and admin views.
const SnapshotWindow = 50

// Snapshot returns s with History, Pending and DepositLog cut to their
// SnapshotWindow most recent entries.
func Snapshot(s AppState) AppState {
	if len(s.History) > SnapshotWindow {
		s.History = s.History[:SnapshotWindow]
	}
	if len(s.Pending) > SnapshotWindow {
		s.Pending = s.Pending[:SnapshotWindow]
	}
	if n := len(s.DepositLog); n > SnapshotWindow {
		s.DepositLog = s.DepositLog[n-SnapshotWindow:]
	}
	return s
}
