// models/models.go
package models

import (
	"time"
)

// Role 用户角色
type Role string

const (
	RolePlayer Role = "PLAYER"
	RoleAdmin  Role = "ADMIN"
)

// TournamentType is the match mode of a tournament.
type TournamentType string

const (
	TypeSolo     TournamentType = "SOLO"
	TypeDuo      TournamentType = "DUO"
	TypeSquad    TournamentType = "SQUAD"
	TypeLoneWolf TournamentType = "LONE_WOLF"
)

// TournamentStatus is the lifecycle status of a tournament.
type TournamentStatus string

const (
	StatusUpcoming  TournamentStatus = "UPCOMING"
	StatusLive      TournamentStatus = "LIVE"
	StatusCompleted TournamentStatus = "COMPLETED"
)

// TransactionType classifies a wallet movement.
type TransactionType string

const (
	TxDeposit    TransactionType = "DEPOSIT"
	TxEntryFee   TransactionType = "ENTRY_FEE"
	TxWinning    TransactionType = "WINNING"
	TxWithdrawal TransactionType = "WITHDRAWAL"
)

// User 玩家账户
type User struct {
	ID                string `json:"id"`
	FFID              string `json:"ffId"`
	Username          string `json:"username"`
	Avatar            string `json:"avatar"`
	Balance           int64  `json:"balance"` // whole rupees, never negative
	TotalKills        int    `json:"totalKills"`
	TournamentsPlayed int    `json:"tournamentsPlayed"`
	Wins              int    `json:"wins"`
	Role              Role   `json:"role"`
}

// IsAdmin reports whether the user may review deposits.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Tournament 锦标赛
type Tournament struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Type            TournamentType   `json:"type"`
	Status          TournamentStatus `json:"status"`
	EntryFee        int64            `json:"entryFee"`
	PrizePool       int64            `json:"prizePool"`
	Map             string           `json:"map"`
	StartTime       string           `json:"startTime"`
	Participants    int              `json:"participants"`
	MaxParticipants int              `json:"maxParticipants"`
	Description     string           `json:"description"`
}

// Joinable reports whether a new participant may still enter. A tournament
// at capacity is closed even while its status still reads UPCOMING.
func (t Tournament) Joinable() bool {
	return t.Status == StatusUpcoming && t.Participants < t.MaxParticipants
}

// Transaction 钱包流水
type Transaction struct {
	ID          string          `json:"id"`
	Username    string          `json:"username,omitempty"`
	Amount      int64           `json:"amount"`
	Type        TransactionType `json:"type"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
}

// IsCredit reports whether the transaction added money to the wallet.
func (tx Transaction) IsCredit() bool {
	return tx.Type == TxDeposit || tx.Type == TxWinning
}

// DepositStatus is the lifecycle position of a deposit request.
type DepositStatus string

const (
	DepositRequested DepositStatus = "REQUESTED"
	DepositApproved  DepositStatus = "APPROVED"
	DepositRejected  DepositStatus = "REJECTED"
)

// DepositRequest is a manual top-up waiting for an admin decision. Reference
// is the payment confirmation code the player typed in; it is never verified.
type DepositRequest struct {
	ID          string        `json:"id"`
	Username    string        `json:"username"`
	Amount      int64         `json:"amount"`
	Reference   string        `json:"reference"`
	RequestedAt time.Time     `json:"requestedAt"`
	Status      DepositStatus `json:"status"`
}

// NoticeKind 通知类型
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is the short message describing the outcome of the last action.
type Notice struct {
	Message string     `json:"message"`
	Kind    NoticeKind `json:"kind"`
}

// PlayerStatus is the in-match status on the live leaderboard.
type PlayerStatus string

const (
	PlayerAlive      PlayerStatus = "ALIVE"
	PlayerEliminated PlayerStatus = "ELIMINATED"
)

// LiveMatchEntry is one row of the mock live leaderboard.
type LiveMatchEntry struct {
	Rank       int          `json:"rank"`
	PlayerName string       `json:"playerName"`
	Kills      int          `json:"kills"`
	Status     PlayerStatus `json:"status"`
}
