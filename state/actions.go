// state/actions.go
package state

// Action is a command the reducer understands.
type Action interface {
	Name() string
}

// Register completes the session bootstrap.
type Register struct {
	Username string `json:"username"`
	FFID     string `json:"ffId"`
}

// SelectTab switches the visible page.
type SelectTab struct {
	Tab Tab `json:"tab"`
}

// Join enters the current user into a tournament.
type Join struct {
	TournamentID string `json:"tournamentId"`
}

// RequestDeposit queues a manual top-up for admin review.
type RequestDeposit struct {
	Amount    int64  `json:"amount"`
	Reference string `json:"reference"`
}

// ApproveDeposit credits a pending request. Admin only.
type ApproveDeposit struct {
	RequestID string `json:"requestId"`
}

// RejectDeposit drops a pending request without crediting. Admin only.
type RejectDeposit struct {
	RequestID string `json:"requestId"`
}

// CreditDeposit adds money directly, without the approval queue.
type CreditDeposit struct {
	Amount int64 `json:"amount"`
}

func (Register) Name() string       { return "register" }
func (SelectTab) Name() string      { return "select_tab" }
func (Join) Name() string           { return "join" }
func (RequestDeposit) Name() string { return "request_deposit" }
func (ApproveDeposit) Name() string { return "approve_deposit" }
func (RejectDeposit) Name() string  { return "reject_deposit" }
func (CreditDeposit) Name() string  { return "credit_deposit" }
