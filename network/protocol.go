package network

// Client -> server.
const (
	MsgTypeHeartbeat       = 1
	MsgTypeRegister        = 101
	MsgTypeSelectTab       = 102
	MsgTypeJoin            = 201
	MsgTypeRequestDeposit  = 202
	MsgTypeApproveDeposit  = 203
	MsgTypeRejectDeposit   = 204
	MsgTypeCreditDeposit   = 205
	MsgTypeRequestStrategy = 206
)

// Server -> client.
const (
	MsgTypeWelcome  = 300
	MsgTypeSnapshot = 301
	MsgTypeNotice   = 302
	MsgTypeStrategy = 303
	MsgTypeError    = 399
)

// Welcome is the first frame of a connection.
type Welcome struct {
	SessionID string `json:"sessionId"`
}

// StrategyRequest asks the coach about one tournament.
type StrategyRequest struct {
	TournamentID string `json:"tournamentId"`
}

// StrategyReply carries the coach's tips.
type StrategyReply struct {
	TournamentID string   `json:"tournamentId"`
	Tips         []string `json:"tips"`
}

// ErrorReply reports a refused command. Code is the metrics result label.
type ErrorReply struct {
	MsgID   uint16 `json:"msgId"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
