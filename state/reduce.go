// state/reduce.go
package state

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/wfunc/arena/deposit"
	"github.com/wfunc/arena/models"
	"github.com/wfunc/arena/wallet"
)

const (
	historyDateLayout = "2006-01-02"
	logDateLayout     = "2006-01-02 15:04"
)

// Outcome is what an action produced besides the next state.
type Outcome struct {
	Notice *models.Notice
}

func success(format string, args ...any) Outcome {
	return Outcome{Notice: &models.Notice{Message: fmt.Sprintf(format, args...), Kind: models.NoticeSuccess}}
}

func failure(format string, args ...any) Outcome {
	return Outcome{Notice: &models.Notice{Message: fmt.Sprintf(format, args...), Kind: models.NoticeError}}
}

// AvatarURL derives the placeholder avatar of a username.
func AvatarURL(username string) string {
	return "https://picsum.photos/seed/" + slug.Make(username) + "/200"
}

// Reduce applies a to s. On error the returned state is s unchanged, except
// that a join refused for lack of funds switches the tab to the wallet so
// the player lands on the deposit flow.
func Reduce(s AppState, a Action, env Env) (AppState, Outcome, error) {
	if a == nil {
		return s, Outcome{}, fmt.Errorf("nil action: %w", models.ErrInvalidInput)
	}
	if _, ok := a.(Register); !ok && !s.Registered() {
		return s, Outcome{}, fmt.Errorf("%s: %w", a.Name(), models.ErrNotRegistered)
	}

	switch a := a.(type) {
	case Register:
		return register(s, a, env)
	case SelectTab:
		return selectTab(s, a)
	case Join:
		return join(s, a, env)
	case RequestDeposit:
		return requestDeposit(s, a, env)
	case ApproveDeposit:
		return approveDeposit(s, a, env)
	case RejectDeposit:
		return rejectDeposit(s, a)
	case CreditDeposit:
		return creditDeposit(s, a, env)
	default:
		return s, Outcome{}, fmt.Errorf("unknown action %T: %w", a, models.ErrInvalidInput)
	}
}

func register(s AppState, a Register, env Env) (AppState, Outcome, error) {
	if s.Registered() {
		return s, Outcome{}, models.ErrAlreadyRegistered
	}
	username := strings.TrimSpace(a.Username)
	ffid := strings.TrimSpace(a.FFID)
	if username == "" || ffid == "" {
		return s, Outcome{}, fmt.Errorf("username and ff id are required: %w", models.ErrInvalidInput)
	}

	role := env.Role
	if role == "" {
		role = models.RolePlayer
	}
	s.User = &models.User{
		ID:       uuid.NewString(),
		FFID:     ffid,
		Username: username,
		Avatar:   AvatarURL(username),
		Balance:  env.Balance,
		Role:     role,
	}
	s.Tab = TabDashboard
	return s, success("Welcome, %s!", username), nil
}

func selectTab(s AppState, a SelectTab) (AppState, Outcome, error) {
	if !tabs[a.Tab] {
		return s, Outcome{}, fmt.Errorf("tab %q: %w", a.Tab, models.ErrInvalidInput)
	}
	if a.Tab == TabAdmin && !s.User.IsAdmin() {
		return s, Outcome{}, fmt.Errorf("tab %q: %w", a.Tab, models.ErrForbidden)
	}
	s.Tab = a.Tab
	return s, Outcome{}, nil
}

func join(s AppState, a Join, env Env) (AppState, Outcome, error) {
	registry, user, t, err := s.Tournaments.Join(a.TournamentID, *s.User)
	if errors.Is(err, models.ErrInsufficientFunds) {
		s.Tab = TabWallet
		return s, failure("Insufficient balance! Please deposit money."), err
	}
	if err != nil {
		return s, Outcome{}, err
	}

	s.Tournaments = registry
	s.User = &user
	if t.EntryFee > 0 {
		s.History = prepend(s.History, models.Transaction{
			ID:          env.NewID(),
			Username:    user.Username,
			Amount:      t.EntryFee,
			Type:        models.TxEntryFee,
			Date:        env.Now().Format(historyDateLayout),
			Description: t.Title + " Entry",
		})
	}
	return s, success("Successfully joined %s!", t.Title), nil
}

func requestDeposit(s AppState, a RequestDeposit, env Env) (AppState, Outcome, error) {
	req, err := deposit.NewRequest(env.NewID(), s.User.Username, a.Amount, a.Reference, env.Now())
	if err != nil {
		return s, Outcome{}, err
	}
	s.Pending = s.Pending.Submit(req)
	return s, success("Deposit request of ₹%d sent to admin", req.Amount), nil
}

func approveDeposit(s AppState, a ApproveDeposit, env Env) (AppState, Outcome, error) {
	if !s.User.IsAdmin() {
		return s, Outcome{}, fmt.Errorf("approve %q: %w", a.RequestID, models.ErrForbidden)
	}
	queue, req, err := s.Pending.Resolve(a.RequestID, models.DepositApproved)
	if err != nil {
		return s, Outcome{}, err
	}
	user, err := wallet.Credit(*s.User, req.Amount)
	if err != nil {
		return s, Outcome{}, err
	}

	now := env.Now()
	s.Pending = queue
	s.User = &user
	s.History = prepend(s.History, models.Transaction{
		ID:          req.ID,
		Username:    req.Username,
		Amount:      req.Amount,
		Type:        models.TxDeposit,
		Date:        now.Format(historyDateLayout),
		Description: "Manual deposit " + req.Reference,
	})
	s.DepositLog = appendCopy(s.DepositLog, models.Transaction{
		ID:          req.ID,
		Username:    req.Username,
		Amount:      req.Amount,
		Type:        models.TxDeposit,
		Date:        now.Format(logDateLayout),
		Description: "Manual Deposit",
	})
	return s, success("₹%d deposit approved", req.Amount), nil
}

func rejectDeposit(s AppState, a RejectDeposit) (AppState, Outcome, error) {
	if !s.User.IsAdmin() {
		return s, Outcome{}, fmt.Errorf("reject %q: %w", a.RequestID, models.ErrForbidden)
	}
	queue, _, err := s.Pending.Resolve(a.RequestID, models.DepositRejected)
	if err != nil {
		return s, Outcome{}, err
	}
	s.Pending = queue
	return s, failure("Deposit request rejected"), nil
}

func creditDeposit(s AppState, a CreditDeposit, env Env) (AppState, Outcome, error) {
	if err := deposit.ValidateAmount(a.Amount); err != nil {
		return s, Outcome{}, err
	}
	user, err := wallet.Credit(*s.User, a.Amount)
	if err != nil {
		return s, Outcome{}, err
	}
	s.User = &user
	s.History = prepend(s.History, models.Transaction{
		ID:          env.NewID(),
		Username:    user.Username,
		Amount:      a.Amount,
		Type:        models.TxDeposit,
		Date:        env.Now().Format(historyDateLayout),
		Description: "Wallet top-up",
	})
	return s, success("₹%d added to your wallet!", a.Amount), nil
}

func prepend(txs []models.Transaction, tx models.Transaction) []models.Transaction {
	out := make([]models.Transaction, 0, len(txs)+1)
	out = append(out, tx)
	return append(out, txs...)
}

func appendCopy(txs []models.Transaction, tx models.Transaction) []models.Transaction {
	out := make([]models.Transaction, 0, len(txs)+1)
	out = append(out, txs...)
	return append(out, tx)
}
