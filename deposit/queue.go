// deposit/queue.go
package deposit

import (
	"fmt"
	"strings"
	"time"

	"github.com/wfunc/arena/models"
)

// Queue holds the pending deposit requests, most recent first.
type Queue []models.DepositRequest

// MaxAmount caps a single deposit.
const MaxAmount int64 = 100000

// ValidateAmount checks one deposit amount against (0, MaxAmount].
func ValidateAmount(amount int64) error {
	if amount <= 0 || amount > MaxAmount {
		return fmt.Errorf("deposit amount %d: %w", amount, models.ErrInvalidInput)
	}
	return nil
}

// Validate checks the player-supplied fields of a deposit request.
func Validate(amount int64, reference string) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	if strings.TrimSpace(reference) == "" {
		return fmt.Errorf("payment reference is empty: %w", models.ErrInvalidInput)
	}
	return nil
}

// NewRequest builds a request in the Requested state.
func NewRequest(id, username string, amount int64, reference string, at time.Time) (models.DepositRequest, error) {
	if err := Validate(amount, reference); err != nil {
		return models.DepositRequest{}, err
	}
	return models.DepositRequest{
		ID:          id,
		Username:    username,
		Amount:      amount,
		Reference:   strings.TrimSpace(reference),
		RequestedAt: at,
		Status:      models.DepositRequested,
	}, nil
}

// Submit returns a new queue with req at the front.
func (q Queue) Submit(req models.DepositRequest) Queue {
	next := make(Queue, 0, len(q)+1)
	next = append(next, req)
	return append(next, q...)
}

// Get 查找待审核的充值请求
func (q Queue) Get(id string) (models.DepositRequest, error) {
	for _, req := range q {
		if req.ID == id {
			return req, nil
		}
	}
	return models.DepositRequest{}, fmt.Errorf("deposit request %q: %w", id, models.ErrNotFound)
}

// Resolve removes request id from the queue and returns it moved to the
// terminal status to. An id that is no longer pending yields ErrNotFound, so
// a duplicate approve or reject can never act twice.
func (q Queue) Resolve(id string, to models.DepositStatus) (Queue, models.DepositRequest, error) {
	idx := -1
	for i, req := range q {
		if req.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return q, models.DepositRequest{}, fmt.Errorf("deposit request %q: %w", id, models.ErrNotFound)
	}

	resolved, err := Transition(q[idx], to)
	if err != nil {
		return q, q[idx], fmt.Errorf("deposit request %q: %w", id, err)
	}

	next := make(Queue, 0, len(q)-1)
	next = append(next, q[:idx]...)
	next = append(next, q[idx+1:]...)
	return next, resolved, nil
}

// Total sums the amounts still awaiting review.
func (q Queue) Total() int64 {
	var sum int64
	for _, req := range q {
		sum += req.Amount
	}
	return sum
}
