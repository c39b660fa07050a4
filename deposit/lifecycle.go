// deposit/lifecycle.go
package deposit

import (
	"errors"

	"github.com/wfunc/arena/models"
)

// ErrTransitionNotAllowed is returned when a request cannot move to the
// requested status from where it is.
var ErrTransitionNotAllowed = errors.New("deposit transition not allowed")

// transitions fromStatus -> toStatus. Approved and Rejected are terminal.
var transitions = map[models.DepositStatus]map[models.DepositStatus]bool{
	models.DepositRequested: {
		models.DepositApproved: true,
		models.DepositRejected: true,
	},
}

// CanTransition reports whether a request in from may move to to.
func CanTransition(from, to models.DepositStatus) bool {
	return transitions[from][to]
}

// Transition moves req to the target status.
func Transition(req models.DepositRequest, to models.DepositStatus) (models.DepositRequest, error) {
	if !CanTransition(req.Status, to) {
		return req, ErrTransitionNotAllowed
	}
	req.Status = to
	return req, nil
}
