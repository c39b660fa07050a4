// wallet/ledger.go
package wallet

import (
	"fmt"
	"math"

	"github.com/wfunc/arena/models"
)

// Credit returns a copy of u with amount added to the balance. A credit
// that would overflow the balance is refused.
func Credit(u models.User, amount int64) (models.User, error) {
	if amount <= 0 {
		return u, fmt.Errorf("credit %d: %w", amount, models.ErrInvalidInput)
	}
	if amount > math.MaxInt64-u.Balance {
		return u, fmt.Errorf("credit %d overflows balance %d: %w", amount, u.Balance, models.ErrInvalidInput)
	}
	u.Balance += amount
	return u, nil
}

// Debit returns a copy of u with amount taken from the balance. The input
// is never modified, so a caller that fails later simply drops the result.
func Debit(u models.User, amount int64) (models.User, error) {
	if amount <= 0 {
		return u, fmt.Errorf("debit %d: %w", amount, models.ErrInvalidInput)
	}
	if u.Balance < amount {
		return u, fmt.Errorf("debit %d from balance %d: %w", amount, u.Balance, models.ErrInsufficientFunds)
	}
	u.Balance -= amount
	return u, nil
}
