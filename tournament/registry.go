// tournament/registry.go
package tournament

import (
	"fmt"

	"github.com/wfunc/arena/models"
	"github.com/wfunc/arena/wallet"
)

// TypeAll disables the type filter in ListByType.
const TypeAll models.TournamentType = "ALL"

// Registry is the ordered tournament catalog of one session. Methods never
// modify the receiver; mutations return a new Registry.
type Registry []models.Tournament

// NewRegistry copies ts so later joins cannot alias the caller's slice.
func NewRegistry(ts []models.Tournament) Registry {
	r := make(Registry, len(ts))
	copy(r, ts)
	return r
}

func (r Registry) index(id string) int {
	for i, t := range r {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Get 按ID查找锦标赛
func (r Registry) Get(id string) (models.Tournament, error) {
	i := r.index(id)
	if i < 0 {
		return models.Tournament{}, fmt.Errorf("tournament %q: %w", id, models.ErrNotFound)
	}
	return r[i], nil
}

// Join enters user into tournament id. On success the returned registry has
// the tournament's participant count raised by one and the returned user has
// been debited the entry fee; on any error both inputs come back untouched,
// so the two changes are applied together or not at all.
func (r Registry) Join(id string, user models.User) (Registry, models.User, models.Tournament, error) {
	i := r.index(id)
	if i < 0 {
		return r, user, models.Tournament{}, fmt.Errorf("tournament %q: %w", id, models.ErrNotFound)
	}
	t := r[i]

	if !t.Joinable() {
		return r, user, t, fmt.Errorf("tournament %q is %s with %d/%d slots: %w",
			id, t.Status, t.Participants, t.MaxParticipants, models.ErrNotJoinable)
	}

	debited := user
	if t.EntryFee > 0 {
		var err error
		if debited, err = wallet.Debit(user, t.EntryFee); err != nil {
			return r, user, t, fmt.Errorf("join %q: %w", id, err)
		}
	}

	next := NewRegistry(r)
	next[i].Participants++
	return next, debited, next[i], nil
}

// ListByStatus returns the tournaments with the given status in catalog order.
func (r Registry) ListByStatus(status models.TournamentStatus) []models.Tournament {
	out := make([]models.Tournament, 0, len(r))
	for _, t := range r {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

// ListByType returns the tournaments of the given mode in catalog order.
// TypeAll returns the whole catalog.
func (r Registry) ListByType(typ models.TournamentType) []models.Tournament {
	out := make([]models.Tournament, 0, len(r))
	for _, t := range r {
		if typ == TypeAll || t.Type == typ {
			out = append(out, t)
		}
	}
	return out
}
