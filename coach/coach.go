// coach/coach.go
package coach

import (
	"context"
	"errors"
	"strings"

	"github.com/wfunc/arena/logger"
	"github.com/wfunc/arena/models"
	"github.com/wfunc/arena/monitor"
)

// TipCount is how many tips a strategy holds.
const TipCount = 3

// Fallback is shown whenever the model cannot produce a usable answer.
func Fallback() []string {
	return []string{
		"Drop in high-loot zones for early advantage.",
		"Conserve gloo walls for the final circle.",
		"Communicate constantly with your squad.",
	}
}

// Coach wraps a Strategist so callers always get exactly TipCount tips.
type Coach struct {
	strategist Strategist
	monitor    *monitor.Monitor
}

func NewCoach(strategist Strategist, monitor *monitor.Monitor) *Coach {
	return &Coach{strategist: strategist, monitor: monitor}
}

// BattleStrategy never fails. Extra tips are cut; too few, an error or a
// missing key yield the fallback list.
func (c *Coach) BattleStrategy(ctx context.Context, t models.Tournament) []string {
	tips, err := c.strategist.Tips(ctx, t)
	if err != nil {
		reason := "error"
		if errors.Is(err, ErrNoAPIKey) {
			reason = "no_api_key"
		}
		return c.fallback(t, reason, err)
	}

	usable := make([]string, 0, TipCount)
	for _, tip := range tips {
		if tip = strings.TrimSpace(tip); tip != "" {
			usable = append(usable, tip)
		}
		if len(usable) == TipCount {
			break
		}
	}
	if len(usable) < TipCount {
		return c.fallback(t, "short_answer", nil)
	}
	return usable
}

func (c *Coach) fallback(t models.Tournament, reason string, err error) []string {
	logger.Log.Warnw("Using fallback battle strategy", "tournament", t.ID, "reason", reason, "error", err)
	if c.monitor != nil {
		c.monitor.IncCoachFallback(reason)
	}
	return Fallback()
}
