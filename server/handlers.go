package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wfunc/arena/models"
	"github.com/wfunc/arena/state"
	"github.com/wfunc/arena/tournament"
)

var statuses = map[models.TournamentStatus]bool{
	models.StatusUpcoming:  true,
	models.StatusLive:      true,
	models.StatusCompleted: true,
}

var types = map[models.TournamentType]bool{
	tournament.TypeAll:  true,
	models.TypeSolo:     true,
	models.TypeDuo:      true,
	models.TypeSquad:    true,
	models.TypeLoneWolf: true,
}

func (s *ArenaServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"time":      time.Now().Format(time.RFC3339),
		"uptime":    s.monitor.Uptime().String(),
		"sessions":  s.sessionManager.Count(),
		"scheduled": s.scheduler.Len(),
	})
}

// handleListTournaments serves the seed catalog, optionally filtered by
// ?status= and ?type=.
func (s *ArenaServer) handleListTournaments(c *gin.Context) {
	registry := tournament.NewRegistry(models.SeedTournaments())

	if typ := models.TournamentType(c.Query("type")); typ != "" {
		if !types[typ] {
			respondError(c, fmt.Errorf("type %q: %w", typ, models.ErrInvalidInput))
			return
		}
		registry = registry.ListByType(typ)
	}
	if status := models.TournamentStatus(c.Query("status")); status != "" {
		if !statuses[status] {
			respondError(c, fmt.Errorf("status %q: %w", status, models.ErrInvalidInput))
			return
		}
		registry = registry.ListByStatus(status)
	}

	c.JSON(http.StatusOK, gin.H{"tournaments": registry})
}

func (s *ArenaServer) handleGetState(c *gin.Context) {
	sess := mustSession(c)
	resp := gin.H{"state": sess.State(), "lastActive": sess.LastActive()}
	if notice, ok := sess.Notice(); ok {
		resp["notice"] = notice
	}
	c.JSON(http.StatusOK, resp)
}

func (s *ArenaServer) handleGetDashboard(c *gin.Context) {
	view, err := state.Dashboard(mustSession(c).State())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *ArenaServer) handleGetWallet(c *gin.Context) {
	view, err := state.Wallet(mustSession(c).State())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *ArenaServer) handleAdminSummary(c *gin.Context) {
	view, err := state.AdminSummary(mustSession(c).State())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *ArenaServer) handleListDeposits(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"pending": mustSession(c).State().Pending})
}

func (s *ArenaServer) handleApproveDeposit(c *gin.Context) {
	s.resolveDeposit(c, state.ApproveDeposit{RequestID: c.Param("rid")})
}

func (s *ArenaServer) handleRejectDeposit(c *gin.Context) {
	s.resolveDeposit(c, state.RejectDeposit{RequestID: c.Param("rid")})
}

func (s *ArenaServer) resolveDeposit(c *gin.Context, action state.Action) {
	sess := mustSession(c)
	if err := sess.Dispatch(action); err != nil {
		respondError(c, err)
		return
	}
	st := sess.State()
	resp := gin.H{"balance": st.User.Balance, "pending": st.Pending}
	if notice, ok := sess.Notice(); ok {
		resp["notice"] = notice
	}
	c.JSON(http.StatusOK, resp)
}
