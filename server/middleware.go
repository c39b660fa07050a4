package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wfunc/arena/logger"
	"github.com/wfunc/arena/models"
	"github.com/wfunc/arena/monitor"
	"github.com/wfunc/arena/session"
)

const sessionKey = "session"

// statusFor maps a domain error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, models.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, models.ErrNotJoinable),
		errors.Is(err, models.ErrAlreadyRegistered),
		errors.Is(err, models.ErrSubmissionInFlight):
		return http.StatusConflict
	case errors.Is(err, models.ErrNotRegistered):
		return http.StatusPreconditionFailed
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(statusFor(err), gin.H{
		"error": err.Error(),
		"code":  monitor.Result(err),
	})
}

// SessionMiddleware resolves :id to a connected session.
func (s *ArenaServer) SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, exists := s.sessionManager.Get(c.Param("id"))
		if !exists {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found", "code": "not_found"})
			c.Abort()
			return
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

// AdminMiddleware checks that the session's user is an admin. It must run
// after SessionMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := mustSession(c)
		st := sess.State()
		if !st.Registered() {
			respondError(c, models.ErrNotRegistered)
			return
		}
		if !st.User.IsAdmin() {
			respondError(c, models.ErrForbidden)
			return
		}
		c.Set("admin_username", st.User.Username)
		c.Next()
	}
}

func mustSession(c *gin.Context) *session.Session {
	return c.MustGet(sessionKey).(*session.Session)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Log.Debugw("HTTP request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}
