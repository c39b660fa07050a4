// broadcast/broadcast.go
package broadcast

import (
	"errors"

	"github.com/wfunc/arena/logger"
	"github.com/wfunc/arena/session"
)

var (
	ErrSessionNotFound = errors.New("session not found")
)

// 广播接口
type Broadcaster interface {
	BroadcastToSession(sessionID string, msgID uint16, data []byte) error
	BroadcastToAll(msgID uint16, data []byte) error
}

// 基于会话的广播器
type SessionBroadcaster struct {
	sessionManager *session.Manager
}

func NewSessionBroadcaster(sessionManager *session.Manager) *SessionBroadcaster {
	return &SessionBroadcaster{
		sessionManager: sessionManager,
	}
}

func (b *SessionBroadcaster) BroadcastToSession(sessionID string, msgID uint16, data []byte) error {
	s, exists := b.sessionManager.Get(sessionID)
	if !exists {
		return ErrSessionNotFound
	}
	return s.Send(msgID, data)
}

// BroadcastToAll sends to every connected session. A failed send is logged
// and skipped; the connection's own read loop will drop the session.
func (b *SessionBroadcaster) BroadcastToAll(msgID uint16, data []byte) error {
	for _, s := range b.sessionManager.All() {
		if err := s.Send(msgID, data); err != nil {
			logger.Log.Warnw("Broadcast failed", "session", s.GetID(), "msg", msgID, "error", err)
			continue
		}
	}
	return nil
}
