package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/wfunc/arena/broadcast"
	"github.com/wfunc/arena/coach"
	"github.com/wfunc/arena/config"
	"github.com/wfunc/arena/logger"
	"github.com/wfunc/arena/models"
	"github.com/wfunc/arena/monitor"
	"github.com/wfunc/arena/network"
	"github.com/wfunc/arena/session"
	"github.com/wfunc/arena/state"
	"github.com/wfunc/arena/timer"
)

// strategyTimeout bounds one coach call made on behalf of a connection.
const strategyTimeout = 15 * time.Second

type ArenaServer struct {
	addr           string
	heartbeat      time.Duration
	upgrader       websocket.Upgrader
	router         *gin.Engine
	httpServer     *http.Server
	sessionManager *session.Manager
	broadcaster    broadcast.Broadcaster
	scheduler      *timer.Scheduler
	coach          *coach.Coach
	monitor        *monitor.Monitor
	sessionOpts    session.Options
	shutdownChan   chan struct{}
}

func NewArenaServer(cfg *config.Config, scheduler *timer.Scheduler, coach *coach.Coach, mon *monitor.Monitor) *ArenaServer {
	s := &ArenaServer{
		addr:           cfg.Server.HTTPAddress,
		heartbeat:      cfg.Server.Heartbeat,
		sessionManager: session.NewManager(),
		scheduler:      scheduler,
		coach:          coach,
		monitor:        mon,
		shutdownChan:   make(chan struct{}),
		sessionOpts: session.Options{
			Env:         state.DefaultEnv(cfg.Session.StartingBalance, models.Role(cfg.Session.Role)),
			NoticeTTL:   cfg.Session.NoticeTTL,
			SubmitDelay: cfg.Session.SubmitDelay,
			Monitor:     mon,
		},
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // 允许所有跨域请求
			},
		},
	}
	s.broadcaster = broadcast.NewSessionBroadcaster(s.sessionManager)
	s.router = s.routes(cfg.Server.AllowedOrigins)
	s.httpServer = &http.Server{
		Addr:    s.addr,
		Handler: s.router,
	}
	return s
}

func (s *ArenaServer) routes(origins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", s.handleHealth)
	router.GET("/ws", s.handleWebSocket)
	router.GET("/metrics", gin.WrapH(s.monitor.Handler()))

	api := router.Group("/api")
	{
		api.GET("/tournaments", s.handleListTournaments)

		sessions := api.Group("/sessions/:id")
		sessions.Use(s.SessionMiddleware())
		{
			sessions.GET("/state", s.handleGetState)
			sessions.GET("/dashboard", s.handleGetDashboard)
			sessions.GET("/wallet", s.handleGetWallet)
		}

		admin := api.Group("/sessions/:id/admin")
		admin.Use(s.SessionMiddleware())
		admin.Use(AdminMiddleware())
		{
			admin.GET("/summary", s.handleAdminSummary)
			admin.GET("/deposits", s.handleListDeposits)
			admin.POST("/deposits/:rid/approve", s.handleApproveDeposit)
			admin.POST("/deposits/:rid/reject", s.handleRejectDeposit)
		}
	}
	return router
}

// Handler exposes the router, for tests and embedding.
func (s *ArenaServer) Handler() http.Handler {
	return s.router
}

func (s *ArenaServer) Sessions() *session.Manager {
	return s.sessionManager
}

func (s *ArenaServer) Start() error {
	logger.Log.Infof("Arena server listening on %s", s.addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown tells every session, stops accepting requests and closes the
// open connections.
func (s *ArenaServer) Shutdown(ctx context.Context) error {
	close(s.shutdownChan)

	bye, _ := json.Marshal(models.Notice{Message: "Server is restarting", Kind: models.NoticeError})
	s.broadcaster.BroadcastToAll(network.MsgTypeNotice, bye)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.httpServer.Shutdown(gCtx)
	})
	g.Go(func() error {
		// Hijacked websocket connections are not tracked by http.Server.
		for _, sess := range s.sessionManager.All() {
			sess.Close()
		}
		return nil
	})
	return g.Wait()
}

func (s *ArenaServer) handleWebSocket(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Log.Infof("Failed to upgrade connection: %v", err)
		return
	}
	s.handleConnection(conn)
}

func (s *ArenaServer) handleConnection(conn *websocket.Conn) {
	wsConn := network.NewWSConnection(conn)
	sess := session.NewSession(uuid.New().String(), wsConn, s.scheduler, s.sessionOpts)
	s.sessionManager.Add(sess)
	s.monitor.IncActiveSessions()

	logger.Log.Infof("New connection from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())

	defer func() {
		logger.Log.Infow("Connection closed",
			"remote", wsConn.RemoteAddr(),
			"session", sess.GetID(),
			"user", sess.Username(),
		)
		s.sessionManager.Remove(sess.GetID())
		s.monitor.DecActiveSessions()
		sess.Close()
	}()

	if s.heartbeat > 0 {
		wsConn.SetHeartbeat(s.heartbeat)
	}
	if err := network.SendJSON(wsConn, network.MsgTypeWelcome, network.Welcome{SessionID: sess.GetID()}); err != nil {
		return
	}
	if err := sess.PushSnapshot(); err != nil {
		return
	}

	for {
		select {
		case <-s.shutdownChan:
			return
		default:
			packet, err := wsConn.ReadPacket()
			if err != nil {
				return
			}
			start := time.Now()
			s.monitor.IncMessagesReceived()
			s.handlePacket(sess, packet)
			s.monitor.ObserveMessageLatency(time.Since(start))
		}
	}
}

func (s *ArenaServer) handlePacket(sess *session.Session, packet *network.Packet) {
	var err error
	switch packet.MsgID {
	case network.MsgTypeHeartbeat:
		sess.Touch()
		return
	case network.MsgTypeRegister:
		err = dispatch[state.Register](sess, packet.Data)
	case network.MsgTypeSelectTab:
		err = dispatch[state.SelectTab](sess, packet.Data)
	case network.MsgTypeJoin:
		err = dispatch[state.Join](sess, packet.Data)
	case network.MsgTypeApproveDeposit:
		err = dispatch[state.ApproveDeposit](sess, packet.Data)
	case network.MsgTypeRejectDeposit:
		err = dispatch[state.RejectDeposit](sess, packet.Data)
	case network.MsgTypeCreditDeposit:
		err = dispatch[state.CreditDeposit](sess, packet.Data)
	case network.MsgTypeRequestDeposit:
		var req state.RequestDeposit
		if err = decode(packet.Data, &req); err == nil {
			err = sess.SubmitDeposit(req.Amount, req.Reference)
		}
	case network.MsgTypeRequestStrategy:
		err = s.handleStrategy(sess, packet.Data)
	default:
		logger.Log.Infof("Unknown message type: %d", packet.MsgID)
		return
	}

	sess.Touch()
	if err != nil && !silent(err) {
		sess.SendError(packet.MsgID, err)
	}
}

// silent errors already reached the client as a notice, or are refused
// without any feedback.
func silent(err error) bool {
	return errors.Is(err, models.ErrInsufficientFunds) || errors.Is(err, models.ErrNotJoinable)
}

func decode(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("malformed payload: %v: %w", err, models.ErrInvalidInput)
	}
	return nil
}

func dispatch[T state.Action](sess *session.Session, data []byte) error {
	var action T
	if err := decode(data, &action); err != nil {
		return err
	}
	return sess.Dispatch(action)
}

// handleStrategy answers asynchronously so a slow model never blocks the
// connection's read loop.
func (s *ArenaServer) handleStrategy(sess *session.Session, data []byte) error {
	var req network.StrategyRequest
	if err := decode(data, &req); err != nil {
		return err
	}
	st := sess.State()
	if !st.Registered() {
		return models.ErrNotRegistered
	}
	t, err := st.Tournaments.Get(req.TournamentID)
	if err != nil {
		return err
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), strategyTimeout)
		defer cancel()

		reply, _ := json.Marshal(network.StrategyReply{
			TournamentID: t.ID,
			Tips:         s.coach.BattleStrategy(ctx, t),
		})
		if err := s.broadcaster.BroadcastToSession(sess.GetID(), network.MsgTypeStrategy, reply); err != nil {
			logger.Log.Debugw("Strategy reply dropped", "session", sess.GetID(), "error", err)
		}
	}()
	return nil
}
