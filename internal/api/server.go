// Package api exposes the dialog controller and the venue catalog over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alexanderramin/datemate/internal/catalog"
	"github.com/alexanderramin/datemate/internal/dialog"
	"github.com/alexanderramin/datemate/internal/domain"
	"github.com/alexanderramin/datemate/internal/repository"
)

const (
	DefaultAddr     = ":8080"
	shutdownTimeout = 5 * time.Second
	maxMessageRunes = 1000
)

// Dialog is the slice of the controller the API drives.
type Dialog interface {
	StartConversation(ctx context.Context, sessionID, text string) (dialog.Reply, error)
	HandleUserInput(ctx context.Context, sessionID, text string) (dialog.Reply, error)
	Snapshot(sessionID string) (dialog.Snapshot, bool)
	ClearConversation(sessionID string)
}

// Catalog answers venue lookups.
type Catalog interface {
	catalog.Searcher
	Get(ctx context.Context, id string) (*domain.Spot, error)
}

type Config struct {
	Addr         string
	SessionRate  float64
	SessionBurst int
}

type Server struct {
	dialog  Dialog
	catalog Catalog
	logger  *zap.Logger
	limiter *SessionLimiter
	cfg     Config
}

func NewServer(d Dialog, c Catalog, logger *zap.Logger, cfg Config) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.SessionRate <= 0 {
		cfg.SessionRate = DefaultSessionRate
	}
	if cfg.SessionBurst <= 0 {
		cfg.SessionBurst = DefaultSessionBurst
	}
	return &Server{
		dialog:  d,
		catalog: c,
		logger:  logger,
		limiter: NewSessionLimiter(cfg.SessionRate, cfg.SessionBurst),
		cfg:     cfg,
	}
}

// Router builds the gin engine with every route mounted.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), TraceID(), RequestLogger(s.logger))

	r.GET("/healthz", s.health)

	v1 := r.Group("/v1")
	{
		v1.POST("/sessions/:id/messages", LimitPerSession(s.limiter), s.postMessage)
		v1.GET("/sessions/:id", s.getSession)
		v1.DELETE("/sessions/:id", s.deleteSession)
		v1.GET("/spots", s.searchSpots)
		v1.GET("/spots/:id", s.getSpot)
	}
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", s.cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) health(c *gin.Context) {
	respondSuccess(c, gin.H{"status": "ok"}, "")
}

type messageRequest struct {
	Text  string `json:"text" binding:"required"`
	Reset bool   `json:"reset"`
}

func (s *Server) postMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "request body must be {\"text\": \"...\"}")
		return
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		respondError(c, http.StatusBadRequest, "text must not be blank")
		return
	}
	if len([]rune(text)) > maxMessageRunes {
		respondError(c, http.StatusBadRequest, "text is too long")
		return
	}

	sid := c.Param("id")
	handle := s.dialog.HandleUserInput
	if req.Reset {
		handle = s.dialog.StartConversation
	}
	reply, err := handle(c.Request.Context(), sid, text)
	if err != nil {
		s.logger.Warn("turn aborted", zap.String("session_id", sid), zap.Error(err))
		respondError(c, http.StatusServiceUnavailable, "request cancelled")
		return
	}
	respondSuccess(c, toReplyView(reply), "")
}

func (s *Server) getSession(c *gin.Context) {
	snap, ok := s.dialog.Snapshot(c.Param("id"))
	if !ok {
		respondError(c, http.StatusNotFound, "session not found")
		return
	}
	respondSuccess(c, toSessionView(snap), "")
}

func (s *Server) deleteSession(c *gin.Context) {
	s.dialog.ClearConversation(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (s *Server) searchSpots(c *gin.Context) {
	location := strings.TrimSpace(c.Query("location"))
	if location == "" {
		respondError(c, http.StatusBadRequest, "location is required")
		return
	}
	budget := 0.0
	if raw := c.Query("budget"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			respondError(c, http.StatusBadRequest, "budget must be a non-negative number")
			return
		}
		budget = v
	}

	// budget is a whole-date figure, as in chat; each stop gets a third.
	spots, err := s.catalog.Search(c.Request.Context(), location, c.QueryArray("interest"), budget/3)
	if err != nil {
		s.logger.Error("catalog search failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "internal server error")
		return
	}
	respondSuccess(c, toSpotViews(spots), "")
}

func (s *Server) getSpot(c *gin.Context) {
	spot, err := s.catalog.Get(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, repository.ErrNotFound):
		respondError(c, http.StatusNotFound, "spot not found")
		return
	case err != nil:
		s.logger.Error("catalog lookup failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "internal server error")
		return
	}
	respondSuccess(c, toSpotView(*spot), "")
}
