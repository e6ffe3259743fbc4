// Package server exposes the scanner state over HTTP.
package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"marketscanner/internal/model"
	"marketscanner/internal/planner"
	"marketscanner/internal/store"
)

// Server serves signals, potential scores and entry plans.
type Server struct {
	store   *store.Latest
	planner *planner.Planner
	logger  *zap.Logger
	http    *http.Server
}

func New(addr string, st *store.Latest, pl *planner.Planner, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		store:   st,
		planner: pl,
		logger:  logger,
	}

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", s.handleHealth)

	api := router.Group("/api/v1")
	api.GET("/signals", s.handleSignals)
	api.GET("/signals/:symbol", s.handleSignal)
	api.GET("/potential/:symbol", s.handlePotential)
	api.POST("/plan", s.handlePlan)

	s.http = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return s
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "symbols": len(s.store.All())})
}

func (s *Server) handleSignals(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"signals": s.store.All()})
}

func (s *Server) handleSignal(c *gin.Context) {
	symbol := strings.ToUpper(c.Param("symbol"))
	entry, ok := s.store.Get(symbol)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown symbol: " + symbol})
		return
	}
	c.JSON(http.StatusOK, entry.Signal)
}

func (s *Server) handlePotential(c *gin.Context) {
	symbol := strings.ToUpper(c.Param("symbol"))
	entry, ok := s.store.Get(symbol)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown symbol: " + symbol})
		return
	}
	c.JSON(http.StatusOK, planner.ScorePotential(symbol, entry.Closes, entry.Signal.Price))
}

type planRequest struct {
	Symbol       string          `json:"symbol" binding:"required"`
	Capital      decimal.Decimal `json:"capital"`
	TargetProfit decimal.Decimal `json:"target_profit"`
	TargetEntry  decimal.Decimal `json:"target_entry"`
}

func (s *Server) handlePlan(c *gin.Context) {
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	symbol := strings.ToUpper(req.Symbol)
	entry, ok := s.store.Get(symbol)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown symbol: " + symbol})
		return
	}

	alert, err := s.planner.BuildEntryAlert(symbol, entry.Signal.Price, entry.Closes, model.GoalParams{
		Capital:      req.Capital,
		TargetProfit: req.TargetProfit,
		TargetEntry:  req.TargetEntry,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, alert)
}
