package mcp

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/orderbot/internal/cart"
	"github.com/dshills/orderbot/internal/config"
	"github.com/dshills/orderbot/internal/flow"
	"github.com/dshills/orderbot/internal/mailbox"
	"github.com/dshills/orderbot/internal/notify"
	"github.com/dshills/orderbot/internal/storage"
)

const (
	// ServerName is the MCP server name
	ServerName = "orderbot"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"

	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp      *server.MCPServer
	storage  storage.Storage
	flow     *flow.Flow
	carts    *cart.Registry
	sessions *flow.Sessions
	mailbox  *mailbox.Mailbox
	config   *config.Config
	logger   *zap.Logger
}

// NewServer opens the database, seeds the demo catalog if it is empty and
// registers the chat tools.
func NewServer(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	dbPath, err := cfg.ResolveDBPath()
	if err != nil {
		return nil, err
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	box := mailbox.New(cfg.MailboxCapacity)
	carts := cart.NewRegistry()
	sessions := flow.NewSessions()

	f := flow.New(
		store,
		store,
		notify.NewOperator(box, cfg.OperatorID),
		carts,
		sessions,
		flow.Config{OperatorID: cfg.OperatorID, RecentOrders: cfg.RecentOrders},
		logger.Named("flow"),
	)

	s := &Server{
		mcp:      server.NewMCPServer(ServerName, ServerVersion),
		storage:  store,
		flow:     f,
		carts:    carts,
		sessions: sessions,
		mailbox:  box,
		config:   cfg,
		logger:   logger,
	}

	if cfg.OperatorID == 0 {
		logger.Warn("no operator configured, order notifications and /orders are disabled")
	}

	// Register tools
	if err := s.registerTools(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	return s, nil
}

// Close releases the database
func (s *Server) Close() error {
	return s.storage.Close()
}

// Serve blocks until ctx is cancelled or the transport fails. It serves
// stdio unless an HTTP address is configured.
func (s *Server) Serve(ctx context.Context) error {
	defer func() { _ = s.Close() }()

	if s.config.HTTPAddr == "" {
		s.logger.Info("serving on stdio")
		stdio := server.NewStdioServer(s.mcp)
		stdio.SetErrorLogger(zap.NewStdLog(s.logger.Named("stdio")))
		err := stdio.Listen(ctx, os.Stdin, os.Stdout)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	}

	return s.serveHTTP(ctx)
}

func (s *Server) serveHTTP(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.HTTPAddr,
		Handler:           bearerAuth(s.config.BotToken, server.NewStreamableHTTPServer(s.mcp)),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("serving streamable HTTP", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown failed: %w", err)
		}
		s.logger.Info("http server stopped")
		return nil
	})

	return g.Wait()
}

// bearerAuth rejects requests that do not carry the bot token
func bearerAuth(token string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			w.Header().Set("WWW-Authenticate", `Bearer realm="orderbot"`)
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// registerTools registers all MCP tools
func (s *Server) registerTools() error {
	s.mcp.AddTool(sendMessageTool(), s.handleSendMessage)
	s.mcp.AddTool(pressButtonTool(), s.handlePressButton)
	s.mcp.AddTool(fetchMessagesTool(), s.handleFetchMessages)
	s.mcp.AddTool(listOrdersTool(), s.handleListOrders)
	s.mcp.AddTool(blockBotTool(), s.handleBlockBot)
	s.mcp.AddTool(getStatusTool(), s.handleGetStatus)

	return nil
}
