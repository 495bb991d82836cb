package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"carnitas-elguero/internal/comanda/api/http/handle"
	"carnitas-elguero/internal/comanda/app/core"
	"carnitas-elguero/internal/comanda/app/services"
	"carnitas-elguero/internal/xpkg/config"
	"carnitas-elguero/internal/xpkg/logger"

	brokermessage "carnitas-elguero/internal/comanda/adapter/broker_message"
	database "carnitas-elguero/internal/comanda/adapter/db"
)

var ErrServerClosed = errors.New("Server closed")

type Server struct {
	mux     *http.ServeMux
	cfg     *config.Config
	srv     *http.Server
	params  *core.ComandaParams
	mylog   logger.Logger
	db      core.IDB
	mb      core.IBroker
	monitor *services.AlertMonitor
	ctx     context.Context
	appCtx  context.Context
	mu      sync.Mutex
}

func NewServer(ctx, appCtx context.Context, cfg *config.Config, params *core.ComandaParams, mylog logger.Logger) *Server {
	return &Server{
		ctx:    ctx,
		appCtx: appCtx,
		cfg:    cfg,
		params: params,
		mylog:  mylog,
		mux:    http.NewServeMux(),
	}
}

// Run initializes the storage and broker connections, registers routes and
// serves until the context is cancelled or the server fails. The
// delivery-alert monitor runs alongside the HTTP listener.
func (s *Server) Run() error {
	mylog := s.mylog.Action("server_started")

	if err := s.initializeDatabase(); err != nil {
		mylog.Action("db_connection_failed").Error("Failed to connect to database", err)
		return err
	}

	if !s.params.SkipNotification {
		if err := s.initializeBroker(); err != nil {
			mylog.Action("mb_connection_failed").Error("Failed to connect to message broker", err)
			return err
		}
	}

	s.Configure()

	s.mu.Lock()
	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.params.Port),
		Handler: corsMiddleware(s.mux),
	}
	s.mu.Unlock()

	mylog.WithGroup("details").With("port", s.params.Port).Info("server is running")

	g, gctx := errgroup.WithContext(s.ctx)
	g.Go(func() error {
		return s.startHTTPServer()
	})
	g.Go(func() error {
		return s.monitor.Run(gctx)
	})
	return g.Wait()
}

// Stop provides a programmatic shutdown. Accepts a context for timeout control.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mylog.Action("graceful_shutdown_started").Info("Shutting down HTTP server...")

	if s.srv != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, core.WaitTime*time.Second)
		defer cancel()

		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.mylog.Action("graceful_shutdown_failed").Error("Failed to shut down HTTP server gracefully", err)
			return fmt.Errorf("http server shutdown: %w", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.mylog.Action("db_close_failed").Error("Failed to close database", err)
			return fmt.Errorf("db close: %w", err)
		}
		s.mylog.Action("db_closed").Info("Database closed")
	}

	if s.mb != nil {
		if err := s.mb.Close(); err != nil {
			s.mylog.Action("mb_close_failed").Error("Failed to close message broker", err)
			return fmt.Errorf("mb close: %w", err)
		}
		s.mylog.Action("mb_closed").Info("Message broker closed")
	}

	s.mylog.Action("graceful_shutdown_completed").Info("HTTP server shut down gracefully")
	return nil
}

func (s *Server) startHTTPServer() error {
	errCh := make(chan error, 1)

	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		} else {
			errCh <- nil
		}
	}()

	select {
	case <-s.ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

func (s *Server) initializeDatabase() error {
	db, err := database.Start(s.appCtx, s.cfg.DB, s.mylog)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.db = db
	return nil
}

func (s *Server) initializeBroker() error {
	mb, err := brokermessage.New(s.appCtx, s.cfg.RMQ, s.mylog)
	if err != nil {
		return fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}
	s.mb = mb
	return nil
}

// Configure wires repositories, services, the alert monitor and routes.
func (s *Server) Configure() {
	productoRepo := database.NewProductoRepo(s.db)
	mesaRepo := database.NewMesaRepo(s.db)
	pedidoRepo := database.NewPedidoRepo(s.db)
	saborRepo := database.NewSaborRepo(s.db)

	productoService := services.NewProductoService(productoRepo, s.mylog)
	mesaService := services.NewMesaService(mesaRepo, s.mylog)
	pedidoService := services.NewPedidoService(pedidoRepo, s.mb, s.mylog)
	saborService := services.NewSaborService(saborRepo, s.mylog)

	s.monitor = services.NewAlertMonitor(pedidoRepo, s.mb, s.mylog,
		time.Duration(s.params.AlertInterval)*time.Second,
		time.Duration(s.params.AlertLookahead)*time.Minute)

	productoHandler := handle.NewProductoHandler(productoService, s.mylog)
	mesaHandler := handle.NewMesaHandler(mesaService, s.mylog)
	pedidoHandler := handle.NewPedidoHandler(pedidoService, s.mylog)
	saborHandler := handle.NewSaborHandler(saborService, s.mylog)
	healthHandler := handle.NewHealthHandler(s.db)

	s.mux.Handle("GET /api/health", healthHandler.Check())

	s.mux.Handle("GET /api/productos", productoHandler.List())
	s.mux.Handle("POST /api/productos", productoHandler.Create())
	s.mux.Handle("PUT /api/productos/{id}", productoHandler.Update())

	s.mux.Handle("GET /api/mesas", mesaHandler.List())
	s.mux.Handle("PUT /api/mesas/{id}", mesaHandler.Update())

	s.mux.Handle("GET /api/pedidos", pedidoHandler.List())
	s.mux.Handle("POST /api/pedidos", pedidoHandler.Create())
	s.mux.Handle("PUT /api/pedidos/{id}", pedidoHandler.UpdateEstado())

	s.mux.Handle("GET /api/sabores", saborHandler.List())
	s.mux.Handle("POST /api/sabores", saborHandler.Create())
	s.mux.Handle("PUT /api/sabores/{id}", saborHandler.Update())
}

// corsMiddleware mirrors the permissive CORS setup the browser client
// expects, answering preflight requests before they reach the mux.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
