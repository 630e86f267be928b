package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"HealthRecords/internal/common/commonerr"
	"HealthRecords/internal/server/handlers"
	"HealthRecords/pkg/sl"

	"github.com/gin-gonic/gin"
)

type Options struct {
	SessionCookie   string
	ShutdownTimeout time.Duration
	Logger          *slog.Logger
}

type Server struct {
	router *gin.Engine
	opts   Options
}

func New(h handlers.Handler, opts Options) *Server {
	if opts.SessionCookie == "" {
		opts.SessionCookie = "session_id"
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	router := gin.New()
	router.Use(gin.Recovery(), handlers.RequestID(), handlers.Logger(opts.Logger), handlers.Session(opts.SessionCookie))
	router.SetHTMLTemplate(handlers.Templates())
	router.StaticFileFS("/static/records.css", "records.css", http.FS(handlers.Static()))

	router.GET("/", func(ctx *gin.Context) {
		ctx.Redirect(http.StatusFound, "/records")
	})
	router.GET("/healthz", h.Health())

	//records list page
	router.GET("/records", h.ListRecords())

	router.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, commonerr.New("page not found"))
	})

	return &Server{
		router: router,
		opts:   opts,
	}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on port until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Run(port string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return s.serve(ctx, port)
}

func (s *Server) serve(ctx context.Context, port string) error {
	log := s.opts.Logger
	serv := http.Server{
		Addr:              port,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := serv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	log.Info("server is listening", slog.String("port", port))

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	log.Info("start to finish server gracefully...")

	ctxTimeout, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	if err := serv.Shutdown(ctxTimeout); err != nil {
		log.Error("failed to shutdown server gracefully", sl.Error(err))
		return err
	}

	log.Info("finished server gracefully")
	return nil
}
