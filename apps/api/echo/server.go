package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"

	"github.com/tundavala/escola/core"
	"github.com/tundavala/escola/core/contact"
	"github.com/tundavala/escola/core/tuition"
	"github.com/tundavala/escola/core/visit"
)

type (
	ServerDeps struct {
		Conf        *core.Config
		Logger      core.Logger
		ContactSvc  *contact.Service
		TuitionSvc  *tuition.Service
		VisitSvc    *visit.Service
		Validate    *validator.Validate
		Translators *core.Translators
	}

	Server struct {
		deps     ServerDeps
		app      *echo.Echo
		metrics  *metrics
		errors   chan error
		shutdown chan os.Signal
	}
)

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		deps:     deps,
		app:      echo.New(),
		metrics:  newMetrics(otel.Meter(meterName), deps.Logger),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.deps.Conf

	s.app.HideBanner = true
	s.app.Debug = conf.Debug
	s.app.Server.ReadTimeout = conf.Server.ReadTimeout
	s.app.Server.WriteTimeout = conf.Server.WriteTimeout
	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translators)

	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.RequestID())
	s.app.Use(echo.WrapMiddleware(otelhttp.NewMiddleware(conf.AppName)))
	if !conf.Server.DisableRequestLogs {
		s.app.Use(requestLoggerMiddleware(s.deps.Logger))
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(languageMiddleware(s.deps.Translators))

	s.app.GET("/", home)

	api := s.app.Group("/api")
	registerContactAPI(api, s.deps.ContactSvc, s.deps.Validate, s.metrics)
	registerTuitionAPI(api, s.deps.TuitionSvc, s.deps.Validate, s.metrics)
	registerVisitAPI(api, s.deps.VisitSvc, s.deps.Validate, s.metrics)
}

// Start listens until the server is shut down. Listener failures are sent to Errors.
func (s *Server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Address); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *Server) Shutdown(ctx context.Context) error {
	signal.Stop(s.shutdown)
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Tundavala API!")
}
