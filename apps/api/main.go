package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof on the default mux
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"

	echoapi "github.com/tundavala/escola/apps/api/echo"
	"github.com/tundavala/escola/core"
	"github.com/tundavala/escola/core/contact"
	"github.com/tundavala/escola/core/tuition"
	"github.com/tundavala/escola/core/user"
	"github.com/tundavala/escola/core/visit"
	logsvc "github.com/tundavala/escola/services/logger"
	"github.com/tundavala/escola/services/telemetry"
	inmemdb "github.com/tundavala/escola/storage/database/inmem"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up logger
	zapLogger, err := logsvc.NewZapLogger(conf, "API")
	if err != nil {
		log.Fatalf("setting up logger: %v", err)
	}
	logger := logsvc.NewRollbarLogger(zapLogger, conf)
	logger.Enable(!conf.Debug && conf.RollbarToken != "")
	defer logger.Sync()

	// set up telemetry
	otelShutdown, err := telemetry.Setup(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up telemetry: %v", err), err)
	}
	defer func() {
		if err := otelShutdown(context.Background()); err != nil {
			logger.Error("telemetry shutdown", err)
		}
	}()

	loc, err := time.LoadLocation(conf.School.Timezone)
	if err != nil {
		logger.Fatal(fmt.Sprintf("loading school time zone %q: %v", conf.School.Timezone, err), err)
	}

	// set up DB & services
	db := inmemdb.Open()
	contactSvc := contact.NewService(inmemdb.NewContactRepository(db))
	tuitionSvc := tuition.NewService(inmemdb.NewTuitionRepository(db))
	visitSvc := visit.NewService(inmemdb.NewAppointmentRepository(db), loc)
	usrSvc := user.NewService(inmemdb.NewUserRepository(db))

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translators := core.NewTranslators()
	core.InitValidators(validate, translators)
	user.InitValidators(validate, translators)

	if err = seedAdmin(usrSvc, validate, conf.Admin); err != nil {
		logger.Fatal(fmt.Sprintf("seeding admin user: %v", err), err)
	}

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugAddress, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:        conf,
			Logger:      logger,
			ContactSvc:  contactSvc,
			TuitionSvc:  tuitionSvc,
			VisitSvc:    visitSvc,
			Validate:    validate,
			Translators: translators,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Error(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

// seedAdmin creates the configured admin account, if any.
func seedAdmin(svc *user.Service, validate *validator.Validate, conf core.AdminConfig) error {
	ctx := context.Background()
	switch {
	case conf.Username == "":
		return nil
	case conf.PasswordHash != "":
		_, err := svc.Register(ctx, conf.Username, []byte(conf.PasswordHash))
		return err
	default:
		nu := user.NewUser{Username: conf.Username, Password: conf.Password, PasswordConfirm: conf.Password}
		if err := nu.Validate(validate); err != nil {
			return err
		}
		_, err := svc.Create(ctx, nu)
		return err
	}
}
