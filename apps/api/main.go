package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"

	echoapi "github.com/lvillarreal/educrm/apps/api/echo"
	"github.com/lvillarreal/educrm/core"
	"github.com/lvillarreal/educrm/core/school"
	"github.com/lvillarreal/educrm/core/user"
	emailsvc "github.com/lvillarreal/educrm/services/email"
	logsvc "github.com/lvillarreal/educrm/services/logger"
	"github.com/lvillarreal/educrm/storage/database"
	"github.com/lvillarreal/educrm/storage/database/dummy"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf, err := core.NewConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	var logger core.Logger
	if conf.Debug {
		logger = logsvc.NewStdLogger(std)
	} else {
		rollbarLogger := logsvc.NewRollbarLogger(std, conf)
		rollbarLogger.Enable(true)
		logger = rollbarLogger
	}

	// set up repositories; the dummy engine keeps everything in memory
	var (
		db         *sqlx.DB
		usrRepo    user.Repository
		schoolRepo school.Repository
	)
	if conf.Database.Engine == "dummy" {
		mem := dummydb.NewDB()
		usrRepo = dummydb.NewUserRepository(mem)
		schoolRepo = dummydb.NewSchoolRepository(mem)
	} else {
		db, err = database.Open(conf)
		if err != nil {
			logger.Fatal(fmt.Sprintf("opening database: %v", err), err)
		}
		defer db.Close()
		if err = database.Migrate(db); err != nil {
			logger.Fatal(fmt.Sprintf("migrating database: %v", err), err)
		}
		usrRepo = database.NewUserRepository(db)
		schoolRepo = database.NewSchoolRepository(db)
	}

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}
	usrSvc := user.NewService(usrRepo, mailSvc)
	schoolSvc := school.NewService(schoolRepo)

	validate, translator := core.NewValidator()
	user.RegisterValidators(validate, translator)

	// =========================================================================
	// Start API Service

	logger.Info(fmt.Sprintf("%s initializing : env %q", conf.AppName, conf.Env))
	defer logger.Info("Application stopped")

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	server := echoapi.NewServer(&echoapi.Options{
		Conf:           conf,
		Logger:         logger,
		UserSvc:        usrSvc,
		SchoolSvc:      schoolSvc,
		TokenSvc:       echoapi.NewTokenService(conf),
		Validate:       validate,
		Translator:     translator,
		DB:             db,
		SignalShutdown: func() { shutdown <- syscall.SIGTERM },
	})

	go server.Start()

	// =========================================================================
	// Shutdown

	sig := <-shutdown
	logger.Info(fmt.Sprintf("%v: start shutdown...", sig))

	// give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
	defer cancel()

	if err = server.Stop(ctx); err != nil {
		logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)
	}
}
