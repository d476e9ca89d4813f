package echoapi

import (
	"context"
	"net/http"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/lvillarreal/educrm/core"
	"github.com/lvillarreal/educrm/core/school"
	"github.com/lvillarreal/educrm/core/user"
)

type (
	Options struct {
		Conf           *core.Config
		Logger         core.Logger
		UserSvc        *user.Service
		SchoolSvc      *school.Service
		TokenSvc       *TokenService
		Validate       *validator.Validate
		Translator     ut.Translator
		DB             *sqlx.DB // optional, used by the health check
		DisableReqLogs bool
		SignalShutdown func() // invoked on unrecoverable server errors
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	if opts.SignalShutdown == nil {
		opts.SignalShutdown = func() {}
	}
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.opts.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.Translator, s.opts.SignalShutdown)
	s.app.Debug = conf.Debug
	s.app.HideBanner = true

	s.app.GET("/", home)

	api := s.app.Group("/api")
	api.GET("/health", s.health)
	api.GET("/status", s.status)

	auth := authMiddleware(s.opts.TokenSvc)

	registerUserAPI(api, auth, s.opts)
	registerStudentAPI(api, auth, s.opts)
	registerCourseAPI(api, auth, s.opts)
	registerAcademicsAPI(api, auth, s.opts)
	registerPaymentAPI(api, auth, s.opts)
	registerDashboardAPI(api, auth, s.opts)
}

func (s *server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.opts.Conf.ServerAddress()))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to the EduCRM API!")
}

// health reports whether the process can reach its database.
func (s *server) health(ctx echo.Context) error {
	status := "healthy"
	dbStatus := "not configured"
	code := http.StatusOK

	if s.opts.DB != nil {
		dbStatus = "connected"
		if err := s.opts.DB.PingContext(ctx.Request().Context()); err != nil {
			status = "unhealthy"
			dbStatus = "disconnected"
			code = http.StatusInternalServerError
		}
	}
	return ctx.JSON(code, echo.Map{
		"status":    status,
		"database":  dbStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *server) status(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{
		"status":    "online",
		"message":   "Servidor en línea",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
