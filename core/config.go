package core

import (
	"fmt"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config holds all process configuration. It is built once in the entry point
// and passed down explicitly; nothing reads the environment after NewConfig returns.
type Config struct {
	Debug           bool
	TestMode        bool
	Env             string // DEV (default), TEST, QA, PROD
	AppName         string
	SecretKey       string
	FrontendBaseURL string
	RollbarToken    string
	SendgridApiKey  string

	DefaultFromName  string
	DefaultFromEmail string

	Server struct {
		Host               string
		Port               int
		JWTExpirationDelta time.Duration
		ShutdownTimeout    time.Duration
	}

	Database struct {
		Engine     string
		Name       string
		User       string
		Password   string
		Host       string
		Port       int
		DisableTLS bool
	}

	// Seed holds the bootstrap account credentials created by `admin seed`.
	// They are supplied via the environment; there are no hardcoded defaults.
	Seed struct {
		SuperadminEmail    string
		SuperadminName     string
		SuperadminPassword string
		AdminEmail         string
		AdminName          string
		AdminPassword      string
	}
}

// NewConfig loads configuration from defaults, an optional config/.env.<env>
// file and ENV-prefixed environment variables, in increasing precedence.
func NewConfig() (*Config, error) {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("appName", "EduCRM")
	v.SetDefault("secretKey", "")
	v.SetDefault("frontendBaseURL", "http://localhost:3000")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("defaultFromName", "EduCRM")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.jwtExpirationDelta", 24*time.Hour)
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("database.engine", "postgres")
	v.SetDefault("database.name", "educrm")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.disableTLS", true)
	v.SetDefault("seed.superadminEmail", "")
	v.SetDefault("seed.superadminName", "")
	v.SetDefault("seed.superadminPassword", "")
	v.SetDefault("seed.adminEmail", "")
	v.SetDefault("seed.adminName", "")
	v.SetDefault("seed.adminPassword", "")

	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err = godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "checking %s", dotEnvPath)
	}

	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	conf := new(Config)
	if err := v.Unmarshal(conf); err != nil {
		return nil, errors.Wrap(err, "unmarshalling config")
	}
	conf.Env = env
	conf.TestMode = conf.TestMode || env == "TEST"

	if conf.SecretKey == "" {
		if !conf.Debug {
			return nil, errors.New("secretKey is required outside debug mode")
		}
		conf.SecretKey = "dev-secret-key-do-not-use-in-production"
	}
	return conf, nil
}

// DefaultFrom returns the default sender address for outgoing mail.
func (c *Config) DefaultFrom() mail.Address {
	return mail.Address{Name: c.DefaultFromName, Address: c.DefaultFromEmail}
}

// ServerAddress returns the host:port the API server binds to.
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// DatabaseAddress returns the host:port of the database server.
func (c *Config) DatabaseAddress() string {
	return fmt.Sprintf("%s:%d", c.Database.Host, c.Database.Port)
}
