package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/MrJamesThe3rd/casa/internal/database"
	"github.com/MrJamesThe3rd/casa/internal/encoding"
)

// ErrInMemoryDatabase rejects sqlite DSNs that live only in memory. Migrations run on
// their own connection, so the schema would never reach the app's database.
var ErrInMemoryDatabase = errors.New("in-memory sqlite database is not supported")

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Casa"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Driver   string `envconfig:"DB_DRIVER" default:"sqlite"`
		Path     string `envconfig:"DB_PATH" default:"data/casa.db"`
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"casa"`
	}

	Server struct {
		Timeout     time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		CORSOrigins []string      `envconfig:"CORS_ORIGINS" default:"*"`
	}

	Household struct {
		File string `envconfig:"HOUSEHOLD_FILE" default:"casa.toml"`
	}

	Report struct {
		Currency  string `envconfig:"REPORT_CURRENCY" default:"€"`
		Charset   string `envconfig:"REPORT_CHARSET" default:"utf-8"`
		ExportDir string `envconfig:"EXPORT_DIR" default:"."`
	}

	Log struct {
		Level string `envconfig:"LOG_LEVEL" default:"info"`
	}
}

// Driver returns the configured storage backend.
func (c *Config) Driver() (database.Driver, error) {
	return database.ParseDriver(c.DB.Driver)
}

// ConnectionString is the sqlite file path or a postgres URL, depending on DB_DRIVER.
func (c *Config) ConnectionString() string {
	if d, _ := c.Driver(); d == database.Postgres {
		return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
			c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
	}

	return c.DB.Path
}

func (c *Config) Charset() (encoding.Charset, error) {
	return encoding.ParseCharset(c.Report.Charset)
}

func isMemoryDSN(path string) bool {
	p := strings.ToLower(strings.TrimSpace(path))

	return p == ":memory:" || strings.HasPrefix(p, "file::memory:") || strings.Contains(p, "mode=memory")
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	driver, err := cfg.Driver()
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if driver == database.SQLite && isMemoryDSN(cfg.DB.Path) {
		return nil, fmt.Errorf("invalid config: DB_PATH %q: %w", cfg.DB.Path, ErrInMemoryDatabase)
	}

	if _, err := cfg.Charset(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
