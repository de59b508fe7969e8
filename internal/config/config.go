package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/hunters/internal/spatial"
)

// Environment overrides.
const (
	EnvConfigPath = "HUNTERS_CONFIG"
	EnvDSN        = "HUNTERS_DB_DSN"
	EnvAPIKeyHash = "HUNTERS_API_KEY_HASH"
	EnvLogLevel   = "HUNTERS_LOG_LEVEL"
)

// DefaultPath is used when HUNTERS_CONFIG is unset.
const DefaultPath = "config/hunterd.yaml"

// Hunterd holds all configuration for the hunters daemon.
type Hunterd struct {
	Log      LogConfig      `yaml:"log"`
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Spawn    SpawnConfig    `yaml:"spawn"`
	Player   PlayerConfig   `yaml:"player"`
	Combat   CombatConfig   `yaml:"combat"`
	Session  SessionConfig  `yaml:"session"`
	Persist  PersistConfig  `yaml:"persist"`
	Spatial  SpatialConfig  `yaml:"spatial"`
}

// LogConfig configures slog.
type LogConfig struct {
	Level       string `yaml:"level" validate:"oneof=debug info warn error"`
	Format      string `yaml:"format" validate:"oneof=text json"`
	Service     string `yaml:"service"`
	Version     string `yaml:"version"`
	Environment string `yaml:"environment"`
}

// HTTPConfig configures the client-facing API.
type HTTPConfig struct {
	Addr string `yaml:"addr" validate:"required"`
	// APIKeyHash is a bcrypt hash of the API key clients send in X-API-Key.
	// Empty disables the check.
	APIKeyHash      string        `yaml:"api_key_hash"`
	ReadTimeout     time.Duration `yaml:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	DSN      string `yaml:"dsn"` // overrides the fields below when set
	Host     string `yaml:"host" validate:"required_if=Enabled true"`
	Port     int    `yaml:"port" validate:"gte=0,lte=65535"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
	MaxConns int32  `yaml:"max_conns" validate:"gte=0"` // 0 → pgxpool default
}

// ConnString returns the PostgreSQL connection string.
func (d DatabaseConfig) ConnString() string {
	if d.DSN != "" {
		return d.DSN
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// CatalogConfig points to an external catalog directory; empty uses the embedded one.
type CatalogConfig struct {
	Dir string `yaml:"dir"`
}

// SpawnConfig — параметры планировщика спавна.
type SpawnConfig struct {
	Interval    time.Duration `yaml:"interval" validate:"gte=100ms"`
	MaxMonsters int           `yaml:"max_monsters" validate:"gte=1"`
	MinRadius   float64       `yaml:"min_radius" validate:"gte=0"`
	MaxRadius   float64       `yaml:"max_radius" validate:"gtefield=MinRadius"`
	ArcDegrees  float64       `yaml:"arc_degrees" validate:"gte=0,lte=360"`
}

// PlayerConfig holds new-player defaults.
type PlayerConfig struct {
	MaxHP        int32            `yaml:"max_hp" validate:"gte=1"`
	StarterItems map[string]int32 `yaml:"starter_items" validate:"dive,gte=1"`
}

// CombatConfig tunes combat resolution.
type CombatConfig struct {
	RevealOnPossession bool          `yaml:"reveal_on_possession"`
	ProtectionDuration time.Duration `yaml:"protection_duration" validate:"gte=0"`
}

// SessionConfig bounds player sessions.
type SessionConfig struct {
	IdleTimeout time.Duration `yaml:"idle_timeout" validate:"gte=1s"`
	MaxSessions int           `yaml:"max_sessions" validate:"gte=1"`
}

// PersistConfig sizes the asynchronous writer.
type PersistConfig struct {
	Workers      int           `yaml:"workers" validate:"gte=1"`
	QueueSize    int           `yaml:"queue_size" validate:"gte=1"`
	WriteTimeout time.Duration `yaml:"write_timeout" validate:"gte=0"`
}

// SpatialConfig lists known crossroads.
type SpatialConfig struct {
	Crossroads       []spatial.GeoPoint `yaml:"crossroads" validate:"dive"`
	CrossroadsRadius float64            `yaml:"crossroads_radius" validate:"gte=0"`
}

// DefaultHunterd returns config with sensible defaults.
func DefaultHunterd() Hunterd {
	return Hunterd{
		Log: LogConfig{
			Level:       "info",
			Format:      "text",
			Service:     "hunterd",
			Version:     "dev",
			Environment: "development",
		},
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			Enabled:  false,
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "hunters",
			Password: "hunters",
			DBName:   "hunters",
			SSLMode:  "disable",
			MaxConns: 8,
		},
		Spawn: SpawnConfig{
			Interval:    5 * time.Second,
			MaxMonsters: 3,
			MinRadius:   3,
			MaxRadius:   10,
			ArcDegrees:  180,
		},
		Player: PlayerConfig{
			MaxHP: 100,
			StarterItems: map[string]int32{
				"iron_bar":      1,
				"knife":         1,
				"old_camera":    1,
				"silver_bullet": 6,
				"revolver":      1,
				"salt_bag":      3,
				"first_aid":     2,
			},
		},
		Combat: CombatConfig{
			RevealOnPossession: true,
			ProtectionDuration: 30 * time.Second,
		},
		Session: SessionConfig{
			IdleTimeout: 30 * time.Minute,
			MaxSessions: 10_000,
		},
		Persist: PersistConfig{
			Workers:      4,
			QueueSize:    1024,
			WriteTimeout: 5 * time.Second,
		},
		Spatial: SpatialConfig{
			CrossroadsRadius: 25,
		},
	}
}

// LoadHunterd loads config from a YAML file, applies environment overrides and validates.
// If the file doesn't exist, defaults are used.
func LoadHunterd(path string) (Hunterd, error) {
	cfg := DefaultHunterd()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}
	return cfg, nil
}

// PathFromEnv returns HUNTERS_CONFIG or DefaultPath.
func PathFromEnv() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return DefaultPath
}

func (c *Hunterd) applyEnv() {
	if dsn := os.Getenv(EnvDSN); dsn != "" {
		c.Database.DSN = dsn
		c.Database.Enabled = true
	}
	if h := os.Getenv(EnvAPIKeyHash); h != "" {
		c.HTTP.APIKeyHash = h
	}
	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		c.Log.Level = lvl
	}
}

// Validate checks struct tags.
func (c *Hunterd) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%s: failed %q %s", fe.Namespace(), fe.Tag(), fe.Param())
		}
		return err
	}
	return nil
}
