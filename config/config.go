package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"
)

type Server struct {
	ListenAddress string        `yaml:"listen_address"`
	ReadTimeout   time.Duration `yaml:"read_timeout"`
	WriteTimeout  time.Duration `yaml:"write_timeout"`
	IdleTimeout   time.Duration `yaml:"idle_timeout"`
	TemplatesGlob string        `yaml:"templates_glob"`
	StaticDir     string        `yaml:"static_dir"`
	GinMode       string        `yaml:"gin_mode"`
}

type Database struct {
	Driver string `yaml:"driver"` // sqlite or postgres
	DSN    string `yaml:"dsn"`
}

type Display struct {
	Timezone string `yaml:"timezone"`
	PageSize int    `yaml:"page_size"`
}

type Phone struct {
	DefaultCountryCode string `yaml:"default_country_code"`
}

type Notifications struct {
	Duration time.Duration `yaml:"duration"`
}

type Limits struct {
	MentionScan    int `yaml:"mention_scan"`
	TimelineFetch  int `yaml:"timeline_fetch"`
	BannerKeywords int `yaml:"banner_keywords"`
}

type Auth struct {
	SessionTTL   time.Duration `yaml:"session_ttl"`
	SecureCookie bool          `yaml:"secure_cookie"`
	PurgeSpec    string        `yaml:"purge_schedule"`
}

type Ingest struct {
	Token string `yaml:"token"`
}

type Config struct {
	Server        Server        `yaml:"server"`
	Database      Database      `yaml:"database"`
	Display       Display       `yaml:"display"`
	Phone         Phone         `yaml:"phone"`
	Notifications Notifications `yaml:"notifications"`
	Limits        Limits        `yaml:"limits"`
	Auth          Auth          `yaml:"auth"`
	Ingest        Ingest        `yaml:"ingest"`
}

// Defaults returns a Config with every default filled in.
func Defaults() Config {
	return Config{
		Server: Server{
			ListenAddress: ":8090",
			ReadTimeout:   10 * time.Second,
			WriteTimeout:  30 * time.Second,
			IdleTimeout:   60 * time.Second,
			TemplatesGlob: "templates/*",
			StaticDir:     "./static",
			GinMode:       "release",
		},
		Database: Database{
			Driver: "sqlite",
			DSN:    "./radar.db",
		},
		Display: Display{
			Timezone: "America/Sao_Paulo",
			PageSize: 5,
		},
		Phone: Phone{DefaultCountryCode: "55"},
		Notifications: Notifications{
			Duration: 5 * time.Second,
		},
		Limits: Limits{
			MentionScan:    1000,
			TimelineFetch:  1000,
			BannerKeywords: 20,
		},
		Auth: Auth{
			SessionTTL: 7 * 24 * time.Hour,
			PurgeSpec:  "@hourly",
		},
	}
}

// Load reads the YAML file at path over the defaults. A missing file is not
// an error: the defaults plus environment overrides are used.
// RADAR_CONFIG overrides path; RADAR_DB_DSN and RADAR_INGEST_TOKEN override
// the matching settings.
func Load(path string) (Config, error) {
	if env := os.Getenv("RADAR_CONFIG"); env != "" {
		path = env
	}
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse yaml: %w", err)
			}
		}
	}

	if env := os.Getenv("RADAR_DB_DSN"); env != "" {
		cfg.Database.DSN = env
	}
	if env := os.Getenv("RADAR_INGEST_TOKEN"); env != "" {
		cfg.Ingest.Token = env
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("database.driver must be sqlite or postgres, got %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database.dsn is required")
	}
	if _, err := time.LoadLocation(c.Display.Timezone); err != nil {
		return fmt.Errorf("display.timezone: %w", err)
	}
	if c.Display.PageSize <= 0 {
		return fmt.Errorf("display.page_size must be positive, got %d", c.Display.PageSize)
	}
	if c.Notifications.Duration <= 0 {
		return fmt.Errorf("notifications.duration must be positive, got %s", c.Notifications.Duration)
	}
	if c.Limits.MentionScan <= 0 || c.Limits.TimelineFetch <= 0 {
		return errors.New("limits.mention_scan and limits.timeline_fetch must be positive")
	}
	if c.Auth.SessionTTL <= 0 {
		return errors.New("auth.session_ttl must be positive")
	}
	for _, ch := range c.Phone.DefaultCountryCode {
		if ch < '0' || ch > '9' {
			return fmt.Errorf("phone.default_country_code must be digits, got %q", c.Phone.DefaultCountryCode)
		}
	}
	return nil
}

// Location is the viewer time zone used for display and date filtering.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Display.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
