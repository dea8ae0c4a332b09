// Package config loads the process configuration. The configuration is
// built once at startup and passed by parameter; nothing reads it
// globally afterwards.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/Zhyangithub/eataway-router/internal/tabular"
)

type Config struct {
	HTTP       HTTPConfig       `json:"http"`
	Directions DirectionsConfig `json:"directions"`
	Warehouse  WarehouseConfig  `json:"warehouse"`
	Drivers    []string         `json:"drivers"`
	Tables     TablesConfig     `json:"tables"`
	Pipeline   PipelineConfig   `json:"pipeline"`
	Schedule   ScheduleConfig   `json:"schedule"`
	Database   DatabaseConfig   `json:"database"`
	Redis      RedisConfig      `json:"redis"`
	SMTP       SMTPConfig       `json:"smtp"`
}

type HTTPConfig struct {
	Addr string `json:"addr"`
}

type DirectionsConfig struct {
	APIKey string `json:"api_key"`
}

type WarehouseConfig struct {
	Name string `json:"name"`
	Lat  string `json:"lat"`
	Lng  string `json:"lng"`
}

type TablesConfig struct {
	Coordinates string `json:"coordinates"`
	Routes      string `json:"routes"`
}

type PipelineConfig struct {
	MaxWaypointsPerLink int    `json:"max_waypoints_per_link"`
	HeaderScanRows      int    `json:"header_scan_rows"`
	HeaderMarker        string `json:"header_marker"`
}

type ScheduleConfig struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

type DatabaseConfig struct {
	// URL is a postgres:// URL or a SQLite file path.
	URL string `json:"url"`
}

type RedisConfig struct {
	// Addr empty disables the route cache.
	Addr       string `json:"addr"`
	Password   string `json:"password"`
	DB         int    `json:"db"`
	TTLMinutes int    `json:"ttl_minutes"`
}

type SMTPConfig struct {
	// Host empty disables emailed itineraries.
	Host       string   `json:"host"`
	Port       int      `json:"port"`
	Username   string   `json:"username"`
	Password   string   `json:"password"`
	From       string   `json:"from"`
	Recipients []string `json:"recipients"`
}

func (c *Config) setDefaults() {
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":5050"
	}
	if c.Warehouse.Name == "" {
		c.Warehouse.Name = "Lager (Uppsala)"
	}
	if c.Tables.Coordinates == "" {
		c.Tables.Coordinates = "data/coords.xlsx"
	}
	if c.Tables.Routes == "" {
		c.Tables.Routes = "data/routes.xlsx"
	}
	if c.Pipeline.MaxWaypointsPerLink == 0 {
		c.Pipeline.MaxWaypointsPerLink = 10
	}
	if c.Pipeline.HeaderScanRows == 0 {
		c.Pipeline.HeaderScanRows = tabular.DefaultHeaderScanRows
	}
	if c.Pipeline.HeaderMarker == "" {
		c.Pipeline.HeaderMarker = tabular.DefaultHeaderMarker
	}
	if c.Schedule.Hour == 0 && c.Schedule.Minute == 0 {
		c.Schedule.Hour = 7
	}
	if c.Database.URL == "" {
		c.Database.URL = "data/eataway.db"
	}
	if c.Redis.TTLMinutes == 0 {
		c.Redis.TTLMinutes = 30
	}
	if c.SMTP.Port == 0 {
		c.SMTP.Port = 587
	}
}

func (c *Config) validate() error {
	if c.Directions.APIKey == "" {
		return fmt.Errorf("directions.api_key is required (or set EATAWAY_DIRECTIONS__API_KEY)")
	}
	if c.Warehouse.Lat == "" || c.Warehouse.Lng == "" {
		return fmt.Errorf("warehouse.lat and warehouse.lng are required")
	}
	if len(c.Drivers) == 0 {
		return fmt.Errorf("at least one driver is required")
	}
	if c.Pipeline.MaxWaypointsPerLink < 1 {
		return fmt.Errorf("pipeline.max_waypoints_per_link must be positive")
	}
	if c.Schedule.Hour < 0 || c.Schedule.Hour > 23 || c.Schedule.Minute < 0 || c.Schedule.Minute > 59 {
		return fmt.Errorf("schedule hour/minute out of range")
	}
	return nil
}

// Load reads a yaml or json configuration file and applies
// EATAWAY_-prefixed environment overrides, "__" separating key levels
// (EATAWAY_DIRECTIONS__API_KEY -> directions.api_key).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", path)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("load config %q: %w", path, err)
	}

	if err := k.Load(env.Provider("EATAWAY_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "eataway_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("load env overrides: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
