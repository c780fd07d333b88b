package utils

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/alpacahq/bizcal/utils/log"
)

// Set via -ldflags at build time.
var (
	Tag        = "dev"
	GitHash    = "unknown"
	BuildStamp = "unknown"
)

const (
	defaultCalendar      = "target"
	defaultYearsAround   = 10
	defaultSettlementLag = 2
	defaultStoreDriver   = "memory"
)

type StoreSetting struct {
	Driver string
	DSN    string
}

// Config is the bizcal configuration, usually read from bizcal.yml.
type Config struct {
	Calendar      string
	StartYear     int
	EndYear       int
	SettlementLag int
	LogLevel      log.Level
	Store         StoreSetting
}

// DefaultConfig returns the configuration used without a config file:
// the TARGET calendar for ten years around now.
func DefaultConfig(now time.Time) *Config {
	return &Config{
		Calendar:      defaultCalendar,
		StartYear:     now.Year() - defaultYearsAround,
		EndYear:       now.Year() + defaultYearsAround,
		SettlementLag: defaultSettlementLag,
		LogLevel:      log.INFO,
		Store:         StoreSetting{Driver: defaultStoreDriver},
	}
}

// ParseConfig parses YAML config data on top of DefaultConfig(now).
func ParseConfig(data []byte, now time.Time) (*Config, error) {
	c := DefaultConfig(now)
	if err := c.Parse(data); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Parse(data []byte) error {
	var aux struct {
		Calendar      string `yaml:"calendar"`
		StartYear     *int   `yaml:"start_year"`
		EndYear       *int   `yaml:"end_year"`
		SettlementLag *int   `yaml:"settlement_lag"`
		LogLevel      string `yaml:"log_level"`
		Store         struct {
			Driver string `yaml:"driver"`
			DSN    string `yaml:"dsn"`
		} `yaml:"store"`
	}

	if err := yaml.Unmarshal(data, &aux); err != nil {
		return errors.Wrap(err, "parse config")
	}

	if aux.Calendar != "" {
		c.Calendar = strings.ToLower(aux.Calendar)
	}
	if aux.StartYear != nil {
		c.StartYear = *aux.StartYear
	}
	if aux.EndYear != nil {
		c.EndYear = *aux.EndYear
	}
	if c.StartYear > c.EndYear {
		return errors.Errorf("start_year %d is after end_year %d", c.StartYear, c.EndYear)
	}

	if aux.SettlementLag != nil {
		if *aux.SettlementLag < 0 {
			return errors.Errorf("settlement_lag must not be negative: %d", *aux.SettlementLag)
		}
		c.SettlementLag = *aux.SettlementLag
	}

	if aux.LogLevel != "" {
		level, err := log.ParseLevel(aux.LogLevel)
		if err != nil {
			return err
		}
		c.LogLevel = level
	}

	if aux.Store.Driver != "" {
		c.Store.Driver = strings.ToLower(aux.Store.Driver)
	}
	c.Store.DSN = aux.Store.DSN
	switch c.Store.Driver {
	case "memory":
	case "sqlite":
		if c.Store.DSN == "" {
			return errors.New("store.dsn is required for the sqlite driver")
		}
	default:
		return errors.Errorf("unknown store driver %q", c.Store.Driver)
	}

	return nil
}
