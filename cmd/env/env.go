// Package env holds the state shared by all bizcal subcommands: the
// configuration, the calendar registry and access to the record store.
package env

import (
	"context"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alpacahq/bizcal/calendar"
	"github.com/alpacahq/bizcal/calendar/registry"
	"github.com/alpacahq/bizcal/store"
	"github.com/alpacahq/bizcal/store/memory"
	"github.com/alpacahq/bizcal/store/sqlite"
	"github.com/alpacahq/bizcal/utils"
	"github.com/alpacahq/bizcal/utils/log"
)

const (
	configFlag            = "config"
	defaultConfigFilePath = "./bizcal.yml"
	configDesc            = "set the path for the bizcal YAML configuration file"
	calendarDesc          = "calendar to use (overrides the config file)"
	fromDesc              = "first year of the calendar (overrides the config file)"
	toDesc                = "last year of the calendar (overrides the config file)"
)

type Env struct {
	ConfigPath string
	Calendar   string
	From, To   int

	Config   *utils.Config
	Registry *registry.Registry
	Now      func() time.Time
}

func New() *Env {
	return &Env{
		Registry: registry.New(nil),
		Now:      time.Now,
	}
}

// AddFlags registers the global flags on fs.
func (e *Env) AddFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&e.ConfigPath, configFlag, "c", defaultConfigFilePath, configDesc)
	fs.StringVar(&e.Calendar, "calendar", "", calendarDesc)
	fs.IntVar(&e.From, "from", 0, fromDesc)
	fs.IntVar(&e.To, "to", 0, toDesc)
}

// Load reads the configuration file and applies the flag overrides. A
// missing config file is only an error if its path was given explicitly.
func (e *Env) Load(cmd *cobra.Command) error {
	data, err := os.ReadFile(e.ConfigPath)
	switch {
	case err == nil:
		log.Debug("using %v for configuration", e.ConfigPath)
	case os.IsNotExist(err) && !cmd.Flags().Changed(configFlag):
		data = nil
	default:
		return errors.Wrap(err, "failed to read configuration file")
	}

	cfg, err := utils.ParseConfig(data, e.Now())
	if err != nil {
		return err
	}
	if e.Calendar != "" {
		cfg.Calendar = e.Calendar
	}
	if e.From != 0 {
		cfg.StartYear = e.From
	}
	if e.To != 0 {
		cfg.EndYear = e.To
	}
	log.SetLevel(cfg.LogLevel)

	e.Config = cfg
	return nil
}

// BusinessCalendar returns the configured calendar.
func (e *Env) BusinessCalendar() (*calendar.Calendar, error) {
	if e.Config == nil {
		return nil, errors.New("configuration not loaded")
	}
	return e.Registry.Get(e.Config.Calendar, e.Config.StartYear, e.Config.EndYear)
}

// PersistentStore reports whether the configured store keeps its records
// between runs. The memory store starts empty every time.
func (e *Env) PersistentStore() bool {
	return e.Config != nil && e.Config.Store.Driver != "memory"
}

// OpenStore opens the configured record store. The returned function
// releases it.
func (e *Env) OpenStore(ctx context.Context) (store.DataHandler, func() error, error) {
	if e.Config == nil {
		return nil, nil, errors.New("configuration not loaded")
	}
	switch e.Config.Store.Driver {
	case "sqlite":
		db, err := sqlite.Open(ctx, e.Config.Store.DSN)
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	default:
		return memory.New(), func() error { return nil }, nil
	}
}
