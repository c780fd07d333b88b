// Package registry keeps built calendars for the lifetime of the process.
// A calendar is built the first time it is requested for a given name and
// year range and shared read-only afterwards. Concurrent first requests
// may build the same calendar more than once; only one result is kept.
package registry

import (
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/alpacahq/bizcal/calendar"
	"github.com/alpacahq/bizcal/calendar/defs"
	"github.com/alpacahq/bizcal/metrics"
	"github.com/alpacahq/bizcal/utils/log"
	"github.com/alpacahq/bizcal/utils/pool"
)

// RulesFunc returns the holiday rules of a named calendar.
type RulesFunc func(name string) ([]calendar.Rule, error)

type key struct {
	name       string
	start, end int
}

// Registry builds and caches calendars by name and year range.
type Registry struct {
	mu        sync.RWMutex
	calendars map[key]*calendar.Calendar
	custom    map[string][]calendar.Rule
	lookup    RulesFunc
	opts      []calendar.Option
	gen       uint64 // bumped by Register
}

// New returns a Registry resolving names with lookup, or with
// defs.Lookup when lookup is nil. opts are passed on to calendar.Build.
func New(lookup RulesFunc, opts ...calendar.Option) *Registry {
	if lookup == nil {
		lookup = defs.Lookup
	}
	return &Registry{
		calendars: map[key]*calendar.Calendar{},
		custom:    map[string][]calendar.Rule{},
		lookup:    lookup,
		opts:      opts,
	}
}

// Register adds a calendar under name, shadowing a calendar of the same
// name known to the lookup function. Calendars already built for name
// are dropped.
func (r *Registry) Register(name string, rules []calendar.Rule) {
	name = normalize(name)
	cp := make([]calendar.Rule, len(rules))
	copy(cp, rules)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.custom[name] = cp
	r.gen++
	for k := range r.calendars {
		if k.name == name {
			delete(r.calendars, k)
		}
	}
}

// Get returns the calendar name computed for the years start to end.
func (r *Registry) Get(name string, start, end int) (*calendar.Calendar, error) {
	k := key{name: normalize(name), start: start, end: end}

	r.mu.RLock()
	cal, ok := r.calendars[k]
	rules, custom := r.custom[k.name]
	gen := r.gen
	r.mu.RUnlock()
	if ok {
		return cal, nil
	}

	cal, err := r.build(k, rules, custom)
	metrics.CalendarBuildsTotal.WithLabelValues(k.name, metrics.Result(err)).Inc()
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// keep the calendar another goroutine stored in the meantime
	if built, ok := r.calendars[k]; ok {
		return built, nil
	}
	if gen == r.gen {
		r.calendars[k] = cal
	}
	return cal, nil
}

// Warm builds the calendars names for the years start to end with up to
// routines builds running concurrently. It returns the first error.
func (r *Registry) Warm(names []string, start, end, routines int) error {
	var (
		mu       sync.Mutex
		firstErr error
	)
	p := pool.NewPool(routines, func(name string) {
		if _, err := r.Get(name, start, end); err != nil {
			mu.Lock()
			if firstErr == nil {
				firstErr = err
			}
			mu.Unlock()
		}
	})

	c := make(chan string)
	go func() {
		defer close(c)
		for _, name := range names {
			c <- name
		}
	}()
	p.Work(c)
	p.Wait()
	return firstErr
}

func (r *Registry) build(k key, rules []calendar.Rule, custom bool) (*calendar.Calendar, error) {
	if !custom {
		var err error
		if rules, err = r.lookup(k.name); err != nil {
			return nil, err
		}
	}

	started := time.Now()
	cal, err := calendar.Build(rules, k.start, k.end, r.opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "build calendar %s for %d-%d", k.name, k.start, k.end)
	}
	metrics.CalendarBuildDuration.WithLabelValues(k.name).Observe(time.Since(started).Seconds())
	metrics.CalendarHolidays.WithLabelValues(k.name).Set(float64(len(cal.Holidays())))

	log.Info("built calendar %s for %d-%d in %v", k.name, k.start, k.end, time.Since(started))
	return cal, nil
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
