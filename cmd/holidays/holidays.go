// Package holidays implements the holidays and calendars subcommands.
package holidays

import (
	"fmt"
	"runtime"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/alpacahq/bizcal/calendar/defs"
	"github.com/alpacahq/bizcal/cmd/env"
	"github.com/alpacahq/bizcal/utils/date"
)

const (
	usage   = "holidays"
	short   = "List the holidays of the calendar"
	long    = "This command lists all holidays the calendar knows for its range of years"
	example = "bizcal holidays --calendar uk --from 2022 --to 2022 --json"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type listing struct {
	Calendar string      `json:"calendar"`
	Start    int         `json:"start"`
	End      int         `json:"end"`
	Weekend  []string    `json:"weekend"`
	Holidays []date.Date `json:"holidays"`
}

// NewCmd returns the holidays command bound to e.
func NewCmd(e *env.Env) *cobra.Command {
	var asJSON bool
	c := &cobra.Command{
		Use:     usage,
		Short:   short,
		Long:    long,
		Example: example,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cal, err := e.BusinessCalendar()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if !asJSON {
				for _, d := range cal.Holidays() {
					if _, err := fmt.Fprintf(out, "%s %s\n", d, d.Weekday()); err != nil {
						return err
					}
				}
				return nil
			}

			l := listing{Calendar: e.Config.Calendar, Holidays: cal.Holidays()}
			l.Start, l.End = cal.Range()
			for _, w := range cal.Weekend() {
				l.Weekend = append(l.Weekend, w.String())
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(l)
		},
	}
	c.Flags().BoolVar(&asJSON, "json", false, "print the calendar as JSON")
	return c
}

// NewCalendarsCmd returns the command listing the predefined calendars
// with the number of holidays in the configured range of years.
func NewCalendarsCmd(e *env.Env) *cobra.Command {
	return &cobra.Command{
		Use:   "calendars",
		Short: "List the predefined calendars",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names := defs.Names()
			start, end := e.Config.StartYear, e.Config.EndYear
			if err := e.Registry.Warm(names, start, end, runtime.NumCPU()); err != nil {
				return err
			}
			for _, name := range names {
				cal, err := e.Registry.Get(name, start, end)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%-8s %d-%d %d holidays\n",
					name, start, end, len(cal.Holidays()))
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
}
