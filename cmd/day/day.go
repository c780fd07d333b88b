// Package day implements the subcommands answering questions about single
// days: check, next, prev, add and count.
package day

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/alpacahq/bizcal/cmd/env"
	"github.com/alpacahq/bizcal/utils/date"
)

// Commands returns the day subcommands bound to e.
func Commands(e *env.Env) []*cobra.Command {
	return []*cobra.Command{
		{
			Use:     "check DATE",
			Short:   "Tell whether a date is a business day",
			Example: "bizcal check 2019-11-24",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return check(cmd, e, args[0])
			},
		},
		{
			Use:     "next DATE",
			Short:   "Print the first business day after DATE",
			Example: "bizcal next 2020-04-09 --calendar target",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return shift(cmd, e, args[0], "1")
			},
		},
		{
			Use:     "prev DATE",
			Short:   "Print the last business day before DATE",
			Example: "bizcal prev 2020-04-14 --calendar target",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return shift(cmd, e, args[0], "-1")
			},
		},
		{
			Use:     "add DATE N",
			Short:   "Print the date N business days after (or before, if negative) DATE",
			Example: "bizcal add 2020-04-09 2",
			Args:    cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return shift(cmd, e, args[0], args[1])
			},
		},
		{
			Use:     "count FROM TO",
			Short:   "Count the business days after FROM up to and including TO",
			Example: "bizcal count 2020-01-01 2020-12-31",
			Args:    cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return count(cmd, e, args[0], args[1])
			},
		},
	}
}

func check(cmd *cobra.Command, e *env.Env, arg string) error {
	d, err := date.ParseDate(arg)
	if err != nil {
		return err
	}
	cal, err := e.BusinessCalendar()
	if err != nil {
		return err
	}

	var what []string
	if cal.IsWeekend(d) {
		what = append(what, "weekend")
	}
	if cal.IsHoliday(d) {
		what = append(what, "holiday")
	}
	if cal.IsBusinessDay(d) {
		what = append(what, "business day")
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", d, d.Weekday(), strings.Join(what, ", "))
	return err
}

func shift(cmd *cobra.Command, e *env.Env, arg, nArg string) error {
	d, err := date.ParseDate(arg)
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(nArg)
	if err != nil {
		return errors.Wrapf(err, "invalid number of business days %q", nArg)
	}
	cal, err := e.BusinessCalendar()
	if err != nil {
		return err
	}

	res, err := cal.AddBusinessDays(d, n)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), res)
	return err
}

func count(cmd *cobra.Command, e *env.Env, fromArg, toArg string) error {
	from, err := date.ParseDate(fromArg)
	if err != nil {
		return err
	}
	to, err := date.ParseDate(toArg)
	if err != nil {
		return err
	}
	cal, err := e.BusinessCalendar()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), cal.CountBusinessDays(from, to))
	return err
}
