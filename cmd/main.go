package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alpacahq/bizcal/cmd/day"
	"github.com/alpacahq/bizcal/cmd/env"
	"github.com/alpacahq/bizcal/cmd/holidays"
	"github.com/alpacahq/bizcal/cmd/settle"
	"github.com/alpacahq/bizcal/utils"
)

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	e := env.New()
	// flagPrintVersion set flag to show current bizcal version.
	var flagPrintVersion bool

	// c is the root command.
	c := &cobra.Command{
		Use:   "bizcal",
		Short: "Business day calendars for settlement",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Don't output command usage for errors of well-formed commands
			cmd.SilenceUsage = true
			return e.Load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Print version if specified.
			if flagPrintVersion {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "version: %s\ncommit hash: %s\nutc build time: %s\n",
					utils.Tag, utils.GitHash, utils.BuildStamp)
				return err
			}
			// Print information regarding usage.
			return cmd.Usage()
		},
	}

	e.AddFlags(c.PersistentFlags())
	c.Flags().BoolVarP(&flagPrintVersion, "version", "v", false, "show the version info and exit")

	// Adds subcommands.
	c.AddCommand(day.Commands(e)...)
	c.AddCommand(holidays.NewCmd(e))
	c.AddCommand(holidays.NewCalendarsCmd(e))
	c.AddCommand(settle.NewCmd(e))

	return c
}

// Execute builds the command tree and executes commands.
func Execute() error {
	return NewRootCmd().Execute()
}
