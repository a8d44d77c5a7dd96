package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"bmitracker/internal/domain"
)

func (c *cli) prefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change theme and unit system",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := c.loadServices(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Close()
			printPrefs(cmd.OutOrStdout(), svc.prefs.Current())
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:       "theme <light|dark|toggle>",
		Short:     "Set the theme",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"light", "dark", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.loadServices(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Close()

			var prefs domain.Preferences
			if args[0] == "toggle" {
				prefs, err = svc.prefs.ToggleTheme(cmd.Context())
			} else {
				var theme domain.Theme
				if theme, err = domain.ParseTheme(args[0]); err != nil {
					return err
				}
				prefs, err = svc.prefs.SetTheme(cmd.Context(), theme)
			}
			if err != nil {
				return err
			}
			printPrefs(cmd.OutOrStdout(), prefs)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:       "units <metric|imperial|toggle>",
		Short:     "Set the unit system",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"metric", "imperial", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.loadServices(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Close()

			var prefs domain.Preferences
			if args[0] == "toggle" {
				prefs, err = svc.prefs.ToggleUnitSystem(cmd.Context())
			} else {
				var units domain.UnitSystem
				if units, err = domain.ParseUnitSystem(args[0]); err != nil {
					return err
				}
				prefs, err = svc.prefs.SetUnitSystem(cmd.Context(), units)
			}
			if err != nil {
				return err
			}
			printPrefs(cmd.OutOrStdout(), prefs)
			return nil
		},
	})
	return cmd
}

func printPrefs(w io.Writer, p domain.Preferences) {
	fmt.Fprintf(w, "%s %s\n", headerStyle.Render("theme:"), p.Theme)
	fmt.Fprintf(w, "%s %s\n", headerStyle.Render("units:"), p.UnitSystem)
}
