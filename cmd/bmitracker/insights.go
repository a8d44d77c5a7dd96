package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bmitracker/internal/app"
)

func (c *cli) insightsCmd() *cobra.Command {
	var flags measurementFlags

	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Ask for short lifestyle insights for a measurement",
		Long: `Compute BMI for the given measurement and ask the configured text-generation
service for a short paragraph of lifestyle tips. Set insights.api_key,
BMI_INSIGHTS_API_KEY or GEMINI_API_KEY to enable it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := c.loadServices(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Close()

			m := flags.measurement(cmd, svc.prefs.Current().UnitSystem)
			res := app.Evaluate(m)
			text := svc.insights.Request(cmd.Context(), app.RequestFor(m, res))
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
