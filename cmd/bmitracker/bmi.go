package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"bmitracker/internal/app"
	"bmitracker/internal/domain"
)

func (c *cli) bmiCmd() *cobra.Command {
	var (
		flags measurementFlags
		save  bool
		date  string
	)

	cmd := &cobra.Command{
		Use:   "bmi",
		Short: "Compute BMI and category for a measurement",
		Example: `  bmitracker bmi --height-cm 180 --weight-kg 75
  bmitracker bmi --height-ft 5 --height-in 9 --weight-lbs 154 --save`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			svc, err := c.loadServices(ctx)
			if err != nil {
				return err
			}
			defer svc.Close()

			m := flags.measurement(cmd, svc.prefs.Current().UnitSystem)
			res := app.Evaluate(m)
			out := cmd.OutOrStdout()
			if !res.Valid {
				fmt.Fprintln(out, "Enter a positive height and weight to compute BMI.")
				return nil
			}
			fmt.Fprintf(out, "BMI: %.1f  %s\n", res.Rounded, categoryLabel(res.Category))
			if res.Details != nil {
				fmt.Fprintln(out, mutedStyle.Render(res.Details.Description))
			}

			if !save {
				return nil
			}
			if date == "" {
				date = time.Now().Format(domain.DateLayout)
			}
			entry, err := svc.history.Add(ctx, m.WeightKg(), date, m.HeightM())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Saved %s on %s (%s)\n", formatWeight(entry.WeightKg, m.System), entry.Date, entry.ID)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&save, "save", false, "also record the weight in the history")
	cmd.Flags().StringVar(&date, "date", "", "history date as YYYY-MM-DD (default today)")
	return cmd
}
