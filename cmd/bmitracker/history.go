package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"bmitracker/internal/adapter/export"
	"bmitracker/internal/domain"
	"bmitracker/internal/metrics"
)

func (c *cli) historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Manage the weight history",
	}
	cmd.AddCommand(c.historyAddCmd())
	cmd.AddCommand(c.historyListCmd())
	cmd.AddCommand(c.historyRemoveCmd())
	cmd.AddCommand(c.historyExportCmd())
	return cmd
}

// unitsFlag resolves --units against the preferred unit system.
func unitsFlag(value string, preferred domain.UnitSystem) (domain.UnitSystem, error) {
	if value == "" {
		return preferred, nil
	}
	return domain.ParseUnitSystem(value)
}

func (c *cli) historyAddCmd() *cobra.Command {
	var (
		date     string
		unit     string
		heightCm float64
		heightFt float64
		heightIn float64
	)

	cmd := &cobra.Command{
		Use:   "add <weight>",
		Short: "Record a weight",
		Long: `Record a weight for a date. The weight is given in --unit (default: the
preferred unit system's weight unit) and stored in kilograms. The entry's BMI
uses the height given by --height-cm or --height-ft/--height-in.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			weight, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid weight %q: %w", args[0], err)
			}

			ctx := cmd.Context()
			svc, err := c.loadServices(ctx)
			if err != nil {
				return err
			}
			defer svc.Close()

			prefs := svc.prefs.Current()
			current := domain.Measurement{System: domain.Metric, HeightCm: heightCm}
			if cmd.Flags().Changed("height-ft") || cmd.Flags().Changed("height-in") {
				current = domain.Measurement{System: domain.Imperial, HeightFt: heightFt, HeightIn: heightIn}
			}
			if unit == "" {
				unit = prefs.UnitSystem.WeightLabel()
			}
			if date == "" {
				date = time.Now().Format(domain.DateLayout)
			}

			entry, err := svc.history.AddMeasured(ctx, weight, strings.ToLower(unit), date, current)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s on %s, BMI %.1f %s (%s)\n",
				formatWeight(entry.WeightKg, prefs.UnitSystem), entry.Date, entry.BMI,
				categoryLabel(classifyOrEmpty(entry.BMI)), entry.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&unit, "unit", "", "weight unit: kg or lbs")
	cmd.Flags().Float64Var(&heightCm, "height-cm", 0, "current height in centimetres")
	cmd.Flags().Float64Var(&heightFt, "height-ft", 0, "current height, feet part")
	cmd.Flags().Float64Var(&heightIn, "height-in", 0, "current height, inches part")
	cmd.MarkFlagsMutuallyExclusive("height-cm", "height-ft")
	return cmd
}

func classifyOrEmpty(bmi float64) domain.Category {
	c, _ := domain.Classify(bmi)
	return c
}

func (c *cli) historyListCmd() *cobra.Command {
	var units string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded weights in date order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := c.loadServices(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Close()

			system, err := unitsFlag(units, svc.prefs.Current().UnitSystem)
			if err != nil {
				return err
			}
			entries := svc.history.List()
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, mutedStyle.Render("No history yet."))
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			defer w.Flush()
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				headerStyle.Render("Date"),
				headerStyle.Render("Weight"),
				headerStyle.Render("BMI"),
				headerStyle.Render("Category"),
				headerStyle.Render("ID"))
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%.1f\t%s\t%s\n",
					e.Date, formatWeight(e.WeightKg, system), e.BMI, classifyOrEmpty(e.BMI), e.ID)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&units, "units", "", "display units: metric or imperial (default: preference)")
	return cmd
}

func (c *cli) historyRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a history entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.loadServices(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Close()

			if err := svc.history.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		},
	}
}

func (c *cli) historyExportCmd() *cobra.Command {
	var (
		format string
		units  string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the history as PDF, XLSX or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			svc, err := c.loadServices(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Close()

			system, err := unitsFlag(units, svc.prefs.Current().UnitSystem)
			if err != nil {
				return err
			}
			now := time.Now()
			data, err := export.Render(f, svc.history.List(), system, now)
			metrics.ObserveExport(string(f), err)
			if err != nil {
				return fmt.Errorf("render %s: %w", f, err)
			}

			if output == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if output == "" {
				output = f.Filename(now)
			}
			if err := os.WriteFile(output, data, 0o600); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "pdf", "export format: pdf, xlsx or yaml")
	cmd.Flags().StringVar(&units, "units", "", "display units: metric or imperial (default: preference)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default: generated name)")
	return cmd
}
