package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	adapthttp "bmitracker/internal/adapter/http"
	"bmitracker/internal/app"
	"bmitracker/internal/metrics"
)

func (c *cli) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API and Prometheus metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			svc, err := c.loadServices(ctx)
			if err != nil {
				return err
			}
			defer svc.Close()

			metrics.Init(func() float64 { return float64(svc.history.Len()) })

			h := adapthttp.New(svc.prefs, svc.history, svc.insights, &app.InsightTracker{}, adapthttp.Options{
				CORSOrigins:  c.cfg.HTTP.CORSOrigins,
				PasswordHash: c.cfg.HTTP.PasswordHash,
				Logger:       c.logger,
			}).Handler()

			srv := &http.Server{
				Addr:              c.cfg.HTTP.Addr,
				Handler:           h,
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				c.logger.Info("listening", "addr", srv.Addr, "store", c.cfg.Store.Driver)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().String("addr", "", "listen address (default :8080)")
	_ = c.v.BindPFlag("http.addr", cmd.Flags().Lookup("addr"))
	return cmd
}
