package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Black-And-White-Club/irock/app/shared/observability/attr"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

// Run serves HTTP, runs the message router and the sync scheduler until ctx
// is cancelled, then shuts the server down.
func (app *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              app.Config.HTTP.Address,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	app.wg.Add(1)
	go app.CompetitionModule.Run(ctx, &app.wg)

	if app.MessageRouter != nil {
		g.Go(func() error {
			if err := app.MessageRouter.Run(ctx); err != nil {
				return fmt.Errorf("message router stopped: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		app.Logger.InfoContext(ctx, "Starting HTTP server", attr.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		app.Logger.Info("Shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
