package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Black-And-White-Club/irock/app"
	competitiondomain "github.com/Black-And-White-Club/irock/app/modules/competition/domain"
	"github.com/Black-And-White-Club/irock/app/shared/observability"
	"github.com/Black-And-White-Club/irock/config"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:  "irock",
		Usage: "climbing competition leaderboards and statistics",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"IROCK_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "serve the HTTP API and run the periodic sync",
				Action: serve,
			},
			{
				Name:   "sync",
				Usage:  "fetch one snapshot from the backend and print a summary",
				Action: syncOnce,
			},
			{
				Name:  "gate",
				Usage: "show the gate decision for a category at a given time",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "cup", Required: true, Usage: "category, e.g. intermedio"},
					&cli.StringFlag{Name: "at", Usage: `RFC3339 time or a phrase like "tomorrow 9am"; defaults to now`},
				},
				Action: gate,
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(c *cli.Context) (*app.App, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	obs, err := observability.New(config.ToObsConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize observability: %w", err)
	}

	return app.NewApp(c.Context, cfg, obs)
}

func serve(c *cli.Context) error {
	ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a, err := newApp(c)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Run(ctx); err != nil {
		return err
	}
	a.Logger.Info("Application shut down gracefully")
	return nil
}

func syncOnce(c *cli.Context) error {
	a, err := newApp(c)
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.CompetitionModule.Service.Sync(c.Context)
	if err != nil {
		return err
	}

	return printJSON(map[string]any{
		"snapshot_id":  res.Snapshot.ID,
		"fetched_at":   res.Snapshot.FetchedAt,
		"participants": len(res.Snapshot.Participants),
		"blocks":       len(res.Snapshot.Blocks),
		"ascensions":   len(res.Snapshot.Ascensions),
		"issues":       res.Issues,
		"persisted":    res.Persisted,
		"pruned":       res.Pruned,
	})
}

func gate(c *cli.Context) error {
	a, err := newApp(c)
	if err != nil {
		return err
	}
	defer a.Close()

	resp, err := a.AuthModule.GetService().Preview(c.Context, competitiondomain.Category(c.String("cup")), c.String("at"))
	if err != nil {
		return err
	}
	return printJSON(resp)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
