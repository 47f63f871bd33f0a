package main

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"

	"github.com/atinyakov/HoloFavs/internal/client/api"
	"github.com/atinyakov/HoloFavs/internal/client/store"
	"github.com/atinyakov/HoloFavs/internal/config"
	"github.com/atinyakov/HoloFavs/internal/logger"
	"github.com/atinyakov/HoloFavs/internal/models"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	opts  config.ClientOptions
	log   *zap.Logger
	store *store.Store
}

// newRootCmd builds the command tree. opts supplies flag defaults, so
// flags override the environment.
func newRootCmd(opts config.ClientOptions) *cobra.Command {
	a := &app{opts: opts}

	root := &cobra.Command{
		Use:          "holofavs",
		Short:        "Browse the Star Wars catalog and keep favorites",
		Version:      fmt.Sprintf("%s (built %s)", cmp.Or(version, "N/A"), cmp.Or(buildDate, "N/A")),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.opts.SWAPIURL, "swapi-url", opts.SWAPIURL, "SWAPI base URL")
	f.StringVar(&a.opts.BackendURL, "backend-url", opts.BackendURL, "favorites backend base URL")
	f.Int64VarP(&a.opts.UserID, "user", "u", opts.UserID, "user the favorites belong to")
	f.DurationVar(&a.opts.Timeout, "timeout", opts.Timeout, "per-request timeout")
	f.BoolVar(&a.opts.Rollback, "rollback", opts.Rollback, "undo local favorite changes the backend rejects")
	f.StringVarP(&a.opts.LogLevel, "log-level", "l", opts.LogLevel, "log level (debug, info, warn, error)")

	root.AddCommand(
		a.listCmd("characters", models.People),
		a.listCmd("vehicles", models.Vehicles),
		a.listCmd("planets", models.Planets),
		a.detailsCmd(),
		a.shellCmd(),
	)
	return root
}

func (a *app) init() error {
	if err := a.opts.Validate(); err != nil {
		return err
	}
	log, err := logger.NewConsole(a.opts.LogLevel)
	if err != nil {
		return err
	}
	a.log = log

	client := api.NewHTTPClient(a.opts.Timeout, log)
	a.store = store.New(
		api.NewSWAPI(a.opts.SWAPIURL, client),
		api.NewFavorites(a.opts.BackendURL, client),
		store.Options{
			UserID:            a.opts.UserID,
			RollbackOnFailure: a.opts.Rollback,
			Logger:            log,
		},
	)
	return nil
}

// parseKind accepts the entity type names used on the command line.
func parseKind(s string) (models.EntityType, error) {
	switch strings.ToLower(s) {
	case "people", "person", "character", "characters":
		return models.People, nil
	case "vehicle", "vehicles":
		return models.Vehicles, nil
	case "planet", "planets":
		return models.Planets, nil
	}
	return "", fmt.Errorf("unknown type %q (want characters, vehicles or planets)", s)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
