// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/danielhkuo/today-i-learned/facts"
	"github.com/danielhkuo/today-i-learned/store"
)

// Config keys
const (
	keyStore       = "store"
	keyDatabaseURL = "database_url"
	keyRESTURL     = "rest_url"
	keyRESTKey     = "rest_key"
	keyTable       = "table"
	keyTimeout     = "timeout"
	keyOutput      = "output"
	keyVerbose     = "verbose"
)

// app carries what every subcommand needs
type app struct {
	v       *viper.Viper
	cfgFile string
}

// Execute runs the root command against os.Args
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the til command tree with its own configuration
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "til",
		Short: "Today I Learned - browse, share and vote on facts",
		Long: `til is a terminal client for Today I Learned.

It talks to the same store as the web server: a hosted REST table,
PostgreSQL or a local SQLite file.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (TIL_*)
3. Config file (~/.til/config.yaml)
4. Defaults`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: $HOME/.til/config.yaml)")
	flags.String("store", store.TypeSQLite, "store type (rest, postgres, sqlite)")
	flags.String("database-url", "file:facts.db", "database URL for postgres or sqlite")
	flags.String("rest-url", "", "hosted project URL for the rest store")
	flags.String("rest-key", "", "API key for the rest store (prefer TIL_REST_KEY)")
	flags.String("table", "facts", "table name for the rest store")
	flags.Duration("timeout", 10*time.Second, "timeout for each store request")
	flags.StringP("output", "o", "table", "output format (table, json, yaml)")
	flags.BoolP("verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = a.v.BindPFlag(keyStore, flags.Lookup("store"))
	_ = a.v.BindPFlag(keyDatabaseURL, flags.Lookup("database-url"))
	_ = a.v.BindPFlag(keyRESTURL, flags.Lookup("rest-url"))
	_ = a.v.BindPFlag(keyRESTKey, flags.Lookup("rest-key"))
	_ = a.v.BindPFlag(keyTable, flags.Lookup("table"))
	_ = a.v.BindPFlag(keyTimeout, flags.Lookup("timeout"))
	_ = a.v.BindPFlag(keyOutput, flags.Lookup("output"))
	_ = a.v.BindPFlag(keyVerbose, flags.Lookup("verbose"))

	rootCmd.AddCommand(
		a.newFactsCmd(),
		a.newShareCmd(),
		a.newVoteCmd(),
		a.newCategoriesCmd(),
		a.newConfigCmd(),
	)
	return rootCmd
}

// initConfig reads in config file and ENV variables
func (a *app) initConfig() error {
	if a.cfgFile != "" {
		// Use config file from the flag
		a.v.SetConfigFile(a.cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		// Search for config in home directory
		a.v.AddConfigPath(filepath.Join(home, ".til"))
		a.v.SetConfigType("yaml")
		a.v.SetConfigName("config")
	}

	// Read in environment variables that match TIL_*
	a.v.SetEnvPrefix("TIL")
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func (a *app) logger(stderr io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if a.v.GetBool(keyVerbose) {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

func (a *app) storeOptions() store.Options {
	return store.Options{
		Type:        a.v.GetString(keyStore),
		DatabaseURL: a.v.GetString(keyDatabaseURL),
		RESTURL:     a.v.GetString(keyRESTURL),
		RESTKey:     a.v.GetString(keyRESTKey),
		Table:       a.v.GetString(keyTable),
		Timeout:     a.v.GetDuration(keyTimeout),
	}
}

// withController opens the store, builds a controller on it and hands it
// to fn with a context bounded by the configured timeout
func (a *app) withController(cmd *cobra.Command, fn func(ctx context.Context, ctrl *facts.Controller) error) error {
	st, closer, err := store.Open(a.storeOptions())
	if err != nil {
		return err
	}
	defer closer.Close()

	timeout := a.v.GetDuration(keyTimeout)
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	ctrl := facts.NewController(st, a.logger(cmd.ErrOrStderr()))
	return fn(ctx, ctrl)
}

// alertError turns the controller's pending alert into the command error
func alertError(ctrl *facts.Controller, err error) error {
	if alerts := ctrl.TakeAlerts(); len(alerts) > 0 {
		last := alerts[len(alerts)-1]
		return fmt.Errorf("%s: %w", last.Message, last.Err)
	}
	return err
}
