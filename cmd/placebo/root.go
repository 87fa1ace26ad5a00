package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Excaliburns/Placebo/internal/config"
	"github.com/Excaliburns/Placebo/internal/data"
	"github.com/Excaliburns/Placebo/internal/modifier"
)

// defaultConfigPath is used when neither --config nor PLACEBO_CONFIG is set.
const defaultConfigPath = "config/placebo.yaml"

// app carries state shared by subcommands after PersistentPreRunE.
type app struct {
	cfg config.Placebo
}

func newRootCmd() *cobra.Command {
	a := &app{}

	var (
		configPath string
		logLevel   string
	)

	defaultPath := defaultConfigPath
	if p := os.Getenv("PLACEBO_CONFIG"); p != "" {
		defaultPath = p
	}

	root := &cobra.Command{
		Use:   "placebo",
		Short: "Load, validate and apply randomized attribute modifiers",
		Long: `placebo reads attribute modifier definitions of the form
{"attribute": ..., "operation": ..., "value": number | {"min", "max"}}
from a catalog directory and applies them to entities.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadPlacebo(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			a.cfg = cfg

			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: parseLogLevel(cfg.LogLevel),
			})))
			slog.Debug("config loaded", "path", configPath, "id_scheme", cfg.IDScheme, "strict", cfg.Strict)
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", defaultPath, "path to the YAML config file (env PLACEBO_CONFIG)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")

	root.AddCommand(
		newValidateCmd(a),
		newApplyCmd(a),
		newMigrateCmd(a),
		newVersionCmd(),
	)
	return root
}

// loadCatalogs loads the attribute catalog and every modifier definition it can resolve.
func (a *app) loadCatalogs(cmd *cobra.Command) (*data.AttributeCatalog, *data.ModifierCatalog, error) {
	scheme, err := modifier.ParseIDScheme(a.cfg.IDScheme)
	if err != nil {
		return nil, nil, err
	}

	attrs, err := data.LoadAttributeCatalog(a.cfg.AttributesPath)
	if err != nil {
		return nil, nil, err
	}

	parser := modifier.NewParser(attrs.Attributes, attrs.Operations, modifier.WithIDScheme(scheme))
	mods, err := data.LoadModifierCatalog(cmd.Context(), a.cfg.ModifiersDir, parser, a.cfg.Strict)
	if err != nil {
		return nil, nil, err
	}
	return attrs, mods, nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
