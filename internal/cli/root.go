package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"options-strategist/internal/broker"
	"options-strategist/internal/config"
	"options-strategist/internal/logging"
	"options-strategist/internal/store"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2026-08-29"
)

// App holds the application dependencies.
type App struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Provider broker.ChainProvider
	Zerodha  *broker.ZerodhaProvider
	Store    store.EvaluationStore
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	// Initialize live chain provider if credentials are available
	if cfg.Credentials.Zerodha.APIKey != "" {
		zerodha := broker.NewZerodhaProvider(broker.ZerodhaConfig{
			APIKey:      cfg.Credentials.Zerodha.APIKey,
			APISecret:   cfg.Credentials.Zerodha.APISecret,
			AccessToken: cfg.Credentials.Zerodha.AccessToken,
		})
		app.Zerodha = zerodha
		app.Provider = broker.NewCircuitBreakerProvider(zerodha)
		logger.Debug().Msg("Zerodha chain provider initialized")
	}

	// Initialize the evaluation journal
	journal, err := store.NewSQLiteStore(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize journal, history will be unavailable")
	} else {
		app.Store = journal
		logger.Debug().Str("path", cfg.Storage.DatabasePath).Msg("Evaluation journal initialized")
	}

	rootCmd := &cobra.Command{
		Use:   "strategist",
		Short: "Options strategist - payoff and strike-selection CLI",
		Long: `Options strategist evaluates option strategy payoffs for the Indian
derivatives market.

It computes payoff curves, max profit/loss and breakevens for 22 strategies,
selects short and wing strikes from a live or snapshotted option chain, and
builds complete strategy suites at the ATM strike.

Chains come from Zerodha Kite Connect when credentials are configured, or
from a JSON snapshot file via --snapshot for offline use.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/options-strategist)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("snapshot", "", "option chain snapshot file (offline mode)")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
	rootCmd.AddCommand(newPayoffCmd(app))
	rootCmd.AddCommand(newFormulaCmd(app))
	rootCmd.AddCommand(newStrategiesCmd())
	rootCmd.AddCommand(newGreeksCmd(app))
	rootCmd.AddCommand(newChainCmd(app))
	rootCmd.AddCommand(newSelectCmd(app))
	rootCmd.AddCommand(newBuildCmd(app))
	rootCmd.AddCommand(newHistoryCmd(app))
	rootCmd.AddCommand(newLoginCmd(app))
	rootCmd.AddCommand(newLogoutCmd(app))
	rootCmd.AddCommand(newAuthStatusCmd(app))

	return rootCmd
}

// chainProvider resolves the chain source for one command invocation:
// the --snapshot file when given, otherwise the live provider.
func (app *App) chainProvider(cmd *cobra.Command) (broker.ChainProvider, error) {
	snapshot, _ := cmd.Flags().GetString("snapshot")
	if snapshot != "" {
		return broker.NewSnapshotProvider(snapshot), nil
	}
	if app.Provider != nil {
		return app.Provider, nil
	}
	return nil, fmt.Errorf("no chain source: configure Zerodha credentials or pass --snapshot")
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("Options Strategist v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			return showConfig(output, app.Config)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("✓ Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) error {
	output.Bold("Trading Configuration")
	output.Printf("  Default Symbol:   %s\n", cfg.Trading.DefaultSymbol)
	output.Printf("  Default Lots:     %d\n", cfg.Trading.DefaultLots)
	output.Printf("  Default Exchange: %s\n", cfg.Trading.DefaultExchange)
	output.Println()

	output.Bold("Risk Configuration")
	output.Printf("  Max VIX:          %.1f\n", cfg.Risk.MaxVIX)
	output.Printf("  Min Risk/Reward:  %.2f\n", cfg.Risk.MinRiskReward)
	output.Println()

	output.Bold("Storage")
	output.Printf("  Journal:          %s\n", cfg.Storage.DatabasePath)
	output.Println()

	output.Bold("Credentials")
	if cfg.HasBrokerCredentials() {
		output.Printf("  Zerodha:          %s\n", output.Green("configured"))
	} else {
		output.Printf("  Zerodha:          %s\n", output.Yellow("not configured"))
	}

	if len(cfg.Underlyings) > 0 {
		output.Println()
		output.Bold("Underlying Overrides")
		for symbol, u := range cfg.Underlyings {
			output.Printf("  %-12s width=%.0f interval=%.0f lot=%d\n", symbol, u.Width, u.Interval, u.LotSize)
		}
	}

	return nil
}
