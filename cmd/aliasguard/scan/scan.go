package scan

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"aliasguard/internal/anonaddy"
	"aliasguard/internal/config"
	"aliasguard/internal/hibp"
	"aliasguard/internal/notification"
	"aliasguard/pkg/engine"
	"aliasguard/pkg/logger"
	"aliasguard/pkg/report"
)

// Options holds the scan command's flags.
type Options struct {
	Verbose    bool
	ReportPath string
}

// App wires configuration, logging and the notifier for one command
// invocation.
type App struct {
	options       *Options
	cfg           *config.Config
	logger        *logger.Logger
	discordClient *notification.NotificationClient
}

// NewApp loads configuration and initializes the application.
func NewApp(options *Options) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logLevel, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	if options.Verbose {
		logLevel = logrus.DebugLevel
	}
	appLogger := logger.NewLogger(logLevel)

	var discordClient *notification.NotificationClient
	if cfg.Discord.Token != "" {
		discordClient, err = notification.NewNotificationClient(cfg.Discord.Token, cfg.Discord.ChannelID)
		if err != nil {
			appLogger.WithError(err).Warn("Failed to initialize Discord client")
			discordClient = nil
		} else {
			appLogger.Info("Discord notifications enabled")
		}
	} else {
		appLogger.Debug("Discord token not set - notifications disabled")
	}

	return &App{
		options:       options,
		cfg:           cfg,
		logger:        appLogger,
		discordClient: discordClient,
	}, nil
}

// Close cleans up application resources
func (a *App) Close() error {
	if a.discordClient != nil {
		return a.discordClient.Close()
	}
	return nil
}

// httpClient builds the one transport shared by both provider clients.
func (a *App) httpClient() *http.Client {
	return &http.Client{Timeout: a.cfg.HTTP.Timeout}
}

// Run executes one scan pass.
func (a *App) Run(ctx context.Context) error {
	httpClient := a.httpClient()

	aliasService, err := anonaddy.NewClient(httpClient, a.cfg.AnonAddy.Host, a.cfg.AnonAddy.Token)
	if err != nil {
		return fmt.Errorf("failed to create alias provider client: %w", err)
	}

	breachLookup, err := hibp.NewClient(httpClient, a.cfg.HIBP.Host, a.cfg.HIBP.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create breach lookup client: %w", err)
	}

	scanEngine, err := engine.NewScanEngine(
		engine.WithAliasService(aliasService),
		engine.WithBreachLookup(breachLookup),
		engine.WithNotificationClient(a.discordClient),
		engine.WithLogger(a.logger),
	)
	if err != nil {
		return fmt.Errorf("failed to create scan engine: %w", err)
	}

	results, err := scanEngine.Run(ctx)
	if err != nil {
		a.logger.WithError(err).Error("Scan failed")
		return err
	}

	runReport := report.New(scanEngine.ScanID(), results)
	runReport.Print(os.Stdout)

	if a.options.ReportPath != "" {
		if err := runReport.Save(a.options.ReportPath); err != nil {
			a.logger.WithError(err).Error("Failed to write report file")
			return err
		}
		a.logger.WithFields(logger.Fields{"path": a.options.ReportPath}).Info("Report written")
	}
	return nil
}

// NewScanCommand creates the scan command
func NewScanCommand() *cobra.Command {
	options := &Options{}

	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan all active aliases against the breach database",
		Long: `Scan fetches every alias from the configured alias provider, checks
each active alias's address against Have I Been Pwned, and deactivates
any alias found in a breach. One invocation is one full pass.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			app, err := NewApp(options)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := app.Close(); closeErr != nil {
					app.logger.WithError(closeErr).Error("Error closing application")
				}
			}()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				sig := <-sigChan
				app.logger.WithFields(logger.Fields{
					"signal": sig.String(),
				}).Info("Received shutdown signal")
				cancel()
			}()

			return app.Run(ctx)
		},
	}

	scanCmd.Flags().BoolVarP(&options.Verbose, "verbose", "v", false, "Enable verbose logging")
	scanCmd.Flags().StringVar(&options.ReportPath, "report", "", "Write the run report as YAML to this path")

	return scanCmd
}

// NewListAliasesCommand creates the list-aliases command
func NewListAliasesCommand() *cobra.Command {
	options := &Options{}

	listCmd := &cobra.Command{
		Use:   "list-aliases",
		Short: "List aliases known to the alias provider",
		Long:  `List every alias visible to the configured credential with its active state.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			app, err := NewApp(options)
			if err != nil {
				return err
			}
			defer app.Close()

			aliasService, err := anonaddy.NewClient(app.httpClient(), app.cfg.AnonAddy.Host, app.cfg.AnonAddy.Token)
			if err != nil {
				return fmt.Errorf("failed to create alias provider client: %w", err)
			}

			aliases, err := aliasService.ListAliases(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Println("Aliases:")
			fmt.Println("========")
			for _, a := range aliases {
				state := "inactive"
				if a.IsActive() {
					state = "active"
				}
				fmt.Printf("\n• %s [%s]\n", a.Email(), state)
				fmt.Printf("  ID: %s\n", a.ID())
				if a.Description() != "" {
					fmt.Printf("  Description: %s\n", a.Description())
				}
			}
			if len(aliases) == 0 {
				fmt.Println("No aliases found")
			}
			return nil
		},
	}

	listCmd.Flags().BoolVarP(&options.Verbose, "verbose", "v", false, "Enable verbose logging")

	return listCmd
}
