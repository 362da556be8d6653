package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/voxpupuli/puppet-networkmanager/internal/collector"
	"github.com/voxpupuli/puppet-networkmanager/internal/config"
	"github.com/voxpupuli/puppet-networkmanager/internal/executor"
	"github.com/voxpupuli/puppet-networkmanager/internal/logging"
	"github.com/voxpupuli/puppet-networkmanager/internal/nmcli"
	"github.com/voxpupuli/puppet-networkmanager/internal/resource"
	"go.uber.org/zap"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

var (
	cfgFile  string
	format   string
	logLevel string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "nm-agent",
	Short: "NetworkManager inventory agent",
	Long: `nm-agent reports NetworkManager connections, devices and daemon state
as facts, and reads networkmanager_connection resources through nmcli.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Annotations: map[string]string{
		skipSetup: "true",
	},
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "nm-agent %s\n", version)
		fmt.Fprintf(out, "Commit: %s\n", commit)
		fmt.Fprintf(out, "Built: %s\n", buildDate)
	},
}

const skipSetup = "skip-setup"

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is /etc/nm-agent/nm-agent.yaml)")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "", "output format: json or yaml (overrides output_format)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides log_level)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(factsCmd)
	rootCmd.AddCommand(resourceCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// setup loads and validates the configuration and initializes logging.
func setup(cmd *cobra.Command, args []string) error {
	if cmd.Annotations[skipSetup] == "true" {
		return nil
	}

	loaded, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if format != "" {
		loaded.OutputFormat = format
	}
	if logLevel != "" {
		loaded.LogLevel = logLevel
	}

	result := loaded.ValidateTiered()
	if result.HasFatals() {
		return fmt.Errorf("invalid config: %v", result.Fatals[0])
	}

	if err := logging.Init(loaded.Logging()); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	log := logging.L("config")
	for _, w := range result.Warnings {
		log.Warn("config validation", zap.Error(w))
	}

	cfg = loaded
	return nil
}

// services holds the wired components for one command invocation.
type services struct {
	client   *nmcli.Client
	confine  *collector.Confine
	registry *collector.Registry
	provider *resource.Provider
}

func newServices(cfg *config.Config) (*services, error) {
	runner := executor.New(cfg.CommandTimeout, logging.L("executor"))
	client := nmcli.NewClient(runner, cfg.NmcliPath, cfg.NetworkManagerPath)
	confine := collector.NewConfine(runner, nil)

	registry, err := collector.NewDefaultRegistry(client, confine, cfg.EnabledFacts, logging.L("collector"))
	if err != nil {
		return nil, err
	}

	return &services{
		client:   client,
		confine:  confine,
		registry: registry,
		provider: resource.NewProvider(client, logging.L("resource")),
	}, nil
}
