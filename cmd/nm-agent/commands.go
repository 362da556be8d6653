package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/voxpupuli/puppet-networkmanager/internal/api"
	"github.com/voxpupuli/puppet-networkmanager/internal/health"
	"github.com/voxpupuli/puppet-networkmanager/internal/logging"
	"github.com/voxpupuli/puppet-networkmanager/internal/output"
	"go.uber.org/zap"
)

var factsCmd = &cobra.Command{
	Use:   "facts [query...]",
	Short: "Print NetworkManager facts",
	Long: `Print all enabled facts, or the values selected by dotted queries such as
nm_all_connections.Wired.uuid. Facts whose requirements are not met on this
host are left out.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newServices(cfg)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if len(args) == 0 {
			doc, err := svc.registry.Collect(ctx)
			if err != nil {
				return err
			}
			return output.WriteRaw(cmd.OutOrStdout(), cfg.OutputFormat, doc.JSON())
		}

		results, err := svc.registry.Query(ctx, args...)
		if err != nil {
			return err
		}
		return output.WriteResults(cmd.OutOrStdout(), cfg.OutputFormat, args, results)
	},
}

var resourceCmd = &cobra.Command{
	Use:   "resource",
	Short: "Read networkmanager_connection resources",
}

var resourceGetCmd = &cobra.Command{
	Use:   "get [name...]",
	Short: "Print the current state of connections",
	Long:  `Print every connection, or only the named ones. Connections that cannot be read are left out.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newServices(cfg)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if err := svc.confine.Check(ctx, svc.provider.Requires()); err != nil {
			return fmt.Errorf("provider not suitable: %w", err)
		}
		return output.Write(cmd.OutOrStdout(), cfg.OutputFormat, svc.provider.Get(ctx, args...))
	},
}

var resourceDescribeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Print the networkmanager_connection type declaration",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newServices(cfg)
		if err != nil {
			return err
		}
		return output.Write(cmd.OutOrStdout(), cfg.OutputFormat, svc.provider.Type())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve facts, resources and metrics over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newServices(cfg)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log := logging.L("api")
		monitor := health.NewMonitor(logging.L("health"))
		svc.registry.SetMonitor(monitor)
		router := api.NewRouter(svc.registry, svc.provider, svc.confine, monitor, version, log)
		if err := api.Serve(ctx, cfg.ListenAddr, router, log); err != nil {
			return err
		}
		log.Info("stopped", zap.String("version", version))
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or write the agent configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return output.Write(cmd.OutOrStdout(), cfg.OutputFormat, cfg)
	},
}

var configWriteCmd = &cobra.Command{
	Use:   "write <path>",
	Short: "Write the effective configuration to a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.SaveTo(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", args[0])
		return nil
	},
}

func init() {
	resourceCmd.AddCommand(resourceGetCmd)
	resourceCmd.AddCommand(resourceDescribeCmd)

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configWriteCmd)
}
