package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dgallion1/costcase/internal/config"
	"github.com/dgallion1/costcase/internal/costmodel"
	"github.com/dgallion1/costcase/internal/outstore"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// A missing .env is fine.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	if err := rootCmd(&cfg).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func rootCmd(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:          "costcase",
		Short:        "Feasibility study of a manufactured product: cost model, balances and the Word report",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfg.CaseFile, "case", cfg.CaseFile, "YAML case file overriding the built-in case")

	root.AddCommand(generateCmd(cfg))
	root.AddCommand(summaryCmd(cfg))
	root.AddCommand(volumesCmd(cfg))
	root.AddCommand(inspectCmd(cfg))
	root.AddCommand(reportsCmd(cfg))
	return root
}

func generateCmd(cfg *config.Config) *cobra.Command {
	var noCharts, asJSON bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Compute the study, render the report and store it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noCharts {
				cfg.Charts = false
			}
			log, err := setup(*cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runGenerate(cmd.Context(), *cfg, log, cmd.OutOrStdout(), asJSON)
		},
	}

	cmd.Flags().StringVarP(&cfg.OutputKey, "out", "o", cfg.OutputKey, "output key in the configured store")
	cmd.Flags().BoolVar(&noCharts, "no-charts", false, "leave the charts out of the report")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the finished job as JSON")
	return cmd
}

func summaryCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print the main figures of every chapter and the cost tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := setup(*cfg, cmd.ErrOrStderr()); err != nil {
				return err
			}
			return runSummary(*cfg, cmd.OutOrStdout())
		},
	}
}

func volumesCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "volumes",
		Short: "Print fixed, variable and total costs at each sampled volume",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := setup(*cfg, cmd.ErrOrStderr()); err != nil {
				return err
			}
			return runVolumes(*cfg, cmd.OutOrStdout())
		},
	}
}

func inspectCmd(cfg *config.Config) *cobra.Command {
	var fromStore bool

	cmd := &cobra.Command{
		Use:   "inspect [file.docx|file.md|file.csv]",
		Short: "Print the outline of a report, narrative or table file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !fromStore {
				return runInspect(args[0], cmd.OutOrStdout())
			}
			if _, err := setup(*cfg, cmd.ErrOrStderr()); err != nil {
				return err
			}
			store, err := outstore.Open(cmd.Context(), cfg.Store)
			if err != nil {
				return err
			}
			return runInspectStored(cmd.Context(), store, args[0], cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&fromStore, "store", false, "read the argument as a key in the configured store")
	return cmd
}

func reportsCmd(cfg *config.Config) *cobra.Command {
	var prefix string
	var remove []string

	cmd := &cobra.Command{
		Use:   "reports",
		Short: "List the reports in the configured store, or delete some",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := setup(*cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			store, err := outstore.Open(cmd.Context(), cfg.Store)
			if err != nil {
				return err
			}
			if len(remove) > 0 {
				return runDelete(cmd.Context(), store, log, remove, cmd.OutOrStdout())
			}
			return runReports(cmd.Context(), store, prefix, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "only list keys with this prefix")
	cmd.Flags().StringSliceVar(&remove, "delete", nil, "delete these keys instead of listing")
	return cmd
}

// setup validates cfg and installs the JSON logger writing to logw, which
// the cost model also uses for its data-entry warnings. Logs go to stderr
// so stdout carries only command output.
func setup(cfg config.Config, logw io.Writer) (*slog.Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	log := slog.New(slog.NewJSONHandler(logw, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)
	costmodel.SetLogger(log)
	return log, nil
}
