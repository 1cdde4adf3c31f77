package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/spachava753/dscatalog/internal/app"
	"github.com/spachava753/dscatalog/internal/config"
	"github.com/spachava753/dscatalog/internal/models"
)

func newRootCmd() *cobra.Command {
	var logLevel string
	var registries []string

	root := &cobra.Command{
		Use:           "dscatalog",
		Short:         "Browse the dataset catalog and prepare evaluation records",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := config.ParseLogLevel(logLevel)
			if err != nil {
				return err
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return nil
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringSliceVar(&registries, "registry", nil, "extra registry.json path or http(s) URL to merge (repeatable)")

	// loadApp builds the catalog plus any --registry files.
	loadApp := func(cmd *cobra.Command) (*app.App, error) {
		a, err := app.New()
		if err != nil {
			return nil, err
		}
		refs := make([]models.RegistryRef, len(registries))
		for i, v := range registries {
			if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
				refs[i].URL = &registries[i]
			} else {
				refs[i].Path = &registries[i]
			}
		}
		if err := a.LoadRegistries(cmd.Context(), refs); err != nil {
			return nil, err
		}
		return a, nil
	}

	root.AddCommand(
		newListCmd(loadApp),
		newShowCmd(loadApp),
		newBindingsCmd(loadApp),
		newPrepareCmd(),
	)
	return root
}

type appLoader func(cmd *cobra.Command) (*app.App, error)

func newListCmd(load appLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered datasets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load(cmd)
			if err != nil {
				return err
			}
			writeDatasets(cmd.OutOrStdout(), a)
			return nil
		},
	}
}

func newShowCmd(load appLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show the metadata of one dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load(cmd)
			if err != nil {
				return err
			}
			info, ok := a.Metadata.Get(args[0])
			if !ok {
				return fmt.Errorf("dataset %q not found", args[0])
			}
			out, err := yaml.Marshal(info)
			if err != nil {
				return fmt.Errorf("encoding metadata: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func newBindingsCmd(load appLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "bindings",
		Short: "List prepper bindings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load(cmd)
			if err != nil {
				return err
			}
			table := uitable.New()
			table.AddRow("DATASET", "PREPPER", "METADATA")
			for _, name := range a.Factory.Names() {
				p, err := a.Factory.Construct(name, nil)
				if err != nil {
					return err
				}
				_, hasMetadata := a.Metadata.Get(name)
				table.AddRow(name, fmt.Sprintf("%T", p), hasMetadata)
			}
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}
}

func newPrepareCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "prepare",
		Short: "Prepare the raw record files listed in a catalog.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadCatalogConfig(configPath)
			if err != nil {
				return fmt.Errorf("loading catalog config: %w", err)
			}

			// --log-level wins over the config file.
			if !cmd.Flags().Changed("log-level") {
				level, _ := config.ParseLogLevel(cfg.LogLevel)
				slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			}

			result, err := app.Run(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Output: %s\n", result.OutputDir)
			table := uitable.New()
			table.AddRow("DATASET", "RECORDS", "ENTRIES", "SKIPPED")
			for _, pd := range result.Datasets {
				table.AddRow(pd.Name, pd.Records, len(pd.Entries), len(pd.Errors))
			}
			fmt.Fprintln(out, table)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "catalog.yaml", "path to catalog.yaml")
	return cmd
}

func writeDatasets(w io.Writer, a *app.App) {
	table := uitable.New()
	table.MaxColWidth = 60
	table.Wrap = true
	table.AddRow("NAME", "TASK TYPE", "SOURCE", "DESCRIPTION")
	for _, name := range a.Metadata.List() {
		info, _ := a.Metadata.Get(name)
		table.AddRow(info.Name, info.TaskType, info.Source, info.Description)
	}
	fmt.Fprintln(w, table)
}
