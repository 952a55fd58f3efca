package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"taskdesk/internal/config"
	"taskdesk/pkg/task"
)

func exportCmd(a *app) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all tasks to a CSV file ('-' for stdout)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			if outPath == "" {
				outPath = filepath.Join(cfg.Export.Dir, task.ExportFilename(a.now()))
			}
			return a.withCollection(cmd, func(c *task.Collection, out io.Writer) error {
				if outPath == "-" {
					if err := task.WriteCSV(out, c.All()); err != nil {
						return err
					}
					fmt.Fprintln(out)
					return nil
				}
				if err := os.WriteFile(outPath, []byte(c.CSV()), 0o644); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
				fmt.Fprintf(out, "exported %d tasks to %s\n", len(c.All()), outPath)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default professional-todo-tasks-<date>.csv in export.dir)")

	return cmd
}

func statsCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show task counts and progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withCollection(cmd, func(c *task.Collection, out io.Writer) error {
				s := c.Stats()
				if asJSON {
					return printJSON(out, s)
				}
				fmt.Fprintf(out, "Total:     %d\n", s.Total)
				fmt.Fprintf(out, "Pending:   %d\n", s.Pending)
				fmt.Fprintf(out, "Completed: %d\n", s.Completed)
				fmt.Fprintf(out, "Overdue:   %d\n", s.Overdue)
				fmt.Fprintf(out, "Progress:  %d%% complete\n", s.Progress)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "Output as JSON")

	return cmd
}

func configCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfgPath
			if path == "" {
				path = config.GlobalPath()
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), cfg)
		},
	})
	return cmd
}
