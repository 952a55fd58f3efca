package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"taskdesk/internal/backend"
	"taskdesk/internal/config"
	"taskdesk/pkg/storage"
	"taskdesk/pkg/task"
)

var Version = "dev"

// app carries the global flags into every subcommand.
type app struct {
	cfgPath string
	backend string
	now     func() time.Time
}

func main() {
	if err := newRootCmd(&app{now: time.Now}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "todo:", err)
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "todo",
		Short:         "Manage a local task list",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&a.cfgPath, "config", "", "config file (default ~/.taskdesk/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&a.backend, "store", "", "override store backend (file, sqlite, postgres, memory)")

	rootCmd.AddCommand(addCmd(a))
	rootCmd.AddCommand(editCmd(a))
	rootCmd.AddCommand(removeCmd(a))
	rootCmd.AddCommand(toggleCmd(a))
	rootCmd.AddCommand(listCmd(a))
	rootCmd.AddCommand(exportCmd(a))
	rootCmd.AddCommand(statsCmd(a))
	rootCmd.AddCommand(configCmd(a))

	return rootCmd
}

func (a *app) config() (*config.Config, error) {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return nil, err
	}
	if a.backend != "" {
		cfg.Store.Backend = a.backend
	}
	return cfg, nil
}

// open loads the collection; the caller closes the returned store.
func (a *app) open(ctx context.Context) (*task.Collection, storage.KV, error) {
	cfg, err := a.config()
	if err != nil {
		return nil, nil, err
	}
	return backend.OpenCollection(ctx, cfg.Store, task.WithClock(a.now))
}

// withCollection opens the collection, runs fn, and reports a failed save
// as a warning so the command itself still succeeds.
func (a *app) withCollection(cmd *cobra.Command, fn func(c *task.Collection, out io.Writer) error) error {
	c, kv, err := a.open(cmd.Context())
	if err != nil {
		return err
	}
	defer kv.Close()

	if err := fn(c, cmd.OutOrStdout()); err != nil {
		return err
	}
	if err := c.PersistErr(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "todo: warning: changes not saved: %v\n", err)
	}
	return nil
}
