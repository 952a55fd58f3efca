package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"taskdesk/pkg/task"
)

func addCmd(a *app) *cobra.Command {
	var priority, due, category string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a pending task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := task.ParsePriority(priority)
			if err != nil {
				return err
			}
			if due == "" {
				due = task.Today(a.now())
			}
			return a.withCollection(cmd, func(c *task.Collection, out io.Writer) error {
				t, err := c.Add(cmd.Context(), task.Draft{Title: args[0], Priority: p, DueDate: due, Category: category})
				if err != nil {
					return err
				}
				return printJSON(out, t)
			})
		},
	}

	cmd.Flags().StringVarP(&priority, "priority", "p", string(task.Medium), "High, Medium or Low")
	cmd.Flags().StringVarP(&due, "due", "d", "", "due date YYYY-MM-DD (default today)")
	cmd.Flags().StringVarP(&category, "category", "c", "Work", "category")

	return cmd
}

func editCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p, err := patchFromFlags(cmd)
			if err != nil {
				return err
			}
			return a.withCollection(cmd, func(c *task.Collection, out io.Writer) error {
				t, err := c.Edit(cmd.Context(), id, p)
				if err != nil {
					return err
				}
				return printJSON(out, t)
			})
		},
	}

	cmd.Flags().String("title", "", "new title")
	cmd.Flags().String("priority", "", "High, Medium or Low")
	cmd.Flags().String("due", "", "due date YYYY-MM-DD")
	cmd.Flags().String("category", "", "category")
	cmd.Flags().String("status", "", "Pending, In Progress or Completed")

	return cmd
}

// patchFromFlags only sets the fields whose flags were given.
func patchFromFlags(cmd *cobra.Command) (task.Patch, error) {
	var p task.Patch
	fl := cmd.Flags()
	if fl.Changed("title") {
		v, _ := fl.GetString("title")
		p.Title = &v
	}
	if fl.Changed("priority") {
		v, _ := fl.GetString("priority")
		pr, err := task.ParsePriority(v)
		if err != nil {
			return p, err
		}
		p.Priority = &pr
	}
	if fl.Changed("due") {
		v, _ := fl.GetString("due")
		p.DueDate = &v
	}
	if fl.Changed("category") {
		v, _ := fl.GetString("category")
		p.Category = &v
	}
	if fl.Changed("status") {
		v, _ := fl.GetString("status")
		st, err := task.ParseStatus(v)
		if err != nil {
			return p, err
		}
		p.Status = &st
	}
	if p == (task.Patch{}) {
		return p, fmt.Errorf("no updates specified")
	}
	return p, nil
}

func removeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.withCollection(cmd, func(c *task.Collection, out io.Writer) error {
				if err := c.Remove(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(out, "removed task %d\n", id)
				return nil
			})
		},
	}
}

func toggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <id>",
		Aliases: []string{"done"},
		Short:   "Mark a task completed, or reopen it as pending",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.withCollection(cmd, func(c *task.Collection, out io.Writer) error {
				t, err := c.ToggleComplete(cmd.Context(), id)
				if err != nil {
					return err
				}
				return printJSON(out, t)
			})
		},
	}
}

func listCmd(a *app) *cobra.Command {
	var q struct{ search, filter, sort, format string }
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Search, filter and sort tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withCollection(cmd, func(c *task.Collection, out io.Writer) error {
				tasks := c.Query(task.Query{
					Search: q.search,
					Filter: task.Filter(q.filter),
					Sort:   task.SortKey(q.sort),
				})
				if q.format == "json" {
					return printJSON(out, tasks)
				}
				printShortTasks(out, tasks, c.Today())
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&q.search, "search", "s", "", "match title, category or status")
	cmd.Flags().StringVarP(&q.filter, "filter", "f", string(task.FilterAll), "all, high, today, overdue or completed")
	cmd.Flags().StringVar(&q.sort, "sort", string(task.SortDate), "date, priority, status or category")
	cmd.Flags().StringVar(&q.format, "format", "short", "short or json")

	return cmd
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", s)
	}
	return id, nil
}
