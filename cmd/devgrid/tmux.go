package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"devgrid/internal/pane"
	"devgrid/internal/tmux"
)

// newTmuxClient is replaced in tests.
var newTmuxClient = tmux.New

func newTmuxCmd(opts *globalOptions) *cobra.Command {
	parent := &cobra.Command{
		Use:   "tmux",
		Short: "Mirror saved layouts onto tmux panes",
	}

	var target, workDir, run string
	var force bool
	apply := &cobra.Command{
		Use:   "apply <layout>",
		Short: "Split a tmux pane to match a saved layout",
		Long: `apply splits the target pane (default: the current one) so the window
matches the saved layout, one tmux pane per visible view. Shell views can be
primed with --run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := tmux.CheckEnv(); err != nil {
				return err
			}
			_, st, err := loadEnv(opts)
			if err != nil {
				return err
			}
			state, err := st.Load(args[0])
			if err != nil {
				return err
			}

			c := newTmuxClient()
			before, err := c.ListPaneIDs()
			if err != nil {
				return err
			}
			if target == "" {
				if !force {
					n, err := c.WindowPaneCount()
					if err != nil {
						return err
					}
					if n > 1 {
						return fmt.Errorf("current window already has %d panes; use --target or --force", n)
					}
				}
				if target, err = c.CurrentPane(); err != nil {
					return err
				}
			} else if !before[target] {
				return fmt.Errorf("pane %s is not in the current window", target)
			}

			panes, err := c.Apply(state, target, workDir)
			if err != nil {
				rollback(c, before)
				return err
			}

			ids := make([]string, 0, len(panes))
			for id := range panes {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			out := cmd.OutOrStdout()
			for _, id := range ids {
				if kind, _ := pane.KindOf(id); kind == pane.KindShell && run != "" {
					if err := c.SendKeys(panes[id], run+"\n"); err != nil {
						return err
					}
				}
				fmt.Fprintf(out, "%s\t%s\n", id, panes[id])
			}
			return nil
		},
	}
	apply.Flags().StringVarP(&target, "target", "t", "", "tmux pane id to split (default: current pane)")
	apply.Flags().StringVarP(&workDir, "dir", "c", "", "working directory of new panes")
	apply.Flags().StringVar(&run, "run", "", "command typed into every shell pane")
	apply.Flags().BoolVarP(&force, "force", "f", false, "split the current pane even if the window has others")

	parent.AddCommand(apply)
	return parent
}

// rollback kills panes created since before was listed.
func rollback(c *tmux.Client, before map[string]bool) {
	after, err := c.ListPaneIDs()
	if err != nil {
		return
	}
	for id := range after {
		if !before[id] {
			_ = c.KillPane(id)
		}
	}
}
