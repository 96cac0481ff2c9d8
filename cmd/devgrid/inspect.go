package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"devgrid/internal/grid"
	"devgrid/internal/jsonutil"
)

func newInspectCmd(opts *globalOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "inspect <layout>",
		Short: "Print the pane tree of a saved layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, err := loadEnv(opts)
			if err != nil {
				return err
			}
			state, err := st.Load(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				data, err := jsonutil.MarshalIndentWithContext(state, "layout "+args[0])
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			}
			fmt.Fprintf(out, "%s (%s, %dx%d)\n", args[0], state.Orientation, state.Width, state.Height)
			writeTree(out, state.Root, "", true, true)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the saved JSON instead of a tree")
	return cmd
}

// writeTree prints n and its children with box-drawing guides.
func writeTree(w io.Writer, n grid.NodeState, prefix string, last, root bool) {
	branch, childPrefix := "├── ", prefix+"│   "
	if last {
		branch, childPrefix = "└── ", prefix+"    "
	}
	if root {
		branch, childPrefix = "", ""
	}
	fmt.Fprintf(w, "%s%s%s\n", prefix, branch, describeNode(n))
	for i, c := range n.Children {
		writeTree(w, c, childPrefix, i == len(n.Children)-1, false)
	}
}

func describeNode(n grid.NodeState) string {
	var parts []string
	if n.Type == grid.NodeLeaf {
		parts = append(parts, n.ViewID)
	} else if n.Orientation != nil {
		parts = append(parts, n.Orientation.String())
	} else {
		parts = append(parts, string(n.Type))
	}
	parts = append(parts, fmt.Sprint(n.Size))
	if n.SizingMode == grid.Pixel {
		parts = append(parts, "pixel")
	}
	if n.Hidden {
		parts = append(parts, "hidden")
	}
	return strings.Join(parts, " ")
}
