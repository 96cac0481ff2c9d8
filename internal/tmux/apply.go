package tmux

import (
	"fmt"
	"math"

	"devgrid/internal/grid"
)

// Apply carves target into one pane per visible view of state and returns
// view id → pane id. target keeps the first view. Sizes are passed as
// percentages so the result does not depend on the saved canvas size.
// Hidden views get no pane.
func (c *Client) Apply(state grid.State, target, workDir string) (map[string]string, error) {
	if state.Root.Type != grid.NodeBranch {
		return nil, fmt.Errorf("apply layout: root is %q: %w", state.Root.Type, grid.ErrInvalidState)
	}
	if target == "" {
		cur, err := c.CurrentPane()
		if err != nil {
			return nil, err
		}
		target = cur
	}
	panes := make(map[string]string)
	root := state.Root
	if root.Orientation == nil {
		o := state.Orientation
		root.Orientation = &o
	}
	if err := c.applyNode(root, target, workDir, panes); err != nil {
		return panes, err
	}
	return panes, nil
}

func (c *Client) applyNode(n grid.NodeState, pane, workDir string, panes map[string]string) error {
	if n.Type == grid.NodeLeaf {
		panes[n.ViewID] = pane
		return nil
	}
	if n.Orientation == nil {
		return fmt.Errorf("apply layout: branch without orientation: %w", grid.ErrInvalidState)
	}
	children := visibleChildren(n.Children)
	if len(children) == 0 {
		return nil
	}
	horizontal := *n.Orientation == grid.Horizontal

	// Each split peels the remaining children off the right (or bottom) of
	// the current pane; tmux puts a one-cell border between panes.
	assigned := make([]string, len(children))
	cur := pane
	for i := 0; i < len(children)-1; i++ {
		rest := extent(children[i+1:])
		whole := rest + max(children[i].Size, 0) + 1
		id, err := c.SplitPane(cur, horizontal, splitPercent(rest, whole), workDir)
		if err != nil {
			return fmt.Errorf("apply layout: split for %s: %w", describe(children[i+1]), err)
		}
		assigned[i] = cur
		cur = id
	}
	assigned[len(children)-1] = cur

	for i, child := range children {
		if err := c.applyNode(child, assigned[i], workDir, panes); err != nil {
			return err
		}
	}
	return nil
}

// visibleChildren drops hidden leaves and branches with nothing visible.
func visibleChildren(children []grid.NodeState) []grid.NodeState {
	var out []grid.NodeState
	for _, ch := range children {
		switch ch.Type {
		case grid.NodeLeaf:
			if !ch.Hidden {
				out = append(out, ch)
			}
		case grid.NodeBranch:
			if len(visibleChildren(ch.Children)) > 0 {
				out = append(out, ch)
			}
		}
	}
	return out
}

// extent is the span of nodes laid side by side, borders included.
func extent(nodes []grid.NodeState) int {
	total := 0
	for _, n := range nodes {
		total += max(n.Size, 0)
	}
	return total + len(nodes) - 1
}

func splitPercent(part, whole int) int {
	if whole <= 0 {
		return 50
	}
	p := int(math.Round(100 * float64(part) / float64(whole)))
	return min(max(p, 1), 99)
}

func describe(n grid.NodeState) string {
	if n.Type == grid.NodeLeaf {
		return "view " + n.ViewID
	}
	return "branch"
}
