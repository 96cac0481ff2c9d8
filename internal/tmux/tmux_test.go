package tmux

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devgrid/internal/grid"
)

// fakeRunner records commands and hands out sequential pane ids for splits.
type fakeRunner struct {
	calls   [][]string
	nextID  int
	failOn  string
	outputs map[string]string
}

func (f *fakeRunner) Run(args ...string) (string, error) {
	f.calls = append(f.calls, args)
	if f.failOn != "" && args[0] == f.failOn {
		return "", fmt.Errorf("tmux %s: exit status 1: boom", args[0])
	}
	if args[0] == "split-window" {
		if f.nextID == 0 {
			f.nextID = 10
		}
		id := fmt.Sprintf("%%%d", f.nextID)
		f.nextID++
		return id, nil
	}
	return f.outputs[strings.Join(args, " ")], nil
}

func (f *fakeRunner) splits() []string {
	var out []string
	for _, c := range f.calls {
		if c[0] == "split-window" {
			out = append(out, strings.Join(c, " "))
		}
	}
	return out
}

func TestClient_CurrentPaneAndCount(t *testing.T) {
	r := &fakeRunner{outputs: map[string]string{
		"display-message -p #{pane_id}":     "%3",
		"display-message -p #{window_panes}": "4",
	}}
	c := NewWithRunner(r)

	id, err := c.CurrentPane()
	require.NoError(t, err)
	assert.Equal(t, "%3", id)

	n, err := c.WindowPaneCount()
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestClient_WindowPaneCountParseError(t *testing.T) {
	r := &fakeRunner{outputs: map[string]string{"display-message -p #{window_panes}": "lots"}}
	_, err := NewWithRunner(r).WindowPaneCount()
	assert.ErrorContains(t, err, "parse pane count")
}

func TestClient_SplitPaneArgs(t *testing.T) {
	r := &fakeRunner{}
	c := NewWithRunner(r)

	id, err := c.SplitPane("%1", true, 40, "/work")
	require.NoError(t, err)
	assert.Equal(t, "%10", id)
	assert.Equal(t, []string{
		"split-window", "-d", "-P", "-F", "#{pane_id}", "-t", "%1", "-h", "-l", "40%", "-c", "/work",
	}, r.calls[0])
}

func TestClient_ListPaneIDs(t *testing.T) {
	r := &fakeRunner{outputs: map[string]string{"list-panes -F #{pane_id}": "%1\n%2\n\n%7"}}
	panes, err := NewWithRunner(r).ListPaneIDs()
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"%1": true, "%2": true, "%7": true}, panes)
}

func orient(o grid.Orientation) *grid.Orientation { return &o }

func TestApply_NestedLayout(t *testing.T) {
	state := grid.State{
		Orientation: grid.Horizontal,
		Width:       100,
		Height:      40,
		Root: grid.NodeState{
			Type:        grid.NodeBranch,
			Orientation: orient(grid.Horizontal),
			Children: []grid.NodeState{
				{Type: grid.NodeLeaf, ViewID: "a", Size: 60},
				{Type: grid.NodeLeaf, ViewID: "hidden", Size: 20, Hidden: true},
				{Type: grid.NodeBranch, Orientation: orient(grid.Vertical), Size: 39, Children: []grid.NodeState{
					{Type: grid.NodeLeaf, ViewID: "b", Size: 19},
					{Type: grid.NodeLeaf, ViewID: "c", Size: 19},
				}},
			},
		},
	}
	r := &fakeRunner{}

	panes, err := NewWithRunner(r).Apply(state, "%1", "")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "%1", "b": "%10", "c": "%11"}, panes)
	assert.Equal(t, []string{
		"split-window -d -P -F #{pane_id} -t %1 -h -l 39%",
		"split-window -d -P -F #{pane_id} -t %10 -v -l 49%",
	}, r.splits())
}

func TestApply_ThreeEqualPanes(t *testing.T) {
	state := grid.State{Root: grid.NodeState{
		Type:        grid.NodeBranch,
		Orientation: orient(grid.Horizontal),
		Children: []grid.NodeState{
			{Type: grid.NodeLeaf, ViewID: "a", Size: 30},
			{Type: grid.NodeLeaf, ViewID: "b", Size: 30},
			{Type: grid.NodeLeaf, ViewID: "c", Size: 30},
		},
	}}
	r := &fakeRunner{outputs: map[string]string{"display-message -p #{pane_id}": "%0"}}

	panes, err := NewWithRunner(r).Apply(state, "", "/src")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "%0", "b": "%10", "c": "%11"}, panes)
	assert.Equal(t, []string{
		"split-window -d -P -F #{pane_id} -t %0 -h -l 66% -c /src",
		"split-window -d -P -F #{pane_id} -t %10 -h -l 49% -c /src",
	}, r.splits())
}

func TestApply_SingleViewNeedsNoSplit(t *testing.T) {
	state := grid.State{Root: grid.NodeState{
		Type:        grid.NodeBranch,
		Orientation: orient(grid.Vertical),
		Children:    []grid.NodeState{{Type: grid.NodeLeaf, ViewID: "only", Size: 10}},
	}}
	r := &fakeRunner{}

	panes, err := NewWithRunner(r).Apply(state, "%5", "")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"only": "%5"}, panes)
	assert.Empty(t, r.splits())
}

func TestApply_Errors(t *testing.T) {
	_, err := NewWithRunner(&fakeRunner{}).Apply(grid.State{Root: grid.NodeState{Type: grid.NodeLeaf}}, "%1", "")
	assert.True(t, errors.Is(err, grid.ErrInvalidState))

	state := grid.State{Root: grid.NodeState{
		Type:        grid.NodeBranch,
		Orientation: orient(grid.Horizontal),
		Children: []grid.NodeState{
			{Type: grid.NodeLeaf, ViewID: "a", Size: 10},
			{Type: grid.NodeLeaf, ViewID: "b", Size: 10},
		},
	}}
	r := &fakeRunner{failOn: "split-window"}
	_, err = NewWithRunner(r).Apply(state, "%1", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "view b")
}

func TestSplitPercent(t *testing.T) {
	tests := []struct {
		part, whole, want int
	}{
		{50, 100, 50},
		{0, 100, 1},
		{100, 100, 99},
		{1, 3, 33},
		{5, 0, 50},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, splitPercent(tt.part, tt.whole), "%d/%d", tt.part, tt.whole)
	}
}

func TestExecRunner_InsideTmux(t *testing.T) {
	if os.Getenv("TMUX") == "" {
		t.Skip("Skipping tmux test: not running inside tmux")
	}
	c := New()
	cur, err := c.CurrentPane()
	require.NoError(t, err)
	id, err := c.SplitPane(cur, true, 30, t.TempDir())
	require.NoError(t, err)
	defer c.KillPane(id)

	panes, err := c.ListPaneIDs()
	require.NoError(t, err)
	assert.True(t, panes[id])
}
