// Package tmux mirrors grid layouts onto tmux panes via exec.
// Commands target panes by id, so the caller may run outside the window
// it is arranging as long as it is inside a tmux server.
package tmux

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// ErrNotInTmux is returned when TMUX is unset.
var ErrNotInTmux = errors.New("not running inside tmux")

// Runner executes one tmux command and returns its trimmed stdout.
type Runner interface {
	Run(args ...string) (string, error)
}

// ExecRunner runs the tmux binary.
type ExecRunner struct{}

var _ Runner = ExecRunner{}

// Run implements Runner.
func (ExecRunner) Run(args ...string) (string, error) {
	cmd := exec.Command("tmux", args...)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("tmux %s: %w: %s", args[0], err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(out.String()), nil
}

// Client issues tmux commands through a Runner.
type Client struct {
	run Runner
}

// New returns a client that runs the tmux binary.
func New() *Client {
	return &Client{run: ExecRunner{}}
}

// NewWithRunner returns a client backed by r.
func NewWithRunner(r Runner) *Client {
	return &Client{run: r}
}

// CheckEnv returns ErrNotInTmux unless TMUX is set.
func CheckEnv() error {
	if os.Getenv("TMUX") == "" {
		return ErrNotInTmux
	}
	return nil
}

// CurrentPane returns the id (e.g. %4) of the pane the command runs in.
func (c *Client) CurrentPane() (string, error) {
	return c.run.Run("display-message", "-p", "#{pane_id}")
}

// WindowPaneCount returns the number of panes in the current window.
func (c *Client) WindowPaneCount() (int, error) {
	out, err := c.run.Run("display-message", "-p", "#{window_panes}")
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(out)
	if err != nil {
		return 0, fmt.Errorf("parse pane count: %w", err)
	}
	return n, nil
}

// SplitPane splits target and returns the new pane's id. horizontal places
// the new pane to the right (-h) instead of below; percent is the new pane's
// share of target's extent. Focus stays on target.
func (c *Client) SplitPane(target string, horizontal bool, percent int, workDir string) (string, error) {
	args := []string{"split-window", "-d", "-P", "-F", "#{pane_id}", "-t", target}
	if horizontal {
		args = append(args, "-h")
	} else {
		args = append(args, "-v")
	}
	args = append(args, "-l", strconv.Itoa(percent)+"%")
	if workDir != "" {
		args = append(args, "-c", workDir)
	}
	id, err := c.run.Run(args...)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", fmt.Errorf("tmux split-window: no pane id returned")
	}
	return id, nil
}

// KillPane kills the pane with the given ID.
func (c *Client) KillPane(paneID string) error {
	_, err := c.run.Run("kill-pane", "-t", paneID)
	return err
}

// SendKeys sends keys literally to the pane. Use \n for Enter.
func (c *Client) SendKeys(paneID, keys string) error {
	_, err := c.run.Run("send-keys", "-l", "-t", paneID, keys)
	return err
}

// ListPaneIDs returns the pane ids of the current window.
func (c *Client) ListPaneIDs() (map[string]bool, error) {
	out, err := c.run.Run("list-panes", "-F", "#{pane_id}")
	if err != nil {
		return nil, err
	}
	panes := make(map[string]bool)
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			panes[line] = true
		}
	}
	return panes, nil
}
