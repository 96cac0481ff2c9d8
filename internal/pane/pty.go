package pane

import (
	"io"
	"os"
	"os/exec"

	"github.com/creack/pty"
)

// PTYSize is a terminal size in rows and columns.
type PTYSize struct {
	Rows uint16
	Cols uint16
}

// Runner spawns and resizes pseudo-terminals. Tests swap in a fake.
type Runner interface {
	Start(cmd *exec.Cmd, size PTYSize) (io.ReadWriteCloser, error)
	Resize(rwc io.ReadWriteCloser, size PTYSize) error
}

// CreackPTY implements Runner using github.com/creack/pty.
type CreackPTY struct{}

var _ Runner = (*CreackPTY)(nil)

// Start spawns cmd in a PTY of the given size.
func (CreackPTY) Start(cmd *exec.Cmd, size PTYSize) (io.ReadWriteCloser, error) {
	f, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: size.Rows, Cols: size.Cols})
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Resize sets the PTY size. rwc must be the *os.File returned by Start;
// anything else is a no-op.
func (CreackPTY) Resize(rwc io.ReadWriteCloser, size PTYSize) error {
	f, ok := rwc.(*os.File)
	if !ok {
		return nil
	}
	return pty.Setsize(f, &pty.Winsize{Rows: size.Rows, Cols: size.Cols})
}
