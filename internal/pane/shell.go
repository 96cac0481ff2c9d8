package pane

import (
	"bytes"
	"io"
	"log/slog"
	"os/exec"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"devgrid/internal/grid"
)

// maxScrollback bounds how much shell output a pane keeps.
const maxScrollback = 64 * 1024

// OutputMsg carries bytes read from a shell pane's PTY.
type OutputMsg struct {
	ID   string
	Data []byte
}

// ExitedMsg reports that a shell pane's process closed its PTY.
type ExitedMsg struct {
	ID string
}

// Shell is a PTY-backed shell. Keys are passed through; output scrolls in
// a viewport. The PTY follows the pane's size.
type Shell struct {
	base
	runner   Runner
	command  string
	workDir  string
	logger   *slog.Logger
	ptmx     io.ReadWriteCloser
	content  bytes.Buffer
	viewport viewport.Model
	outputCh chan []byte
	done     chan struct{} // closed by Dispose
	stopped  chan struct{} // closed when the reader exits
	exited   bool
}

var _ Pane = (*Shell)(nil)

// NewShell creates a shell pane that runs command in workDir once Init is
// called.
func NewShell(id, command, workDir string, runner Runner, c grid.Constraints, logger *slog.Logger) *Shell {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if command == "" {
		command = "/bin/sh"
	}
	return &Shell{
		base:     base{id: id, kind: KindShell, title: "shell", constraints: c},
		runner:   runner,
		command:  command,
		workDir:  workDir,
		logger:   logger.With("pane", id),
		viewport: viewport.New(0, 0),
		outputCh: make(chan []byte, 64),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

// Init spawns the shell and starts reading from the PTY.
func (s *Shell) Init() tea.Cmd {
	if s.ptmx != nil || s.disposed {
		return nil
	}
	cmd := exec.Command(s.command)
	cmd.Dir = s.workDir
	if cmd.Dir == "" {
		cmd.Dir = "."
	}

	w, h := s.inner()
	ptmx, err := s.runner.Start(cmd, PTYSize{Rows: uint16(max(h, 1)), Cols: uint16(max(w, 1))})
	if err != nil {
		s.logger.Error("spawn shell failed", "command", s.command, "error", err)
		s.content.WriteString("Failed to spawn shell: " + err.Error() + "\r\n")
		s.exited = true
		s.refresh()
		return nil
	}
	s.ptmx = ptmx
	s.logger.Debug("shell started", "command", s.command, "dir", cmd.Dir)

	go func() {
		defer close(s.stopped)
		defer close(s.outputCh)
		buf := make([]byte, 4096)
		for {
			n, err := ptmx.Read(buf)
			if n > 0 {
				cp := make([]byte, n)
				copy(cp, buf[:n])
				// Nobody drains the channel once the pane is gone.
				select {
				case s.outputCh <- cp:
				case <-s.done:
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()

	return s.waitForOutput()
}

func (s *Shell) waitForOutput() tea.Cmd {
	ch, id := s.outputCh, s.id
	return func() tea.Msg {
		data, ok := <-ch
		if !ok {
			return ExitedMsg{ID: id}
		}
		return OutputMsg{ID: id, Data: data}
	}
}

// Update handles PTY output addressed to this pane and passes keys through.
func (s *Shell) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case OutputMsg:
		if msg.ID != s.id {
			return nil
		}
		s.content.Write(msg.Data)
		if over := s.content.Len() - maxScrollback; over > 0 {
			s.content.Next(over)
		}
		s.refresh()
		s.viewport.GotoBottom()
		return s.waitForOutput()
	case ExitedMsg:
		if msg.ID != s.id || s.exited {
			return nil
		}
		s.exited = true
		s.content.WriteString("\r\n[process exited]\r\n")
		s.refresh()
		s.viewport.GotoBottom()
		return nil
	case tea.KeyMsg:
		if s.ptmx != nil && !s.exited {
			if b := keyToPTYBytes(msg); len(b) > 0 {
				if _, err := s.ptmx.Write(b); err != nil {
					s.logger.Debug("write to pty failed", "error", err)
				}
			}
		}
		return nil
	}
	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)
	return cmd
}

// Output returns the captured output.
func (s *Shell) Output() string { return s.content.String() }

// Exited reports whether the shell process is gone.
func (s *Shell) Exited() bool { return s.exited }

// Layout resizes the viewport and the PTY to the pane's content area.
func (s *Shell) Layout(width, height int, _ grid.Orientation) {
	s.setSize(width, height)
	w, h := s.inner()
	s.viewport.Width, s.viewport.Height = w, h
	if s.ptmx != nil && w > 0 && h > 0 {
		if err := s.runner.Resize(s.ptmx, PTYSize{Rows: uint16(h), Cols: uint16(w)}); err != nil {
			s.logger.Debug("resize pty failed", "error", err)
		}
	}
	s.refresh()
}

func (s *Shell) Render(focused bool) string {
	return s.frame(s.viewport.View(), focused)
}

// Dispose closes the PTY, which ends the shell.
func (s *Shell) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	close(s.done)
	if s.ptmx != nil {
		if err := s.ptmx.Close(); err != nil {
			s.logger.Debug("close pty failed", "error", err)
		}
	}
}

func (s *Shell) refresh() {
	s.viewport.SetContent(s.content.String())
}

// keyToPTYBytes converts a Bubble Tea KeyMsg to bytes the PTY expects.
func keyToPTYBytes(msg tea.KeyMsg) []byte {
	switch msg.Type {
	case tea.KeyEnter:
		return []byte{'\r'}
	case tea.KeyBackspace:
		return []byte{0x7f}
	case tea.KeyTab:
		return []byte{'\t'}
	case tea.KeySpace:
		return []byte{' '}
	case tea.KeyUp:
		return []byte{0x1b, '[', 'A'}
	case tea.KeyDown:
		return []byte{0x1b, '[', 'B'}
	case tea.KeyRight:
		return []byte{0x1b, '[', 'C'}
	case tea.KeyLeft:
		return []byte{0x1b, '[', 'D'}
	case tea.KeyCtrlC:
		return []byte{0x03}
	case tea.KeyCtrlD:
		return []byte{0x04}
	case tea.KeyEsc:
		return []byte{0x1b}
	case tea.KeyRunes:
		return []byte(string(msg.Runes))
	default:
		if len(msg.Runes) > 0 {
			return []byte(string(msg.Runes))
		}
		return nil
	}
}
