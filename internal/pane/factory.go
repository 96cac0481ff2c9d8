package pane

import (
	"fmt"
	"log/slog"

	"devgrid/internal/grid"
)

// Factory builds panes by kind. Its Build method is a grid.ViewFactory, so
// saved layouts are restored from pane ids alone.
type Factory struct {
	Shell       string
	WorkDir     string
	Runner      Runner
	Constraints grid.Constraints
	// Inspect supplies the document inspector panes display.
	Inspect func() grid.State
	// WelcomeText is the body of new text panes.
	WelcomeText string
	Logger      *slog.Logger
}

// New creates a pane of kind with a fresh id.
func (f *Factory) New(kind Kind) (Pane, error) {
	return f.Build(NewID(kind))
}

// Build creates the pane for id, which must carry a known kind prefix.
func (f *Factory) Build(id string) (Pane, error) {
	kind, ok := KindOf(id)
	if !ok {
		return nil, fmt.Errorf("pane %q: %w", id, ErrUnknownKind)
	}
	switch kind {
	case KindText:
		return NewText(id, "notes", f.WelcomeText, f.Constraints), nil
	case KindInspector:
		return NewInspector(id, f.Inspect, f.Constraints), nil
	case KindShell:
		runner := f.Runner
		if runner == nil {
			runner = CreackPTY{}
		}
		return NewShell(id, f.Shell, f.WorkDir, runner, f.Constraints, f.Logger), nil
	}
	return nil, fmt.Errorf("pane %q: %w", id, ErrUnknownKind)
}

// ViewFactory adapts Build to grid.Deserialize.
func (f *Factory) ViewFactory() grid.ViewFactory {
	return func(id string) (grid.View, error) {
		p, err := f.Build(id)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}
