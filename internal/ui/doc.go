// Package ui hosts the grid in a Bubble Tea program.
//
// The Workbench owns a grid.Grid and the panes living in it. It turns
// terminal size changes into grid resizes, mouse events into sash drags and
// key presses into spacemacs-style leader commands (SPC s v, SPC x, ...).
// Rendering walks the grid tree and joins pane boxes with sash strips, so
// what is drawn is exactly the geometry of the last layout pass.
//
// Modals (confirm close, save layout) are Views pushed on an OverlayStack;
// the topmost overlay receives keys first.
package ui
