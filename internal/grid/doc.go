// Package grid implements a constraint-based recursive grid layout engine.
//
// A Grid partitions a rectangular surface into panes (Views) arranged in a
// tree of Branches. Each Branch lays its children out along one Orientation
// and each Leaf wraps exactly one View. The Grid owns every mutation:
// adding, splitting and removing views, proportional resizing, sash
// dragging, and serializing the tree to a State that can be restored later.
//
// All operations are synchronous and single-threaded. Events are emitted
// after the tree has been fully updated; listeners may re-enter the Grid.
package grid
