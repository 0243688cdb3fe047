// Package viz renders two-body runs in the terminal using Bubble Tea.
//
//   - [Model]: live view stepping the pair each frame, with trails, an
//     energy drift chart and a stats panel
//   - [Picker]: scenario menu opening a live view
//   - [Canvas]: braille-based pixel canvas, with [Frame] mapping world
//     coordinates onto it
//   - [SummaryTable]: lipgloss table of per-run metrics
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reset to initial state
//	+ / - - Double or halve steps per frame
//	T     - Cycle color themes
//	?     - Show help overlay
//
// A failed step (coincident bodies or a non-finite state) stops the view and
// shows the error; R starts over.
package viz
