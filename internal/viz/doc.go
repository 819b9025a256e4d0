// Package viz draws Poincaré sections in the terminal.
//
//   - [Canvas]: Braille-based pixel canvas, 2x4 dots per cell
//   - [RenderSection]: projects section points onto a canvas
//   - [RunViewer]: interactive Bubble Tea browser for stored or fresh runs
//
// # Key Bindings
//
//	Space - Pause/Resume the point reveal
//	R     - Replay the reveal from the first point
//	Z     - Toggle the theta > 2 region of interest
//	T     - Cycle color themes
//	Esc   - Back to the run list
//	Q     - Quit
package viz
