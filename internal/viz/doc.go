// Package viz provides the terminal room viewer.
//
// The viewer is a Bubble Tea program that drives a [rig.Rig] at a fixed
// frame rate and draws a top-down map of the room:
//
//   - [Model]: the program model; keys and clicks go through the dispatcher
//   - [Canvas]: Braille-based pixel canvas for the map
//   - [Projector]: maps room coordinates (X, Z) onto the canvas
//
// # Key Bindings
//
//	1-5       - Look at a target (see `roomnav bindings`)
//	0/Esc/Bksp - Back to the overview
//	Tab       - Cycle through targets
//	T         - Cycle color themes
//	?         - Show help overlay
//	Q         - Quit
//
// Clicking a numbered marker on the map fires that object's binding.
package viz
