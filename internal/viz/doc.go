// Package viz renders a tunnel session in the terminal.
//
// The package implements a live TUI using the Bubble Tea framework:
//
//   - [Model]: drives a [session.Session] from the 60 fps tick and maps keys
//     onto its setters
//   - [Canvas]: Braille-based pixel canvas
//   - [Projector]: perspective projection from a camera pose
//   - [TunnelWireframe]: the edges a frame draws, honouring the view toggles
//
// # Key Bindings
//
//	↑/↓   - Speed up / slow down (±0.005)
//	Space - Stop the camera
//	O     - Flip inside/outside perspective
//	W C   - Wireframe / culling
//	L A T - Longitude, latitude and tunnel visibility
//	I     - Intermittent walls
//	+/-   - More / fewer rings
//	[ ]   - Wall alpha
//	R     - Restart the visualization
//	Y     - Cycle colour themes
//	?     - Help overlay
//
// [session.Session]: github.com/san-kum/lissatunnel/internal/session.Session
package viz
