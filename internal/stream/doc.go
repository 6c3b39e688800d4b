// Package stream serves a running session to external renderers over
// websockets.
//
// Routes:
//
//	/ws       camera frames, one JSON message per tick after a hello
//	/control  JSON setter messages, answered with the session status
//	/mesh     the current tunnel as vertex and index buffers
//	/health   frame counters
//
// A renderer keeps the mesh it fetched until a frame reports a new
// revision, then fetches /mesh again.
package stream
