// Package tunnel assembles the tube around a Lissajous curve: regular
// polygon rings sampled at uniform parameter spacing over one period, joined
// ring to ring by wall faces.
//
// A [Tunnel] is immutable once built. Changing a structural option means
// building a new one with [Build]; holders of the old value keep a valid
// tunnel.
package tunnel
