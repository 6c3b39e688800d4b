// Package view holds the render toggles the renderer consults every frame.
package view

// State is the set of independent render toggles. The zero value hides
// everything; use Default for the initial UI state.
type State struct {
	ShowLongitude bool `yaml:"show_longitude" json:"show_longitude"`
	ShowLatitude  bool `yaml:"show_latitude" json:"show_latitude"`
	ShowTunnel    bool `yaml:"show_tunnel" json:"show_tunnel"`
	ShowWireframe bool `yaml:"show_wireframe" json:"show_wireframe"`
	EnableCulling bool `yaml:"enable_culling" json:"enable_culling"`
}

// Default shows the guide curves and the tunnel, filled and unculled.
func Default() State {
	return State{ShowLongitude: true, ShowLatitude: true, ShowTunnel: true}
}

func (s *State) SetShowLongitude(v bool) { s.ShowLongitude = v }
func (s *State) SetShowLatitude(v bool)  { s.ShowLatitude = v }
func (s *State) SetShowTunnel(v bool)    { s.ShowTunnel = v }
func (s *State) SetShowWireframe(v bool) { s.ShowWireframe = v }
func (s *State) SetEnableCulling(v bool) { s.EnableCulling = v }

// Toggle flips the named toggle and reports whether the name was known.
func (s *State) Toggle(name string) bool {
	switch name {
	case "longitude":
		s.ShowLongitude = !s.ShowLongitude
	case "latitude":
		s.ShowLatitude = !s.ShowLatitude
	case "tunnel":
		s.ShowTunnel = !s.ShowTunnel
	case "wireframe":
		s.ShowWireframe = !s.ShowWireframe
	case "culling":
		s.EnableCulling = !s.EnableCulling
	default:
		return false
	}
	return true
}

// DrawsWalls reports whether tunnel faces should be rasterized this frame.
func (s State) DrawsWalls() bool { return s.ShowTunnel }

// DrawsFilled reports whether walls are drawn filled rather than as a
// wireframe overlay.
func (s State) DrawsFilled() bool { return s.ShowTunnel && !s.ShowWireframe }
