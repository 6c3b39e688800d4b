package stream

import (
	"github.com/san-kum/lissatunnel/internal/geom"
	"github.com/san-kum/lissatunnel/internal/session"
	"github.com/san-kum/lissatunnel/internal/tunnel"
	"github.com/san-kum/lissatunnel/internal/view"
)

const (
	TypeHello  = "hello"
	TypeFrame  = "frame"
	TypeStatus = "status"
)

// Hello is sent once to every frame client when it connects.
type Hello struct {
	Type     string  `json:"type"`
	Revision uint64  `json:"revision"`
	Period   float64 `json:"period"`
	Rings    int     `json:"rings"`
	Sides    int     `json:"sides"`
	FPS      int     `json:"fps"`
}

// Frame is the camera and view for one tick.
type Frame struct {
	Type     string     `json:"type"`
	Frame    uint64     `json:"frame"`
	Revision uint64     `json:"revision"`
	T        float64    `json:"t"`
	Speed    float64    `json:"speed"`
	Outside  bool       `json:"outside"`
	Position [3]float64 `json:"position"`
	LookAt   [3]float64 `json:"look_at"`
	Up       [3]float64 `json:"up"`
	View     view.State `json:"view"`
}

// Control is a batch of setter calls. Absent fields are left alone.
type Control struct {
	Speed        *float64 `json:"speed,omitempty"`
	NumPolygons  *int     `json:"num_polygons,omitempty"`
	WallAlpha    *float64 `json:"wall_alpha,omitempty"`
	Intermittent *bool    `json:"intermittent,omitempty"`
	Outside      *bool    `json:"outside,omitempty"`
	CameraT      *float64 `json:"camera_t,omitempty"`
	Toggle       string   `json:"toggle,omitempty"`
	Restart      bool     `json:"restart,omitempty"`
}

// Status answers a control message.
type Status struct {
	Type         string     `json:"type"`
	OK           bool       `json:"ok"`
	Error        string     `json:"error,omitempty"`
	Revision     uint64     `json:"revision"`
	T            float64    `json:"t"`
	Speed        float64    `json:"speed"`
	Outside      bool       `json:"outside"`
	NumPolygons  int        `json:"num_polygons"`
	WallAlpha    float64    `json:"wall_alpha"`
	Intermittent bool       `json:"intermittent"`
	View         view.State `json:"view"`
}

// MeshMessage is the body of /mesh.
type MeshMessage struct {
	Revision uint64 `json:"revision"`
	Sides    int    `json:"sides"`
	*tunnel.Mesh
}

func vec(v geom.Vec3) [3]float64 { return [3]float64{v.X, v.Y, v.Z} }

func frameOf(snap session.Snapshot, revision uint64) Frame {
	return Frame{
		Type:     TypeFrame,
		Frame:    snap.Frame,
		Revision: revision,
		T:        snap.Camera.T,
		Speed:    snap.Camera.Speed,
		Outside:  snap.Camera.OutsideView,
		Position: vec(snap.Pose.Position),
		LookAt:   vec(snap.Pose.LookAt),
		Up:       vec(snap.Pose.Up),
		View:     snap.View,
	}
}
