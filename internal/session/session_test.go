package session

import (
	"bytes"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"

	"github.com/san-kum/lissatunnel/internal/tunnel"
)

var _ = Describe("Registry", func() {
	It("resolves registered surfaces", func() {
		reg := NewRegistry()
		reg.Register(NewSurface("canvas", 1120, 630))

		s, err := reg.Resolve("canvas")
		Expect(err).NotTo(HaveOccurred())
		w, h := s.Size()
		Expect([]int{w, h}).To(Equal([]int{1120, 630}))
	})

	It("reports unknown ids as SurfaceNotFound", func() {
		_, err := NewRegistry().Resolve("nope")
		Expect(err).To(MatchError(ErrSurfaceNotFound))

		var nilReg *Registry
		_, err = nilReg.Resolve("canvas")
		Expect(err).To(MatchError(ErrSurfaceNotFound))
	})
})

var _ = Describe("Session", func() {
	var (
		reg *Registry
		s   *Session
		buf *bytes.Buffer
	)

	BeforeEach(func() {
		reg = NewRegistry()
		reg.Register(NewSurface("canvas", 1120, 630))
		buf = &bytes.Buffer{}

		var err error
		s, err = StartSimpleTunnel(reg, "canvas", 2, 7, 5, 1, 7, 200,
			WithLogger(zerolog.New(buf).Level(zerolog.DebugLevel)))
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("starting", func() {
		It("builds the initial tunnel", func() {
			t := s.Tunnel()
			Expect(t).NotTo(BeNil())
			Expect(t.Rings).To(HaveLen(200))
			Expect(t.Rings[0].Vertices).To(HaveLen(7))
			Expect(s.CurrentCameraT()).To(BeZero())
			Expect(s.Camera().Speed).To(Equal(DefaultSpeed))
			Expect(buf.String()).To(ContainSubstring("session started"))
		})

		It("fails for an unknown canvas without touching a running session", func() {
			_, err := StartSimpleTunnel(reg, "missing", 2, 7, 5, 1, 7, 200)
			Expect(err).To(MatchError(ErrSurfaceNotFound))
			Expect(s.Tunnel().Rings).To(HaveLen(200))
		})

		It("starts a lissajous tunnel with an initial speed", func() {
			l, err := StartLissajousTunnel(reg, "canvas", 2, 7, 5, 1, 7, -0.3)
			Expect(err).NotTo(HaveOccurred())
			Expect(l.Camera().Speed).To(Equal(-0.3))
			Expect(l.Tunnel().Rings).To(HaveLen(DefaultNumPolygons))
		})

		It("rejects invalid starting geometry", func() {
			_, err := StartSimpleTunnel(reg, "canvas", 2, 7, 5, 1, 2, 200)
			Expect(err).To(MatchError(tunnel.ErrInvalidConfiguration))
			_, err = StartSimpleTunnel(reg, "canvas", 0, 7, 5, 1, 7, 200)
			Expect(err).To(MatchError(tunnel.ErrInvalidConfiguration))
		})
	})

	Describe("ticking", func() {
		It("advances t by speed times dt", func() {
			s.SetSpeed(0.1)
			for i := 0; i < 100; i++ {
				s.Tick(0.016)
			}
			Expect(s.CurrentCameraT()).To(BeNumerically("~", 0.16, 1e-3))
			Expect(s.Frames()).To(BeEquivalentTo(100))
		})

		It("keeps t within the period in reverse", func() {
			s.SetSpeed(-0.5)
			for i := 0; i < 1000; i++ {
				s.Tick(0.1)
				Expect(s.CurrentCameraT()).To(And(BeNumerically(">=", 0), BeNumerically("<", s.Params().Period())))
			}
		})

		It("does not rebuild the tunnel", func() {
			before := s.Tunnel()
			s.Tick(1)
			Expect(s.Tunnel()).To(BeIdenticalTo(before))
		})
	})

	Describe("camera placement", func() {
		It("wraps t into the period and ignores NaN", func() {
			s.SetCameraT(s.Params().Period() + 0.5)
			Expect(s.CurrentCameraT()).To(BeNumerically("~", 0.5, 1e-9))
			s.SetCameraT(math.NaN())
			Expect(s.CurrentCameraT()).To(BeNumerically("~", 0.5, 1e-9))
		})
	})

	Describe("speed", func() {
		It("clamps out of range values", func() {
			Expect(s.SetSpeed(2)).To(Equal(0.5))
			Expect(s.SetSpeed(-2)).To(Equal(-0.5))
			s.Stop()
			Expect(s.Camera().Speed).To(BeZero())
			Expect(s.NudgeSpeed(0.005)).To(BeNumerically("~", 0.005, 1e-12))
		})
	})

	Describe("polygon count", func() {
		It("rejects 1001 and keeps the 200 ring tunnel", func() {
			before := s.Tunnel()
			err := s.SetNumPolygons(1001)
			Expect(err).To(MatchError(tunnel.ErrInvalidConfiguration))
			Expect(s.Tunnel()).To(BeIdenticalTo(before))
			Expect(s.Tunnel().Rings).To(HaveLen(200))
			Expect(buf.String()).To(ContainSubstring("configuration rejected"))
		})

		It("swaps in a new tunnel and leaves the old one intact", func() {
			old := s.Tunnel()
			Expect(s.SetNumPolygons(50)).To(Succeed())
			Expect(s.Tunnel().Rings).To(HaveLen(50))
			Expect(old.Rings).To(HaveLen(200))
		})

		It("preserves the camera across a rebuild", func() {
			s.Tick(3)
			t := s.CurrentCameraT()
			Expect(s.SetNumPolygons(20)).To(Succeed())
			Expect(s.CurrentCameraT()).To(Equal(t))
		})
	})

	Describe("wall alpha", func() {
		It("rejects 1.5 and accepts 0.8", func() {
			Expect(s.SetWallAlpha(1.5)).To(MatchError(tunnel.ErrInvalidConfiguration))
			Expect(s.Tunnel().WallAlpha).To(Equal(DefaultWallAlpha))

			Expect(s.SetWallAlpha(0.8)).To(Succeed())
			Expect(s.Tunnel().WallAlpha).To(Equal(0.8))

			Expect(s.Restart()).To(Succeed())
			Expect(s.Tunnel().WallAlpha).To(Equal(0.8))
		})
	})

	Describe("intermittent walls", func() {
		It("rebuilds with faces only at even ring pairs", func() {
			Expect(s.SetIntermittentWalls(true)).To(Succeed())
			faces := s.Tunnel().Faces
			Expect(faces).To(HaveLen(100))
			for _, f := range faces {
				Expect(f.From % 2).To(BeZero())
			}
			Expect(s.SetIntermittentWalls(false)).To(Succeed())
			Expect(s.Tunnel().Faces).To(HaveLen(200))
		})
	})

	Describe("restart", func() {
		It("rebuilds from current configuration and keeps speed and t", func() {
			s.SetSpeed(0.25)
			s.Tick(2)
			t := s.CurrentCameraT()
			before := s.Tunnel()

			Expect(s.RestartVisualization("canvas")).To(Succeed())
			Expect(s.Tunnel()).NotTo(BeIdenticalTo(before))
			Expect(s.Tunnel()).To(Equal(before))
			Expect(s.CurrentCameraT()).To(Equal(t))
			Expect(s.Camera().Speed).To(Equal(0.25))
		})

		It("rejects a different canvas id", func() {
			Expect(s.RestartVisualization("other")).To(MatchError(ErrSurfaceNotFound))
		})
	})

	Describe("view toggles", func() {
		It("changes each toggle independently", func() {
			s.SetShowWireframe(true)
			s.SetEnableCulling(true)
			s.SetShowLongitude(false)
			v := s.View()
			Expect(v.ShowWireframe).To(BeTrue())
			Expect(v.EnableCulling).To(BeTrue())
			Expect(v.ShowLongitude).To(BeFalse())
			Expect(v.ShowLatitude).To(BeTrue())
			Expect(v.ShowTunnel).To(BeTrue())

			s.SetShowLatitude(false)
			s.SetShowTunnel(false)
			Expect(s.Snapshot().View.ShowLatitude).To(BeFalse())
			Expect(s.Snapshot().View.ShowTunnel).To(BeFalse())
		})
	})

	Describe("perspective", func() {
		It("flips the view without rebuilding", func() {
			before := s.Tunnel()
			inside := s.Pose()

			s.TogglePerspective(true)
			Expect(s.Camera().OutsideView).To(BeTrue())
			outside := s.Pose()
			Expect(outside.Position).NotTo(Equal(inside.Position))
			Expect(outside.LookAt.Near(inside.Position, 1e-12)).To(BeTrue())
			Expect(s.Tunnel()).To(BeIdenticalTo(before))

			Expect(s.FlipPerspective()).To(BeFalse())
			s.SetOutsideView(true)
			Expect(s.Snapshot().Camera.OutsideView).To(BeTrue())
		})
	})

	Describe("snapshot", func() {
		It("carries a consistent frame", func() {
			s.Tick(0.5)
			snap := s.Snapshot()
			Expect(snap.Tunnel).To(BeIdenticalTo(s.Tunnel()))
			Expect(snap.Camera.T).To(Equal(s.CurrentCameraT()))
			Expect(snap.Pose).To(Equal(s.Pose()))
			Expect(snap.Frame).To(BeEquivalentTo(1))
		})
	})

	Describe("config", func() {
		It("reports the live configuration", func() {
			Expect(s.SetNumPolygons(64)).To(Succeed())
			s.SetSpeed(-0.2)
			cfg := s.Config()
			Expect(cfg.NumPolygons).To(Equal(64))
			Expect(cfg.Speed).To(Equal(-0.2))
			Expect(cfg.A).To(Equal(2.0))
			Expect(math.Abs(cfg.PolygonRadius - 1)).To(BeNumerically("<", 1e-12))
		})
	})
})
