// Package flight flies a session headlessly at a fixed frame time and
// records where the camera went.
package flight

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/lissatunnel/internal/geom"
	"github.com/san-kum/lissatunnel/internal/session"
)

type Config struct {
	Dt       float64
	Duration float64
}

// Sample is the camera after one tick.
type Sample struct {
	Time     float64
	T        float64
	Speed    float64
	Position geom.Vec3
	Forward  geom.Vec3
}

type Result struct {
	Samples []Sample
	Metrics map[string]float64
}

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

type Observer interface {
	OnTick(s Sample)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Sample)

func (f ObserverFunc) OnTick(s Sample) { f(s) }

type Recorder struct {
	sess      *session.Session
	metrics   []Metric
	observers []Observer
}

func New(s *session.Session) *Recorder {
	return &Recorder{
		sess:      s,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Recorder) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Recorder) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Recorder) Session() *session.Session { return r.sess }

func (r *Recorder) sample(time float64) Sample {
	cam := r.sess.Camera()
	pose := r.sess.Pose()
	return Sample{
		Time:     time,
		T:        cam.T,
		Speed:    cam.Speed,
		Position: pose.Position,
		Forward:  pose.Forward(),
	}
}

// Run records the starting camera and then ticks the session
// round(Duration/Dt) times. A cancelled context stops the flight early and
// returns what was recorded so far.
func (r *Recorder) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	result := &Result{
		Samples: make([]Sample, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	observe := func(s Sample) {
		result.Samples = append(result.Samples, s)
		for _, m := range r.metrics {
			m.Observe(s)
		}
		for _, o := range r.observers {
			o.OnTick(s)
		}
	}

	observe(r.sample(0))
	for i := 1; i <= steps; i++ {
		select {
		case <-ctx.Done():
			r.collect(result)
			return result, ctx.Err()
		default:
		}

		r.sess.Tick(cfg.Dt)
		observe(r.sample(float64(i) * cfg.Dt))
	}

	r.collect(result)
	return result, nil
}

func (r *Recorder) collect(result *Result) {
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func validateConfig(cfg Config) error {
	if !(cfg.Dt > 0) || math.IsInf(cfg.Dt, 0) {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if !(cfg.Duration > 0) || math.IsInf(cfg.Duration, 0) {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}

// Column extracts one value per sample, for plotting.
func (r *Result) Column(f func(Sample) float64) []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = f(s)
	}
	return out
}
