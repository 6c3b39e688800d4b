package flight

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/lissatunnel/internal/geom"
	"github.com/san-kum/lissatunnel/internal/session"
)

// Store keeps recorded flights on disk, one directory per run holding
// metadata.json and samples.csv.
type Store struct {
	baseDir string
}

func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Timestamp time.Time          `json:"timestamp"`
	A         float64            `json:"a"`
	B         float64            `json:"b"`
	R         float64            `json:"r"`
	Period    float64            `json:"period"`
	Polygons  int                `json:"num_polygons"`
	Sides     int                `json:"sides"`
	Speed     float64            `json:"speed"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Metrics   map[string]float64 `json:"metrics"`
}

var csvHeader = []string{"time", "t", "speed", "x", "y", "z", "fx", "fy", "fz"}

func (s *Store) Save(name string, sc session.Config, period float64, cfg Config, result *Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Name:      name,
		Timestamp: now,
		A:         sc.A,
		B:         sc.B,
		R:         sc.R,
		Period:    period,
		Polygons:  sc.NumPolygons,
		Sides:     sc.PolygonSides,
		Speed:     sc.Speed,
		Dt:        cfg.Dt,
		Duration:  cfg.Duration,
		Metrics:   result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "samples.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
	for _, smp := range result.Samples {
		row := []string{
			f(smp.Time), f(smp.T), f(smp.Speed),
			f(smp.Position.X), f(smp.Position.Y), f(smp.Position.Z),
			f(smp.Forward.X), f(smp.Forward.Y), f(smp.Forward.Z),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSamples reads a run's samples back. Rows that do not parse are
// skipped.
func (s *Store) LoadSamples(runID string) ([]Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "samples.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []Sample{}, nil
	}

	samples := make([]Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) != len(csvHeader) {
			continue
		}
		var v [9]float64
		ok := true
		for j := range v {
			if v[j], err = strconv.ParseFloat(record[j], 64); err != nil {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		samples = append(samples, Sample{
			Time: v[0], T: v[1], Speed: v[2],
			Position: geom.Vec3{X: v[3], Y: v[4], Z: v[5]},
			Forward:  geom.Vec3{X: v[6], Y: v[7], Z: v[8]},
		})
	}

	return samples, nil
}
