package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/roomnav/internal/nav"
	"github.com/san-kum/roomnav/internal/rig"
	"github.com/san-kum/roomnav/internal/vec"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

var ErrNoFrames = errors.New("storage: run has no frames")

var frameHeader = []string{
	"frame", "elapsed", "target",
	"pos_x", "pos_y", "pos_z",
	"look_x", "look_y", "look_z",
	"distance",
}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID          string             `json:"id"`
	Layout      string             `json:"layout"`
	Timestamp   time.Time          `json:"timestamp"`
	Script      string             `json:"script"`
	Frames      int                `json:"frames"`
	FrameTime   float64            `json:"frame_time"`
	Damping     string             `json:"damping"`
	Alpha       float64            `json:"alpha"`
	FinalTarget nav.TargetID       `json:"final_target"`
	Ignored     []string           `json:"ignored,omitempty"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes a new run directory and returns its id. ID and Timestamp on
// meta are filled in here.
func (s *Store) Save(meta RunMetadata, frames []rig.Frame) (string, error) {
	meta.ID = uuid.NewString()
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	meta.Frames = len(frames)
	if len(frames) > 0 {
		meta.FinalTarget = frames[len(frames)-1].Target
	}

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeMetadata(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeFrames(filepath.Join(runDir, framesFile), frames); err != nil {
		return "", err
	}
	return meta.ID, nil
}

func writeMetadata(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writeFrames(path string, frames []rig.Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(frameHeader); err != nil {
		return err
	}
	for _, fr := range frames {
		row := []string{
			strconv.Itoa(fr.Index),
			formatFloat(fr.Elapsed.Seconds()),
			fr.Target.String(),
		}
		for _, v := range fr.Live.Position.Components() {
			row = append(row, formatFloat(v))
		}
		for _, v := range fr.Live.LookAt.Components() {
			row = append(row, formatFloat(v))
		}
		row = append(row, formatFloat(fr.Distance))
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// List returns saved runs, oldest first. Unreadable directories are skipped.
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

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadFrames reads the per-frame trace back. Goal poses are not stored and
// come back zero.
func (s *Store) LoadFrames(runID string) ([]rig.Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(frameHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, ErrNoFrames
	}

	frames := make([]rig.Frame, 0, len(records)-1)
	for i, record := range records[1:] {
		fr, err := parseFrame(record)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", framesFile, i+2, err)
		}
		frames = append(frames, fr)
	}
	return frames, nil
}

func parseFrame(record []string) (rig.Frame, error) {
	idx, err := strconv.Atoi(record[0])
	if err != nil {
		return rig.Frame{}, err
	}
	target, err := nav.ParseTarget(record[2])
	if err != nil {
		return rig.Frame{}, err
	}

	nums := make([]float64, 0, 8)
	for _, field := range append([]string{record[1]}, record[3:]...) {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return rig.Frame{}, err
		}
		nums = append(nums, v)
	}

	return rig.Frame{
		Index:   idx,
		Elapsed: time.Duration(nums[0] * float64(time.Second)),
		Target:  target,
		Live: nav.NewPose(
			vec.New(nums[1], nums[2], nums[3]),
			vec.New(nums[4], nums[5], nums[6]),
		),
		Distance: nums[7],
	}, nil
}

// Distances extracts the distance column, for plotting.
func Distances(frames []rig.Frame) []float64 {
	out := make([]float64, len(frames))
	for i, f := range frames {
		out[i] = f.Distance
	}
	return out
}
