package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/roomnav/internal/rig"
)

type ExportFrame struct {
	Index    int       `json:"index"`
	Elapsed  float64   `json:"elapsed"`
	Target   string    `json:"target"`
	Position []float64 `json:"position"`
	LookAt   []float64 `json:"look_at"`
	Distance float64   `json:"distance"`
}

type ExportData struct {
	RunMetadata
	Trace []ExportFrame `json:"trace"`
}

// ExportJSON writes a run and its frames as one JSON document.
func ExportJSON(w io.Writer, meta RunMetadata, frames []rig.Frame) error {
	data := ExportData{
		RunMetadata: meta,
		Trace:       make([]ExportFrame, len(frames)),
	}
	for i, f := range frames {
		data.Trace[i] = ExportFrame{
			Index:    f.Index,
			Elapsed:  f.Elapsed.Seconds(),
			Target:   f.Target.String(),
			Position: f.Live.Position.Components(),
			LookAt:   f.Live.LookAt.Components(),
			Distance: f.Distance,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
