package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/ballsim/internal/dynamo"
)

type ExportData struct {
	RunMetadata
	Samples []ExportSample `json:"samples"`
}

type ExportSample struct {
	Step    int     `json:"step"`
	Time    float64 `json:"time"`
	Y       float64 `json:"y"`
	VY      float64 `json:"vy"`
	Bounced bool    `json:"bounced,omitempty"`
}

func ExportJSON(w io.Writer, meta *RunMetadata, samples []dynamo.Sample) error {
	data := ExportData{
		RunMetadata: *meta,
		Samples:     make([]ExportSample, len(samples)),
	}

	for i, s := range samples {
		data.Samples[i] = ExportSample{
			Step:    s.Step,
			Time:    s.Time,
			Y:       s.Position,
			VY:      s.Velocity,
			Bounced: s.Bounced,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
