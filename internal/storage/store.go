package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/ballsim/internal/config"
	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/logging"
	"github.com/san-kum/ballsim/internal/sim"
	"github.com/san-kum/ballsim/internal/timing"
)

const (
	metadataFile = "metadata.json"
	statesFile   = "states.csv"
)

var csvHeader = []string{"step", "time", "y", "vy", "bounced"}

type Store struct {
	baseDir string
	clock   timing.Clock
	log     *slog.Logger
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, clock: timing.WallClock{}, log: logging.Discard()}
}

func (s *Store) WithClock(c timing.Clock) *Store {
	s.clock = c
	return s
}

func (s *Store) WithLogger(l *slog.Logger) *Store {
	s.log = l
	return s
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID            string             `json:"id"`
	Scenario      string             `json:"scenario"`
	Timestamp     time.Time          `json:"timestamp"`
	Gravity       float64            `json:"gravity"`
	Dt            float64            `json:"dt"`
	Restitution   float64            `json:"restitution"`
	RestThreshold float64            `json:"rest_threshold"`
	Y0            float64            `json:"y0"`
	VY0           float64            `json:"vy0"`
	Steps         int                `json:"steps"`
	Bounces       int                `json:"bounces"`
	FirstContact  int                `json:"first_contact"`
	Metrics       map[string]float64 `json:"metrics"`
}

// Save writes a run under a new directory and returns its id.
func (s *Store) Save(cfg *config.Config, result *sim.Result) (string, error) {
	now := s.clock.Now()
	runID := fmt.Sprintf("%s_%d", cfg.Scenario, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:            runID,
		Scenario:      cfg.Scenario,
		Timestamp:     now,
		Gravity:       cfg.Gravity,
		Dt:            cfg.Dt,
		Restitution:   cfg.Restitution,
		RestThreshold: cfg.RestThreshold,
		Y0:            result.Start.Position,
		VY0:           result.Start.Velocity,
		Steps:         result.StepsTaken,
		Bounces:       result.Bounces,
		FirstContact:  result.FirstContact,
		Metrics:       result.Metrics,
	}

	if err := writeMetadata(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeSamples(filepath.Join(runDir, statesFile), result.Samples); err != nil {
		return "", err
	}

	s.log.Info("run saved", "id", runID, "samples", len(result.Samples))
	return runID, nil
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

func writeSamples(path string, samples []dynamo.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, smp := range samples {
		row := []string{
			strconv.Itoa(smp.Step),
			strconv.FormatFloat(smp.Time, 'g', -1, 64),
			strconv.FormatFloat(smp.Position, 'g', -1, 64),
			strconv.FormatFloat(smp.Velocity, 'g', -1, 64),
			strconv.FormatBool(smp.Bounced),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
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
			s.log.Debug("skipping unreadable run", "dir", entry.Name(), "err", err)
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
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

func (s *Store) LoadSamples(runID string) ([]dynamo.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, statesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(csvHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []dynamo.Sample{}, nil
	}

	samples := make([]dynamo.Sample, 0, len(records)-1)
	for i, record := range records[1:] {
		smp, err := parseSample(record)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", statesFile, i+2, err)
		}
		samples = append(samples, smp)
	}

	return samples, nil
}

func parseSample(record []string) (dynamo.Sample, error) {
	var smp dynamo.Sample
	var err error

	if smp.Step, err = strconv.Atoi(record[0]); err != nil {
		return smp, err
	}
	if smp.Time, err = strconv.ParseFloat(record[1], 64); err != nil {
		return smp, err
	}
	if smp.Position, err = strconv.ParseFloat(record[2], 64); err != nil {
		return smp, err
	}
	if smp.Velocity, err = strconv.ParseFloat(record[3], 64); err != nil {
		return smp, err
	}
	if smp.Bounced, err = strconv.ParseBool(record[4]); err != nil {
		return smp, err
	}
	return smp, nil
}
