package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/poincare/internal/config"
	"github.com/san-kum/poincare/internal/dynamo"
	"github.com/san-kum/poincare/internal/sim"
)

const (
	metadataFile = "metadata.json"
	pointsFile   = "points.csv"
)

var ErrRunNotFound = errors.New("storage: run not found")

// Store keeps one directory per run under baseDir.
type Store struct {
	baseDir string
	now     func() time.Time
	create  func(name string) (io.WriteCloser, error)
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now, create: createFile}
}

func createFile(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

type RunMetadata struct {
	ID         string            `json:"id"`
	Timestamp  time.Time         `json:"timestamp"`
	Method     dynamo.Method     `json:"method"`
	Period     float64           `json:"period"`
	Dt         float64           `json:"dt,omitempty"`
	K          int               `json:"k,omitempty"`
	Tolerances dynamo.Tolerances `json:"tolerances"`
	Stats      dynamo.Stats      `json:"stats"`
	NumPoints  int               `json:"num_points"`
	Elapsed    time.Duration     `json:"elapsed_ns"`
	Spec       *config.RunSpec   `json:"spec"`
}

// Save writes metadata.json and points.csv into a fresh run directory
// named after out_base and returns its id.
func (s *Store) Save(spec *config.RunSpec, result *sim.Result) (string, error) {
	if err := s.Init(); err != nil {
		return "", err
	}

	ts := s.now()
	runID, err := s.createRunDir(fmt.Sprintf("%s_%d", spec.Output.OutBase, ts.Unix()))
	if err != nil {
		return "", err
	}
	runDir := s.Dir(runID)

	meta := RunMetadata{
		ID:         runID,
		Timestamp:  ts,
		Method:     result.Method,
		Period:     result.Period,
		Dt:         result.Dt,
		K:          result.K,
		Tolerances: result.Tolerances,
		Stats:      result.Stats,
		NumPoints:  len(result.Points),
		Elapsed:    result.Elapsed,
		Spec:       spec,
	}

	err = s.writeFile(filepath.Join(runDir, metadataFile), func(w io.Writer) error {
		return ExportJSON(w, &meta)
	})
	if err == nil {
		err = s.writeFile(filepath.Join(runDir, pointsFile), func(w io.Writer) error {
			return ExportCSV(w, result.Points)
		})
	}
	if err != nil {
		// a half-written run must not show up in List
		return "", errors.Join(err, os.RemoveAll(runDir))
	}

	return runID, nil
}

// writeFile creates name and runs write on it. A failed Close fails
// the write.
func (s *Store) writeFile(name string, write func(io.Writer) error) (err error) {
	f, err := s.create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}

// createRunDir claims base, or base-2, base-3, ... when runs land in the
// same second.
func (s *Store) createRunDir(base string) (string, error) {
	id := base
	for n := 2; ; n++ {
		err := os.Mkdir(s.Dir(id), 0755)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", err
		}
		id = fmt.Sprintf("%s-%d", base, n)
	}
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

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir(runID), metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("read %s metadata: %w", runID, err)
	}

	return &meta, nil
}

func (s *Store) LoadPoints(runID string) ([]dynamo.SamplePoint, error) {
	file, err := os.Open(filepath.Join(s.Dir(runID), pointsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	return ReadCSV(file)
}

// ReadCSV parses the index,theta,omega layout written by ExportCSV.
func ReadCSV(r io.Reader) ([]dynamo.SamplePoint, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []dynamo.SamplePoint{}, nil
	}

	points := make([]dynamo.SamplePoint, 0, len(records)-1)
	for i, record := range records[1:] {
		theta, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d theta: %w", i+1, err)
		}
		omega, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d omega: %w", i+1, err)
		}
		points = append(points, dynamo.SamplePoint{Theta: theta, Omega: omega})
	}

	return points, nil
}
