package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/labcalc/internal/decimal"
	"github.com/san-kum/labcalc/internal/physnum"
	"github.com/san-kum/labcalc/internal/units"
	"github.com/san-kum/labcalc/internal/worksheet"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string    `json:"id"`
	Sheet      string    `json:"sheet"`
	Timestamp  time.Time `json:"timestamp"`
	Precision  int       `json:"precision"`
	Rounding   string    `json:"rounding"`
	Dimensions string    `json:"dimensions"`
	Results    int       `json:"results"`
}

// StoredResult is one row of results.csv.
type StoredResult struct {
	Name        string
	Value       decimal.Decimal
	Uncertainty decimal.Decimal
	Unit        string
	Percentage  string
}

// Number rebuilds the measured value, looking the unit up in the default registry.
func (r StoredResult) Number() (physnum.Number, error) {
	var u units.Unit
	if r.Unit != "" {
		var err error
		u, err = units.Default.Lookup(r.Unit)
		if err != nil {
			return physnum.Number{}, err
		}
	}
	return physnum.New(r.Value, r.Uncertainty, u)
}

var csvHeader = []string{"name", "value", "uncertainty", "unit", "percentage"}

// Save writes <baseDir>/<id>/metadata.json and results.csv and returns the run id.
func (s *Store) Save(sheet string, results []worksheet.Result) (string, error) {
	runID := uuid.NewString()
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	ctx := decimal.CurrentContext()
	meta := RunMetadata{
		ID:         runID,
		Sheet:      sheet,
		Timestamp:  time.Now().UTC(),
		Precision:  ctx.Precision,
		Rounding:   string(ctx.Rounding),
		Dimensions: physnum.CurrentDimensionPolicy().String(),
		Results:    len(results),
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

	csvFile, err := os.Create(filepath.Join(runDir, "results.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for _, r := range results {
		n := r.Number
		row := []string{
			r.Name,
			n.Value().String(),
			n.Uncertainty().String(),
			n.Unit().Symbol,
			n.PercentageString(),
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

// List returns every readable run, newest first.
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

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
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

func (s *Store) LoadResults(runID string) ([]StoredResult, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "results.csv"))
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
		return []StoredResult{}, nil
	}

	out := make([]StoredResult, 0, len(records)-1)
	for i, record := range records[1:] {
		v, err := decimal.Parse(record[1])
		if err != nil {
			return nil, fmt.Errorf("results.csv row %d: %w", i+2, err)
		}
		e, err := decimal.Parse(record[2])
		if err != nil {
			return nil, fmt.Errorf("results.csv row %d: %w", i+2, err)
		}
		out = append(out, StoredResult{
			Name:        record[0],
			Value:       v,
			Uncertainty: e,
			Unit:        record[3],
			Percentage:  record[4],
		})
	}
	return out, nil
}
