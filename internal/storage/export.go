package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/poincare/internal/dynamo"
)

// ExportCSV writes points as index,theta,omega with full float precision.
func ExportCSV(w io.Writer, points []dynamo.SamplePoint) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"index", "theta", "omega"}); err != nil {
		return err
	}
	for i, p := range points {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(p.Theta, 'g', -1, 64),
			strconv.FormatFloat(p.Omega, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

type ExportData struct {
	*RunMetadata
	Points []dynamo.SamplePoint `json:"points,omitempty"`
}

func ExportJSON(w io.Writer, meta *RunMetadata) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(meta)
}

// ExportRunJSON writes metadata and points as one document.
func ExportRunJSON(w io.Writer, meta *RunMetadata, points []dynamo.SamplePoint) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{RunMetadata: meta, Points: points})
}
