package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/poincare/internal/analysis"
	"github.com/san-kum/poincare/internal/config"
	"github.com/san-kum/poincare/internal/dynamo"
	"github.com/san-kum/poincare/internal/storage"
	"github.com/san-kum/poincare/internal/viz"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMETHOD\tTIME\tPOINTS\tSTEPS\tREJECTED\tFLOORS\tELAPSED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
			run.ID,
			run.Method,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.NumPoints,
			run.Stats.Accepted,
			run.Stats.Rejected,
			run.Stats.FloorAccepts,
			run.Elapsed,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []dynamo.SamplePoint, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	points, err := st.LoadPoints(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, points, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, points, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if len(points) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("method: %s\n", meta.Method)
	fmt.Printf("points: %d\n\n", len(points))

	theta, omega := analysis.Split(points)
	for _, series := range []struct {
		data    []float64
		caption string
	}{
		{theta, "theta per drive period"},
		{omega, "omega per drive period"},
	} {
		graph := asciigraph.Plot(series.data,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption(series.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func phaseRun(cmd *cobra.Command, args []string) error {
	meta, points, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if len(points) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s (%s)\n\n", meta.ID, meta.Method)
	fmt.Println(analysis.SectionToASCII(points, phaseWidth, phaseHeight))
	fmt.Println(viz.FieldTable(summaryFields(analysis.Summarize(points))))
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, points, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportCSV(os.Stdout, points)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, points, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportRunJSON(os.Stdout, meta, points)
}

// viewSections opens the viewer on stored runs when ids are given, and
// on presets integrated on demand otherwise.
func viewSections(cmd *cobra.Command, args []string) error {
	var sources []viz.Source
	if len(args) > 0 {
		st := storage.New(dataDir)
		for _, id := range args {
			sources = append(sources, storedSource(st, id))
		}
	} else if len(presetNames) > 0 {
		for _, name := range presetNames {
			spec, err := lookupPreset(name)
			if err != nil {
				return err
			}
			sources = append(sources, presetSource(name, spec))
		}
	} else {
		for _, regime := range config.ListRegimes() {
			for _, name := range config.ListPresets(regime) {
				sources = append(sources, presetSource(regime+"/"+name, config.GetPreset(regime, name)))
			}
		}
	}

	return viz.RunViewer(cmd.Context(), sources)
}

func storedSource(st *storage.Store, runID string) viz.Source {
	return viz.Source{
		Name:   runID,
		Detail: "stored",
		Load: func(ctx context.Context) (*viz.Section, error) {
			meta, err := st.Load(runID)
			if err != nil {
				return nil, err
			}
			points, err := st.LoadPoints(runID)
			if err != nil {
				return nil, err
			}
			fields := []viz.Field{{Label: "method", Value: meta.Method.String()}}
			fields = append(fields, stepFields(meta.Method, meta.Dt, meta.K, meta.Tolerances, meta.Stats)...)
			return &viz.Section{Title: meta.ID, Points: points, Fields: fields}, nil
		},
	}
}
