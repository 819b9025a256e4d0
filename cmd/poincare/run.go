package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/poincare/internal/analysis"
	"github.com/san-kum/poincare/internal/config"
	"github.com/san-kum/poincare/internal/dynamo"
	"github.com/san-kum/poincare/internal/render"
	"github.com/san-kum/poincare/internal/sim"
	"github.com/san-kum/poincare/internal/storage"
	"github.com/san-kum/poincare/internal/viz"
)

// loadSpecs resolves spec files and --preset names, in that order.
func loadSpecs(paths, presets []string) ([]*config.RunSpec, error) {
	if len(paths) == 0 && len(presets) == 0 {
		paths = []string{config.DefaultFile}
	}

	specs := make([]*config.RunSpec, 0, len(paths)+len(presets))
	for _, path := range paths {
		spec, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		specs = append(specs, spec)
	}
	for _, name := range presets {
		spec, err := lookupPreset(name)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func lookupPreset(name string) (*config.RunSpec, error) {
	regime, preset, ok := strings.Cut(name, "/")
	if !ok {
		return nil, fmt.Errorf("preset %q: want regime/name", name)
	}
	spec := config.GetPreset(regime, preset)
	if spec == nil {
		return nil, fmt.Errorf("unknown preset: %s (available in %s: %v)", name, regime, config.ListPresets(regime))
	}
	return spec, nil
}

func runSections(cmd *cobra.Command, args []string) error {
	specs, err := loadSpecs(args, presetNames)
	if err != nil {
		return err
	}

	if writeConfig != "" {
		if len(specs) != 1 {
			return fmt.Errorf("--write-config needs exactly one spec, got %d", len(specs))
		}
		if err := config.Save(writeConfig, specs[0]); err != nil {
			return err
		}
		logger.Info("spec written", zap.String("path", writeConfig))
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	floors := newFloorLogger(logger)
	results, runErr := sim.NewEnsemble(specs, workers,
		sim.WithObserver(floors),
		sim.WithProgress(progressLogger(logger)),
	).Run(ctx)
	floors.Summarize()

	st := storage.New(dataDir)
	for i, res := range results {
		if res == nil {
			continue
		}
		spec := specs[i]
		fmt.Println(runSummary(spec, res))

		if !noSave {
			id, err := st.Save(spec, res)
			if err != nil {
				return fmt.Errorf("save %s: %w", spec.Output.OutBase, err)
			}
			logger.Info("run stored", zap.String("run_id", id), zap.Int("points", len(res.Points)))
		}

		if !noRender {
			files, err := render.SaveSection(outDir, res.Points, spec)
			if err != nil {
				return fmt.Errorf("render %s: %w", spec.Output.OutBase, err)
			}
			for _, f := range files {
				logger.Info("wrote plot", zap.String("file", f))
			}
		}
	}

	if runErr != nil {
		var re *dynamo.RunError
		if errors.As(runErr, &re) {
			logger.Error("run stopped",
				zap.String("phase", re.Phase),
				zap.Int("period", re.Period),
				zap.Stringer("state", re.State),
				zap.Error(re.Wrapped))
		}
		return runErr
	}
	return nil
}

func runSummary(spec *config.RunSpec, res *sim.Result) string {
	fields := []viz.Field{
		{Label: "run", Value: spec.Output.OutBase},
		{Label: "method", Value: res.Method.String()},
		{Label: "drive", Value: fmt.Sprintf("f=%g q=%g ωd=%g", spec.Phys.FDrive, spec.Phys.Q, spec.Phys.OmegaD)},
		{Label: "period", Value: fmt.Sprintf("%.6f", res.Period)},
	}
	fields = append(fields, stepFields(res.Method, res.Dt, res.K, res.Tolerances, res.Stats)...)
	fields = append(fields,
		viz.Field{Label: "points", Value: fmt.Sprint(len(res.Points))},
		viz.Field{Label: "elapsed", Value: res.Elapsed.Round(time.Millisecond).String()},
	)
	fields = append(fields, summaryFields(analysis.Summarize(res.Points))...)
	return viz.Panel.Render(viz.FieldTable(fields))
}

func stepFields(m dynamo.Method, dt float64, k int, tol dynamo.Tolerances, stats dynamo.Stats) []viz.Field {
	if !m.IsAdaptive() {
		return []viz.Field{
			{Label: "dt", Value: fmt.Sprintf("%.6g (k=%d)", dt, k)},
			{Label: "steps", Value: fmt.Sprint(stats.Accepted)},
		}
	}
	return []viz.Field{
		{Label: "rtol/atol", Value: fmt.Sprintf("%g / %g", tol.Rtol, tol.Atol)},
		{Label: "dt range", Value: fmt.Sprintf("[%.4g, %.4g]", tol.DtMin, tol.DtMax)},
		{Label: "steps", Value: fmt.Sprintf("%d accepted, %d rejected", stats.Accepted, stats.Rejected)},
		{Label: "floor accepts", Value: fmt.Sprint(stats.FloorAccepts)},
		{Label: "evaluations", Value: fmt.Sprint(stats.Evaluations)},
	}
}

func summaryFields(s analysis.Summary) []viz.Field {
	if s.N == 0 {
		return nil
	}
	period := "none"
	if k, ok := s.Period(); ok {
		period = fmt.Sprint(k)
	}
	return []viz.Field{
		{Label: "distinct", Value: fmt.Sprint(s.Distinct)},
		{Label: "section period", Value: period},
		{Label: "θ range", Value: fmt.Sprintf("[%.3f, %.3f]", s.ThetaMin, s.ThetaMax)},
		{Label: "ω range", Value: fmt.Sprintf("[%.3f, %.3f]", s.OmegaMin, s.OmegaMax)},
	}
}

func presetSource(name string, spec *config.RunSpec) viz.Source {
	return viz.Source{
		Name:   name,
		Detail: fmt.Sprintf("%s  f=%g q=%g", spec.Integrator.Method, spec.Phys.FDrive, spec.Phys.Q),
		Load: func(ctx context.Context) (*viz.Section, error) {
			res, err := sim.Run(ctx, spec, sim.WithObserver(newFloorLogger(logger)))
			if err != nil {
				return nil, err
			}
			fields := []viz.Field{{Label: "method", Value: res.Method.String()}}
			fields = append(fields, stepFields(res.Method, res.Dt, res.K, res.Tolerances, res.Stats)...)
			return &viz.Section{Title: name, Points: res.Points, Fields: fields}, nil
		},
	}
}
