package main

import (
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/san-kum/poincare/internal/sim"
)

func newLogger(development bool) (*zap.Logger, error) {
	if development {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// floorLogger reports adaptive steps accepted at the minimum step size.
// It is shared by concurrent runs.
type floorLogger struct {
	log   *zap.Logger
	count atomic.Int64
}

func newFloorLogger(log *zap.Logger) *floorLogger {
	return &floorLogger{log: log}
}

func (f *floorLogger) OnFloorAccept(t, h, errNorm float64) {
	f.count.Add(1)
	f.log.Debug("step accepted at dt_min",
		zap.Float64("t", t),
		zap.Float64("h", h),
		zap.Float64("err", errNorm))
}

// Summarize warns once if any step went through the escape valve.
func (f *floorLogger) Summarize() {
	if n := f.count.Load(); n > 0 {
		f.log.Warn("adaptive steps exceeded tolerance at dt_min; consider lowering dt_min or loosening rtol",
			zap.Int64("floor_accepts", n))
	}
}

func progressLogger(log *zap.Logger) sim.ProgressFunc {
	return func(phase sim.Phase, done, total int) {
		if done == total {
			log.Debug("phase complete",
				zap.String("phase", string(phase)),
				zap.Int("periods", total))
		}
	}
}
