package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/poincare/internal/config"
)

var (
	dataDir string
	verbose bool
	// run
	presetNames []string
	outDir      string
	workers     int
	noSave      bool
	noRender    bool
	writeConfig string
	// plot / phase
	graphWidth  int
	graphHeight int
	phaseWidth  int
	phaseHeight int

	logger = zap.NewNop()
)

// main registers the poincare commands and exits with status 1 when a
// command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:   "poincare",
		Short: "Poincaré sections of the driven damped pendulum",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(verbose)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		SilenceUsage: true,
		RunE:         viewSections,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".poincare", "run storage directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "development logging")

	runCmd := &cobra.Command{
		Use:   "run [spec...]",
		Short: "integrate run specs and render their sections",
		Long: "Integrates each run spec (JSON or YAML) and each --preset, stores the\n" +
			"points and writes PNG, SVG and HTML plots. With no arguments " + config.DefaultFile + " is used.",
		RunE: runSections,
	}
	runCmd.Flags().StringSliceVar(&presetNames, "preset", nil, "preset as regime/name (repeatable)")
	runCmd.Flags().StringVar(&outDir, "out", "output", "plot output directory")
	runCmd.Flags().IntVar(&workers, "workers", 0, "concurrent runs (0 = GOMAXPROCS)")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "skip run storage")
	runCmd.Flags().BoolVar(&noRender, "no-render", false, "skip plot files")
	runCmd.Flags().StringVar(&writeConfig, "write-config", "", "write the resolved spec as YAML and exit")

	viewCmd := &cobra.Command{
		Use:   "view [run_id...]",
		Short: "browse sections in the terminal",
		Long:  "Without arguments the viewer integrates presets on demand; with run ids it shows stored runs.",
		RunE:  viewSections,
	}
	viewCmd.Flags().StringSliceVar(&presetNames, "preset", nil, "limit the menu to these presets")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot theta and omega against section index",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&graphWidth, "width", 80, "graph width")
	plotCmd.Flags().IntVar(&graphHeight, "height", 12, "graph height")

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "ASCII section plot with summary",
		Args:  cobra.ExactArgs(1),
		RunE:  phaseRun,
	}
	phaseCmd.Flags().IntVar(&phaseWidth, "width", 60, "plot width")
	phaseCmd.Flags().IntVar(&phaseHeight, "height", 24, "plot height")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write run points as CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "write run metadata and points as JSON to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [regime]",
		Short: "list preset runs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			regimes := config.ListRegimes()
			if len(args) == 1 {
				if config.ListPresets(args[0]) == nil {
					return fmt.Errorf("unknown regime: %s (available: %v)", args[0], regimes)
				}
				regimes = args
			}
			for _, r := range regimes {
				fmt.Printf("%s:\n", r)
				for _, name := range config.ListPresets(r) {
					spec := config.GetPreset(r, name)
					fmt.Printf("  %-16s %-15s f=%-5g q=%-5g ωd=%.4g\n", name,
						spec.Integrator.Method, spec.Phys.FDrive, spec.Phys.Q, spec.Phys.OmegaD)
				}
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, viewCmd, listCmd, plotCmd, phaseCmd, exportCSVCmd, exportJSONCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
