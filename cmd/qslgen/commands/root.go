package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"qslgen/config"
	"qslgen/generate"
	canvasrender "qslgen/render/canvas"
	"qslgen/source"
)

var (
	configPath  string
	outputDir   string
	template    string
	maxContacts int
	workers     int
	clean       bool
	sample      bool
	verbose     bool
)

func Execute() error {
	root := &cobra.Command{
		Use:   "qslgen <contacts.csv|log.adi>",
		Short: "Generate QSL card images from a ham radio contact log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()
			return run(cmd, args[0], logger)
		},
		SilenceUsage: true,
	}

	root.Flags().StringVarP(&configPath, "config", "c", "qsl_config.json", "configuration file (written with defaults when missing)")
	root.Flags().StringVarP(&outputDir, "output-dir", "d", "", "output directory (default from config)")
	root.Flags().StringVarP(&template, "template", "t", "", "template image for the card background (default from config)")
	root.Flags().IntVar(&maxContacts, "max-contacts", 0, "maximum contacts per card (default from config)")
	root.Flags().IntVar(&workers, "workers", 0, "parallel render workers (default from config)")
	root.Flags().BoolVar(&clean, "clean", false, "clear the output directory before generating")
	root.Flags().BoolVar(&sample, "sample", false, "print the first 3 parsed contacts and exit")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(versionCmd())
	return root.Execute()
}

func run(cmd *cobra.Command, logPath string, logger *zap.Logger) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	applyOverrides(cfg)

	records, err := source.Load(logPath)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no usable contacts in %s", logPath)
	}
	logger.Info("contacts loaded", zap.String("file", logPath), zap.Int("count", len(records)))

	if sample {
		for i, rec := range records {
			if i == 3 {
				break
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Contact %d: %v\n", i+1, rec)
		}
		return nil
	}

	gen := generate.New(cfg, logger, func() (generate.PageRenderer, error) {
		// Renderers are not thread-safe; every page gets its own, with its
		// own font handles.
		return canvasrender.New(canvasrender.NewFonts(cfg.Fonts)), nil
	})
	cards, err := gen.Run(cmd.Context(), records, outputDir)
	if err != nil {
		return err
	}
	logger.Info("done", zap.Int("cards", cards))
	return nil
}

// applyOverrides copies the explicit flag values over the loaded config, so
// the merged configuration stays the single source of truth downstream.
func applyOverrides(cfg *config.Config) {
	if template != "" {
		cfg.Template.DefaultImage = template
	}
	if maxContacts > 0 {
		cfg.Table.MaxContacts = maxContacts
	}
	if workers > 0 {
		cfg.Generation.Workers = workers
	}
	if clean {
		cfg.Output.CleanBeforeRun = true
	}
}

func newLogger() (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.Encoding = "console"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zcfg.Build()
}
