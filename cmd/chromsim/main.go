package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gc-tools/chromsim/internal/config"
	"github.com/gc-tools/chromsim/internal/optimizer"
	"github.com/gc-tools/chromsim/internal/simulate"
	"github.com/gc-tools/chromsim/pkg/constants"
	"github.com/gc-tools/chromsim/pkg/output"
	"github.com/gc-tools/chromsim/pkg/validation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = "json"
	}

	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	targetResolution := flag.Float64("optimize-resolution", 0, "search for the lowest heating rate meeting this minimum resolution (0 = off)")
	compoundNames := flag.String("compounds", "", "comma-separated compound names overriding the configured compound table")
	boilingPoints := flag.String("boiling-points", "", "comma-separated boiling points in C, parallel to -compounds")
	ionizations := flag.String("ionizations", "", "comma-separated ionization efficiencies, parallel to -compounds")
	polarities := flag.String("polarities", "", "comma-separated polarity factors, parallel to -compounds")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	// Initialize logging based on config and CLI override
	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	err = validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	// Compound lists supplied on the command line replace the table from the
	// config file; all four lists must be given together.
	if *compoundNames != "" || *boilingPoints != "" || *ionizations != "" || *polarities != "" {
		err = conf.OverrideCompounds(*compoundNames, *boilingPoints, *ionizations, *polarities)
		if err != nil {
			logger.Fatal("failed to parse compound lists",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}

	// Validate configuration and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	compounds, err := conf.CompoundList()
	if err != nil {
		logger.Fatal("failed to build compound list",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Optionally search for the heating rate meeting the target resolution
	// before the final run; the optimizer updates the configuration in place.
	if *targetResolution > 0 {
		runner, err := optimizer.NewRunner(logger, conf)
		if err != nil {
			logger.Fatal("failed to initialize optimizer",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		result, err := runner.Run(*targetResolution)
		if err != nil {
			logger.Fatal("optimizer execution failed",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		if !result.Converged {
			logger.Warn("target resolution not reachable; using configured heating rate",
				zap.String("op", "main"),
				zap.Float64("targetResolution", result.TargetResolution),
				zap.Float64("achievedResolution", result.AchievedResolution),
			)
		}
		for _, note := range result.Notes {
			logger.Info(note, zap.String("op", "main"))
		}
	}

	inst, err := conf.BuildInstrument()
	if err != nil {
		logger.Fatal("failed to build instrument settings",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Run the simulation to get the peak table and signal trace.
	run, err := simulate.Simulate(logger, compounds, inst, conf.TimeAxis())
	if err != nil {
		logger.Fatal("failed to compute simulation",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(run)
	case constants.OutputFormatCSV:
		output.CsvFormat(run)
	}

}
