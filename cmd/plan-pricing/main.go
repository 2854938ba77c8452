// Command plan-pricing prices the payment plans in a YAML plan file and
// prints their schedules.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/iwvelando/plan-pricing/internal/config"
	"github.com/iwvelando/plan-pricing/internal/logging"
	"github.com/iwvelando/plan-pricing/internal/quote"
	"github.com/iwvelando/plan-pricing/pkg/constants"
	"github.com/iwvelando/plan-pricing/pkg/output"
	"github.com/iwvelando/plan-pricing/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to plan file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	language := flag.String("language", "", "written amount language override (en, ar)")
	flag.Parse()

	// Load the plan file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	// Initialize logging based on config and CLI override
	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
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

	if *language != "" {
		conf.Output.Language = *language
	}

	// Validate configuration and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	// Price every active plan.
	results, err := quote.GetQuotes(logger, *conf)
	if err != nil {
		logger.Fatal("failed to price plans",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(results, conf.Output.Currency)
	case constants.OutputFormatCSV:
		output.CsvFormat(results)
	}
}
