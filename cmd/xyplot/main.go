// Package main provides the CLI entry point for xyplot.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/josephlevy222/xyplot/pkg/xyplot"
	"github.com/josephlevy222/xyplot/pkg/xyplot/models"
	"github.com/josephlevy222/xyplot/pkg/xyplot/output"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	outputPath      string
	pretty          bool
	format          string
	mode            string
	secondary       string
	independentTics bool
	force           bool
	labelFormat     string
	sheetsDir       string
	configFile      string
	logLevel        string
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	rootCmd, err := newRootCmd()
	if err != nil {
		log.Fatalf("Could not set up command: %s", err)
	}
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() (*cobra.Command, error) {
	rootCmd := &cobra.Command{
		Use:   "xyplot [input.xlsx]",
		Short: "Extract chart data from Excel files with scaled axes",
		Long: `xyplot reads the charts of an Excel workbook, plots their series and
computes round axis bounds and tick counts for the x, y and secondary axes.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		PreRunE:      initConfig,
		RunE:         run,
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	flags.BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	flags.StringVar(&format, "format", "json", "Output format: json, yaml")
	flags.StringVar(&mode, "mode", "standard", "Extraction mode: light, standard, verbose")
	flags.StringVar(&secondary, "secondary", "auto", "Secondary axis: auto, on, off")
	flags.BoolVar(&independentTics, "independent-tics", false, "Let the secondary axis keep its own tick count")
	flags.BoolVar(&force, "force", false, "Rescale charts whose value axis is fixed")
	flags.StringVar(&labelFormat, "label-format", "", "printf format for gridline labels (default: shortest decimal)")
	flags.StringVar(&sheetsDir, "sheets-dir", "", "Directory for per-sheet output files")
	flags.StringVar(&configFile, "config", "", "Configuration file (toml or yaml)")
	flags.StringVar(&logLevel, "log-level", "warning", "Log level: debug, info, warning, error")

	if err := viper.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("could not bind flags: %w", err)
	}
	return rootCmd, nil
}

// initConfig layers the config file and XYPLOT_* environment variables under
// the command line flags and applies the result to the flag variables.
func initConfig(cmd *cobra.Command, args []string) error {
	viper.SetEnvPrefix("XYPLOT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("could not read config file: %w", err)
		}
		log.WithFields(log.Fields{"file": viper.ConfigFileUsed()}).Debug("Using config file")
	}

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed || !viper.IsSet(f.Name) {
			return
		}
		if err := f.Value.Set(viper.GetString(f.Name)); err != nil {
			log.Warningf("Ignoring invalid %s setting: %s", f.Name, err)
		}
	})

	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %s", logLevel)
	}
	log.SetLevel(level)
	return nil
}

func run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	// Validate input file exists
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	opts, err := buildOptions()
	if err != nil {
		return err
	}

	outFormat, err := output.ParseFormat(format)
	if err != nil {
		return err
	}

	// Extract data
	wb, err := xyplot.Extract(inputPath, opts)
	switch {
	case errors.Is(err, xyplot.ErrNoData):
		log.WithFields(log.Fields{"book": inputPath}).Warn("No charts or tables to plot")
	case err != nil:
		return fmt.Errorf("extraction failed: %w", err)
	}

	data, err := output.Encode(wb, outFormat, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	// Write output
	if outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else if sheetsDir == "" {
		fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(string(data), "\n"))
	}

	// Write per-sheet files
	if sheetsDir != "" {
		if err := writeSheetFiles(wb, sheetsDir, outFormat); err != nil {
			return fmt.Errorf("failed to write sheet files: %w", err)
		}
	}

	return nil
}

func buildOptions() (xyplot.Options, error) {
	extractMode, ok := xyplot.ParseMode(mode)
	if !ok {
		return xyplot.Options{}, fmt.Errorf("invalid mode: %s (must be light, standard, or verbose)", mode)
	}

	opts := xyplot.Options{
		Mode:        extractMode,
		Force:       force,
		LabelFormat: labelFormat,
	}

	switch strings.ToLower(secondary) {
	case "auto", "":
	case "on", "true", "yes":
		show := true
		opts.ShowSecondaryAxis = &show
	case "off", "false", "no":
		show := false
		opts.ShowSecondaryAxis = &show
	default:
		return xyplot.Options{}, fmt.Errorf("invalid secondary setting: %s (must be auto, on, or off)", secondary)
	}

	if independentTics {
		opts.IndependentTics = &independentTics
	}

	return opts, nil
}

func writeSheetFiles(wb *models.WorkbookData, dir string, outFormat output.Format) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for sheetName, sheet := range wb.Sheets {
		data, err := output.Encode(&sheet, outFormat, pretty)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, sheetName+"."+outFormat.Ext())
		if err := os.WriteFile(filename, data, 0644); err != nil {
			return err
		}
	}

	return nil
}
