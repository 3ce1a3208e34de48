package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"lobbyview/pkg/catalog"
	"lobbyview/pkg/config"
	"lobbyview/pkg/explore"
	"lobbyview/pkg/fetch"
	"lobbyview/pkg/table"
	"lobbyview/pkg/transform"
)

var (
	cfgFile string
	verbose bool

	showManual       bool
	showAlternatives bool
	outputDir        string
	catalogFile      string
)

const sampleRows = 1000

func newLogger() *log.Logger {
	opts := log.Options{
		ReportTimestamp: true,
		Prefix:          "lobbyview",
	}
	if verbose {
		opts.Level = log.DebugLevel
		opts.ReportCaller = true
	}
	return log.NewWithOptions(os.Stderr, opts)
}

func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Build(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}
	if verbose {
		pp.Println(cfg)
	}
	return cfg, nil
}

var rootCmd = &cobra.Command{
	Use:   "lobbyview",
	Short: "Acquire and prepare LobbyView lobbying data",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Resolve the reports dataset, downloading it if possible",
	Long: `Fetch looks for a manually placed reports file in the raw data
directory first. When none exists it attempts one best-effort download and,
failing that, prints manual-download instructions.

The command always exits 0; check for the file itself, not the exit code.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if showManual {
			fetch.ManualInstructions(os.Stdout)
			return nil
		}
		if showAlternatives {
			fetch.Alternatives(os.Stdout)
			return nil
		}

		logger := newLogger()
		cfg, err := buildConfig(cmd)
		if err != nil {
			return err
		}

		dir := cfg.RawDataDir
		if outputDir != "" {
			dir = outputDir
		}

		f := fetch.New(logger)
		res := f.Resolve(dir, catalog.Default())
		if res.OK() {
			logger.Info("reports dataset ready", "path", res.Path, "via", res.Reason)
		}
		// Failure is reported through the guidance text; exit 0 regardless.
		return nil
	},
}

var fetchAllCmd = &cobra.Command{
	Use:   "fetch-all",
	Short: "Attempt to download every dataset in the catalog",
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger := newLogger()
		cfg, err := buildConfig(cmd)
		if err != nil {
			return err
		}

		cat := catalog.Default()
		if catalogFile != "" {
			if cat, err = catalog.Load(catalogFile); err != nil {
				return err
			}
		}

		dir := cfg.RawDataDir
		if outputDir != "" {
			dir = outputDir
		}

		got := fetch.New(logger).FetchAll(cat, dir)
		fmt.Printf("Downloaded %d/%d datasets\n", len(got), cat.Len())
		return nil
	},
}

var exploreCmd = &cobra.Command{
	Use:   "explore [file]",
	Short: "Print summary statistics for a downloaded dataset",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		cfg, err := buildConfig(cmd)
		if err != nil {
			return err
		}

		var path string
		if len(args) == 1 {
			path = args[0]
		} else {
			p, ok := fetch.New(logger).Locate(cfg.RawDataDir)
			if !ok {
				fmt.Printf("No reports file found in %s.\n", cfg.RawDataDir)
				fmt.Println("Run `lobbyview fetch` first, or pass a file path.")
				return nil
			}
			path = p
		}

		t, err := table.Load(path)
		if err != nil {
			return err
		}
		rows, cols := t.Shape()
		logger.Info("loaded dataset", "path", path, "rows", rows, "columns", cols)

		explore.Report(os.Stdout, t)
		explore.Analyze(os.Stdout, t)

		sample := filepath.Join(cfg.ProcessedDataDir, "lobbyview_reports_sample.csv")
		if err := explore.SaveSample(t, sample, sampleRows); err != nil {
			logger.Warn("failed to save sample", "error", err)
			return nil
		}
		logger.Info("saved sample", "path", sample)
		return nil
	},
}

var transformCmd = &cobra.Command{
	Use:   "transform",
	Short: "Build the firm-year lobbying-spend table",
	Long: `Transform loads the raw reports and clients tables, drops
no-activity and amendment filings, sums spend per filer and filing year,
attaches gvkeys, and writes data/processed/lobbying_clean.csv.

Unlike fetch, a failure here is fatal: a missing input file has no
sensible fallback.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger := newLogger()
		cfg, err := buildConfig(cmd)
		if err != nil {
			return err
		}
		return transform.Run(cfg, logger)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default is lobbyview.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
	rootCmd.PersistentFlags().String("raw-dir", "", "Raw data directory (default: data/raw)")
	rootCmd.PersistentFlags().String("processed-dir", "", "Processed data directory (default: data/processed)")

	fetchCmd.Flags().BoolVar(&showManual, "manual", false, "Show manual download instructions")
	fetchCmd.Flags().BoolVar(&showAlternatives, "alternatives", false, "Show alternative data sources")
	fetchCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory for downloads")
	fetchAllCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory for downloads")
	fetchAllCmd.Flags().StringVar(&catalogFile, "catalog", "", "Dataset catalog override (yaml)")

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(fetchAllCmd)
	rootCmd.AddCommand(exploreCmd)
	rootCmd.AddCommand(transformCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
