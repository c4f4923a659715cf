package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/your-org/enhanced-html-reporter/pkg/builder"
	"github.com/your-org/enhanced-html-reporter/pkg/config"
	"github.com/your-org/enhanced-html-reporter/pkg/logger"
	"github.com/your-org/enhanced-html-reporter/pkg/server"
)

var (
	version = "1.0.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "enhanced-report",
		Short: "Enhanced HTML report generator for test runs",
		Long: `Enhanced HTML Test Reporter

Aggregates test execution results into a self-contained HTML report with
summary metrics, error classification, and historical trends.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	}

	var generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Generate a report from saved test results",
		Long:  "Generate an enhanced HTML report from a JSON file of test completion events.",
		RunE:  runGenerate,
	}

	var serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve generated reports",
		Long:  "Start a local server to browse generated reports.",
		RunE:  runServe,
	}

	generateCmd.Flags().StringP("input", "i", "", "Input file containing test result events (required)")
	generateCmd.Flags().StringP("output", "o", "", "Output directory for the generated report")
	generateCmd.Flags().StringP("title", "t", "", "Report title")
	generateCmd.Flags().String("theme", "", "Report theme (light, dark, auto)")
	generateCmd.Flags().Bool("no-trends", false, "Skip trend log update")
	generateCmd.Flags().Bool("no-charts", false, "Omit charts from the report")
	generateCmd.Flags().Bool("open", false, "Open the report in a browser after generation")
	generateCmd.Flags().StringP("config", "c", "", "Path to configuration file")

	serveCmd.Flags().IntP("port", "p", 8080, "Port to run server on")
	serveCmd.Flags().StringP("host", "H", "localhost", "Host to bind server to")
	serveCmd.Flags().StringP("dir", "d", "", "Directory containing reports to serve")

	rootCmd.AddCommand(generateCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	inputFile, _ := cmd.Flags().GetString("input")
	outputDir, _ := cmd.Flags().GetString("output")
	title, _ := cmd.Flags().GetString("title")
	theme, _ := cmd.Flags().GetString("theme")
	noTrends, _ := cmd.Flags().GetBool("no-trends")
	noCharts, _ := cmd.Flags().GetBool("no-charts")
	open, _ := cmd.Flags().GetBool("open")
	configFile, _ := cmd.Flags().GetString("config")

	if inputFile == "" {
		return fmt.Errorf("the --input flag is required")
	}

	opts := config.NewOptions()
	if configFile != "" {
		if err := opts.LoadFromFile(configFile); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}
	opts.LoadFromEnv()

	if outputDir != "" {
		opts.OutputDir = outputDir
	}
	if title != "" {
		opts.Title = title
	}
	if theme != "" {
		opts.Theme = theme
	}
	if noTrends {
		opts.IncludeTrends = false
	}
	if noCharts {
		opts.IncludeCharts = false
	}
	if open {
		opts.OpenReport = true
	}
	opts.Normalize()

	logger.Infof("Input: %s", inputFile)
	logger.Infof("Output: %s", opts.HTMLPath())

	rb := builder.NewReportBuilder(opts)
	defer func() {
		if err := rb.Close(); err != nil {
			logger.Warnf("Failed to close report builder: %v", err)
		}
	}()

	if err := rb.BuildFromFile(inputFile); err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	port, _ := cmd.Flags().GetInt("port")
	host, _ := cmd.Flags().GetString("host")
	reportsDir, _ := cmd.Flags().GetString("dir")

	if reportsDir == "" {
		reportsDir = config.NewOptions().OutputDir
	}

	logger.Infof("Starting report server on %s:%d", host, port)
	logger.Infof("Serving reports from: %s", reportsDir)

	srv := server.NewServer(&server.Config{
		Host:       host,
		Port:       port,
		ReportsDir: reportsDir,
	})

	return srv.Start()
}
