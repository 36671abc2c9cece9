package cmd

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/linkpulse/linkpulse/internal/banner"
	"github.com/linkpulse/linkpulse/internal/batch"
	"github.com/linkpulse/linkpulse/internal/config"
	"github.com/linkpulse/linkpulse/internal/handler"
	"github.com/linkpulse/linkpulse/internal/logging"
	"github.com/linkpulse/linkpulse/internal/model"
	"github.com/linkpulse/linkpulse/internal/probe"
	"github.com/linkpulse/linkpulse/internal/report"
	"github.com/linkpulse/linkpulse/internal/sanitize"
)

var (
	configFile string
	inputFile  string
	listenAddr string
)

var rootCmd = &cobra.Command{
	Use:   "linkpulse",
	Short: "Batch URL health checker",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		if listenAddr != "" {
			cfg.ListenAddress = listenAddr
		}

		level := logrus.InfoLevel
		if cfg.Debug {
			level = logrus.DebugLevel
		}
		logging.InitLogger(level)

		runner := batch.New(batch.Config{
			WindowSize:   cfg.WindowSize,
			PacingDelay:  cfg.PacingDelay(),
			MaxBatchSize: cfg.MaxBatchSize,
		}, probe.New().Do)

		if inputFile != "" {
			return runFile(runner, cfg, inputFile)
		}
		return serve(runner, cfg)
	},
}

func serve(runner *batch.Runner, cfg *config.Config) error {
	log := logging.GetLogger()
	banner.PrintBanner()

	httpHandler := handler.NewHTTPHandler(runner)
	server := &http.Server{
		Addr:    cfg.ListenAddress,
		Handler: httpHandler.Routes(),
	}

	log.Infof("Starting server on %s", cfg.ListenAddress)
	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func runFile(runner *batch.Runner, cfg *config.Config, path string) error {
	raws, err := loadURLs(path)
	if err != nil {
		return err
	}
	urls, err := sanitize.Batch(raws)
	if err != nil {
		return err
	}

	opts := model.DefaultProbeOptions()
	opts.TimeoutMs = cfg.ProbeTimeoutMs
	results, err := runner.Run(context.Background(), urls, opts)
	if err != nil {
		return err
	}

	summary := batch.Summarize(results)
	report.Print(os.Stdout, results, summary)

	if summary.CountsByStatus[model.StatusBroken]+summary.CountsByStatus[model.StatusError] > 0 {
		os.Exit(1)
	}
	return nil
}

func loadURLs(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var urls []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		url := strings.TrimSpace(scanner.Text())
		if url != "" {
			urls = append(urls, url)
		}
	}
	return urls, scanner.Err()
}

func Execute() {
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to the config file")
	rootCmd.Flags().StringVarP(&inputFile, "file", "f", "", "Check URLs from a file (one per line) and exit")
	rootCmd.Flags().StringVar(&listenAddr, "listen", "", "Listen address override")
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
