// Package main provides the entry point for the document converter application
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"

	"document-converter/internal/api"
	"document-converter/internal/config"
	"document-converter/internal/converter"
	"document-converter/internal/logging"
	"document-converter/internal/model"
	"document-converter/internal/storage"
	"document-converter/internal/util"
)

func main() {
	// Define command-line flags
	configPath := flag.String("config", "", "Path to a YAML config file")
	port := flag.Int("port", 0, "Port to run the API server on (overrides config)")
	outputDir := flag.String("output", "", "Directory for saved results (overrides config)")
	runMode := flag.String("mode", "api", "Run mode: 'api' or 'cli'")
	kind := flag.String("kind", "", "CLI conversion kind; empty converts the file to PDF by format")
	writeConfig := flag.String("write-config", "", "Write the effective configuration as YAML to this path and exit")
	flag.Parse()

	cfg, err := loadConfig(*configPath, *port, *outputDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *writeConfig != "" {
		if err := cfg.Save(*writeConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Configuration written to %s\n", *writeConfig)
		return
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Create the converter manager with default converters
	manager := converter.CreateDefaultManager(cfg.Images, logging.Component(logger, "converter"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// If running in API mode, start the API server
	if *runMode == "api" {
		store, err := storage.New(cfg.Storage, logging.Component(logger, "storage"))
		if err != nil {
			logger.WithError(err).Fatal("Failed to create result storage")
		}
		logger.WithFields(logrus.Fields{
			"addr":    cfg.Address(),
			"storage": cfg.Storage.Backend,
		}).Info("Document converter API")

		if err := api.StartServer(ctx, cfg, manager, store, logging.Component(logger, "api")); err != nil {
			logger.WithError(err).Fatal("API server stopped")
		}
		return
	}

	// Command-line mode
	args := flag.Args()
	if len(args) < 1 {
		fmt.Println("Usage: app -mode cli [-kind KIND] [flags] <file_path>...")
		fmt.Println("\nFlags:")
		flag.PrintDefaults()
		printSupportedConversions(manager)
		return
	}

	if err := processFiles(ctx, args, *kind, manager, cfg.Storage.OutputDir); err != nil {
		logger.WithError(err).Error("Conversion failed")
		os.Exit(1)
	}
}

// loadConfig reads the config file, then applies environment variables and
// flags on top
func loadConfig(path string, port int, outputDir string) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if port != 0 {
		cfg.Server.Port = port
	}
	if outputDir != "" {
		cfg.Storage.OutputDir = outputDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// processFiles converts the given files and writes the result into outputDir
func processFiles(ctx context.Context, paths []string, kind string, manager *converter.ConverterManager, outputDir string) error {
	docs := make([]*model.Document, 0, len(paths))
	for _, path := range paths {
		doc, err := readDocument(path)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}

	var (
		result *converter.Result
		err    error
	)
	if kind == "" {
		result, err = manager.ConvertToPDF(ctx, docs[0])
	} else {
		req := converter.NewRequest(docs...)
		req.Params = envParams(os.Environ())
		result, err = manager.Convert(ctx, kind, req)
	}
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	outputPath := filepath.Join(outputDir, result.Name)
	if err := os.WriteFile(outputPath, result.Data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	fmt.Printf("Converted %s to %s\n", strings.Join(paths, ", "), outputPath)
	return nil
}

// readDocument loads a file, detecting its format when the name has no
// extension
func readDocument(path string) (*model.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	document := model.NewDocument(filepath.Base(path), data)
	if document.Format == "" {
		format, err := util.NewFormatDetector().DetectFormatFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("failed to detect format: %w", err)
		}
		document.Format = format
		document.Name += format.Extension()
	}
	return document, nil
}

// envParams collects CONVERT_PARAM_<name>=value variables as conversion
// parameters, e.g. CONVERT_PARAM_editType=text
func envParams(environ []string) map[string]string {
	const prefix = "CONVERT_PARAM_"
	params := map[string]string{}
	for _, kv := range environ {
		if !strings.HasPrefix(kv, prefix) {
			continue
		}
		name, value, ok := strings.Cut(strings.TrimPrefix(kv, prefix), "=")
		if ok && name != "" {
			params[name] = value
		}
	}
	return params
}

// printSupportedConversions prints the registered conversion kinds
func printSupportedConversions(manager *converter.ConverterManager) {
	fmt.Println("\nSupported conversions:")
	for _, info := range manager.List() {
		fmt.Printf("- %-16s %s (%s)\n", info.Kind, info.Description, strings.Join(info.Extensions, ", "))
	}
}
