// cmd/statecheck/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Ayash-Bera/nlq-report/internal/config"
	"github.com/Ayash-Bera/nlq-report/internal/inspect"
	"github.com/Ayash-Bera/nlq-report/pkg/utils"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Exit codes.
const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run checks the documents named in args and returns the process exit code:
// 1 when a document is invalid or setup fails, 2 on usage errors.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("statecheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	kindFlag := fs.String("kind", "state", "Document kind: state, action or alert")
	verbose := fs.Bool("verbose", false, "Enable verbose logging")
	defaults := fs.Bool("defaults", false, "Print the default user state built from configuration and exit")
	timeout := fs.Duration("timeout", 30*time.Second, "Give up after this long")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: statecheck [flags] file...\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(stderr, "No .env file found: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load configuration: %v\n", err)
		return exitInvalid
	}

	logger := utils.InitLogger(cfg.Log.Level)
	logger.SetOutput(stderr)
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Error("Configuration validation failed")
		return exitInvalid
	}

	if *defaults {
		if err := utils.SuccessResponse(stdout, "default user state", cfg.DefaultState()); err != nil {
			logger.WithError(err).Error("Failed to write default state")
			return exitInvalid
		}
		return exitOK
	}

	kind, err := inspect.ParseKind(*kindFlag)
	if err != nil {
		logger.WithError(err).Error("Invalid -kind")
		fs.Usage()
		return exitUsage
	}

	paths := fs.Args()
	if len(paths) == 0 {
		fs.Usage()
		return exitUsage
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	logger.WithFields(logrus.Fields{
		"kind":      kind,
		"documents": len(paths),
	}).Info("Checking documents")

	checker := inspect.NewChecker(logger)
	report := checker.CheckFiles(ctx, kind, paths)

	if report.Status == inspect.StatusInvalid {
		invalid := 0
		for _, doc := range report.Documents {
			if doc.Status == inspect.StatusInvalid {
				invalid++
			}
		}
		if err := utils.ErrorResponse(stdout, "document check failed", report, fmt.Errorf("%d invalid document(s)", invalid)); err != nil {
			logger.WithError(err).Error("Failed to write report")
		}
		return exitInvalid
	}

	if err := utils.SuccessResponse(stdout, "document check passed", report); err != nil {
		logger.WithError(err).Error("Failed to write report")
		return exitInvalid
	}
	return exitOK
}
