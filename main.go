package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dmitriyb/cinnamon/internal/config"
	"github.com/dmitriyb/cinnamon/internal/expected"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

const subcommandList = "subcommands: validate, lookup <test-id> <user>, schema"

// run parses flags and dispatches to the appropriate subcommand.
// It returns the exit code. Extracted from main() for testability.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("cinnamon", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", "cinnamon.yaml", "config file path")
	resultsPath := fs.String("results", "", "expected results file; skips the config file")
	strict := fs.Bool("strict", false, "treat users listed under both pass and fail as errors")
	logLevel := fs.String("log-level", "", "log level (defaults to log.level from the config, then info)")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	subcmds := fs.Args()
	if len(subcmds) == 0 {
		fmt.Fprintln(stderr, "usage: cinnamon [flags] <subcommand>")
		fmt.Fprintln(stderr, subcommandList)
		return 1
	}

	switch subcmds[0] {
	case "validate", "schema":
	case "lookup":
		if len(subcmds) != 3 {
			fmt.Fprintln(stderr, "usage: cinnamon [flags] lookup <test-id> <user>")
			return 1
		}
	default:
		fmt.Fprintf(stderr, "unknown subcommand: %q\n", subcmds[0])
		fmt.Fprintln(stderr, subcommandList)
		return 1
	}

	logger := config.InitLogging(config.ResolveLevel(*logLevel, nil), stderr)

	if subcmds[0] == "schema" {
		data, err := expected.GenerateJSONSchema()
		if err != nil {
			logger.Error("failed to generate schema", "error", err)
			return 1
		}
		fmt.Fprintln(stdout, string(data))
		return 0
	}

	cfg, err := loadConfig(*cfgPath, *resultsPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return 1
	}
	if level := config.ResolveLevel(*logLevel, cfg); level != *logLevel {
		logger = config.InitLogging(level, stderr)
	}

	if err := config.Validate(cfg); err != nil {
		logger.Error("config validation failed", "error", err)
		return 1
	}

	path := cfg.ExpectedResults.Path
	switch subcmds[0] {
	case "validate":
		return runValidate(path, *strict || cfg.ExpectedResults.Strict, stdout, logger)
	case "lookup":
		return runLookup(path, subcmds[1], subcmds[2], stdout, logger)
	}
	return 0
}

// loadConfig reads the config file, or builds a config around resultsPath
// when one is given on the command line.
func loadConfig(cfgPath, resultsPath string) (*config.Config, error) {
	if resultsPath != "" {
		return &config.Config{ExpectedResults: config.ExpectedResults{Path: resultsPath}}, nil
	}
	return config.Load(cfgPath)
}

func runValidate(path string, strict bool, stdout io.Writer, logger *slog.Logger) int {
	results, issues := expected.ValidateFile(path, strict)
	for _, i := range issues {
		if i.Severity == "warning" {
			logger.Warn("expected results warning",
				"phase", i.Phase, "rule", i.Rule, "path", i.Path, "message", i.Message)
		}
	}
	if err := expected.Errors(issues); err != nil {
		logger.Error("expected results validation failed", "file", path, "error", err)
		return 1
	}
	fmt.Fprintf(stdout, "expected results are valid (%d tests)\n", len(results))
	return 0
}

func runLookup(path, testID, user string, stdout io.Writer, logger *slog.Logger) int {
	p := expected.NewProvider(path, logger)
	result, err := p.GetResult(testID, user)
	if err != nil {
		logger.Error("lookup failed", "test", testID, "user", user, "error", err)
		return 1
	}
	fmt.Fprintln(stdout, result)
	return 0
}
