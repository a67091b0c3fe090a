package smoke

import (
	"fmt"
	"os"

	"github.com/okian/studyscore/pkg/logger"
)

// SetupLogging initializes the global logger for the smoke tool.
func SetupLogging(verbose bool) error {
	if err := logger.InitWith(os.Stdout, "text"); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		return logger.SetLevelString("debug")
	}
	return nil
}

// ShowHelp prints usage information for the smoke tool.
func ShowHelp() {
	os.Stdout.WriteString(`studyscore smoke test
=====================

Drives a running studyscore instance through its HTTP API and checks the
responses.

Usage:
  go run ./cmd/smoke [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -students int
        Number of students to submit (default 200)
  -workers int
        Number of concurrent submitters (default CPU cores * 2)
  -points int
        Expected points per regression curve (default 100)
  -timeout duration
        HTTP request timeout (default 10s)
  -verbose
        Log every prediction
  -help
        Show this help message

Checks:
  - every prediction succeeds
  - linear scores are monotonic in study hours
  - /model/performance reports linear and polynomial
  - each regression curve has the expected number of points
`)
}
