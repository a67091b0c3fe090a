package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/studyscore/internal/smoke"
)

// Default configuration constants.
const (
	defaultStudents    = 200
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultCurvePoints = 100
	defaultTimeout     = 10 * time.Second
	defaultRunTimeout  = 5 * time.Minute
)

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:9080", "Base URL of the service")
		students = flag.Int("students", defaultStudents, "Number of students to submit")
		workers  = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent submitters")
		points   = flag.Int("points", defaultCurvePoints, "Expected points per regression curve")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose  = flag.Bool("verbose", false, "Log every prediction")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		smoke.ShowHelp()
		return
	}

	if err := smoke.SetupLogging(*verbose); err != nil {
		os.Stderr.WriteString("failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	err := smoke.Run(ctx, &smoke.Config{
		BaseURL:     *baseURL,
		Students:    *students,
		Workers:     *workers,
		Timeout:     *timeout,
		CurvePoints: *points,
		Verbose:     *verbose,
	})
	cancel()
	if err != nil {
		os.Stderr.WriteString("smoke test failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
