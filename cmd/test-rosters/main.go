package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/rondo/internal/testrosters"
)

// Default configuration constants.
const (
	defaultNumRosters  = 1000
	defaultSample      = 10
	defaultSeed        = 42
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultTestTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:9081", "Base URL of the service")
		numRosters = flag.Int("rosters", defaultNumRosters, "Number of rosters to generate and solve")
		rosterSize = flag.Int("size", 0, "Players per roster; 0 picks varied sizes")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		seed       = flag.Int64("seed", defaultSeed, "Seed submitted with every solve")
		sample     = flag.Int("sample", defaultSample, "Rosters re-solved to confirm determinism")
		outputFile = flag.String("output", "", "Output file for generated rosters (default: generated_rosters_TIMESTAMP.json)")
		logFile    = flag.String("log", "", "Log file for test output (default: test_log_TIMESTAMP.log)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		testrosters.ShowHelp()
		return
	}

	// Setup logging
	if err := testrosters.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	// Create test configuration
	config := &testrosters.Config{
		BaseURL:    *baseURL,
		NumRosters: *numRosters,
		RosterSize: *rosterSize,
		Workers:    *workers,
		Timeout:    *timeout,
		Seed:       *seed,
		Sample:     *sample,
		OutputFile: *outputFile,
		LogFile:    *logFile,
		Verbose:    *verbose,
	}

	// Run the test
	if err := testrosters.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Test failed: " + err.Error() + "\n")
		return
	}
}
