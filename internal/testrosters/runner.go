package testrosters

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/rondo/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// Run executes the complete roster test.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting rondo roster test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("rosters", config.NumRosters),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Any("seed", config.Seed),
		logger.String("logFile", config.LogFile),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate rosters
	rosters, err := generateRosters(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("roster generation failed: %w", err)
	}

	// Step 3: Solve rosters concurrently, verifying invariants inline
	results, err := submitRosters(ctx, config, rosters, stats)
	if err != nil {
		return fmt.Errorf("roster solving failed: %w", err)
	}

	// Step 4: Confirm determinism on a sample
	if err := checkDeterminism(ctx, config, rosters, results, stats); err != nil {
		return fmt.Errorf("determinism check failed: %w", err)
	}

	// Step 5: Run validations on a sample
	if err := runValidations(ctx, config, rosters, stats); err != nil {
		return fmt.Errorf("validation run failed: %w", err)
	}

	// Step 6: Display a sample result
	displaySolveSummary(results, config.Verbose)

	// Step 7: Save rosters to file
	if err := saveRostersToFile(ctx, config, rosters); err != nil {
		logger.Get().Warn(ctx, "failed to save rosters to file", logger.Error(err))
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	if stats.InvariantViolations > 0 {
		return fmt.Errorf("%d solved rosters violated structural invariants", stats.InvariantViolations)
	}

	logger.Get().Info(ctx, "test completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Accept any 200 response as healthy (the service returns Prometheus metrics)
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// saveRostersToFile saves the generated rosters to a JSON file.
func saveRostersToFile(ctx context.Context, config *Config, rosters []Roster) error {
	if len(rosters) == 0 {
		return fmt.Errorf("no rosters to save")
	}

	// Determine output filename
	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "generated_rosters_" + timestamp + ".json"
	}

	// Ensure the directory exists
	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// Write rosters to file
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close file", logger.Error(err))
		}
	}()

	// Write JSON array
	if _, err := file.WriteString("[\n"); err != nil {
		return fmt.Errorf("failed to write opening bracket: %w", err)
	}

	for i, roster := range rosters {
		jsonData, err := marshalJSON(roster)
		if err != nil {
			return fmt.Errorf("failed to marshal roster %d: %w", i, err)
		}

		if _, err := file.Write(jsonData); err != nil {
			return fmt.Errorf("failed to write roster %d: %w", i, err)
		}

		// Add comma except for last roster
		if i < len(rosters)-1 {
			if _, err := file.WriteString(","); err != nil {
				return fmt.Errorf("failed to write comma: %w", err)
			}
		}
		_, _ = file.WriteString("\n")
	}

	if _, err := file.WriteString("]\n"); err != nil {
		return fmt.Errorf("failed to write closing bracket: %w", err)
	}

	logger.Get().Info(ctx, "rosters saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final test statistics.
func displayFinalStats(stats *Stats) {
	var solveRate, rostersPerSecond float64

	if stats.RostersSubmitted > 0 {
		solveRate = float64(stats.RostersSolved) / float64(stats.RostersSubmitted) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		rostersPerSecond = float64(stats.RostersSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("rostersGenerated", stats.RostersGenerated),
		logger.Int("rostersSubmitted", stats.RostersSubmitted),
		logger.Int("rostersSolved", stats.RostersSolved),
		logger.Int("rostersRejected", stats.RostersRejected),
		logger.Int("rostersFailed", stats.RostersFailed),
		logger.Int("invariantViolations", stats.InvariantViolations),
		logger.Int("determinismChecks", stats.DeterminismChecks),
		logger.Int("determinismMismatches", stats.DeterminismMismatches),
		logger.Int("validationsRun", stats.ValidationsRun),
		logger.Int("validationsValid", stats.ValidationsValid),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("solveRate", solveRate),
		logger.Float64("rostersPerSecond", rostersPerSecond))
}
