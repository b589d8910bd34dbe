package testrosters

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
)

// checkDeterminism re-solves a sample of rosters with the same seed and
// compares the assignments against the first pass. Any drift means the
// solver is not reproducible and the whole run fails.
func checkDeterminism(ctx context.Context, config *Config, rosters []Roster, firstPass []SolveResult, stats *Stats) error {
	sample := config.Sample
	if sample <= 0 {
		sample = DefaultSampleSize
	}
	if sample > len(rosters) {
		sample = len(rosters)
	}

	log.Printf("🔁 Re-solving %d rosters to confirm determinism...", sample)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/api/solve"

	var (
		checked    int64
		mismatched int64
	)

	// Create worker pool
	indexChan := make(chan int, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	workers := minInt(config.Workers, sample)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()

			for index := range indexChan {
				select {
				case <-ctx.Done():
					return
				default:
					if !firstPass[index].Success {
						continue
					}

					outcome, second := submitSingleRoster(ctx, client, url, rosters[index], config.Seed)
					if outcome != "solved" {
						atomic.AddInt64(&mismatched, 1)
						log.Printf("⚠️  Roster %d no longer solves: %s", index, second.Message)
						continue
					}

					atomic.AddInt64(&checked, 1)
					if !assignmentsEqual(firstPass[index].Assignments, second.Assignments) {
						atomic.AddInt64(&mismatched, 1)
						log.Printf("⚠️  Roster %d produced different teams on re-solve", index)
					}
				}
			}
		}(i)
	}

	// Send sample indices to workers
	go func() {
		defer close(indexChan)
		for i := 0; i < sample; i++ {
			select {
			case <-ctx.Done():
				return
			case indexChan <- i:
			}
		}
	}()

	// Wait for all workers to complete
	wg.Wait()

	stats.DeterminismChecks = int(atomic.LoadInt64(&checked))
	stats.DeterminismMismatches = int(atomic.LoadInt64(&mismatched))

	if stats.DeterminismMismatches > 0 {
		return fmt.Errorf("%d of %d re-solves differed from the first pass", stats.DeterminismMismatches, stats.DeterminismChecks)
	}

	log.Printf("✅ Determinism confirmed on %d rosters", stats.DeterminismChecks)
	return nil
}

// assignmentsEqual compares two assignment lists row by row.
func assignmentsEqual(a, b []Assignment) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].PlayerID != b[i].PlayerID || a[i].Team != b[i].Team || a[i].Role != b[i].Role {
			return false
		}
		if (a[i].BenchTeam == nil) != (b[i].BenchTeam == nil) {
			return false
		}
		if a[i].BenchTeam != nil && *a[i].BenchTeam != *b[i].BenchTeam {
			return false
		}
	}
	return true
}

// runValidations pushes a sample of rosters through the validate
// endpoint. Generated rosters are always well formed, so every report
// should come back valid with a matching player count.
func runValidations(ctx context.Context, config *Config, rosters []Roster, stats *Stats) error {
	sample := config.Sample
	if sample <= 0 {
		sample = DefaultSampleSize
	}
	if sample > len(rosters) {
		sample = len(rosters)
	}

	log.Printf("🔍 Validating %d rosters...", sample)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/api/validate"

	valid := 0
	for i := 0; i < sample; i++ {
		resp, err := client.Post(ctx, url, rosters[i])
		if err != nil {
			return fmt.Errorf("validate request failed: %w", err)
		}

		body, err := readResponseBody(resp)
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}

		if resp.StatusCode != StatusOK {
			return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
		}

		var report ValidationReport
		if err := unmarshalJSON(body, &report); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}

		if report.PlayerCount != len(rosters[i].Players) {
			return fmt.Errorf("roster %d: report counted %d players, submitted %d",
				i, report.PlayerCount, len(rosters[i].Players))
		}

		if report.Valid {
			valid++
		} else if config.Verbose {
			log.Printf("⚠️  Roster %d invalid: %v", i, report.Errors)
		}
	}

	stats.ValidationsRun = sample
	stats.ValidationsValid = valid

	log.Printf("✅ Validation completed: %d/%d rosters valid", valid, sample)
	return nil
}
