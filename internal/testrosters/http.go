package testrosters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := marshalJSON(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// marshalJSON marshals a struct to JSON
func marshalJSON(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// unmarshalJSON unmarshals JSON to a struct
func unmarshalJSON(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// submitRosters solves rosters concurrently using worker pools.
func submitRosters(ctx context.Context, config *Config, rosters []Roster, stats *Stats) ([]SolveResult, error) {
	log.Printf("📤 Solving %d rosters with %d workers...", len(rosters), config.Workers)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/api/solve"

	// Results storage, indexed by roster
	results := make([]SolveResult, len(rosters))

	// Counters for statistics
	var (
		solved     int64
		rejected   int64
		failed     int64
		submitted  int64
		violations int64
	)

	// Progress reporting
	var lastReport time.Time
	reportInterval := 1 * time.Second

	// Create worker pool
	rosterChan := make(chan int, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	// Start workers
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()

			for index := range rosterChan {
				select {
				case <-ctx.Done():
					return
				default:
					outcome, result := submitSingleRoster(ctx, client, url, rosters[index], config.Seed)
					results[index] = result

					// Update counters
					atomic.AddInt64(&submitted, 1)
					switch outcome {
					case "solved":
						atomic.AddInt64(&solved, 1)
						if err := verifyAssignments(rosters[index], result); err != nil {
							atomic.AddInt64(&violations, 1)
							log.Printf("⚠️  Roster %d violates invariants: %v", index, err)
						}
					case "rejected":
						atomic.AddInt64(&rejected, 1)
						if config.Verbose {
							log.Printf("⚠️  Roster %d rejected: %s", index, result.Message)
						}
					case "failed":
						atomic.AddInt64(&failed, 1)
					}

					// Progress reporting
					if time.Since(lastReport) >= reportInterval {
						lastReport = time.Now()
						total := atomic.LoadInt64(&submitted)
						sol := atomic.LoadInt64(&solved)
						rej := atomic.LoadInt64(&rejected)
						fail := atomic.LoadInt64(&failed)

						if config.Verbose {
							log.Printf("📊 Progress: %d/%d submitted (solved: %d, rejected: %d, failed: %d)",
								total, len(rosters), sol, rej, fail)
						} else {
							fmt.Printf("\r📤 Submitted: %d/%d (solved: %d, rejected: %d, failed: %d)",
								total, len(rosters), sol, rej, fail)
						}
					}
				}
			}
		}(i)
	}

	// Send roster indices to workers
	go func() {
		defer close(rosterChan)
		for i := range rosters {
			select {
			case <-ctx.Done():
				return
			case rosterChan <- i:
			}
		}
	}()

	// Wait for all workers to complete
	wg.Wait()

	// Final progress report
	if !config.Verbose {
		fmt.Println() // New line after progress indicator
	}

	// Update stats
	stats.RostersSubmitted = int(atomic.LoadInt64(&submitted))
	stats.RostersSolved = int(atomic.LoadInt64(&solved))
	stats.RostersRejected = int(atomic.LoadInt64(&rejected))
	stats.RostersFailed = int(atomic.LoadInt64(&failed))
	stats.InvariantViolations = int(atomic.LoadInt64(&violations))

	log.Printf(`✅ Roster solving completed:
   Solved: %d
   Rejected: %d
   Failed: %d
   Invariant violations: %d
`, stats.RostersSolved, stats.RostersRejected, stats.RostersFailed, stats.InvariantViolations)

	return results, nil
}

// submitSingleRoster solves a single roster and returns the outcome.
func submitSingleRoster(ctx context.Context, client *HTTPClient, url string, roster Roster, seed int64) (string, SolveResult) {
	request := SolveRequest{
		Players: roster.Players,
		Options: SolveOptions{Seed: seed},
	}

	resp, err := client.Post(ctx, url, request)
	if err != nil {
		return "failed", SolveResult{}
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return "failed", SolveResult{}
	}

	var result SolveResult
	if err := unmarshalJSON(body, &result); err != nil {
		return "failed", SolveResult{}
	}

	switch resp.StatusCode {
	case StatusOK:
		if result.Success {
			return "solved", result
		}
		return "rejected", result
	case StatusUnprocessable:
		// The solver answered but turned the roster down
		return "rejected", result
	default:
		return "failed", result
	}
}
