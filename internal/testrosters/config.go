package testrosters

import "time"

// Config holds configuration for the roster test
type Config struct {
	BaseURL    string        // Base URL of the service
	NumRosters int           // Number of rosters to generate
	RosterSize int           // Players per roster; 0 picks varied sizes
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	Seed       int64         // Seed submitted with every solve
	Sample     int           // Rosters re-solved for the determinism check
	OutputFile string        // Output file for rosters
	LogFile    string        // Log file for test output
	Verbose    bool          // Enable verbose logging
}

// Player is one roster record as the solve endpoint accepts it
type Player struct {
	PlayerID     string `json:"player_id"`
	Name         string `json:"name"`
	Age          int    `json:"age"`
	Rating       int    `json:"rating"`
	MainPosition string `json:"main_position"`
	AltPosition  string `json:"alt_position,omitempty"`
	CheckedInAt  string `json:"checked_in_at,omitempty"`
}

// Roster is one generated solve payload
type Roster struct {
	Players []Player `json:"players"`
}

// SolveOptions carries the solver knobs
type SolveOptions struct {
	Seed int64 `json:"seed"`
}

// SolveRequest is the body posted to the solve endpoint
type SolveRequest struct {
	Players []Player     `json:"players"`
	Options SolveOptions `json:"options"`
}

// Assignment mirrors one row of the solve response
type Assignment struct {
	PlayerID   string  `json:"player_id"`
	PlayerName string  `json:"player_name"`
	Team       string  `json:"team"`
	Role       string  `json:"role"`
	BenchTeam  *string `json:"bench_team"`
}

// TeamMetrics mirrors the per-team numbers of the solve response
type TeamMetrics struct {
	Team          string         `json:"team"`
	PlayerCount   int            `json:"player_count"`
	SkillSum      int            `json:"skill_sum"`
	AgeSum        int            `json:"age_sum"`
	SkillAvg      float64        `json:"skill_avg"`
	AgeAvg        float64        `json:"age_avg"`
	HasGoalkeeper bool           `json:"has_goalkeeper"`
	Positions     map[string]int `json:"positions"`
}

// SolveResult mirrors the solve response body
type SolveResult struct {
	Success     bool          `json:"success"`
	Message     string        `json:"message"`
	IsOptimal   bool          `json:"is_optimal"`
	Assignments []Assignment  `json:"assignments"`
	TeamMetrics []TeamMetrics `json:"team_metrics"`
	Warnings    []string      `json:"warnings"`
	SolveTimeMS float64       `json:"solve_time_ms"`
}

// ValidationReport mirrors the validate response body
type ValidationReport struct {
	Valid       bool     `json:"valid"`
	Errors      []string `json:"errors"`
	Warnings    []string `json:"warnings"`
	PlayerCount int      `json:"player_count"`
}

// Stats holds test statistics
type Stats struct {
	RostersGenerated      int
	RostersSubmitted      int
	RostersSolved         int
	RostersRejected       int
	RostersFailed         int
	InvariantViolations   int
	DeterminismChecks     int
	DeterminismMismatches int
	ValidationsRun        int
	ValidationsValid      int
	StartTime             time.Time
	EndTime               time.Time
	Duration              time.Duration
}
