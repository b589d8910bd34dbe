package testrosters

import (
	"fmt"
	"log"
	"sort"
)

// Structural thresholds, matching the session planner.
const (
	benchThreshold = 15
	threeTeamMin   = 21
	fullTeamSize   = 7
)

// Wire team names.
const (
	teamRed    = "RED"
	teamBlue   = "BLUE"
	teamYellow = "YELLOW"
	teamBench  = "SUB"
)

// verifyAssignments checks the structural invariants of a solve result
// against the roster that produced it: every player placed exactly once,
// legal team names, the right number and size of playing teams, and
// bench affiliations only on substitutes.
func verifyAssignments(roster Roster, result SolveResult) error {
	n := len(roster.Players)

	teamCount := 2
	if n >= threeTeamMin {
		teamCount = 3
	}

	wantSizes := expectedSizes(n, teamCount)

	seen := make(map[string]int, n)
	for _, p := range roster.Players {
		seen[p.PlayerID] = 0
	}

	playingCounts := make(map[string]int, teamCount)
	benchCount := 0

	for _, a := range result.Assignments {
		count, known := seen[a.PlayerID]
		if !known {
			return fmt.Errorf("assignment for unknown player %s", a.PlayerID)
		}
		if count > 0 {
			return fmt.Errorf("player %s assigned twice", a.PlayerID)
		}
		seen[a.PlayerID] = count + 1

		if a.Team == teamBench {
			benchCount++
			if a.BenchTeam == nil {
				return fmt.Errorf("substitute %s has no bench affiliation", a.PlayerID)
			}
			if !playingColor(*a.BenchTeam, teamCount) {
				return fmt.Errorf("substitute %s affiliated with %q", a.PlayerID, *a.BenchTeam)
			}
			continue
		}

		if !playingColor(a.Team, teamCount) {
			return fmt.Errorf("player %s assigned to unknown team %q", a.PlayerID, a.Team)
		}
		if a.BenchTeam != nil {
			return fmt.Errorf("playing member %s carries a bench affiliation", a.PlayerID)
		}
		playingCounts[a.Team]++
	}

	if len(result.Assignments) != n {
		return fmt.Errorf("expected %d assignments, got %d", n, len(result.Assignments))
	}

	if len(playingCounts) != teamCount {
		return fmt.Errorf("expected %d playing teams, got %d", teamCount, len(playingCounts))
	}

	gotSizes := make([]int, 0, len(playingCounts))
	for _, c := range playingCounts {
		gotSizes = append(gotSizes, c)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(gotSizes)))

	for i, want := range wantSizes {
		if gotSizes[i] != want {
			return fmt.Errorf("team size mismatch: want %v, got %v", wantSizes, gotSizes)
		}
	}

	wantBench := n - sumInts(wantSizes)
	if benchCount != wantBench {
		return fmt.Errorf("expected %d substitutes, got %d", wantBench, benchCount)
	}

	return verifyMetrics(result, teamCount, benchCount)
}

// expectedSizes returns the playing team sizes for n players, largest
// first. Fifteen or more players fill whole seven-a-side teams; smaller
// sessions split in half with the remainder on the first team.
func expectedSizes(n, teamCount int) []int {
	if n >= benchThreshold {
		sizes := make([]int, teamCount)
		for i := range sizes {
			sizes[i] = fullTeamSize
		}
		return sizes
	}
	half := n / 2
	return []int{n - half, half}
}

// playingColor reports whether name is one of the first teamCount colors.
func playingColor(name string, teamCount int) bool {
	colors := []string{teamRed, teamBlue, teamYellow}
	for i := 0; i < teamCount && i < len(colors); i++ {
		if colors[i] == name {
			return true
		}
	}
	return false
}

// verifyMetrics checks the metrics block against the assignment counts.
func verifyMetrics(result SolveResult, teamCount, benchCount int) error {
	wantRows := teamCount
	if benchCount > 0 {
		wantRows++
	}
	if len(result.TeamMetrics) != wantRows {
		return fmt.Errorf("expected %d metrics rows, got %d", wantRows, len(result.TeamMetrics))
	}

	for _, row := range result.TeamMetrics {
		total := 0
		for _, c := range row.Positions {
			total += c
		}
		if total != row.PlayerCount {
			return fmt.Errorf("team %s: position counts sum to %d, player count is %d",
				row.Team, total, row.PlayerCount)
		}
	}

	return nil
}

// sumInts adds a slice of integers.
func sumInts(values []int) int {
	sum := 0
	for _, v := range values {
		sum += v
	}
	return sum
}

// displaySolveSummary shows one solved result and solve time statistics.
func displaySolveSummary(results []SolveResult, verbose bool) {
	var sample *SolveResult
	for i := range results {
		if results[i].Success {
			sample = &results[i]
			break
		}
	}
	if sample == nil {
		log.Println("⚠️  No solved rosters to display")
		return
	}

	log.Printf("🏆 Sample result: %s", sample.Message)
	for _, row := range sample.TeamMetrics {
		log.Printf("   %s: %d players, skill avg %.2f, age avg %.1f, keeper %v",
			row.Team, row.PlayerCount, row.SkillAvg, row.AgeAvg, row.HasGoalkeeper)
	}

	if verbose {
		// Show solve time statistics across all solved rosters
		times := make([]float64, 0, len(results))
		for _, r := range results {
			if r.Success {
				times = append(times, r.SolveTimeMS)
			}
		}
		if len(times) > 0 {
			sort.Float64s(times)
			avg := 0.0
			for _, t := range times {
				avg += t
			}
			avg /= float64(len(times))

			log.Printf(`📊 Solve time statistics:
   Average: %.1fms
   Maximum: %.1fms
   Minimum: %.1fms
`, avg, times[len(times)-1], times[0])
		}
	}
}
