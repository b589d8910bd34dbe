package testrosters

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/okian/rondo/pkg/logger"
)

// Constants for random number generation.
const (
	positionDivisor  = 7
	ratingDivisor    = 10
	ageCaseDivisor   = 8
	sizeCaseDivisor  = 8
	altDivisor       = 5
	altKeeperDivisor = 12
	checkInDivisor   = 8
	checkInWindow    = 3600 // seconds
)

// Wire position names.
const (
	positionKeeper     = "GK"
	positionDefender   = "DF"
	positionMidfielder = "MID"
	positionStriker    = "ST"
)

// Constants for position weighting cases. One keeper per seven slots
// mirrors a real seven-a-side formation.
const (
	caseKeeper      = 0
	caseDefenderA   = 1
	caseDefenderB   = 2
	caseMidfielderA = 3
	caseMidfielderB = 4
)

// Constants for age generation ranges.
const (
	youthAgeMin     = 17
	youthAgeRange   = 6
	primeAgeMin     = 23
	primeAgeRange   = 8
	veteranAgeMin   = 31
	veteranAgeRange = 8
	seniorAgeMin    = 39
	seniorAgeRange  = 7
)

// Constants for age type cases.
const (
	caseYouth    = 0
	casePrimeA   = 1
	casePrimeB   = 2
	casePrimeC   = 3
	casePrimeD   = 4
	caseVeteranA = 5
	caseVeteranB = 6
)

// Constants for rating weighting cases. The middle of the scale is the
// most common by far, matching self-reported club ratings.
const (
	caseRatingFloor = 0
	caseRatingLowA  = 1
	caseRatingLowB  = 2
	caseRatingHighA = 3
	caseRatingHighB = 4
	caseRatingCeil  = 5
)

// Constants for roster size generation.
const (
	caseSizeSmall  = 0
	caseSizeBenchA = 1
	caseSizeBenchB = 2
	caseSizeBenchC = 3
	caseSizeThreeA = 4
	caseSizeThreeB = 5
	smallSizeMin   = 6
	smallSizeRange = 8
	benchSizeMin   = 15
	benchSizeRange = 6
	threeSizeMin   = 21
	threeSizeRange = 8
)

// randInt returns a random int64 in [0, n) using crypto/rand.
func randInt(n int64) int64 {
	v, _ := rand.Int(rand.Reader, big.NewInt(n))
	return v.Int64()
}

// generateRosters creates the specified number of rosters with unique player IDs.
func generateRosters(ctx context.Context, config *Config, stats *Stats) ([]Roster, error) {
	logger.Get().Info(ctx, "generating rosters with unique player IDs", logger.Int("numRosters", config.NumRosters))

	rosters := make([]Roster, config.NumRosters)
	now := time.Now()

	// Generate rosters concurrently
	type rosterResult struct {
		index  int
		roster Roster
		err    error
	}

	resultChan := make(chan rosterResult, config.NumRosters)

	// Use worker pool for roster generation
	workerCount := minInt(config.Workers, config.NumRosters)
	rostersPerWorker := config.NumRosters / workerCount

	for worker := 0; worker < workerCount; worker++ {
		start := worker * rostersPerWorker
		end := start + rostersPerWorker
		if worker == workerCount-1 {
			end = config.NumRosters // Last worker gets remaining rosters
		}

		go func(_ int, start, end int) {
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					resultChan <- rosterResult{index: i, err: ctx.Err()}
					return
				default:
					roster := generateSingleRoster(config.RosterSize, now)
					resultChan <- rosterResult{index: i, roster: roster, err: nil}
				}
			}
		}(worker, start, end)
	}

	// Collect results
	for i := 0; i < config.NumRosters; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during roster generation: %w", ctx.Err())
		case result := <-resultChan:
			if result.err != nil {
				return nil, fmt.Errorf("failed to generate roster %d: %w", result.index, result.err)
			}
			rosters[result.index] = result.roster
		}
	}

	stats.RostersGenerated = len(rosters)
	logger.Get().Info(ctx, "generated rosters successfully", logger.Int("count", len(rosters)))

	return rosters, nil
}

// generateSingleRoster creates one roster of the requested size. Zero
// picks a varied realistic size.
func generateSingleRoster(size int, now time.Time) Roster {
	if size <= 0 {
		size = generateRosterSize()
	}

	players := make([]Player, size)
	for i := range players {
		players[i] = generateSinglePlayer(now)
	}

	return Roster{Players: players}
}

// generateSinglePlayer creates a single roster record.
func generateSinglePlayer(now time.Time) Player {
	id := uuid.New().String()
	main := generatePosition()

	alt := ""
	if main == positionKeeper {
		// Keepers rarely declare an outfield alternate
		if randInt(altKeeperDivisor) == 0 {
			alt = positionDefender
		}
	} else if randInt(altDivisor) < 2 {
		alt = generateAltPosition(main)
	}

	checkedIn := ""
	if randInt(checkInDivisor) != 0 {
		offset := time.Duration(randInt(checkInWindow)) * time.Second
		checkedIn = now.Add(-offset).UTC().Format(time.RFC3339)
	}

	return Player{
		PlayerID:     id,
		Name:         "player-" + id[:8],
		Age:          generateAge(),
		Rating:       generateRating(),
		MainPosition: main,
		AltPosition:  alt,
		CheckedInAt:  checkedIn,
	}
}

// generatePosition rolls a weighted main position.
func generatePosition() string {
	switch randInt(positionDivisor) {
	case caseKeeper:
		return positionKeeper
	case caseDefenderA, caseDefenderB:
		return positionDefender
	case caseMidfielderA, caseMidfielderB:
		return positionMidfielder
	default:
		return positionStriker
	}
}

// generateAltPosition picks a secondary position different from main.
// A slice of the roll lands on the keeper slot so alternate goalkeeper
// cover appears in the population.
func generateAltPosition(main string) string {
	if randInt(altKeeperDivisor) == 0 {
		return positionKeeper
	}

	options := make([]string, 0, 2)
	for _, pos := range []string{positionDefender, positionMidfielder, positionStriker} {
		if pos != main {
			options = append(options, pos)
		}
	}
	return options[randInt(int64(len(options)))]
}

// generateAge creates an age with a realistic club distribution.
func generateAge() int {
	switch randInt(ageCaseDivisor) {
	case caseYouth:
		// Youth players (17-22)
		return youthAgeMin + int(randInt(youthAgeRange))
	case casePrimeA, casePrimeB, casePrimeC, casePrimeD:
		// Prime years (23-30) - most common
		return primeAgeMin + int(randInt(primeAgeRange))
	case caseVeteranA, caseVeteranB:
		// Veterans (31-38)
		return veteranAgeMin + int(randInt(veteranAgeRange))
	default:
		// Seniors (39-45) - rare
		return seniorAgeMin + int(randInt(seniorAgeRange))
	}
}

// generateRating creates a rating centered on the middle of the scale.
func generateRating() int {
	switch randInt(ratingDivisor) {
	case caseRatingFloor:
		return 1
	case caseRatingLowA, caseRatingLowB:
		return 2
	case caseRatingHighA, caseRatingHighB:
		return 4
	case caseRatingCeil:
		return 5
	default:
		return 3
	}
}

// generateRosterSize picks a session size across the interesting shapes:
// uneven two-team splits, seven-a-side with a bench, full three-team
// nights, and the exact structural boundaries.
func generateRosterSize() int {
	switch randInt(sizeCaseDivisor) {
	case caseSizeSmall:
		// Uneven two-team split (6-13)
		return smallSizeMin + int(randInt(smallSizeRange))
	case caseSizeBenchA, caseSizeBenchB, caseSizeBenchC:
		// Two full teams plus bench (15-20) - most common
		return benchSizeMin + int(randInt(benchSizeRange))
	case caseSizeThreeA, caseSizeThreeB:
		// Three full teams (21-28)
		return threeSizeMin + int(randInt(threeSizeRange))
	default:
		// Exact structural boundaries
		boundaries := []int{6, 14, 15, 20, 21}
		return boundaries[randInt(int64(len(boundaries)))]
	}
}

// minInt returns the minimum of two integers.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
