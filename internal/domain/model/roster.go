package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/okian/rondo/internal/domain/types"
)

// Sentinel kinds for roster parsing errors.
var (
	ErrMissingPlayerID = errors.New("missing player_id")
	ErrDuplicatePlayer = errors.New("duplicate player_id")
	ErrMissingPosition = errors.New("missing main_position")
)

// PlayerRecord is the wire form of a roster entry as submitted by clients.
type PlayerRecord struct {
	PlayerID     string `json:"player_id"`
	Name         string `json:"name,omitempty"`
	Age          int    `json:"age,omitempty"`
	Rating       int    `json:"rating,omitempty"`
	MainPosition string `json:"main_position"`
	AltPosition  string `json:"alt_position,omitempty"`
	CheckedInAt  string `json:"checked_in_at,omitempty"`
}

// RawRecord is a roster entry decoded without defaults, so validation
// can tell an absent field from a zero one.
type RawRecord struct {
	PlayerID     *string `json:"player_id"`
	Name         *string `json:"name"`
	Age          *int    `json:"age"`
	Rating       *int    `json:"rating"`
	MainPosition *string `json:"main_position"`
	AltPosition  *string `json:"alt_position"`
	CheckedInAt  *string `json:"checked_in_at"`
}

// ParsePlayers validates and normalizes a submitted roster.
//
// Hard failures (missing or duplicate player_id, missing or unknown
// positions) abort with a descriptive error. Soft problems are absorbed:
// age and rating are clamped, a zero rating takes the default, a blank
// name falls back to the id, an alternate equal to the main position is
// dropped, and an unparseable check-in time degrades to "never checked
// in" rather than rejecting the roster.
func ParsePlayers(records []PlayerRecord) ([]Player, error) {
	players := make([]Player, 0, len(records))
	seen := make(map[string]struct{}, len(records))

	for i, rec := range records {
		id := strings.TrimSpace(rec.PlayerID)
		if id == "" {
			return nil, fmt.Errorf("player %d: %w", i, ErrMissingPlayerID)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("player %d: %w: %s", i, ErrDuplicatePlayer, id)
		}
		seen[id] = struct{}{}

		if strings.TrimSpace(rec.MainPosition) == "" {
			return nil, fmt.Errorf("player %s: %w", id, ErrMissingPosition)
		}
		main, err := types.ParsePosition(rec.MainPosition)
		if err != nil {
			return nil, fmt.Errorf("player %s: main_position: %w", id, err)
		}

		alt := types.PositionUnknown
		if rec.AltPosition != "" {
			alt, err = types.ParsePosition(rec.AltPosition)
			if err != nil {
				return nil, fmt.Errorf("player %s: alt_position: %w", id, err)
			}
			if alt == main {
				alt = types.PositionUnknown
			}
		}

		rating := rec.Rating
		if rating == 0 {
			rating = DefaultRating
		}

		name := strings.TrimSpace(rec.Name)
		if name == "" {
			name = id
		}

		players = append(players, Player{
			ID:          id,
			Name:        name,
			Age:         clampInt(rec.Age, MinAge, MaxAge),
			Rating:      clampInt(rating, MinRating, MaxRating),
			Main:        main,
			Alt:         alt,
			CheckedInAt: parseCheckIn(rec.CheckedInAt),
		})
	}

	return players, nil
}

// parseCheckIn reads an ISO-8601 timestamp; Z means UTC. Failures map to
// the zero time, which the pool split treats as earliest arrival.
func parseCheckIn(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return ts.UTC()
}
