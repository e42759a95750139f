package entity

import (
	"fmt"
	"time"
)

// DrawResult is stored as the winner of a drawn game.
const DrawResult = "draw"

type GameResult struct {
	ID       string        `json:"id"`
	PlayerX  string        `json:"player_x"`
	PlayerO  string        `json:"player_o"`
	Winner   string        `json:"winner"`
	Duration time.Duration `json:"duration"`
	PlayedAt time.Time     `json:"played_at"`
}

func (that *GameResult) IsDraw() bool {
	return that.Winner == DrawResult
}

func (that *GameResult) HasPlayer(playerID string) bool {
	return that.PlayerX == playerID || that.PlayerO == playerID
}

func (that *GameResult) String() string {
	return fmt.Sprintf("game %s: X=%s O=%s winner=%s duration=%s played at %s",
		that.ID, that.PlayerX, that.PlayerO, that.Winner, that.Duration, that.PlayedAt.Format(time.RFC3339))
}

type Statistics struct {
	TotalGames int `json:"total_games"`
	Wins       int `json:"wins"`
	Draws      int `json:"draws"`
	Losses     int `json:"losses"`
}

// NewStatistics - tallies results from the point of view of playerID. Results without the player are skipped.
func NewStatistics(playerID string, results []*GameResult) Statistics {
	var stats Statistics

	for _, result := range results {
		if !result.HasPlayer(playerID) {
			continue
		}

		stats.TotalGames++

		switch result.Winner {
		case playerID:
			stats.Wins++
		case DrawResult:
			stats.Draws++
		}
	}

	stats.Losses = stats.TotalGames - stats.Wins - stats.Draws

	return stats
}
