package entity

import "strings"

const botNamePrefix = "bot:"

type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BotPlayerName - name under which the bot of the given difficulty is stored.
func BotPlayerName(difficulty string) string {
	return botNamePrefix + difficulty
}

func (that *Player) IsBot() bool {
	return strings.HasPrefix(that.Name, botNamePrefix)
}
