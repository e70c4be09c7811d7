package game

import "fmt"

// Event is a notable state transition worth telling the player about.
// Events ride the message bus on the player's subject; sessions render
// them between prompts.
type Event struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

const (
	EventLevelUp       = "level-up"
	EventSeasonAdvance = "season-advance"
	EventGameCompleted = "game-completed"
	EventEndlessMode   = "endless-mode"
)

// PlayerSubject is the bus subject carrying events for one player.
func PlayerSubject(ownerId string) string {
	return fmt.Sprintf("player.%s", ownerId)
}

func levelUpEvent(level int) Event {
	return Event{
		Type:    EventLevelUp,
		Message: fmt.Sprintf("Level up! You reached level %d.", level),
	}
}

func seasonAdvanceEvent(season int) Event {
	return Event{
		Type:    EventSeasonAdvance,
		Message: fmt.Sprintf("Season %d unlocked! Coins reset, 5 new upgrade slots granted.", season),
	}
}

func gameCompletedEvent() Event {
	return Event{
		Type:    EventGameCompleted,
		Message: "You completed the final collection. The game is finished!",
	}
}

func endlessModeEvent() Event {
	return Event{
		Type:    EventEndlessMode,
		Message: "Endless mode unlocked. The global leaderboard awaits.",
	}
}
