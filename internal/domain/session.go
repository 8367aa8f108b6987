package domain

// State is the conversation state of a single chat.
type State int

const (
	StateIdle State = iota
	StateAwaitMealTime
	StateAwaitDelay
)

func (s State) String() string {
	switch s {
	case StateAwaitMealTime:
		return "await_meal_time"
	case StateAwaitDelay:
		return "await_delay"
	default:
		return "idle"
	}
}

// MealTime is a wall-clock time of day reported by the user.
type MealTime struct {
	Hour   int
	Minute int
}

// Session holds everything the bot remembers about one chat's conversation.
// The zero value is a valid idle session.
type Session struct {
	State    State
	MealTime MealTime
}
