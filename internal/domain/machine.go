package domain

import "time"

// Event is one inbound unit from the transport, already classified.
type Event struct {
	Kind EventKind
	Text string // free text, set for EventText
}

type EventKind int

const (
	// EventStart is the /start command or the Старт button.
	EventStart EventKind = iota
	// EventStop is the Стоп button.
	EventStop
	// EventText is any other text message.
	EventText
)

// Prompt identifies the reply the transport should render. The state
// machine never carries user-facing text itself.
type Prompt int

const (
	PromptNone Prompt = iota
	PromptAskMealTime
	PromptAskDelay
	PromptBadMealTime
	PromptBadDelay
	PromptConfirmed // render with Outcome.RemindAt
	PromptStopped
)

// Outcome is the result of one transition: the next session plus the side
// effects the transport must apply.
type Outcome struct {
	Session  Session
	Prompt   Prompt
	RemindAt time.Time // valid when Schedule is true
	Schedule bool      // register a spam flag and schedule a reminder job
	StopSpam bool      // deactivate the chat's spam flag
}

// Transition advances the conversation state machine by one event. It is a
// pure function of (session, event, now); all I/O is left to the caller.
func Transition(sess Session, ev Event, now time.Time) Outcome {
	switch ev.Kind {
	case EventStart:
		// Hard reset, valid from any state.
		return Outcome{
			Session: Session{State: StateAwaitMealTime},
			Prompt:  PromptAskMealTime,
		}

	case EventStop:
		return Outcome{
			Session:  Session{},
			Prompt:   PromptStopped,
			StopSpam: true,
		}

	case EventText:
		switch sess.State {
		case StateAwaitMealTime:
			mt, err := ParseMealTime(ev.Text)
			if err != nil {
				return Outcome{Session: sess, Prompt: PromptBadMealTime}
			}
			return Outcome{
				Session: Session{State: StateAwaitDelay, MealTime: mt},
				Prompt:  PromptAskDelay,
			}

		case StateAwaitDelay:
			delay, err := ParseDelayMinutes(ev.Text)
			if err != nil {
				return Outcome{Session: sess, Prompt: PromptBadDelay}
			}
			return Outcome{
				Session:  Session{},
				Prompt:   PromptConfirmed,
				RemindAt: ReminderAt(now, sess.MealTime, delay),
				Schedule: true,
			}
		}
	}

	// Free text while idle has no handler in the core.
	return Outcome{Session: sess, Prompt: PromptNone}
}
