package protocol

// Action is one server-side transform requested for a message.
type Action string

const (
	ActionUppercase Action = "uppercase"
	ActionLowercase Action = "lowercase"
	ActionReverse   Action = "reverse"
	ActionShuffle   Action = "shuffle"
	ActionRandom    Action = "random"
)

// Actions lists every action word the protocol recognizes.
var Actions = []Action{
	ActionUppercase,
	ActionLowercase,
	ActionReverse,
	ActionShuffle,
	ActionRandom,
}

// ParseAction maps a raw token to a known action word.
func ParseAction(raw string) (Action, error) {
	for _, a := range Actions {
		if raw == string(a) {
			return a, nil
		}
	}
	return "", ErrUnknownAction
}

func (a Action) String() string { return string(a) }
