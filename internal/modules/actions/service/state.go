package service

// DeleteState is a step of one delete action:
//
//	Idle -> AwaitingConfirmation -> Cancelled
//	                             -> Requesting -> Failed
//	                                           -> Refetching -> Failed | Settled
type DeleteState int

const (
	StateIdle DeleteState = iota
	StateAwaitingConfirmation
	StateCancelled
	StateRequesting
	StateFailed
	StateRefetching
	StateSettled
)

var stateNames = [...]string{
	StateIdle:                 "idle",
	StateAwaitingConfirmation: "awaiting_confirmation",
	StateCancelled:            "cancelled",
	StateRequesting:           "requesting",
	StateFailed:               "failed",
	StateRefetching:           "refetching",
	StateSettled:              "settled",
}

func (s DeleteState) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Terminal reports whether no further transition follows.
func (s DeleteState) Terminal() bool {
	return s == StateCancelled || s == StateFailed || s == StateSettled
}
