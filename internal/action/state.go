package action

// Status is the lifecycle of a user-triggered action. Exactly one holds at a
// time, so a page cannot be loading and failed simultaneously.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// State is the tagged action state. Message is set only when failed.
type State struct {
	Status  Status
	Message string
}

func Idle() State {
	return State{Status: StatusIdle}
}

func Loading() State {
	return State{Status: StatusLoading}
}

func Succeeded() State {
	return State{Status: StatusSucceeded}
}

func Failed(message string) State {
	return State{Status: StatusFailed, Message: message}
}

func (s State) IsLoading() bool {
	return s.Status == StatusLoading
}

func (s State) IsFailed() bool {
	return s.Status == StatusFailed
}
