package payload

// Status is the lifecycle position of a Payload.
type Status string

const (
	StatusCreated    Status = "created"
	StatusConfigured Status = "configured"
	StatusRunning    Status = "running"
	StatusMutated    Status = "mutated"
	StatusTerminated Status = "terminated"
)

// transitions lists the allowed target statuses per status. Running may
// return to whatever status it was entered from.
var transitions = map[Status][]Status{
	StatusCreated:    {StatusRunning, StatusConfigured, StatusTerminated},
	StatusConfigured: {StatusRunning, StatusMutated, StatusTerminated},
	StatusRunning:    {StatusRunning, StatusCreated, StatusConfigured, StatusMutated, StatusTerminated},
	StatusMutated:    {StatusConfigured, StatusRunning, StatusTerminated},
	StatusTerminated: nil,
}

// Active reports whether methods may be dispatched in this status.
func (s Status) Active() bool {
	return s != StatusMutated && s != StatusTerminated
}

// CanTransition reports whether the lifecycle allows moving from s to to.
func (s Status) CanTransition(to Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (p *Payload) transition(to Status) error {
	if !p.status.CanTransition(to) {
		return &TransitionError{From: p.status, To: to}
	}
	p.status = to
	return nil
}
