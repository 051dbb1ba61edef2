package deployer

// State is the phase a deployment is in. States only move forward within an
// attempt; success and error are terminal for that attempt.
type State string

const (
	StateIdle      State = "idle"
	StateUploading State = "uploading"
	StateDeploying State = "deploying"
	StateSuccess   State = "success"
	StateError     State = "error"
)

var validTransitions = map[State][]State{
	StateIdle:      {StateUploading, StateDeploying, StateError},
	StateUploading: {StateDeploying, StateError},
	StateDeploying: {StateSuccess, StateError},
	// Retrying after a recoverable failure opens a new attempt
	StateError: {StateUploading, StateDeploying},
}

func isValidTransition(from, to State) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition is one observable state change, delivered to observers in order.
type Transition struct {
	From  State
	To    State
	Error error
}

// Observer receives every state change. Callbacks run synchronously on the
// deployment's goroutine, so they must not block.
type Observer func(Transition)
