package studio

// State is the kind of a Result.
type State int

const (
	StateIdle State = iota
	StatePending
	StateSuccess
	StateFailure
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateSuccess:
		return "success"
	case StateFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Result is the outcome of a single generation attempt. Exactly one variant
// is active; build values with Idle, Pending, Success or Failure.
type Result struct {
	state   State
	lyrics  string
	message string
}

func Idle() Result    { return Result{state: StateIdle} }
func Pending() Result { return Result{state: StatePending} }

func Success(lyrics string) Result {
	return Result{state: StateSuccess, lyrics: lyrics}
}

func Failure(message string) Result {
	return Result{state: StateFailure, message: message}
}

func (r Result) State() State { return r.state }

// Lyrics returns the generated text; ok is false unless r is a Success.
func (r Result) Lyrics() (text string, ok bool) {
	return r.lyrics, r.state == StateSuccess
}

// Message returns the user-facing failure text; ok is false unless r is a Failure.
func (r Result) Message() (msg string, ok bool) {
	return r.message, r.state == StateFailure
}
