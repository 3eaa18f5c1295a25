package frame

// Phase is the orchestrator's lifecycle state.
type Phase int

const (
	Initializing Phase = iota
	Running
	ErrorHalted
	ShuttingDown
	Closed
)

// String returns a lower-case name for logs.
func (p Phase) String() string {
	switch p {
	case Initializing:
		return "initializing"
	case Running:
		return "running"
	case ErrorHalted:
		return "error-halted"
	case ShuttingDown:
		return "shutting-down"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}
