package uipanel

// State is the lifecycle position of a panel.
// The cycle is Closed → IsOpening → Opened → IsClosing → Closed.
type State int32

const (
	Closed    State = iota // At rest, not visible (initial state)
	IsOpening              // Elements are running their show transitions
	Opened                 // Fully shown and interactable
	IsClosing              // Elements are running their hide transitions
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case IsOpening:
		return "opening"
	case Opened:
		return "opened"
	case IsClosing:
		return "closing"
	default:
		return "unknown"
	}
}

// IsLive reports whether a panel in this state belongs on a controller stack.
func (s State) IsLive() bool {
	return s == Opened || s == IsOpening
}

// ID identifies a live panel instance. IDs are never reused within a process.
type ID uint64
