package domain

// State is the scheduler's admission state.
type State string

const (
	StateIdle       State = "idle"       // No animation running
	StateBuilding   State = "building"   // A build sequence holds the busy guard
	StateTraversing State = "traversing" // A traversal sequence holds the busy guard
)

// Busy reports whether the state blocks new requests.
func (s State) Busy() bool {
	return s == StateBuilding || s == StateTraversing
}

// Stats summarizes a tree after a build completes.
type Stats struct {
	Count         int `json:"count"`
	Height        int `json:"height"`
	LeafCount     int `json:"leaf_count"`
	BalanceFactor int `json:"balance_factor"`

	// LastValue is the last value inserted by the build, nil for an empty tree.
	LastValue *int `json:"last_value,omitempty"`
}

// Progress is the position of a running build.
type Progress struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}
